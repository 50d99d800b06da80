package suggestion

import "testing"

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "clean json untouched",
			input: `[{"title":"Omelette"}]`,
			want:  `[{"title":"Omelette"}]`,
		},
		{
			name:  "json code fence removed",
			input: "```json\n[{\"title\":\"Omelette\"}]\n```",
			want:  `[{"title":"Omelette"}]`,
		},
		{
			name:  "bare fence removed",
			input: "```\n[{\"title\":\"Omelette\"}]\n```",
			want:  `[{"title":"Omelette"}]`,
		},
		{
			name:  "leading prose ending with colon dropped",
			input: "Here are 3 recipes you can make:\n[{\"title\":\"Omelette\"}]",
			want:  `[{"title":"Omelette"}]`,
		},
		{
			name:  "prose without colon kept",
			input: "Some text before\n[{\"title\":\"Omelette\"}]",
			want:  "Some text before\n[{\"title\":\"Omelette\"}]",
		},
		{
			name:  "fence and prose combined",
			input: "Sure! Here you go:\n```json\n[{\"title\":\"Omelette\"}]\n```",
			want:  `[{"title":"Omelette"}]`,
		},
		{
			name:  "object payload",
			input: "Result:\n{\"title\":\"Omelette\"}",
			want:  `{"title":"Omelette"}`,
		},
		{
			name:  "whitespace trimmed",
			input: "  \n[{\"title\":\"Omelette\"}]\n  ",
			want:  `[{"title":"Omelette"}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.input)
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{
		"```json\n[{\"title\":\"Omelette\"}]\n```",
		"Here are the recipes:\n[{\"a\":1}]",
		`[{"a":1}]`,
		"some text with a colon inside: but no json",
	}
	for _, input := range inputs {
		once := Sanitize(input)
		twice := Sanitize(once)
		if once != twice {
			t.Fatalf("not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}
