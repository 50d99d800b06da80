package suggestion

import (
	"strings"
	"testing"

	"recipe-pantry/internal/core/model"
)

func TestSystemPromptDeclaresUnitEnum(t *testing.T) {
	prompt := systemPrompt()

	for _, name := range model.UnitNames() {
		if !strings.Contains(prompt, name) {
			t.Fatalf("system prompt missing unit %s", name)
		}
	}
	if !strings.Contains(prompt, "raw JSON arrays") {
		t.Fatal("system prompt should forbid markdown output")
	}
}

func TestBuildUserPrompt(t *testing.T) {
	prompt := buildUserPrompt([]string{"egg", "milk", "flour"}, 5)

	if !strings.Contains(prompt, "5 recipes") {
		t.Fatal("user prompt missing recipe count")
	}
	if !strings.Contains(prompt, "egg, milk, flour") {
		t.Fatal("user prompt missing ingredient list")
	}
	// worked example 必須附在最後
	if !strings.Contains(prompt, "Classic French Toast") {
		t.Fatal("user prompt missing worked example")
	}
}
