package recipe

import (
	"strings"
	"testing"

	"recipe-pantry/internal/core/suggestion"
)

func sampleInstructions() suggestion.Instructions {
	return suggestion.Instructions{
		Prep: []suggestion.PrepStep{
			{Step: 1, Description: "Crack the eggs", Tools: []string{"bowl", "whisk"}},
			{Step: 2, Description: "Whisk until smooth"},
		},
		Cooking: []suggestion.CookingStep{
			{Step: 1, Description: "Melt butter", Temperature: "medium heat", Indicators: "foamy but not browned"},
			{Step: 2, Description: "Pour in eggs"},
		},
		Plating: []suggestion.PlatingStep{
			{Step: 1, Description: "Fold onto a warm plate"},
		},
	}
}

func TestFormatInstructions(t *testing.T) {
	got := FormatInstructions(sampleInstructions())

	// 三個區塊依 prep → cooking → plating 的順序出現
	prepIdx := strings.Index(got, "Preparation:")
	cookIdx := strings.Index(got, "Cooking:")
	plateIdx := strings.Index(got, "Plating:")
	if prepIdx == -1 || cookIdx == -1 || plateIdx == -1 {
		t.Fatalf("missing section header in:\n%s", got)
	}
	if !(prepIdx < cookIdx && cookIdx < plateIdx) {
		t.Fatalf("sections out of order in:\n%s", got)
	}

	if !strings.Contains(got, "1. Crack the eggs (Tools needed: bowl, whisk)") {
		t.Fatalf("prep step formatting wrong:\n%s", got)
	}
	if !strings.Contains(got, "2. Whisk until smooth") {
		t.Fatalf("tool-less prep step formatting wrong:\n%s", got)
	}
	if !strings.Contains(got, "1. Melt butter (Temperature: medium heat, Done when: foamy but not browned)") {
		t.Fatalf("cooking step formatting wrong:\n%s", got)
	}
	if !strings.Contains(got, "2. Pour in eggs") {
		t.Fatalf("bare cooking step formatting wrong:\n%s", got)
	}
	if !strings.Contains(got, "1. Fold onto a warm plate") {
		t.Fatalf("plating step formatting wrong:\n%s", got)
	}
}

func TestFormatInstructionsCookingDetails(t *testing.T) {
	in := suggestion.Instructions{
		Cooking: []suggestion.CookingStep{
			{Step: 1, Description: "Simmer", Temperature: "low"},
			{Step: 2, Description: "Reduce", Indicators: "thick enough to coat a spoon"},
		},
	}
	got := FormatInstructions(in)

	if !strings.Contains(got, "1. Simmer (Temperature: low)") {
		t.Fatalf("temperature-only detail wrong:\n%s", got)
	}
	if !strings.Contains(got, "2. Reduce (Done when: thick enough to coat a spoon)") {
		t.Fatalf("indicator-only detail wrong:\n%s", got)
	}
}

func TestFormatInstructionsEmpty(t *testing.T) {
	if got := FormatInstructions(suggestion.Instructions{}); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestFoldIngredientsIntoNotes(t *testing.T) {
	available := []suggestion.Ingredient{
		{Name: "egg", Quantity: 2, QuantityType: "PCS", Notes: "room temperature"},
	}
	missing := []suggestion.Ingredient{
		{Name: "butter", Quantity: 10.5, QuantityType: "G"},
	}

	got := FoldIngredientsIntoNotes("Best served hot.", available, missing)

	if !strings.HasPrefix(got, "Best served hot.") {
		t.Fatalf("original notes lost:\n%s", got)
	}
	if !strings.Contains(got, "Required Ingredients:") {
		t.Fatalf("missing available header:\n%s", got)
	}
	if !strings.Contains(got, "Additional Ingredients Needed:") {
		t.Fatalf("missing missing header:\n%s", got)
	}
	if !strings.Contains(got, "- 2 PCS egg (room temperature)") {
		t.Fatalf("available line wrong:\n%s", got)
	}
	// 小數不補尾零，沒有備註就不加括號
	if !strings.Contains(got, "- 10.5 G butter") {
		t.Fatalf("missing line wrong:\n%s", got)
	}
}

func TestFoldIngredientsIntoNotesEmptyLists(t *testing.T) {
	if got := FoldIngredientsIntoNotes("original", nil, nil); got != "original" {
		t.Fatalf("expected notes untouched, got %q", got)
	}
}
