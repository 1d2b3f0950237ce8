package coach

import (
	"strings"
	"testing"

	"github.com/fabianfernandess/FitQuest/internal/models"
)

func baseContext() models.UserContext {
	return models.UserContext{
		Name:          "Andrew",
		House:         models.HouseValor,
		BMI:           25,
		Height:        180,
		Weight:        80,
		ExerciseLevel: "intermediate",
		Goals:         []string{"strength"},
		Message:       "let's start",
	}
}

func TestBuildPromptPersonaPerHouse(t *testing.T) {
	cases := []struct {
		house   models.House
		trainer string
	}{
		{models.HouseValor, "Maximus"},
		{models.HouseLumina, "Serene"},
		{models.HouseNova, "Lyra"},
	}
	for _, tc := range cases {
		ctx := baseContext()
		ctx.House = tc.house
		system, _ := BuildPrompt(ctx)
		if !strings.Contains(system, tc.trainer) {
			t.Errorf("house %s: expected persona mentioning %s", tc.house, tc.trainer)
		}
	}
}

func TestBuildPromptUnknownHouseFallsBack(t *testing.T) {
	ctx := baseContext()
	ctx.House = models.House("Atlantis")
	system, userMessage := BuildPrompt(ctx)
	if !strings.Contains(system, neutralPersona) {
		t.Error("expected neutral persona for unknown house")
	}
	if userMessage != ctx.Message {
		t.Errorf("expected user message passthrough, got %q", userMessage)
	}
}

func TestBuildPromptEmbedsProfileAndContract(t *testing.T) {
	ctx := baseContext()
	calories := 2200.0
	ctx.TargetedCalorieIntake = &calories
	system, _ := BuildPrompt(ctx)

	for _, want := range []string{"Andrew", "25", "180", "80", "intermediate", "strength", "2200"} {
		if !strings.Contains(system, want) {
			t.Errorf("expected system prompt to contain %q", want)
		}
	}
	// The output contract must name the required fields and both
	// exerciseDetails shapes.
	for _, want := range []string{"response", "youtubeLink", "exerciseDetails", "dailyTasks", "counters", "A single object", "An array of objects", "only in JSON"} {
		if !strings.Contains(system, want) {
			t.Errorf("expected output contract to contain %q", want)
		}
	}
}

func TestBuildPromptIsPure(t *testing.T) {
	ctx := baseContext()
	first, _ := BuildPrompt(ctx)
	second, _ := BuildPrompt(ctx)
	if first != second {
		t.Error("expected identical prompts for identical contexts")
	}
}
