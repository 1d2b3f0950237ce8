package coach

import (
	"context"
	"testing"

	"github.com/fabianfernandess/FitQuest/internal/genai"
	"github.com/fabianfernandess/FitQuest/internal/models"
)

// mockGenerator implements genai.Generator for testing.
type mockGenerator struct {
	raw        string
	err        error
	lastSystem string
	lastUser   string
}

func (m *mockGenerator) Generate(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	m.lastSystem = systemPrompt
	m.lastUser = userMessage
	return m.raw, m.err
}

const fencedReply = "Here is your plan:\n```json\n" + `{
	"response": "Start with 3 sets of 12 push-ups.",
	"youtubeLink": "https://www.youtube.com/watch?v=d3LPrhI0v-w",
	"exerciseDetails": {"name": "Push-ups", "sets": 3, "reps": 12},
	"dailyTasks": ["Do 3 sets of push-ups"],
	"counters": {"calories": 250, "points": 10, "tasksCompleted": 0}
}` + "\n```\nGood luck!"

func TestGetFitnessResponseEndToEnd(t *testing.T) {
	gen := &mockGenerator{raw: fencedReply}
	c := NewCoach(gen)

	reply := c.GetFitnessResponse(context.Background(), baseContext())

	if reply.Response == "" || reply.Response == models.FallbackResponseText {
		t.Fatalf("expected real reply, got %q", reply.Response)
	}
	if len(reply.ExerciseDetails.Exercises) != 1 || reply.ExerciseDetails.Exercises[0].Name != "Push-ups" {
		t.Errorf("expected Push-ups prescription, got %+v", reply.ExerciseDetails)
	}
	if reply.Counters.Points != 10 {
		t.Errorf("expected 10 points, got %v", reply.Counters.Points)
	}
	if gen.lastUser != "let's start" {
		t.Errorf("expected user message forwarded to provider, got %q", gen.lastUser)
	}
}

func TestGetFitnessResponseProviderFailure(t *testing.T) {
	gen := &mockGenerator{err: &genai.ProviderError{Kind: genai.ProviderErrorNetwork, Err: context.DeadlineExceeded}}
	c := NewCoach(gen)

	reply := c.GetFitnessResponse(context.Background(), baseContext())

	if reply.Response != models.FallbackResponseText {
		t.Errorf("expected fallback response text, got %q", reply.Response)
	}
	if reply.YouTubeLink != "" || !reply.ExerciseDetails.IsEmpty() || len(reply.DailyTasks) != 0 {
		t.Errorf("expected empty collections, got %+v", reply)
	}
	if reply.Counters != (models.Counters{}) {
		t.Errorf("expected zero counters, got %+v", reply.Counters)
	}
}

func TestGetFitnessResponseIsTotal(t *testing.T) {
	// Any provider output, however broken, must yield a well-formed reply.
	rawOutputs := []string{
		"",
		"no json here",
		"```json\nnot json\n```",
		`{"response": "hi"}`,                                // missing keys
		`{"response": 42, "exerciseDetails": null}`,         // wrong types
		`{"response":"ok","exerciseDetails":[],"dailyTasks":[],"counters":{}}`, // empty array
		"{\"deeply\": {\"malformed\": ",
	}
	for _, raw := range rawOutputs {
		c := NewCoach(&mockGenerator{raw: raw})
		reply := c.GetFitnessResponse(context.Background(), baseContext())
		if reply.Response != models.FallbackResponseText {
			t.Errorf("raw %q: expected fallback, got %q", raw, reply.Response)
		}
	}
}

func TestGetFitnessResponseBareJSON(t *testing.T) {
	c := NewCoach(&mockGenerator{raw: validExerciseArray})
	reply := c.GetFitnessResponse(context.Background(), baseContext())
	if len(reply.ExerciseDetails.Exercises) != 2 {
		t.Errorf("expected both exercises accepted, got %+v", reply.ExerciseDetails)
	}
	if !reply.ExerciseDetails.Exercises[1].Reps.IsDuration() {
		t.Errorf("expected duration reps, got %+v", reply.ExerciseDetails.Exercises[1].Reps)
	}
}
