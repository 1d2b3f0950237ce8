package coach

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/fabianfernandess/FitQuest/internal/models"
)

func TestSanitizeCounterCoercion(t *testing.T) {
	doc := Document{
		"counters": map[string]any{
			"calories":       "250",
			"points":         nil,
			"tasksCompleted": "abc",
		},
	}
	reply := Sanitize(doc)
	want := models.Counters{Calories: 250, Points: 0, TasksCompleted: 0}
	if reply.Counters != want {
		t.Errorf("expected %+v, got %+v", want, reply.Counters)
	}
}

func TestSanitizeDefaults(t *testing.T) {
	reply := Sanitize(Document{})
	if reply.Response != models.DefaultResponseText {
		t.Errorf("expected default response text, got %q", reply.Response)
	}
	if reply.YouTubeLink != "" {
		t.Errorf("expected empty link, got %q", reply.YouTubeLink)
	}
	if !reply.ExerciseDetails.IsEmpty() {
		t.Errorf("expected empty exercise details, got %+v", reply.ExerciseDetails)
	}
	if reply.DailyTasks == nil || len(reply.DailyTasks) != 0 {
		t.Errorf("expected empty non-nil task list, got %#v", reply.DailyTasks)
	}
	if reply.Counters != (models.Counters{}) {
		t.Errorf("expected zero counters, got %+v", reply.Counters)
	}
}

func TestSanitizeYouTubeLinkPolicy(t *testing.T) {
	cases := []struct {
		link string
		want string
	}{
		{"https://www.youtube.com/watch?v=d3LPrhI0v-w", "https://www.youtube.com/watch?v=d3LPrhI0v-w"},
		{"https://youtu.be/d3LPrhI0v-w", "https://youtu.be/d3LPrhI0v-w"},
		{"http://m.youtube.com/watch?v=abc", "http://m.youtube.com/watch?v=abc"},
		{"https://vimeo.com/12345", ""},
		{"ftp://youtube.com/video", ""},
		{"javascript:alert(1)", ""},
		{"not a url at all", ""},
		{"", ""},
	}
	for _, tc := range cases {
		reply := Sanitize(Document{"youtubeLink": tc.link})
		if reply.YouTubeLink != tc.want {
			t.Errorf("link %q: expected %q, got %q", tc.link, tc.want, reply.YouTubeLink)
		}
	}
}

func TestSanitizePreservesExerciseShapes(t *testing.T) {
	doc := Document{
		"response":        "ok",
		"exerciseDetails": map[string]any{"name": "Push-ups", "sets": 3.0, "reps": 12.0},
	}
	reply := Sanitize(doc)
	if !reply.ExerciseDetails.Single || reply.ExerciseDetails.Exercises[0].Name != "Push-ups" {
		t.Errorf("expected single exercise preserved, got %+v", reply.ExerciseDetails)
	}

	doc = Document{
		"exerciseDetails": []any{
			map[string]any{"name": "Squats", "sets": 3.0, "reps": 15.0},
			map[string]any{"name": "Plank", "sets": 3.0, "reps": "30 seconds"},
		},
	}
	reply = Sanitize(doc)
	details := reply.ExerciseDetails
	if details.Single || len(details.Exercises) != 2 {
		t.Fatalf("expected two exercises, got %+v", details)
	}
	if !details.Exercises[1].Reps.IsDuration() || details.Exercises[1].Reps.Duration != "30 seconds" {
		t.Errorf("expected duration reps preserved, got %+v", details.Exercises[1].Reps)
	}
}

func TestSanitizeDropsUnusableElements(t *testing.T) {
	doc := Document{
		"exerciseDetails": []any{
			map[string]any{"sets": 3.0, "reps": 12.0}, // no name
			"not an object",
			map[string]any{"name": "Squats", "sets": "3", "reps": 15.0},
		},
		"dailyTasks": []any{
			"Drink water",
			42.0,
			map[string]any{"time": "07:00 AM", "emoji": "🏃", "title": "Run"},
		},
	}
	reply := Sanitize(doc)
	if len(reply.ExerciseDetails.Exercises) != 1 || reply.ExerciseDetails.Exercises[0].Name != "Squats" {
		t.Errorf("expected only the usable exercise, got %+v", reply.ExerciseDetails)
	}
	if reply.ExerciseDetails.Exercises[0].Sets != 3 {
		t.Errorf("expected numeric-string sets coerced to 3, got %d", reply.ExerciseDetails.Exercises[0].Sets)
	}
	if len(reply.DailyTasks) != 2 {
		t.Fatalf("expected two usable tasks, got %+v", reply.DailyTasks)
	}
	if !reply.DailyTasks[0].IsPlain() || reply.DailyTasks[1].Title != "Run" {
		t.Errorf("unexpected tasks %+v", reply.DailyTasks)
	}
}

// resanitize runs a sanitized reply through the pipeline's own
// serialization and back, then sanitizes again.
func resanitize(t *testing.T, reply models.FitnessReply) models.FitnessReply {
	t.Helper()
	data, err := json.Marshal(reply)
	if err != nil {
		t.Fatalf("marshal reply: %v", err)
	}
	doc, perr := ParseDocument(string(data))
	if perr != nil {
		t.Fatalf("reparse reply: %v", perr)
	}
	return Sanitize(doc)
}

func TestSanitizeIsIdempotent(t *testing.T) {
	docs := []string{
		validSingleExercise,
		validExerciseArray,
		`{"response":"","youtubeLink":"https://vimeo.com/1","exerciseDetails":{},"dailyTasks":[],"counters":{}}`,
	}
	for i, raw := range docs {
		doc, err := ParseDocument(raw)
		if err != nil {
			t.Fatalf("doc %d: %v", i, err)
		}
		once := Sanitize(doc)
		twice := resanitize(t, once)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("doc %d: sanitize not idempotent\nonce:  %+v\ntwice: %+v", i, once, twice)
		}
	}
}
