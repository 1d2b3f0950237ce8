package coach

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/fabianfernandess/FitQuest/internal/models"
)

// youtubeHosts are the hosts accepted for youtubeLink. Links on any other
// host are dropped rather than passed through to the UI.
var youtubeHosts = map[string]bool{
	"youtube.com":     true,
	"www.youtube.com": true,
	"m.youtube.com":   true,
	"youtu.be":        true,
}

// Sanitize coerces a validated-but-loosely-typed reply document into the
// canonical FitnessReply. It never fails: every malformed or missing field
// degrades to a safe default, because by this stage the caller has already
// committed to using whatever the model produced. Sanitizing an already
// sanitized reply is a no-op.
func Sanitize(doc Document) models.FitnessReply {
	reply := models.FitnessReply{DailyTasks: []models.DailyTask{}}

	if s, ok := doc["response"].(string); ok && strings.TrimSpace(s) != "" {
		reply.Response = s
	} else {
		reply.Response = models.DefaultResponseText
	}

	if s, ok := doc["youtubeLink"].(string); ok {
		reply.YouTubeLink = sanitizeYouTubeLink(s)
	}

	reply.ExerciseDetails = sanitizeExercises(doc["exerciseDetails"])

	if list, ok := doc["dailyTasks"].([]any); ok {
		reply.DailyTasks = sanitizeTasks(list)
	}

	counters, _ := doc["counters"].(map[string]any)
	reply.Counters = models.Counters{
		Calories:       coerceNumber(counters["calories"]),
		Points:         coerceNumber(counters["points"]),
		TasksCompleted: coerceNumber(counters["tasksCompleted"]),
	}

	return reply
}

// coerceNumber yields 0 for anything that does not coerce to a finite number.
func coerceNumber(v any) float64 {
	var n float64
	switch value := v.(type) {
	case float64:
		n = value
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return 0
		}
		n = parsed
	default:
		return 0
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

// sanitizeYouTubeLink keeps only http(s) URLs on a recognized YouTube host.
// Everything else becomes the empty string.
func sanitizeYouTubeLink(link string) string {
	link = strings.TrimSpace(link)
	if link == "" {
		return ""
	}
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	if !youtubeHosts[strings.ToLower(u.Hostname())] {
		return ""
	}
	return link
}

// sanitizeExercises converts the polymorphic exerciseDetails value into the
// tagged union, dropping elements that lack a usable name.
func sanitizeExercises(v any) models.ExerciseDetails {
	switch value := v.(type) {
	case map[string]any:
		if d, ok := sanitizeExercise(value); ok {
			return models.SingleExercise(d)
		}
	case []any:
		var exercises []models.ExerciseDetail
		for _, el := range value {
			m, ok := el.(map[string]any)
			if !ok {
				continue
			}
			if d, ok := sanitizeExercise(m); ok {
				exercises = append(exercises, d)
			}
		}
		if len(exercises) > 0 {
			return models.ExerciseList(exercises)
		}
	}
	return models.ExerciseDetails{}
}

func sanitizeExercise(m map[string]any) (models.ExerciseDetail, bool) {
	name, ok := m["name"].(string)
	if !ok || strings.TrimSpace(name) == "" {
		return models.ExerciseDetail{}, false
	}
	detail := models.ExerciseDetail{
		Name: name,
		Sets: int(coerceNumber(m["sets"])),
	}
	switch reps := m["reps"].(type) {
	case float64:
		detail.Reps = models.RepCount(int(reps))
	case string:
		detail.Reps = models.RepDuration(reps)
	default:
		detail.Reps = models.RepCount(0)
	}
	return detail, true
}

// sanitizeTasks converts the mixed string/object dailyTasks elements into
// the tagged union, dropping anything unrecognizable.
func sanitizeTasks(list []any) []models.DailyTask {
	tasks := make([]models.DailyTask, 0, len(list))
	for _, el := range list {
		switch value := el.(type) {
		case string:
			if value != "" {
				tasks = append(tasks, models.PlainTask(value))
			}
		case map[string]any:
			task := models.TimedTask(stringField(value, "time"), stringField(value, "emoji"), stringField(value, "title"))
			if task.Title != "" || task.Time != "" {
				tasks = append(tasks, task)
			}
		}
	}
	return tasks
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
