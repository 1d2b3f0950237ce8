// Package models defines the core data structures for FitQuest.
//
// It includes the user context sent to the coaching pipeline, the canonical
// fitness reply returned to callers, and the chat message records shared
// across modules.
package models

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// House identifies the fitness house a user belongs to.
type House string

const (
	// HouseValor is the strength and endurance house, coached by Maximus.
	HouseValor House = "Valor"
	// HouseLumina is the flexibility and mindfulness house, coached by Serene.
	HouseLumina House = "Lumina"
	// HouseNova is the agility and HIIT house, coached by Lyra.
	HouseNova House = "Nova"
)

// IsValidHouse checks if the given house is one of the known houses.
func IsValidHouse(h House) bool {
	switch h {
	case HouseValor, HouseLumina, HouseNova:
		return true
	default:
		return false
	}
}

// Error variables for better error handling and testability
var (
	ErrEmptyUserName = errors.New("user name cannot be empty")
	ErrEmptyMessage  = errors.New("message cannot be empty")
	ErrEmptyUserID   = errors.New("user ID cannot be empty")
	ErrInvalidSender = errors.New("invalid message sender")
	ErrInvalidReps   = errors.New("reps must be a number or a string")
)

// UserContext carries the user profile and latest chat input for one
// coaching request. It is immutable per call.
type UserContext struct {
	Name                  string   `json:"name"`
	House                 House    `json:"house"`
	BMI                   float64  `json:"bmi"`
	Height                float64  `json:"height"`
	Weight                float64  `json:"weight"`
	ExerciseLevel         string   `json:"exerciseLevel"`
	Goals                 []string `json:"goals"`
	TargetedCalorieIntake *float64 `json:"targetedCalorieIntake,omitempty"`
	Message               string   `json:"message"`
}

// Validate performs basic validation on a UserContext. An unknown house is
// deliberately not an error: prompt construction degrades to a neutral
// persona instead.
func (c *UserContext) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyUserName
	}
	if strings.TrimSpace(c.Message) == "" {
		return ErrEmptyMessage
	}
	return nil
}

// Reps is the repetition prescription for an exercise. It is either a
// numeric rep count or a free-text duration such as "30 seconds".
type Reps struct {
	Count    int
	Duration string
}

// RepCount returns a numeric Reps value.
func RepCount(n int) Reps {
	return Reps{Count: n}
}

// RepDuration returns a free-text Reps value.
func RepDuration(text string) Reps {
	return Reps{Duration: text}
}

// IsDuration reports whether the reps are expressed as free text.
func (r Reps) IsDuration() bool {
	return r.Duration != ""
}

// MarshalJSON emits the value in the same shape it arrived in: a JSON
// number for rep counts, a JSON string for durations.
func (r Reps) MarshalJSON() ([]byte, error) {
	if r.IsDuration() {
		return json.Marshal(r.Duration)
	}
	return json.Marshal(r.Count)
}

// UnmarshalJSON accepts either a JSON number or a JSON string.
func (r *Reps) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*r = Reps{Count: int(n)}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*r = Reps{Duration: s}
		return nil
	}
	return ErrInvalidReps
}

// ExerciseDetail describes a single prescribed exercise.
type ExerciseDetail struct {
	Name string `json:"name"`
	Sets int    `json:"sets"`
	Reps Reps   `json:"reps"`
}

// ExerciseDetails is the exercise prescription of a reply. The provider is
// instructed to return one exercise at a time but sometimes returns a list;
// both shapes are preserved through serialization.
type ExerciseDetails struct {
	Exercises []ExerciseDetail
	// Single records that the value arrived as (and marshals back to) a
	// bare object rather than a one-element array.
	Single bool
}

// SingleExercise wraps one exercise in the single-object shape.
func SingleExercise(d ExerciseDetail) ExerciseDetails {
	return ExerciseDetails{Exercises: []ExerciseDetail{d}, Single: true}
}

// ExerciseList wraps multiple exercises in the array shape.
func ExerciseList(ds []ExerciseDetail) ExerciseDetails {
	return ExerciseDetails{Exercises: ds}
}

// IsEmpty reports whether no exercise was prescribed.
func (d ExerciseDetails) IsEmpty() bool {
	return len(d.Exercises) == 0
}

// MarshalJSON emits a bare object for a single exercise, an array for
// multiple, and an empty object when nothing was prescribed.
func (d ExerciseDetails) MarshalJSON() ([]byte, error) {
	if d.IsEmpty() {
		return []byte("{}"), nil
	}
	if d.Single && len(d.Exercises) == 1 {
		return json.Marshal(d.Exercises[0])
	}
	return json.Marshal(d.Exercises)
}

// UnmarshalJSON accepts a single exercise object, an array of exercise
// objects, or an empty object.
func (d *ExerciseDetails) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var list []ExerciseDetail
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*d = ExerciseDetails{Exercises: list}
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if len(fields) == 0 {
		*d = ExerciseDetails{}
		return nil
	}
	var single ExerciseDetail
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*d = SingleExercise(single)
	return nil
}

// DailyTask is one entry of a reply's task list. Older prompt templates
// produce plain string labels; newer ones produce a timed entry with an
// emoji and title.
type DailyTask struct {
	Label string
	Time  string
	Emoji string
	Title string
}

// PlainTask returns a plain-label task.
func PlainTask(label string) DailyTask {
	return DailyTask{Label: label}
}

// TimedTask returns a rich task with a display time and emoji.
func TimedTask(timeOfDay, emoji, title string) DailyTask {
	return DailyTask{Time: timeOfDay, Emoji: emoji, Title: title}
}

// IsPlain reports whether the task is a bare string label.
func (t DailyTask) IsPlain() bool {
	return t.Label != ""
}

// MarshalJSON emits a JSON string for plain tasks and an object for timed
// tasks.
func (t DailyTask) MarshalJSON() ([]byte, error) {
	if t.IsPlain() {
		return json.Marshal(t.Label)
	}
	return json.Marshal(struct {
		Time  string `json:"time"`
		Emoji string `json:"emoji"`
		Title string `json:"title"`
	}{Time: t.Time, Emoji: t.Emoji, Title: t.Title})
}

// UnmarshalJSON accepts either a JSON string or a timed-task object.
func (t *DailyTask) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err == nil {
		*t = DailyTask{Label: label}
		return nil
	}
	var rich struct {
		Time  string `json:"time"`
		Emoji string `json:"emoji"`
		Title string `json:"title"`
	}
	if err := json.Unmarshal(data, &rich); err != nil {
		return err
	}
	*t = DailyTask{Time: rich.Time, Emoji: rich.Emoji, Title: rich.Title}
	return nil
}

// Counters are the gamification tallies attached to every reply. After
// sanitization all three fields are always present, defaulting to zero.
type Counters struct {
	Calories       float64 `json:"calories"`
	Points         float64 `json:"points"`
	TasksCompleted float64 `json:"tasksCompleted"`
}

// FallbackResponseText is the user-visible message substituted when any
// pipeline stage fails.
const FallbackResponseText = "Sorry, I encountered an issue processing your request. Please try again."

// DefaultResponseText is substituted when the provider omits the advice
// text but the rest of the reply is usable.
const DefaultResponseText = "No response provided."

// FitnessReply is the canonical coaching reply. It is the only type
// downstream consumers see, is constructed fresh per provider call, and is
// never mutated after construction.
type FitnessReply struct {
	Response        string          `json:"response"`
	YouTubeLink     string          `json:"youtubeLink"`
	ExerciseDetails ExerciseDetails `json:"exerciseDetails"`
	DailyTasks      []DailyTask     `json:"dailyTasks"`
	Counters        Counters        `json:"counters"`
}

// FallbackReply returns the canonical reply used when the provider call or
// response processing fails. All collections are empty and all counters are
// zero so the chat UI can render it without additional checks.
func FallbackReply() FitnessReply {
	return FitnessReply{
		Response:   FallbackResponseText,
		DailyTasks: []DailyTask{},
	}
}

// Sender identifies who authored a chat message.
type Sender string

const (
	// SenderUser marks a message typed by the user.
	SenderUser Sender = "user"
	// SenderCoach marks a reply produced by the coaching pipeline.
	SenderCoach Sender = "coach"
)

// IsValidSender checks if the given sender is supported.
func IsValidSender(s Sender) bool {
	switch s {
	case SenderUser, SenderCoach:
		return true
	default:
		return false
	}
}

// ChatMessage is one record of the append-only per-user message log. Coach
// messages embed the structured reply so the UI can re-render exercise
// cards from history.
type ChatMessage struct {
	ID     string        `json:"id"`
	UserID string        `json:"user_id"`
	Sender Sender        `json:"sender"`
	Text   string        `json:"text"`
	Reply  *FitnessReply `json:"reply,omitempty"`
	Time   int64         `json:"time"`
}

// NewChatMessage builds a chat message with a fresh ID and the current
// timestamp.
func NewChatMessage(userID string, sender Sender, text string) ChatMessage {
	return ChatMessage{
		ID:     uuid.NewString(),
		UserID: userID,
		Sender: sender,
		Text:   text,
		Time:   time.Now().Unix(),
	}
}

// Validate performs validation on a ChatMessage before persistence.
func (m *ChatMessage) Validate() error {
	if m.UserID == "" {
		return ErrEmptyUserID
	}
	if !IsValidSender(m.Sender) {
		return ErrInvalidSender
	}
	return nil
}

// ClassificationProfile is the onboarding profile submitted for house
// classification.
type ClassificationProfile struct {
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Age           int      `json:"age"`
	Height        float64  `json:"height"`
	Weight        float64  `json:"weight"`
	BMI           float64  `json:"bmi"`
	ExerciseLevel string   `json:"exercise_level"`
	Preferences   []string `json:"preferences"`
}

// HouseAssignment is the classifier's verdict: the assigned house and
// trainer plus the model's target BMI and calorie recommendation.
type HouseAssignment struct {
	House               string  `json:"house"`
	Trainer             string  `json:"trainer"`
	Justification       string  `json:"justification"`
	TargetBMI           float64 `json:"target_bmi"`
	RecommendedCalories float64 `json:"recommended_calories_per_day"`
}

// API response types for consistent JSON responses

// APIStatus represents the status of an API response.
type APIStatus string

const (
	// APIStatusOK indicates an API request completed successfully.
	APIStatusOK APIStatus = "ok"
	// APIStatusError indicates an API request failed with an error.
	APIStatusError APIStatus = "error"
)

// APIResponse represents a standard API response with a status and optional data.
type APIResponse struct {
	Status  string      `json:"status"`            // status of the API response
	Message string      `json:"message,omitempty"` // optional message for error responses or additional info
	Result  interface{} `json:"result,omitempty"`  // optional result data for successful responses
}

// Success creates a successful API response with optional result data.
func Success(result interface{}) APIResponse {
	return APIResponse{Status: string(APIStatusOK), Result: result}
}

// SuccessWithMessage creates a successful API response with a message and result data.
func SuccessWithMessage(message string, result interface{}) APIResponse {
	return APIResponse{Status: string(APIStatusOK), Message: message, Result: result}
}

// Error creates an error API response with a message.
func Error(message string) APIResponse {
	return APIResponse{Status: string(APIStatusError), Message: message}
}
