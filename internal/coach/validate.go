package coach

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// requiredKeys are the top-level keys every provider reply must carry, in
// the order they are checked and reported. youtubeLink is optional.
var requiredKeys = []string{"response", "exerciseDetails", "dailyTasks", "counters"}

// counterFields are the tallies every counters object must carry.
var counterFields = []string{"calories", "points", "tasksCompleted"}

// ValidationErrorKind classifies a schema validation failure.
type ValidationErrorKind string

const (
	// ValidationMalformed indicates the candidate was not parseable JSON.
	ValidationMalformed ValidationErrorKind = "malformed"
	// ValidationMissingKeys indicates required top-level keys were absent.
	ValidationMissingKeys ValidationErrorKind = "missing_keys"
	// ValidationWrongType indicates a present field had an unacceptable type.
	ValidationWrongType ValidationErrorKind = "wrong_type"
)

// ValidationError describes a schema validation failure precisely enough
// for diagnosability: all missing keys are enumerated at once, and type
// errors name the field and, for array elements, the offending index.
type ValidationError struct {
	Kind        ValidationErrorKind
	MissingKeys []string
	Field       string
	Index       int // element index for exerciseDetails arrays, -1 otherwise
	Err         error
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case ValidationMalformed:
		return fmt.Sprintf("malformed JSON: %v", e.Err)
	case ValidationMissingKeys:
		return fmt.Sprintf("missing required keys: %s", strings.Join(e.MissingKeys, ", "))
	default:
		if e.Index >= 0 {
			return fmt.Sprintf("field %s[%d]: %v", e.Field, e.Index, e.Err)
		}
		return fmt.Sprintf("field %s: %v", e.Field, e.Err)
	}
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func wrongType(field string, index int, detail string) *ValidationError {
	return &ValidationError{Kind: ValidationWrongType, Field: field, Index: index, Err: fmt.Errorf("%s", detail)}
}

// Document is a provider reply parsed as loosely-typed JSON. The validator
// checks it and the sanitizer coerces it into a models.FitnessReply.
type Document map[string]any

// ParseDocument parses a JSON candidate into a Document. A parse failure or
// a non-object top level is a malformed-kind ValidationError.
func ParseDocument(candidate string) (Document, error) {
	var doc Document
	if err := json.Unmarshal([]byte(candidate), &doc); err != nil {
		return nil, &ValidationError{Kind: ValidationMalformed, Index: -1, Err: err}
	}
	return doc, nil
}

// Validate parses the candidate and checks it against the reply contract.
func Validate(candidate string) (Document, error) {
	doc, err := ParseDocument(candidate)
	if err != nil {
		return nil, err
	}
	if err := ValidateDocument(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// ValidateDocument checks a parsed reply against the contract. Key presence
// is checked before any type check, so a missing key is never reported as a
// type error, and every missing key is reported in one error.
func ValidateDocument(doc Document) error {
	var missing []string
	for _, key := range requiredKeys {
		if _, ok := doc[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Kind: ValidationMissingKeys, MissingKeys: missing, Index: -1}
	}

	counters, ok := doc["counters"].(map[string]any)
	if !ok {
		return wrongType("counters", -1, "must be an object")
	}
	for _, field := range counterFields {
		if !isNumeric(counters[field]) {
			return wrongType("counters."+field, -1, "must be a number")
		}
	}

	if _, ok := doc["dailyTasks"].([]any); !ok {
		return wrongType("dailyTasks", -1, "must be an array")
	}

	switch v := doc["exerciseDetails"].(type) {
	case []any:
		if len(v) == 0 {
			return wrongType("exerciseDetails", -1, "array cannot be empty")
		}
		for i, el := range v {
			if err := validateExercise(el, i); err != nil {
				return err
			}
		}
	case map[string]any:
		if err := validateExercise(v, -1); err != nil {
			return err
		}
	default:
		return wrongType("exerciseDetails", -1, "must be an object or an array of objects")
	}

	// youtubeLink is optional; null is tolerated and dropped by the sanitizer.
	if v, ok := doc["youtubeLink"]; ok && v != nil {
		if _, ok := v.(string); !ok {
			return wrongType("youtubeLink", -1, "must be a string")
		}
	}

	if _, ok := doc["response"].(string); !ok {
		return wrongType("response", -1, "must be a string")
	}

	return nil
}

// validateExercise checks one exercise prescription. index is -1 for the
// single-object shape.
func validateExercise(el any, index int) error {
	m, ok := el.(map[string]any)
	if !ok {
		return wrongType("exerciseDetails", index, "must be an object")
	}
	name, ok := m["name"].(string)
	if !ok || strings.TrimSpace(name) == "" {
		return wrongType("exerciseDetails.name", index, "must be a non-empty string")
	}
	if _, ok := m["sets"].(float64); !ok {
		return wrongType("exerciseDetails.sets", index, "must be a number")
	}
	switch m["reps"].(type) {
	case float64, string:
	default:
		return wrongType("exerciseDetails.reps", index, "must be a number or a string")
	}
	return nil
}

// isNumeric reports whether the value is a JSON number or a numeric string.
func isNumeric(v any) bool {
	switch n := v.(type) {
	case float64:
		return true
	case string:
		_, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return err == nil
	default:
		return false
	}
}
