package coach

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNoJSONFound indicates no plausible JSON object could be located in the
// provider's raw output.
var ErrNoJSONFound = errors.New("no JSON object found in provider output")

// fencedJSONBlock matches a triple-backtick code block tagged json. The
// provider alternates between fenced and bare JSON unpredictably.
var fencedJSONBlock = regexp.MustCompile("(?s)```json\\s*(.*?)```")

// ExtractJSON locates the JSON candidate inside raw provider text. It first
// looks for a fenced ```json block; failing that, it accepts the whole
// trimmed text when it is brace-delimited. Anything else is ErrNoJSONFound.
func ExtractJSON(raw string) (string, error) {
	if m := fencedJSONBlock.FindStringSubmatch(raw); m != nil {
		candidate := strings.TrimSpace(m[1])
		if candidate != "" {
			return candidate, nil
		}
	}
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") {
		return trimmed, nil
	}
	return "", ErrNoJSONFound
}
