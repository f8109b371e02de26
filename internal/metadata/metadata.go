// Package metadata reads and writes key=value marker lines kept at the end
// of task notes. Markers carry data Google Tasks has no field for.
package metadata

import (
	"fmt"
	"strings"
)

const (
	// KeyRRule holds an RRULE for a recurring task.
	KeyRRule = "taskdeck_rrule"
	// KeySource names the app a task was captured from.
	KeySource = "taskdeck_source"
	// KeyLink is a deep link back to the captured item.
	KeyLink = "taskdeck_link"
)

var Keys = []string{KeyRRule, KeySource, KeyLink}

func Append(text, key, value string) string {
	marker := fmt.Sprintf("%s=%s", key, value)
	if strings.Contains(text, marker) {
		return text
	}
	if strings.TrimSpace(text) == "" {
		return marker
	}
	return strings.TrimRight(text, " \t\n") + "\n" + marker
}

// Split separates the user-visible body of notes from the known markers.
func Split(text string) (string, map[string]string) {
	fields := map[string]string{}
	var body []string
	for _, line := range strings.Split(text, "\n") {
		if key, value, ok := marker(line); ok {
			fields[key] = value
			continue
		}
		body = append(body, line)
	}
	return strings.TrimRight(strings.Join(body, "\n"), " \t\n"), fields
}

// Join is the inverse of Split. Markers are written in Keys order so saving
// unchanged notes is stable.
func Join(body string, fields map[string]string) string {
	out := body
	for _, key := range Keys {
		if value, ok := fields[key]; ok && value != "" {
			out = Append(out, key, value)
		}
	}
	return out
}

func marker(line string) (string, string, bool) {
	line = strings.TrimSpace(line)
	for _, key := range Keys {
		if value, ok := strings.CutPrefix(line, key+"="); ok {
			return key, value, true
		}
	}
	return "", "", false
}
