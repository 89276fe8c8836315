package validation

import "strings"

// Error is one rule violation attached to a submission field.
type Error struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the ordered set of violations for one submission.
type Errors []Error

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, err := range e {
		parts[i] = err.Field + ": " + err.Message
	}
	return strings.Join(parts, "; ")
}

func (e Errors) Map() map[string]string {
	out := make(map[string]string, len(e))
	for _, err := range e {
		out[err.Field] = err.Message
	}
	return out
}
