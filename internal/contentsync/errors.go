package contentsync

import (
	"errors"
	"strings"
)

var (
	// ErrVersionConflict means the stored page changed since the editor loaded it.
	ErrVersionConflict = errors.New("content was modified by another save")
	ErrUnknownType     = errors.New("unknown content type")
)

// FieldError is one rejected document field, addressed by its JSON path.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned before any upload or store write happens.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f.Field == "" {
			parts = append(parts, f.Message)
			continue
		}
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "invalid content: " + strings.Join(parts, "; ")
}
