package save

import "fmt"

// EncodeError reports a value the layout cannot hold, or a short buffer.
type EncodeError struct {
	Field  string
	Reason string
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("save: cannot encode %s: %s", e.Field, e.Reason)
}

// DecodeError reports a malformed image.
type DecodeError struct {
	Offset int
	Field  string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("save: cannot decode %s at offset %d: %s", e.Field, e.Offset, e.Reason)
}
