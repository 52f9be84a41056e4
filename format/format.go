package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/dhamidi/jclass/java"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(model *java.ClassModel) error
}

// New returns the encoder registered under name, writing to w.
// Recognized names are "json", "text" and "java" (an alias for "text").
func New(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "json":
		return NewJSONEncoder(w), nil
	case "text", "java":
		return NewTextEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown output format: %q", name)
}
