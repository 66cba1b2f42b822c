package codec

import (
	"fmt"
	"strings"
)

// Registry holds one encoder per output format.
type Registry struct {
	encoders map[Format]Encoder
}

// NewRegistry creates a registry with the built-in JPEG and PNG encoders.
func NewRegistry() *Registry {
	r := &Registry{
		encoders: make(map[Format]Encoder),
	}
	r.Register(&JPEGEncoder{})
	r.Register(&PNGEncoder{})
	return r
}

// Register adds enc, replacing any encoder already present for its format.
func (r *Registry) Register(enc Encoder) {
	r.encoders[enc.Format()] = enc
}

// Get returns the encoder for the given format.
func (r *Registry) Get(format Format) (Encoder, bool) {
	enc, ok := r.encoders[format]
	return enc, ok
}

// Formats returns all registered formats in priority order.
func (r *Registry) Formats() []Format {
	var result []Format
	for _, f := range []Format{JPEG, PNG} {
		if _, ok := r.encoders[f]; ok {
			result = append(result, f)
		}
	}
	return result
}

// String returns a summary of registered encoders.
func (r *Registry) String() string {
	formats := r.Formats()
	if len(formats) == 0 {
		return "no encoders available"
	}
	names := make([]string, 0, len(formats))
	for _, f := range formats {
		names = append(names, f.String())
	}
	return fmt.Sprintf("encoders: %s", strings.Join(names, ", "))
}
