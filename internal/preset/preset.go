// Package preset holds named defaults for output format and JPEG quality.
package preset

import "github.com/nguyenthanhliemfc/imagekit/internal/codec"

// Preset supplies defaults for flags the user did not set.
type Preset struct {
	Name    string
	Format  codec.Format
	Quality int // JPEG quality 1-100
}

// DefaultName is used for unknown or empty preset names.
const DefaultName = "default"

var presets = map[string]Preset{
	DefaultName: {
		Name:    DefaultName,
		Format:  codec.JPEG,
		Quality: 90,
	},
	"web": {
		Name:    "web",
		Format:  codec.JPEG,
		Quality: 82,
	},
	"thumbnail": {
		Name:    "thumbnail",
		Format:  codec.JPEG,
		Quality: 70,
	},
	"lossless": {
		Name:    "lossless",
		Format:  codec.PNG,
		Quality: 100,
	},
}

// Get returns a preset by name. Get is lenient: an unknown name yields the
// default preset's settings under the requested name, so library callers
// never need an error path. Use Known to reject unknown names up front, as
// config.Validate does for the CLI.
func Get(name string) Preset {
	if p, ok := presets[name]; ok {
		return p
	}
	p := presets[DefaultName]
	if name != "" {
		p.Name = name
	}
	return p
}

// Known reports whether name is a built-in preset.
func Known(name string) bool {
	_, ok := presets[name]
	return ok
}

// Names lists built-in presets in display order.
func Names() []string {
	return []string{DefaultName, "web", "thumbnail", "lossless"}
}
