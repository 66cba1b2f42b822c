package report

// Report describes one imagekit run.
type Report struct {
	Version     int               `json:"version"`
	GeneratedAt string            `json:"generated_at"`
	Operation   string            `json:"operation"`        // "reduce", "resize", "scale"
	Params      map[string]string `json:"params,omitempty"` // flag values as given
	Input       File              `json:"input"`
	Output      File              `json:"output"`
	ElapsedMS   int64             `json:"elapsed_ms"`
}

// File holds metadata about one image on disk.
type File struct {
	Path        string `json:"path"`
	Format      string `json:"format,omitempty"`       // empty for inputs
	ContentType string `json:"content_type,omitempty"` // MIME type of Format
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Size        int64  `json:"size"` // bytes
	Hash        string `json:"hash"` // 16 hex chars of xxhash64
}

// SupportedVersion is the current schema version.
const SupportedVersion = 1
