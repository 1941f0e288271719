package config

const (
	// DefaultImportMaxBytes mirrors the server-side CSV import ceiling, so
	// oversized files are rejected locally before any network call.
	DefaultImportMaxBytes = 5 << 20

	// DefaultDocumentMaxBytes is the single-document upload ceiling.
	DefaultDocumentMaxBytes = 10 << 20
)

// LimitsConfig holds client-side upload ceilings. Files above these sizes
// are rejected before any network call; the server enforces its own limits
// independently.
type LimitsConfig struct {
	ImportMaxBytes   int64 `env:"IMPORT_MAX_BYTES"   envDefault:"5242880"`
	DocumentMaxBytes int64 `env:"DOCUMENT_MAX_BYTES" envDefault:"10485760"`
}

// Sanitize applies guardrails to limit configuration values.
func (l *LimitsConfig) Sanitize() {
	if l.ImportMaxBytes <= 0 {
		l.ImportMaxBytes = DefaultImportMaxBytes
	}
	if l.DocumentMaxBytes <= 0 {
		l.DocumentMaxBytes = DefaultDocumentMaxBytes
	}
}
