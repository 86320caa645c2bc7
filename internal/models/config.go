package models

// BuildConfig contains configuration for a single aurgen invocation
type BuildConfig struct {
	// Input/Output
	ManifestPath string
	ProjectDir   string
	OutputDir    string

	// Build mode
	Musl bool

	// Generate mode
	InputArchive string

	// Signing
	GPGKeyPath    string
	GPGPassphrase string
}
