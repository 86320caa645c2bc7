package signer

// Signer interface for signing release artifacts
type Signer interface {
	// SignDetached creates an armored detached signature
	SignDetached(data []byte) ([]byte, error)

	// GetPublicKey returns the public key in armored format
	GetPublicKey() ([]byte, error)
}
