package entities

// Strategy names the lookup that produced a Coordinate
type Strategy string

const (
	StrategyChecksum Strategy = "checksum"
	StrategyManifest Strategy = "manifest"
	StrategyNone     Strategy = "none"
)

// SignatureStatus is the outcome of the optional detached-signature check
type SignatureStatus string

const (
	SignatureNotChecked SignatureStatus = ""
	SignatureUnsigned   SignatureStatus = "unsigned"
	SignatureVerified   SignatureStatus = "verified"
	SignatureFailed     SignatureStatus = "failed"
)

// Identification is the result of identifying one artifact
type Identification struct {
	Artifact   *Artifact
	Checksum   string // SHA-1 hex, empty if it could not be computed
	Strategy   Strategy
	Coordinate Coordinate
	Signature  SignatureStatus
	SignedBy   string // key fingerprint when Signature is verified
}

// Identified reports whether any strategy produced a coordinate
func (i *Identification) Identified() bool {
	return i.Strategy != StrategyNone && !i.Coordinate.IsEmpty()
}
