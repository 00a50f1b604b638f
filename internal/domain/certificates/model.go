package certificates

// MintFee es lo que debita el ledger por cada certificado.
const MintFee uint64 = 50

// Certificate ("breed token") es inmutable una vez minteado.
// ID es un contador monótono: se asigna secuencialmente y nunca se reusa.
type Certificate struct {
	ID       uint64
	Owner    string
	Breed    string
	ImageRef string
}
