package users

import "time"

// User es el registro de identidad de un caller. El balance de tokens
// pertenece lógicamente al usuario pero lo muta solo el ledger (ver
// internal/domain/ledger); por eso no vive en este struct.
type User struct {
	Identity string

	// Name es opcional: el registro por identidad pura lo deja vacío.
	// Cuando se usa registro por nombre, Name es único entre todos los users.
	Name           string
	CredentialHash []byte

	Verified     bool
	RegisteredAt time.Time
}
