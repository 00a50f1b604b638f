package animals

import "time"

// Animal es el registro de pedigree de un animal.
// Sire/Dam referencian animales que ya existían al momento del alta, así que
// el grafo de parentesco es acíclico por construcción: un animal solo puede
// apuntar a animales creados estrictamente antes.
type Animal struct {
	ID          string
	MicrochipID string

	Species string
	Breed   string
	Name    string

	// Owner es mutable vía transferencia; Breeder queda fijo al alta.
	Owner   string
	Breeder string

	Sire    *string
	Dam     *string
	DNAHash *string

	BirthDate time.Time
	Verified  bool
}

// Litter es inmutable una vez creada.
type Litter struct {
	ID string

	Sire      string
	Dam       string
	Offspring []string

	Breeder   string
	BirthDate time.Time
}
