package ledger

// WelcomeBonus es el airdrop one-time por identidad.
// MintFee vive en certificates; acá solo importa el monto del bonus.
const WelcomeBonus uint64 = 10000

// Balance expone el saldo de una identidad para las respuestas HTTP.
type Balance struct {
	Identity string
	Amount   uint64
}
