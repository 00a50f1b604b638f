package auth

// Claims representa la identidad autenticada que llega con cada llamada.
// Identity es una credencial opaca: este servicio nunca la genera,
// solo la usa como clave de ownership, autoría y balances.
type Claims struct {
	Identity string
	Name     string
}
