package domain

// Pool es un pool de liquidez conocido para un par de tokens.
// Invariante: TokenA != TokenB.
type Pool struct {
	Venue        string // "aerodrome", "uniswap-base", etc.
	TokenA       Token
	TokenB       Token
	LiquidityUSD float64 // siempre ≥ 0
	Volume24hUSD float64 // siempre ≥ 0
}

// Involves devuelve true si el pool contiene el token dado.
func (p Pool) Involves(tok Token) bool {
	return p.TokenA == tok || p.TokenB == tok
}

// Other devuelve el otro lado del par. ok=false si el token no pertenece al pool.
func (p Pool) Other(tok Token) (Token, bool) {
	switch tok {
	case p.TokenA:
		return p.TokenB, true
	case p.TokenB:
		return p.TokenA, true
	}
	return "", false
}
