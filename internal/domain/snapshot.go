package domain

import (
	"sort"
	"time"
)

// Token identifica un token del universo monitorizado por su símbolo.
type Token string

// Tokens del ecosistema Venice. USDC es la unidad base de capital.
const (
	USDC Token = "USDC"
	VVV  Token = "VVV"  // token colateral (se stakea como sVVV para mintear)
	DIEM Token = "DIEM" // token derivado — $1/día de crédito API
)

// MarketSnapshot es una observación inmutable de precios en un tick.
// Se construye una vez por ciclo de monitoreo y todos los componentes
// downstream la consumen en solo lectura.
type MarketSnapshot struct {
	Timestamp time.Time
	// MintRate es el rate de minteo en sVVV por DIEM.
	MintRate float64

	prices map[Token]float64
}

// NewSnapshot construye un snapshot copiando el mapa de precios, de forma
// que mutaciones posteriores del caller no afecten al snapshot.
func NewSnapshot(ts time.Time, prices map[Token]float64, mintRate float64) MarketSnapshot {
	cp := make(map[Token]float64, len(prices))
	for tok, p := range prices {
		cp[tok] = p
	}
	return MarketSnapshot{Timestamp: ts, MintRate: mintRate, prices: cp}
}

// Price devuelve el precio USD del token. ok=false si el token no está
// en el snapshot.
func (s MarketSnapshot) Price(tok Token) (float64, bool) {
	p, ok := s.prices[tok]
	return p, ok
}

// Tokens devuelve los tokens presentes en el snapshot en orden lexicográfico.
func (s MarketSnapshot) Tokens() []Token {
	out := make([]Token, 0, len(s.prices))
	for tok := range s.prices {
		out = append(out, tok)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
