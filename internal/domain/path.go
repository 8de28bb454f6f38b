package domain

import "strings"

// HopKind es el conjunto cerrado de operaciones que componen un path.
// El Evaluator hace switch exhaustivo sobre este tipo.
type HopKind int

const (
	HopSwap HopKind = iota // intercambio en un pool
	HopMint                // mintear derivado con colateral (sin pool, usa MintRate)
	HopBurn                // vender el derivado a precio de mercado
)

func (k HopKind) String() string {
	switch k {
	case HopSwap:
		return "swap"
	case HopMint:
		return "mint"
	case HopBurn:
		return "burn"
	default:
		return "unknown"
	}
}

// Hop es un paso de un path: swap contra un pool, o mint/burn del mecanismo
// de Venice (pseudo-hops sin pool).
type Hop struct {
	Kind HopKind
	In   Token
	Out  Token
	Pool *Pool // solo para HopSwap; nil en mint/burn
}

// SwapHop crea un hop de swap contra el pool dado.
func SwapHop(pool *Pool, in, out Token) Hop {
	return Hop{Kind: HopSwap, In: in, Out: out, Pool: pool}
}

// MintHop crea el pseudo-hop de minteo: capital base → token derivado.
func MintHop(base, derived Token) Hop {
	return Hop{Kind: HopMint, In: base, Out: derived}
}

// BurnHop crea el pseudo-hop de venta del derivado de vuelta al capital base.
func BurnHop(derived, base Token) Hop {
	return Hop{Kind: HopBurn, In: derived, Out: base}
}

// Path es una secuencia ordenada de hops que empieza y termina en el token
// base de capital. Invariante: Hops[i].Out == Hops[i+1].In.
type Path struct {
	Hops []Hop
}

// Base devuelve el token de capital del path (token de entrada del primer hop).
func (p Path) Base() Token {
	if len(p.Hops) == 0 {
		return ""
	}
	return p.Hops[0].In
}

// IsMint devuelve true si el path usa el mecanismo mint/burn.
func (p Path) IsMint() bool {
	for _, h := range p.Hops {
		if h.Kind == HopMint || h.Kind == HopBurn {
			return true
		}
	}
	return false
}

// Valid verifica los invariantes estructurales: hops encadenados y
// principio/fin en el mismo token base.
func (p Path) Valid() bool {
	if len(p.Hops) == 0 {
		return false
	}
	for i := 0; i < len(p.Hops)-1; i++ {
		if p.Hops[i].Out != p.Hops[i+1].In {
			return false
		}
	}
	return p.Hops[0].In == p.Hops[len(p.Hops)-1].Out
}

// Key devuelve una representación canónica del path, usada para orden
// determinista y display: "USDC>mint:DIEM>burn:USDC".
func (p Path) Key() string {
	if len(p.Hops) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(string(p.Hops[0].In))
	for _, h := range p.Hops {
		sb.WriteString(">")
		if h.Kind != HopSwap {
			sb.WriteString(h.Kind.String())
			sb.WriteString(":")
		}
		sb.WriteString(string(h.Out))
	}
	return sb.String()
}
