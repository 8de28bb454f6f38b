package domain

import "sort"

// CrossVenueSpread es una divergencia de precio del mismo token entre dos
// venues: comprar en el barato, vender en el caro.
type CrossVenueSpread struct {
	Token        Token
	BuyVenue     string
	BuyPriceUSD  float64
	SellVenue    string
	SellPriceUSD float64
	SpreadUSD    float64
	SpreadPct    float64
}

// DetectCrossVenue busca la mayor divergencia entre los precios por venue
// de un token. ok=false si hay menos de dos precios válidos o el spread no
// alcanza minSpreadPct. La selección entre venues empatados es determinista
// (orden lexicográfico de venue).
func DetectCrossVenue(tok Token, prices map[string]float64, minSpreadPct float64) (CrossVenueSpread, bool) {
	venues := make([]string, 0, len(prices))
	for venue, p := range prices {
		if p > 0 {
			venues = append(venues, venue)
		}
	}
	if len(venues) < 2 {
		return CrossVenueSpread{}, false
	}
	sort.Strings(venues)

	buy, sell := venues[0], venues[0]
	for _, v := range venues[1:] {
		if prices[v] < prices[buy] {
			buy = v
		}
		if prices[v] > prices[sell] {
			sell = v
		}
	}

	spreadUSD := prices[sell] - prices[buy]
	spreadPct := spreadUSD / prices[buy] * 100
	if spreadPct < minSpreadPct {
		return CrossVenueSpread{}, false
	}

	return CrossVenueSpread{
		Token:        tok,
		BuyVenue:     buy,
		BuyPriceUSD:  prices[buy],
		SellVenue:    sell,
		SellPriceUSD: prices[sell],
		SpreadUSD:    spreadUSD,
		SpreadPct:    spreadPct,
	}, true
}
