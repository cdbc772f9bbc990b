package engine

import (
	"fmt"
	"math"
	"sort"

	"eve-seeker/internal/market"
)

const (
	// HubRegionID is The Forge (home of Jita), the reference trade hub.
	HubRegionID = 10000002
	// HubPremium is how much more per unit the hub may charge and still win
	// the best-sell slot: its liquidity is worth a mild price premium.
	HubPremium = 1.15
	// noiseMedianThreshold filters out items whose median sell price marks
	// them as too illiquid or low-value to matter.
	noiseMedianThreshold = 500
)

// regionQuote is the per-region scan result for one item. Every field is
// always initialized: a side that fails its guards keeps the sentinel price
// and a zero volume.
type regionQuote struct {
	sellUnit   float64 // volume-weighted sell price per unit, +Inf if unavailable
	buyUnit    float64 // volume-weighted buy price per unit, 0 if unavailable
	sellVolume int64
	buyVolume  int64
}

// RankMargins scans the snapshot for the best cross-region buy/sell pairing
// per item and returns the top-N items by margin, descending. Items that
// pass the liquidity filter but never find an eligible pairing stay in the
// result at margin 0 and sort to the bottom.
func RankMargins(snapshot market.Snapshot, p Params) ([]Deal, error) {
	if p.TopN <= 0 {
		return nil, fmt.Errorf("top n must be positive, got %d", p.TopN)
	}
	maxValue := p.MaxValue
	if maxValue <= 0 {
		maxValue = math.Inf(1)
	}

	var deals []Deal
	for _, typeID := range snapshot.Types() {
		regions := snapshot[typeID]

		// Liquidity filter on the raw, unrestricted order set: the median
		// sell price across all regions, before any eligibility filtering.
		var sellPrices []float64
		for _, summary := range regions {
			for _, lot := range summary.Sell {
				sellPrices = append(sellPrices, lot.Price)
			}
		}
		if len(sellPrices) > 0 && median(sellPrices) < noiseMedianThreshold {
			continue
		}

		deal := Deal{
			TypeID: typeID,
			Sell:   PriceQuote{Price: math.Inf(1), RegionID: -1},
			Buy:    PriceQuote{RegionID: -1},
		}

		for _, regionID := range snapshot.Regions(typeID) {
			if len(p.EligibleRegions) > 0 && !p.EligibleRegions[regionID] {
				continue
			}
			quote := quoteRegion(regions[regionID], p.MinValue, maxValue)

			if quote.sellUnit < deal.Sell.Price {
				price, region := quote.sellUnit, regionID
				// Hub override: the reference hub wins the sell slot at up
				// to a 15% premium over the candidate. Checked against the
				// hub's single cheapest order, on every new candidate.
				if hub, ok := regions[HubRegionID]; ok && len(hub.Sell) > 0 &&
					hub.Sell[0].Price < quote.sellUnit*HubPremium {
					price, region = hub.Sell[0].Price, HubRegionID
				}
				deal.Sell = PriceQuote{Price: price, Volume: quote.sellVolume, RegionID: region}
			}

			if quote.buyUnit > deal.Buy.Price {
				deal.Buy = PriceQuote{Price: quote.buyUnit, Volume: quote.buyVolume, RegionID: regionID}
			}

			// Both bounds only improve, so refreshing the margin after each
			// region always reflects the best-known pair.
			deal.Margin = round2(deal.Buy.Price / deal.Sell.Price)
		}

		deals = append(deals, deal)
	}

	sort.Slice(deals, func(i, j int) bool {
		if deals[i].Margin != deals[j].Margin {
			return deals[i].Margin > deals[j].Margin
		}
		return deals[i].TypeID < deals[j].TypeID
	})
	if len(deals) > p.TopN {
		deals = deals[:p.TopN]
	}
	return deals, nil
}

// quoteRegion condenses one region's order summary into per-unit prices.
// A side qualifies only when its best order's price is within maxValue and
// the stack's total notional reaches minValue; otherwise it keeps the
// sentinel (sell +Inf, buy 0).
func quoteRegion(summary market.OrderSummary, minValue, maxValue float64) regionQuote {
	quote := regionQuote{sellUnit: math.Inf(1)}

	if len(summary.Sell) > 0 && summary.Sell[0].Price <= maxValue {
		var notional float64
		var volume int64
		for _, lot := range summary.Sell {
			notional += lot.Price * float64(lot.Volume)
			volume += int64(lot.Volume)
		}
		if notional >= minValue && volume > 0 {
			quote.sellUnit = notional / float64(volume)
			quote.sellVolume = volume
		}
	}

	if len(summary.Buy) > 0 && summary.Buy[0].Price <= maxValue {
		var notional float64
		var volume int64
		for _, lot := range summary.Buy {
			notional += lot.Price * float64(lot.Volume)
			volume += int64(lot.Volume)
		}
		if notional >= minValue && volume > 0 {
			quote.buyUnit = notional / float64(volume)
			quote.buyVolume = volume
		}
	}

	return quote
}

// median returns the median of values; the mean of the two middle values
// for even-length input. values is sorted in place.
func median(values []float64) float64 {
	sort.Float64s(values)
	n := len(values)
	if n%2 == 1 {
		return values[n/2]
	}
	return (values[n/2-1] + values[n/2]) / 2
}

func round2(v float64) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	return math.Round(v*100) / 100
}
