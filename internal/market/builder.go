package market

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/time/rate"

	"eve-seeker/internal/esi"
	"eve-seeker/internal/logger"
)

// topOrders is how many orders per side survive condensation.
const topOrders = 3

// fetchInterval paces region order fetches to stay clear of ESI rate limits.
const fetchInterval = 250 * time.Millisecond

// OrderSource supplies the raw order books the builder condenses.
type OrderSource interface {
	Regions() ([]int32, error)
	RegionOrders(regionID int32) ([]esi.MarketOrder, error)
}

// Builder condenses per-region order books into a Snapshot.
type Builder struct {
	Source  OrderSource
	limiter *rate.Limiter
}

// NewBuilder creates a Builder with the default fetch pacing.
func NewBuilder(source OrderSource) *Builder {
	return &Builder{
		Source:  source,
		limiter: rate.NewLimiter(rate.Every(fetchInterval), 1),
	}
}

// BuildRegionSummary fetches one region's orders and condenses them:
// group by item, split by buy/sell, keep the 3 cheapest sells and the
// 3 highest buys. No cross-region logic happens here.
func (b *Builder) BuildRegionSummary(regionID int32) (map[int32]OrderSummary, error) {
	orders, err := b.Source.RegionOrders(regionID)
	if err != nil {
		return nil, fmt.Errorf("region %d orders: %w", regionID, err)
	}
	return Condense(orders), nil
}

// Condense reduces a raw order list to per-item top-3 summaries.
func Condense(orders []esi.MarketOrder) map[int32]OrderSummary {
	items := make(map[int32]OrderSummary)

	for _, o := range orders {
		summary := items[o.TypeID]
		lot := Order{Price: o.Price, Volume: o.VolumeRemain}
		if o.IsBuyOrder {
			summary.Buy = append(summary.Buy, lot)
		} else {
			summary.Sell = append(summary.Sell, lot)
		}
		items[o.TypeID] = summary
	}

	for typeID, summary := range items {
		// Tie-break on volume so condensation is independent of input order.
		sell := summary.Sell
		sort.Slice(sell, func(i, j int) bool {
			if sell[i].Price != sell[j].Price {
				return sell[i].Price < sell[j].Price
			}
			return sell[i].Volume < sell[j].Volume
		})
		buy := summary.Buy
		sort.Slice(buy, func(i, j int) bool {
			if buy[i].Price != buy[j].Price {
				return buy[i].Price > buy[j].Price
			}
			return buy[i].Volume > buy[j].Volume
		})
		if len(summary.Sell) > topOrders {
			summary.Sell = summary.Sell[:topOrders]
		}
		if len(summary.Buy) > topOrders {
			summary.Buy = summary.Buy[:topOrders]
		}
		items[typeID] = summary
	}
	return items
}

// BuildFull fetches and condenses every region sequentially, pacing each
// fetch through the rate limiter. A region whose fetch fails contributes
// nothing and the build moves on; only a failed region list aborts the run.
func (b *Builder) BuildFull(ctx context.Context) (Snapshot, error) {
	regions, err := b.Source.Regions()
	if err != nil {
		return nil, fmt.Errorf("list regions: %w", err)
	}

	snapshot := make(Snapshot)
	for _, regionID := range regions {
		if err := b.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		items, err := b.BuildRegionSummary(regionID)
		if err != nil {
			logger.Warn("Market", fmt.Sprintf("Skipping region %d: %v", regionID, err))
			continue
		}
		snapshot.merge(regionID, items)
	}
	return snapshot, nil
}
