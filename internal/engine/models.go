package engine

// Params holds the input parameters for a margin ranking run.
type Params struct {
	TopN            int                // number of deals to return, must be > 0
	MinValue        float64            // minimum total notional of an order stack
	MaxValue        float64            // ceiling on the best order's unit price, <= 0 = unbounded
	EligibleRegions map[int32]bool     // regions admitted to the scan, empty = unrestricted
}

// PriceQuote is one side of a deal: a per-unit price, the stacked volume
// behind it, and the region it lives in. Region -1 means no region qualified.
type PriceQuote struct {
	Price    float64
	Volume   int64
	RegionID int32
}

// Deal is the best cross-region buy/sell pairing found for one item.
// A fresh Deal starts at the sentinel state: sell at +Inf, buy at 0,
// margin 0. It is never persisted.
type Deal struct {
	TypeID int32
	Sell   PriceQuote // where to buy the item (cheapest sell orders)
	Buy    PriceQuote // where to sell the item (highest buy orders)
	Margin float64    // Buy.Price / Sell.Price, rounded to 2 decimals
}
