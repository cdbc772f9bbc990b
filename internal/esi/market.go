package esi

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"
)

// MarketOrder mirrors the ESI market order response.
type MarketOrder struct {
	OrderID      int64   `json:"order_id"`
	TypeID       int32   `json:"type_id"`
	LocationID   int64   `json:"location_id"`
	SystemID     int32   `json:"system_id"`
	Price        float64 `json:"price"`
	VolumeRemain int32   `json:"volume_remain"`
	IsBuyOrder   bool    `json:"is_buy_order"`
	RegionID     int32   `json:"-"` // set by us
}

// RegionOrders fetches all market orders for a region.
// Repeated calls within the ESI refresh window (typically 5 min) are served
// from the in-memory cache without any network I/O; concurrent callers for
// the same region are coalesced through singleflight.
func (c *Client) RegionOrders(regionID int32) ([]MarketOrder, error) {
	if orders, ok := c.orders.get(regionID); ok {
		return orders, nil
	}

	result, err, _ := c.orders.group.Do(strconv.Itoa(int(regionID)), func() (interface{}, error) {
		// Re-check under singleflight: another caller may have just filled it.
		if orders, ok := c.orders.get(regionID); ok {
			return orders, nil
		}
		orders, expires, err := c.fetchRegionOrders(regionID)
		if err != nil {
			return nil, err
		}
		c.orders.put(regionID, orders, expires)
		return orders, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]MarketOrder), nil
}

// fetchRegionOrders downloads every page of a region's order book, one page
// at a time. Returns the orders together with the Expires time of page 1.
func (c *Client) fetchRegionOrders(regionID int32) ([]MarketOrder, time.Time, error) {
	url := fmt.Sprintf("%s/markets/%d/orders/?datasource=tranquility&order_type=all", c.base, regionID)

	c.sem <- struct{}{}
	req, err := newESIRequest(url + "&page=1")
	if err != nil {
		<-c.sem
		return nil, time.Time{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		<-c.sem
		return nil, time.Time{}, err
	}

	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		<-c.sem
		return nil, time.Time{}, fmt.Errorf("ESI %d: %s", resp.StatusCode, string(body))
	}

	totalPages := 1
	if p := resp.Header.Get("X-Pages"); p != "" {
		totalPages, _ = strconv.Atoi(p)
	}
	expires := parseExpires(resp)

	var all []MarketOrder
	err = json.NewDecoder(resp.Body).Decode(&all)
	resp.Body.Close()
	<-c.sem
	if err != nil {
		return nil, time.Time{}, err
	}

	for p := 2; p <= totalPages; p++ {
		var page []MarketOrder
		if err := c.GetJSON(fmt.Sprintf("%s&page=%d", url, p), &page); err != nil {
			return nil, time.Time{}, err
		}
		all = append(all, page...)
	}

	for i := range all {
		all[i].RegionID = regionID
	}
	return all, expires, nil
}
