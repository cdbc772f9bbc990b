package esi

import (
	"fmt"
)

// Regions fetches all region IDs.
func (c *Client) Regions() ([]int32, error) {
	var ids []int32
	if err := c.GetJSON(c.base+"/universe/regions/?datasource=tranquility", &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// RegionConstellations fetches the constellation IDs of a region.
func (c *Client) RegionConstellations(regionID int32) ([]int32, error) {
	var info struct {
		Constellations []int32 `json:"constellations"`
	}
	url := fmt.Sprintf("%s/universe/regions/%d/?datasource=tranquility", c.base, regionID)
	if err := c.GetJSON(url, &info); err != nil {
		return nil, err
	}
	return info.Constellations, nil
}

// ConstellationSystems fetches the system IDs of a constellation.
func (c *Client) ConstellationSystems(constellationID int32) ([]int32, error) {
	var info struct {
		Systems []int32 `json:"systems"`
	}
	url := fmt.Sprintf("%s/universe/constellations/%d/?datasource=tranquility", c.base, constellationID)
	if err := c.GetJSON(url, &info); err != nil {
		return nil, err
	}
	return info.Systems, nil
}

// SystemSecurity fetches the security status of a system.
func (c *Client) SystemSecurity(systemID int32) (float64, error) {
	var info struct {
		SecurityStatus float64 `json:"security_status"`
	}
	url := fmt.Sprintf("%s/universe/systems/%d/?datasource=tranquility", c.base, systemID)
	if err := c.GetJSON(url, &info); err != nil {
		return 0, err
	}
	return info.SecurityStatus, nil
}

// Route fetches the system-by-system route between two systems.
// An empty route means ESI found no path.
func (c *Client) Route(origin, destination int32) ([]int32, error) {
	var route []int32
	url := fmt.Sprintf("%s/route/%d/%d/?datasource=tranquility", c.base, origin, destination)
	if err := c.GetJSON(url, &route); err != nil {
		return nil, err
	}
	return route, nil
}
