package universe

import (
	"fmt"
	"math"
	"math/rand"

	"eve-seeker/internal/logger"
)

// Jump count sentinels. Callers must treat both as non-fatal and distinct:
// "no sampled system" means the geography lookups came up empty, "no route"
// means the route request failed or ESI found no path.
const (
	JumpsNoSystem = -1
	JumpsNoRoute  = -2
)

// NoSecurity is returned when a region or system security level is unavailable.
const NoSecurity = -1

// Source is the remote geography capability the gateway depends on.
type Source interface {
	Regions() ([]int32, error)
	RegionConstellations(regionID int32) ([]int32, error)
	ConstellationSystems(constellationID int32) ([]int32, error)
	SystemSecurity(systemID int32) (float64, error)
	Route(origin, destination int32) ([]int32, error)
}

// Gateway resolves regions to sampled systems and answers security and
// jump-distance queries. Region security is a sampled estimate: one random
// system out of one random constellation stands in for the whole region.
type Gateway struct {
	Source Source
	Cache  *SecurityCache

	pick func(n int) int // index picker, swappable in tests
}

// NewGateway creates a Gateway over the given source and security cache.
func NewGateway(source Source, cache *SecurityCache) *Gateway {
	return &Gateway{
		Source: source,
		Cache:  cache,
		pick:   rand.Intn,
	}
}

// SampleSystem picks one system at random from a random constellation of the
// region. ok is false when the region has no constellations, the chosen
// constellation has no systems, or a lookup fails — all expected outcomes.
func (g *Gateway) SampleSystem(regionID int32) (systemID int32, ok bool) {
	constellations, err := g.Source.RegionConstellations(regionID)
	if err != nil || len(constellations) == 0 {
		return 0, false
	}
	systems, err := g.Source.ConstellationSystems(constellations[g.pick(len(constellations))])
	if err != nil || len(systems) == 0 {
		return 0, false
	}
	return systems[g.pick(len(systems))], true
}

// SecurityLevel returns a system's security status rounded to 2 decimals,
// or NoSecurity when the lookup fails.
func (g *Gateway) SecurityLevel(systemID int32) float64 {
	sec, err := g.Source.SystemSecurity(systemID)
	if err != nil {
		return NoSecurity
	}
	return math.Round(sec*100) / 100
}

// RegionSecurity returns the sampled security estimate for a region, filling
// the cache on a miss. Unsampleable regions cache the NoSecurity sentinel.
func (g *Gateway) RegionSecurity(regionID int32) float64 {
	return g.Cache.GetOrCompute(regionID, func() float64 {
		systemID, ok := g.SampleSystem(regionID)
		if !ok {
			return NoSecurity
		}
		return g.SecurityLevel(systemID)
	})
}

// JumpCount returns the number of jumps between two regions, excluding the
// origin system, using one sampled system per region.
func (g *Gateway) JumpCount(originRegion, destRegion int32) int {
	origin, ok := g.SampleSystem(originRegion)
	if !ok {
		return JumpsNoSystem
	}
	destination, ok := g.SampleSystem(destRegion)
	if !ok {
		return JumpsNoSystem
	}

	route, err := g.Source.Route(origin, destination)
	if err != nil || len(route) == 0 {
		return JumpsNoRoute
	}
	return len(route) - 1
}

// RegionsAboveSecurity returns every known region whose sampled security
// level is at least threshold. Each cache miss costs one sampling round-trip;
// the filled cache is flushed before returning.
func (g *Gateway) RegionsAboveSecurity(threshold float64) ([]int32, error) {
	regions, err := g.Source.Regions()
	if err != nil {
		return nil, err
	}

	var eligible []int32
	for _, regionID := range regions {
		if g.RegionSecurity(regionID) >= threshold {
			eligible = append(eligible, regionID)
		}
	}

	if err := g.Cache.Flush(); err != nil {
		logger.Warn("Universe", fmt.Sprintf("Security cache flush failed: %v", err))
	}
	return eligible, nil
}
