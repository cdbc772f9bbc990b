package universe

import (
	"errors"
	"testing"
)

// fakeSource is an in-memory geography source for tests.
type fakeSource struct {
	regions        []int32
	constellations map[int32][]int32 // region -> constellations
	systems        map[int32][]int32 // constellation -> systems
	security       map[int32]float64 // system -> security
	route          []int32
	routeErr       error
	regionsErr     error
	securityCalls  int
}

func (f *fakeSource) Regions() ([]int32, error) {
	return f.regions, f.regionsErr
}

func (f *fakeSource) RegionConstellations(regionID int32) ([]int32, error) {
	c, ok := f.constellations[regionID]
	if !ok {
		return nil, errors.New("region not found")
	}
	return c, nil
}

func (f *fakeSource) ConstellationSystems(constellationID int32) ([]int32, error) {
	s, ok := f.systems[constellationID]
	if !ok {
		return nil, errors.New("constellation not found")
	}
	return s, nil
}

func (f *fakeSource) SystemSecurity(systemID int32) (float64, error) {
	f.securityCalls++
	sec, ok := f.security[systemID]
	if !ok {
		return 0, errors.New("system not found")
	}
	return sec, nil
}

func (f *fakeSource) Route(origin, destination int32) ([]int32, error) {
	return f.route, f.routeErr
}

func newTestGateway(src *fakeSource) *Gateway {
	g := NewGateway(src, NewSecurityCache(nil))
	g.pick = func(n int) int { return 0 } // deterministic sampling
	return g
}

func TestGateway_SampleSystem(t *testing.T) {
	src := &fakeSource{
		constellations: map[int32][]int32{1: {10}},
		systems:        map[int32][]int32{10: {100, 101}},
	}
	g := newTestGateway(src)

	sys, ok := g.SampleSystem(1)
	if !ok || sys != 100 {
		t.Errorf("SampleSystem(1) = %d/%v, want 100/true", sys, ok)
	}
}

func TestGateway_SampleSystem_EmptyOutcomes(t *testing.T) {
	src := &fakeSource{
		constellations: map[int32][]int32{
			1: {},   // region with no constellations
			2: {20}, // constellation with no systems
		},
		systems: map[int32][]int32{20: {}},
	}
	g := newTestGateway(src)

	if _, ok := g.SampleSystem(1); ok {
		t.Error("SampleSystem on empty constellation list should report no system")
	}
	if _, ok := g.SampleSystem(2); ok {
		t.Error("SampleSystem on empty system list should report no system")
	}
	if _, ok := g.SampleSystem(99); ok {
		t.Error("SampleSystem on failing lookup should report no system")
	}
}

func TestGateway_SecurityLevel_Rounding(t *testing.T) {
	src := &fakeSource{security: map[int32]float64{100: 0.9459}}
	g := newTestGateway(src)

	if sec := g.SecurityLevel(100); sec != 0.95 {
		t.Errorf("SecurityLevel = %v, want 0.95", sec)
	}
	if sec := g.SecurityLevel(999); sec != NoSecurity {
		t.Errorf("SecurityLevel on failure = %v, want %v", sec, NoSecurity)
	}
}

func TestGateway_JumpCount(t *testing.T) {
	src := &fakeSource{
		constellations: map[int32][]int32{1: {10}, 2: {20}},
		systems:        map[int32][]int32{10: {100}, 20: {200}},
		route:          []int32{100, 150, 175, 200},
	}
	g := newTestGateway(src)

	if jumps := g.JumpCount(1, 2); jumps != 3 {
		t.Errorf("JumpCount over 4-system route = %d, want 3", jumps)
	}
}

func TestGateway_JumpCount_Sentinels(t *testing.T) {
	// Destination region cannot be sampled.
	src := &fakeSource{
		constellations: map[int32][]int32{1: {10}, 2: {}},
		systems:        map[int32][]int32{10: {100}},
		route:          []int32{100, 200},
	}
	g := newTestGateway(src)
	if jumps := g.JumpCount(1, 2); jumps != JumpsNoSystem {
		t.Errorf("JumpCount with unsampleable region = %d, want JumpsNoSystem", jumps)
	}

	// Both regions sample, but the route is empty.
	src.constellations[2] = []int32{20}
	src.systems[20] = []int32{200}
	src.route = nil
	if jumps := g.JumpCount(1, 2); jumps != JumpsNoRoute {
		t.Errorf("JumpCount with empty route = %d, want JumpsNoRoute", jumps)
	}

	// Route request fails outright.
	src.route = []int32{100, 200}
	src.routeErr = errors.New("esi down")
	if jumps := g.JumpCount(1, 2); jumps != JumpsNoRoute {
		t.Errorf("JumpCount with failing route = %d, want JumpsNoRoute", jumps)
	}

	if JumpsNoSystem == JumpsNoRoute {
		t.Fatal("sentinels must be distinct")
	}
}

func TestGateway_RegionsAboveSecurity(t *testing.T) {
	src := &fakeSource{
		regions:        []int32{1, 2, 3},
		constellations: map[int32][]int32{1: {10}, 2: {20}, 3: {30}},
		systems:        map[int32][]int32{10: {100}, 20: {200}, 30: {300}},
		security:       map[int32]float64{100: 0.9, 200: 0.2, 300: -0.4},
	}
	g := newTestGateway(src)

	eligible, err := g.RegionsAboveSecurity(0.5)
	if err != nil {
		t.Fatalf("RegionsAboveSecurity: %v", err)
	}
	if len(eligible) != 1 || eligible[0] != 1 {
		t.Errorf("RegionsAboveSecurity(0.5) = %v, want [1]", eligible)
	}

	// Threshold of -1 admits everything, including the -0.4 region.
	eligible, err = g.RegionsAboveSecurity(-1)
	if err != nil {
		t.Fatalf("RegionsAboveSecurity: %v", err)
	}
	if len(eligible) != 3 {
		t.Errorf("RegionsAboveSecurity(-1) = %v, want all 3", eligible)
	}
}

func TestGateway_RegionsAboveSecurity_CacheAmortizes(t *testing.T) {
	src := &fakeSource{
		regions:        []int32{1},
		constellations: map[int32][]int32{1: {10}},
		systems:        map[int32][]int32{10: {100}},
		security:       map[int32]float64{100: 0.7},
	}
	g := newTestGateway(src)

	g.RegionsAboveSecurity(0.5)
	g.RegionsAboveSecurity(0.5)
	if src.securityCalls != 1 {
		t.Errorf("security lookups = %d, want 1 (second pass served from cache)", src.securityCalls)
	}
}

func TestGateway_RegionsAboveSecurity_SourceFailure(t *testing.T) {
	src := &fakeSource{regionsErr: errors.New("esi down")}
	g := newTestGateway(src)

	if _, err := g.RegionsAboveSecurity(0); err == nil {
		t.Fatal("RegionsAboveSecurity should fail when the region list is unavailable")
	}
}

func TestGateway_RegionSecurity_CachesSentinel(t *testing.T) {
	src := &fakeSource{
		constellations: map[int32][]int32{}, // every sample fails
	}
	g := newTestGateway(src)

	if sec := g.RegionSecurity(7); sec != NoSecurity {
		t.Errorf("RegionSecurity on unsampleable region = %v, want %v", sec, NoSecurity)
	}
	if _, ok := g.Cache.Get(7); !ok {
		t.Error("sentinel should be cached so the region is not re-sampled")
	}
}
