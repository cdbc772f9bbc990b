package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"eve-seeker/internal/config"
	"eve-seeker/internal/db"
	"eve-seeker/internal/engine"
	"eve-seeker/internal/esi"
	"eve-seeker/internal/logger"
	"eve-seeker/internal/market"
	"eve-seeker/internal/universe"
)

var version = "dev"

func main() {
	dataFlag := flag.String("data", "", "data directory (default ./data)")
	flag.Parse()

	logger.Banner(version)

	dir := *dataFlag
	if dir == "" {
		wd, _ := os.Getwd()
		dir = filepath.Join(wd, "data")
	}
	os.MkdirAll(dir, 0755)

	database, err := db.Open(dir)
	if err != nil {
		logger.Error("DB", fmt.Sprintf("Failed to open database: %v", err))
		os.Exit(1)
	}
	defer database.Close()

	cfg := database.LoadConfig()

	client := esi.NewClient(database)
	if !client.HealthCheck() {
		logger.Warn("ESI", "Health check failed, market data may be unavailable")
	}

	secCache := universe.NewSecurityCache(database)
	gateway := universe.NewGateway(client, secCache)

	a := &app{
		cfg:      cfg,
		database: database,
		client:   client,
		gateway:  gateway,
		builder:  market.NewBuilder(client),
		store:    &market.FileStore{Path: filepath.Join(dir, "market_prices.json")},
		in:       bufio.NewReader(os.Stdin),
	}
	a.run()
}

type app struct {
	cfg      *config.Config
	database *db.DB
	client   *esi.Client
	gateway  *universe.Gateway
	builder  *market.Builder
	store    *market.FileStore
	in       *bufio.Reader
}

func (a *app) run() {
	for {
		logger.Section("Menu")
		fmt.Printf("  1. Results to show      [%d]\n", a.cfg.TopN)
		fmt.Printf("  2. Min order value      [%s ISK]\n", isk(a.cfg.MinValue))
		fmt.Printf("  3. Max order value      [%s ISK]\n", isk(a.cfg.MaxValue))
		fmt.Printf("  4. Min security level   [%.1f]\n", a.cfg.MinSecurity)
		fmt.Println("  5. Update market data")
		fmt.Println("  6. Run scan")
		fmt.Println("  7. Recent scans")
		fmt.Println("  8. Exit")

		switch a.prompt("Choice") {
		case "1":
			if n, ok := a.promptInt("Results to show"); ok {
				a.cfg.TopN = n
			}
		case "2":
			if v, ok := a.promptFloat("Min order value (ISK)"); ok {
				a.cfg.MinValue = v
			}
		case "3":
			if v, ok := a.promptFloat("Max order value (ISK)"); ok {
				a.cfg.MaxValue = v
			}
		case "4":
			if v, ok := a.promptFloat("Min security level"); ok {
				a.cfg.MinSecurity = v
			}
		case "5":
			a.updateMarketData()
		case "6":
			a.runScan()
		case "7":
			a.recentScans()
		case "8", "":
			a.saveConfig()
			logger.Info("App", "Fly safe")
			return
		default:
			logger.Warn("App", "Unknown choice")
		}
	}
}

func (a *app) prompt(label string) string {
	fmt.Printf("%s > ", label)
	line, err := a.in.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

func (a *app) promptInt(label string) (int, bool) {
	n, err := strconv.Atoi(a.prompt(label))
	if err != nil || n <= 0 {
		logger.Warn("App", "Expected a positive number")
		return 0, false
	}
	return n, true
}

func (a *app) promptFloat(label string) (float64, bool) {
	v, err := strconv.ParseFloat(a.prompt(label), 64)
	if err != nil {
		logger.Warn("App", "Expected a number")
		return 0, false
	}
	return v, true
}

func (a *app) saveConfig() {
	if err := a.database.SaveConfig(a.cfg); err != nil {
		logger.Warn("Config", fmt.Sprintf("Save failed: %v", err))
	}
}

// updateMarketData rebuilds the full order snapshot from ESI and writes it to
// disk. This walks every region and takes a while.
func (a *app) updateMarketData() {
	logger.Section("Market update")
	logger.Info("Market", "Fetching order books for all regions, go grab a coffee")

	snapshot, err := a.builder.BuildFull(context.Background())
	if err != nil {
		logger.Error("Market", fmt.Sprintf("Update failed: %v", err))
		return
	}
	if err := a.store.Save(snapshot); err != nil {
		logger.Error("Market", fmt.Sprintf("Snapshot save failed: %v", err))
		return
	}
	logger.Success("Market", fmt.Sprintf("Snapshot saved to %s", a.store.Path))
	logger.Stats("Items tracked", len(snapshot))
}

func (a *app) runScan() {
	a.saveConfig()

	logger.Section("Scan")
	snapshot, err := a.store.Load()
	if err != nil {
		logger.Error("Market", fmt.Sprintf("No usable snapshot (%v), run a market update first", err))
		return
	}

	logger.Info("Universe", fmt.Sprintf("Filtering regions below %.1f security", a.cfg.MinSecurity))
	eligible, err := a.gateway.RegionsAboveSecurity(a.cfg.MinSecurity)
	if err != nil {
		logger.Error("Universe", fmt.Sprintf("Region listing failed: %v", err))
		return
	}
	regionSet := make(map[int32]bool, len(eligible))
	for _, id := range eligible {
		regionSet[id] = true
	}
	logger.Stats("Eligible regions", len(eligible))

	deals, err := engine.RankMargins(snapshot, engine.Params{
		TopN:            a.cfg.TopN,
		MinValue:        a.cfg.MinValue,
		MaxValue:        a.cfg.MaxValue,
		EligibleRegions: regionSet,
	})
	if err != nil {
		logger.Error("Engine", fmt.Sprintf("Ranking failed: %v", err))
		return
	}

	names := a.client.Names(dealNameIDs(deals))
	for i, d := range deals {
		a.printDeal(i+1, d, names)
	}
	if len(deals) == 0 {
		logger.Info("Engine", "No items passed the filters")
	}

	rec := db.ScanRecord{
		TopN:        a.cfg.TopN,
		MinValue:    a.cfg.MinValue,
		MaxValue:    a.cfg.MaxValue,
		MinSecurity: a.cfg.MinSecurity,
		Regions:     len(eligible),
		Deals:       len(deals),
	}
	if len(deals) > 0 {
		rec.TopMargin = deals[0].Margin
	}
	a.database.RecordScan(rec)
}

// dealNameIDs collects every type and region ID a scan report will mention.
func dealNameIDs(deals []engine.Deal) []int32 {
	var ids []int32
	for _, d := range deals {
		ids = append(ids, d.TypeID)
		if d.Sell.RegionID > 0 {
			ids = append(ids, d.Sell.RegionID)
		}
		if d.Buy.RegionID > 0 {
			ids = append(ids, d.Buy.RegionID)
		}
	}
	return ids
}

func (a *app) printDeal(rank int, d engine.Deal, names map[int32]string) {
	fmt.Printf("\n%2d. %s  x%.2f\n", rank, names[d.TypeID], d.Margin)

	if math.IsInf(d.Sell.Price, 1) {
		fmt.Println("      buy:  no eligible sell orders")
	} else {
		fmt.Printf("      buy:  %s ISK x%d in %s (%.1f sec)\n",
			isk(d.Sell.Price), d.Sell.Volume, names[d.Sell.RegionID],
			a.gateway.RegionSecurity(d.Sell.RegionID))
	}
	if d.Buy.Price <= 0 {
		fmt.Println("      sell: no eligible buy orders")
	} else {
		fmt.Printf("      sell: %s ISK x%d in %s (%.1f sec)\n",
			isk(d.Buy.Price), d.Buy.Volume, names[d.Buy.RegionID],
			a.gateway.RegionSecurity(d.Buy.RegionID))
	}

	if d.Sell.RegionID > 0 && d.Buy.RegionID > 0 {
		fmt.Printf("      haul: %s\n", jumps(a.gateway.JumpCount(d.Sell.RegionID, d.Buy.RegionID)))
	}
}

func (a *app) recentScans() {
	logger.Section("Recent scans")
	records := a.database.RecentScans(10)
	if len(records) == 0 {
		logger.Info("History", "No scans recorded yet")
		return
	}
	for _, r := range records {
		fmt.Printf("  %s  top %d, sec >= %.1f, %d regions, %d deals, best x%.2f\n",
			r.Timestamp, r.TopN, r.MinSecurity, r.Regions, r.Deals, r.TopMargin)
	}
}

func jumps(n int) string {
	switch n {
	case universe.JumpsNoSystem:
		return "? jumps (region not mapped)"
	case universe.JumpsNoRoute:
		return "? jumps (no route)"
	default:
		return fmt.Sprintf("%d jumps", n)
	}
}

// isk renders an ISK amount compactly: 1.50M, 12.00B.
func isk(v float64) string {
	switch {
	case v >= 1e12:
		return fmt.Sprintf("%.2fT", v/1e12)
	case v >= 1e9:
		return fmt.Sprintf("%.2fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.2fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.2fK", v/1e3)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
