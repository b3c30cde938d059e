package main

import (
	"context"
	"flag"
	"fmt"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"log"
	"os"
	"os/signal"
	"package-tracker-service/config"
	"package-tracker-service/core"
	"package-tracker-service/workers/tracking"
	"package-tracker-service/workers/tracking/carriers"
	"package-tracker-service/workers/tracking/repositories"
	"package-tracker-service/workers/tracking/seventeentrack"
	"path/filepath"
	"syscall"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(0)
	}
	command := os.Args[1]
	args := os.Args[2:]

	cfg := config.LoadConfig()

	logger, err := core.NewLogger(*cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if dir := filepath.Dir(cfg.DatabasePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatal(err)
		}
	}

	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatal(err)
	}

	repo := repositories.NewRepository(db)
	if err := repo.Migrate(); err != nil {
		log.Fatal(err)
	}

	client := seventeentrack.NewClient(seventeentrack.Config{
		APIKey:  cfg.SeventeenTrack.APIKey,
		BaseURI: cfg.SeventeenTrack.BaseURI,
	})
	engine := tracking.NewEngine(logger, repo, client)

	switch command {
	case "add":
		cmdAdd(engine, args)
	case "check":
		cmdCheck(engine, args)
	case "list":
		cmdList(engine, args)
	case "details":
		cmdDetails(engine, args)
	case "remove":
		cmdRemove(engine, args)
	case "quota":
		cmdQuota(engine, args)
	case "serve":
		cmdServe(logger, engine)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`📦 package-tracker-service — Track shipments via the 17track API

Usage:
  package-tracker-service <command> [flags]

Commands:
  add <tracking_number>     Add a package to track (-d description, -c carrier)
  check                     Check active packages for updates (-q quiet, -id package id)
  list                      List tracked packages (-a include inactive)
  details <tracking_number> Show full tracking history
  remove <tracking_number>  Stop tracking a package
  quota                     Show 17track registration quota
  serve                     Run the scheduled checker in the foreground`)
}

func cmdAdd(engine *tracking.Engine, args []string) {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	description := fs.String("d", "", "Description (e.g. 'USB-C cables from Amazon')")
	carrier := fs.String("c", "", "Carrier name override")
	_ = fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "❌ Usage: add <tracking_number> [-d description] [-c carrier]")
		os.Exit(1)
	}
	trackingNumber := fs.Arg(0)

	fmt.Printf("📦 Adding package: %s\n", trackingNumber)
	result, err := engine.AddPackage(trackingNumber, *description, *carrier)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	if result.Reactivated {
		fmt.Println("✅ Package reactivated")
	} else {
		fmt.Println("✅ Package added successfully")
	}
	carrierName := result.Carrier
	if carrierName == "" {
		carrierName = "Auto-detect"
	}
	fmt.Printf("   Carrier: %s\n", carrierName)
	if result.Registered {
		fmt.Println("   Registered with 17track ✓")
	} else {
		fmt.Println("   ⚠️  Not registered with 17track yet")
	}
	if result.Warning != "" {
		fmt.Printf("   ⚠️  %s\n", result.Warning)
	}
	fmt.Printf("   Track: %s\n", result.TrackingURL)
}

func cmdCheck(engine *tracking.Engine, args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	quiet := fs.Bool("q", false, "Suppress output when no updates")
	packageID := fs.Uint("id", 0, "Check a single package by id")
	_ = fs.Parse(args)

	if !*quiet {
		fmt.Println("🔍 Checking for updates on active packages...")
	}

	updates, err := engine.CheckUpdates(uint(*packageID))
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	for _, update := range updates {
		fmt.Println()
		fmt.Println(tracking.FormatNotification(update))
	}

	if len(updates) > 0 {
		fmt.Printf("\n📬 Found %d update(s)\n", len(updates))
	} else if !*quiet {
		fmt.Println("📭 No new updates found")
	}
}

func cmdList(engine *tracking.Engine, args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	all := fs.Bool("a", false, "Include inactive packages")
	_ = fs.Parse(args)

	packages, err := engine.ListPackages(!*all)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	if len(packages) == 0 {
		fmt.Println("📭 No packages being tracked")
		if !*all {
			fmt.Println("   (use -a to include inactive packages)")
		}
		return
	}

	title := "Active packages"
	if *all {
		title = "All packages"
	}
	fmt.Printf("📦 %s (%d):\n\n", title, len(packages))

	for _, pkg := range packages {
		activeMark := ""
		if !pkg.Active {
			activeMark = " [INACTIVE]"
		}
		carrier := ""
		if pkg.Carrier != "" {
			carrier = fmt.Sprintf(" (%s)", pkg.Carrier)
		}
		description := ""
		if pkg.Description != "" {
			description = " — " + pkg.Description
		}

		url := carriers.TrackingURL(pkg.TrackingNumber, pkg.Carrier)

		fmt.Printf("  %s %s%s%s%s\n", tracking.StatusEmoji(pkg.Status), pkg.TrackingNumber, carrier, description, activeMark)
		fmt.Printf("     Status: %s\n", pkg.Status)
		if pkg.LastEvent != "" {
			fmt.Printf("     Latest: %s\n", pkg.LastEvent)
		}
		if pkg.LastEventDate != "" {
			fmt.Printf("     Date:   %s\n", pkg.LastEventDate)
		}
		if pkg.LastCheckedAt != nil {
			fmt.Printf("     Checked: %s\n", pkg.LastCheckedAt.Format("2006-01-02 15:04:05 MST"))
		}
		fmt.Printf("     Track:  %s\n", url)
		fmt.Println()
	}
}

func cmdDetails(engine *tracking.Engine, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "❌ Usage: details <tracking_number>")
		os.Exit(1)
	}

	details, err := engine.GetDetails(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	pkg := details.Package
	activeStr := "Active"
	if !pkg.Active {
		activeStr = "Inactive"
	}

	fmt.Printf("\n%s Package Details\n%s\n", tracking.StatusEmoji(pkg.Status), divider)
	fmt.Printf("  Tracking:    %s\n", pkg.TrackingNumber)
	if pkg.Description != "" {
		fmt.Printf("  Description: %s\n", pkg.Description)
	}
	if pkg.Carrier != "" {
		fmt.Printf("  Carrier:     %s\n", pkg.Carrier)
	}
	fmt.Printf("  Status:      %s (%s)\n", pkg.Status, activeStr)
	fmt.Printf("  Added:       %s\n", pkg.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	if pkg.LastCheckedAt != nil {
		fmt.Printf("  Last Check:  %s\n", pkg.LastCheckedAt.Format("2006-01-02 15:04:05 MST"))
	}
	if pkg.DeliveredAt != nil {
		fmt.Printf("  Delivered:   %s\n", pkg.DeliveredAt.Format("2006-01-02 15:04:05 MST"))
	}
	fmt.Printf("  Track URL:   %s\n", details.TrackingURL)

	if len(details.Events) == 0 {
		fmt.Println("\n📋 No tracking events yet")
		return
	}

	fmt.Printf("\n📋 Tracking History (%d events)\n%s\n", len(details.Events), divider)
	for _, ev := range details.Events {
		date := ev.EventDate
		if date == "" {
			date = "?"
		}
		location := ""
		if ev.Location != "" {
			location = " — " + ev.Location
		}
		fmt.Printf("  📍 %s%s\n", date, location)
		fmt.Printf("     %s\n\n", ev.Description)
	}
}

func cmdRemove(engine *tracking.Engine, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "❌ Usage: remove <tracking_number>")
		os.Exit(1)
	}

	if err := engine.RemovePackage(args[0]); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ Stopped tracking %s\n", args[0])
}

func cmdQuota(engine *tracking.Engine, args []string) {
	fmt.Println("📊 API Quota Information")
	fmt.Println()

	info, err := engine.Quota()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	const barLength = 20
	filled := barLength * info.RegistrationsUsed / info.RegistrationLimit
	if filled > barLength {
		filled = barLength
	}
	bar := ""
	for i := 0; i < barLength; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}

	fmt.Printf("  Month: %s\n", info.Month)
	fmt.Printf("  Registrations: %d/%d [%s]\n", info.RegistrationsUsed, info.RegistrationLimit, bar)
	fmt.Printf("  Remaining:     %d\n", info.RegistrationsRemaining)
	if info.RegistrationsUsed >= 90 {
		fmt.Println("  ⚠️  Running low on registrations!")
	}

	if info.Remote != nil {
		fmt.Printf("\n  17track API response:\n    %s\n", string(info.Remote))
	}
	if info.RemoteError != "" {
		fmt.Printf("\n  ⚠️  %s\n", info.RemoteError)
	}
}

func cmdServe(logger *zap.Logger, engine *tracking.Engine) {
	orchestrator := core.NewOrchestrator(logger, []core.Worker{
		tracking.NewWorker(logger, engine),
	})

	c, err := orchestrator.Start(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	defer c.Stop()

	// Wait for termination signal to exit gracefully
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
}

const divider = "──────────────────────────────────────────────────"
