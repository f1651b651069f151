// Command galaxygen generates a stellar catalog for a given (seed, N)
// and prints its aggregate statistics, optionally persisting it to the
// catalog store.
//
// Grounded on the teacher's cmd/genmap (universe generation + database
// population CLI): the same flag surface (-systems, -seed, -stats,
// -save, -db-*), the same save-confirmation prompt when the target
// store already has data, and the same box-drawn statistics report.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"syscall"

	"golang.org/x/term"

	"github.com/sargonas/stellar-forge/internal/catalogstore"
	"github.com/sargonas/stellar-forge/internal/config"
	"github.com/sargonas/stellar-forge/internal/faults"
	"github.com/sargonas/stellar-forge/internal/tracks"
	"github.com/sargonas/stellar-forge/internal/universe"
)

func main() {
	var (
		numSystems = flag.Int("systems", 100, "Number of star systems to generate")
		seed       = flag.Uint64("seed", 0, "Random seed (0 draws one from the OS RNG)")
		showStats  = flag.Bool("stats", false, "Show detailed statistics")
		save       = flag.Bool("save", false, "Save the generated catalog to the catalog store")
		dbHost     = flag.String("db-host", "localhost", "Catalog store host")
		dbPort     = flag.Int("db-port", 5432, "Catalog store port")
		dbUser     = flag.String("db-user", "stellarforge", "Catalog store user")
		dbPassword = flag.String("db-password", "", "Catalog store password (prompted if -save is set and this is empty)")
		dbName     = flag.String("db-name", "stellarforge", "Catalog store database name")
	)
	flag.Parse()

	fmt.Println("===============================================================")
	fmt.Println("              STELLAR FORGE - CATALOG GENERATOR")
	fmt.Println("===============================================================")
	fmt.Println()

	cfg := config.Default()

	table, err := tracks.LoadDir(cfg.AssetBasePath)
	if err != nil {
		exitWithFault(err)
	}

	runSeed := *seed
	if runSeed == 0 {
		runSeed = drawRandomSeed()
	}

	fmt.Printf("Generating %d systems (seed: %d)\n\n", *numSystems, runSeed)

	driver := universe.New(cfg, table)
	catalog, err := driver.BuildUniverse(runSeed, *numSystems)
	if err != nil {
		exitWithFault(err)
	}

	fmt.Println("Catalog generated.")
	fmt.Println()
	showCatalogStats(catalog)

	if *showStats {
		fmt.Println()
		showDetailedStats(catalog)
	}

	if *save {
		fmt.Println()
		fmt.Println("===============================================================")
		fmt.Println("                     SAVING TO CATALOG STORE")
		fmt.Println("===============================================================")
		fmt.Println()

		password := *dbPassword
		if password == "" {
			password = promptPassword()
		}

		if err := saveToCatalogStore(catalog, runSeed, *dbHost, *dbPort, *dbUser, password, *dbName); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving catalog: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Catalog saved.")
	}
}

func drawRandomSeed() uint64 {
	var b [8]byte
	if f, err := os.Open("/dev/urandom"); err == nil {
		defer f.Close()
		f.Read(b[:])
	}
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	if v == 0 {
		v = 1
	}
	return v
}

func promptPassword() string {
	fmt.Print("Catalog store password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read password: %v\n", err)
		os.Exit(1)
	}
	return string(password)
}

func exitWithFault(err error) {
	var f *faults.Fault
	if errors.As(err, &f) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(f.Kind.ExitCode())
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func showCatalogStats(catalog *universe.Catalog) {
	fmt.Println("+-------------------------------------------------------------+")
	fmt.Println("|                    CATALOG STATISTICS                      |")
	fmt.Println("+-------------------------------------------------------------+")
	fmt.Println()
	fmt.Printf("  Systems:    %d (%d abandoned)\n", len(catalog.Systems), catalog.SystemsAbandoned)

	totalStars, totalPlanets, totalLife := 0, 0, 0
	for _, sys := range catalog.Systems {
		totalStars += sys.StarCount()
		totalPlanets += sys.PlanetCount()
		totalLife += sys.HabitedPlanetCount()
	}
	fmt.Printf("  Stars:      %d\n", totalStars)
	fmt.Printf("  Planets:    %d\n", totalPlanets)
	fmt.Printf("  Civilized:  %d\n", totalLife)
	fmt.Println()

	fmt.Println("  SPECTRAL CLASS DISTRIBUTION:")
	fmt.Println("  ---------------------------------------------------------")
	classes := make([]string, 0, len(catalog.ClassCounts))
	for c := range catalog.ClassCounts {
		classes = append(classes, c)
	}
	sort.Strings(classes)
	for _, c := range classes {
		count := catalog.ClassCounts[c]
		pct := float64(count) / float64(totalStars) * 100
		fmt.Printf("  %-6s %4d stars (%5.1f%%)\n", c, count, pct)
	}
}

func showDetailedStats(catalog *universe.Catalog) {
	fmt.Println()
	fmt.Println("+-------------------------------------------------------------+")
	fmt.Println("|                   DETAILED STATISTICS                      |")
	fmt.Println("+-------------------------------------------------------------+")
	fmt.Println()

	maxPlanets, maxPlanetsName := 0, ""
	for _, sys := range catalog.Systems {
		if sys.PlanetCount() > maxPlanets {
			maxPlanets = sys.PlanetCount()
			maxPlanetsName = sys.Name
		}
	}
	if maxPlanetsName != "" {
		fmt.Printf("  Most planets:  %s (%d planets)\n", maxPlanetsName, maxPlanets)
	}

	binaryCount := 0
	for _, sys := range catalog.Systems {
		if sys.IsBinary() {
			binaryCount++
		}
	}
	fmt.Printf("  Binary systems: %d (%.1f%%)\n", binaryCount, float64(binaryCount)/float64(len(catalog.Systems))*100)
}

func saveToCatalogStore(catalog *universe.Catalog, seed uint64, host string, port int, user, password, dbName string) error {
	ctx := context.Background()

	fmt.Printf("Connecting to catalog store %s@%s:%d/%s...\n", user, host, port, dbName)
	cfg := &catalogstore.Config{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		Database: dbName,
		SSLMode:  "disable",
		MaxConns: 10,
	}
	db, err := catalogstore.NewDB(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to catalog store: %w", err)
	}
	defer db.Close()

	if err := db.RunMigrations(ctx, "internal/catalogstore"); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	repo := catalogstore.NewCatalogRepository(db)

	existing, err := repo.ListRuns(ctx)
	if err != nil {
		return fmt.Errorf("check existing runs: %w", err)
	}
	if len(existing) > 0 {
		fmt.Printf("WARNING: catalog store already has %d run(s).\n", len(existing))
		fmt.Print("Continue and add another run? [y/N]: ")
		var response string
		fmt.Scanln(&response)
		if response != "y" && response != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	runID, err := repo.SaveCatalog(ctx, seed, catalog)
	if err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	fmt.Printf("Saved as run %s\n", runID)
	return nil
}
