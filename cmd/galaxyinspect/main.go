// Command galaxyinspect is a read-only BubbleTea browser over a
// generated or stored catalog: point it at a seed/count to generate
// fresh, or at a catalog store run to load one already saved.
//
// Grounded on the teacher's session-launch pattern in
// internal/server/server.go (tea.NewProgram(model,
// tea.WithAltScreen()).Run()), adapted from an SSH channel transport
// to the process's own stdio.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/sargonas/stellar-forge/internal/catalogstore"
	"github.com/sargonas/stellar-forge/internal/config"
	"github.com/sargonas/stellar-forge/internal/tracks"
	"github.com/sargonas/stellar-forge/internal/tui"
	"github.com/sargonas/stellar-forge/internal/universe"
)

func main() {
	var (
		numSystems = flag.Int("systems", 50, "Number of systems to generate (ignored with -run)")
		seed       = flag.Uint64("seed", 42, "Random seed (ignored with -run)")
		runID      = flag.String("run", "", "Load a previously saved run by ID instead of generating")
		dbHost     = flag.String("db-host", "localhost", "Catalog store host")
		dbPort     = flag.Int("db-port", 5432, "Catalog store port")
		dbUser     = flag.String("db-user", "stellarforge", "Catalog store user")
		dbPassword = flag.String("db-password", "", "Catalog store password")
		dbName     = flag.String("db-name", "stellarforge", "Catalog store database name")
	)
	flag.Parse()

	var catalog *universe.Catalog

	if *runID != "" {
		id, err := uuid.Parse(*runID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid -run id: %v\n", err)
			os.Exit(1)
		}

		ctx := context.Background()
		db, err := catalogstore.NewDB(ctx, &catalogstore.Config{
			Host: *dbHost, Port: *dbPort, User: *dbUser, Password: *dbPassword, Database: *dbName, SSLMode: "disable", MaxConns: 5,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to connect to catalog store: %v\n", err)
			os.Exit(1)
		}
		defer db.Close()

		repo := catalogstore.NewCatalogRepository(db)
		catalog, err = repo.LoadCatalog(ctx, id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load run %s: %v\n", id, err)
			os.Exit(1)
		}
	} else {
		cfg := config.Default()
		table, err := tracks.LoadDir(cfg.AssetBasePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load evolutionary tracks: %v\n", err)
			os.Exit(1)
		}

		driver := universe.New(cfg, table)
		catalog, err = driver.BuildUniverse(*seed, *numSystems)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to generate catalog: %v\n", err)
			os.Exit(1)
		}
	}

	model := tui.New(catalog)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error running catalog browser: %v\n", err)
		os.Exit(1)
	}
}
