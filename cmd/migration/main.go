package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/latoulicious/artgallery/internal/config"
	"github.com/latoulicious/artgallery/pkg/database"
	"github.com/latoulicious/artgallery/pkg/database/migration"
	"github.com/latoulicious/artgallery/pkg/database/seed"
	"github.com/latoulicious/artgallery/pkg/fixture"
	"github.com/latoulicious/artgallery/pkg/logging"
)

func main() {
	migrateFlag := flag.Bool("migrate", false, "Run the migrations")
	resetFlag := flag.Bool("reset", false, "Drop the gallery tables before migrating")
	seedFlag := flag.Bool("seed", false, "Load the fixture artworks into the database")
	checkFlag := flag.Bool("check", false, "Check database connectivity and schema")
	timeout := flag.Duration("timeout", time.Minute, "Timeout for seeding and checks")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if !cfg.HasDatabase() {
		log.Fatal("DATABASE_URL is not set")
	}
	logging.SetGlobalLoggerFactory(logging.NewLoggerFactory(logging.Options{
		Level:  cfg.Logger.Level,
		Format: cfg.Logger.Format,
	}))

	db, err := database.NewGormDB(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := database.Ping(ctx, db); err != nil {
		log.Fatalf("Database ping failed: %v", err)
	}
	log.Println("Connected to database")

	if *resetFlag {
		log.Println("Resetting database...")
		if err := migration.Reset(db); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("Database reset successfully")
	}

	if *migrateFlag || *resetFlag || *seedFlag {
		log.Println("Running migrations...")
		if err := migration.RunMigration(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		log.Println("Migrations completed successfully")
	}

	if *seedFlag {
		raws, issues, err := fixture.Load(cfg.Fixture.Path)
		if err != nil {
			log.Fatalf("Failed to load fixture: %v", err)
		}
		records, rowIssues := fixture.NewNormalizer(cfg.FixtureOptions()).NormalizeAll(raws)
		for _, issue := range append(issues, rowIssues...) {
			log.Printf("Fixture: %s", issue)
		}

		result, err := seed.FromFixture(ctx, db, records)
		if err != nil {
			log.Fatalf("Seeding interrupted: %v", err)
		}
		log.Printf("Seeded %d artworks (%d failed)", result.Upserted, result.Failed)
	}

	if *checkFlag {
		report, err := migration.Check(ctx, db)
		if err != nil {
			log.Fatalf("Database check failed: %v", err)
		}
		log.Printf("%s %s, %d artworks, check query %v", report.Dialect, report.ServerVersion, report.Artworks, report.RoundTrip)
		log.Printf("Connections: %d open, %d idle", report.OpenConnections, report.Idle)
		if !report.Ready() {
			log.Printf("Missing tables (run with -migrate): %v", report.MissingTables)
		}
		if report.Slow() {
			log.Println("Check query took longer than 5 seconds - check network latency")
		}
	}
}
