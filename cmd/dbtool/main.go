package main

import (
	"context"
	"flag"
	"log"
	"strings"

	"github.com/joho/godotenv"

	"logistics-route-service/internal/adapters/repositories"
	"logistics-route-service/internal/config"
	"logistics-route-service/internal/platform/db"
)

// dbtool applies schema migrations and loads the demo catalog.
//
//	dbtool [-seed path] [-skip-seed] [up|down|status|version|reset]
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	seedPath := flag.String("seed", config.Get("SEED_PATH", "data/seeds/catalog.json"), "catalog JSON to load after migrating")
	skipSeed := flag.Bool("skip-seed", false, "only run the migration command")
	flag.Parse()

	databaseURL := config.Get("DATABASE_URL", "")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	command := "up"
	var args []string
	if flag.NArg() > 0 {
		command = flag.Arg(0)
		args = flag.Args()[1:]
	}

	ctx := context.Background()
	conn, err := db.Open(ctx, databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	log.Printf("Running migrations command=%s", command)
	if err := repositories.RunMigrations(ctx, conn, command, args...); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	log.Println("Migrations done.")

	if command != "up" || *skipSeed {
		return
	}

	log.Printf("Seeding database path=%s", *seedPath)
	if err := repositories.SeedFromJSON(ctx, conn, *seedPath); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")
}
