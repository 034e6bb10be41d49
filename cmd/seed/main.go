// Command main runs the database seeder for Coblog.
package main

import (
	"flag"
	"log"

	"coblog/internal/config"
	"coblog/internal/database"
	"coblog/internal/seed"
)

func main() {
	// Parse command line flags
	numOwners := flag.Int("owners", 10, "Number of owner ids to generate")
	numPosts := flag.Int("posts", 100, "Number of posts to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	dryRun := flag.Bool("dry-run", false, "Build entities without writing to the database")
	flag.Parse()

	log.Println("Database Seeder")
	log.Println("===============")
	log.Printf("Target: %d owners, %d posts, clean=%v dry-run=%v\n", *numOwners, *numPosts, *shouldClean, *dryRun)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumOwners:   *numOwners,
		NumPosts:    *numPosts,
		ShouldClean: *shouldClean,
		DryRun:      *dryRun,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done! Your database is now populated with demo data.")
}
