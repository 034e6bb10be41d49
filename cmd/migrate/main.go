// Command migrate runs schema operations for the backend.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"coblog/internal/config"
	"coblog/internal/database"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func usage() error {
	return fmt.Errorf("usage: go run ./cmd/migrate/main.go <up|down>")
}

func run() error {
	flag.Parse()
	if flag.NArg() < 1 {
		return usage()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(flag.Arg(0))) {
	case "up":
		if err := database.MigrateUp(db); err != nil {
			return fmt.Errorf("sql migrations failed: %w", err)
		}
		log.Println("sql migrations applied")
	case "down":
		if err := database.MigrateDown(db); err != nil {
			return fmt.Errorf("rollback failed: %w", err)
		}
		log.Println("rolled back latest migration")
	default:
		return usage()
	}

	return nil
}
