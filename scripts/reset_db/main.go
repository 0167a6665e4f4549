// Development helper: drops and recreates the schema from scratch.
// Run: go run scripts/reset_db/main.go
package main

import (
	"context"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/jackc/pgx/v5"
)

var tables = []string{
	"leads",
	"properties",
	"buyers",
	"goose_db_version",
}

func main() {
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		color.Red("DATABASE_URL is not set")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	color.Cyan("Connecting to database...")

	conn, err := pgx.Connect(ctx, connStr)
	if err != nil {
		color.Red("Failed to connect: %v", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	color.Green("Connected.")

	for _, table := range tables {
		color.Yellow("Dropping %s...", table)
		if _, err := conn.Exec(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE"); err != nil {
			color.Red("Failed to drop %s: %v", table, err)
			os.Exit(1)
		}
	}

	color.Green("Schema cleared. Run goose up to recreate it from migrations/.")
}
