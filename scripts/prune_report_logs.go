package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"produce-backend/internal/repositories"
	"produce-backend/internal/timeutil"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	days := flag.Int("days", 90, "keep entries newer than this many days")
	yes := flag.Bool("yes", false, "skip the confirmation prompt")
	flag.Parse()

	if *days < 1 {
		log.Fatalf("-days must be at least 1")
	}
	cutoff := timeutil.StartOfDay(timeutil.Now()).AddDate(0, 0, -*days)

	fmt.Println("========================================")
	fmt.Println("   Prune Report Log")
	fmt.Println("========================================")
	fmt.Printf("Entries created before %s will be deleted.\n", timeutil.FormatDate(cutoff))

	if !*yes {
		fmt.Print("Type 'yes' to confirm: ")
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "yes" {
			fmt.Println("Prune cancelled.")
			return
		}
	}

	godotenv.Load()

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", "postgres"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "produce_reports"))

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}
	defer pool.Close()

	n, err := repositories.NewReportLogRepository(pool).DeleteBefore(ctx, cutoff)
	if err != nil {
		log.Fatalf("Failed to prune report log: %v\n", err)
	}
	fmt.Printf("Deleted %d entries.\n", n)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
