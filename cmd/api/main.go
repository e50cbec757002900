package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	financeapi "solar_finance/pkg/api/finance"
	"solar_finance/pkg/core/finance"
	"solar_finance/pkg/core/fx"
	"solar_finance/pkg/core/store"
)

func main() {
	// Load environment variables
	godotenv.Load()

	log := logrus.New()
	if os.Getenv("LOG_LEVEL") == "DEBUG" {
		log.SetLevel(logrus.DebugLevel)
	}

	// Regional cost and currency overrides (built-in defaults when absent)
	if err := finance.LoadRegionOverrides("config/regions.yaml"); err != nil {
		fmt.Printf("[WARNING] Failed to load region config: %v\n", err)
		fmt.Println("  Falling back to built-in regional defaults")
	}

	// Optional Postgres-backed rate store; file cache otherwise
	ctx := context.Background()
	if os.Getenv("DATABASE_URL") != "" {
		if err := store.InitDB(ctx); err != nil {
			fmt.Printf("[WARNING] Database init failed: %v\n", err)
			fmt.Println("  Falling back to file-based rate cache")
		}
		defer store.Close()
	}
	rateCache := store.NewRateCache(store.GetPool(), "")
	resolver := fx.NewResolver(rateCache, log)

	// Optional live exchange-rate prime; static table covers failures
	if ratesURL := os.Getenv("FX_RATES_URL"); ratesURL != "" {
		fetcher := fx.NewLiveFetcher(ratesURL, log)
		if err := fetcher.Prime(ctx, resolver); err != nil {
			log.WithError(err).Warn("live rate fetch failed, using static rates")
		}
	}

	// Finance endpoints
	handler := financeapi.NewHandler(resolver, log)
	http.HandleFunc("/api/finance/metrics", handler.HandleMetrics)
	http.HandleFunc("/api/finance/currency", handler.HandleCurrency)
	http.HandleFunc("/api/finance/regions", handler.HandleRegions)
	http.HandleFunc("/api/finance/report", handler.HandleReport)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Printf("API server starting on :%s...\n", port)
	fmt.Println("  - POST /api/finance/metrics")
	fmt.Println("  - POST /api/finance/currency")
	fmt.Println("  - GET  /api/finance/regions")
	fmt.Println("  - POST /api/finance/report")

	if err := http.ListenAndServe(":"+port, nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
