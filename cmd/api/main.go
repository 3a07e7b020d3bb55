package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	apimerger "eumr_screening/pkg/api/merger"
	apiresolver "eumr_screening/pkg/api/resolver"
	"eumr_screening/pkg/core/config"
	"eumr_screening/pkg/core/directory"
	"eumr_screening/pkg/core/eumr"
	"eumr_screening/pkg/core/finance"
	"eumr_screening/pkg/core/resolve"
	"eumr_screening/pkg/core/store"
	"eumr_screening/pkg/core/universe"
)

func main() {
	// Load environment variables
	godotenv.Load()

	configPath := flag.String("config", "config/screening.yaml", "path to YAML configuration")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	// Company directory (fast-path name -> ticker lookups)
	dir, err := directory.Load(cfg.DirectoryFile)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	fmt.Printf("[DIRECTORY] Loaded %d companies from %s\n", dir.Len(), cfg.DirectoryFile)

	// Financial data provider: Yahoo quoteSummary with the curated
	// geographic-segment overlay.
	var provider finance.Provider = finance.NewYahooClient()
	provider, err = finance.NewSegmentedProvider(provider, segmentFileIfPresent(cfg.SegmentFile))
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	uni := universe.NewClient(cfg.UniverseSources())
	resolver := resolve.NewResolver(dir, uni, provider, cfg.FetchTimeout())
	evaluator := eumr.NewEvaluator(provider, cfg.EvaluatorOptions())

	// Screening history store (optional)
	var repo *store.ScreeningRepo
	if cfg.StoreEnabled {
		if err := store.InitDB(context.Background(), cfg.DatabaseURL); err != nil {
			fmt.Printf("[WARNING] Screening history disabled: %v\n", err)
		} else {
			repo = store.NewScreeningRepo()
			defer store.Close()
			fmt.Println("[STORE] Screening history enabled")
		}
	}

	resolveHandler := apiresolver.NewHandler(resolver)
	mergerHandler := apimerger.NewHandler(evaluator, repo)

	http.HandleFunc("/api/resolve", resolveHandler.HandleResolve)
	http.HandleFunc("/api/merger/evaluate", mergerHandler.HandleEvaluate)
	http.HandleFunc("/api/merger/report", mergerHandler.HandleReport)
	http.HandleFunc("/api/merger/history", mergerHandler.HandleHistory)
	http.HandleFunc("/api/merger/history/", mergerHandler.HandleHistory)

	fmt.Printf("API server starting on %s...\n", cfg.ListenAddr)
	fmt.Println("  - POST /api/resolve")
	fmt.Println("  - POST /api/merger/evaluate")
	fmt.Println("  - POST /api/merger/report")
	fmt.Println("  - GET  /api/merger/history")
	fmt.Printf("[CONFIG] EUR/USD rate: %g\n", cfg.EurUsdRate)

	if err := http.ListenAndServe(cfg.ListenAddr, nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}

// segmentFileIfPresent returns path when the file exists, otherwise "".
// The segment overlay is curated by hand and frequently absent.
func segmentFileIfPresent(path string) string {
	if path == "" {
		return ""
	}
	if _, err := os.Stat(path); err != nil {
		fmt.Printf("[SEGMENTS] No segment file at %s, EU revenue will be estimated\n", path)
		return ""
	}
	return path
}
