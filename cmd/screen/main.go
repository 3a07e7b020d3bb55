package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"eumr_screening/pkg/core/config"
	"eumr_screening/pkg/core/directory"
	"eumr_screening/pkg/core/eumr"
	"eumr_screening/pkg/core/finance"
	"eumr_screening/pkg/core/report"
	"eumr_screening/pkg/core/resolve"
	"eumr_screening/pkg/core/store"
	"eumr_screening/pkg/core/universe"
)

func main() {
	godotenv.Load()

	configPath := flag.String("config", "config/screening.yaml", "path to YAML configuration")
	resolveName := flag.String("resolve", "", "resolve a company name to ticker candidates instead of screening")
	htmlOut := flag.Bool("html", false, "emit the report as HTML instead of plain text")
	save := flag.Bool("save", false, "persist the screening to the history database")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	var provider finance.Provider = finance.NewYahooClient()
	if _, err := os.Stat(cfg.SegmentFile); err == nil {
		provider, err = finance.NewSegmentedProvider(provider, cfg.SegmentFile)
		if err != nil {
			log.Fatalf("Error: %v", err)
		}
	}

	ctx := context.Background()

	if *resolveName != "" {
		runResolve(ctx, cfg, provider, *resolveName)
		return
	}

	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Usage: screen [flags] TICKER1 TICKER2")
		fmt.Fprintln(os.Stderr, "       screen -resolve \"Company Name\"")
		flag.PrintDefaults()
		os.Exit(2)
	}
	ticker1 := strings.ToUpper(flag.Arg(0))
	ticker2 := strings.ToUpper(flag.Arg(1))

	evaluator := eumr.NewEvaluator(provider, cfg.EvaluatorOptions())
	analysis, err := evaluator.Evaluate(ctx, ticker1, ticker2)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	if *htmlOut {
		html, err := report.RenderHTML(analysis)
		if err != nil {
			log.Fatalf("Error: %v", err)
		}
		fmt.Print(html)
	} else {
		fmt.Print(report.Render(analysis))
	}

	if *save {
		if err := store.InitDB(ctx, cfg.DatabaseURL); err != nil {
			log.Fatalf("Error: cannot persist screening: %v", err)
		}
		defer store.Close()
		if err := store.NewScreeningRepo().Save(ctx, analysis); err != nil {
			log.Fatalf("Error: %v", err)
		}
		fmt.Printf("\n[STORE] Saved screening %s\n", analysis.ID)
	}
}

// runResolve prints resolution candidates in a fixed-width table.
func runResolve(ctx context.Context, cfg *config.Config, provider finance.Provider, name string) {
	dir, err := directory.Load(cfg.DirectoryFile)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	uni := universe.NewClient(cfg.UniverseSources())
	resolver := resolve.NewResolver(dir, uni, provider, cfg.FetchTimeout())

	candidates, err := resolver.Resolve(ctx, name)
	if err != nil {
		log.Fatalf("Error occurred: %v", err)
	}
	if len(candidates) == 0 {
		fmt.Println("No results found.")
		return
	}

	fmt.Println("\nFound the following matches:")
	fmt.Println(strings.Repeat("-", 70))
	fmt.Printf("%-10s %-60s\n", "Ticker", "Company Name")
	fmt.Println(strings.Repeat("-", 70))
	for _, c := range candidates {
		displayName := c.Name
		if len(displayName) > 60 {
			displayName = displayName[:60]
		}
		fmt.Printf("%-10s %-60s\n", c.Ticker, displayName)
	}
}
