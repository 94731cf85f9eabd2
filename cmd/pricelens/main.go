package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/klydo/pricelens/config"
	httpDelivery "github.com/klydo/pricelens/internal/delivery/http"
	"github.com/klydo/pricelens/internal/infrastructure/catalog"
	"github.com/klydo/pricelens/internal/infrastructure/serpapi"
	"github.com/klydo/pricelens/internal/usecase"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pricelens",
		Short:         "Match catalog products against visually-similar external listings",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newRunCmd(), newServeCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var inputPath, outputPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Process a product catalog and write the price comparison table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			log.Printf("Starting pricelens batch run")
			log.Printf("Input: %s -> Output: %s", inputPath, outputPath)
			log.Printf("Filters: rank<=%d, price tolerance %.0f%%, pacing %s",
				cfg.Search.MaxVisualRank, cfg.Search.PriceTolerance*100, cfg.Search.PacingDelay)

			batch := usecase.NewBatchService(
				buildSearchService(cfg),
				catalog.NewReader(inputPath),
				catalog.NewWriter(outputPath),
				usecase.BatchServiceConfig{
					PacingDelay:      cfg.Search.PacingDelay,
					CoverageTarget:   cfg.Search.CoverageTarget,
					KlydoURLTemplate: cfg.Output.KlydoURLTemplate,
				},
			)

			summary, err := batch.Run(cmd.Context())
			if err != nil {
				return err
			}

			log.Printf("Processed %d product(s), output saved: %s", summary.Total, outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "catalog file to read (.csv or .xlsx)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "comparison file to write (.csv or .xlsx)")
	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("output")

	return cmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the single-product match API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			log.Printf("Starting pricelens API")
			log.Printf("Environment: %s", cfg.Server.Environment)
			log.Printf("Port: %s", cfg.Server.Port)

			handler := httpDelivery.NewHandler(buildSearchService(cfg))
			router := httpDelivery.SetupRouter(cfg, handler)

			addr := fmt.Sprintf(":%s", cfg.Server.Port)
			log.Printf("Server listening on %s", addr)
			return router.Run(addr)
		},
	}
}

func buildSearchService(cfg *config.Config) *usecase.SearchService {
	client := serpapi.NewClient(cfg.SerpAPI.APIKey, cfg.SerpAPI.BaseURL, cfg.SerpAPI.Country, cfg.SerpAPI.Language)

	return usecase.NewSearchService(client, usecase.SearchServiceConfig{
		Scorer: usecase.ScorerConfig{
			MaxVisualRank:            cfg.Search.MaxVisualRank,
			PriceTolerance:           cfg.Search.PriceTolerance,
			MarketplaceSimilarityMin: cfg.Search.MarketplaceSimilarityMin,
			BrandSiteSimilarityMin:   cfg.Search.BrandSiteSimilarityMin,
		},
	})
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime)
	log.SetOutput(os.Stdout)
}
