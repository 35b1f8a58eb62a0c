package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"quote3d/internal/adapter/persistence"
	"quote3d/internal/infrastructure/catalog"
	"quote3d/internal/infrastructure/config"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
)

var (
	catalogPath string
	dryRun      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the material catalog into the record store",
		Long: `Reads a YAML material catalog and upserts every material into the
record store selected by RECORD_STORE. Existing materials with the same code
are overwritten.

Examples:
  seed
  seed --file db/materials.yaml --dry-run`,
		Args: cobra.NoArgs,
		RunE: runSeed,
	}
	rootCmd.Flags().StringVarP(&catalogPath, "file", "f", "db/materials.yaml", "material catalog file")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate the catalog without writing")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runSeed(cmd *cobra.Command, _ []string) error {
	materials, err := catalog.Load(catalogPath)
	if err != nil {
		return err
	}
	fmt.Printf("Found %d materials in %s\n", len(materials), catalogPath)

	if dryRun {
		fmt.Println("Dry run - no changes made")
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := persistence.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	for _, m := range materials {
		if err := store.Materials.Put(ctx, m); err != nil {
			return fmt.Errorf("seed material %s: %w", m.Code, err)
		}
		log.Printf("[seed] upserted material code=%s price=%s lead_time_days=%d", m.Code, m.Price.String(), m.LeadTimeDays)
	}
	fmt.Println("Seeding finished.")
	return nil
}
