// cmd/tools/catalog-seeder/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"nashville-eats/internal/catalog"
	"nashville-eats/internal/common/config"
	"nashville-eats/internal/common/database"
	"nashville-eats/internal/models"
	"nashville-eats/pkg/registry"
)

func main() {
	seedCmd := flag.NewFlagSet("seed", flag.ExitOnError)
	listCmd := flag.NewFlagSet("list", flag.ExitOnError)
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	schemaCmd := flag.NewFlagSet("validate-schema", flag.ExitOnError)

	// Seed command flags
	seedFile := seedCmd.String("file", "", "JSON file of restaurants (defaults to the built-in catalog)")
	dryRun := seedCmd.Bool("dry-run", false, "Validate entries without writing")

	// Export command flags
	exportPath := exportCmd.String("out", "configs/catalog.json", "Path to write the built-in catalog")

	// Schema command flags
	schemaPath := schemaCmd.String("path", "configs/quiz-schema.json", "Path to quiz schema file")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "seed":
		seedCmd.Parse(os.Args[2:])
		entries, err := loadEntries(*seedFile)
		if err != nil {
			fmt.Printf("Error loading entries: %v\n", err)
			os.Exit(1)
		}
		if err := validateEntries(entries); err != nil {
			fmt.Printf("Catalog validation failed: %v\n", err)
			os.Exit(1)
		}
		if *dryRun {
			fmt.Printf("Catalog validation passed. %d entries would be written.\n", len(entries))
			return
		}
		if err := seed(entries); err != nil {
			fmt.Printf("Error seeding catalog: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Seeded %d restaurants.\n", len(entries))

	case "list":
		listCmd.Parse(os.Args[2:])
		if err := list(); err != nil {
			fmt.Printf("Error listing catalog: %v\n", err)
			os.Exit(1)
		}

	case "export":
		exportCmd.Parse(os.Args[2:])
		if err := export(*exportPath); err != nil {
			fmt.Printf("Error exporting catalog: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote built-in catalog to %s\n", *exportPath)

	case "validate-schema":
		schemaCmd.Parse(os.Args[2:])
		schema, err := registry.LoadSchema(*schemaPath)
		if err != nil {
			fmt.Printf("Schema validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Schema validation passed. Version %q with %d questions.\n", schema.Version, len(schema.Questions))

	case "help":
		fallthrough
	default:
		help()
	}
}

func loadEntries(path string) ([]models.Restaurant, error) {
	if path == "" {
		return catalog.Seed(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var entries []models.Restaurant
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return entries, nil
}

func validateEntries(entries []models.Restaurant) error {
	if len(entries) == 0 {
		return fmt.Errorf("catalog contains no restaurants")
	}

	ids := make(map[string]bool)
	for _, r := range entries {
		if r.ID == "" {
			return fmt.Errorf("restaurant missing required field: ID")
		}
		if ids[r.ID] {
			return fmt.Errorf("duplicate restaurant ID: %s", r.ID)
		}
		ids[r.ID] = true

		if r.Name == "" {
			return fmt.Errorf("restaurant %s missing required field: Name", r.ID)
		}
		if !r.PriceRange.Valid() {
			return fmt.Errorf("restaurant %s has invalid price range %q", r.ID, r.PriceRange)
		}
		if r.Coordinates != nil && !r.Coordinates.Valid() {
			return fmt.Errorf("restaurant %s has out-of-range coordinates", r.ID)
		}
	}
	return nil
}

func openRepository() (*catalog.Repository, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		return nil, nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := pg.Ping(ctx); err != nil {
		pg.Close()
		return nil, nil, fmt.Errorf("postgres ping failed: %w", err)
	}
	return catalog.NewRepository(pg.DB), func() { pg.Close() }, nil
}

func seed(entries []models.Restaurant) error {
	repo, closeFn, err := openRepository()
	if err != nil {
		return err
	}
	defer closeFn()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	return repo.Upsert(ctx, entries)
}

func list() error {
	repo, closeFn, err := openRepository()
	if err != nil {
		return err
	}
	defer closeFn()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	entries, err := repo.ListActive(ctx)
	if err != nil {
		return err
	}
	for _, r := range entries {
		fmt.Printf("%-28s %-5s %-18s %s\n", r.ID, r.PriceRange, r.Neighborhood, r.Name)
	}
	fmt.Printf("%d restaurants.\n", len(entries))
	return nil
}

// export writes the built-in catalog so it can be edited and re-seeded.
func export(path string) error {
	data, err := json.MarshalIndent(catalog.Seed(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write catalog file: %w", err)
	}
	return nil
}

func help() {
	fmt.Println(`
Usage: catalog-seeder <command> [flags]

Commands:
  seed             Upsert restaurants into the fallback catalog table
  list             Print the active fallback catalog
  export           Write the built-in catalog as JSON
  validate-schema  Validate a quiz schema file
  help             Show this help message

Examples:
  catalog-seeder seed
  catalog-seeder seed -file configs/catalog.json -dry-run
  catalog-seeder export -out configs/catalog.json
  catalog-seeder validate-schema -path configs/quiz-schema.json`)
}
