package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/MarquisOgre/Spices/internal/config"
	"github.com/MarquisOgre/Spices/internal/db"
	"github.com/MarquisOgre/Spices/internal/handlers"
)

var numberPattern = regexp.MustCompile(`[-+]?\d*\.?\d+`)

func main() {
	csvPath := "master ingredients list.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}

	if err := run(csvPath); err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}
}

func run(csvPath string) error {
	if strings.TrimSpace(csvPath) == "" {
		return fmt.Errorf("csv path must not be empty")
	}

	if _, err := os.Stat(csvPath); err != nil {
		return fmt.Errorf("locate csv: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	database, err := db.Initialize(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(database); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	records, err := readCSV(csvPath)
	if err != nil {
		return fmt.Errorf("read csv: %w", err)
	}

	created, updated, err := importRecords(database, records)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Imported %d ingredients (%d new, %d updated) from %s\n",
		created+updated, created, updated, filepath.Base(csvPath))
	return nil
}

// importRecords upserts each row in its own transaction so one malformed row
// does not abandon the rest of the sheet.
func importRecords(database *gorm.DB, records []map[string]string) (created, updated int, err error) {
	ctx := context.Background()
	for idx, record := range records {
		name := firstField(record, "Ingredient Name", "Name", "ingredient_name", "name")
		if name == "" {
			return created, updated, fmt.Errorf("record %d: missing ingredient name", idx+1)
		}
		price, ok := parseFirstNumber(firstField(record, "Price Per Kg", "Price", "price_per_kg", "price"))
		if !ok {
			return created, updated, fmt.Errorf("record %d (%s): missing price per kg", idx+1, name)
		}
		brand := firstField(record, "Brand", "brand")

		var wasCreated bool
		if err := database.Transaction(func(tx *gorm.DB) error {
			_, isNew, err := handlers.UpsertMasterIngredient(ctx, tx, name, price, brand)
			if err != nil {
				return err
			}
			wasCreated = isNew
			return nil
		}); err != nil {
			return created, updated, fmt.Errorf("record %d (%s): %w", idx+1, name, err)
		}

		if wasCreated {
			created++
		} else {
			updated++
		}
	}
	return created, updated, nil
}

func readCSV(path string) ([]map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, errors.New("csv is empty")
	}

	header := rows[0]
	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}

		record := make(map[string]string, len(header))
		for idx, key := range header {
			if idx >= len(row) {
				continue
			}
			record[strings.TrimSpace(key)] = strings.TrimSpace(row[idx])
		}
		records = append(records, record)
	}

	return records, nil
}

func firstField(record map[string]string, keys ...string) string {
	for _, key := range keys {
		if value := strings.TrimSpace(record[key]); value != "" {
			return value
		}
	}
	return ""
}

// parseFirstNumber extracts the leading numeric token, tolerating values like
// "Rs. 120/kg" that turn up in hand-maintained sheets.
func parseFirstNumber(value string) (float64, bool) {
	match := numberPattern.FindString(value)
	if match == "" {
		return 0, false
	}
	parsed, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}
