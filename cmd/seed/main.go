package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/mohammadh73/restbucks-backend/config"
	"github.com/mohammadh73/restbucks-backend/internal/app/model"
	"github.com/mohammadh73/restbucks-backend/internal/app/repository"
	"github.com/mohammadh73/restbucks-backend/internal/db"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Imports a menu from an XLSX file with the columns:
// title | price | option | items (comma separated)
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	productRepo := repository.NewProductRepository(db.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	products, err := readMenuFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total products to import: %d\n", len(products))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	batchSize := 100
	fmt.Printf("Starting bulk import with batch size: %d\n", batchSize)
	if err := productRepo.BulkCreate(products, batchSize); err != nil {
		log.Fatal("Failed to bulk create products:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total products imported: %d\n", len(products))
}

func readMenuFromXLSX(filePath string) ([]model.Product, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	var products []model.Product
	seenTitles := make(map[string]bool)
	skippedCount := 0

	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}

		if len(row) < 2 {
			skippedCount++
			continue
		}

		title := strings.TrimSpace(row[0])
		priceStr := strings.TrimSpace(row[1])
		if title == "" || priceStr == "" {
			skippedCount++
			continue
		}

		if seenTitles[title] {
			skippedCount++
			continue
		}
		seenTitles[title] = true

		price, err := decimal.NewFromString(priceStr)
		if err != nil {
			fmt.Printf("Row %d: invalid price %q, skipping\n", i+1, priceStr)
			skippedCount++
			continue
		}

		product := model.Product{
			Title: title,
			Price: price,
		}

		if len(row) > 2 {
			product.Option = strings.TrimSpace(row[2])
		}
		if len(row) > 3 && strings.TrimSpace(row[3]) != "" {
			for _, name := range strings.Split(row[3], ",") {
				name = strings.TrimSpace(name)
				if name == "" {
					continue
				}
				product.Items = append(product.Items, model.ProductItem{Name: name})
			}
		}

		products = append(products, product)
	}

	if skippedCount > 0 {
		fmt.Printf("Skipped %d rows\n", skippedCount)
	}

	return products, nil
}
