package main

import (
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

var header = []string{
	"code", "discount_type", "discount_value", "usage_limit", "usage_limit_per_user",
	"valid_from", "valid_to", "active", "min_order_amount", "max_discount",
}

// Sample coupon definitions. couponbase2 redefines SAVE10 with a higher value, so
// importing both files in order leaves the second definition in place.
func main() {
	dataDir := "data/coupons"
	if len(os.Args) > 1 {
		dataDir = os.Args[1]
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	now := time.Now().UTC().Truncate(24 * time.Hour)
	from := now.AddDate(0, -1, 0).Format(time.RFC3339)
	to := now.AddDate(1, 0, 0).Format(time.RFC3339)
	expired := now.AddDate(0, 0, -1).Format(time.RFC3339)

	files := map[string][][]string{
		"couponbase1.gz": {
			{"SAVE10", "percent", "10", "", "1", from, to, "true", "0", "50"},
			{"FIVEOFF", "fixed", "5", "1000", "", from, to, "true", "20", ""},
			{"LAUNCH", "percent", "25", "100", "1", from, expired, "true", "0", ""},
		},
		"couponbase2.gz": {
			{"SAVE10", "percent", "15", "", "1", from, to, "true", "0", "50"},
			{"VIP", "fixed", "30", "", "", from, to, "true", "150", ""},
			{"PAUSED", "fixed", "10", "", "", from, to, "false", "0", ""},
		},
	}

	for filename, rows := range files {
		filePath := filepath.Join(dataDir, filename)

		if err := createCouponFile(filePath, rows); err != nil {
			log.Fatalf("Failed to create %s: %v", filename, err)
		}

		fmt.Printf("Created %s with %d coupons\n", filePath, len(rows))
	}

	fmt.Println("\nImport with COUPON_FILES=" +
		filepath.Join(dataDir, "couponbase1.gz") + "," + filepath.Join(dataDir, "couponbase2.gz"))
}

func createCouponFile(filePath string, rows [][]string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	w := csv.NewWriter(gzipWriter)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write coupons: %w", err)
	}

	return nil
}
