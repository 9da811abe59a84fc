package coupon

import (
	"compress/gzip"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"shopfront/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Columns of a coupon definition file, in order. The first row is a header.
var fileColumns = []string{
	"code",
	"discount_type",
	"discount_value",
	"usage_limit",
	"usage_limit_per_user",
	"valid_from",
	"valid_to",
	"active",
	"min_order_amount",
	"max_discount",
}

// fileLoader implements Loader for reading gzipped coupon files from disk.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based coupon loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "coupon-loader").Logger(),
	}
}

// Load reads a gzipped CSV coupon file and returns a Set.
func (l *fileLoader) Load(ctx context.Context, filePath string) (Set, error) {
	l.logger.Info().Str("file", filePath).Msg("loading coupon file")

	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open coupon file")
		return nil, fmt.Errorf("failed to open coupon file %s: %w", filePath, err)
	}
	defer file.Close()

	set, err := readGzipCSV(ctx, file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("error reading coupon file")
		return nil, fmt.Errorf("error reading coupon file %s: %w", filePath, err)
	}

	l.logger.Info().
		Str("file", filePath).
		Int("coupons_loaded", set.Size()).
		Msg("coupon file loaded successfully")

	return set, nil
}

// readGzipCSV decodes a gzipped coupon CSV stream.
func readGzipCSV(ctx context.Context, r io.Reader) (Set, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	reader := csv.NewReader(gzipReader)
	reader.FieldsPerRecord = len(fileColumns)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	set := NewMapSet(1024).(*mapSet)
	for line := 2; ; line++ {
		if line%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		c, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		set.Add(c)
	}

	return set, nil
}

func checkHeader(header []string) error {
	for i, col := range fileColumns {
		if strings.TrimSpace(strings.ToLower(header[i])) != col {
			return fmt.Errorf("unexpected column %q at position %d, want %q", header[i], i+1, col)
		}
	}
	return nil
}

func parseRecord(record []string) (model.Coupon, error) {
	var c model.Coupon
	var err error

	c.Code = normaliseCode(record[0])
	if c.Code == "" {
		return c, errors.New("code is required")
	}

	c.DiscountType = model.DiscountType(strings.ToLower(strings.TrimSpace(record[1])))
	if c.DiscountType != model.DiscountFixed && c.DiscountType != model.DiscountPercent {
		return c, fmt.Errorf("invalid discount type %q", record[1])
	}

	if c.DiscountValue, err = decimal.NewFromString(strings.TrimSpace(record[2])); err != nil {
		return c, fmt.Errorf("invalid discount value: %w", err)
	}
	if c.UsageLimit, err = optionalInt(record[3]); err != nil {
		return c, fmt.Errorf("invalid usage limit: %w", err)
	}
	if c.UsageLimitPerUser, err = optionalInt(record[4]); err != nil {
		return c, fmt.Errorf("invalid per-user usage limit: %w", err)
	}
	if c.ValidFrom, err = time.Parse(time.RFC3339, strings.TrimSpace(record[5])); err != nil {
		return c, fmt.Errorf("invalid valid_from: %w", err)
	}
	if c.ValidTo, err = time.Parse(time.RFC3339, strings.TrimSpace(record[6])); err != nil {
		return c, fmt.Errorf("invalid valid_to: %w", err)
	}
	if c.ValidTo.Before(c.ValidFrom) {
		return c, errors.New("valid_to is before valid_from")
	}
	if c.Active, err = strconv.ParseBool(strings.TrimSpace(record[7])); err != nil {
		return c, fmt.Errorf("invalid active flag: %w", err)
	}

	c.MinOrderAmount = decimal.Zero
	if v := strings.TrimSpace(record[8]); v != "" {
		if c.MinOrderAmount, err = decimal.NewFromString(v); err != nil {
			return c, fmt.Errorf("invalid min order amount: %w", err)
		}
	}
	if v := strings.TrimSpace(record[9]); v != "" {
		maxDiscount, err := decimal.NewFromString(v)
		if err != nil {
			return c, fmt.Errorf("invalid max discount: %w", err)
		}
		c.MaxDiscount = decimal.NewNullDecimal(maxDiscount)
	}

	return c, nil
}

func optionalInt(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("negative value %d", n)
	}
	return &n, nil
}
