// Giftmatch - Conversational Gift Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/giftmatch

package database

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tomtom215/giftmatch/internal/logging"
	"github.com/tomtom215/giftmatch/internal/profile"
	"github.com/tomtom215/giftmatch/internal/recommend"
)

// SeedProductsFromCSV loads path into an empty catalog. A catalog that
// already holds products is left alone and 0 is returned.
//
// The header row names the columns. name and price are required; id,
// price_drop_7d, price_drop_30d and any profile dimension (age_19_29,
// interest_music, ...) are optional. Empty feature cells count as 0.
func (db *DB) SeedProductsFromCSV(ctx context.Context, path string) (int, error) {
	count, err := db.CountProducts(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		logging.Debug().Int("products", count).Msg("Catalog already populated, skipping seed")
		return 0, nil
	}

	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return 0, fmt.Errorf("open seed file: %w", err)
	}
	defer closeWithLog(f, "seed file")

	products, err := ParseProductsCSV(f)
	if err != nil {
		return 0, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	if _, err := db.InsertProducts(ctx, products); err != nil {
		return 0, err
	}

	logging.Info().Int("products", len(products)).Str("file", path).Msg("Seeded product catalog")
	return len(products), nil
}

// ParseProductsCSV reads catalog rows in the seed file layout.
func ParseProductsCSV(r io.Reader) ([]recommend.Product, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	layout, err := parseHeader(header)
	if err != nil {
		return nil, err
	}

	var products []recommend.Product
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		p, err := layout.product(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		products = append(products, p)
	}
	return products, nil
}

type csvLayout struct {
	id, name, price, drop7d, drop30d int
	features                         map[int]profile.Dimension
}

func parseHeader(header []string) (*csvLayout, error) {
	l := &csvLayout{id: -1, name: -1, price: -1, drop7d: -1, drop30d: -1, features: map[int]profile.Dimension{}}
	for i, col := range header {
		col = strings.ToLower(strings.TrimSpace(col))
		switch col {
		case "id":
			l.id = i
		case "name":
			l.name = i
		case "price":
			l.price = i
		case "price_drop_7d":
			l.drop7d = i
		case "price_drop_30d":
			l.drop30d = i
		default:
			d, ok := profile.DimensionByName(col)
			if !ok {
				return nil, fmt.Errorf("unknown column %q", col)
			}
			l.features[i] = d
		}
	}
	if l.name < 0 || l.price < 0 {
		return nil, fmt.Errorf("header must contain name and price")
	}
	return l, nil
}

func (l *csvLayout) product(record []string) (recommend.Product, error) {
	var p recommend.Product
	var err error

	p.Name = strings.TrimSpace(record[l.name])
	if p.Name == "" {
		return p, fmt.Errorf("empty name")
	}
	if p.Price, err = strconv.ParseFloat(strings.TrimSpace(record[l.price]), 64); err != nil || p.Price < 0 {
		return p, fmt.Errorf("invalid price %q", record[l.price])
	}
	if l.id >= 0 && strings.TrimSpace(record[l.id]) != "" {
		if p.ID, err = strconv.ParseInt(strings.TrimSpace(record[l.id]), 10, 64); err != nil {
			return p, fmt.Errorf("invalid id %q", record[l.id])
		}
	}
	if p.PriceDrop7d, err = optionalBool(record, l.drop7d); err != nil {
		return p, err
	}
	if p.PriceDrop30d, err = optionalBool(record, l.drop30d); err != nil {
		return p, err
	}

	for i, d := range l.features {
		cell := strings.TrimSpace(record[i])
		if cell == "" {
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return p, fmt.Errorf("invalid %s value %q", d, cell)
		}
		p.Features[d] = v
	}
	return p, nil
}

func optionalBool(record []string, idx int) (bool, error) {
	if idx < 0 {
		return false, nil
	}
	cell := strings.TrimSpace(record[idx])
	if cell == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(cell)
	if err != nil {
		return false, fmt.Errorf("invalid boolean %q", cell)
	}
	return b, nil
}
