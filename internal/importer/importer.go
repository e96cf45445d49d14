package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"storefront/internal/domain"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// CSVImporter reads storefront catalog exports and inserts/updates products.
//
// Expected columns: id,slug,name,description,price,comparePrice,category,
// inStock,images. Optional: features, isNew, isBestseller. A row with an
// empty id and an image adds that image to the previous product. List
// cells (images, features) are separated by ";".
type CSVImporter struct {
	reader      *csv.Reader
	productRepo ProductWriter
	logger      *zap.SugaredLogger
}

func NewCSVImporter(r io.Reader, repo ProductWriter, logger *zap.SugaredLogger) *CSVImporter {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:      csvr,
		productRepo: repo,
		logger:      logger,
	}
}

// Run parses CSV rows and upserts products in file order.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["id"]; !ok {
		return 0, errors.New("missing id column")
	}

	var (
		current  *domain.Product
		imported int
		line     = 1
	)

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		line++

		id := pick(record, index, "id")
		if id == "" {
			// Continuation rows (images) belong to the current product.
			if current != nil {
				current.Images = append(current.Images, splitList(pick(record, index, "images"))...)
			}
			continue
		}

		row, err := parseRow(record, index)
		if err != nil {
			return imported, fmt.Errorf("line %d: %w", line, err)
		}
		if current != nil {
			if err := i.save(ctx, current); err != nil {
				return imported, err
			}
			imported++
		}
		current = row
	}

	if current != nil {
		if err := i.save(ctx, current); err != nil {
			return imported, err
		}
		imported++
	}

	i.logger.Infow("importer: done", "products", imported)
	return imported, nil
}

func (i *CSVImporter) save(ctx context.Context, p *domain.Product) error {
	if _, err := i.productRepo.Upsert(ctx, *p); err != nil {
		return fmt.Errorf("upsert product %q: %w", p.ID, err)
	}
	i.logger.Debugw("importer: upserted", "id", p.ID, "slug", p.Slug, "images", len(p.Images))
	return nil
}

func parseRow(record []string, index map[string]int) (*domain.Product, error) {
	p := &domain.Product{
		ID:          pick(record, index, "id"),
		Slug:        pick(record, index, "slug"),
		Name:        pick(record, index, "name"),
		Description: pick(record, index, "description"),
		Category:    pick(record, index, "category"),
		Images:      splitList(pick(record, index, "images")),
		Features:    splitList(pick(record, index, "features")),
		InStock:     true,
	}
	if p.Slug == "" || p.Name == "" {
		return nil, fmt.Errorf("invalid product row (missing slug or name) for id %q", p.ID)
	}

	price, err := decimal.NewFromString(pick(record, index, "price"))
	if err != nil {
		return nil, fmt.Errorf("invalid price for id %q: %w", p.ID, err)
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("negative price for id %q", p.ID)
	}
	p.Price = price

	if v := pick(record, index, "comparePrice"); v != "" {
		cp, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("invalid comparePrice for id %q: %w", p.ID, err)
		}
		p.ComparePrice = &cp
	}

	for col, dst := range map[string]*bool{"inStock": &p.InStock, "isNew": &p.IsNew, "isBestseller": &p.IsBestseller} {
		v := pick(record, index, col)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s for id %q: %w", col, p.ID, err)
		}
		*dst = b
	}
	return p, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	return idx
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
