// Package testkit generates deterministic synthetic sales datasets for
// tests and local development.
package testkit

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"datasuite/domain/table"
)

// SalesGeneratorConfig configures the synthetic sales data generator
type SalesGeneratorConfig struct {
	RowCount      int       `json:"row_count"`
	Products      []string  `json:"products"`
	Regions       []string  `json:"regions"`
	MissingRate   float64   `json:"missing_rate"`
	DuplicateRate float64   `json:"duplicate_rate"`
	StartDate     time.Time `json:"start_date"`
	Seed          int64     `json:"seed"`
}

// DefaultSalesConfig returns sensible defaults for sales data generation
func DefaultSalesConfig() SalesGeneratorConfig {
	return SalesGeneratorConfig{
		RowCount:      200,
		Products:      []string{"Widget", "Gadget", "Gizmo", "Doohickey"},
		Regions:       []string{"North", "South", "East", "West"},
		MissingRate:   0.05,
		DuplicateRate: 0.05,
		StartDate:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Seed:          42,
	}
}

// GenerateSalesTable builds a raw table with the configured row count,
// missing cells, and exact duplicate rows. Same config, same table.
func GenerateSalesTable(cfg SalesGeneratorConfig) table.RawTable {
	rng := rand.New(rand.NewSource(cfg.Seed))

	type row struct {
		date, product, region, sales, units string
		salesNull, unitsNull                bool
	}

	rows := make([]row, 0, cfg.RowCount)
	for i := 0; i < cfg.RowCount; i++ {
		if len(rows) > 0 && rng.Float64() < cfg.DuplicateRate {
			rows = append(rows, rows[rng.Intn(len(rows))])
			continue
		}

		r := row{
			date:    cfg.StartDate.AddDate(0, 0, rng.Intn(90)).Format("2006-01-02"),
			product: cfg.Products[rng.Intn(len(cfg.Products))],
			region:  cfg.Regions[rng.Intn(len(cfg.Regions))],
			sales:   fmt.Sprintf("%.2f", 50+rng.Float64()*950),
			units:   fmt.Sprintf("%d", 1+rng.Intn(50)),
		}
		if rng.Float64() < cfg.MissingRate {
			r.salesNull = true
		}
		if rng.Float64() < cfg.MissingRate {
			r.unitsNull = true
		}
		rows = append(rows, r)
	}

	cols := []table.Column{
		{Name: "Date", Cells: make([]table.Cell, len(rows))},
		{Name: "Product", Cells: make([]table.Cell, len(rows))},
		{Name: "Region", Cells: make([]table.Cell, len(rows))},
		{Name: "Sales", Cells: make([]table.Cell, len(rows))},
		{Name: "Units", Cells: make([]table.Cell, len(rows))},
	}
	for i, r := range rows {
		cols[0].Cells[i] = table.Cell{Value: r.date}
		cols[1].Cells[i] = table.Cell{Value: r.product}
		cols[2].Cells[i] = table.Cell{Value: r.region}
		cols[3].Cells[i] = table.Cell{Value: r.sales, Null: r.salesNull}
		cols[4].Cells[i] = table.Cell{Value: r.units, Null: r.unitsNull}
		if r.salesNull {
			cols[3].Cells[i].Value = ""
		}
		if r.unitsNull {
			cols[4].Cells[i].Value = ""
		}
	}

	return table.RawTable{Columns: cols}
}

// WriteSalesCSV renders the generated table as a CSV file at path.
func WriteSalesCSV(cfg SalesGeneratorConfig, path string) error {
	t := GenerateSalesTable(cfg)

	var b strings.Builder
	b.WriteString(strings.Join(t.ColumnNames(), ","))
	b.WriteByte('\n')
	for i := 0; i < t.NumRows(); i++ {
		fields := make([]string, len(t.Columns))
		for j, col := range t.Columns {
			if !col.Cells[i].Null {
				fields[j] = col.Cells[i].Value
			}
		}
		b.WriteString(strings.Join(fields, ","))
		b.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write sales CSV: %w", err)
	}
	return nil
}
