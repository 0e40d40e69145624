package loader

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/toniju98/AirBnbAnalyzer/internal/analytics"
	"github.com/toniju98/AirBnbAnalyzer/internal/domain"
)

// BookingFile is one parsed upload before merging.
type BookingFile struct {
	Name         string
	Columns      []string
	DateColumns  []string
	PriceColumns []string
	Rows         []map[string]string
}

// ParseBookingFile reads one uploaded CSV of arbitrary schema into a
// BookingFile, normalizing headers and classifying columns.
func ParseBookingFile(name string, r io.Reader) (BookingFile, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return BookingFile{}, fmt.Errorf("parse %s: %w", name, df.Err)
	}

	columns := make([]string, len(df.Names()))
	for i, c := range df.Names() {
		columns[i] = normalizeColumn(c)
	}
	dateCols, priceCols := classifyColumns(columns)

	out := BookingFile{
		Name:         name,
		Columns:      columns,
		DateColumns:  dateCols,
		PriceColumns: priceCols,
	}
	records := df.Records()
	if len(records) < 2 {
		return out, nil
	}
	for _, rec := range records[1:] {
		row := make(map[string]string, len(columns))
		for i, col := range columns {
			if i < len(rec) {
				row[col] = rec[i]
			}
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

// MergeBookingFiles concatenates parsed uploads into one dataset,
// dropping exact-duplicate rows. The first detected date-like and
// price-like columns drive the per-record coercion.
func MergeBookingFiles(files []BookingFile) domain.BookingDataset {
	var ds domain.BookingDataset
	appendUnique := func(dst []string, cols []string, seen map[string]bool) []string {
		for _, c := range cols {
			if !seen[c] {
				seen[c] = true
				dst = append(dst, c)
			}
		}
		return dst
	}
	seenCol := map[string]bool{}
	seenDate := map[string]bool{}
	seenPrice := map[string]bool{}
	for _, f := range files {
		ds.Columns = appendUnique(ds.Columns, f.Columns, seenCol)
		ds.DateColumns = appendUnique(ds.DateColumns, f.DateColumns, seenDate)
		ds.PriceColumns = appendUnique(ds.PriceColumns, f.PriceColumns, seenPrice)
	}

	var dateCol, priceCol string
	if len(ds.DateColumns) > 0 {
		dateCol = ds.DateColumns[0]
	}
	if len(ds.PriceColumns) > 0 {
		priceCol = ds.PriceColumns[0]
	}

	seenRow := map[string]bool{}
	for _, f := range files {
		for _, row := range f.Rows {
			parts := make([]string, len(ds.Columns))
			for i, col := range ds.Columns {
				parts[i] = row[col]
			}
			key := strings.Join(parts, "\x1f")
			if seenRow[key] {
				continue
			}
			seenRow[key] = true

			var rec domain.BookingRecord
			if dateCol != "" {
				if d, ok := parseDate(row[dateCol]); ok {
					rec.Date = &d
				}
			}
			if priceCol != "" {
				rec.Amount = analytics.CleanPrice(row[priceCol])
			}
			ds.Records = append(ds.Records, rec)
		}
	}
	return ds
}
