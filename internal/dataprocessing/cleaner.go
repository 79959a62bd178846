package dataprocessing

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	pipeerrors "fuelflow/internal/errors"
)

// Column names the cleaner cares about. Everything else rides along.
const (
	ColPeriod  = "period"
	ColValue   = "value"
	ColArea    = "duoarea"
	ColProduct = "product"
)

// MinYear and MaxYear bound the period domain of cleaned data.
const (
	MinYear = 1990
	MaxYear = 2025
)

// labelColumns are the textual label columns that get whitespace and
// casing normalization when present.
var labelColumns = []string{"area-name", "product-name", "process-name"}

// Cleaner transforms raw petroleum observations into the cleaned form:
// typed, year-filtered, deduplicated, imputed, outlier-filtered, and with
// region/product codes replaced by human-readable names.
type Cleaner struct {
	logger *slog.Logger
	titler cases.Caser
}

// NewCleaner creates a Cleaner. A nil logger falls back to slog.Default.
func NewCleaner(logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{
		logger: logger,
		titler: cases.Title(language.English),
	}
}

// Clean runs the full cleaning sequence. The input is never mutated.
// Step order matters and is fixed: period parsing and the year filter
// run before value parsing, deduplication runs before imputation so
// medians are computed over the deduplicated set, text normalization
// runs before code mapping so mapped names keep their exact casing, and
// the outlier fence is computed over the whole working set.
func (c *Cleaner) Clean(input *Dataset) (*Dataset, error) {
	// An empty fetch produces no rows and no columns; it flows through
	// to an empty cleaned artifact without raising.
	if input.Empty() {
		return input.Clone(), nil
	}

	if !input.HasColumn(ColPeriod) {
		return nil, pipeerrors.NewSchemaError(ColPeriod)
	}
	if !input.HasColumn(ColValue) {
		return nil, pipeerrors.NewSchemaError(ColValue)
	}

	ds := input.Clone()
	c.logger.Info("cleaning dataset", slog.Int("rows", ds.Len()))

	c.parsePeriods(ds)
	c.filterYears(ds)
	c.parseValues(ds)
	c.dropDuplicates(ds)
	if err := c.impute(ds); err != nil {
		return nil, err
	}
	c.normalizeLabels(ds)
	c.removeOutliers(ds)
	c.mapCodes(ds)

	c.logger.Info("cleaning complete", slog.Int("rows", ds.Len()))
	return ds, nil
}

// parsePeriods coerces the period column to dates. Failures become
// missing values; the year filter drops them next.
func (c *Cleaner) parsePeriods(ds *Dataset) {
	for _, row := range ds.Rows {
		row[ColPeriod] = parsePeriodCell(row[ColPeriod])
	}
}

func parsePeriodCell(cell Cell) Cell {
	switch cell.Kind {
	case KindDate:
		return cell
	case KindNumber:
		year := int(cell.Number)
		if float64(year) == cell.Number && year >= 1 && year <= 9999 {
			return DateCell(time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC))
		}
		return Missing()
	case KindText:
		s := strings.TrimSpace(cell.Text)
		for _, layout := range []string{"2006", "2006-01", "2006-01-02"} {
			if len(s) != len(layout) {
				continue
			}
			if t, err := time.Parse(layout, s); err == nil {
				return DateCell(t)
			}
		}
		return Missing()
	default:
		return Missing()
	}
}

// filterYears keeps rows whose period year falls inside [MinYear, MaxYear].
// Rows with an unparseable period carry no year and are excluded here.
func (c *Cleaner) filterYears(ds *Dataset) {
	before := ds.Len()
	kept := ds.Rows[:0]
	for _, row := range ds.Rows {
		cell := row[ColPeriod]
		if cell.Kind != KindDate {
			continue
		}
		if year := cell.Date.Year(); year >= MinYear && year <= MaxYear {
			kept = append(kept, row)
		}
	}
	ds.Rows = kept
	c.logger.Debug("filtered by year",
		slog.Int("before", before),
		slog.Int("after", ds.Len()))
}

// parseValues coerces the value column to numbers; failures become missing.
func (c *Cleaner) parseValues(ds *Dataset) {
	for _, row := range ds.Rows {
		row[ColValue] = parseValueCell(row[ColValue])
	}
}

func parseValueCell(cell Cell) Cell {
	switch cell.Kind {
	case KindNumber:
		return cell
	case KindText:
		if f, err := strconv.ParseFloat(strings.TrimSpace(cell.Text), 64); err == nil {
			return NumberCell(f)
		}
		return Missing()
	default:
		return Missing()
	}
}

// dropDuplicates removes rows whose every field equals an earlier row.
func (c *Cleaner) dropDuplicates(ds *Dataset) {
	before := ds.Len()
	seen := make(map[string]bool, ds.Len())
	kept := ds.Rows[:0]
	for _, row := range ds.Rows {
		key := ds.rowKey(row)
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, row)
	}
	ds.Rows = kept
	c.logger.Debug("dropped duplicates",
		slog.Int("before", before),
		slog.Int("after", ds.Len()))
}

// impute fills missing cells column by column: numeric columns with the
// column median, all other columns with the column mode. A column that
// is entirely missing has no fill value and fails with a DataError.
func (c *Cleaner) impute(ds *Dataset) error {
	for _, col := range ds.Columns {
		if err := c.imputeColumn(ds, col); err != nil {
			return err
		}
	}
	return nil
}

func (c *Cleaner) imputeColumn(ds *Dataset, col string) error {
	var (
		missing int
		numeric = true
		numbers []float64
	)
	for _, row := range ds.Rows {
		cell := row[col]
		if cell.IsMissing() {
			missing++
			continue
		}
		if cell.Kind == KindNumber {
			numbers = append(numbers, cell.Number)
		} else {
			numeric = false
		}
	}
	if missing == 0 {
		return nil
	}
	if missing == ds.Len() {
		return pipeerrors.NewDataError(col, "column is entirely missing")
	}

	var fill Cell
	if numeric {
		fill = NumberCell(median(numbers))
	} else {
		fill = columnMode(ds, col)
	}

	for _, row := range ds.Rows {
		if row[col].IsMissing() {
			row[col] = fill
		}
	}
	c.logger.Debug("imputed missing values",
		slog.String("column", col),
		slog.Int("filled", missing),
		slog.String("fill", fill.String()))
	return nil
}

// columnMode returns the most frequent non-missing cell in the column,
// breaking ties toward the lexicographically smallest rendering.
func columnMode(ds *Dataset, col string) Cell {
	type entry struct {
		cell  Cell
		count int
	}
	counts := make(map[string]*entry)
	for _, row := range ds.Rows {
		cell := row[col]
		if cell.IsMissing() {
			continue
		}
		key := cell.String()
		if e, ok := counts[key]; ok {
			e.count++
		} else {
			counts[key] = &entry{cell: cell, count: 1}
		}
	}

	var bestKey string
	var best *entry
	for key, e := range counts {
		if best == nil || e.count > best.count || (e.count == best.count && key < bestKey) {
			bestKey, best = key, e
		}
	}
	return best.cell
}

// normalizeLabels trims and title-cases the textual label columns.
func (c *Cleaner) normalizeLabels(ds *Dataset) {
	for _, col := range labelColumns {
		if !ds.HasColumn(col) {
			continue
		}
		for _, row := range ds.Rows {
			cell := row[col]
			if cell.Kind != KindText {
				continue
			}
			row[col] = TextCell(c.titler.String(strings.TrimSpace(cell.Text)))
		}
	}
}

// removeOutliers drops rows whose value falls outside the IQR fence
// computed over the whole working set. The fence is global, not
// per-product or per-region.
func (c *Cleaner) removeOutliers(ds *Dataset) {
	var values []float64
	for _, row := range ds.Rows {
		if cell := row[ColValue]; cell.Kind == KindNumber {
			values = append(values, cell.Number)
		}
	}
	if len(values) == 0 {
		return
	}

	lo, hi := iqrBounds(values)
	before := ds.Len()
	kept := ds.Rows[:0]
	for _, row := range ds.Rows {
		cell := row[ColValue]
		if cell.Kind == KindNumber && cell.Number >= lo && cell.Number <= hi {
			kept = append(kept, row)
		}
	}
	ds.Rows = kept
	c.logger.Debug("removed outliers",
		slog.Float64("lower", lo),
		slog.Float64("upper", hi),
		slog.Int("before", before),
		slog.Int("after", ds.Len()))
}

// mapCodes replaces region and product codes with human-readable names.
// Region codes outside the lookup table become "Unknown"; product codes
// outside theirs keep the original code. The same asymmetry applies to
// non-text cells: a region cell that is not text maps to "Unknown",
// while a non-text product cell passes through unchanged, mirroring the
// unmapped-code rules.
func (c *Cleaner) mapCodes(ds *Dataset) {
	if ds.HasColumn(ColArea) {
		for _, row := range ds.Rows {
			cell := row[ColArea]
			if cell.Kind == KindText {
				row[ColArea] = TextCell(RegionName(cell.Text))
			} else {
				row[ColArea] = TextCell(UnknownRegion)
			}
		}
	}
	if ds.HasColumn(ColProduct) {
		for _, row := range ds.Rows {
			cell := row[ColProduct]
			if cell.Kind == KindText {
				row[ColProduct] = TextCell(ProductName(cell.Text))
			}
		}
	}
}
