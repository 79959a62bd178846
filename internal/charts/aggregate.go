package charts

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"fuelflow/internal/dataprocessing"
)

// pickColumn returns the first column present in the dataset, falling
// back to the last candidate. Cleaned data usually carries the label
// columns (product-name, area-name); minimal data may only have codes.
func pickColumn(ds *dataprocessing.Dataset, candidates ...string) string {
	for _, c := range candidates {
		if ds.HasColumn(c) {
			return c
		}
	}
	return candidates[len(candidates)-1]
}

// valueAt extracts the numeric price from a row, if present.
func valueAt(row dataprocessing.Row) (float64, bool) {
	cell := row[dataprocessing.ColValue]
	if cell.Kind != dataprocessing.KindNumber {
		return 0, false
	}
	return cell.Number, true
}

// yearAt extracts the period year from a row, if present.
func yearAt(row dataprocessing.Row) (int, bool) {
	cell := row[dataprocessing.ColPeriod]
	if cell.Kind != dataprocessing.KindDate {
		return 0, false
	}
	return cell.Date.Year(), true
}

// groupKeys returns the sorted distinct values of a column.
func groupKeys(ds *dataprocessing.Dataset, col string) []string {
	seen := make(map[string]bool)
	for _, row := range ds.Rows {
		seen[row[col].String()] = true
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// yearKeys returns the sorted distinct period years.
func yearKeys(ds *dataprocessing.Dataset) []int {
	seen := make(map[int]bool)
	for _, row := range ds.Rows {
		if y, ok := yearAt(row); ok {
			seen[y] = true
		}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// meanBy averages value per distinct entry of the group column.
func meanBy(ds *dataprocessing.Dataset, col string) map[string]float64 {
	values := make(map[string][]float64)
	for _, row := range ds.Rows {
		v, ok := valueAt(row)
		if !ok {
			continue
		}
		key := row[col].String()
		values[key] = append(values[key], v)
	}
	out := make(map[string]float64, len(values))
	for k, vs := range values {
		out[k] = stat.Mean(vs, nil)
	}
	return out
}

// meanByGroupYear averages value per (group, year) pair.
func meanByGroupYear(ds *dataprocessing.Dataset, col string) map[string]map[int]float64 {
	values := make(map[string]map[int][]float64)
	for _, row := range ds.Rows {
		v, ok := valueAt(row)
		if !ok {
			continue
		}
		y, ok := yearAt(row)
		if !ok {
			continue
		}
		key := row[col].String()
		if values[key] == nil {
			values[key] = make(map[int][]float64)
		}
		values[key][y] = append(values[key][y], v)
	}
	out := make(map[string]map[int]float64, len(values))
	for key, byYear := range values {
		out[key] = make(map[int]float64, len(byYear))
		for y, vs := range byYear {
			out[key][y] = stat.Mean(vs, nil)
		}
	}
	return out
}

// filterByYears keeps rows whose period year is in the given set.
func filterByYears(ds *dataprocessing.Dataset, years map[int]bool) *dataprocessing.Dataset {
	out := dataprocessing.NewDataset(ds.Columns)
	for _, row := range ds.Rows {
		if y, ok := yearAt(row); ok && years[y] {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}
