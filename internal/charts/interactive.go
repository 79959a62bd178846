package charts

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"fuelflow/internal/config"
	"fuelflow/internal/dataprocessing"
)

// interactiveRecentYears is the subset used by the interactive
// comparison charts.
var interactiveRecentYears = map[int]bool{2021: true, 2024: true, 2025: true}

// InteractiveRenderer produces the HTML chart documents under the
// outputs directory, overwritten on every run.
type InteractiveRenderer struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewInteractiveRenderer creates an InteractiveRenderer. A nil logger
// falls back to slog.Default.
func NewInteractiveRenderer(paths *config.Paths, logger *slog.Logger) *InteractiveRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &InteractiveRenderer{paths: paths, logger: logger}
}

// RenderAll renders every interactive chart. Empty data skips with a
// warning, never an error.
func (r *InteractiveRenderer) RenderAll(ds *dataprocessing.Dataset) error {
	if ds.Empty() {
		r.logger.Warn("no cleaned data, skipping interactive charts")
		return nil
	}

	productCol := pickColumn(ds, "product-name", dataprocessing.ColProduct)
	areaCol := pickColumn(ds, "area-name", dataprocessing.ColArea)

	if err := r.renderScatter(ds, productCol); err != nil {
		return fmt.Errorf("scatter chart: %w", err)
	}
	if err := r.renderTrendLine(ds, productCol, "price_trend",
		"Prices ($/Gallon) Trend Over the Years"); err != nil {
		return fmt.Errorf("price trend chart: %w", err)
	}

	recent := filterByYears(ds, interactiveRecentYears)
	if recent.Empty() {
		r.logger.Warn("no regional data for 2021, 2024 or 2025, skipping comparison charts")
	} else {
		if err := r.renderGroupedBars(recent, areaCol, productCol, "regional_cost",
			"Regional Cost by Area and Product"); err != nil {
			return fmt.Errorf("regional cost chart: %w", err)
		}
		if err := r.renderYearBars(recent, productCol, "fuel_type_comparison",
			"Fuel Type Cost by Product and Year"); err != nil {
			return fmt.Errorf("fuel type chart: %w", err)
		}
	}

	if err := r.renderTrendLine(ds, areaCol, "national_vs_states",
		"U.S. National Trend vs Regions"); err != nil {
		return fmt.Errorf("national trend chart: %w", err)
	}

	r.logger.Info("interactive charts rendered", slog.String("dir", r.paths.OutputsDir))
	return nil
}

// renderScatter draws price observations per product across years.
func (r *InteractiveRenderer) renderScatter(ds *dataprocessing.Dataset, productCol string) error {
	years := yearKeys(ds)
	xAxis := yearLabels(years)
	index := make(map[int]int, len(years))
	for i, y := range years {
		index[y] = i
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Fuel Product Prices ($/Gallon)"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
	)
	scatter.SetXAxis(xAxis)

	for _, product := range groupKeys(ds, productCol) {
		points := make([]opts.ScatterData, len(years))
		for i := range points {
			points[i] = opts.ScatterData{Value: nil}
		}
		for _, row := range ds.Rows {
			if row[productCol].String() != product {
				continue
			}
			v, ok := valueAt(row)
			if !ok {
				continue
			}
			y, ok := yearAt(row)
			if !ok {
				continue
			}
			points[index[y]] = opts.ScatterData{Value: v, SymbolSize: 10}
		}
		scatter.AddSeries(product, points)
	}

	return r.writeHTML(scatter, "scatter_prices")
}

// renderTrendLine draws yearly mean price lines per group column entry.
func (r *InteractiveRenderer) renderTrendLine(ds *dataprocessing.Dataset, groupCol, name, title string) error {
	years := yearKeys(ds)
	byGroupYear := meanByGroupYear(ds, groupCol)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
	)
	line.SetXAxis(yearLabels(years))

	for _, group := range groupKeys(ds, groupCol) {
		byYear := byGroupYear[group]
		points := make([]opts.LineData, len(years))
		for i, y := range years {
			if mean, ok := byYear[y]; ok {
				points[i] = opts.LineData{Value: mean}
			} else {
				points[i] = opts.LineData{Value: nil}
			}
		}
		line.AddSeries(group, points)
	}

	return r.writeHTML(line, name)
}

// renderGroupedBars draws mean price bars per xCol entry, one series per
// seriesCol entry.
func (r *InteractiveRenderer) renderGroupedBars(ds *dataprocessing.Dataset, xCol, seriesCol, name, title string) error {
	xKeys := groupKeys(ds, xCol)
	index := make(map[string]int, len(xKeys))
	for i, k := range xKeys {
		index[k] = i
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
	)
	bar.SetXAxis(xKeys)

	for _, series := range groupKeys(ds, seriesCol) {
		sums := make([]float64, len(xKeys))
		counts := make([]int, len(xKeys))
		for _, row := range ds.Rows {
			if row[seriesCol].String() != series {
				continue
			}
			v, ok := valueAt(row)
			if !ok {
				continue
			}
			i := index[row[xCol].String()]
			sums[i] += v
			counts[i]++
		}
		points := make([]opts.BarData, len(xKeys))
		for i := range points {
			if counts[i] > 0 {
				points[i] = opts.BarData{Value: sums[i] / float64(counts[i])}
			} else {
				points[i] = opts.BarData{Value: nil}
			}
		}
		bar.AddSeries(series, points)
	}

	return r.writeHTML(bar, name)
}

// renderYearBars draws mean price bars per group entry, one series per
// year present in the subset.
func (r *InteractiveRenderer) renderYearBars(ds *dataprocessing.Dataset, groupCol, name, title string) error {
	xKeys := groupKeys(ds, groupCol)
	byGroupYear := meanByGroupYear(ds, groupCol)

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
	)
	bar.SetXAxis(xKeys)

	for _, year := range yearKeys(ds) {
		points := make([]opts.BarData, len(xKeys))
		for i, group := range xKeys {
			if mean, ok := byGroupYear[group][year]; ok {
				points[i] = opts.BarData{Value: mean}
			} else {
				points[i] = opts.BarData{Value: nil}
			}
		}
		bar.AddSeries(strconv.Itoa(year), points)
	}

	return r.writeHTML(bar, name)
}

// htmlChart is the render surface every go-echarts chart type provides.
type htmlChart interface {
	Render(w io.Writer) error
}

func (r *InteractiveRenderer) writeHTML(chart htmlChart, name string) error {
	path := r.paths.GetChartPath(name)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	if err := chart.Render(file); err != nil {
		return fmt.Errorf("failed to render %s: %w", path, err)
	}
	r.logger.Debug("wrote interactive chart", slog.String("path", path))
	return nil
}

func yearLabels(years []int) []string {
	labels := make([]string, len(years))
	for i, y := range years {
		labels[i] = strconv.Itoa(y)
	}
	return labels
}
