package charts

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"fuelflow/internal/config"
	"fuelflow/internal/dataprocessing"
)

// staticRecentYears is the recent-year subset used by the comparison
// charts.
var staticRecentYears = map[int]bool{2024: true, 2025: true}

// StaticRenderer produces the PNG chart artifacts under the plots
// directory, one file per chart, date-stamped per run.
type StaticRenderer struct {
	paths  *config.Paths
	logger *slog.Logger
	now    func() time.Time
}

// NewStaticRenderer creates a StaticRenderer. A nil logger falls back to
// slog.Default.
func NewStaticRenderer(paths *config.Paths, logger *slog.Logger) *StaticRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &StaticRenderer{paths: paths, logger: logger, now: time.Now}
}

// RenderAll renders every static chart. An empty dataset is skipped with
// a warning rather than an error, as are empty recent-year subsets.
func (r *StaticRenderer) RenderAll(ds *dataprocessing.Dataset) error {
	if ds.Empty() {
		r.logger.Warn("no cleaned data, skipping static charts")
		return nil
	}

	day := r.now()
	productCol := pickColumn(ds, "product-name", dataprocessing.ColProduct)
	areaCol := pickColumn(ds, "area-name", dataprocessing.ColArea)

	if err := r.renderProductPrices(ds, productCol, day); err != nil {
		return fmt.Errorf("product price chart: %w", err)
	}
	if err := r.renderTrend(ds, productCol, "Prices_Trend_Over_the_Years",
		"Prices ($/Gallon) Trend Over the Years", day); err != nil {
		return fmt.Errorf("price trend chart: %w", err)
	}

	recent := filterByYears(ds, staticRecentYears)
	if recent.Empty() {
		r.logger.Warn("no data in recent-year subset, skipping comparison charts")
	} else {
		if err := r.renderMeanBars(recent, areaCol, "Regional_Cost_by_Area_and_Product",
			"Regional Cost by Area and Product (2024-2025)", day); err != nil {
			return fmt.Errorf("regional cost chart: %w", err)
		}
		if err := r.renderMeanBars(recent, productCol, "Fuel_Type_Cost_Comparison",
			"Fuel Type Cost Comparison (2024-2025)", day); err != nil {
			return fmt.Errorf("fuel type chart: %w", err)
		}
	}

	if err := r.renderTrend(ds, areaCol, "US_National_Trend_vs_Regions",
		"U.S. National Trend vs Regions", day); err != nil {
		return fmt.Errorf("national trend chart: %w", err)
	}

	r.logger.Info("static charts rendered", slog.String("dir", r.paths.PlotsDir))
	return nil
}

// renderProductPrices draws the price distribution by product as a bar
// chart of mean price per product.
func (r *StaticRenderer) renderProductPrices(ds *dataprocessing.Dataset, productCol string, day time.Time) error {
	means := meanBy(ds, productCol)
	var bars []chart.Value
	for _, product := range groupKeys(ds, productCol) {
		bars = append(bars, chart.Value{Label: product, Value: means[product]})
	}
	if len(bars) == 0 {
		r.logger.Warn("no numeric prices, skipping product price chart")
		return nil
	}

	graph := chart.BarChart{
		Title:    "Fuel Product Prices ($/Gallon)",
		Width:    1400,
		Height:   700,
		BarWidth: 60,
		Bars:     bars,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
	}
	if rng := flatBarRange(bars); rng != nil {
		graph.YAxis.Range = rng
	}
	return r.writePNG(&graph, "Fuel_Product_Prices", day)
}

// renderTrend draws one time series of yearly mean prices per distinct
// entry of the group column.
func (r *StaticRenderer) renderTrend(ds *dataprocessing.Dataset, groupCol, name, title string, day time.Time) error {
	byGroupYear := meanByGroupYear(ds, groupCol)

	var series []chart.Series
	var allValues []float64
	for _, group := range groupKeys(ds, groupCol) {
		byYear := byGroupYear[group]
		if len(byYear) == 0 {
			continue
		}
		var xs []time.Time
		var ys []float64
		for _, y := range sortedYears(byYear) {
			xs = append(xs, time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC))
			ys = append(ys, byYear[y])
		}
		// go-chart needs at least two X values per series
		if len(xs) == 1 {
			xs = append(xs, xs[0].AddDate(1, 0, 0))
			ys = append(ys, ys[0])
		}
		allValues = append(allValues, ys...)
		series = append(series, chart.TimeSeries{Name: group, XValues: xs, YValues: ys})
	}
	if len(series) == 0 {
		r.logger.Warn("no series data, skipping trend chart", slog.String("chart", name))
		return nil
	}

	graph := chart.Chart{
		Title:  title,
		Width:  1400,
		Height: 700,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis:  chart.XAxis{Name: "Year"},
		YAxis:  chart.YAxis{Name: "Cost ($/GAL)"},
		Series: series,
	}
	if rng := flatValueRange(allValues); rng != nil {
		graph.YAxis.Range = rng
	}
	graph.Elements = []chart.Renderable{chart.LegendThin(&graph)}
	return r.writePNG(&graph, name, day)
}

// renderMeanBars draws mean price per distinct entry of the group column.
func (r *StaticRenderer) renderMeanBars(ds *dataprocessing.Dataset, groupCol, name, title string, day time.Time) error {
	means := meanBy(ds, groupCol)
	var bars []chart.Value
	for _, group := range groupKeys(ds, groupCol) {
		bars = append(bars, chart.Value{Label: group, Value: means[group]})
	}
	if len(bars) == 0 {
		r.logger.Warn("no numeric prices, skipping bar chart", slog.String("chart", name))
		return nil
	}

	graph := chart.BarChart{
		Title:    title,
		Width:    1400,
		Height:   700,
		BarWidth: 40,
		Bars:     bars,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
	}
	if rng := flatBarRange(bars); rng != nil {
		graph.YAxis.Range = rng
	}
	return r.writePNG(&graph, name, day)
}

// flatBarRange returns an explicit Y-axis range when every bar carries
// the same value. Returns nil when the bars span a real range.
func flatBarRange(bars []chart.Value) *chart.ContinuousRange {
	values := make([]float64, len(bars))
	for i, b := range bars {
		values[i] = b.Value
	}
	return flatValueRange(values)
}

// flatValueRange returns an explicit Y-axis range when every value is
// identical; go-chart cannot derive a range from flat data and rejects
// the render outright. Returns nil when the values span a real range.
func flatValueRange(values []float64) *chart.ContinuousRange {
	flat := values[0]
	for _, v := range values[1:] {
		if v != flat {
			return nil
		}
	}
	upper := flat * 1.1
	if upper <= 0 {
		upper = 1
	}
	return &chart.ContinuousRange{Min: 0, Max: upper}
}

// renderable is the common surface of chart.Chart and chart.BarChart.
type renderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

func (r *StaticRenderer) writePNG(graph renderable, name string, day time.Time) error {
	path := r.paths.GetPlotPath(name, day)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	if err := graph.Render(chart.PNG, file); err != nil {
		return fmt.Errorf("failed to render %s: %w", path, err)
	}
	r.logger.Debug("wrote static chart", slog.String("path", path))
	return nil
}

func sortedYears(byYear map[int]float64) []int {
	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
