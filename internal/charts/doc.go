// Package charts renders the visualization artifacts of the pipeline:
// five static PNG charts (go-chart) under outputs/plots with date-stamped
// filenames, and five interactive HTML charts (go-echarts) under outputs,
// overwritten each run. Renderers tolerate empty input by skipping output
// with a warning instead of failing.
package charts
