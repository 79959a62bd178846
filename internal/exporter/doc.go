// Package exporter persists the pipeline's tabular artifacts.
//
// Two surfaces exist:
//
// Writer.WriteCSV / WriteSimpleCSV: CSV output for the raw and cleaned
// datasets, with an explicit zero-byte marker convention for empty runs.
//
// Writer.WriteWorkbook: an Excel rendition of the cleaned dataset via
// excelize, sharing the same empty-run convention.
//
// Example usage:
//
//	w := exporter.NewWriter(logger)
//	err := w.WriteSimpleCSV(paths.CleanCSV, ds.Headers(), ds.Records())
package exporter
