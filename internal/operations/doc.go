// Package operations sequences the pipeline: fetch, clean, render
// static charts, render interactive charts. Steps execute strictly in
// order; the first failure aborts the run and the error names the
// failing step. Step runtime state (status, timing) is tracked per run.
package operations
