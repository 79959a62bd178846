// Package dataprocessing implements the cleaning stage of the fuelflow
// pipeline. It turns raw EIA observation rows into a typed, validated
// dataset ready for export and charting.
//
// The cleaning sequence is fixed:
//
//	1. Parse period as a date (failures coerce to missing)
//	2. Keep rows with period year in [1990, 2025]
//	3. Parse value as a number (failures coerce to missing)
//	4. Remove fully-duplicate rows
//	5. Impute missing cells (numeric: median, categorical: mode)
//	6. Trim and title-case textual label columns
//	7. Drop rows outside the global 1.5*IQR fence on value
//	8. Map region/product codes to human-readable names
//
// Inputs missing the period or value column fail with a SchemaError
// before any processing begins. A column that is entirely missing cannot
// be imputed and fails with a DataError. Everything else is coercion,
// never an error.
package dataprocessing
