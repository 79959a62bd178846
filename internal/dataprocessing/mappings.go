package dataprocessing

// UnknownRegion is the sentinel label for region codes absent from the
// lookup table. Unrecognized product codes keep their original code.
const UnknownRegion = "Unknown"

// regionNames maps EIA duoarea codes to human-readable region names.
var regionNames = map[string]string{
	"NUS":   "United States",
	"R10":   "PADD 1 (East Coast)",
	"R1X":   "PADD 1A (New England)",
	"R1Y":   "PADD 1B (Central Atlantic)",
	"R20":   "PADD 2 (Midwest)",
	"R30":   "PADD 3 (Gulf Coast)",
	"R40":   "PADD 4 (Rocky Mountain)",
	"R50":   "PADD 5 (West Coast)",
	"R5XCA": "PADD 5 (Except California)",
	"SCA":   "California",
}

// productNames maps EIA product codes to human-readable fuel names.
var productNames = map[string]string{
	"EPD2D":    "No 2 Diesel",
	"EPD2DXL0": "Ultra-Low Sulfur Diesel (0–15 ppm)",
	"EPM0":     "Total Gasoline",
	"EPMR":     "Regular Gasoline",
	"EPMP":     "Premium Gasoline",
	"EPM0R":    "Reformulated Motor Gasoline",
}

// RegionName resolves a duoarea code; codes absent from the table map to
// the UnknownRegion sentinel.
func RegionName(code string) string {
	if name, ok := regionNames[code]; ok {
		return name
	}
	return UnknownRegion
}

// ProductName resolves a product code; unrecognized codes pass through
// unchanged.
func ProductName(code string) string {
	if name, ok := productNames[code]; ok {
		return name
	}
	return code
}
