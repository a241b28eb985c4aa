// Package semi provides the wafer flat dimensions standardized by
// SEMI M1-0302. The core model never consults this table itself; callers
// look up the flat size for a diameter before constructing a wafer.
package semi

// FlatLengths maps standard wafer diameters to flat chord lengths, both in
// mm, per SEMI M1-0302. Wafers of 200 mm and above use notches instead of
// flats and do not appear here.
var FlatLengths = map[float64]float64{
	50:  15.88,
	75:  22.22,
	100: 32.5,
	125: 42.5,
	150: 57.5,
}

// FlatLength returns the standard flat chord length for a wafer diameter,
// and whether the diameter has a standard flat at all.
func FlatLength(diameter float64) (float64, bool) {
	l, ok := FlatLengths[diameter]
	return l, ok
}

// Diameters returns the standard wafer diameters in ascending order.
func Diameters() []float64 {
	return []float64{50, 75, 100, 125, 150}
}
