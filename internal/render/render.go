// Package render formats translated metadata as AnkerMake header lines.
package render

import (
	"fmt"
	"strconv"

	"github.com/slicermeta/slicermeta/internal/extract"
	"github.com/slicermeta/slicermeta/pkg/slicermeta"
)

// Constant renders a fixed key/value pair: ";KEY:value".
func Constant(key, value string) string {
	return fmt.Sprintf(";%s:%s", key, value)
}

// Value renders an extracted value under key.
//
//	duration  ;TIME:5400
//	length    ;Filament used: 2.5m
//	text      ;Filament Name:Generic PLA
func Value(key string, v extract.Value) string {
	switch v.Kind {
	case extract.KindDuration:
		return fmt.Sprintf(";%s:%d", key, v.Seconds)
	case extract.KindLength:
		return fmt.Sprintf(";%s: %sm", key, Meters(v.Units))
	default:
		return Constant(key, v.Text)
	}
}

// Meters converts ten-micrometer units to meters using the shortest decimal
// that round-trips, so 250000 becomes "2.5" and 100000 becomes "1".
func Meters(units uint64) string {
	return strconv.FormatFloat(float64(units)/slicermeta.TenMicrometersPerMeter, 'f', -1, 64)
}
