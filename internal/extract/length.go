package extract

import (
	"strconv"
	"strings"

	"github.com/slicermeta/slicermeta/pkg/slicermeta"
)

// Length parses a PrusaSlicer length such as " = 2500.00" (millimeters, two
// decimal places) into ten-micrometer units by dropping the decimal point:
// "2500.00" becomes 250000.
//
// Any shape other than <digits>.<two digits> is rejected.
func Length(attribute string) (uint64, error) {
	value, err := splitValue(attribute)
	if err != nil {
		return 0, err
	}

	whole, fraction, found := strings.Cut(value, ".")
	digits := whole + fraction
	if !found || whole == "" || len(fraction) != slicermeta.LengthFractionDigits {
		return 0, stringParsing("length", digits)
	}

	units, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, stringParsing("length", digits)
	}
	return units, nil
}
