package extract

import (
	"math"
	"strconv"
	"strings"
)

const durationComponent = "duration-component"

// durationUnits maps a component suffix to its length in seconds.
// PrusaSlicer switches to a day component for prints longer than 24 hours.
var durationUnits = map[byte]uint64{
	'd': 24 * 60 * 60,
	'h': 60 * 60,
	'm': 60,
	's': 1,
}

// Duration parses a PrusaSlicer time estimate such as " = 1h 30m 0s" into seconds.
//
// Components are separated by whitespace, may appear in any order and any
// subset, and are summed. A component with an unknown suffix or a non-numeric
// count fails with a StringParsing error naming that component.
func Duration(attribute string) (uint64, error) {
	value, err := splitValue(attribute)
	if err != nil {
		return 0, err
	}

	components := strings.Fields(value)
	if len(components) == 0 {
		return 0, stringParsing(durationComponent, value)
	}

	var total uint64
	for _, component := range components {
		seconds, err := parseDurationComponent(component)
		if err != nil {
			return 0, err
		}
		if total > math.MaxUint64-seconds {
			return 0, stringParsing(durationComponent, component)
		}
		total += seconds
	}

	return total, nil
}

func parseDurationComponent(component string) (uint64, error) {
	if len(component) < 2 {
		return 0, stringParsing(durationComponent, component)
	}

	unit, ok := durationUnits[component[len(component)-1]]
	if !ok {
		return 0, stringParsing(durationComponent, component)
	}

	count, err := strconv.ParseUint(component[:len(component)-1], 10, 64)
	if err != nil {
		return 0, stringParsing(durationComponent, component)
	}
	if count > math.MaxUint64/unit {
		return 0, stringParsing(durationComponent, component)
	}

	return count * unit, nil
}
