package smart

import (
	"strconv"
	"strings"
)

// NotFound marks an attribute that smartctl did not report.
const NotFound = -1

// Attributes holds the fields extracted from one `smartctl -A` run.
type Attributes struct {
	PowerOnHours     int
	DataUnitsRead    *uint64
	DataUnitsWritten *uint64
	Temperature      int
}

// Unknown is the result for a disk smartctl could not be asked about.
func Unknown() Attributes {
	return Attributes{PowerOnHours: NotFound, Temperature: NotFound}
}

// Parse extracts every supported attribute from smartctl output.
// Missing attributes degrade to NotFound or nil independently.
func Parse(out string) Attributes {
	read, written := DataUnits(out)
	return Attributes{
		PowerOnHours:     PowerOnHours(out),
		DataUnitsRead:    read,
		DataUnitsWritten: written,
		Temperature:      Temperature(out),
	}
}

// PowerOnHours returns the value on the first "Power On Hours" line.
func PowerOnHours(out string) int {
	return firstLabeledInt(out, "Power On Hours")
}

// Temperature returns the value on the first "Temperature" line.
func Temperature(out string) int {
	return firstLabeledInt(out, "Temperature")
}

// DataUnits returns the "Data Units Read" and "Data Units Written" counters.
// The lines may appear in either order; a nil result means the line was
// absent or carried no numeric token.
func DataUnits(out string) (read, written *uint64) {
	for _, line := range strings.Split(out, "\n") {
		if read != nil && written != nil {
			break
		}
		switch {
		case read == nil && strings.Contains(line, "Data Units Read"):
			if v, ok := firstNumber(line); ok {
				read = &v
			}
		case written == nil && strings.Contains(line, "Data Units Written"):
			if v, ok := firstNumber(line); ok {
				written = &v
			}
		}
	}
	return read, written
}

func firstLabeledInt(out, label string) int {
	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(line, label) {
			continue
		}
		v, ok := firstNumber(line)
		if !ok {
			return NotFound
		}
		return int(v)
	}
	return NotFound
}

// firstNumber returns the first whitespace-separated token that is purely
// numeric once thousands separators are removed.
func firstNumber(line string) (uint64, bool) {
	for _, tok := range strings.Fields(line) {
		tok = strings.ReplaceAll(tok, ",", "")
		if !isDigits(tok) {
			continue
		}
		v, err := strconv.ParseUint(tok, 10, 64)
		if err != nil {
			continue
		}
		return v, true
	}
	return 0, false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
