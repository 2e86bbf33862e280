package frame

import "fmt"

// FormatType is the closed set of event formats a client can request
// via the `events <fmt> ALL` command (spec.md §3).
type FormatType int

const (
	FormatXML FormatType = iota
	FormatJSON
	FormatPlain
)

// String lowercases to the wire form ("xml", "json", "plain").
func (f FormatType) String() string {
	switch f {
	case FormatXML:
		return "xml"
	case FormatJSON:
		return "json"
	case FormatPlain:
		return "plain"
	default:
		return fmt.Sprintf("FormatType(%d)", int(f))
	}
}

// ParseFormatType parses a case-sensitive wire string into a FormatType.
func ParseFormatType(s string) (FormatType, error) {
	switch s {
	case "xml":
		return FormatXML, nil
	case "json":
		return FormatJSON, nil
	case "plain":
		return FormatPlain, nil
	default:
		return 0, fmt.Errorf("frame: invalid format type %q", s)
	}
}
