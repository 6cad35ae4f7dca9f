package quiz

import "strings"

// Row maps a header name to its cell value. Missing cells read as "".
type Row map[string]string

func (r Row) text(col string) string {
	return strings.TrimSpace(r[col])
}

// Blank reports whether every cell of the row is empty or whitespace.
func (r Row) Blank() bool {
	for _, v := range r {
		if !isEmpty(v) {
			return false
		}
	}
	return true
}

func (r Row) clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

func isEmpty(v string) bool { return strings.TrimSpace(v) == "" }

// NormalizeBool maps the truthy tokens 1, true, yes, y and t (any case,
// surrounding whitespace ignored) to "true" and everything else to "false".
func NormalizeBool(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "t":
		return "true"
	default:
		return "false"
	}
}

// parseIndex accepts only plain ASCII digit strings, after trimming.
func parseIndex(v string) (int, bool) {
	s := strings.TrimSpace(v)
	if s == "" {
		return 0, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		// Anything this large is out of range already; stop before overflow.
		if n < 1_000_000 {
			n = n*10 + int(c-'0')
		}
	}
	return n, true
}

// Rows wraps loaded table rows without copying them.
func Rows(in []map[string]string) []Row {
	out := make([]Row, len(in))
	for i, r := range in {
		out[i] = r
	}
	return out
}

// Maps is the inverse of Rows.
func Maps(in []Row) []map[string]string {
	out := make([]map[string]string, len(in))
	for i, r := range in {
		out[i] = r
	}
	return out
}
