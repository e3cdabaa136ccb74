package ingest

import "strings"

// Delimiter separates fields in the persisted format. There is no quoting:
// a field can never contain one.
const Delimiter = ","

// ParseDelimited splits data into records on line breaks and into fields on
// Delimiter. A single trailing line break does not produce an extra record,
// and CRLF line endings are accepted.
func ParseDelimited(data []byte) Records {
	text := string(data)
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")

	lines := strings.Split(text, "\n")
	recs := make(Records, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		recs = append(recs, strings.Split(line, Delimiter))
	}
	return recs
}

// FormatDelimited is the inverse of ParseDelimited for rectangular records.
func FormatDelimited(recs Records) []byte {
	var b strings.Builder
	for _, rec := range recs {
		b.WriteString(strings.Join(rec, Delimiter))
		b.WriteByte('\n')
	}
	return []byte(b.String())
}
