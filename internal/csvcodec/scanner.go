package csvcodec

import "strings"

// parseRecords scans raw CSV text into records of fields, honoring the
// quoting rules of §4.1: a field may be double-quoted, "" inside a quoted
// field is a literal quote, quoted fields may contain commas and
// newlines, and unquoted fields are trimmed of surrounding whitespace.
func parseRecords(data string) [][]string {
	var records [][]string
	var fields []string
	var sb strings.Builder

	inQuotes := false
	quotedField := false
	atStart := true

	flushField := func() {
		s := sb.String()
		if !quotedField {
			s = strings.TrimSpace(s)
		}
		fields = append(fields, s)
		sb.Reset()
		quotedField = false
		atStart = true
	}
	flushRecord := func() {
		flushField()
		records = append(records, fields)
		fields = nil
	}

	n := len(data)
	for i := 0; i < n; i++ {
		c := data[i]

		if inQuotes {
			if c == '"' {
				if i+1 < n && data[i+1] == '"' {
					sb.WriteByte('"')
					i++
					continue
				}
				inQuotes = false
				continue
			}
			sb.WriteByte(c)
			continue
		}

		switch c {
		case '"':
			if atStart {
				inQuotes = true
				quotedField = true
				atStart = false
				continue
			}
			sb.WriteByte(c)
			atStart = false
		case ',':
			flushField()
		case '\r':
			// Ignored; paired '\n' (if any) ends the record.
		case '\n':
			flushRecord()
		default:
			sb.WriteByte(c)
			atStart = false
		}
	}

	if sb.Len() > 0 || len(fields) > 0 || !atStart {
		flushRecord()
	}
	return records
}

// nonBlankRecords drops records that are a single empty field, i.e. blank
// lines, so the first non-blank line becomes the schema header per §4.1.
func nonBlankRecords(records [][]string) [][]string {
	out := make([][]string, 0, len(records))
	for _, r := range records {
		if len(r) == 1 && r[0] == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}
