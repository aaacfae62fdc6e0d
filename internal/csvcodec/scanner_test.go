package csvcodec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRecordsSplitsOnCommaAndNewline(t *testing.T) {
	records := parseRecords("a,b,c\n1,2,3\n")
	assert.Equal(t, [][]string{{"a", "b", "c"}, {"1", "2", "3"}}, records)
}

func TestParseRecordsHandlesFinalLineWithoutTrailingNewline(t *testing.T) {
	records := parseRecords("a,b\nc,d")
	assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}}, records)
}

func TestParseRecordsIgnoresCarriageReturn(t *testing.T) {
	records := parseRecords("a,b\r\nc,d\r\n")
	assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}}, records)
}

func TestParseRecordsEmptyInputProducesNoRecords(t *testing.T) {
	assert.Empty(t, parseRecords(""))
}

func TestNonBlankRecordsDropsSingleEmptyFieldLines(t *testing.T) {
	records := [][]string{{"a", "b"}, {""}, {"c", "d"}}
	assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}}, nonBlankRecords(records))
}

func TestNonBlankRecordsKeepsLineWithEmptyFirstFieldAmongOthers(t *testing.T) {
	records := [][]string{{"", "b"}}
	assert.Equal(t, records, nonBlankRecords(records))
}
