package elab

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParsedRow is one typed line of an elab file. Numeric fields the file
// fails to supply (or supplies garbage for) are nil, never an error:
// downstream comparisons treat nil as "unknown" and skip the field.
type ParsedRow struct {
	LineNumber int
	RawLine    string

	CodArtFo            string
	DescrizioneArticolo string
	Iva                 *int
	PrzAcq              *decimal.Decimal
	Campo5              *decimal.Decimal
	PzXCrt              *int
	CrtXStr             *int
	StrXPlt             *int
	TotColli            *int
	Ean                 string
}

const fieldCount = 10

// Parse splits decoded elab text into typed rows. Blank lines are
// skipped; a line with fewer than ten ";"-separated fields is padded with
// empty strings. Rows are numbered 1-based in file order.
//
// Column layout:
//
//	0 CodArtFo  1 DescrizioneArticolo  2 Iva  3 PrzAcq  4 Campo5
//	5 PzXCrt    6 CrtXstr  7 StrXplt   8 TotColli       9 Ean
func Parse(text string) []ParsedRow {
	var rows []ParsedRow

	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		raw := strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}

		cols := strings.Split(strings.TrimSpace(line), ";")
		for len(cols) < fieldCount {
			cols = append(cols, "")
		}
		for i := range cols {
			cols[i] = strings.TrimSpace(cols[i])
		}

		rows = append(rows, ParsedRow{
			LineNumber:          len(rows) + 1,
			RawLine:             raw,
			CodArtFo:            cols[0],
			DescrizioneArticolo: cols[1],
			Iva:                 parseIntField(cols[2]),
			PrzAcq:              parseDecimalField(cols[3]),
			Campo5:              parseDecimalField(cols[4]),
			PzXCrt:              parseIntField(cols[5]),
			CrtXStr:             parseIntField(cols[6]),
			StrXPlt:             parseIntField(cols[7]),
			TotColli:            parseIntField(cols[8]),
			Ean:                 cols[9],
		})
	}

	return rows
}

func parseIntField(value string) *int {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	if n, err := strconv.Atoi(value); err == nil {
		return &n
	}
	// Some exports write integers as "12.0".
	if f, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", "."), 64); err == nil {
		n := int(f)
		return &n
	}
	return nil
}

func parseDecimalField(value string) *decimal.Decimal {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	// The elab file uses "," as the decimal separator.
	value = strings.ReplaceAll(value, ",", ".")
	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil
	}
	return &d
}
