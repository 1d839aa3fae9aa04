package omics

import (
	"strconv"
	"strings"
)

// ExpressionTable maps upper-cased gene symbols to expression values.
type ExpressionTable map[string]float64

// ParseTable parses a two-column gene,expression record set. The first
// record is a header and is discarded; gene symbols are trimmed and
// upper-cased; records missing either field or carrying a non-numeric
// expression are skipped silently. Unparseable or empty input yields an
// empty table, never an error.
func ParseTable(raw string) ExpressionTable {
	table := make(ExpressionTable)

	lines := strings.Split(raw, "\n")
	if len(lines) <= 1 {
		return table
	}

	for _, line := range lines[1:] {
		fields := strings.Split(line, ",")
		if len(fields) < 2 {
			continue
		}
		gene := strings.ToUpper(strings.TrimSpace(fields[0]))
		if gene == "" {
			continue
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			continue
		}
		table[gene] = value
	}

	return table
}
