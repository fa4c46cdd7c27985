package excel

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// CellName converts 0-based row and column indices to an A1 reference (e.g. 0,0 → "A1").
func CellName(row, col int) string {
	return fmt.Sprintf("%s%d", IndexToColumn(col), row+1)
}

// IndexToColumn converts a 0-based column index to column letters (0→A, 25→Z, 26→AA).
func IndexToColumn(n int) string {
	result := ""
	for n >= 0 {
		result = string(rune('A'+(n%26))) + result
		n = n/26 - 1
	}
	return result
}

// NormalizeCell upper-cases ref and strips absolute markers ("$t$11" → "T11").
// It returns an error when ref is not a single A1 cell reference.
func NormalizeCell(ref string) (string, error) {
	ref = strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(ref), "$", ""))
	if ref == "" {
		return "", fmt.Errorf("empty cell reference")
	}

	col, row, err := excelize.CellNameToCoordinates(ref)
	if err != nil {
		return "", fmt.Errorf("cell %q: %w", ref, err)
	}

	return CellName(row-1, col-1), nil
}
