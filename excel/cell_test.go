package excel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellName(t *testing.T) {
	tests := []struct {
		row, col int
		expected string
	}{
		{0, 0, "A1"},
		{7, 1, "B8"},
		{10, 19, "T11"},
		{36, 29, "AD37"},
		{0, 26, "AA1"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, CellName(tt.row, tt.col))
	}
}

func TestNormalizeCell(t *testing.T) {
	got, err := NormalizeCell(" $af$15 ")
	require.NoError(t, err)
	assert.Equal(t, "AF15", got)

	got, err = NormalizeCell("b8")
	require.NoError(t, err)
	assert.Equal(t, "B8", got)

	for _, bad := range []string{"", "8B", "B", "B8:C9", "hello"} {
		_, err := NormalizeCell(bad)
		assert.Error(t, err, "expected %q to be rejected", bad)
	}
}

func TestCmToPixels(t *testing.T) {
	assert.Equal(t, 216, CmToPixels(5.73))
	assert.Equal(t, 141, CmToPixels(3.75))
	assert.Equal(t, 96, CmToPixels(2.54))
	assert.Equal(t, 0, CmToPixels(0))
	assert.Equal(t, 0, CmToPixels(-1))
}
