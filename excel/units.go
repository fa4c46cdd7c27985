package excel

import "math"

// PixelsPerInch is the screen resolution drawing sizes are computed at.
const PixelsPerInch = 96

// CmToPixels converts a length in centimetres to whole pixels at 96 DPI.
//
//	5.73 cm → 216 px, 3.75 cm → 141 px
func CmToPixels(cm float64) int {
	if cm <= 0 {
		return 0
	}
	return int(math.Floor(cm / 2.54 * PixelsPerInch))
}
