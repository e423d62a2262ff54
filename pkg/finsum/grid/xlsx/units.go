// Package xlsx implements the grid accessor over .xlsx files with excelize.
package xlsx

import "math"

// EMUPerPixel is the number of EMUs (English Metric Units) per pixel at 96 DPI.
// 1 inch = 914400 EMU, 1 inch = 96 pixels at 96 DPI
const EMUPerPixel = 9525

// Default cell size in pixels, used to place absolutely positioned drawings.
const (
	defaultColumnPixels = 64
	defaultRowPixels    = 20
)

// maxDigitWidth is the pixel width of the widest digit in the default font.
// Excel stores column widths as a number of such digits plus 5px of padding.
const maxDigitWidth = 7

// EMUToPixels converts EMU to pixels at 96 DPI.
func EMUToPixels(emu int64) int {
	return int(emu / EMUPerPixel)
}

// widthToPixels converts an Excel column width (characters) to pixels.
func widthToPixels(chars float64) float64 {
	if chars <= 0 {
		return 0
	}
	return math.Round(chars*maxDigitWidth + 5)
}

// pixelsToWidth converts pixels to an Excel column width (characters).
func pixelsToWidth(px float64) float64 {
	if px <= 5 {
		return 0
	}
	return (px - 5) / maxDigitWidth
}
