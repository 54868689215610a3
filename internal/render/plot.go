package render

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

const (
	plotHeight    = 8
	minPlotWidth  = 10
	axisLabelTop  = "100%"
	axisLabelMid  = "50%"
	axisLabelBot  = "0%"
	axisSeparator = " │ "
)

// plotPercentLine draws values as a braille line chart on a fixed 0-100 axis.
// Each cell is 2x4 braille dots wide; width counts cells.
func plotPercentLine(values []float64, width int, color string) []string {
	if len(values) == 0 {
		return nil
	}
	if width < minPlotWidth {
		width = minPlotWidth
	}
	samples := resampleValues(values, width)

	cells := make([][]uint8, plotHeight)
	for y := range cells {
		cells[y] = make([]uint8, width)
	}
	prevX, prevY := -1, -1
	for x, v := range samples {
		py := percentToRow(v, plotHeight*4)
		px := x * 2
		if prevX >= 0 {
			drawLine(prevX, prevY, px, py, func(dx, dy int) {
				setBrailleDot(cells, dx, dy)
			})
		} else {
			setBrailleDot(cells, px, py)
		}
		prevX, prevY = px, py
	}

	labels := axisLabels(plotHeight)
	lines := make([]string, 0, plotHeight)
	for y := 0; y < plotHeight; y++ {
		var body strings.Builder
		for x := 0; x < width; x++ {
			body.WriteRune(brailleRune(cells[y][x]))
		}
		row := body.String()
		if color != "" {
			row = color + row + colorReset
		}
		lines = append(lines, fmt.Sprintf("%*s%s%s", len(axisLabelTop), labels[y], axisSeparator, row))
	}
	return lines
}

// plotWidthFor computes the braille cell count that fits within totalWidth
// next to the axis labels.
func plotWidthFor(totalWidth int) int {
	axisWidth := utf8.RuneCountInString(axisLabelTop) + utf8.RuneCountInString(axisSeparator)
	width := totalWidth - axisWidth
	if width < minPlotWidth {
		width = minPlotWidth
	}
	return width
}

func axisLabels(height int) []string {
	labels := make([]string, height)
	if height <= 0 {
		return labels
	}
	labels[0] = axisLabelTop
	if height > 2 {
		labels[height/2] = axisLabelMid
	}
	if height > 1 {
		labels[height-1] = axisLabelBot
	}
	return labels
}

func percentToRow(v float64, rows int) int {
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	row := int(math.Round((1 - v/100) * float64(rows-1)))
	if row < 0 {
		row = 0
	}
	if row >= rows {
		row = rows - 1
	}
	return row
}

// resampleValues stretches or shrinks values to exactly width samples,
// averaging when shrinking and interpolating linearly when stretching.
func resampleValues(values []float64, width int) []float64 {
	if len(values) == 0 || width <= 0 {
		return nil
	}
	if len(values) == width {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, width)
	if len(values) > width {
		for i := 0; i < width; i++ {
			start := int(float64(i) * float64(len(values)) / float64(width))
			end := int(float64(i+1) * float64(len(values)) / float64(width))
			if end <= start {
				end = start + 1
			}
			if end > len(values) {
				end = len(values)
			}
			var sum float64
			for _, v := range values[start:end] {
				sum += v
			}
			out[i] = sum / float64(end-start)
		}
		return out
	}
	if len(values) == 1 {
		for i := range out {
			out[i] = values[0]
		}
		return out
	}
	for i := 0; i < width; i++ {
		pos := float64(i) * float64(len(values)-1) / float64(width-1)
		idx := int(math.Floor(pos))
		if idx >= len(values)-1 {
			out[i] = values[len(values)-1]
			continue
		}
		frac := pos - float64(idx)
		out[i] = values[idx]*(1-frac) + values[idx+1]*frac
	}
	return out
}

func drawLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := int(math.Abs(float64(x1 - x0)))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -int(math.Abs(float64(y1 - y0)))
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			if x0 == x1 {
				break
			}
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			if y0 == y1 {
				break
			}
			err += dx
			y0 += sy
		}
	}
}

func setBrailleDot(cells [][]uint8, x, y int) {
	if x < 0 || y < 0 {
		return
	}
	cellY := y / 4
	cellX := x / 2
	if cellY >= len(cells) || cellX >= len(cells[cellY]) {
		return
	}
	cells[cellY][cellX] |= brailleDotMask(x%2, y%4)
}

func brailleDotMask(x, y int) uint8 {
	switch {
	case x == 0 && y == 0:
		return 0x01
	case x == 0 && y == 1:
		return 0x02
	case x == 0 && y == 2:
		return 0x04
	case x == 0 && y == 3:
		return 0x40
	case x == 1 && y == 0:
		return 0x08
	case x == 1 && y == 1:
		return 0x10
	case x == 1 && y == 2:
		return 0x20
	case x == 1 && y == 3:
		return 0x80
	default:
		return 0
	}
}

func brailleRune(mask uint8) rune {
	return rune(0x2800 + int(mask))
}
