// Package render draws chart specifications as terminal text.
package render

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/citelab/citeboard/internal/chart"
)

const (
	minChartWidth     = 24
	maxLabelWidth     = 28
	fallbackTermWidth = 80
	barRune           = "█"
	dotRune           = "●"
	emphasisRune      = "◆"
)

// Options control terminal rendering.
type Options struct {
	// Width is the total line width; 0 means detect from the terminal.
	Width int
	// Color enables ANSI color output.
	Color bool
}

// Render writes the chart to w, one line at a time.
func Render(w io.Writer, spec chart.Spec, opts Options) error {
	lines, err := Lines(spec, opts)
	if err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// Lines renders the chart as terminal lines.
func Lines(spec chart.Spec, opts Options) ([]string, error) {
	width := opts.Width
	if width <= 0 {
		width = terminalWidth()
	}
	if width < minChartWidth {
		width = minChartWidth
	}
	switch spec.Kind {
	case chart.KindBar, chart.KindHBar:
		return renderBars(spec, width, opts.Color), nil
	case chart.KindPie, chart.KindDonut:
		return renderSlices(spec, width, opts.Color), nil
	case chart.KindTreemap:
		return renderTreemap(spec, width, opts.Color), nil
	case chart.KindBubble:
		return renderBubble(spec, width, opts.Color), nil
	case chart.KindPareto:
		return renderPareto(spec, width, opts.Color)
	case chart.KindLine:
		return renderLine(spec, width, opts.Color), nil
	default:
		return nil, fmt.Errorf("unknown chart kind %q", spec.Kind)
	}
}

// ShouldColor reports whether ANSI colors should be used when writing to w.
func ShouldColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return fallbackTermWidth
	}
	return width
}

func renderBars(spec chart.Spec, width int, color bool) []string {
	lines := titleLines(spec.Title, color)
	points := firstSeriesPoints(spec)
	if len(points) == 0 {
		return append(lines, "No data.")
	}

	labelWidth, valueWidth, groupWidth := 0, 0, 0
	maxValue := 0.0
	for _, p := range points {
		if w := runewidth.StringWidth(p.Label); w > labelWidth {
			labelWidth = w
		}
		if spec.ShowValues {
			if w := len(formatValue(p.Value)); w > valueWidth {
				valueWidth = w
			}
		}
		if p.Group != "" {
			if w := runewidth.StringWidth(p.Group) + 3; w > groupWidth {
				groupWidth = w
			}
		}
		if p.Value > maxValue {
			maxValue = p.Value
		}
	}
	if labelWidth > maxLabelWidth {
		labelWidth = maxLabelWidth
	}
	barWidth := width - labelWidth - 3 - groupWidth
	if spec.ShowValues {
		barWidth -= valueWidth + 1
	}
	if barWidth < 8 {
		barWidth = 8
	}

	for i, p := range points {
		bar := scaledBar(p.Value, maxValue, barWidth)
		if color && bar != "" {
			bar = colorAt(spec.Palette, i) + bar + colorReset
		}
		line := padLabel(p.Label, labelWidth) + " │ " + bar
		if spec.ShowValues {
			line += " " + formatValue(p.Value)
		}
		if p.Group != "" {
			line += " (" + p.Group + ")"
		}
		lines = append(lines, line)
	}
	return lines
}

func renderSlices(spec chart.Spec, width int, color bool) []string {
	lines := titleLines(spec.Title, color)
	points := firstSeriesPoints(spec)
	if len(points) == 0 {
		return append(lines, "No data.")
	}
	total := 0.0
	for _, p := range points {
		total += p.Value
	}

	if total > 0 {
		var bar strings.Builder
		prevEnd := 0
		cumulative := 0.0
		for i, p := range points {
			cumulative += p.Value
			end := int(math.Round(cumulative / total * float64(width)))
			if end > width {
				end = width
			}
			run := end - prevEnd
			if run <= 0 {
				continue
			}
			segment := strings.Repeat(barRune, run)
			if color {
				segment = colorAt(spec.Palette, i) + segment + colorReset
			}
			bar.WriteString(segment)
			prevEnd = end
		}
		lines = append(lines, bar.String())
	}

	rows := make([][]string, 0, len(points))
	for _, p := range points {
		share := 0.0
		if total > 0 {
			share = p.Value / total * 100
		}
		rows = append(rows, []string{p.Label, formatValue(p.Value), fmt.Sprintf("%.1f%%", share)})
	}
	legend := FormatTable(nil, rows, map[int]bool{1: true, 2: true})
	for i, entry := range legend {
		marker := dotRune
		if spec.EmphasizeFirst && i == 0 {
			marker = emphasisRune
		}
		if color {
			marker = colorAt(spec.Palette, i) + marker + colorReset
		}
		lines = append(lines, marker+" "+entry)
	}
	return lines
}

type pointGroup struct {
	name   string
	total  float64
	points []chart.Point
}

func groupPoints(points []chart.Point) []pointGroup {
	index := make(map[string]int, len(points))
	groups := make([]pointGroup, 0, len(points))
	for _, p := range points {
		i, ok := index[p.Group]
		if !ok {
			i = len(groups)
			index[p.Group] = i
			groups = append(groups, pointGroup{name: p.Group})
		}
		groups[i].total += p.Value
		groups[i].points = append(groups[i].points, p)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].total > groups[j].total
	})
	return groups
}

func renderTreemap(spec chart.Spec, width int, color bool) []string {
	lines := titleLines(spec.Title, color)
	points := firstSeriesPoints(spec)
	if len(points) == 0 {
		return append(lines, "No data.")
	}
	groups := groupPoints(points)

	grand := 0.0
	maxValue := 0.0
	labelWidth := 0
	for _, g := range groups {
		grand += g.total
		for _, p := range g.points {
			if p.Value > maxValue {
				maxValue = p.Value
			}
			if w := runewidth.StringWidth(p.Label); w > labelWidth {
				labelWidth = w
			}
		}
	}
	if labelWidth > maxLabelWidth {
		labelWidth = maxLabelWidth
	}
	barWidth := width - labelWidth - 13
	if barWidth < 8 {
		barWidth = 8
	}

	for gi, g := range groups {
		share := 0.0
		if grand > 0 {
			share = g.total / grand * 100
		}
		header := fmt.Sprintf("%s: %s (%.1f%%)", groupName(g.name), formatValue(g.total), share)
		if color {
			header = colorAt(spec.Palette, gi) + header + colorReset
		}
		lines = append(lines, header)
		for _, p := range g.points {
			bar := scaledBar(p.Value, maxValue, barWidth)
			if color && bar != "" {
				bar = colorAt(spec.Palette, gi) + bar + colorReset
			}
			lines = append(lines, "  "+padLabel(p.Label, labelWidth)+" │ "+bar+" "+formatValue(p.Value))
		}
	}
	return lines
}

func renderBubble(spec chart.Spec, width int, color bool) []string {
	lines := titleLines(spec.Title, color)
	points := firstSeriesPoints(spec)
	if len(points) == 0 {
		return append(lines, "No data.")
	}
	labelWidth := 0
	maxValue := 0.0
	for _, p := range points {
		if w := runewidth.StringWidth(p.Label); w > labelWidth {
			labelWidth = w
		}
		if p.Value > maxValue {
			maxValue = p.Value
		}
	}
	if labelWidth > maxLabelWidth {
		labelWidth = maxLabelWidth
	}
	maxDots := width - labelWidth - 10
	if maxDots > 24 {
		maxDots = 24
	}
	if maxDots < 4 {
		maxDots = 4
	}

	for i, p := range points {
		n := 0
		if maxValue > 0 {
			// Dot count tracks the square root so the run reads like an area.
			n = int(math.Round(math.Sqrt(p.Value/maxValue) * float64(maxDots)))
			if n == 0 && p.Value > 0 {
				n = 1
			}
		}
		dots := strings.Repeat(dotRune, n)
		if color && n > 0 {
			dots = colorAt(spec.Palette, i) + dots + colorReset
		}
		lines = append(lines, padLabel(p.Label, labelWidth)+" "+dots+" "+formatValue(p.Value))
	}
	return lines
}

func renderPareto(spec chart.Spec, width int, color bool) ([]string, error) {
	var counts, pcts *chart.Series
	for i := range spec.Series {
		switch spec.Series[i].Kind {
		case chart.KindBar:
			counts = &spec.Series[i]
		case chart.KindLine:
			pcts = &spec.Series[i]
		}
	}
	if counts == nil || pcts == nil {
		return nil, fmt.Errorf("pareto chart needs a bar series and a line series")
	}
	if len(counts.Points) != len(pcts.Points) {
		return nil, fmt.Errorf("pareto series must have the same length")
	}

	lines := titleLines(spec.Title, color)
	if len(counts.Points) == 0 {
		return append(lines, "No data."), nil
	}

	label := spec.XLabel
	if label == "" {
		label = "Label"
	}
	headers := []string{label, counts.Name, pcts.Name}
	rows := make([][]string, 0, len(counts.Points))
	for i, p := range counts.Points {
		rows = append(rows, []string{p.Label, formatValue(p.Value), fmt.Sprintf("%.1f%%", pcts.Points[i].Value)})
	}
	lines = append(lines, FormatTable(headers, rows, map[int]bool{1: true, 2: true})...)

	values := make([]float64, len(pcts.Points))
	for i, p := range pcts.Points {
		values[i] = p.Value
	}
	lineColor := ""
	if color {
		lineColor = colorAt(spec.Palette, 0)
	}
	lines = append(lines, "")
	lines = append(lines, plotPercentLine(values, plotWidthFor(width), lineColor)...)
	lines = append(lines, legendLine(pcts.Name, lineColor))
	return lines, nil
}

func renderLine(spec chart.Spec, width int, color bool) []string {
	lines := titleLines(spec.Title, color)
	points := firstSeriesPoints(spec)
	if len(points) == 0 {
		return append(lines, "No data.")
	}
	maxValue := 0.0
	for _, p := range points {
		if p.Value > maxValue {
			maxValue = p.Value
		}
	}
	values := make([]float64, len(points))
	for i, p := range points {
		if maxValue > 0 {
			values[i] = p.Value / maxValue * 100
		}
	}
	lineColor := ""
	if color {
		lineColor = colorAt(spec.Palette, 0)
	}
	lines = append(lines, "Scaled to the series maximum.")
	return append(lines, plotPercentLine(values, plotWidthFor(width), lineColor)...)
}

func legendLine(name, color string) string {
	label := string(brailleRune(0x01)) + " " + name
	if color != "" {
		label = color + label + colorReset
	}
	return "Legend: " + label
}

func titleLines(title string, color bool) []string {
	if title == "" {
		return nil
	}
	if color {
		title = colorBold + title + colorReset
	}
	return []string{title}
}

func firstSeriesPoints(spec chart.Spec) []chart.Point {
	if len(spec.Series) == 0 {
		return nil
	}
	return spec.Series[0].Points
}

func groupName(name string) string {
	if name == "" {
		return "Other"
	}
	return name
}

func scaledBar(value, maxValue float64, barWidth int) string {
	if maxValue <= 0 || value < 0 {
		return ""
	}
	n := int(math.Round(value / maxValue * float64(barWidth)))
	if n == 0 && value > 0 {
		n = 1
	}
	if n > barWidth {
		n = barWidth
	}
	return strings.Repeat(barRune, n)
}

func padLabel(label string, width int) string {
	return runewidth.FillRight(truncateLabel(label, width), width)
}

func truncateLabel(label string, width int) string {
	if width <= 0 || runewidth.StringWidth(label) <= width {
		return label
	}
	if width <= 3 {
		return runewidth.Truncate(label, width, "")
	}
	return runewidth.Truncate(label, width, "...")
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
