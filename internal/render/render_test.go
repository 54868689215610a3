package render

import (
	"strings"
	"testing"

	"github.com/citelab/citeboard/internal/chart"
)

func barSpec() chart.Spec {
	return chart.Spec{
		Kind:       chart.KindHBar,
		Title:      "Top Institutions by Citation Count",
		Palette:    chart.PaletteBlues,
		ShowValues: true,
		Series: []chart.Series{{Name: "Citations", Points: []chart.Point{
			{Label: "MIT", Value: 4520, Group: "USA"},
			{Label: "Oxford", Value: 3890, Group: "United Kingdom"},
		}}},
	}
}

func TestRenderBars(t *testing.T) {
	lines, err := Lines(barSpec(), Options{Width: 60})
	if err != nil {
		t.Fatalf("Lines failed: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("expected title plus 2 bars, got %d lines", len(lines))
	}
	if lines[0] != "Top Institutions by Citation Count" {
		t.Fatalf("unexpected title line: %q", lines[0])
	}
	if !strings.Contains(lines[1], "MIT") || !strings.Contains(lines[1], "4520") || !strings.Contains(lines[1], "(USA)") {
		t.Fatalf("unexpected bar line: %q", lines[1])
	}
	if !strings.Contains(lines[1], "│") {
		t.Fatalf("expected axis separator in %q", lines[1])
	}
	if strings.Count(lines[1], barRune) <= strings.Count(lines[2], barRune) {
		t.Fatalf("larger value must draw the longer bar:\n%q\n%q", lines[1], lines[2])
	}
}

func TestRenderBarsEmptySeries(t *testing.T) {
	lines, err := Lines(chart.Spec{Kind: chart.KindBar, Title: "Empty"}, Options{Width: 40})
	if err != nil {
		t.Fatalf("Lines failed: %v", err)
	}
	if lines[len(lines)-1] != "No data." {
		t.Fatalf("expected no-data marker, got %q", lines[len(lines)-1])
	}
}

func TestRenderDonutLegend(t *testing.T) {
	spec := chart.Spec{
		Kind:           chart.KindDonut,
		Title:          "Publication Type Breakdown",
		Hole:           0.5,
		EmphasizeFirst: true,
		Series: []chart.Series{{Name: "Citations", Points: []chart.Point{
			{Label: "Journal", Value: 50},
			{Label: "Conference", Value: 30},
			{Label: "Preprint", Value: 20},
		}}},
	}
	lines, err := Lines(spec, Options{Width: 40})
	if err != nil {
		t.Fatalf("Lines failed: %v", err)
	}
	// Title, proportional bar, three legend entries.
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d: %q", len(lines), lines)
	}
	if got := len([]rune(lines[1])); got != 40 {
		t.Fatalf("proportional bar must fill the width, got %d runes", got)
	}
	for i, want := range []string{"50.0%", "30.0%", "20.0%"} {
		if !strings.Contains(lines[2+i], want) {
			t.Fatalf("expected %s in legend line %q", want, lines[2+i])
		}
	}
	if !strings.HasPrefix(lines[2], emphasisRune) {
		t.Fatalf("first slice must carry the emphasis marker: %q", lines[2])
	}
	if !strings.HasPrefix(lines[3], dotRune) {
		t.Fatalf("other slices use the dot marker: %q", lines[3])
	}
}

func TestRenderTreemapGroupsByCountry(t *testing.T) {
	spec := chart.Spec{
		Kind:  chart.KindTreemap,
		Title: "Institution Treemap",
		Series: []chart.Series{{Name: "Citations", Points: []chart.Point{
			{Label: "MIT", Value: 60, Group: "USA"},
			{Label: "Oxford", Value: 30, Group: "United Kingdom"},
			{Label: "Stanford", Value: 10, Group: "USA"},
		}}},
	}
	lines, err := Lines(spec, Options{Width: 60})
	if err != nil {
		t.Fatalf("Lines failed: %v", err)
	}
	var usaIdx, ukIdx = -1, -1
	for i, line := range lines {
		if strings.HasPrefix(line, "USA:") {
			usaIdx = i
		}
		if strings.HasPrefix(line, "United Kingdom:") {
			ukIdx = i
		}
	}
	if usaIdx == -1 || ukIdx == -1 {
		t.Fatalf("expected group headers, got %q", lines)
	}
	if usaIdx > ukIdx {
		t.Fatalf("groups must sort by total descending")
	}
	if !strings.Contains(lines[usaIdx], "(70.0%)") {
		t.Fatalf("expected group share in %q", lines[usaIdx])
	}
}

func TestRenderBubbleScalesDots(t *testing.T) {
	spec := chart.Spec{
		Kind:  chart.KindBubble,
		Title: "Topic Bubble Chart",
		Series: []chart.Series{{Name: "Citations", Points: []chart.Point{
			{Label: "Machine Learning", Value: 100},
			{Label: "Genomics", Value: 25},
			{Label: "Nothing", Value: 0},
		}}},
	}
	lines, err := Lines(spec, Options{Width: 60})
	if err != nil {
		t.Fatalf("Lines failed: %v", err)
	}
	big := strings.Count(lines[1], dotRune)
	small := strings.Count(lines[2], dotRune)
	if big <= small || small == 0 {
		t.Fatalf("dot runs must scale with value: %d vs %d", big, small)
	}
	if strings.Count(lines[3], dotRune) != 0 {
		t.Fatalf("zero value must draw no dots: %q", lines[3])
	}
}

func TestRenderPareto(t *testing.T) {
	spec := chart.Spec{
		Kind:    chart.KindPareto,
		Title:   "Cumulative Share",
		XLabel:  "Type",
		Palette: chart.PalettePurples,
		Series: []chart.Series{
			{Name: "Count", Kind: chart.KindBar, Points: []chart.Point{
				{Label: "Journal", Value: 50},
				{Label: "Conference", Value: 30},
				{Label: "Preprint", Value: 20},
			}},
			{Name: "Cumulative %", Kind: chart.KindLine, Axis: 1, Points: []chart.Point{
				{Label: "Journal", Value: 50},
				{Label: "Conference", Value: 80},
				{Label: "Preprint", Value: 100},
			}},
		},
	}
	lines, err := Lines(spec, Options{Width: 60})
	if err != nil {
		t.Fatalf("Lines failed: %v", err)
	}
	out := strings.Join(lines, "\n")
	if !strings.Contains(out, "Cumulative Share") {
		t.Fatalf("expected title in output")
	}
	if !strings.Contains(out, "100.0%") {
		t.Fatalf("expected final cumulative percentage in table")
	}
	if !strings.Contains(out, "100%") || !strings.Contains(out, "0%") {
		t.Fatalf("expected fixed axis labels in plot")
	}
	if !strings.Contains(out, "Legend:") {
		t.Fatalf("expected legend in output")
	}
	// Title + 4 table lines + blank + plot + legend.
	if len(lines) < 1+4+1+plotHeight+1 {
		t.Fatalf("expected at least %d lines, got %d", 1+4+1+plotHeight+1, len(lines))
	}
}

func TestRenderParetoRequiresBothSeries(t *testing.T) {
	spec := chart.Spec{
		Kind: chart.KindPareto,
		Series: []chart.Series{
			{Name: "Count", Kind: chart.KindBar, Points: []chart.Point{{Label: "Journal", Value: 50}}},
		},
	}
	if _, err := Lines(spec, Options{Width: 40}); err == nil {
		t.Fatalf("expected error for missing line series")
	}
}

func TestLinesUnknownKind(t *testing.T) {
	if _, err := Lines(chart.Spec{Kind: "sankey"}, Options{Width: 40}); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestTruncateLabel(t *testing.T) {
	if got := truncateLabel("short", 10); got != "short" {
		t.Fatalf("unexpected truncation: %q", got)
	}
	got := truncateLabel("National University of Singapore", 10)
	if !strings.HasSuffix(got, "...") || len([]rune(got)) != 10 {
		t.Fatalf("unexpected truncation: %q", got)
	}
}
