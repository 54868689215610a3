package render

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestPlotPercentLine(t *testing.T) {
	lines := plotPercentLine([]float64{0, 25, 50, 75, 100}, 20, "")
	if len(lines) != plotHeight {
		t.Fatalf("expected %d lines, got %d", plotHeight, len(lines))
	}
	if !strings.Contains(lines[0], axisLabelTop) {
		t.Fatalf("expected top axis label in %q", lines[0])
	}
	if !strings.Contains(lines[plotHeight/2], axisLabelMid) {
		t.Fatalf("expected mid axis label in %q", lines[plotHeight/2])
	}
	if !strings.Contains(lines[plotHeight-1], axisLabelBot) {
		t.Fatalf("expected bottom axis label in %q", lines[plotHeight-1])
	}
	bodyWidth := len(axisLabelTop) + utf8.RuneCountInString(axisSeparator) + 20
	for i, line := range lines {
		if got := utf8.RuneCountInString(line); got != bodyWidth {
			t.Fatalf("line %d has width %d, want %d", i, got, bodyWidth)
		}
	}
}

func TestPlotPercentLineEmpty(t *testing.T) {
	if lines := plotPercentLine(nil, 20, ""); lines != nil {
		t.Fatalf("expected nil for no values, got %q", lines)
	}
}

func TestPlotWidthFor(t *testing.T) {
	axisWidth := utf8.RuneCountInString(axisLabelTop) + utf8.RuneCountInString(axisSeparator)
	total := 80
	if got := plotWidthFor(total); got != total-axisWidth {
		t.Fatalf("expected width %d, got %d", total-axisWidth, got)
	}
	if got := plotWidthFor(0); got != minPlotWidth {
		t.Fatalf("expected min width %d, got %d", minPlotWidth, got)
	}
}

func TestResampleValues(t *testing.T) {
	same := resampleValues([]float64{1, 2, 3}, 3)
	if len(same) != 3 || same[0] != 1 || same[2] != 3 {
		t.Fatalf("unexpected identity resample: %v", same)
	}

	stretched := resampleValues([]float64{0, 100}, 5)
	if len(stretched) != 5 {
		t.Fatalf("expected 5 samples, got %d", len(stretched))
	}
	if stretched[0] != 0 || stretched[4] != 100 {
		t.Fatalf("endpoints must be preserved: %v", stretched)
	}
	if stretched[2] != 50 {
		t.Fatalf("expected linear midpoint 50, got %v", stretched[2])
	}

	shrunk := resampleValues([]float64{10, 20, 30, 40}, 2)
	if len(shrunk) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(shrunk))
	}
	if shrunk[0] != 15 || shrunk[1] != 35 {
		t.Fatalf("expected pairwise averages, got %v", shrunk)
	}

	flat := resampleValues([]float64{42}, 4)
	for _, v := range flat {
		if v != 42 {
			t.Fatalf("single value must repeat: %v", flat)
		}
	}
}
