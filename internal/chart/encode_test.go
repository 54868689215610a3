package chart

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func sampleSpecs() []Spec {
	return []Spec{
		{
			Kind:       KindHBar,
			Title:      "Top Institutions by Citation Count",
			XLabel:     "Citations",
			Palette:    PaletteBlues,
			ShowValues: true,
			Series: []Series{{
				Name: "Citations",
				Points: []Point{
					{Label: "MIT", Value: 4520, Group: "USA"},
					{Label: "Oxford", Value: 3890, Group: "United Kingdom"},
				},
			}},
		},
		{
			Kind:    KindPareto,
			Title:   "Cumulative Share",
			Y2Label: "Cumulative %",
			Series: []Series{
				{Name: "Count", Kind: KindBar, Points: []Point{{Label: "Journal", Value: 50}}},
				{Name: "Cumulative %", Kind: KindLine, Axis: 1, Points: []Point{{Label: "Journal", Value: 100}}},
			},
		},
	}
}

func TestEncodeJSONRoundTrip(t *testing.T) {
	specs := sampleSpecs()
	var buf bytes.Buffer
	if err := Encode(&buf, specs, FormatJSON); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	var decoded []Spec
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if diff := cmp.Diff(specs, decoded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeYAMLRoundTrip(t *testing.T) {
	specs := sampleSpecs()
	var buf bytes.Buffer
	if err := Encode(&buf, specs, FormatYAML); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	var decoded []Spec
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if diff := cmp.Diff(specs, decoded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeJSONIsStable(t *testing.T) {
	specs := sampleSpecs()
	var first, second bytes.Buffer
	if err := Encode(&first, specs, FormatJSON); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if err := Encode(&second, specs, FormatJSON); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if first.String() != second.String() {
		t.Fatalf("expected identical encodings")
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, sampleSpecs(), "toml")
	if err == nil {
		t.Fatalf("expected error for unknown format")
	}
	if !strings.Contains(err.Error(), "toml") {
		t.Fatalf("expected format name in error, got %v", err)
	}
}
