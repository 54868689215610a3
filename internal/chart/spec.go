// Package chart builds renderer-agnostic chart specifications.
package chart

// Kind identifies a chart shape.
type Kind string

// Chart kinds understood by renderers.
const (
	KindBar     Kind = "bar"
	KindHBar    Kind = "hbar"
	KindPie     Kind = "pie"
	KindDonut   Kind = "donut"
	KindTreemap Kind = "treemap"
	KindBubble  Kind = "bubble"
	KindLine    Kind = "line"
	KindPareto  Kind = "pareto"
)

// Palette names shared with renderers.
const (
	PaletteBlues   = "blues"
	PaletteTeal    = "teal"
	PalettePurples = "purples"
	PalettePastel  = "pastel"
	PaletteSet3    = "set3"
)

// Point is a single labeled value. Group carries an optional secondary
// dimension (treemap hierarchy, bar annotations).
type Point struct {
	Label string  `json:"label" yaml:"label"`
	Value float64 `json:"value" yaml:"value"`
	Group string  `json:"group,omitempty" yaml:"group,omitempty"`
}

// Series is a named sequence of points. Kind overrides the chart kind in
// combo charts; Axis selects the primary (0) or secondary (1) value axis.
type Series struct {
	Name   string  `json:"name" yaml:"name"`
	Kind   Kind    `json:"kind,omitempty" yaml:"kind,omitempty"`
	Axis   int     `json:"axis,omitempty" yaml:"axis,omitempty"`
	Points []Point `json:"points" yaml:"points"`
}

// Spec is a complete chart description. It carries data and presentation
// hints only; how to draw them stays with the renderer.
type Spec struct {
	Kind           Kind     `json:"kind" yaml:"kind"`
	Title          string   `json:"title" yaml:"title"`
	XLabel         string   `json:"xLabel,omitempty" yaml:"xLabel,omitempty"`
	YLabel         string   `json:"yLabel,omitempty" yaml:"yLabel,omitempty"`
	Y2Label        string   `json:"y2Label,omitempty" yaml:"y2Label,omitempty"`
	Palette        string   `json:"palette,omitempty" yaml:"palette,omitempty"`
	Hole           float64  `json:"hole,omitempty" yaml:"hole,omitempty"`
	ShowValues     bool     `json:"showValues,omitempty" yaml:"showValues,omitempty"`
	ShowLegend     bool     `json:"showLegend,omitempty" yaml:"showLegend,omitempty"`
	EmphasizeFirst bool     `json:"emphasizeFirst,omitempty" yaml:"emphasizeFirst,omitempty"`
	Series         []Series `json:"series" yaml:"series"`
}
