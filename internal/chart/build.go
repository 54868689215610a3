package chart

import (
	"github.com/citelab/citeboard/internal/analysis"
	"github.com/citelab/citeboard/internal/model"
)

// Display limits applied by the builders.
const (
	DefaultTopInstitutions = 15
	DefaultTopTopics       = 12

	maxCountrySlices = 12
)

// InstitutionCharts builds the institution section charts. The country filter
// narrows the detail charts; the by-country donut always shows the full
// distribution.
func InstitutionCharts(records []model.InstitutionRecord, country string, topN int) []Spec {
	if topN <= 0 {
		topN = DefaultTopInstitutions
	}
	top := analysis.TopInstitutions(analysis.FilterByCountry(records, country), topN)

	barPoints := make([]Point, 0, len(top))
	treePoints := make([]Point, 0, len(top))
	for _, r := range top {
		barPoints = append(barPoints, Point{Label: r.Name, Value: float64(r.Count), Group: r.Country})
		treePoints = append(treePoints, Point{Label: r.Name, Value: float64(r.Count), Group: r.Country})
	}

	totals := analysis.CountryTotals(records)
	if len(totals) > maxCountrySlices {
		totals = totals[:maxCountrySlices]
	}
	donutPoints := make([]Point, 0, len(totals))
	for _, c := range totals {
		donutPoints = append(donutPoints, Point{Label: c.Country, Value: float64(c.Count)})
	}

	return []Spec{
		{
			Kind:       KindHBar,
			Title:      "Top Institutions by Citation Count",
			XLabel:     "Citations",
			Palette:    PaletteBlues,
			ShowValues: true,
			Series:     []Series{{Name: "Citations", Points: barPoints}},
		},
		{
			Kind:       KindDonut,
			Title:      "Citations by Country",
			Palette:    PaletteBlues,
			Hole:       0.45,
			ShowLegend: true,
			Series:     []Series{{Name: "Citations", Points: donutPoints}},
		},
		{
			Kind:    KindTreemap,
			Title:   "Institution Treemap",
			Palette: PaletteBlues,
			Series:  []Series{{Name: "Citations", Points: treePoints}},
		},
	}
}

// TopicCharts builds the topic section charts.
func TopicCharts(topics []model.TopicRecord, topN int) []Spec {
	if topN <= 0 {
		topN = DefaultTopTopics
	}
	ranked := analysis.RankTopics(topics)
	top := ranked
	if len(top) > topN {
		top = top[:topN]
	}

	donutPoints := make([]Point, 0, len(top))
	barPoints := make([]Point, 0, len(top))
	for _, t := range top {
		donutPoints = append(donutPoints, Point{Label: t.Name, Value: float64(t.Count)})
		barPoints = append(barPoints, Point{Label: t.Name, Value: float64(t.Count)})
	}
	bubblePoints := make([]Point, 0, len(ranked))
	for _, t := range ranked {
		bubblePoints = append(bubblePoints, Point{Label: t.Name, Value: float64(t.Count)})
	}

	return []Spec{
		{
			Kind:       KindDonut,
			Title:      "Topic Distribution",
			Palette:    PalettePastel,
			Hole:       0.4,
			ShowLegend: true,
			Series:     []Series{{Name: "Citations", Points: donutPoints}},
		},
		{
			Kind:       KindHBar,
			Title:      "Topic Ranking",
			XLabel:     "Citations",
			Palette:    PaletteTeal,
			ShowValues: true,
			Series:     []Series{{Name: "Citations", Points: barPoints}},
		},
		{
			Kind:    KindBubble,
			Title:   "Topic Bubble Chart",
			Palette: PaletteTeal,
			Series:  []Series{{Name: "Citations", Points: bubblePoints}},
		},
	}
}

// TypeCharts builds the publication type section charts.
func TypeCharts(types []model.TypeRecord) []Spec {
	rows := analysis.Pareto(types)

	donutPoints := make([]Point, 0, len(rows))
	barPoints := make([]Point, 0, len(rows))
	countPoints := make([]Point, 0, len(rows))
	pctPoints := make([]Point, 0, len(rows))
	for _, r := range rows {
		donutPoints = append(donutPoints, Point{Label: r.Name, Value: float64(r.Count)})
		barPoints = append(barPoints, Point{Label: r.Name, Value: float64(r.Count)})
		countPoints = append(countPoints, Point{Label: r.Name, Value: float64(r.Count)})
		pctPoints = append(pctPoints, Point{Label: r.Name, Value: r.CumulativePct})
	}

	return []Spec{
		{
			Kind:           KindDonut,
			Title:          "Publication Type Breakdown",
			Palette:        PaletteSet3,
			Hole:           0.5,
			ShowLegend:     true,
			EmphasizeFirst: true,
			Series:         []Series{{Name: "Citations", Points: donutPoints}},
		},
		{
			Kind:       KindBar,
			Title:      "Citation Volume by Type",
			XLabel:     "Citations",
			Palette:    PalettePurples,
			ShowValues: true,
			Series:     []Series{{Name: "Citations", Points: barPoints}},
		},
		{
			Kind:    KindPareto,
			Title:   "Cumulative Share",
			XLabel:  "Type",
			YLabel:  "Count",
			Y2Label: "Cumulative %",
			Palette: PalettePurples,
			Series: []Series{
				{Name: "Count", Kind: KindBar, Points: countPoints},
				{Name: "Cumulative %", Kind: KindLine, Axis: 1, Points: pctPoints},
			},
		},
	}
}
