// Package analysis derives dashboard views from loaded records.
package analysis

import (
	"sort"

	"github.com/citelab/citeboard/internal/model"
)

// CountryCount is a per-country citation total.
type CountryCount struct {
	Country string
	Count   int
}

// RankedTopic is a topic with its 1-based rank by citation count.
type RankedTopic struct {
	Name  string
	Count int
	Rank  int
}

// ParetoRow is a publication type with cumulative totals attached.
type ParetoRow struct {
	Name          string
	Count         int
	Cumulative    int
	CumulativePct float64
}

// CountryTotals sums institution counts per country over the full record set.
// The result is ordered by total descending; countries with equal totals keep
// first-appearance order.
func CountryTotals(records []model.InstitutionRecord) []CountryCount {
	totals := make(map[string]int, len(records))
	order := make([]string, 0, len(records))
	for _, r := range records {
		if _, ok := totals[r.Country]; !ok {
			order = append(order, r.Country)
		}
		totals[r.Country] += r.Count
	}
	out := make([]CountryCount, 0, len(order))
	for _, country := range order {
		out = append(out, CountryCount{Country: country, Count: totals[country]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// FilterByCountry returns the records whose country matches exactly.
// The empty string and the AllCountries sentinel select every record.
func FilterByCountry(records []model.InstitutionRecord, country string) []model.InstitutionRecord {
	if country == "" || country == model.AllCountries {
		return append([]model.InstitutionRecord(nil), records...)
	}
	out := make([]model.InstitutionRecord, 0, len(records))
	for _, r := range records {
		if r.Country == country {
			out = append(out, r)
		}
	}
	return out
}

// TopInstitutions returns the n highest-count records, count descending.
// Records with equal counts keep input order. n <= 0 returns all records.
func TopInstitutions(records []model.InstitutionRecord, n int) []model.InstitutionRecord {
	out := append([]model.InstitutionRecord(nil), records...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// RankTopics sorts topics by count descending and assigns ranks 1..N.
// Topics with equal counts keep input order.
func RankTopics(topics []model.TopicRecord) []RankedTopic {
	sorted := append([]model.TopicRecord(nil), topics...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})
	out := make([]RankedTopic, len(sorted))
	for i, t := range sorted {
		out[i] = RankedTopic{Name: t.Name, Count: t.Count, Rank: i + 1}
	}
	return out
}

// Pareto sorts publication types by count descending and attaches cumulative
// sums and percentages. Percentages stay 0 when the overall total is 0.
func Pareto(types []model.TypeRecord) []ParetoRow {
	sorted := append([]model.TypeRecord(nil), types...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})
	total := 0
	for _, t := range sorted {
		total += t.Count
	}
	out := make([]ParetoRow, len(sorted))
	cumulative := 0
	for i, t := range sorted {
		cumulative += t.Count
		row := ParetoRow{Name: t.Name, Count: t.Count, Cumulative: cumulative}
		if total > 0 {
			row.CumulativePct = float64(cumulative) / float64(total) * 100
		}
		out[i] = row
	}
	return out
}

// Countries returns the distinct country values in alphabetical order.
func Countries(records []model.InstitutionRecord) []string {
	seen := make(map[string]struct{}, len(records))
	out := make([]string, 0, len(records))
	for _, r := range records {
		if _, ok := seen[r.Country]; ok {
			continue
		}
		seen[r.Country] = struct{}{}
		out = append(out, r.Country)
	}
	sort.Strings(out)
	return out
}
