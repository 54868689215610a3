// Package dashboard holds the session state and the interactive UI.
package dashboard

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/citelab/citeboard/internal/analysis"
	"github.com/citelab/citeboard/internal/chart"
	"github.com/citelab/citeboard/internal/dataset"
	"github.com/citelab/citeboard/internal/model"
)

// Table is the raw-data view of a section.
type Table struct {
	Headers    []string
	Rows       [][]string
	RightAlign map[int]bool
}

// Card is one overview KPI.
type Card struct {
	Label string
	Value string
}

// SectionView is everything a renderer needs to draw one section. ErrMsg is
// set instead of Charts/Table when the section's file failed to load.
type SectionView struct {
	Section model.Section
	Charts  []chart.Spec
	Table   Table
	Cards   []Card
	Status  []string
	ErrMsg  string
}

// InstitutionView computes the institution section. The country filter
// narrows the detail charts and the raw table; the by-country donut inside
// the specs stays unfiltered.
func InstitutionView(records []model.InstitutionRecord, country string, topN int) SectionView {
	filtered := analysis.FilterByCountry(records, country)
	rows := make([][]string, 0, len(filtered))
	for _, r := range filtered {
		rows = append(rows, []string{r.Name, strconv.Itoa(r.Count), r.Country})
	}
	return SectionView{
		Section: model.SectionInstitutions,
		Charts:  chart.InstitutionCharts(records, country, topN),
		Table: Table{
			Headers:    []string{"Institution", "Citations", "Country"},
			Rows:       rows,
			RightAlign: map[int]bool{1: true},
		},
	}
}

// TopicView computes the topic section. Topics ignore the country filter.
func TopicView(topics []model.TopicRecord, topN int) SectionView {
	ranked := analysis.RankTopics(topics)
	rows := make([][]string, 0, len(ranked))
	for _, t := range ranked {
		rows = append(rows, []string{strconv.Itoa(t.Rank), t.Name, strconv.Itoa(t.Count)})
	}
	return SectionView{
		Section: model.SectionTopics,
		Charts:  chart.TopicCharts(topics, topN),
		Table: Table{
			Headers:    []string{"Rank", "Topic", "Citations"},
			Rows:       rows,
			RightAlign: map[int]bool{0: true, 2: true},
		},
	}
}

// TypeView computes the publication type section.
func TypeView(types []model.TypeRecord) SectionView {
	pareto := analysis.Pareto(types)
	rows := make([][]string, 0, len(pareto))
	for _, r := range pareto {
		rows = append(rows, []string{
			r.Name,
			strconv.Itoa(r.Count),
			strconv.Itoa(r.Cumulative),
			fmt.Sprintf("%.1f%%", r.CumulativePct),
		})
	}
	return SectionView{
		Section: model.SectionTypes,
		Charts:  chart.TypeCharts(types),
		Table: Table{
			Headers:    []string{"Type", "Citations", "Cumulative", "Cumulative %"},
			Rows:       rows,
			RightAlign: map[int]bool{1: true, 2: true, 3: true},
		},
	}
}

type load struct {
	institutions []model.InstitutionRecord
	topics       []model.TopicRecord
	types        []model.TypeRecord
	err          error
}

type viewKey struct {
	section model.Section
	country string
	topN    int
}

// Session owns one user's dashboard state: the active section and country
// filter, plus two memo layers. File loads are cached per section; computed
// views are cached per (section, filter, topN). Topic and type keys ignore
// the filter, so a filter change recomputes only the institution section.
type Session struct {
	cfg    model.Config
	logger *zap.Logger

	section model.Section
	country string
	topN    map[model.Section]int

	loads map[model.Section]*load
	views map[viewKey]SectionView
}

// NewSession builds a session from the resolved configuration.
func NewSession(cfg model.Config, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	country := cfg.Country
	if country == "" {
		country = model.AllCountries
	}
	topInstitutions := cfg.TopInstitutions
	if topInstitutions <= 0 {
		topInstitutions = chart.DefaultTopInstitutions
	}
	topTopics := cfg.TopTopics
	if topTopics <= 0 {
		topTopics = chart.DefaultTopTopics
	}
	return &Session{
		cfg:     cfg,
		logger:  logger,
		section: model.SectionOverview,
		country: country,
		topN: map[model.Section]int{
			model.SectionInstitutions: topInstitutions,
			model.SectionTopics:       topTopics,
		},
		loads: make(map[model.Section]*load),
		views: make(map[viewKey]SectionView),
	}
}

// Section returns the active section.
func (s *Session) Section() model.Section { return s.section }

// SetSection switches the active section.
func (s *Session) SetSection(section model.Section) { s.section = section }

// Country returns the active country filter.
func (s *Session) Country() string { return s.country }

// SetCountry switches the country filter. The empty string selects all
// countries. Memoized topic and type views survive the change.
func (s *Session) SetCountry(country string) {
	if country == "" {
		country = model.AllCountries
	}
	if country == s.country {
		return
	}
	s.logger.Debug("country filter changed",
		zap.String("from", s.country), zap.String("to", country))
	s.country = country
}

// Countries returns the selectable filter values: the All sentinel followed
// by the distinct countries of the loaded institution file.
func (s *Session) Countries() []string {
	l := s.load(model.SectionInstitutions)
	if l.err != nil {
		return []string{model.AllCountries}
	}
	return append([]string{model.AllCountries}, analysis.Countries(l.institutions)...)
}

// TopN returns the display limit of a section; 0 when the section has none.
func (s *Session) TopN(section model.Section) int { return s.topN[section] }

// AdjustTopN moves a section's display limit by delta, keeping it >= 1.
// Sections without a limit are unaffected.
func (s *Session) AdjustTopN(section model.Section, delta int) {
	n, ok := s.topN[section]
	if !ok {
		return
	}
	n += delta
	if n < 1 {
		n = 1
	}
	s.topN[section] = n
}

// Reload drops both memo layers so the next access re-reads the files.
func (s *Session) Reload() {
	s.logger.Info("reload requested")
	s.loads = make(map[model.Section]*load)
	s.views = make(map[viewKey]SectionView)
}

// View returns the computed view of a section, loading and computing on the
// first access and answering from the memo afterwards. Loader failures are
// captured in the view's ErrMsg; they never propagate.
func (s *Session) View(section model.Section) SectionView {
	key := s.key(section)
	if view, ok := s.views[key]; ok {
		s.logger.Debug("view cache hit", zap.String("section", string(section)))
		return view
	}
	s.logger.Debug("view cache miss", zap.String("section", string(section)))
	view := s.compute(section)
	s.views[key] = view
	return view
}

func (s *Session) key(section model.Section) viewKey {
	key := viewKey{section: section}
	switch section {
	case model.SectionInstitutions:
		key.country = s.country
		key.topN = s.topN[section]
	case model.SectionTopics:
		key.topN = s.topN[section]
	}
	return key
}

func (s *Session) compute(section model.Section) SectionView {
	switch section {
	case model.SectionOverview:
		return s.overview()
	case model.SectionInstitutions:
		l := s.load(section)
		if l.err != nil {
			return errorView(section, l.err)
		}
		return InstitutionView(l.institutions, s.country, s.topN[section])
	case model.SectionTopics:
		l := s.load(section)
		if l.err != nil {
			return errorView(section, l.err)
		}
		return TopicView(l.topics, s.topN[section])
	case model.SectionTypes:
		l := s.load(section)
		if l.err != nil {
			return errorView(section, l.err)
		}
		return TypeView(l.types)
	default:
		return SectionView{Section: section, ErrMsg: fmt.Sprintf("unknown section %q", section)}
	}
}

// overview aggregates all three loads. Files that fail contribute a status
// line instead of failing the whole view.
func (s *Session) overview() SectionView {
	institutions := s.load(model.SectionInstitutions)
	topics := s.load(model.SectionTopics)
	types := s.load(model.SectionTypes)

	summary := analysis.Summarize(institutions.institutions, topics.topics, types.types)
	view := SectionView{
		Section: model.SectionOverview,
		Cards: []Card{
			{Label: "Total Citations", Value: strconv.Itoa(summary.TotalCitations)},
			{Label: "Countries", Value: strconv.Itoa(summary.Countries)},
			{Label: "Top Institution", Value: orDash(summary.TopInstitution)},
			{Label: "Top Topic", Value: orDash(summary.TopTopic)},
		},
		Status: []string{
			statusLine(dataset.InstitutionSchema.File, summary.Institutions, institutions.err),
			statusLine(dataset.TopicSchema.File, summary.Topics, topics.err),
			statusLine(dataset.TypeSchema.File, summary.Types, types.err),
		},
	}
	return view
}

func (s *Session) load(section model.Section) *load {
	if l, ok := s.loads[section]; ok {
		return l
	}
	l := &load{}
	switch section {
	case model.SectionInstitutions:
		l.institutions, l.err = dataset.LoadInstitutions(s.cfg.DataDir)
	case model.SectionTopics:
		l.topics, l.err = dataset.LoadTopics(s.cfg.DataDir)
	case model.SectionTypes:
		l.types, l.err = dataset.LoadTypes(s.cfg.DataDir)
	}
	if l.err != nil {
		s.logger.Warn("load failed",
			zap.String("section", string(section)), zap.Error(l.err))
	} else {
		s.logger.Info("loaded section data",
			zap.String("section", string(section)),
			zap.Int("rows", len(l.institutions)+len(l.topics)+len(l.types)))
	}
	s.loads[section] = l
	return l
}

func errorView(section model.Section, err error) SectionView {
	return SectionView{Section: section, ErrMsg: err.Error()}
}

func statusLine(file string, rows int, err error) string {
	if err != nil {
		return fmt.Sprintf("%s: %v", file, err)
	}
	return fmt.Sprintf("%s: %d rows", file, rows)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
