package analysis

import "github.com/citelab/citeboard/internal/model"

// Summary aggregates headline numbers across all three inputs.
type Summary struct {
	TotalCitations int
	Countries      int
	TopInstitution string
	TopTopic       string
	Institutions   int
	Topics         int
	Types          int
}

// Summarize computes the headline numbers shown on the overview.
func Summarize(institutions []model.InstitutionRecord, topics []model.TopicRecord, types []model.TypeRecord) Summary {
	s := Summary{
		Institutions: len(institutions),
		Topics:       len(topics),
		Types:        len(types),
	}
	for _, r := range institutions {
		s.TotalCitations += r.Count
	}
	s.Countries = len(Countries(institutions))
	if top := TopInstitutions(institutions, 1); len(top) > 0 {
		s.TopInstitution = top[0].Name
	}
	if ranked := RankTopics(topics); len(ranked) > 0 {
		s.TopTopic = ranked[0].Name
	}
	return s
}
