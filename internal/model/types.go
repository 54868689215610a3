// Package model defines shared data structures.
package model

// InstitutionRecord is one row of the institution input file.
type InstitutionRecord struct {
	Name    string
	Count   int
	Country string
}

// TopicRecord is one row of the topic input file.
type TopicRecord struct {
	Name  string
	Count int
}

// TypeRecord is one row of the publication type input file.
type TypeRecord struct {
	Name  string
	Count int
}

// AllCountries is the country filter sentinel that selects every record.
const AllCountries = "All"

// Section identifies one dashboard section.
type Section string

// Dashboard sections.
const (
	SectionOverview     Section = "overview"
	SectionInstitutions Section = "institutions"
	SectionTopics       Section = "topics"
	SectionTypes        Section = "types"
)

// DataSections lists the sections backed by an input file, in display order.
var DataSections = []Section{SectionInstitutions, SectionTopics, SectionTypes}

// Config defines dashboard settings.
type Config struct {
	DataDir         string
	Country         string
	TopInstitutions int
	TopTopics       int
	Color           bool
}
