// Package dataset loads and validates the tab-separated input files.
package dataset

// FieldKind describes how a column value is parsed.
type FieldKind int

// Column kinds.
const (
	// FieldText requires a non-empty string value.
	FieldText FieldKind = iota
	// FieldCount requires a non-negative integer value.
	FieldCount
)

// Field is one column of an input file schema.
type Field struct {
	Name string
	Kind FieldKind
}

// Schema describes the expected header and column kinds of an input file.
type Schema struct {
	File   string
	Fields []Field
}

// Schemas of the three input files.
var (
	InstitutionSchema = Schema{
		File: "institution.txt",
		Fields: []Field{
			{Name: "name", Kind: FieldText},
			{Name: "count", Kind: FieldCount},
			{Name: "country", Kind: FieldText},
		},
	}
	TopicSchema = Schema{
		File: "topic.txt",
		Fields: []Field{
			{Name: "name", Kind: FieldText},
			{Name: "count", Kind: FieldCount},
		},
	}
	TypeSchema = Schema{
		File: "type.txt",
		Fields: []Field{
			{Name: "name", Kind: FieldText},
			{Name: "count", Kind: FieldCount},
		},
	}
)

func (s Schema) header() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}
