package dataset

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/citelab/citeboard/internal/model"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadInstitutions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "institution.txt", "name\tcount\tcountry\nMIT\t4520\tUSA\nOxford\t3890\tUnited Kingdom\n")

	records, err := LoadInstitutions(dir)
	if err != nil {
		t.Fatalf("LoadInstitutions failed: %v", err)
	}
	want := []model.InstitutionRecord{
		{Name: "MIT", Count: 4520, Country: "USA"},
		{Name: "Oxford", Count: 3890, Country: "United Kingdom"},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadTopicsCRLF(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "topic.txt", "name\tcount\r\nMachine Learning\t2480\r\nGenomics\t910\r\n")

	records, err := LoadTopics(dir)
	if err != nil {
		t.Fatalf("LoadTopics failed: %v", err)
	}
	want := []model.TopicRecord{
		{Name: "Machine Learning", Count: 2480},
		{Name: "Genomics", Count: 910},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadHeaderOnlyFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "type.txt", "name\tcount\n")

	records, err := LoadTypes(dir)
	if err != nil {
		t.Fatalf("LoadTypes failed: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadTopics(dir)
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %T: %v", err, err)
	}
	if notFound.Path != filepath.Join(dir, "topic.txt") {
		t.Fatalf("unexpected path: %q", notFound.Path)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected error to wrap fs.ErrNotExist")
	}
}

func TestLoadHeaderMismatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "institution.txt", "institution\tcitations\tcountry\nMIT\t4520\tUSA\n")

	_, err := LoadInstitutions(dir)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %T: %v", err, err)
	}
	wantHeader := []string{"name", "count", "country"}
	if diff := cmp.Diff(wantHeader, schemaErr.Want); diff != "" {
		t.Fatalf("want header mismatch (-want +got):\n%s", diff)
	}
	gotHeader := []string{"institution", "citations", "country"}
	if diff := cmp.Diff(gotHeader, schemaErr.Got); diff != "" {
		t.Fatalf("got header mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadHeaderIsCaseSensitive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "topic.txt", "Name\tCount\nAI\t120\n")

	_, err := LoadTopics(dir)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %T: %v", err, err)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "topic.txt", "")

	_, err := LoadTopics(dir)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %T: %v", err, err)
	}
	if len(schemaErr.Got) != 0 {
		t.Fatalf("expected empty got header, got %v", schemaErr.Got)
	}
}

func TestLoadMalformedRow(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "institution.txt", "name\tcount\tcountry\nMIT\t4520\tUSA\nOxford\t3890\n")

	_, err := LoadInstitutions(dir)
	var malformed *MalformedRowError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedRowError, got %T: %v", err, err)
	}
	if malformed.Line != 3 {
		t.Fatalf("expected line 3, got %d", malformed.Line)
	}
	if malformed.Fields != 2 || malformed.Want != 3 {
		t.Fatalf("unexpected field counts: got %d, want %d", malformed.Fields, malformed.Want)
	}
}

func TestLoadRejectsNonIntegerCount(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "topic.txt", "name\tcount\nAI\ttwelve\n")

	_, err := LoadTopics(dir)
	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("expected FieldError, got %T: %v", err, err)
	}
	if fieldErr.Line != 2 || fieldErr.Column != "count" || fieldErr.Value != "twelve" {
		t.Fatalf("unexpected field error: %+v", fieldErr)
	}
}

func TestLoadRejectsFractionalCount(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "topic.txt", "name\tcount\nAI\t12.5\n")

	_, err := LoadTopics(dir)
	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("expected FieldError, got %T: %v", err, err)
	}
}

func TestLoadRejectsNegativeCount(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "type.txt", "name\tcount\nPreprint\t-3\n")

	_, err := LoadTypes(dir)
	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("expected FieldError, got %T: %v", err, err)
	}
	if fieldErr.Reason != "must not be negative" {
		t.Fatalf("unexpected reason: %q", fieldErr.Reason)
	}
}

func TestLoadRejectsEmptyName(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "institution.txt", "name\tcount\tcountry\n\t4520\tUSA\n")

	_, err := LoadInstitutions(dir)
	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("expected FieldError, got %T: %v", err, err)
	}
	if fieldErr.Column != "name" {
		t.Fatalf("expected name column, got %q", fieldErr.Column)
	}
}

func TestLoadStopsAtFirstBadRow(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "topic.txt", "name\tcount\nAI\t120\nBiology\tbad\nPhysics\t80\n")

	_, err := LoadTopics(dir)
	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("expected FieldError, got %T: %v", err, err)
	}
	if fieldErr.Line != 3 {
		t.Fatalf("expected failure at line 3, got %d", fieldErr.Line)
	}
}
