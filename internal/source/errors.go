package source

import (
	"fmt"
	"strings"
)

// SchemaError reports mandatory columns missing from an uploaded file.
// It blocks all downstream computation for that file only; other files
// and dashboards are unaffected.
type SchemaError struct {
	File    string
	Kind    FileKind
	Missing []string
}

// Error names every missing column so the user can fix the export.
func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s file %s missing required columns: %s",
		e.Kind, e.File, strings.Join(e.Missing, ", "))
}

// newSchemaError builds a SchemaError for the given file and columns.
func newSchemaError(path string, kind FileKind, missing []string) *SchemaError {
	return &SchemaError{File: path, Kind: kind, Missing: missing}
}
