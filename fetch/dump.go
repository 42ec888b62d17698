package fetch

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"gdex/gdocs"
)

var docURLPattern = regexp.MustCompile(`/d/([A-Za-z0-9_-]+)`)

// LoadDump reads a document previously saved as raw API JSON.
func LoadDump(path string, log *zap.Logger) (*gdocs.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read document dump: %w", err)
	}
	return gdocs.ParseDocument(data, log)
}

// DocumentID accepts either a bare document ID or a browser URL of the form
// https://docs.google.com/document/d/<id>/edit and returns the ID.
func DocumentID(s string) string {
	if !strings.Contains(s, "/") {
		return s
	}
	if m := docURLPattern.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return s
}
