package export

import (
	"strings"
	"testing"
	"time"

	"gdex/config"
	"gdex/gdocs"
)

func TestExpandTemplate(t *testing.T) {
	doc := &gdocs.Document{DocumentID: "doc-1", Title: "My Document"}

	tests := []struct {
		name  string
		field string
		want  string
	}{
		{"title", "{{ .Title }}", "My Document"},
		{"combined", "{{ .Title }}-{{ .ID }}", "My Document-doc-1"},
		{"sprig_function", "{{ .Title | upper }}", "MY DOCUMENT"},
		{"date", "{{ .Date }}", time.Now().Format("2006-01-02")},
		{"context", "{{ .Context }}", string(config.OutputNameTemplateFieldName)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandTemplate(doc, config.OutputNameTemplateFieldName, tt.field)
			if err != nil {
				t.Fatalf("expandTemplate(%q): %v", tt.field, err)
			}
			if got != tt.want {
				t.Errorf("expandTemplate(%q) = %q, want %q", tt.field, got, tt.want)
			}
		})
	}
}

func TestExpandTemplateErrors(t *testing.T) {
	doc := &gdocs.Document{DocumentID: "doc-1", Title: "My Document"}

	if _, err := expandTemplate(doc, config.OutputNameTemplateFieldName, "{{ .Title"); err == nil {
		t.Error("unparseable template should fail")
	} else if !strings.Contains(err.Error(), string(config.OutputNameTemplateFieldName)) {
		t.Errorf("parse error %q does not name the offending field", err)
	}
	if _, err := expandTemplate(doc, config.OutputNameTemplateFieldName, "{{ .Missing }}"); err == nil {
		t.Error("unknown variable should fail expansion")
	}
}
