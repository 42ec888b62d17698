package gdocs

import (
	"os"
	"testing"

	"go.uber.org/zap/zaptest"
)

const sampleDocument = "../testdata/document.json"

func loadSampleDocument(t *testing.T) *Document {
	t.Helper()

	data, err := os.ReadFile(sampleDocument)
	if err != nil {
		t.Fatalf("read sample file: %v", err)
	}
	doc, err := ParseDocument(data, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("parse sample file: %v", err)
	}
	return doc
}

func boolPtr(v bool) *bool { return &v }

func int64Ptr(v int64) *int64 { return &v }

func float64Ptr(v float64) *float64 { return &v }
