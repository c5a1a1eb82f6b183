package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/wiseio/paratext/internal/column"
)

func TestLoadMissingSidecarReturnsEmptyProfile(t *testing.T) {
	dir := t.TempDir()
	csv := filepath.Join(dir, "data.csv")

	p, err := Load(csv)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Columns) != 0 || len(p.Entries) != 0 {
		t.Fatalf("expected an empty profile, got %+v", p)
	}
}

func TestForceSemanticsRoundTripsThroughSave(t *testing.T) {
	dir := t.TempDir()
	csv := filepath.Join(dir, "data.csv")

	p, err := Load(csv)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.ForceSemantics("zip_code", column.SemanticsText); err != nil {
		t.Fatal(err)
	}
	if err := p.Save(); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(sidecarPath(csv)); err != nil {
		t.Fatalf("expected sidecar file to exist: %v", err)
	}

	loaded, err := Load(csv)
	if err != nil {
		t.Fatal(err)
	}
	semantics, ok := loaded.ForcedSemantics("zip_code")
	if !ok {
		t.Fatal("expected zip_code to carry a forced semantics after reload")
	}
	if semantics != column.SemanticsText {
		t.Fatalf("expected Text, got %v", semantics)
	}
}

func TestForceSemanticsRejectsUnknown(t *testing.T) {
	p, _ := Load(filepath.Join(t.TempDir(), "data.csv"))
	if err := p.ForceSemantics("x", column.SemanticsUnknown); err == nil {
		t.Fatal("expected an error forcing a column to Unknown semantics")
	}
}

func TestRecordAndRecallInferredKind(t *testing.T) {
	dir := t.TempDir()
	csv := filepath.Join(dir, "data.csv")

	p, _ := Load(csv)
	p.RecordInferredKind("age", column.KindInt16)
	if err := p.Save(); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(csv)
	if err != nil {
		t.Fatal(err)
	}
	kind, ok := loaded.InferredKind("age")
	if !ok {
		t.Fatal("expected a cached kind for age after reload")
	}
	if kind != column.KindInt16 {
		t.Fatalf("expected Int16, got %v", kind)
	}
}

func TestInferredKindAbsentByDefault(t *testing.T) {
	p, _ := Load(filepath.Join(t.TempDir(), "data.csv"))
	if _, ok := p.InferredKind("nonexistent"); ok {
		t.Fatal("expected no cached kind for a column never recorded")
	}
}

func TestForceSemanticsAndRecordInferredKindShareOneColumnEntry(t *testing.T) {
	dir := t.TempDir()
	csv := filepath.Join(dir, "data.csv")
	p, _ := Load(csv)

	if err := p.ForceSemantics("status", column.SemanticsCategorical); err != nil {
		t.Fatal(err)
	}
	p.RecordInferredKind("status", column.KindCategorical)

	if len(p.Columns) != 1 || p.Columns[0] != "status" {
		t.Fatalf("expected exactly one tracked column, got %v", p.Columns)
	}
	semantics, ok := p.ForcedSemantics("status")
	if !ok || semantics != column.SemanticsCategorical {
		t.Fatal("expected forced semantics to survive alongside the inferred kind")
	}
	kind, ok := p.InferredKind("status")
	if !ok || kind != column.KindCategorical {
		t.Fatal("expected inferred kind to survive alongside the forced semantics")
	}
}
