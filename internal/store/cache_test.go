package store

import (
	"encoding/json"
	"testing"
)

func TestReplaceBuildsBothViews(t *testing.T) {
	cache := NewCache()
	headers := []string{"ID", "Status", "Setor Responsável"}
	rows := [][]string{
		{"1", "Ativo", "TI, RH"},
		{"1", "Ativo", "TI"},
		{"", "Em Revisão", "RH"},
	}

	snapshot, replaced := cache.Replace(headers, rows)
	if !replaced {
		t.Fatal("expected cache replacement")
	}
	if len(snapshot.Documents) != 3 {
		t.Fatalf("search view has %d rows, want 3", len(snapshot.Documents))
	}
	if len(snapshot.Unique) != 2 {
		t.Fatalf("stats view has %d documents, want 2", len(snapshot.Unique))
	}
	// first occurrence wins
	if snapshot.Unique[0].SetorResponsavel != "TI, RH" {
		t.Errorf("dedup kept wrong row: %+v", snapshot.Unique[0])
	}
	if snapshot.Unique[1].ID != "sheet_3" {
		t.Errorf("second unique id = %q, want sheet_3", snapshot.Unique[1].ID)
	}
	if !snapshot.Synced() {
		t.Error("replaced snapshot should report as synced")
	}
}

func TestReplaceDedupInvariant(t *testing.T) {
	cache := NewCache()
	headers := []string{"ID"}
	rows := [][]string{{"a"}, {"b"}, {"a"}, {"c"}, {"b"}}

	snapshot, _ := cache.Replace(headers, rows)
	if len(snapshot.Unique) > len(snapshot.Documents) {
		t.Fatalf("unique view larger than search view: %d > %d",
			len(snapshot.Unique), len(snapshot.Documents))
	}
	if len(snapshot.Unique) != 3 {
		t.Errorf("unique count = %d, want 3", len(snapshot.Unique))
	}

	distinct, _ := cache.Replace(headers, [][]string{{"x"}, {"y"}})
	if len(distinct.Unique) != len(distinct.Documents) {
		t.Errorf("all ids distinct but views differ: %d vs %d",
			len(distinct.Unique), len(distinct.Documents))
	}
}

func TestReplaceEmptyFetchKeepsCache(t *testing.T) {
	cache := NewCache()
	headers := []string{"ID", "Status"}
	populated, _ := cache.Replace(headers, [][]string{{"1", "Ativo"}})

	snapshot, replaced := cache.Replace(nil, nil)
	if replaced {
		t.Fatal("empty fetch must not replace the cache")
	}
	if snapshot != populated {
		t.Error("empty fetch returned a different generation")
	}
	if current := cache.Current(); current != populated {
		t.Error("cache generation changed after empty fetch")
	}
	if !populated.LastSync.Equal(cache.Current().LastSync) {
		t.Error("lastSync changed after empty fetch")
	}
}

func TestEmptyCacheBeforeFirstSync(t *testing.T) {
	cache := NewCache()
	snapshot := cache.Current()
	if snapshot == nil {
		t.Fatal("Current returned nil")
	}
	if snapshot.Synced() {
		t.Error("never-synced snapshot reports as synced")
	}
	if len(snapshot.Documents) != 0 || len(snapshot.Unique) != 0 {
		t.Errorf("fresh cache not empty: %+v", snapshot)
	}
}

func TestDocumentMarshalFlattensExtra(t *testing.T) {
	doc := Document{
		ID:     "1",
		Titulo: "Norma",
		Extra:  map[string]string{"Coluna Nova": "valor"},
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["Coluna Nova"] != "valor" {
		t.Errorf("extra column missing from payload: %v", decoded)
	}
	if decoded["titulo"] != "Norma" {
		t.Errorf("canonical field missing: %v", decoded)
	}
}
