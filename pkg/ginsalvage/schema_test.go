package ginsalvage_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deepankarm/jsonsalvage/pkg/ginsalvage"
)

func TestResponseSchema(t *testing.T) {
	s := ginsalvage.ResponseSchema()
	if s.Type != "object" {
		t.Fatalf("type = %q, want object", s.Type)
	}
	for _, name := range []string{"recovered", "value", "warnings"} {
		if _, ok := s.Properties.Get(name); !ok {
			t.Errorf("missing property %q", name)
		}
	}

	warnings, _ := s.Properties.Get("warnings")
	if warnings.Type != "array" || warnings.Items == nil {
		t.Fatalf("warnings schema = %+v", warnings)
	}
	kind, ok := warnings.Items.Properties.Get("kind")
	if !ok {
		t.Fatal("warning items have no kind property")
	}
	if len(kind.Enum) != 7 {
		t.Errorf("kind enum = %v, want 7 kinds", kind.Enum)
	}
}

func TestSchemaHandler(t *testing.T) {
	router := setupRouter()
	req := httptest.NewRequest(http.MethodGet, "/schema", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var doc map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	if doc["title"] != "Recovery response" {
		t.Errorf("title = %v", doc["title"])
	}
	props, ok := doc["properties"].(map[string]any)
	if !ok || props["warnings"] == nil {
		t.Errorf("properties = %v", doc["properties"])
	}
}
