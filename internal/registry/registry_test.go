package registry

import (
	"net/http"
	"reflect"
	"testing"
)

func TestLookupByModelNameAndAlias(t *testing.T) {
	r := Default()
	pairs := map[string]Kind{
		"Incident":             KindIncident,
		"incidents":            KindIncident,
		"Decision":             KindDecision,
		"decisions":            KindDecision,
		"PredictiveAlert":      KindPredictiveAlert,
		"predictions":          KindPredictiveAlert,
		"KnowledgeBaseArticle": KindKnowledgeBaseArticle,
		"articles":             KindKnowledgeBaseArticle,
		"PostIncidentReview":   KindPostIncidentReview,
		"reviews":              KindPostIncidentReview,
		"AuditLog":             KindAuditLog,
		"audit-logs":           KindAuditLog,
		"IncidentAutomation":   KindIncidentAutomation,
		"automations":          KindIncidentAutomation,
	}
	for name, want := range pairs {
		e, ok := r.Lookup(name)
		if !ok || e.Kind != want {
			t.Errorf("Lookup(%q) = %v, %v; want %s", name, e, ok, want)
		}
	}
	if _, ok := r.Lookup("users"); ok {
		t.Fatalf("unknown entity resolved")
	}
	if len(r.Entities()) != 7 {
		t.Fatalf("expected 7 entities, got %d", len(r.Entities()))
	}
}

func TestMethods(t *testing.T) {
	e := Default().MustKind(KindAuditLog)
	if got := e.CollectionMethods(); !reflect.DeepEqual(got, []string{http.MethodGet, http.MethodPost}) {
		t.Fatalf("collection methods = %v", got)
	}
	want := []string{http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete}
	if got := e.ItemMethods(); !reflect.DeepEqual(got, want) {
		t.Fatalf("item methods = %v", got)
	}

	readOnly := &Entity{Kind: "ReadOnly", Ops: []Operation{OpList, OpGet}}
	if got := readOnly.ItemMethods(); !reflect.DeepEqual(got, []string{http.MethodGet}) {
		t.Fatalf("read-only item methods = %v", got)
	}
}

func TestSortField(t *testing.T) {
	r := Default()
	incident := r.MustKind(KindIncident)
	decision := r.MustKind(KindDecision)

	tests := []struct {
		entity *Entity
		in     string
		want   string
		ok     bool
	}{
		{incident, "created_date", "createdAt", true},
		{incident, "updated_date", "updatedAt", true},
		{incident, "severity", "severity", true},
		{incident, "affected_systems", "affectedSystems", true},
		{incident, "decided_at", "", false},
		{decision, "decided_at", "decidedAt", true},
		{incident, "drop table", "", false},
	}
	for _, tt := range tests {
		got, ok := tt.entity.SortField(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("%s.SortField(%q) = %q, %v; want %q, %v", tt.entity.Kind, tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
