package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/incident-desk/backend/internal/model"
)

func TestMemoryCRUD(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	created, err := store.Create(ctx, "incidents", model.Document{"title": "DB outage", "severity": "P1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" || created.CreatedAt.IsZero() {
		t.Fatalf("created record missing id or timestamp: %+v", created)
	}

	got, err := store.Get(ctx, "incidents", created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.String("title") != "DB outage" {
		t.Fatalf("title = %q", got.String("title"))
	}

	updated, err := store.Update(ctx, "incidents", created.ID, model.Document{"status": "resolved"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.String("title") != "DB outage" || updated.String("status") != "resolved" {
		t.Fatalf("update should merge, got %v", updated.Data)
	}

	if err := store.Delete(ctx, "incidents", created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, "incidents", created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := store.Delete(ctx, "incidents", created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
	if _, err := store.Update(ctx, "incidents", "missing", model.Document{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update, got %v", err)
	}
}

func TestMemoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	rec, _ := store.Create(ctx, "incidents", model.Document{"title": "a"})

	rec.Data["title"] = "mutated"
	got, _ := store.Get(ctx, "incidents", rec.ID)
	if got.String("title") != "a" {
		t.Fatalf("stored document was mutated through returned record")
	}
}

func TestMemoryListFilterSortLimit(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	store.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	seed := []model.Document{
		{"incidentId": "inc-1", "likelihood": 0.2},
		{"incidentId": "inc-1", "likelihood": 0.9},
		{"incidentId": "inc-2", "likelihood": 0.5},
		{"incidentId": "inc-1", "likelihood": nil},
	}
	for _, doc := range seed {
		if _, err := store.Create(ctx, "predictive_alerts", doc); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	list, err := store.List(ctx, "predictive_alerts", model.ListQuery{
		Filters: []model.Filter{{Field: "incidentId", Value: "inc-1"}},
		Sort:    &model.SortOrder{Field: "likelihood", Descending: true},
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 records, got %d", len(list))
	}
	if list[0].Data["likelihood"] != 0.9 || list[1].Data["likelihood"] != 0.2 || list[2].Data["likelihood"] != nil {
		t.Fatalf("unexpected order: %v, %v, %v", list[0].Data, list[1].Data, list[2].Data)
	}

	list, _ = store.List(ctx, "predictive_alerts", model.ListQuery{
		Sort:  &model.SortOrder{Field: model.FieldCreatedAt, Descending: true},
		Limit: 2,
	})
	if len(list) != 2 || list[0].Data["likelihood"] != nil {
		t.Fatalf("expected newest first with limit 2, got %v", list)
	}
}

func TestMemoryFilterMatchesJSONText(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	_, _ = store.Create(ctx, "decisions", model.Document{"confidenceScore": float64(1), "approved": true})

	for _, f := range []model.Filter{
		{Field: "confidenceScore", Value: "1"},
		{Field: "approved", Value: "true"},
	} {
		list, _ := store.List(ctx, "decisions", model.ListQuery{Filters: []model.Filter{f}})
		if len(list) != 1 {
			t.Errorf("filter %+v matched %d records", f, len(list))
		}
	}
}

func TestBuildListQuery(t *testing.T) {
	query, args := buildListQuery("incidents", model.ListQuery{
		Filters: []model.Filter{{Field: "status", Value: "open"}, {Field: model.FieldID, Value: "x"}},
		Sort:    &model.SortOrder{Field: "severity"},
		Limit:   1000,
	})
	want := `SELECT id, data, created_at, updated_at FROM "incidents" WHERE data ->> $1::text = $2 AND id = $3 ORDER BY data -> $4::text ASC NULLS LAST, created_at ASC LIMIT $5`
	if query != want {
		t.Fatalf("query =\n%s\nwant\n%s", query, want)
	}
	if len(args) != 5 || args[4] != maxListLimit {
		t.Fatalf("args = %v", args)
	}
}
