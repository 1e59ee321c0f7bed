package service

import (
	"context"
	"errors"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/incident-desk/backend/internal/db"
	"github.com/incident-desk/backend/internal/fieldmap"
	"github.com/incident-desk/backend/internal/model"
	"github.com/incident-desk/backend/internal/registry"
)

const (
	sortParam  = "_sort"
	limitParam = "_limit"
	maxLimit   = 500
)

// RecordStore - db.Postgres, db.Memory 공통 인터페이스
type RecordStore interface {
	List(ctx context.Context, table string, q model.ListQuery) ([]model.Record, error)
	Get(ctx context.Context, table, id string) (model.Record, error)
	Create(ctx context.Context, table string, doc model.Document) (model.Record, error)
	Update(ctx context.Context, table, id string, doc model.Document) (model.Record, error)
	Delete(ctx context.Context, table, id string) error
}

// RecordService - registry 기반 generic CRUD dispatcher
// 모든 결과는 wire 스키마(snake_case)로 변환해서 반환한다.
type RecordService struct {
	store RecordStore
}

func NewRecordService(store RecordStore) *RecordService {
	return &RecordService{store: store}
}

func (s *RecordService) List(ctx context.Context, e *registry.Entity, params url.Values) ([]map[string]any, error) {
	q, err := ParseListQuery(e, params)
	if err != nil {
		return nil, err
	}
	records, err := s.store.List(ctx, e.Table, q)
	if err != nil {
		return nil, err
	}
	return toWireList(records), nil
}

func (s *RecordService) Get(ctx context.Context, e *registry.Entity, id string) (map[string]any, error) {
	rec, err := s.store.Get(ctx, e.Table, id)
	if err != nil {
		return nil, storeError(err)
	}
	return fieldmap.RecordToWire(rec), nil
}

// Create maps the body through the entity's field table (defaults applied)
// and stamps the creator field when the client did not supply one.
func (s *RecordService) Create(ctx context.Context, e *registry.Entity, body map[string]any, userID string) (map[string]any, error) {
	doc, err := fieldmap.Inbound(e.Fields, body, fieldmap.ModeCreate)
	if err != nil {
		return nil, validationError("%v", err)
	}
	if e.CreatorField != "" && doc[e.CreatorField] == nil && userID != "" {
		doc[e.CreatorField] = userID
	}
	rec, err := s.store.Create(ctx, e.Table, doc)
	if err != nil {
		return nil, err
	}
	return fieldmap.RecordToWire(rec), nil
}

// Update overwrites only the fields present in the body.
func (s *RecordService) Update(ctx context.Context, e *registry.Entity, id string, body map[string]any) (map[string]any, error) {
	doc, err := fieldmap.Inbound(e.Fields, body, fieldmap.ModeUpdate)
	if err != nil {
		return nil, validationError("%v", err)
	}
	rec, err := s.store.Update(ctx, e.Table, id, doc)
	if err != nil {
		return nil, storeError(err)
	}
	return fieldmap.RecordToWire(rec), nil
}

func (s *RecordService) Delete(ctx context.Context, e *registry.Entity, id string) error {
	return storeError(s.store.Delete(ctx, e.Table, id))
}

// ParseListQuery reads `_sort`, `_limit` and the entity's equality filters.
//
//	_sort=-created_date  → createdAt DESC
//	_sort=severity       → severity ASC
//	_sort=+severity      → severity ASC
func ParseListQuery(e *registry.Entity, params url.Values) (model.ListQuery, error) {
	var q model.ListQuery

	keys := make([]string, 0, len(e.Filters))
	for key := range e.Filters {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		value := params.Get(key)
		if value == "" {
			continue
		}
		q.Filters = append(q.Filters, model.Filter{Field: e.Filters[key], Value: value})
	}

	if raw := strings.TrimSpace(params.Get(sortParam)); raw != "" {
		order := &model.SortOrder{}
		name := raw
		switch name[0] {
		case '-':
			order.Descending = true
			name = name[1:]
		case '+':
			name = name[1:]
		}
		field, ok := e.SortField(name)
		if !ok {
			return model.ListQuery{}, validationError("Unknown sort field: %s", name)
		}
		order.Field = field
		q.Sort = order
	}

	if raw := strings.TrimSpace(params.Get(limitParam)); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return model.ListQuery{}, validationError("Invalid %s: %s", limitParam, raw)
		}
		if limit > maxLimit {
			limit = maxLimit
		}
		q.Limit = limit
	}
	return q, nil
}

func storeError(err error) error {
	if errors.Is(err, db.ErrNotFound) {
		return notFoundError("Not found")
	}
	return err
}

func toWireList(records []model.Record) []map[string]any {
	out := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		out = append(out, fieldmap.RecordToWire(rec))
	}
	return out
}
