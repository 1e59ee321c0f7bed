package db

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/incident-desk/backend/internal/model"
)

// Memory - 프로세스 메모리에 레코드를 보관하는 저장소 (데모 모드, 테스트용)
// 문서는 JSON 왕복으로 복사해 Postgres JSONB 저장과 같은 값 형태를 유지한다.
type Memory struct {
	mu     sync.RWMutex
	tables map[string]map[string]model.Record
	now    func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		tables: make(map[string]map[string]model.Record),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (m *Memory) EnsureSchema(_ context.Context, tables []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, table := range tables {
		if _, ok := m.tables[table]; !ok {
			m.tables[table] = make(map[string]model.Record)
		}
	}
	return nil
}

func (m *Memory) List(_ context.Context, table string, q model.ListQuery) ([]model.Record, error) {
	m.mu.RLock()
	rows := m.tables[table]
	list := make([]model.Record, 0, len(rows))
	for _, rec := range rows {
		if matchesFilters(rec, q.Filters) {
			list = append(list, rec)
		}
	}
	m.mu.RUnlock()

	if q.Sort != nil {
		field, desc := q.Sort.Field, q.Sort.Descending
		sort.SliceStable(list, func(i, j int) bool {
			a, _ := list[i].Get(field)
			b, _ := list[j].Get(field)
			// null은 정렬 방향과 무관하게 뒤로
			if (a == nil) != (b == nil) {
				return b == nil
			}
			c := compareValues(a, b)
			if c == 0 {
				c = strings.Compare(list[i].ID, list[j].ID)
			}
			if desc {
				return c > 0
			}
			return c < 0
		})
	} else {
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		})
	}

	if limit := clampLimit(q.Limit); limit > 0 && len(list) > limit {
		list = list[:limit]
	}

	out := make([]model.Record, len(list))
	for i, rec := range list {
		out[i] = copyRecord(rec)
	}
	return out, nil
}

func (m *Memory) Get(_ context.Context, table, id string) (model.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.tables[table][id]
	if !ok {
		return model.Record{}, ErrNotFound
	}
	return copyRecord(rec), nil
}

func (m *Memory) Create(_ context.Context, table string, doc model.Document) (model.Record, error) {
	data, err := normalizeDocument(doc)
	if err != nil {
		return model.Record{}, err
	}
	now := m.now()
	rec := model.Record{ID: uuid.NewString(), Data: data, CreatedAt: now, UpdatedAt: now}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.tables[table] == nil {
		m.tables[table] = make(map[string]model.Record)
	}
	m.tables[table][rec.ID] = rec
	return copyRecord(rec), nil
}

func (m *Memory) Update(_ context.Context, table, id string, doc model.Document) (model.Record, error) {
	patch, err := normalizeDocument(doc)
	if err != nil {
		return model.Record{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.tables[table][id]
	if !ok {
		return model.Record{}, ErrNotFound
	}
	merged := make(model.Document, len(rec.Data)+len(patch))
	for k, v := range rec.Data {
		merged[k] = v
	}
	for k, v := range patch {
		merged[k] = v
	}
	rec.Data = merged
	rec.UpdatedAt = m.now()
	m.tables[table][id] = rec
	return copyRecord(rec), nil
}

func (m *Memory) Delete(_ context.Context, table, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tables[table][id]; !ok {
		return ErrNotFound
	}
	delete(m.tables[table], id)
	return nil
}

func normalizeDocument(doc model.Document) (model.Document, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	out := model.Document{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}
	return out, nil
}

func copyRecord(rec model.Record) model.Record {
	data, err := normalizeDocument(rec.Data)
	if err != nil {
		// 저장 시점에 이미 JSON 왕복을 거친 문서라 실패하지 않는다
		data = model.Document{}
	}
	rec.Data = data
	return rec
}

// matchesFilters mirrors `data ->> field = value`: the value is compared
// against the field's JSON text, and null never matches.
func matchesFilters(rec model.Record, filters []model.Filter) bool {
	for _, f := range filters {
		v, ok := rec.Get(f.Field)
		if !ok || v == nil {
			return false
		}
		if jsonText(v) != f.Value {
			return false
		}
	}
	return true
}

func jsonText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.Format(time.RFC3339Nano)
	default:
		raw, _ := json.Marshal(t)
		return string(raw)
	}
}

// compareValues orders values with nil last, numbers numerically, times
// chronologically, and everything else by JSON text.
func compareValues(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}

	if x, ok := a.(float64); ok {
		if y, ok := b.(float64); ok {
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			}
			return 0
		}
	}
	if x, ok := a.(time.Time); ok {
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	}
	if x, ok := a.(bool); ok {
		if y, ok := b.(bool); ok {
			switch {
			case x == y:
				return 0
			case !x:
				return -1
			}
			return 1
		}
	}
	return strings.Compare(jsonText(a), jsonText(b))
}
