package model

import "time"

// ============================================================================
// 저장 계층 문서 모델
// ============================================================================

// Document - storage 스키마(camelCase 키)의 엔티티 필드 묶음
// id, createdAt, updatedAt은 Record가 따로 보관하며 Document에는 넣지 않는다.
type Document map[string]any

// Record - 저장된 엔티티 한 건
type Record struct {
	ID        string
	Data      Document
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Storage 스키마의 공통 필드 이름
const (
	FieldID        = "id"
	FieldCreatedAt = "createdAt"
	FieldUpdatedAt = "updatedAt"
)

// Flatten returns the storage-shaped view of the record, identity and
// timestamps included.
func (r Record) Flatten() Document {
	out := make(Document, len(r.Data)+3)
	for k, v := range r.Data {
		out[k] = v
	}
	out[FieldID] = r.ID
	out[FieldCreatedAt] = r.CreatedAt
	out[FieldUpdatedAt] = r.UpdatedAt
	return out
}

// Get returns a storage field, including the identity/timestamp columns.
func (r Record) Get(field string) (any, bool) {
	switch field {
	case FieldID:
		return r.ID, true
	case FieldCreatedAt:
		return r.CreatedAt, true
	case FieldUpdatedAt:
		return r.UpdatedAt, true
	}
	v, ok := r.Data[field]
	return v, ok
}

// String returns a string field or "" when absent or not a string.
func (r Record) String(field string) string {
	v, _ := r.Get(field)
	s, _ := v.(string)
	return s
}

// Filter - storage 필드 단순 일치 조건
type Filter struct {
	Field string
	Value string
}

// SortOrder - 정렬 조건 (Field는 storage 필드 이름)
type SortOrder struct {
	Field      string
	Descending bool
}

// ListQuery - 목록 조회 조건
type ListQuery struct {
	Filters []Filter
	Sort    *SortOrder
	Limit   int
}
