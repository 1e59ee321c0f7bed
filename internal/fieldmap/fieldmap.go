// Package fieldmap translates between the wire schema (snake_case JSON keys)
// and the storage schema (camelCase document fields).
//
// 요청 방향(inbound)은 엔티티별 필드 테이블로만 매핑하고,
// 응답 방향(outbound)은 일반 camelCase → snake_case 변환 후 override 테이블을 적용한다.
package fieldmap

import (
	"errors"
	"fmt"

	"github.com/incident-desk/backend/internal/model"
)

// ErrInvalidValue is returned when a recognized field carries a value that
// cannot be coerced (e.g. an unparsable timestamp).
var ErrInvalidValue = errors.New("invalid field value")

type Coerce int

const (
	CoerceNone Coerce = iota
	// 숫자 또는 숫자 문자열, 그 외는 0
	CoerceNumber
	// nil은 nil 유지, 숫자가 아니면 nil
	CoerceNullableNumber
	// RFC3339 문자열 또는 epoch millis, 빈 값은 nil
	CoerceTime
)

// Field describes one storage field and the request keys it is read from.
type Field struct {
	Storage string
	// Wire[0] is the canonical snake_case key; the rest are accepted fallbacks.
	Wire    []string
	Default any
	Coerce  Coerce
}

// WireName returns the canonical request/response key for the field.
func (f Field) WireName() string {
	if len(f.Wire) == 0 {
		return SnakeCase(f.Storage)
	}
	return f.Wire[0]
}

type Mode int

const (
	// ModeCreate applies defaults for every field the body does not carry.
	ModeCreate Mode = iota
	// ModeUpdate only maps fields the body carries.
	ModeUpdate
)

// Inbound builds a storage document from a request body using the field table.
// Keys not present in the table are dropped.
func Inbound(fields []Field, body map[string]any, mode Mode) (model.Document, error) {
	doc := make(model.Document, len(fields))
	for _, f := range fields {
		if mode == ModeUpdate && !anyKeyPresent(body, f.Wire) {
			continue
		}
		value, _ := Pick(body, f.Wire...)
		if value == nil {
			value = f.Default
		}

		coerced, err := coerce(f, value)
		if err != nil {
			return nil, err
		}
		doc[f.Storage] = coerced
	}
	return doc, nil
}

// Pick returns the first non-nil value among keys, mirroring a `a ?? b` chain.
func Pick(body map[string]any, keys ...string) (any, bool) {
	for _, key := range keys {
		if v, ok := body[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func anyKeyPresent(body map[string]any, keys []string) bool {
	for _, key := range keys {
		if _, ok := body[key]; ok {
			return true
		}
	}
	return false
}

func coerce(f Field, value any) (any, error) {
	switch f.Coerce {
	case CoerceNumber:
		if n, ok := Number(value); ok {
			return n, nil
		}
		return float64(0), nil
	case CoerceNullableNumber:
		if value == nil {
			return nil, nil
		}
		if n, ok := Number(value); ok {
			return n, nil
		}
		return nil, nil
	case CoerceTime:
		t, err := Time(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidValue, f.WireName(), err)
		}
		if t == nil {
			return nil, nil
		}
		return FormatTime(*t), nil
	default:
		return value, nil
	}
}

// StorageName resolves a wire key (canonical or fallback spelling) or a
// storage name to the storage field name.
func StorageName(fields []Field, key string) (string, bool) {
	for _, f := range fields {
		if f.Storage == key {
			return f.Storage, true
		}
		for _, w := range f.Wire {
			if w == key {
				return f.Storage, true
			}
		}
	}
	return "", false
}
