package fieldmap

import (
	"strings"

	"github.com/incident-desk/backend/internal/model"
)

// override - camelCase 이름이 클라이언트 규약대로 역변환되지 않는 필드
type override struct {
	Storage string
	Wire    string
}

var outboundOverrides = []override{
	{Storage: model.FieldCreatedAt, Wire: "created_date"},
	{Storage: model.FieldUpdatedAt, Wire: "updated_date"},
}

// sortAliases maps conventional wire sort names to storage fields for every kind.
var sortAliases = map[string]string{
	"created_date": model.FieldCreatedAt,
	"updated_date": model.FieldUpdatedAt,
	"decided_at":   "decidedAt",
}

// SortAlias resolves a conventional wire sort name shared by all kinds.
func SortAlias(wire string) (string, bool) {
	field, ok := sortAliases[wire]
	return field, ok
}

// ToWire converts a storage document to the wire shape. Overridden fields are
// emitted under their override key only, decided by key presence so that
// zero values (0, false, "") survive.
func ToWire(doc model.Document) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		out[SnakeCase(k)] = v
	}
	for _, o := range outboundOverrides {
		v, ok := doc[o.Storage]
		if !ok {
			continue
		}
		delete(out, SnakeCase(o.Storage))
		out[o.Wire] = v
	}
	return out
}

// RecordToWire flattens a record (id and timestamps included) to the wire shape.
func RecordToWire(r model.Record) map[string]any {
	return ToWire(r.Flatten())
}

// SnakeCase inserts an underscore between a lowercase letter or digit and a
// following uppercase letter, maps '-' to '_', and lowercases the result.
func SnakeCase(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '-' {
			b.WriteByte('_')
			continue
		}
		if isUpper(c) && i > 0 && (isLower(s[i-1]) || isDigit(s[i-1])) {
			b.WriteByte('_')
		}
		if isUpper(c) {
			c += 'a' - 'A'
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isLower(c byte) bool { return c >= 'a' && c <= 'z' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }
