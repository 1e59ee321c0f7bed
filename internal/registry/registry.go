// Package registry declares the seven persisted entity kinds: how each is
// addressed on the wire, where it is stored, which operations it allows, and
// how its fields map between wire and storage.
package registry

import (
	"net/http"
	"strings"

	"github.com/incident-desk/backend/internal/fieldmap"
)

type Kind string

const (
	KindIncident             Kind = "Incident"
	KindDecision             Kind = "Decision"
	KindPredictiveAlert      Kind = "PredictiveAlert"
	KindKnowledgeBaseArticle Kind = "KnowledgeBaseArticle"
	KindPostIncidentReview   Kind = "PostIncidentReview"
	KindAuditLog             Kind = "AuditLog"
	KindIncidentAutomation   Kind = "IncidentAutomation"
)

type Operation string

const (
	OpList   Operation = "list"
	OpCreate Operation = "create"
	OpGet    Operation = "get"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

var allOperations = []Operation{OpList, OpCreate, OpGet, OpUpdate, OpDelete}

// Entity - {wire 이름, storage kind, 허용 연산, 필드 매핑} 묶음
type Entity struct {
	Kind  Kind
	Alias string
	Table string
	Ops   []Operation
	// Fields drives both inbound mapping and sort-field resolution.
	Fields []fieldmap.Field
	// Filters maps list query parameters to storage fields.
	Filters map[string]string
	// CreatorField is stamped with the resolved user id on create when the
	// client did not supply a value. Empty means no stamping.
	CreatorField string
}

func (e *Entity) Allows(op Operation) bool {
	for _, o := range e.Ops {
		if o == op {
			return true
		}
	}
	return false
}

// CollectionMethods lists the HTTP methods allowed on /<entity>.
func (e *Entity) CollectionMethods() []string {
	var methods []string
	if e.Allows(OpList) {
		methods = append(methods, http.MethodGet)
	}
	if e.Allows(OpCreate) {
		methods = append(methods, http.MethodPost)
	}
	return methods
}

// ItemMethods lists the HTTP methods allowed on /<entity>/<id>.
func (e *Entity) ItemMethods() []string {
	var methods []string
	if e.Allows(OpGet) {
		methods = append(methods, http.MethodGet)
	}
	if e.Allows(OpUpdate) {
		methods = append(methods, http.MethodPut, http.MethodPatch)
	}
	if e.Allows(OpDelete) {
		methods = append(methods, http.MethodDelete)
	}
	return methods
}

// SortField resolves a `_sort` field name (without direction prefix) to a
// storage field of this entity.
func (e *Entity) SortField(name string) (string, bool) {
	if field, ok := fieldmap.SortAlias(name); ok {
		if field == "decidedAt" && e.Kind != KindDecision {
			return "", false
		}
		return field, true
	}
	switch name {
	case "id", "createdAt", "updatedAt":
		return name, true
	}
	return fieldmap.StorageName(e.Fields, name)
}

// Registry resolves model names and aliases to entities.
type Registry struct {
	entities []*Entity
	byName   map[string]*Entity
}

func New(entities ...*Entity) *Registry {
	r := &Registry{byName: make(map[string]*Entity, len(entities)*2)}
	for _, e := range entities {
		r.entities = append(r.entities, e)
		r.byName[string(e.Kind)] = e
		if e.Alias != "" {
			r.byName[e.Alias] = e
		}
	}
	return r
}

// Lookup accepts either the storage model name ("Incident") or the REST
// alias ("incidents").
func (r *Registry) Lookup(name string) (*Entity, bool) {
	e, ok := r.byName[strings.TrimSpace(name)]
	return e, ok
}

// MustKind returns the entity registered for kind and panics otherwise.
func (r *Registry) MustKind(kind Kind) *Entity {
	e, ok := r.byName[string(kind)]
	if !ok {
		panic("registry: unknown kind " + string(kind))
	}
	return e
}

func (r *Registry) Entities() []*Entity {
	return append([]*Entity(nil), r.entities...)
}
