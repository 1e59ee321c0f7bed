package db

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/incident-desk/backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const maxListLimit = 500

// Postgres - 엔티티 종류별 테이블(id, data JSONB, created_at, updated_at)에 문서를 저장
type Postgres struct {
	Pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{Pool: pool}
}

// EnsureSchema - 테이블이 없으면 생성
func (db *Postgres) EnsureSchema(ctx context.Context, tables []string) error {
	for _, table := range tables {
		ident := pgx.Identifier{table}.Sanitize()
		queries := []string{
			fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id TEXT PRIMARY KEY,
				data JSONB NOT NULL DEFAULT '{}',
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)
			`, ident),
			fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s(created_at DESC)`,
				pgx.Identifier{table + "_created_at_idx"}.Sanitize(), ident),
			fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s(updated_at DESC)`,
				pgx.Identifier{table + "_updated_at_idx"}.Sanitize(), ident),
			fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s((data->>'incidentId')) WHERE data ? 'incidentId'`,
				pgx.Identifier{table + "_incident_id_idx"}.Sanitize(), ident),
		}
		for _, query := range queries {
			if _, err := db.Pool.Exec(ctx, query); err != nil {
				return fmt.Errorf("failed to ensure table %s: %w", table, err)
			}
		}
	}
	return nil
}

func (db *Postgres) List(ctx context.Context, table string, q model.ListQuery) ([]model.Record, error) {
	query, args := buildListQuery(table, q)

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	list := []model.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", table, err)
		}
		list = append(list, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func (db *Postgres) Get(ctx context.Context, table, id string) (model.Record, error) {
	query := fmt.Sprintf(`
		SELECT id, data, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, pgx.Identifier{table}.Sanitize())

	rec, err := scanRecord(db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if IsNoRows(err) {
			return model.Record{}, ErrNotFound
		}
		return model.Record{}, err
	}
	return rec, nil
}

func (db *Postgres) Create(ctx context.Context, table string, doc model.Document) (model.Record, error) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return model.Record{}, fmt.Errorf("failed to marshal document: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, data, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING id, data, created_at, updated_at
	`, pgx.Identifier{table}.Sanitize())

	return scanRecord(db.Pool.QueryRow(ctx, query, uuid.NewString(), payload))
}

// Update merges the document into the stored one at the top level.
func (db *Postgres) Update(ctx context.Context, table, id string, doc model.Document) (model.Record, error) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return model.Record{}, fmt.Errorf("failed to marshal document: %w", err)
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET data = data || $2::jsonb, updated_at = NOW()
		WHERE id = $1
		RETURNING id, data, created_at, updated_at
	`, pgx.Identifier{table}.Sanitize())

	rec, err := scanRecord(db.Pool.QueryRow(ctx, query, id, payload))
	if err != nil {
		if IsNoRows(err) {
			return model.Record{}, ErrNotFound
		}
		return model.Record{}, err
	}
	return rec, nil
}

func (db *Postgres) Delete(ctx context.Context, table, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, pgx.Identifier{table}.Sanitize())

	tag, err := db.Pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// buildListQuery - 필드 이름은 registry에서 검증된 값이지만 SQL에는 모두 파라미터로 전달
func buildListQuery(table string, q model.ListQuery) (string, []any) {
	var (
		sb    strings.Builder
		args  []any
		conds []string
	)
	fmt.Fprintf(&sb, "SELECT id, data, created_at, updated_at FROM %s", pgx.Identifier{table}.Sanitize())

	for _, f := range q.Filters {
		if f.Field == model.FieldID {
			args = append(args, f.Value)
			conds = append(conds, fmt.Sprintf("id = $%d", len(args)))
			continue
		}
		args = append(args, f.Field, f.Value)
		conds = append(conds, fmt.Sprintf("data ->> $%d::text = $%d", len(args)-1, len(args)))
	}
	if len(conds) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conds, " AND "))
	}

	if q.Sort != nil {
		dir := "ASC"
		if q.Sort.Descending {
			dir = "DESC"
		}
		switch q.Sort.Field {
		case model.FieldID:
			fmt.Fprintf(&sb, " ORDER BY id %s", dir)
		case model.FieldCreatedAt:
			fmt.Fprintf(&sb, " ORDER BY created_at %s, id %s", dir, dir)
		case model.FieldUpdatedAt:
			fmt.Fprintf(&sb, " ORDER BY updated_at %s, id %s", dir, dir)
		default:
			args = append(args, q.Sort.Field)
			fmt.Fprintf(&sb, " ORDER BY data -> $%d::text %s NULLS LAST, created_at %s", len(args), dir, dir)
		}
	}

	if limit := clampLimit(q.Limit); limit > 0 {
		args = append(args, limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}
	return sb.String(), args
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return 0
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

func scanRecord(row pgx.Row) (model.Record, error) {
	var (
		rec  model.Record
		data []byte
	)
	if err := row.Scan(&rec.ID, &data, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return model.Record{}, err
	}
	rec.Data = model.Document{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &rec.Data); err != nil {
			return model.Record{}, fmt.Errorf("failed to unmarshal document: %w", err)
		}
	}
	return rec, nil
}
