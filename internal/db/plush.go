package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/plushdex/backend/internal/model"
)

// character and set are reserved words, so both columns stay quoted
// everywhere they appear.
const plushColumns = `id, "character", variation, "set", releaseyear`

func (db *Postgres) EnsurePlushSchema(ctx context.Context) error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS plushtable (
			id BIGSERIAL PRIMARY KEY,
			"character" TEXT NOT NULL,
			variation TEXT NOT NULL,
			"set" TEXT NOT NULL,
			releaseyear INTEGER NOT NULL
		)
		`,
		`CREATE INDEX IF NOT EXISTS plushtable_character_idx ON plushtable("character")`,
		`CREATE INDEX IF NOT EXISTS plushtable_variation_idx ON plushtable(variation)`,
		`CREATE INDEX IF NOT EXISTS plushtable_set_idx ON plushtable("set")`,
	}

	for _, query := range queries {
		if _, err := db.Pool.Exec(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

func (db *Postgres) ListPlushes(ctx context.Context) ([]model.Plush, error) {
	query := `SELECT ` + plushColumns + ` FROM plushtable ORDER BY id ASC`

	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return scanPlushRows(rows)
}

func (db *Postgres) ListPlushPage(ctx context.Context, skip, limit int) ([]model.Plush, error) {
	query := `SELECT ` + plushColumns + ` FROM plushtable ORDER BY id ASC OFFSET $1 LIMIT $2`

	rows, err := db.Pool.Query(ctx, query, skip, limit)
	if err != nil {
		return nil, err
	}
	return scanPlushRows(rows)
}

func (db *Postgres) GetPlushByID(ctx context.Context, id int64) (*model.Plush, error) {
	query := `SELECT ` + plushColumns + ` FROM plushtable WHERE id = $1`

	var p model.Plush
	err := db.Pool.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Character,
		&p.Variation,
		&p.Set,
		&p.ReleaseYear,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (db *Postgres) CreatePlush(ctx context.Context, req model.CreatePlushRequest) (*model.Plush, error) {
	query := `
		INSERT INTO plushtable ("character", variation, "set", releaseyear)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + plushColumns

	var p model.Plush
	err := db.Pool.QueryRow(ctx, query,
		req.Character,
		req.Variation,
		req.Set,
		*req.ReleaseYear,
	).Scan(
		&p.ID,
		&p.Character,
		&p.Variation,
		&p.Set,
		&p.ReleaseYear,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SearchPlushes runs the count and page queries over one predicate set and
// returns the total match count alongside the requested page.
func (db *Postgres) SearchPlushes(ctx context.Context, req model.SearchRequest) (int, []model.Plush, error) {
	where, args := buildSearchWhere(req)
	return db.countAndPage(ctx, where, args, req.Skip, req.Limit)
}

func (db *Postgres) FilterPlushes(ctx context.Context, req model.FilterRequest) (int, []model.Plush, error) {
	where, args := buildFilterWhere(req)
	return db.countAndPage(ctx, where, args, req.Skip, req.Limit)
}

func (db *Postgres) countAndPage(ctx context.Context, where string, args []any, skip, limit int) (int, []model.Plush, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM plushtable` + where
	if err := db.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return 0, nil, err
	}

	pageQuery := fmt.Sprintf(
		`SELECT %s FROM plushtable%s ORDER BY id ASC OFFSET $%d LIMIT $%d`,
		plushColumns, where, len(args)+1, len(args)+2,
	)
	rows, err := db.Pool.Query(ctx, pageQuery, append(args, skip, limit)...)
	if err != nil {
		return 0, nil, err
	}

	list, err := scanPlushRows(rows)
	if err != nil {
		return 0, nil, err
	}
	return total, list, nil
}

// buildSearchWhere turns the optional search parameters into a WHERE clause
// with positional args. q matches any of the three text columns; the
// per-column parameters each narrow the result further.
func buildSearchWhere(req model.SearchRequest) (string, []any) {
	var conds []string
	var args []any

	if req.Q != "" {
		args = append(args, req.Q)
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			`("character" ILIKE '%%'||$%d||'%%' OR variation ILIKE '%%'||$%d||'%%' OR "set" ILIKE '%%'||$%d||'%%')`,
			n, n, n,
		))
	}
	if req.Character != "" {
		args = append(args, req.Character)
		conds = append(conds, fmt.Sprintf(`"character" ILIKE '%%'||$%d||'%%'`, len(args)))
	}
	if req.Variation != "" {
		args = append(args, req.Variation)
		conds = append(conds, fmt.Sprintf(`variation ILIKE '%%'||$%d||'%%'`, len(args)))
	}
	if req.Set != "" {
		args = append(args, req.Set)
		conds = append(conds, fmt.Sprintf(`"set" ILIKE '%%'||$%d||'%%'`, len(args)))
	}

	return whereClause(conds), args
}

// buildFilterWhere is exact-match: list parameters are set membership and
// the year bounds are inclusive. A nil bound means the parameter was not
// supplied; a zero bound still applies.
func buildFilterWhere(req model.FilterRequest) (string, []any) {
	var conds []string
	var args []any

	if len(req.Characters) > 0 {
		args = append(args, req.Characters)
		conds = append(conds, fmt.Sprintf(`"character" = ANY($%d)`, len(args)))
	}
	if len(req.Variations) > 0 {
		args = append(args, req.Variations)
		conds = append(conds, fmt.Sprintf(`variation = ANY($%d)`, len(args)))
	}
	if len(req.Sets) > 0 {
		args = append(args, req.Sets)
		conds = append(conds, fmt.Sprintf(`"set" = ANY($%d)`, len(args)))
	}
	if req.MinYear != nil {
		args = append(args, *req.MinYear)
		conds = append(conds, fmt.Sprintf(`releaseyear >= $%d`, len(args)))
	}
	if req.MaxYear != nil {
		args = append(args, *req.MaxYear)
		conds = append(conds, fmt.Sprintf(`releaseyear <= $%d`, len(args)))
	}

	return whereClause(conds), args
}

func whereClause(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}

func scanPlushRows(rows pgx.Rows) ([]model.Plush, error) {
	defer rows.Close()

	var list []model.Plush
	for rows.Next() {
		var p model.Plush
		if err := rows.Scan(&p.ID, &p.Character, &p.Variation, &p.Set, &p.ReleaseYear); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if list == nil {
		list = []model.Plush{}
	}
	return list, nil
}
