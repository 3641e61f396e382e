package postgres

import (
	"context"
	"database/sql"
	"strings"

	"cattle-scoring/internal/domain/breeds"
)

type BreedsRepo struct {
	db *sql.DB
}

func NewBreedsRepo(db *sql.DB) *BreedsRepo {
	return &BreedsRepo{db: db}
}

func (r *BreedsRepo) Create(ctx context.Context, b breeds.Breed) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO breeds (
			id, name,
			weight_min, weight_max, ideal_height,
			coat_colors,
			created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		b.ID,
		b.Name,
		toNullFloat(b.WeightMin),
		toNullFloat(b.WeightMax),
		toNullFloat(b.IdealHeight),
		strings.Join(b.CoatColors, ","),
		b.CreatedAt,
	)
	return err
}

func (r *BreedsRepo) GetByID(ctx context.Context, id string) (breeds.Breed, error) {
	return r.getBy(ctx, "id", id)
}

func (r *BreedsRepo) GetByName(ctx context.Context, name string) (breeds.Breed, error) {
	return r.getBy(ctx, "name", name)
}

func (r *BreedsRepo) getBy(ctx context.Context, column, value string) (breeds.Breed, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return breeds.Breed{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, weight_min, weight_max, ideal_height, coat_colors, created_at
		FROM breeds
		WHERE `+column+` = $1
	`, value)

	b, err := scanBreed(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return breeds.Breed{}, ErrNotFound
		}
		return breeds.Breed{}, err
	}
	return b, nil
}

func (r *BreedsRepo) List(ctx context.Context) ([]breeds.Breed, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, weight_min, weight_max, ideal_height, coat_colors, created_at
		FROM breeds
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]breeds.Breed, 0)
	for rows.Next() {
		b, err := scanBreed(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *BreedsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM breeds WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanBreed(scan func(dest ...any) error) (breeds.Breed, error) {
	var b breeds.Breed
	var wmin, wmax, height sql.NullFloat64
	var colors string

	if err := scan(&b.ID, &b.Name, &wmin, &wmax, &height, &colors, &b.CreatedAt); err != nil {
		return breeds.Breed{}, err
	}

	b.WeightMin = fromNullFloat(wmin)
	b.WeightMax = fromNullFloat(wmax)
	b.IdealHeight = fromNullFloat(height)
	if colors != "" {
		b.CoatColors = strings.Split(colors, ",")
	}
	return b, nil
}
