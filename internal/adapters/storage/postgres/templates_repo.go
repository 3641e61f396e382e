package postgres

import (
	"context"
	"database/sql"
	"strings"

	"cattle-scoring/internal/domain/templates"
)

type TemplatesRepo struct {
	db *sql.DB
}

func NewTemplatesRepo(db *sql.DB) *TemplatesRepo {
	return &TemplatesRepo{db: db}
}

func (r *TemplatesRepo) CreateCategory(ctx context.Context, c templates.Category) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO score_categories (id, breed_id, name, weight, ideal_total, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`,
		c.ID,
		c.BreedID,
		c.Name,
		c.Weight,
		c.IdealTotal,
		c.CreatedAt,
	)
	return err
}

func (r *TemplatesRepo) GetCategory(ctx context.Context, id string) (templates.Category, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return templates.Category{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, breed_id, name, weight, ideal_total, created_at
		FROM score_categories
		WHERE id = $1
	`, id)

	var c templates.Category
	if err := row.Scan(&c.ID, &c.BreedID, &c.Name, &c.Weight, &c.IdealTotal, &c.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return templates.Category{}, ErrNotFound
		}
		return templates.Category{}, err
	}
	return c, nil
}

func (r *TemplatesRepo) ListCategoriesByBreed(ctx context.Context, breedID string) ([]templates.Category, error) {
	breedID = strings.TrimSpace(breedID)
	if breedID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, breed_id, name, weight, ideal_total, created_at
		FROM score_categories
		WHERE breed_id = $1
		ORDER BY weight DESC, name ASC
	`, breedID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]templates.Category, 0)
	for rows.Next() {
		var c templates.Category
		if err := rows.Scan(&c.ID, &c.BreedID, &c.Name, &c.Weight, &c.IdealTotal, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *TemplatesRepo) CreateCharacteristic(ctx context.Context, ch templates.Characteristic) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO characteristics (id, category_id, name, ideal_score, range_min, range_max)
		VALUES ($1,$2,$3,$4,$5,$6)
	`,
		ch.ID,
		ch.CategoryID,
		ch.Name,
		ch.IdealScore,
		ch.RangeMin,
		ch.RangeMax,
	)
	return err
}

func (r *TemplatesRepo) GetCharacteristic(ctx context.Context, id string) (templates.Characteristic, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return templates.Characteristic{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, category_id, name, ideal_score, range_min, range_max
		FROM characteristics
		WHERE id = $1
	`, id)

	var ch templates.Characteristic
	if err := row.Scan(&ch.ID, &ch.CategoryID, &ch.Name, &ch.IdealScore, &ch.RangeMin, &ch.RangeMax); err != nil {
		if err == sql.ErrNoRows {
			return templates.Characteristic{}, ErrNotFound
		}
		return templates.Characteristic{}, err
	}
	return ch, nil
}

func (r *TemplatesRepo) ListCharacteristicsByCategory(ctx context.Context, categoryID string) ([]templates.Characteristic, error) {
	categoryID = strings.TrimSpace(categoryID)
	if categoryID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, category_id, name, ideal_score, range_min, range_max
		FROM characteristics
		WHERE category_id = $1
		ORDER BY name ASC
	`, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]templates.Characteristic, 0)
	for rows.Next() {
		var ch templates.Characteristic
		if err := rows.Scan(&ch.ID, &ch.CategoryID, &ch.Name, &ch.IdealScore, &ch.RangeMin, &ch.RangeMax); err != nil {
			return nil, err
		}
		out = append(out, ch)
	}
	return out, rows.Err()
}

func (r *TemplatesRepo) DeleteByBreed(ctx context.Context, breedID string) error {
	// Las características caen por el ON DELETE CASCADE de category_id.
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM score_categories WHERE breed_id = $1
	`, strings.TrimSpace(breedID))
	return err
}
