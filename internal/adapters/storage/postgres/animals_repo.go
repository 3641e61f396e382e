package postgres

import (
	"context"
	"database/sql"
	"strings"

	"cattle-scoring/internal/domain/animals"
)

type AnimalsRepo struct {
	db *sql.DB
}

func NewAnimalsRepo(db *sql.DB) *AnimalsRepo {
	return &AnimalsRepo{db: db}
}

const animalColumns = `
	id, tag, name, breed_id, birth_date,
	weight, height, photo_url,
	score_total, last_score_date,
	created_at, updated_at
`

func (r *AnimalsRepo) Create(ctx context.Context, a animals.Animal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO animals (`+animalColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		a.ID,
		a.Tag,
		a.Name,
		a.BreedID,
		a.BirthDate,
		toNullFloat(a.Weight),
		toNullFloat(a.Height),
		a.PhotoURL,
		toNullFloat(a.ScoreTotal),
		toNullTime(a.LastScoreDate),
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

func (r *AnimalsRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	return r.getBy(ctx, "id", id)
}

func (r *AnimalsRepo) GetByTag(ctx context.Context, tag string) (animals.Animal, error) {
	return r.getBy(ctx, "tag", tag)
}

func (r *AnimalsRepo) getBy(ctx context.Context, column, value string) (animals.Animal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return animals.Animal{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+animalColumns+`
		FROM animals
		WHERE `+column+` = $1
	`, value)

	a, err := scanAnimal(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return animals.Animal{}, ErrNotFound
		}
		return animals.Animal{}, err
	}
	return a, nil
}

func (r *AnimalsRepo) List(ctx context.Context) ([]animals.Animal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+animalColumns+`
		FROM animals
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAnimals(rows)
}

func (r *AnimalsRepo) Delete(ctx context.Context, id string) error {
	// Grades, lecturas y alertas caen por ON DELETE CASCADE.
	res, err := r.db.ExecContext(ctx, `DELETE FROM animals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AnimalsRepo) ExistsByBreed(ctx context.Context, breedID string) (bool, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM animals WHERE breed_id = $1)
	`, breedID)

	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *AnimalsRepo) AverageScoreByBreed(ctx context.Context) ([]animals.BreedAverage, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT breed_id, AVG(score_total)
		FROM animals
		WHERE score_total IS NOT NULL
		GROUP BY breed_id
		ORDER BY breed_id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.BreedAverage, 0)
	for rows.Next() {
		var avg animals.BreedAverage
		if err := rows.Scan(&avg.BreedID, &avg.Average); err != nil {
			return nil, err
		}
		out = append(out, avg)
	}
	return out, rows.Err()
}

func (r *AnimalsRepo) RecentlyScored(ctx context.Context, limit int) ([]animals.Animal, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+animalColumns+`
		FROM animals
		WHERE last_score_date IS NOT NULL
		ORDER BY last_score_date DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAnimals(rows)
}

func scanAnimal(scan func(dest ...any) error) (animals.Animal, error) {
	var a animals.Animal
	var weight, height, score sql.NullFloat64
	var lastScore sql.NullTime

	if err := scan(
		&a.ID,
		&a.Tag,
		&a.Name,
		&a.BreedID,
		&a.BirthDate,
		&weight,
		&height,
		&a.PhotoURL,
		&score,
		&lastScore,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return animals.Animal{}, err
	}

	a.Weight = fromNullFloat(weight)
	a.Height = fromNullFloat(height)
	a.ScoreTotal = fromNullFloat(score)
	a.LastScoreDate = fromNullTime(lastScore)
	return a, nil
}

func collectAnimals(rows *sql.Rows) ([]animals.Animal, error) {
	out := make([]animals.Animal, 0)
	for rows.Next() {
		a, err := scanAnimal(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
