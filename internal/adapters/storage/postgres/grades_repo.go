package postgres

import (
	"context"
	"database/sql"
	"time"

	"cattle-scoring/internal/domain/scoring"
)

type GradesRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewGradesRepo(db *sql.DB) *GradesRepo {
	return &GradesRepo{db: db, now: time.Now}
}

// SaveBatch persiste el lote de calificaciones y el score del ejemplar en una
// sola transacción. Si cualquier paso falla no queda ningún grade escrito.
func (r *GradesRepo) SaveBatch(ctx context.Context, animalID string, grades []scoring.Grade, finalScore float64, scoredOn time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, g := range grades {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO grades (id, animal_id, characteristic_id, score, scored_on, evaluator_id, created_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
			ON CONFLICT (animal_id, characteristic_id, scored_on)
			DO UPDATE SET score = EXCLUDED.score, evaluator_id = EXCLUDED.evaluator_id
		`,
			g.ID,
			g.AnimalID,
			g.CharacteristicID,
			g.Score,
			dateOf(g.ScoredOn),
			g.EvaluatorID,
			g.CreatedAt,
		)
		if err != nil {
			return err
		}
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE animals
		SET score_total = $2, last_score_date = $3, updated_at = $4
		WHERE id = $1
	`, animalID, finalScore, dateOf(scoredOn), r.now().UTC())
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

func (r *GradesRepo) ListByAnimal(ctx context.Context, animalID string) ([]scoring.Grade, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, animal_id, characteristic_id, score, scored_on, evaluator_id, created_at
		FROM grades
		WHERE animal_id = $1
		ORDER BY scored_on DESC, created_at DESC
	`, animalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]scoring.Grade, 0)
	for rows.Next() {
		var g scoring.Grade
		if err := rows.Scan(&g.ID, &g.AnimalID, &g.CharacteristicID, &g.Score, &g.ScoredOn, &g.EvaluatorID, &g.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
