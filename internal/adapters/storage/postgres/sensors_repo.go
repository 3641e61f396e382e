package postgres

import (
	"context"
	"database/sql"
	"time"

	"cattle-scoring/internal/domain/sensors"
)

type SensorsRepo struct {
	db *sql.DB
}

func NewSensorsRepo(db *sql.DB) *SensorsRepo {
	return &SensorsRepo{db: db}
}

func (r *SensorsRepo) Append(ctx context.Context, reading sensors.Reading) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sensor_readings (id, animal_id, ts, temperature, activity)
		VALUES ($1,$2,$3,$4,$5)
	`,
		reading.ID,
		reading.AnimalID,
		reading.Timestamp,
		toNullFloat(reading.Temperature),
		toNullFloat(reading.Activity),
	)
	return err
}

func (r *SensorsRepo) ListSince(ctx context.Context, animalID string, from time.Time) ([]sensors.Reading, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, animal_id, ts, temperature, activity
		FROM sensor_readings
		WHERE animal_id = $1 AND ts >= $2
		ORDER BY ts ASC
	`, animalID, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]sensors.Reading, 0)
	for rows.Next() {
		var rd sensors.Reading
		var temp, act sql.NullFloat64
		if err := rows.Scan(&rd.ID, &rd.AnimalID, &rd.Timestamp, &temp, &act); err != nil {
			return nil, err
		}
		rd.Temperature = fromNullFloat(temp)
		rd.Activity = fromNullFloat(act)
		out = append(out, rd)
	}
	return out, rows.Err()
}
