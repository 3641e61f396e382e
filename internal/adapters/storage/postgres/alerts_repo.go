package postgres

import (
	"context"
	"database/sql"

	"cattle-scoring/internal/domain/alerts"
)

type AlertsRepo struct {
	db *sql.DB
}

func NewAlertsRepo(db *sql.DB) *AlertsRepo {
	return &AlertsRepo{db: db}
}

func (r *AlertsRepo) Create(ctx context.Context, a alerts.Alert) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO alerts (id, animal_id, alert_type, message, ts, is_read)
		VALUES ($1,$2,$3,$4,$5,$6)
	`,
		a.ID,
		a.AnimalID,
		string(a.Type),
		a.Message,
		a.Timestamp,
		a.IsRead,
	)
	return err
}

func (r *AlertsRepo) GetByID(ctx context.Context, id string) (alerts.Alert, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, animal_id, alert_type, message, ts, is_read
		FROM alerts
		WHERE id = $1
	`, id)

	a, err := scanAlert(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return alerts.Alert{}, ErrNotFound
		}
		return alerts.Alert{}, err
	}
	return a, nil
}

func (r *AlertsRepo) ListByAnimal(ctx context.Context, animalID string) ([]alerts.Alert, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, animal_id, alert_type, message, ts, is_read
		FROM alerts
		WHERE animal_id = $1
		ORDER BY ts DESC
	`, animalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]alerts.Alert, 0)
	for rows.Next() {
		a, err := scanAlert(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AlertsRepo) MarkRead(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE alerts SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanAlert(scan func(dest ...any) error) (alerts.Alert, error) {
	var a alerts.Alert
	var typ string

	if err := scan(&a.ID, &a.AnimalID, &typ, &a.Message, &a.Timestamp, &a.IsRead); err != nil {
		return alerts.Alert{}, err
	}
	a.Type = alerts.Type(typ)
	return a, nil
}
