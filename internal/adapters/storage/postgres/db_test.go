package postgres

import (
	"testing"
	"time"
)

func TestDateOf_KeepsLocalCalendarDay(t *testing.T) {
	lima := time.FixedZone("America/Lima", -5*3600)
	tokyo := time.FixedZone("Asia/Tokyo", 9*3600)

	cases := []struct {
		name string
		in   time.Time
		want string
	}{
		// 23:30 en Lima ya es el día siguiente en UTC; la fecha enviada
		// a la columna DATE tiene que seguir siendo la local.
		{"late evening negative offset", time.Date(2026, 8, 30, 23, 30, 0, 0, lima), "2026-08-30"},
		// 00:30 en Tokio todavía es el día anterior en UTC.
		{"early morning positive offset", time.Date(2026, 8, 30, 0, 30, 0, 0, tokyo), "2026-08-30"},
		{"utc midnight", time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), "2026-08-30"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := dateOf(tc.in); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
