package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

func TestBusinessDays(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want int
	}{
		{"monday to friday", "2024-01-01", "2024-01-05", 5},
		{"single weekday", "2024-01-03", "2024-01-03", 1},
		{"weekend only", "2024-01-06", "2024-01-07", 0},
		{"friday to monday", "2024-01-05", "2024-01-08", 2},
		{"two full weeks", "2024-01-01", "2024-01-14", 10},
		{"across month end", "2024-01-29", "2024-02-09", 10},
		{"inverted range", "2024-01-05", "2024-01-01", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BusinessDays(types.MustDate(tt.from), types.MustDate(tt.to)))
		})
	}
}

func TestBusinessDays_Centuries(t *testing.T) {
	// два 400-летних цикла по 20871 полной неделе
	assert.Equal(t, 2*20871*5, BusinessDays(types.MustDate("1600-01-03"), types.MustDate("2400-01-02")))
}

func TestBusinessDays_ZeroDates(t *testing.T) {
	assert.Equal(t, 0, BusinessDays(types.Date{}, types.MustDate("2024-01-05")))
	assert.Equal(t, 0, BusinessDays(types.MustDate("2024-01-05"), types.Date{}))
}

func TestReservationUnits(t *testing.T) {
	tests := []struct {
		name   string
		from   string
		to     string
		charge float64
		status ReservationStatus
		want   float64
	}{
		{"full week at 100%", "2024-01-01", "2024-01-05", 100, StatusPrevue, 5},
		{"full week at 50%", "2024-01-01", "2024-01-05", 50, StatusConfirmee, 2.5},
		{"weekend", "2024-01-06", "2024-01-07", 100, StatusPrevue, 0},
		{"cancelled", "2024-01-01", "2024-01-05", 100, StatusAnnulee, 0},
		{"done counts", "2024-01-01", "2024-01-03", 100, StatusTerminee, 3},
		{"zero charge", "2024-01-01", "2024-01-05", 0, StatusPrevue, 0},
		{"missing start", "", "2024-01-05", 100, StatusPrevue, 0},
		{"unparseable end", "2024-01-01", "bientôt", 100, StatusPrevue, 0},
		{"inverted", "2024-01-05", "2024-01-01", 100, StatusPrevue, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ReservationUnits(tt.from, tt.to, tt.charge, tt.status), 1e-9)
		})
	}
}

func TestReservation_Units(t *testing.T) {
	r := &Reservation{
		DateDebut: types.MustDate("2024-01-01"),
		DateFin:   types.MustDate("2024-01-03"),
		ChargePct: 100,
		Status:    StatusEnCours,
	}
	assert.InDelta(t, 3.0, r.Units(), 1e-9)

	r.Status = StatusAnnulee
	assert.Zero(t, r.Units())
}

func TestReservation_Overlaps(t *testing.T) {
	r := &Reservation{DateDebut: types.MustDate("2024-01-01"), DateFin: types.MustDate("2024-01-05")}

	assert.True(t, r.Overlaps(types.MustDate("2024-01-03"), types.MustDate("2024-01-10")))
	assert.True(t, r.Overlaps(types.MustDate("2024-01-05"), types.MustDate("2024-01-05")))
	assert.True(t, r.Overlaps(types.MustDate("2023-12-01"), types.MustDate("2024-01-01")))
	assert.False(t, r.Overlaps(types.MustDate("2024-01-06"), types.MustDate("2024-01-10")))
}

func TestReservationStatus(t *testing.T) {
	s, err := ParseReservationStatus("en_cours")
	assert.NoError(t, err)
	assert.Equal(t, StatusEnCours, s)

	_, err = ParseReservationStatus("cancelled")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	assert.True(t, StatusAnnulee.RequiresConfirmation())
	assert.True(t, StatusTerminee.RequiresConfirmation())
	assert.False(t, StatusConfirmee.RequiresConfirmation())
	assert.False(t, StatusPrevue.IsTerminal())
}
