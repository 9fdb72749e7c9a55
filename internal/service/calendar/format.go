package calendar

import (
	"strings"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

const ellipsis = "…"

func formatRange(from, to types.Date) string {
	return from.String() + " → " + to.String()
}

// formatPeriod type : start → end (motif)
func formatPeriod(p *domain.BlockedPeriod) string {
	s := string(p.Type) + " : " + formatRange(p.DateDebut, p.DateFin)
	if p.Motif != nil && strings.TrimSpace(*p.Motif) != "" {
		s += " (" + strings.TrimSpace(*p.Motif) + ")"
	}
	return s
}

// joinLimited перечисляет не больше limit элементов, остаток обозначается многоточием
func joinLimited(items []string, limit int) string {
	if limit <= 0 {
		limit = domain.DefaultConflictListLimit
	}
	if len(items) <= limit {
		return strings.Join(items, ", ")
	}
	return strings.Join(items[:limit], ", ") + ", " + ellipsis
}
