package validate_reservation

import (
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// checkStructure проверяет обязательные поля и диапазоны без обращения к хранилищу
// Возвращает первое найденное нарушение
func checkStructure(r *domain.Reservation, linkage bool) *BlockingError {
	if r.ProjectID == uuid.Nil {
		return domain.NewViolation(ErrInvalidInput, "Le projet est obligatoire")
	}

	if r.ConsultantID == uuid.Nil {
		return domain.NewViolation(ErrInvalidInput, "Le consultant est obligatoire")
	}

	if r.DateDebut.IsZero() || r.DateFin.IsZero() {
		return domain.NewViolation(ErrInvalidInput, "Les dates de début et de fin sont obligatoires")
	}

	if linkage && (r.PrestationID == nil || *r.PrestationID == uuid.Nil) {
		return domain.NewViolation(ErrInvalidInput, "La prestation est obligatoire")
	}

	if r.ChargePct < domain.MinChargePct || r.ChargePct > domain.MaxChargePct {
		return domain.NewViolation(ErrInvalidInput, "La charge doit être comprise entre %d et %d %%",
			int(domain.MinChargePct), int(domain.MaxChargePct))
	}

	if r.DateFin.IsBefore(r.DateDebut) {
		return domain.NewViolation(ErrInvalidInput, "La date de fin doit être postérieure ou égale à la date de début")
	}

	if _, err := domain.ParseReservationStatus(string(r.Status)); err != nil {
		return domain.NewViolation(ErrInvalidInput, "Statut inconnu : %s", r.Status)
	}

	if r.RoleProjet != nil && utf8.RuneCountInString(*r.RoleProjet) > domain.MaxRoleProjetLength {
		return domain.NewViolation(ErrInvalidInput, "Le rôle ne doit pas dépasser %d caractères", domain.MaxRoleProjetLength)
	}

	if r.Notes != nil && utf8.RuneCountInString(*r.Notes) > domain.MaxNotesLength {
		return domain.NewViolation(ErrInvalidInput, "Les notes ne doivent pas dépasser %d caractères", domain.MaxNotesLength)
	}

	return nil
}

// checkLineBelongsToProject строка заказа должна принадлежать проекту бронирования
func checkLineBelongsToProject(r *domain.Reservation, line *domain.ServiceLine) *BlockingError {
	if line.ProjectID != uuid.Nil && line.ProjectID != r.ProjectID {
		return domain.NewViolation(ErrInvalidInput, "La prestation « %s » n'appartient pas à ce projet", line.Libelle)
	}
	return nil
}
