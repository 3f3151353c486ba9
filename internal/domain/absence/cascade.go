package absence

import (
	"fmt"
	"time"

	"github.com/SerraVetServices/vet-scheduler/internal/httperr"
	"github.com/SerraVetServices/vet-scheduler/internal/models"
)

// ===============================
// Cascata de ausência
// ===============================

// Validate checa o intervalo semiaberto [StartsAt, EndsAt).
func Validate(ab *models.Absence) error {
	if !ab.EndsAt.After(ab.StartsAt) {
		return httperr.ErrValidation("invalid_interval")
	}
	return nil
}

// Covers diz se o horário da consulta cai dentro da janela de ausência.
func Covers(ab *models.Absence, slotTime time.Time) bool {
	return !slotTime.Before(ab.StartsAt) && slotTime.Before(ab.EndsAt)
}

// NotificationMessage monta o texto da notificação enviada ao tutor de
// cada consulta cancelada pela cascata.
func NotificationMessage(vetName string, slotTime time.Time, reason string) string {
	msg := fmt.Sprintf(
		"Sua consulta de %s com Dr(a). %s foi cancelada por ausência do veterinário.",
		slotTime.Format("02/01/2006 às 15:04"),
		vetName,
	)
	if reason != "" {
		msg += " Motivo: " + reason
	}
	return msg
}
