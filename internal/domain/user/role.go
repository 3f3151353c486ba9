package user

import "github.com/SerraVetServices/vet-scheduler/internal/httperr"

// ===============================
// Role
// ===============================

// Role é um conjunto fechado; todo ponto de checagem faz switch exaustivo
// para não existir fallthrough silencioso de permissão.
type Role string

const (
	RoleClient        Role = "client"
	RoleVeterinarian  Role = "veterinarian"
	RoleAttendant     Role = "attendant"
	RoleAdministrator Role = "administrator"
)

func Parse(s string) (Role, error) {
	switch Role(s) {
	case RoleClient, RoleVeterinarian, RoleAttendant, RoleAdministrator:
		return Role(s), nil
	default:
		return "", httperr.ErrValidation("invalid_role")
	}
}

// ===============================
// Permissões
// ===============================

// CanManageSlots: agenda de horários é mantida pelo balcão e pelos
// próprios veterinários.
func CanManageSlots(r Role) bool {
	switch r {
	case RoleAttendant, RoleVeterinarian, RoleAdministrator:
		return true
	case RoleClient:
		return false
	}
	return false
}

// CanBook: somente o tutor (cliente) agenda consultas.
func CanBook(r Role) bool {
	switch r {
	case RoleClient:
		return true
	case RoleVeterinarian, RoleAttendant, RoleAdministrator:
		return false
	}
	return false
}

// CanCancelAny: balcão e administração cancelam consultas de qualquer
// cliente; cliente e veterinário só as próprias (checado no caso de uso).
func CanCancelAny(r Role) bool {
	switch r {
	case RoleAttendant, RoleAdministrator:
		return true
	case RoleClient, RoleVeterinarian:
		return false
	}
	return false
}

// CanStartConsultation: o veterinário dono da consulta ou o balcão.
func CanStartConsultation(r Role) bool {
	switch r {
	case RoleVeterinarian, RoleAttendant, RoleAdministrator:
		return true
	case RoleClient:
		return false
	}
	return false
}

// CanWriteRecord: prontuário é exclusivo do veterinário.
func CanWriteRecord(r Role) bool {
	switch r {
	case RoleVeterinarian:
		return true
	case RoleClient, RoleAttendant, RoleAdministrator:
		return false
	}
	return false
}

// CanDeclareAbsence: o próprio veterinário ou o balcão em nome dele.
func CanDeclareAbsence(r Role) bool {
	switch r {
	case RoleVeterinarian, RoleAttendant, RoleAdministrator:
		return true
	case RoleClient:
		return false
	}
	return false
}

// CanReviewPayments: definição de valor e análise de comprovante são do
// atendente (administrador herda).
func CanReviewPayments(r Role) bool {
	switch r {
	case RoleAttendant, RoleAdministrator:
		return true
	case RoleClient, RoleVeterinarian:
		return false
	}
	return false
}

func CanReadAuditLogs(r Role) bool {
	switch r {
	case RoleAdministrator:
		return true
	case RoleClient, RoleVeterinarian, RoleAttendant:
		return false
	}
	return false
}
