package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de Project.
const (
	ProjectStatusPlanned   = "planned"
	ProjectStatusActive    = "active"
	ProjectStatusOnHold    = "on_hold"
	ProjectStatusDone      = "done"
	ProjectStatusCancelled = "cancelled"
)

// Project es un proyecto de la empresa, opcionalmente asociado a un cliente.
type Project struct {
	ID          string
	CompanyID   string
	ClientID    string // vacío = proyecto interno
	Name        string
	Description string
	Status      string
	StartDate   *time.Time
	EndDate     *time.Time
	Budget      decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidProjectStatus indica si s es un estado conocido.
func ValidProjectStatus(s string) bool {
	switch s {
	case ProjectStatusPlanned, ProjectStatusActive, ProjectStatusOnHold,
		ProjectStatusDone, ProjectStatusCancelled:
		return true
	}
	return false
}
