package entity

import "time"

// Client representa un cliente de la empresa (receptor de facturas y proyectos).
type Client struct {
	ID          string
	CompanyID   string
	Name        string
	ContactName string
	Email       string
	Phone       string
	Address     string
	Status      string // active, inactive
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
