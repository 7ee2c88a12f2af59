package entity

import "time"

type Trip struct {
	ID           string
	Name         string
	BaseCurrency string
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
