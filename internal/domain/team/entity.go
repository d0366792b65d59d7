package team

import "time"

type Team struct {
	ID        string
	Name      string
	ManagerID string
	CreatedAt time.Time
	UpdatedAt time.Time
}
