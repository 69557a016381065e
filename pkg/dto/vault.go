package dto

import "github.com/google/uuid"

type CreateVaultRequest struct {
	Location     string `json:"location"`
	TotalLockers int    `json:"total_lockers"`
	Status       string `json:"status"`
}

type VaultResponse struct {
	ID               uuid.UUID `json:"id"`
	Location         string    `json:"location"`
	TotalLockers     int       `json:"total_lockers"`
	AvailableLockers int       `json:"available_lockers"`
	Status           string    `json:"status"`
}
