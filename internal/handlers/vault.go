package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/velimir/safekeep-api/internal/middleware"
	"github.com/velimir/safekeep-api/internal/models"
	"github.com/velimir/safekeep-api/pkg/dto"
)

type VaultHandler struct {
	vaultService VaultServiceInterface
}

func NewVaultHandler(vaultService VaultServiceInterface) *VaultHandler {
	return &VaultHandler{vaultService: vaultService}
}

func (h *VaultHandler) Create(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	if !models.Permits(middleware.GetUserRole(c), models.OpCreateVault) {
		c.Forbidden("insufficient permissions")
		return
	}

	var req dto.CreateVaultRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Location == "" {
		c.BadRequest("location is required")
		return
	}
	if req.TotalLockers < 0 {
		c.BadRequest("total_lockers must not be negative")
		return
	}

	status := req.Status
	if status == "" {
		status = models.VaultStatusOperational
	}
	switch status {
	case models.VaultStatusOperational, models.VaultStatusMaintenance, models.VaultStatusClosed:
	default:
		c.BadRequest("invalid vault status")
		return
	}

	vault, err := h.vaultService.Create(context.Background(), req.Location, req.TotalLockers, status)
	if err != nil {
		c.InternalServerError("failed to create vault")
		return
	}

	_ = c.JSON(201, dto.VaultResponse{
		ID:               vault.ID,
		Location:         vault.Location,
		TotalLockers:     vault.TotalLockers,
		AvailableLockers: vault.AvailableLockers,
		Status:           vault.Status,
	})
}

func (h *VaultHandler) List(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	if !models.Permits(middleware.GetUserRole(c), models.OpListVaults) {
		c.Forbidden("insufficient permissions")
		return
	}

	vaults, err := h.vaultService.List(context.Background())
	if err != nil {
		c.InternalServerError("failed to list vaults")
		return
	}

	response := make([]dto.VaultResponse, len(vaults))
	for i, vault := range vaults {
		response[i] = dto.VaultResponse{
			ID:               vault.ID,
			Location:         vault.Location,
			TotalLockers:     vault.TotalLockers,
			AvailableLockers: vault.AvailableLockers,
			Status:           vault.Status,
		}
	}

	_ = c.JSON(200, response)
}
