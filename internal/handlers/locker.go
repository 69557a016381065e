package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/velimir/safekeep-api/internal/middleware"
	"github.com/velimir/safekeep-api/internal/models"
	"github.com/velimir/safekeep-api/internal/services"
	"github.com/velimir/safekeep-api/pkg/dto"
)

type LockerHandler struct {
	vaultService      VaultServiceInterface
	allocationService AllocationServiceInterface
}

func NewLockerHandler(vaultService VaultServiceInterface, allocationService AllocationServiceInterface) *LockerHandler {
	return &LockerHandler{
		vaultService:      vaultService,
		allocationService: allocationService,
	}
}

func (h *LockerHandler) Create(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	if !models.Permits(middleware.GetUserRole(c), models.OpAddLocker) {
		c.Forbidden("insufficient permissions")
		return
	}

	vaultID, err := uuid.Parse(c.Param("vaultId"))
	if err != nil {
		c.BadRequest("invalid vault id")
		return
	}

	var req dto.CreateLockerRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.LockerNumber == "" {
		c.BadRequest("locker_number is required")
		return
	}

	locker, err := h.vaultService.AddLocker(context.Background(), vaultID, req.LockerNumber, req.Size, req.MonthlyRent)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrVaultNotFound):
			c.NotFound("vault not found")
		case errors.Is(err, services.ErrInvalidRent), errors.Is(err, services.ErrInvalidLockerSize):
			c.BadRequest(err.Error())
		case errors.Is(err, services.ErrLockerNumberTaken):
			_ = c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
		default:
			c.InternalServerError("failed to create locker")
		}
		return
	}

	_ = c.JSON(201, dto.LockerResponse{
		ID:           locker.ID,
		VaultID:      locker.VaultID,
		LockerNumber: locker.LockerNumber,
		Size:         locker.Size,
		Status:       locker.Status,
		MonthlyRent:  locker.MonthlyRent,
	})
}

func (h *LockerHandler) Allocate(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	lockerID, err := uuid.Parse(c.Param("lockerId"))
	if err != nil {
		c.BadRequest("invalid locker id")
		return
	}

	var req dto.AllocateLockerRequest
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if err := c.BindJSON(&req); err != nil {
			c.BadRequest("invalid request body")
			return
		}
	}

	allocation, err := h.allocationService.Allocate(context.Background(), lockerID, userID, req.ExpiryDate)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLockerNotFound):
			c.NotFound("locker not found")
		case errors.Is(err, services.ErrVaultNotOperational),
			errors.Is(err, services.ErrLockerUnavailable),
			errors.Is(err, services.ErrNoLockersAvailable):
			_ = c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
		default:
			c.InternalServerError("failed to allocate locker")
		}
		return
	}

	_ = c.JSON(201, dto.AllocationResponse{
		ID:          allocation.ID,
		LockerID:    allocation.LockerID,
		UserID:      allocation.UserID,
		AllocatedAt: allocation.AllocatedAt,
		ExpiryDate:  allocation.ExpiryDate,
		Status:      allocation.Status,
	})
}

func (h *LockerHandler) ListAvailable(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var vaultID *uuid.UUID
	if raw := c.QueryParam("vault_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.BadRequest("invalid vault_id")
			return
		}
		vaultID = &id
	}

	size := c.QueryParam("size")

	lockers, err := h.vaultService.ListAvailableLockers(context.Background(), size, vaultID)
	if err != nil {
		c.InternalServerError("failed to list available lockers")
		return
	}

	response := make([]dto.LockerResponse, len(lockers))
	for i, locker := range lockers {
		response[i] = dto.LockerResponse{
			ID:           locker.ID,
			VaultID:      locker.VaultID,
			LockerNumber: locker.LockerNumber,
			Size:         locker.Size,
			Status:       locker.Status,
			MonthlyRent:  locker.MonthlyRent,
		}
	}

	_ = c.JSON(200, response)
}
