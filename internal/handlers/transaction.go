package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/velimir/safekeep-api/internal/middleware"
	"github.com/velimir/safekeep-api/internal/services"
	"github.com/velimir/safekeep-api/pkg/dto"
)

type TransactionHandler struct {
	assetService   AssetServiceInterface
	paymentService PaymentServiceInterface
}

func NewTransactionHandler(assetService AssetServiceInterface, paymentService PaymentServiceInterface) *TransactionHandler {
	return &TransactionHandler{
		assetService:   assetService,
		paymentService: paymentService,
	}
}

func (h *TransactionHandler) AddAsset(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	allocationID, err := uuid.Parse(c.Param("allocationId"))
	if err != nil {
		c.BadRequest("invalid allocation id")
		return
	}

	var req dto.AddAssetRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	asset, err := h.assetService.Add(context.Background(), allocationID, userID, req.Name, req.EstimatedValue, req.Type)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAllocationNotFound):
			c.NotFound("locker allocation not found")
		case errors.Is(err, services.ErrAllocationExpired):
			_ = c.JSON(http.StatusConflict, map[string]string{"error": "cannot add asset to an expired allocation"})
		case errors.Is(err, services.ErrInvalidAssetName),
			errors.Is(err, services.ErrInvalidAssetValue),
			errors.Is(err, services.ErrInvalidAssetType):
			c.BadRequest(err.Error())
		default:
			c.InternalServerError("failed to add asset")
		}
		return
	}

	_ = c.JSON(201, dto.AssetResponse{
		ID:             asset.ID,
		AllocationID:   asset.AllocationID,
		Name:           asset.Name,
		EstimatedValue: asset.EstimatedValue,
		Type:           asset.Type,
	})
}

func (h *TransactionHandler) ListAssets(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	allocationID, err := uuid.Parse(c.Param("allocationId"))
	if err != nil {
		c.BadRequest("invalid allocation id")
		return
	}

	assets, err := h.assetService.ListByAllocation(context.Background(), allocationID, userID)
	if err != nil {
		if errors.Is(err, services.ErrAllocationNotFound) {
			c.NotFound("locker allocation not found")
			return
		}
		c.InternalServerError("failed to list assets")
		return
	}

	response := make([]dto.AssetResponse, len(assets))
	for i, asset := range assets {
		response[i] = dto.AssetResponse{
			ID:             asset.ID,
			AllocationID:   asset.AllocationID,
			Name:           asset.Name,
			EstimatedValue: asset.EstimatedValue,
			Type:           asset.Type,
		}
	}

	_ = c.JSON(200, response)
}

func (h *TransactionHandler) RemoveAsset(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	assetID, err := uuid.Parse(c.Param("assetId"))
	if err != nil {
		c.BadRequest("invalid asset id")
		return
	}

	if err := h.assetService.Remove(context.Background(), assetID, userID); err != nil {
		if errors.Is(err, services.ErrAssetNotFound) {
			c.NotFound("asset not found")
			return
		}
		c.InternalServerError("failed to remove asset")
		return
	}

	_ = c.JSON(204, nil)
}

func (h *TransactionHandler) PayRent(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	allocationID, err := uuid.Parse(c.Param("allocationId"))
	if err != nil {
		c.BadRequest("invalid allocation id")
		return
	}

	var req dto.PayRentRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	payment, err := h.paymentService.RecordPayment(context.Background(), allocationID, userID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAllocationNotFound):
			c.NotFound("locker allocation not found")
		case errors.Is(err, services.ErrInvalidAmount):
			c.BadRequest(err.Error())
		case errors.Is(err, services.ErrAllocationTerminated):
			_ = c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
		default:
			c.InternalServerError("failed to record payment")
		}
		return
	}

	_ = c.JSON(201, dto.PaymentResponse{
		ID:           payment.ID,
		AllocationID: payment.AllocationID,
		Amount:       payment.Amount,
		Status:       payment.Status,
		CreatedAt:    payment.CreatedAt,
	})
}

func (h *TransactionHandler) ListTransactions(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	allocationID, err := uuid.Parse(c.Param("allocationId"))
	if err != nil {
		c.BadRequest("invalid allocation id")
		return
	}

	transactions, err := h.paymentService.ListTransactions(context.Background(), allocationID, userID)
	if err != nil {
		if errors.Is(err, services.ErrAllocationNotFound) {
			c.NotFound("locker allocation not found")
			return
		}
		c.InternalServerError("failed to list transactions")
		return
	}

	response := make([]dto.TransactionResponse, len(transactions))
	for i, txn := range transactions {
		response[i] = dto.TransactionResponse{
			ID:           txn.ID,
			AllocationID: txn.AllocationID,
			Type:         txn.Type,
			CreatedAt:    txn.CreatedAt,
		}
	}

	_ = c.JSON(200, response)
}

func (h *TransactionHandler) ListPayments(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	allocationID, err := uuid.Parse(c.Param("allocationId"))
	if err != nil {
		c.BadRequest("invalid allocation id")
		return
	}

	payments, err := h.paymentService.ListPayments(context.Background(), allocationID, userID)
	if err != nil {
		if errors.Is(err, services.ErrAllocationNotFound) {
			c.NotFound("locker allocation not found")
			return
		}
		c.InternalServerError("failed to list payments")
		return
	}

	response := make([]dto.PaymentResponse, len(payments))
	for i, payment := range payments {
		response[i] = dto.PaymentResponse{
			ID:           payment.ID,
			AllocationID: payment.AllocationID,
			Amount:       payment.Amount,
			Status:       payment.Status,
			CreatedAt:    payment.CreatedAt,
		}
	}

	_ = c.JSON(200, response)
}
