package models

import "github.com/google/uuid"

const (
	AssetTypeJewelry  = "JEWELRY"
	AssetTypeDocument = "DOCUMENT"
	AssetTypeOther    = "OTHER"
)

type Asset struct {
	ID             uuid.UUID `json:"id"`
	AllocationID   uuid.UUID `json:"allocation_id"`
	Name           string    `json:"name"`
	EstimatedValue float64   `json:"estimated_value"`
	Type           string    `json:"type"`
}

func ValidAssetType(assetType string) bool {
	switch assetType {
	case AssetTypeJewelry, AssetTypeDocument, AssetTypeOther:
		return true
	}
	return false
}
