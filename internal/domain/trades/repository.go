package trades

import (
	"context"

	"github.com/skinmarket/market/internal/gateways/database/models"
)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock

type Repository interface {
	List(ctx context.Context, filter models.TradeFilter) ([]*models.TradeOfferView, error)
	Create(ctx context.Context, offer *models.TradeOffer) error
	// Transition moves a pending offer to status in one transaction. Accepting
	// swaps the owners of both skins before the status is written.
	Transition(ctx context.Context, id int64, status models.TradeStatus) (*models.TradeOffer, error)
}

// SkinLookup is the part of the catalog the trade service reads.
type SkinLookup interface {
	GetByID(ctx context.Context, id int64) (*models.Skin, error)
}
