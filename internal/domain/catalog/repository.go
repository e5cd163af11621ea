package catalog

import (
	"context"

	"github.com/skinmarket/market/internal/gateways/database/models"
)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock

type Repository interface {
	List(ctx context.Context, filter models.SkinFilter) ([]*models.Skin, error)
	GetByID(ctx context.Context, id int64) (*models.Skin, error)
	Create(ctx context.Context, skin *models.Skin) error
	Update(ctx context.Context, skin *models.Skin) error
	Remove(ctx context.Context, id int64) error
}

// ImageStore persists uploaded images and returns their public URL.
type ImageStore interface {
	Upload(ctx context.Context, filename, contentType string, data []byte) (string, error)
}
