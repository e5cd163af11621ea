package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/skinmarket/market/internal/domain/errs"
	"github.com/skinmarket/market/internal/gateways/database/models"
)

// ErrImagesDisabled is returned by UploadImage when no image store is configured.
var ErrImagesDisabled = errors.New("image uploads are not configured")

type Service interface {
	List(ctx context.Context, filters Filters) ([]Skin, error)
	Get(ctx context.Context, id int64) (*Skin, error)
	Create(ctx context.Context, input SkinInput) (int64, error)
	Update(ctx context.Context, id int64, input SkinInput) error
	Remove(ctx context.Context, id int64) error
	UploadImage(ctx context.Context, filename, contentType string, data []byte) (string, error)
}

type service struct {
	repository Repository
	images     ImageStore
}

// NewService builds the catalog service. images may be nil.
func NewService(repository Repository, images ImageStore) *service {
	return &service{
		repository: repository,
		images:     images,
	}
}

func (s *service) List(ctx context.Context, filters Filters) ([]Skin, error) {
	if filters.MinPrice != nil && filters.MaxPrice != nil && *filters.MinPrice > *filters.MaxPrice {
		return []Skin{}, nil
	}

	rows, err := s.repository.List(ctx, filters.toModel())
	if err != nil {
		return nil, fmt.Errorf("failed to list skins: %w", err)
	}

	rows = matchQuery(rows, filters.Query)

	skins := make([]Skin, 0, len(rows))
	for _, row := range rows {
		skins = append(skins, toSkin(row))
	}
	return skins, nil
}

func (s *service) Get(ctx context.Context, id int64) (*Skin, error) {
	if id <= 0 {
		return nil, &errs.ValidationError{Fields: map[string]string{"id": "must be a positive integer"}}
	}

	row, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	skin := toSkin(row)
	return &skin, nil
}

func (s *service) Create(ctx context.Context, input SkinInput) (int64, error) {
	if err := input.Validate(); err != nil {
		return 0, err
	}

	owner := input.OwnerName
	if owner == "" {
		owner = models.DefaultOwner
	}

	skin := &models.Skin{
		Name:        input.Name,
		Weapon:      input.Weapon,
		Rarity:      input.Rarity,
		Wear:        input.Wear,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		FloatValue:  input.FloatValue,
		OwnerName:   owner,
		IsAvailable: true,
		Stickers:    input.Stickers,
	}
	if err := s.repository.Create(ctx, skin); err != nil {
		return 0, fmt.Errorf("failed to create skin: %w", err)
	}

	slog.Info("Skin created",
		slog.Int64("skin_id", skin.ID),
		slog.String("weapon", skin.Weapon),
		slog.String("name", skin.Name),
		slog.String("owner", skin.OwnerName),
		slog.Int("stickers", len(skin.Stickers)))

	return skin.ID, nil
}

func (s *service) Update(ctx context.Context, id int64, input SkinInput) error {
	if id <= 0 {
		return &errs.ValidationError{Fields: map[string]string{"id": "must be a positive integer"}}
	}
	if err := input.Validate(); err != nil {
		return err
	}

	// An empty OwnerName leaves the stored owner untouched.
	skin := &models.Skin{
		ID:         id,
		Name:       input.Name,
		Weapon:     input.Weapon,
		Rarity:     input.Rarity,
		Wear:       input.Wear,
		Price:      input.Price,
		ImageURL:   input.ImageURL,
		FloatValue: input.FloatValue,
		OwnerName:  input.OwnerName,
	}
	if err := s.repository.Update(ctx, skin); err != nil {
		if errs.IsNotFound(err) {
			return err
		}
		return fmt.Errorf("failed to update skin: %w", err)
	}

	slog.Info("Skin updated", slog.Int64("skin_id", id))
	return nil
}

func (s *service) Remove(ctx context.Context, id int64) error {
	if id <= 0 {
		return &errs.ValidationError{Fields: map[string]string{"id": "must be a positive integer"}}
	}

	if err := s.repository.Remove(ctx, id); err != nil {
		if errs.IsNotFound(err) {
			return err
		}
		return fmt.Errorf("failed to remove skin: %w", err)
	}

	slog.Info("Skin removed from catalog", slog.Int64("skin_id", id))
	return nil
}

func (s *service) UploadImage(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	if s.images == nil {
		return "", ErrImagesDisabled
	}
	if len(data) == 0 {
		return "", &errs.ValidationError{Fields: map[string]string{"image": "file is empty"}}
	}

	url, err := s.images.Upload(ctx, filename, contentType, data)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	slog.Info("Skin image uploaded",
		slog.String("filename", filename),
		slog.Int("size", len(data)),
		slog.String("url", url))
	return url, nil
}
