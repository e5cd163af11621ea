package utils

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/skinmarket/market/backend/models"
	"github.com/skinmarket/market/internal/domain/catalog"
	"github.com/skinmarket/market/internal/domain/errs"
	"github.com/skinmarket/market/internal/domain/trades"
	"github.com/skinmarket/market/skinmarket/config"
)

var (
	// ValidImageExtensions contains valid image file extensions
	ValidImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
)

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ValidateSkinRequest checks that every required field is present and builds
// the catalog input. requireID is set for updates.
func ValidateSkinRequest(req *models.SkinRequest, requireID bool) (catalog.SkinInput, error) {
	ve := errs.NewValidationError()

	if requireID && req.ID == nil {
		ve.Add("id", "Skin ID required")
	}
	required := map[string]bool{
		"name":        req.Name == nil,
		"weapon":      req.Weapon == nil,
		"rarity":      req.Rarity == nil,
		"wear":        req.Wear == nil,
		"price":       req.Price == nil,
		"float_value": req.FloatValue == nil,
	}
	for field, missing := range required {
		if missing {
			ve.Add(field, "is required")
		}
	}
	if err := ve.OrNil(); err != nil {
		return catalog.SkinInput{}, err
	}

	input := catalog.SkinInput{
		Name:       *req.Name,
		Weapon:     *req.Weapon,
		Rarity:     *req.Rarity,
		Wear:       *req.Wear,
		Price:      *req.Price,
		ImageURL:   req.ImageURL,
		FloatValue: *req.FloatValue,
		OwnerName:  deref(req.OwnerName),
		Stickers:   req.Stickers,
	}
	return input, input.Validate()
}

func ValidateTradeCreateRequest(req *models.TradeCreateRequest) (trades.CreateInput, error) {
	ve := errs.NewValidationError()
	if req.FromUser == nil {
		ve.Add("from_user", "is required")
	}
	if req.ToUser == nil {
		ve.Add("to_user", "is required")
	}
	if req.OfferedSkinID == nil {
		ve.Add("offered_skin_id", "is required")
	}
	if req.RequestedSkinID == nil {
		ve.Add("requested_skin_id", "is required")
	}
	if err := ve.OrNil(); err != nil {
		return trades.CreateInput{}, err
	}

	input := trades.CreateInput{
		FromUser:        *req.FromUser,
		ToUser:          *req.ToUser,
		OfferedSkinID:   *req.OfferedSkinID,
		RequestedSkinID: *req.RequestedSkinID,
		Message:         deref(req.Message),
	}
	return input, input.Validate()
}

func ValidateTradeStatusRequest(req *models.TradeStatusRequest) (int64, string, error) {
	if req.ID == nil || req.Status == nil || strings.TrimSpace(*req.Status) == "" {
		ve := errs.NewValidationError()
		if req.ID == nil {
			ve.Add("id", "Trade ID and status required")
		}
		if req.Status == nil || strings.TrimSpace(*req.Status) == "" {
			ve.Add("status", "Trade ID and status required")
		}
		return 0, "", ve
	}
	return *req.ID, *req.Status, nil
}

// ValidateImageFile validates an uploaded image
func ValidateImageFile(fileHeader *multipart.FileHeader) error {
	ve := errs.NewValidationError()

	if fileHeader.Size > config.MaxImageSize {
		ve.Add("image", fmt.Sprintf("Image size must be less than %dMB", config.MaxImageSize/(1024*1024)))
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	validExt := false
	for _, validExtension := range ValidImageExtensions {
		if ext == validExtension {
			validExt = true
			break
		}
	}
	if !validExt {
		ve.Add("image", fmt.Sprintf("Invalid image format. Allowed formats: %s", strings.Join(ValidImageExtensions, ", ")))
	}

	return ve.OrNil()
}
