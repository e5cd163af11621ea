package trades

import (
	"strings"
	"time"

	"github.com/skinmarket/market/internal/domain/errs"
	"github.com/skinmarket/market/internal/gateways/database/models"
	"github.com/skinmarket/market/skinmarket/config"
)

const DefaultRecentLimit = config.RecentTradesLimit

// Offer is a trade offer joined with the current name, weapon, image and
// price of both skins.
type Offer struct {
	ID              int64     `json:"id"`
	FromUser        string    `json:"from_user"`
	ToUser          string    `json:"to_user"`
	OfferedSkinID   int64     `json:"offered_skin_id"`
	RequestedSkinID int64     `json:"requested_skin_id"`
	Message         string    `json:"message"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	OfferedSkinName   string  `json:"offered_skin_name"`
	OfferedWeapon     string  `json:"offered_weapon"`
	OfferedImage      *string `json:"offered_image"`
	OfferedPrice      int64   `json:"offered_price"`
	RequestedSkinName string  `json:"requested_skin_name"`
	RequestedWeapon   string  `json:"requested_weapon"`
	RequestedImage    *string `json:"requested_image"`
	RequestedPrice    int64   `json:"requested_price"`
}

type CreateInput struct {
	FromUser        string
	ToUser          string
	OfferedSkinID   int64
	RequestedSkinID int64
	Message         string
}

func (in *CreateInput) Validate() error {
	in.FromUser = strings.TrimSpace(in.FromUser)
	in.ToUser = strings.TrimSpace(in.ToUser)

	ve := errs.NewValidationError()
	if in.FromUser == "" {
		ve.Add("from_user", "is required")
	}
	if in.ToUser == "" {
		ve.Add("to_user", "is required")
	}
	if in.OfferedSkinID <= 0 {
		ve.Add("offered_skin_id", "must be a positive integer")
	}
	if in.RequestedSkinID <= 0 {
		ve.Add("requested_skin_id", "must be a positive integer")
	}
	if ve.Empty() {
		if in.FromUser == in.ToUser {
			ve.Add("to_user", "must differ from from_user")
		}
		if in.OfferedSkinID == in.RequestedSkinID {
			ve.Add("requested_skin_id", "must differ from offered_skin_id")
		}
	}
	return ve.OrNil()
}

type Options struct {
	// EnforceOwnership rejects offers whose parties do not own the skins involved.
	EnforceOwnership bool
	// RecentLimit caps the listing when no participant is given.
	RecentLimit int
}

func toOffer(v *models.TradeOfferView) Offer {
	return Offer{
		ID:                v.ID,
		FromUser:          v.FromUser,
		ToUser:            v.ToUser,
		OfferedSkinID:     v.OfferedSkinID,
		RequestedSkinID:   v.RequestedSkinID,
		Message:           v.Message,
		Status:            string(v.Status),
		CreatedAt:         v.CreatedAt,
		UpdatedAt:         v.UpdatedAt,
		OfferedSkinName:   v.OfferedSkinName,
		OfferedWeapon:     v.OfferedWeapon,
		OfferedImage:      v.OfferedImage,
		OfferedPrice:      v.OfferedPrice,
		RequestedSkinName: v.RequestedSkinName,
		RequestedWeapon:   v.RequestedWeapon,
		RequestedImage:    v.RequestedImage,
		RequestedPrice:    v.RequestedPrice,
	}
}
