package catalog

import (
	"strings"
	"time"

	"github.com/skinmarket/market/internal/domain/errs"
	"github.com/skinmarket/market/internal/gateways/database/models"
)

// Skin is the listing projection returned to clients.
type Skin struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Weapon      string    `json:"weapon"`
	Rarity      string    `json:"rarity"`
	Wear        string    `json:"wear"`
	Price       int64     `json:"price"`
	ImageURL    *string   `json:"image_url"`
	FloatValue  float64   `json:"float_value"`
	OwnerName   string    `json:"owner_name"`
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Stickers    []string  `json:"stickers"`
}

type Filters struct {
	Rarity   string
	Weapon   string
	MinPrice *int64
	MaxPrice *int64
	// Query is a free-text fuzzy match against "<weapon> | <name>".
	Query string
}

// SkinInput carries the writable fields of a skin. OwnerName may be empty:
// Create falls back to the default owner, Update keeps the stored one.
type SkinInput struct {
	Name       string
	Weapon     string
	Rarity     string
	Wear       string
	Price      int64
	ImageURL   *string
	FloatValue float64
	OwnerName  string
	Stickers   []string
}

func (in *SkinInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Weapon = strings.TrimSpace(in.Weapon)
	in.Rarity = strings.TrimSpace(in.Rarity)
	in.Wear = strings.TrimSpace(in.Wear)
	in.OwnerName = strings.TrimSpace(in.OwnerName)
	if in.ImageURL != nil && strings.TrimSpace(*in.ImageURL) == "" {
		in.ImageURL = nil
	}
	for i := range in.Stickers {
		in.Stickers[i] = strings.TrimSpace(in.Stickers[i])
	}
}

// Validate normalizes the input in place and checks field ranges.
func (in *SkinInput) Validate() error {
	in.normalize()

	ve := errs.NewValidationError()
	required := []struct{ field, value string }{
		{"name", in.Name},
		{"weapon", in.Weapon},
		{"rarity", in.Rarity},
		{"wear", in.Wear},
	}
	for _, r := range required {
		if r.value == "" {
			ve.Add(r.field, "is required")
		}
	}
	if in.Price < 0 {
		ve.Add("price", "must not be negative")
	}
	if in.FloatValue < 0 || in.FloatValue > 1 {
		ve.Add("float_value", "must be between 0 and 1")
	}
	for _, s := range in.Stickers {
		if s == "" {
			ve.Add("stickers", "must not contain empty names")
			break
		}
	}
	return ve.OrNil()
}

func (f Filters) toModel() models.SkinFilter {
	return models.SkinFilter{
		Rarity:   strings.TrimSpace(f.Rarity),
		Weapon:   strings.TrimSpace(f.Weapon),
		MinPrice: f.MinPrice,
		MaxPrice: f.MaxPrice,
	}
}

func toSkin(m *models.Skin) Skin {
	stickers := m.Stickers
	if stickers == nil {
		stickers = []string{}
	}
	return Skin{
		ID:          m.ID,
		Name:        m.Name,
		Weapon:      m.Weapon,
		Rarity:      m.Rarity,
		Wear:        m.Wear,
		Price:       m.Price,
		ImageURL:    m.ImageURL,
		FloatValue:  m.FloatValue,
		OwnerName:   m.OwnerName,
		IsAvailable: m.IsAvailable,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		Stickers:    stickers,
	}
}
