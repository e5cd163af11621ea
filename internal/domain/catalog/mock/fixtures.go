package mock

import (
	"time"

	models "github.com/skinmarket/market/internal/gateways/database/models"
)

var fixtureTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// Skins is ordered the way the repository returns listings: price descending.
var Skins = []*models.Skin{
	{
		ID:          1,
		Name:        "Redline",
		Weapon:      "AK-47",
		Rarity:      "Classified",
		Wear:        "Field-Tested",
		Price:       2500,
		FloatValue:  0.21,
		OwnerName:   "Admin",
		IsAvailable: true,
		CreatedAt:   fixtureTime,
		UpdatedAt:   fixtureTime,
		Stickers:    []string{"Crown (Foil)"},
	},
	{
		ID:          2,
		Name:        "Asiimov",
		Weapon:      "AWP",
		Rarity:      "Covert",
		Wear:        "Battle-Scarred",
		Price:       1800,
		FloatValue:  0.74,
		OwnerName:   "bob",
		IsAvailable: true,
		CreatedAt:   fixtureTime,
		UpdatedAt:   fixtureTime,
	},
	{
		ID:          3,
		Name:        "Hyper Beast",
		Weapon:      "M4A1-S",
		Rarity:      "Covert",
		Wear:        "Minimal Wear",
		Price:       900,
		FloatValue:  0.09,
		OwnerName:   "Admin",
		IsAvailable: true,
		CreatedAt:   fixtureTime,
		UpdatedAt:   fixtureTime,
	},
}
