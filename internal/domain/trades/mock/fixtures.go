package mock

import (
	"time"

	models "github.com/skinmarket/market/internal/gateways/database/models"
)

var fixtureTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// SkinA belongs to Admin, SkinB to bob.
var (
	SkinA = &models.Skin{ID: 1, Name: "Fade", Weapon: "Karambit", Rarity: "rare", Price: 100, OwnerName: "Admin", IsAvailable: true}
	SkinB = &models.Skin{ID: 2, Name: "Safari Mesh", Weapon: "P90", Rarity: "common", Price: 50, OwnerName: "bob", IsAvailable: true}
	SkinC = &models.Skin{ID: 3, Name: "Doppler", Weapon: "Bayonet", Rarity: "rare", Price: 80, OwnerName: "alice", IsAvailable: false}
)

var Offers = []*models.TradeOfferView{
	{
		ID:                7,
		FromUser:          "alice",
		ToUser:            "bob",
		OfferedSkinID:     1,
		RequestedSkinID:   2,
		Message:           "fair swap?",
		Status:            models.TradePending,
		CreatedAt:         fixtureTime,
		UpdatedAt:         fixtureTime,
		OfferedSkinName:   "Fade",
		OfferedWeapon:     "Karambit",
		OfferedPrice:      100,
		RequestedSkinName: "Safari Mesh",
		RequestedWeapon:   "P90",
		RequestedPrice:    50,
	},
}
