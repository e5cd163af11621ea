package models

import (
	"time"

	"github.com/uptrace/bun"
)

const DefaultOwner = "Admin"

// SkinFilter narrows catalog listings. Zero values mean "no constraint".
type SkinFilter struct {
	Rarity   string
	Weapon   string
	MinPrice *int64
	MaxPrice *int64
}

type Skin struct {
	bun.BaseModel `bun:"table:skins,alias:s"`

	ID          int64     `bun:"id,pk,autoincrement"`
	Name        string    `bun:"name,notnull"`
	Weapon      string    `bun:"weapon,notnull"`
	Rarity      string    `bun:"rarity,notnull"`
	Wear        string    `bun:"wear,notnull"`
	Price       int64     `bun:"price,notnull"`
	ImageURL    *string   `bun:"image_url"`
	FloatValue  float64   `bun:"float_value,notnull,type:double precision"`
	OwnerName   string    `bun:"owner_name,notnull,default:'Admin'"`
	IsAvailable bool      `bun:"is_available,notnull,default:true"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt   time.Time `bun:"updated_at,notnull,default:current_timestamp"`

	// Aggregated from skin_stickers on read, written to skin_stickers on create.
	Stickers []string `bun:"stickers,array,scanonly"`
}

type SkinSticker struct {
	bun.BaseModel `bun:"table:skin_stickers,alias:ss"`

	ID          int64  `bun:"id,pk,autoincrement"`
	SkinID      int64  `bun:"skin_id,notnull"`
	StickerName string `bun:"sticker_name,notnull"`
}
