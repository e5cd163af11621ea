package models

import (
	"time"

	"github.com/uptrace/bun"
)

type TradeStatus string

const (
	TradePending   TradeStatus = "pending"
	TradeAccepted  TradeStatus = "accepted"
	TradeRejected  TradeStatus = "rejected"
	TradeCancelled TradeStatus = "cancelled"
)

// Valid reports whether s is one of the known offer states.
func (s TradeStatus) Valid() bool {
	switch s {
	case TradePending, TradeAccepted, TradeRejected, TradeCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed from s.
func (s TradeStatus) Terminal() bool {
	return s == TradeAccepted || s == TradeRejected || s == TradeCancelled
}

// TradeFilter selects offers for listing. An empty Participant lists the most
// recent offers across all users, capped by Limit.
type TradeFilter struct {
	Participant string
	Status      TradeStatus
	Limit       int
}

type TradeOffer struct {
	bun.BaseModel `bun:"table:trade_offers,alias:t"`

	ID              int64       `bun:"id,pk,autoincrement"`
	FromUser        string      `bun:"from_user,notnull"`
	ToUser          string      `bun:"to_user,notnull"`
	OfferedSkinID   int64       `bun:"offered_skin_id,notnull"`
	RequestedSkinID int64       `bun:"requested_skin_id,notnull"`
	Message         string      `bun:"message,notnull,default:''"`
	Status          TradeStatus `bun:"status,notnull,default:'pending'"`
	CreatedAt       time.Time   `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt       time.Time   `bun:"updated_at,notnull,default:current_timestamp"`
}

// TradeOfferView is an offer joined with the current state of both skins.
type TradeOfferView struct {
	ID              int64       `bun:"id"`
	FromUser        string      `bun:"from_user"`
	ToUser          string      `bun:"to_user"`
	OfferedSkinID   int64       `bun:"offered_skin_id"`
	RequestedSkinID int64       `bun:"requested_skin_id"`
	Message         string      `bun:"message"`
	Status          TradeStatus `bun:"status"`
	CreatedAt       time.Time   `bun:"created_at"`
	UpdatedAt       time.Time   `bun:"updated_at"`

	OfferedSkinName   string  `bun:"offered_skin_name"`
	OfferedWeapon     string  `bun:"offered_weapon"`
	OfferedImage      *string `bun:"offered_image"`
	OfferedPrice      int64   `bun:"offered_price"`
	RequestedSkinName string  `bun:"requested_skin_name"`
	RequestedWeapon   string  `bun:"requested_weapon"`
	RequestedImage    *string `bun:"requested_image"`
	RequestedPrice    int64   `bun:"requested_price"`
}
