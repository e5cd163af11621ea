package models

// Pointer fields distinguish "absent" from a zero value.

type SkinRequest struct {
	ID         *int64   `json:"id"`
	Name       *string  `json:"name"`
	Weapon     *string  `json:"weapon"`
	Rarity     *string  `json:"rarity"`
	Wear       *string  `json:"wear"`
	Price      *int64   `json:"price"`
	ImageURL   *string  `json:"image_url"`
	FloatValue *float64 `json:"float_value"`
	OwnerName  *string  `json:"owner_name"`
	Stickers   []string `json:"stickers"`
}

type TradeCreateRequest struct {
	FromUser        *string `json:"from_user"`
	ToUser          *string `json:"to_user"`
	OfferedSkinID   *int64  `json:"offered_skin_id"`
	RequestedSkinID *int64  `json:"requested_skin_id"`
	Message         *string `json:"message"`
}

type TradeStatusRequest struct {
	ID     *int64  `json:"id"`
	Status *string `json:"status"`
}
