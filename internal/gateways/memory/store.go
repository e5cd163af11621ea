package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/skinmarket/market/internal/domain/errs"
	"github.com/skinmarket/market/internal/gateways/database/models"
)

// Store is an in-memory, concurrency-safe replacement for the Postgres
// repositories. A single lock covers skins and offers, so the accept
// transition is atomic here as well.
type Store struct {
	mu          sync.RWMutex
	skins       map[int64]models.Skin
	offers      map[int64]models.TradeOffer
	nextSkinID  int64
	nextOfferID int64
}

func NewStore() *Store {
	return &Store{
		skins:  make(map[int64]models.Skin),
		offers: make(map[int64]models.TradeOffer),
	}
}

// Ping satisfies the health checker.
func (m *Store) Ping(context.Context) error {
	return nil
}

// Skins returns the skin repository view of the store.
func (m *Store) Skins() *SkinRepository {
	return &SkinRepository{store: m}
}

// Trades returns the trade repository view of the store.
func (m *Store) Trades() *TradeRepository {
	return &TradeRepository{store: m}
}

func cloneSkin(s models.Skin) *models.Skin {
	c := s
	c.Stickers = append([]string{}, s.Stickers...)
	if s.ImageURL != nil {
		url := *s.ImageURL
		c.ImageURL = &url
	}
	return &c
}

type SkinRepository struct {
	store *Store
}

func (r *SkinRepository) List(_ context.Context, filter models.SkinFilter) ([]*models.Skin, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	weapon := strings.ToLower(filter.Weapon)
	result := make([]*models.Skin, 0)
	for _, s := range r.store.skins {
		if !s.IsAvailable {
			continue
		}
		if filter.Rarity != "" && s.Rarity != filter.Rarity {
			continue
		}
		if weapon != "" && !strings.Contains(strings.ToLower(s.Weapon), weapon) {
			continue
		}
		if filter.MinPrice != nil && s.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && s.Price > *filter.MaxPrice {
			continue
		}
		result = append(result, cloneSkin(s))
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Price != result[j].Price {
			return result[i].Price > result[j].Price
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (r *SkinRepository) GetByID(_ context.Context, id int64) (*models.Skin, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	s, ok := r.store.skins[id]
	if !ok {
		return nil, &errs.NotFoundError{Entity: "skin", ID: id}
	}
	return cloneSkin(s), nil
}

func (r *SkinRepository) Create(_ context.Context, skin *models.Skin) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.nextSkinID++
	now := time.Now()
	skin.ID = r.store.nextSkinID
	skin.CreatedAt = now
	skin.UpdatedAt = now
	r.store.skins[skin.ID] = *cloneSkin(*skin)
	return nil
}

func (r *SkinRepository) Update(_ context.Context, skin *models.Skin) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.skins[skin.ID]
	if !ok {
		return &errs.NotFoundError{Entity: "skin", ID: skin.ID}
	}

	stored.Name = skin.Name
	stored.Weapon = skin.Weapon
	stored.Rarity = skin.Rarity
	stored.Wear = skin.Wear
	stored.Price = skin.Price
	stored.ImageURL = skin.ImageURL
	stored.FloatValue = skin.FloatValue
	if skin.OwnerName != "" {
		stored.OwnerName = skin.OwnerName
	}
	stored.UpdatedAt = time.Now()
	r.store.skins[skin.ID] = *cloneSkin(stored)
	return nil
}

func (r *SkinRepository) Remove(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.skins[id]
	if !ok {
		return &errs.NotFoundError{Entity: "skin", ID: id}
	}
	stored.IsAvailable = false
	stored.UpdatedAt = time.Now()
	r.store.skins[id] = stored
	return nil
}

type TradeRepository struct {
	store *Store
}

func (r *TradeRepository) List(_ context.Context, filter models.TradeFilter) ([]*models.TradeOfferView, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]*models.TradeOfferView, 0)
	for _, o := range r.store.offers {
		if o.Status != filter.Status {
			continue
		}
		if filter.Participant != "" && o.FromUser != filter.Participant && o.ToUser != filter.Participant {
			continue
		}
		offered, ok1 := r.store.skins[o.OfferedSkinID]
		requested, ok2 := r.store.skins[o.RequestedSkinID]
		if !ok1 || !ok2 {
			continue
		}
		result = append(result, &models.TradeOfferView{
			ID:                o.ID,
			FromUser:          o.FromUser,
			ToUser:            o.ToUser,
			OfferedSkinID:     o.OfferedSkinID,
			RequestedSkinID:   o.RequestedSkinID,
			Message:           o.Message,
			Status:            o.Status,
			CreatedAt:         o.CreatedAt,
			UpdatedAt:         o.UpdatedAt,
			OfferedSkinName:   offered.Name,
			OfferedWeapon:     offered.Weapon,
			OfferedImage:      offered.ImageURL,
			OfferedPrice:      offered.Price,
			RequestedSkinName: requested.Name,
			RequestedWeapon:   requested.Weapon,
			RequestedImage:    requested.ImageURL,
			RequestedPrice:    requested.Price,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

func (r *TradeRepository) Create(_ context.Context, offer *models.TradeOffer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, id := range []int64{offer.OfferedSkinID, offer.RequestedSkinID} {
		s, ok := r.store.skins[id]
		if !ok {
			return &errs.ConflictError{Entity: "trade offer", Reason: "a traded skin no longer exists"}
		}
		if !s.IsAvailable {
			return &errs.ConflictError{Entity: "skin", ID: id, Reason: "is no longer available"}
		}
	}

	r.store.nextOfferID++
	now := time.Now()
	offer.ID = r.store.nextOfferID
	offer.Status = models.TradePending
	offer.CreatedAt = now
	offer.UpdatedAt = now
	r.store.offers[offer.ID] = *offer
	return nil
}

// Transition validates everything before writing, so a rejected transition
// leaves the store unchanged.
func (r *TradeRepository) Transition(_ context.Context, id int64, status models.TradeStatus) (*models.TradeOffer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	offer, ok := r.store.offers[id]
	if !ok {
		return nil, &errs.NotFoundError{Entity: "trade offer", ID: id}
	}
	if offer.Status != models.TradePending {
		return nil, &errs.ConflictError{Entity: "trade offer", ID: id, Reason: fmt.Sprintf("is already %s", offer.Status)}
	}

	now := time.Now()
	if status == models.TradeAccepted {
		offered, ok1 := r.store.skins[offer.OfferedSkinID]
		requested, ok2 := r.store.skins[offer.RequestedSkinID]
		if !ok1 || !ok2 {
			return nil, &errs.ConflictError{Entity: "trade offer", ID: id, Reason: "a traded skin no longer exists"}
		}
		if !offered.IsAvailable || !requested.IsAvailable {
			return nil, &errs.ConflictError{Entity: "trade offer", ID: id, Reason: "a traded skin is no longer available"}
		}

		offered.OwnerName = offer.ToUser
		offered.UpdatedAt = now
		requested.OwnerName = offer.FromUser
		requested.UpdatedAt = now
		r.store.skins[offered.ID] = offered
		r.store.skins[requested.ID] = requested
	}

	offer.Status = status
	offer.UpdatedAt = now
	r.store.offers[id] = offer

	result := offer
	return &result, nil
}
