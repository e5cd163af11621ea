package memory

import (
	"context"
	"testing"

	"github.com/skinmarket/market/internal/domain/errs"
	"github.com/skinmarket/market/internal/gateways/database/models"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, s *Store) (a, b, c *models.Skin) {
	t.Helper()
	ctx := context.Background()
	a = &models.Skin{Name: "Fade", Weapon: "Karambit", Rarity: "rare", Price: 100, OwnerName: "Admin", IsAvailable: true, Stickers: []string{"Titan"}}
	b = &models.Skin{Name: "Safari Mesh", Weapon: "P90", Rarity: "common", Price: 50, OwnerName: "bob", IsAvailable: true}
	c = &models.Skin{Name: "Doppler", Weapon: "Karambit", Rarity: "rare", Price: 50, OwnerName: "Admin", IsAvailable: true}
	for _, sk := range []*models.Skin{a, b, c} {
		require.NoError(t, s.Skins().Create(ctx, sk))
	}
	return a, b, c
}

func ids(skins []*models.Skin) []int64 {
	out := make([]int64, 0, len(skins))
	for _, s := range skins {
		out = append(out, s.ID)
	}
	return out
}

func int64Ptr(v int64) *int64 { return &v }

func TestSkinRepository_ListFilters(t *testing.T) {
	s := NewStore()
	a, b, c := seed(t, s)
	ctx := context.Background()

	tests := []struct {
		name   string
		filter models.SkinFilter
		want   []int64
	}{
		{"price desc, ties by id desc", models.SkinFilter{}, []int64{a.ID, c.ID, b.ID}},
		{"rarity exact", models.SkinFilter{Rarity: "rare"}, []int64{a.ID, c.ID}},
		{"rarity is case sensitive", models.SkinFilter{Rarity: "Rare"}, []int64{}},
		{"weapon substring", models.SkinFilter{Weapon: "karam"}, []int64{a.ID, c.ID}},
		{"inclusive bounds", models.SkinFilter{MinPrice: int64Ptr(50), MaxPrice: int64Ptr(50)}, []int64{c.ID, b.ID}},
		{"combined", models.SkinFilter{Rarity: "rare", MaxPrice: int64Ptr(60)}, []int64{c.ID}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Skins().List(ctx, tt.filter)
			require.NoError(t, err)
			require.Equal(t, tt.want, ids(got))
		})
	}
}

func TestSkinRepository_SoftDelete(t *testing.T) {
	s := NewStore()
	a, _, _ := seed(t, s)
	ctx := context.Background()

	require.NoError(t, s.Skins().Remove(ctx, a.ID))

	got, err := s.Skins().List(ctx, models.SkinFilter{})
	require.NoError(t, err)
	require.NotContains(t, ids(got), a.ID)

	stored, err := s.Skins().GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.False(t, stored.IsAvailable)
	require.Equal(t, []string{"Titan"}, stored.Stickers)

	require.True(t, errs.IsNotFound(s.Skins().Remove(ctx, 999)))
}

func TestSkinRepository_UpdateKeepsOwner(t *testing.T) {
	s := NewStore()
	_, b, _ := seed(t, s)
	ctx := context.Background()

	require.NoError(t, s.Skins().Update(ctx, &models.Skin{ID: b.ID, Name: "Ash Wood", Weapon: "P90", Rarity: "common", Price: 60}))

	stored, err := s.Skins().GetByID(ctx, b.ID)
	require.NoError(t, err)
	require.Equal(t, "Ash Wood", stored.Name)
	require.Equal(t, "bob", stored.OwnerName)

	require.True(t, errs.IsNotFound(s.Skins().Update(ctx, &models.Skin{ID: 999})))
}

func TestTradeRepository_Transition(t *testing.T) {
	s := NewStore()
	a, b, _ := seed(t, s)
	ctx := context.Background()

	offer := &models.TradeOffer{FromUser: "alice", ToUser: "bob", OfferedSkinID: a.ID, RequestedSkinID: b.ID}
	require.NoError(t, s.Trades().Create(ctx, offer))
	require.Equal(t, models.TradePending, offer.Status)

	settled, err := s.Trades().Transition(ctx, offer.ID, models.TradeAccepted)
	require.NoError(t, err)
	require.Equal(t, models.TradeAccepted, settled.Status)

	gotA, _ := s.Skins().GetByID(ctx, a.ID)
	gotB, _ := s.Skins().GetByID(ctx, b.ID)
	require.Equal(t, "bob", gotA.OwnerName)
	require.Equal(t, "alice", gotB.OwnerName)

	_, err = s.Trades().Transition(ctx, offer.ID, models.TradeRejected)
	require.True(t, errs.IsConflict(err))

	_, err = s.Trades().Transition(ctx, 999, models.TradeRejected)
	require.True(t, errs.IsNotFound(err))

	accepted, err := s.Trades().List(ctx, models.TradeFilter{Status: models.TradeAccepted})
	require.NoError(t, err)
	require.Len(t, accepted, 1)
	require.Equal(t, "Fade", accepted[0].OfferedSkinName)
}

func TestTradeRepository_TransitionLeavesOwnersOnConflict(t *testing.T) {
	s := NewStore()
	a, b, _ := seed(t, s)
	ctx := context.Background()

	offer := &models.TradeOffer{FromUser: "alice", ToUser: "bob", OfferedSkinID: a.ID, RequestedSkinID: b.ID}
	require.NoError(t, s.Trades().Create(ctx, offer))
	require.NoError(t, s.Skins().Remove(ctx, b.ID))

	_, err := s.Trades().Transition(ctx, offer.ID, models.TradeAccepted)
	require.True(t, errs.IsConflict(err))

	gotA, _ := s.Skins().GetByID(ctx, a.ID)
	require.Equal(t, "Admin", gotA.OwnerName)

	pending, err := s.Trades().List(ctx, models.TradeFilter{Participant: "alice", Status: models.TradePending})
	require.NoError(t, err)
	require.Len(t, pending, 1)
}

func TestTradeRepository_ListLimit(t *testing.T) {
	s := NewStore()
	a, b, _ := seed(t, s)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Trades().Create(ctx, &models.TradeOffer{FromUser: "alice", ToUser: "bob", OfferedSkinID: a.ID, RequestedSkinID: b.ID}))
	}

	got, err := s.Trades().List(ctx, models.TradeFilter{Status: models.TradePending, Limit: 3})
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, int64(5), got[0].ID)
}

func TestTradeRepository_CreateRejectsUnavailableSkin(t *testing.T) {
	s := NewStore()
	a, b, _ := seed(t, s)
	ctx := context.Background()

	require.NoError(t, s.Skins().Remove(ctx, b.ID))

	err := s.Trades().Create(ctx, &models.TradeOffer{FromUser: "alice", ToUser: "bob", OfferedSkinID: a.ID, RequestedSkinID: b.ID})
	require.True(t, errs.IsConflict(err))

	err = s.Trades().Create(ctx, &models.TradeOffer{FromUser: "alice", ToUser: "bob", OfferedSkinID: a.ID, RequestedSkinID: 999})
	require.True(t, errs.IsConflict(err))

	pending, err := s.Trades().List(ctx, models.TradeFilter{Status: models.TradePending})
	require.NoError(t, err)
	require.Empty(t, pending)
}
