package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/skinmarket/market/internal/domain/errs"
	"github.com/skinmarket/market/internal/domain/logger"
	"github.com/skinmarket/market/internal/gateways/database/models"
	"github.com/skinmarket/market/skinmarket/config"
	"github.com/uptrace/bun"
)

type TradeRepository interface {
	List(ctx context.Context, filter models.TradeFilter) ([]*models.TradeOfferView, error)
	Create(ctx context.Context, offer *models.TradeOffer) error
	Transition(ctx context.Context, id int64, status models.TradeStatus) (*models.TradeOffer, error)
}

type tradeRepository struct {
	db *bun.DB
}

func NewTradeRepository(db *bun.DB) TradeRepository {
	return &tradeRepository{db: db}
}

func (r *tradeRepository) List(ctx context.Context, filter models.TradeFilter) ([]*models.TradeOfferView, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	ql := logger.NewQueryLogger("list", "trade_offers", filter.Participant, filter.Status)

	query := r.db.NewSelect().
		TableExpr("trade_offers AS t").
		ColumnExpr("t.*").
		ColumnExpr("os.name AS offered_skin_name, os.weapon AS offered_weapon, os.image_url AS offered_image, os.price AS offered_price").
		ColumnExpr("rs.name AS requested_skin_name, rs.weapon AS requested_weapon, rs.image_url AS requested_image, rs.price AS requested_price").
		Join("JOIN skins AS os ON os.id = t.offered_skin_id").
		Join("JOIN skins AS rs ON rs.id = t.requested_skin_id").
		Where("t.status = ?", filter.Status)

	if filter.Participant != "" {
		query = query.Where("(t.from_user = ? OR t.to_user = ?)", filter.Participant, filter.Participant)
	}
	query = query.OrderExpr("t.created_at DESC, t.id DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var offers []*models.TradeOfferView
	err := query.Scan(ctx, &offers)
	ql.Log(err, int64(len(offers)))
	if err != nil {
		return nil, fmt.Errorf("failed to list trade offers: %w", err)
	}
	return offers, nil
}

// Create inserts a pending offer. Both skins are share-locked and checked in
// the same transaction, so a concurrent Remove cannot slip in between.
func (r *tradeRepository) Create(ctx context.Context, offer *models.TradeOffer) error {
	ctx, cancel := context.WithTimeout(ctx, config.TransactionTimeout)
	defer cancel()

	ql := logger.NewQueryLogger("create", "trade_offers", offer.FromUser, offer.ToUser)

	now := time.Now()
	offer.CreatedAt = now
	offer.UpdatedAt = now
	offer.Status = models.TradePending

	err := r.db.RunInTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, func(ctx context.Context, tx bun.Tx) error {
		if err := lockTradedSkins(ctx, tx, offer, "SHARE"); err != nil {
			return err
		}
		if _, err := tx.NewInsert().Model(offer).Returning("id").Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert trade offer: %w", err)
		}
		return nil
	})
	ql.Log(err, 1)
	if err != nil {
		if errs.IsConflict(err) {
			return err
		}
		return fmt.Errorf("failed to create trade offer: %w", err)
	}
	return nil
}

// Transition settles a pending offer. The offer row is locked first; on
// acceptance both skin rows are locked in id order and their owners swapped.
// Every statement runs in the same transaction, so a failure anywhere leaves
// owners and status untouched.
func (r *tradeRepository) Transition(ctx context.Context, id int64, status models.TradeStatus) (*models.TradeOffer, error) {
	ctx, cancel := context.WithTimeout(ctx, config.TransactionTimeout)
	defer cancel()

	ql := logger.NewQueryLogger("transition", "trade_offers", id, status)

	offer := new(models.TradeOffer)
	err := r.db.RunInTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewSelect().
			Model(offer).
			Where("t.id = ?", id).
			For("UPDATE").
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return &errs.NotFoundError{Entity: "trade offer", ID: id}
			}
			return fmt.Errorf("failed to lock trade offer: %w", err)
		}

		if offer.Status != models.TradePending {
			return &errs.ConflictError{Entity: "trade offer", ID: id, Reason: fmt.Sprintf("is already %s", offer.Status)}
		}

		now := time.Now()
		if status == models.TradeAccepted {
			if err := swapOwners(ctx, tx, offer, now); err != nil {
				return err
			}
		}

		_, err = tx.NewUpdate().
			Model((*models.TradeOffer)(nil)).
			Set("status = ?", status).
			Set("updated_at = ?", now).
			Where("id = ?", id).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to update trade offer status: %w", err)
		}

		offer.Status = status
		offer.UpdatedAt = now
		return nil
	})
	ql.Log(err, 1)
	if err != nil {
		return nil, err
	}

	slog.Info("Trade offer settled",
		slog.String("type", "db"),
		slog.Int64("trade_id", id),
		slog.String("status", string(status)))

	return offer, nil
}

// lockTradedSkins locks both skins of an offer in id order and checks that
// they still exist and are available.
func lockTradedSkins(ctx context.Context, tx bun.Tx, offer *models.TradeOffer, mode string) error {
	var skins []models.Skin
	err := tx.NewSelect().
		Model(&skins).
		Column("id", "owner_name", "is_available").
		Where("s.id IN (?)", bun.In([]int64{offer.OfferedSkinID, offer.RequestedSkinID})).
		OrderExpr("s.id ASC").
		For(mode).
		Scan(ctx)
	if err != nil {
		return fmt.Errorf("failed to lock skins: %w", err)
	}
	if len(skins) != 2 {
		return &errs.ConflictError{Entity: "trade offer", ID: offer.ID, Reason: "a traded skin no longer exists"}
	}
	for _, s := range skins {
		if !s.IsAvailable {
			return &errs.ConflictError{Entity: "skin", ID: s.ID, Reason: "is no longer available"}
		}
	}
	return nil
}

// swapOwners gives the offered skin to ToUser and the requested skin to FromUser.
func swapOwners(ctx context.Context, tx bun.Tx, offer *models.TradeOffer, now time.Time) error {
	if err := lockTradedSkins(ctx, tx, offer, "UPDATE"); err != nil {
		return err
	}

	transfers := []struct {
		skinID int64
		owner  string
	}{
		{offer.OfferedSkinID, offer.ToUser},
		{offer.RequestedSkinID, offer.FromUser},
	}
	for _, t := range transfers {
		_, err := tx.NewUpdate().
			Model((*models.Skin)(nil)).
			Set("owner_name = ?", t.owner).
			Set("updated_at = ?", now).
			Where("id = ?", t.skinID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to transfer skin %d: %w", t.skinID, err)
		}
	}
	return nil
}
