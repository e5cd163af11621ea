package trades

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/skinmarket/market/internal/domain/errs"
	"github.com/skinmarket/market/internal/gateways/database/models"
)

type Service interface {
	List(ctx context.Context, participant, status string) ([]Offer, error)
	Create(ctx context.Context, input CreateInput) (int64, error)
	SetStatus(ctx context.Context, id int64, status string) error
}

type service struct {
	repository Repository
	skins      SkinLookup
	opts       Options
}

func NewService(repository Repository, skins SkinLookup, opts Options) *service {
	if opts.RecentLimit <= 0 {
		opts.RecentLimit = DefaultRecentLimit
	}
	return &service{
		repository: repository,
		skins:      skins,
		opts:       opts,
	}
}

func (s *service) List(ctx context.Context, participant, status string) ([]Offer, error) {
	st := models.TradePending
	if status = strings.TrimSpace(status); status != "" {
		st = models.TradeStatus(strings.ToLower(status))
	}
	if !st.Valid() {
		return nil, &errs.ValidationError{Fields: map[string]string{
			"status": "must be one of pending, accepted, rejected, cancelled",
		}}
	}

	filter := models.TradeFilter{
		Participant: strings.TrimSpace(participant),
		Status:      st,
	}
	if filter.Participant == "" {
		filter.Limit = s.opts.RecentLimit
	}

	rows, err := s.repository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list trade offers: %w", err)
	}

	offers := make([]Offer, 0, len(rows))
	for _, row := range rows {
		offers = append(offers, toOffer(row))
	}
	return offers, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (int64, error) {
	if err := input.Validate(); err != nil {
		return 0, err
	}

	if err := s.checkSkin(ctx, input.OfferedSkinID, input.FromUser); err != nil {
		return 0, err
	}
	if err := s.checkSkin(ctx, input.RequestedSkinID, input.ToUser); err != nil {
		return 0, err
	}

	offer := &models.TradeOffer{
		FromUser:        input.FromUser,
		ToUser:          input.ToUser,
		OfferedSkinID:   input.OfferedSkinID,
		RequestedSkinID: input.RequestedSkinID,
		Message:         input.Message,
		Status:          models.TradePending,
	}
	if err := s.repository.Create(ctx, offer); err != nil {
		return 0, fmt.Errorf("failed to create trade offer: %w", err)
	}

	slog.Info("Trade offer created",
		slog.Int64("trade_id", offer.ID),
		slog.String("from_user", offer.FromUser),
		slog.String("to_user", offer.ToUser),
		slog.Int64("offered_skin_id", offer.OfferedSkinID),
		slog.Int64("requested_skin_id", offer.RequestedSkinID))

	return offer.ID, nil
}

// checkSkin verifies that a skin can take part in a new offer.
func (s *service) checkSkin(ctx context.Context, id int64, expectedOwner string) error {
	skin, err := s.skins.GetByID(ctx, id)
	if err != nil {
		if errs.IsNotFound(err) {
			return &errs.ConflictError{Entity: "skin", ID: id, Reason: "does not exist"}
		}
		return fmt.Errorf("failed to load skin %d: %w", id, err)
	}
	if !skin.IsAvailable {
		return &errs.ConflictError{Entity: "skin", ID: id, Reason: "is no longer available"}
	}

	if skin.OwnerName != expectedOwner {
		if s.opts.EnforceOwnership {
			return &errs.ConflictError{Entity: "skin", ID: id, Reason: fmt.Sprintf("is not owned by %s", expectedOwner)}
		}
		slog.Warn("Trade offer references a skin the party does not own",
			slog.Int64("skin_id", id),
			slog.String("owner", skin.OwnerName),
			slog.String("party", expectedOwner))
	}
	return nil
}

func (s *service) SetStatus(ctx context.Context, id int64, status string) error {
	ve := errs.NewValidationError()
	if id <= 0 {
		ve.Add("id", "must be a positive integer")
	}
	st := models.TradeStatus(strings.ToLower(strings.TrimSpace(status)))
	if !st.Terminal() {
		ve.Add("status", "must be one of accepted, rejected, cancelled")
	}
	if err := ve.OrNil(); err != nil {
		return err
	}

	offer, err := s.repository.Transition(ctx, id, st)
	if err != nil {
		if errs.IsNotFound(err) || errs.IsConflict(err) {
			return err
		}
		return fmt.Errorf("failed to set trade offer status: %w", err)
	}

	attrs := []any{
		slog.Int64("trade_id", offer.ID),
		slog.String("status", string(offer.Status)),
	}
	if st == models.TradeAccepted {
		attrs = append(attrs,
			slog.String("offered_skin_owner", offer.ToUser),
			slog.String("requested_skin_owner", offer.FromUser))
	}
	slog.Info("Trade offer status changed", attrs...)
	return nil
}
