package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/skinmarket/market/internal/domain/errs"
	"github.com/skinmarket/market/internal/domain/logger"
	"github.com/skinmarket/market/internal/gateways/database/models"
	"github.com/skinmarket/market/skinmarket/config"
	"github.com/uptrace/bun"
)

type SkinRepository interface {
	List(ctx context.Context, filter models.SkinFilter) ([]*models.Skin, error)
	GetByID(ctx context.Context, id int64) (*models.Skin, error)
	Create(ctx context.Context, skin *models.Skin) error
	Update(ctx context.Context, skin *models.Skin) error
	Remove(ctx context.Context, id int64) error
}

type skinRepository struct {
	db *bun.DB
}

func NewSkinRepository(db *bun.DB) SkinRepository {
	return &skinRepository{db: db}
}

const stickersColumn = "COALESCE(ARRAY_AGG(ss.sticker_name ORDER BY ss.id) FILTER (WHERE ss.sticker_name IS NOT NULL), '{}') AS stickers"

// selectWithStickers selects skin columns plus the aggregated sticker names.
func (r *skinRepository) selectWithStickers(model interface{}) *bun.SelectQuery {
	return r.db.NewSelect().
		Model(model).
		ColumnExpr("s.*").
		ColumnExpr(stickersColumn).
		Join("LEFT JOIN skin_stickers AS ss ON ss.skin_id = s.id").
		Group("s.id")
}

func (r *skinRepository) List(ctx context.Context, filter models.SkinFilter) ([]*models.Skin, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	ql := logger.NewQueryLogger("list", "skins", filter.Rarity, filter.Weapon)

	var skins []*models.Skin
	query := r.selectWithStickers(&skins).
		Where("s.is_available = ?", true)

	if filter.Rarity != "" {
		query = query.Where("s.rarity = ?", filter.Rarity)
	}
	if filter.Weapon != "" {
		query = query.Where("s.weapon ILIKE ?", "%"+escapeLike(filter.Weapon)+"%")
	}
	if filter.MinPrice != nil {
		query = query.Where("s.price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("s.price <= ?", *filter.MaxPrice)
	}

	err := query.
		OrderExpr("s.price DESC, s.id DESC").
		Scan(ctx)
	ql.Log(err, int64(len(skins)))
	if err != nil {
		return nil, fmt.Errorf("failed to list skins: %w", err)
	}

	return skins, nil
}

func (r *skinRepository) GetByID(ctx context.Context, id int64) (*models.Skin, error) {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	skin := new(models.Skin)
	err := r.selectWithStickers(skin).
		Where("s.id = ?", id).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &errs.NotFoundError{Entity: "skin", ID: id}
		}
		return nil, fmt.Errorf("failed to get skin: %w", err)
	}
	return skin, nil
}

// Create inserts the skin and its sticker rows in one transaction.
func (r *skinRepository) Create(ctx context.Context, skin *models.Skin) error {
	ctx, cancel := context.WithTimeout(ctx, config.TransactionTimeout)
	defer cancel()

	ql := logger.NewQueryLogger("create", "skins", skin.Weapon, skin.Name)

	now := time.Now()
	skin.CreatedAt = now
	skin.UpdatedAt = now

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(skin).Returning("id").Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert skin: %w", err)
		}

		if len(skin.Stickers) == 0 {
			return nil
		}

		stickers := make([]*models.SkinSticker, 0, len(skin.Stickers))
		for _, name := range skin.Stickers {
			stickers = append(stickers, &models.SkinSticker{SkinID: skin.ID, StickerName: name})
		}
		if _, err := tx.NewInsert().Model(&stickers).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert stickers: %w", err)
		}
		return nil
	})
	ql.Log(err, int64(1+len(skin.Stickers)))
	if err != nil {
		return fmt.Errorf("failed to create skin: %w", err)
	}
	return nil
}

// Update replaces the descriptive fields of a skin. An empty OwnerName keeps
// the stored owner.
func (r *skinRepository) Update(ctx context.Context, skin *models.Skin) error {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	ql := logger.NewQueryLogger("update", "skins", skin.ID)

	skin.UpdatedAt = time.Now()
	columns := []string{"name", "weapon", "rarity", "wear", "price", "image_url", "float_value", "updated_at"}
	if skin.OwnerName != "" {
		columns = append(columns, "owner_name")
	}

	result, err := r.db.NewUpdate().
		Model(skin).
		Column(columns...).
		WherePK().
		Exec(ctx)

	return r.checkAffected(ql, skin.ID, result, err, "update")
}

// Remove takes a skin off the market. Rows are never deleted.
func (r *skinRepository) Remove(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, config.DefaultQueryTimeout)
	defer cancel()

	ql := logger.NewQueryLogger("remove", "skins", id)

	result, err := r.db.NewUpdate().
		Model((*models.Skin)(nil)).
		Set("is_available = ?", false).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)

	return r.checkAffected(ql, id, result, err, "remove")
}

func (r *skinRepository) checkAffected(ql *logger.QueryLogger, id int64, result sql.Result, err error, op string) error {
	if err != nil {
		ql.Log(err, 0)
		return fmt.Errorf("failed to %s skin: %w", op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		ql.Log(err, 0)
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	ql.Log(nil, affected)

	if affected == 0 {
		return &errs.NotFoundError{Entity: "skin", ID: id}
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
