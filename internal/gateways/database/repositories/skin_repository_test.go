package repositories

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/skinmarket/market/internal/domain/errs"
	"github.com/skinmarket/market/internal/gateways/database/models"
)

func Test_skinRepository_Remove(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		check    func(error) bool
	}{
		{"Soft deletes", 1, func(err error) bool { return err == nil }},
		{"Unknown id", 0, errs.IsNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			mock.ExpectExec(`(?i)UPDATE "skins" AS "s" SET is_available = false`).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			err := NewSkinRepository(db).Remove(context.Background(), 5)
			if !tt.check(err) {
				t.Errorf("skinRepository.Remove() unexpected error = %v", err)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("unmet expectations: %v", err)
			}
		})
	}
}

func Test_skinRepository_Update_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec(`UPDATE "skins" AS "s" SET .*"name" = 'Redline'`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := NewSkinRepository(db).Update(context.Background(), &models.Skin{ID: 9, Name: "Redline", Weapon: "AK-47"})
	if !errs.IsNotFound(err) {
		t.Errorf("skinRepository.Update() error = %v, want NotFoundError", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func Test_escapeLike(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"AK-47", "AK-47"},
		{"100%", `100\%`},
		{"m4a1_s", `m4a1\_s`},
		{`a\b`, `a\\b`},
	}
	for _, tt := range tests {
		if got := escapeLike(tt.in); got != tt.want {
			t.Errorf("escapeLike(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func Test_skinRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "skins" .*RETURNING`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))
	mock.ExpectQuery(`INSERT INTO "skin_stickers" .*\(DEFAULT, 5, 'Crown'\), \(DEFAULT, 5, 'Howl'\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)).AddRow(int64(2)))
	mock.ExpectCommit()

	skin := &models.Skin{Name: "Redline", Weapon: "AK-47", Rarity: "rare", Wear: "Field-Tested", Price: 100, OwnerName: "Admin", IsAvailable: true, Stickers: []string{"Crown", "Howl"}}
	if err := NewSkinRepository(db).Create(context.Background(), skin); err != nil {
		t.Fatalf("skinRepository.Create() error = %v", err)
	}
	if skin.ID != 5 {
		t.Errorf("skinRepository.Create() id = %d, want 5", skin.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func Test_skinRepository_Create_RollsBackOnStickerFailure(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "skins"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))
	mock.ExpectQuery(`INSERT INTO "skin_stickers"`).
		WillReturnError(errors.New("connection reset by peer"))
	mock.ExpectRollback()

	skin := &models.Skin{Name: "Redline", Weapon: "AK-47", Rarity: "rare", Wear: "Field-Tested", Price: 100, IsAvailable: true, Stickers: []string{"Crown"}}
	if err := NewSkinRepository(db).Create(context.Background(), skin); err == nil {
		t.Fatal("skinRepository.Create() error = nil, want failure")
	}
	// No ExpectCommit: a commit here fails ExpectationsWereMet.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func Test_skinRepository_List(t *testing.T) {
	db, mock := newMockDB(t)

	fragments := []string{
		`SELECT s.*, COALESCE(ARRAY_AGG(ss.sticker_name ORDER BY ss.id) FILTER (WHERE ss.sticker_name IS NOT NULL), '{}') AS stickers`,
		`FROM "skins" AS "s" LEFT JOIN skin_stickers AS ss ON ss.skin_id = s.id`,
		`WHERE (s.is_available = TRUE) AND (s.rarity = 'rare') AND (s.weapon ILIKE '%ak%')`,
		`AND (s.price >= 50) AND (s.price <= 100)`,
		`GROUP BY`,
		`ORDER BY s.price DESC, s.id DESC`,
	}
	quoted := make([]string, 0, len(fragments))
	for _, f := range fragments {
		quoted = append(quoted, regexp.QuoteMeta(f))
	}
	mock.ExpectQuery(`(?i)` + strings.Join(quoted, `.*`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "stickers"}).
			AddRow(int64(3), "Redline", int64(100), []byte(`{Crown,Howl}`)))

	minPrice, maxPrice := int64(50), int64(100)
	skins, err := NewSkinRepository(db).List(context.Background(), models.SkinFilter{
		Rarity:   "rare",
		Weapon:   "ak",
		MinPrice: &minPrice,
		MaxPrice: &maxPrice,
	})
	if err != nil {
		t.Fatalf("skinRepository.List() error = %v", err)
	}
	if len(skins) != 1 || skins[0].ID != 3 || len(skins[0].Stickers) != 2 {
		t.Errorf("skinRepository.List() = %+v", skins)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func Test_skinRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`FROM "skins" AS "s" .*WHERE \(s\.id = 42\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	_, err := NewSkinRepository(db).GetByID(context.Background(), 42)
	if !errs.IsNotFound(err) {
		t.Errorf("skinRepository.GetByID() error = %v, want NotFoundError", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
