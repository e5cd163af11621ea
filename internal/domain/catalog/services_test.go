package catalog

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/skinmarket/market/internal/domain/catalog/mock"
	"github.com/skinmarket/market/internal/domain/errs"
	"github.com/skinmarket/market/internal/gateways/database/models"
	"go.uber.org/mock/gomock"
)

func skinIDs(skins []Skin) []int64 {
	ids := make([]int64, 0, len(skins))
	for _, s := range skins {
		ids = append(ids, s.ID)
	}
	return ids
}

func int64Ptr(v int64) *int64 { return &v }

func Test_service_List(t *testing.T) {
	tests := []struct {
		name     string
		filters  Filters
		repoCall bool
		want     []int64
		wantErr  bool
	}{
		{
			name:     "All",
			filters:  Filters{},
			repoCall: true,
			want:     []int64{1, 2, 3},
		},
		{
			name:     "Fuzzy query",
			filters:  Filters{Query: "awp asii"},
			repoCall: true,
			want:     []int64{2},
		},
		{
			name:     "Fuzzy query without hits",
			filters:  Filters{Query: "zzzz"},
			repoCall: true,
			want:     []int64{},
		},
		{
			name:     "Inverted price range",
			filters:  Filters{MinPrice: int64Ptr(100), MaxPrice: int64Ptr(50)},
			repoCall: false,
			want:     []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mock.NewMockRepository(gomock.NewController(t))
			if tt.repoCall {
				repo.EXPECT().
					List(gomock.Any(), tt.filters.toModel()).
					Return(mock.Skins, nil)
			}
			s := NewService(repo, nil)

			got, err := s.List(context.Background(), tt.filters)
			if (err != nil) != tt.wantErr {
				t.Errorf("service.List() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if ids := skinIDs(got); !reflect.DeepEqual(ids, tt.want) {
				t.Errorf("service.List() ids = %v, want %v", ids, tt.want)
			}
		})
	}
}

func Test_service_List_EmptyStickers(t *testing.T) {
	repo := mock.NewMockRepository(gomock.NewController(t))
	repo.EXPECT().
		List(gomock.Any(), gomock.Any()).
		Return([]*models.Skin{mock.Skins[1]}, nil)

	got, err := NewService(repo, nil).List(context.Background(), Filters{})
	if err != nil {
		t.Fatalf("service.List() error = %v", err)
	}
	if got[0].Stickers == nil || len(got[0].Stickers) != 0 {
		t.Errorf("service.List() stickers = %#v, want empty slice", got[0].Stickers)
	}
}

func Test_service_Create(t *testing.T) {
	valid := SkinInput{
		Name:       " Redline ",
		Weapon:     "AK-47",
		Rarity:     "Classified",
		Wear:       "Field-Tested",
		Price:      2500,
		FloatValue: 0.21,
		Stickers:   []string{"Crown (Foil)", "Howl"},
	}

	t.Run("Defaults owner and passes stickers", func(t *testing.T) {
		repo := mock.NewMockRepository(gomock.NewController(t))
		repo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, skin *models.Skin) error {
				if skin.OwnerName != models.DefaultOwner {
					t.Errorf("owner = %q, want %q", skin.OwnerName, models.DefaultOwner)
				}
				if skin.Name != "Redline" {
					t.Errorf("name = %q, want trimmed", skin.Name)
				}
				if !skin.IsAvailable {
					t.Errorf("new skin is not available")
				}
				if !reflect.DeepEqual(skin.Stickers, []string{"Crown (Foil)", "Howl"}) {
					t.Errorf("stickers = %v", skin.Stickers)
				}
				skin.ID = 42
				return nil
			})

		id, err := NewService(repo, nil).Create(context.Background(), valid)
		if err != nil {
			t.Fatalf("service.Create() error = %v", err)
		}
		if id != 42 {
			t.Errorf("service.Create() id = %d, want 42", id)
		}
	})

	invalid := []struct {
		name  string
		input SkinInput
		field string
	}{
		{"Missing name", SkinInput{Weapon: "AWP", Rarity: "Covert", Wear: "Factory New"}, "name"},
		{"Negative price", SkinInput{Name: "a", Weapon: "b", Rarity: "c", Wear: "d", Price: -1}, "price"},
		{"Float out of range", SkinInput{Name: "a", Weapon: "b", Rarity: "c", Wear: "d", FloatValue: 1.5}, "float_value"},
		{"Blank sticker", SkinInput{Name: "a", Weapon: "b", Rarity: "c", Wear: "d", Stickers: []string{" "}}, "stickers"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			// No EXPECT: any repository call fails the test.
			repo := mock.NewMockRepository(gomock.NewController(t))

			_, err := NewService(repo, nil).Create(context.Background(), tt.input)
			var ve *errs.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("service.Create() error = %v, want ValidationError", err)
			}
			if _, ok := ve.Fields[tt.field]; !ok {
				t.Errorf("service.Create() fields = %v, want %q", ve.Fields, tt.field)
			}
		})
	}
}

func Test_service_Update(t *testing.T) {
	input := SkinInput{Name: "Redline", Weapon: "AK-47", Rarity: "Classified", Wear: "Field-Tested", Price: 10}

	t.Run("Keeps owner when omitted", func(t *testing.T) {
		repo := mock.NewMockRepository(gomock.NewController(t))
		repo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, skin *models.Skin) error {
				if skin.ID != 1 || skin.OwnerName != "" {
					t.Errorf("update skin = %+v, want id 1 with empty owner", skin)
				}
				return nil
			})

		if err := NewService(repo, nil).Update(context.Background(), 1, input); err != nil {
			t.Errorf("service.Update() error = %v", err)
		}
	})

	t.Run("Not found", func(t *testing.T) {
		repo := mock.NewMockRepository(gomock.NewController(t))
		repo.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			Return(&errs.NotFoundError{Entity: "skin", ID: int64(99)})

		err := NewService(repo, nil).Update(context.Background(), 99, input)
		if !errs.IsNotFound(err) {
			t.Errorf("service.Update() error = %v, want NotFoundError", err)
		}
	})
}

func Test_service_Remove(t *testing.T) {
	tests := []struct {
		name    string
		id      int64
		repoErr error
		check   func(error) bool
	}{
		{"Success", 3, nil, func(err error) bool { return err == nil }},
		{"Invalid id", 0, nil, errs.IsValidation},
		{"Not found", 7, &errs.NotFoundError{Entity: "skin", ID: int64(7)}, errs.IsNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mock.NewMockRepository(gomock.NewController(t))
			if tt.id > 0 {
				repo.EXPECT().Remove(gomock.Any(), tt.id).Return(tt.repoErr)
			}

			err := NewService(repo, nil).Remove(context.Background(), tt.id)
			if !tt.check(err) {
				t.Errorf("service.Remove() unexpected error = %v", err)
			}
		})
	}
}

func Test_service_UploadImage(t *testing.T) {
	repo := mock.NewMockRepository(gomock.NewController(t))

	if _, err := NewService(repo, nil).UploadImage(context.Background(), "a.png", "image/png", []byte{1}); !errors.Is(err, ErrImagesDisabled) {
		t.Errorf("service.UploadImage() without store error = %v, want ErrImagesDisabled", err)
	}

	images := mock.NewMockImageStore(gomock.NewController(t))
	images.EXPECT().
		Upload(gomock.Any(), "a.png", "image/png", []byte{1}).
		Return("https://cdn.example.com/skins/a.png", nil)

	url, err := NewService(repo, images).UploadImage(context.Background(), "a.png", "image/png", []byte{1})
	if err != nil {
		t.Fatalf("service.UploadImage() error = %v", err)
	}
	if url != "https://cdn.example.com/skins/a.png" {
		t.Errorf("service.UploadImage() url = %q", url)
	}
}
