package handlers

import (
	"context"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/skinmarket/market/backend/models"
	"github.com/skinmarket/market/backend/utils"
	"github.com/skinmarket/market/internal/domain/catalog"
	"github.com/skinmarket/market/skinmarket/config"
)

// SkinsGet lists available skins, or returns one skin when ?id= is given.
func SkinsGet(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if raw := strings.TrimSpace(c.Query("id")); raw != "" {
			id, err := parseInt64(raw)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid skin ID")
			}
			skin, err := webApp.Catalog.Get(c.UserContext(), id)
			if err != nil {
				return err
			}
			return utils.SendJSON(c, fiber.StatusOK, skin)
		}

		minPrice, err := utils.QueryInt64(c, "min_price")
		if err != nil {
			return err
		}
		maxPrice, err := utils.QueryInt64(c, "max_price")
		if err != nil {
			return err
		}

		skins, err := webApp.Catalog.List(c.UserContext(), catalog.Filters{
			Rarity:   c.Query("rarity"),
			Weapon:   c.Query("weapon"),
			MinPrice: minPrice,
			MaxPrice: maxPrice,
			Query:    c.Query("q"),
		})
		if err != nil {
			return err
		}
		return utils.SendJSON(c, fiber.StatusOK, skins)
	}
}

func SkinsCreate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.SkinRequest
		if err := utils.DecodeJSON(c, &req); err != nil {
			return err
		}
		input, err := utils.ValidateSkinRequest(&req, false)
		if err != nil {
			return err
		}

		id, err := webApp.Catalog.Create(c.UserContext(), input)
		if err != nil {
			return err
		}
		return utils.SendCreated(c, id, "Skin added successfully")
	}
}

func SkinsUpdate(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.SkinRequest
		if err := utils.DecodeJSON(c, &req); err != nil {
			return err
		}
		if req.ID == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Skin ID required")
		}
		input, err := utils.ValidateSkinRequest(&req, true)
		if err != nil {
			return err
		}

		if err := webApp.Catalog.Update(c.UserContext(), *req.ID, input); err != nil {
			return err
		}
		return utils.SendMessage(c, "Skin updated successfully")
	}
}

func SkinsDelete(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Query("id"))
		if raw == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Skin ID required")
		}
		id, err := parseInt64(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid skin ID")
		}

		if err := webApp.Catalog.Remove(c.UserContext(), id); err != nil {
			return err
		}
		return utils.SendMessage(c, "Skin removed successfully")
	}
}

// SkinsUploadImage stores a multipart "image" file and returns its public URL.
func SkinsUploadImage(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("image")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Image file required")
		}
		if err := utils.ValidateImageFile(fileHeader); err != nil {
			return err
		}

		file, err := fileHeader.Open()
		if err != nil {
			return err
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return err
		}

		contentType := fileHeader.Header.Get(fiber.HeaderContentType)
		if contentType == "" || contentType == fiber.MIMEOctetStream {
			contentType = mime.TypeByExtension(strings.ToLower(filepath.Ext(fileHeader.Filename)))
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), config.UploadTimeout)
		defer cancel()

		url, err := webApp.Catalog.UploadImage(ctx, fileHeader.Filename, contentType, data)
		if err != nil {
			return err
		}
		return utils.SendJSON(c, fiber.StatusCreated, models.UploadResponse{
			URL:     url,
			Message: "Image uploaded successfully",
		})
	}
}
