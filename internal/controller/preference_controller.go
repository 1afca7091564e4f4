// FILE: internal/controller/preference_controller.go
package controller

import (
	"news-feed-client/internal/dto"
	"news-feed-client/internal/entity"
	"news-feed-client/internal/pkg/apierror"
	"news-feed-client/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPreferenceController interface {
	RegisterRoutes(r fiber.Router)
	Get(ctx *fiber.Ctx) error
	Set(ctx *fiber.Ctx) error
	Categories(ctx *fiber.Ctx) error
}

type preferenceController struct {
	preferences service.IPreferenceService
	session     service.ISessionService
}

func NewPreferenceController(preferences service.IPreferenceService, session service.ISessionService) IPreferenceController {
	return &preferenceController{preferences: preferences, session: session}
}

func (c *preferenceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/preferences")
	h.Get("/", c.Get)
	h.Put("/", c.Set)
	h.Get("/categories", c.Categories)
}

func (c *preferenceController) Get(ctx *fiber.Ctx) error {
	username, err := c.viewer()
	if err != nil {
		return respondError(ctx, err)
	}

	categories, err := c.preferences.Get(ctx.Context(), username)
	if err != nil {
		return respondError(ctx, err)
	}
	return respondOK(ctx, "Preferences", categories)
}

func (c *preferenceController) Set(ctx *fiber.Ctx) error {
	username, err := c.viewer()
	if err != nil {
		return respondError(ctx, err)
	}

	var req dto.PreferencesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := c.preferences.Set(ctx.Context(), username, req.Categories); err != nil {
		return respondError(ctx, err)
	}
	return respondOK(ctx, "Preferences saved", req.Categories)
}

func (c *preferenceController) Categories(ctx *fiber.Ctx) error {
	return respondOK(ctx, "Available categories", service.KnownCategories)
}

func (c *preferenceController) viewer() (string, error) {
	session := c.session.Current()
	if session.Status != entity.SessionAuthenticated || session.User == nil {
		return "", apierror.New(apierror.KindAuthRejected, "not authenticated")
	}
	return session.User.Username, nil
}
