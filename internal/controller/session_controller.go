// FILE: internal/controller/session_controller.go
package controller

import (
	"news-feed-client/internal/dto"
	"news-feed-client/internal/pkg/apierror"
	"news-feed-client/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Current(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	Register(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
	UpdateUser(ctx *fiber.Ctx) error
	ChangePassword(ctx *fiber.Ctx) error
}

type sessionController struct {
	service service.ISessionService
}

func NewSessionController(service service.ISessionService) ISessionController {
	return &sessionController{service: service}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session")
	h.Get("/", c.Current)
	h.Post("/login", c.Login)
	h.Post("/register", c.Register)
	h.Post("/logout", c.Logout)
	h.Put("/user", c.UpdateUser)
	h.Post("/password", c.ChangePassword)
}

func (c *sessionController) Current(ctx *fiber.Ctx) error {
	return respondOK(ctx, "Session state", c.service.Current())
}

func (c *sessionController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	user, err := c.service.Login(ctx.Context(), &req)
	if err != nil {
		return respondError(ctx, err)
	}
	return respondOK(ctx, "Login successful", user)
}

func (c *sessionController) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	user, err := c.service.Register(ctx.Context(), &req)
	if err != nil {
		return respondError(ctx, err)
	}
	// No token is issued: the view must follow up with an explicit login.
	return respondOK(ctx, "Registration successful, please log in", user)
}

func (c *sessionController) Logout(ctx *fiber.Ctx) error {
	c.service.Logout(ctx.Context())
	return respondOK(ctx, "Logged out successfully", nil)
}

func (c *sessionController) UpdateUser(ctx *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	user, err := c.service.UpdateUser(ctx.Context(), &req)
	if err != nil {
		return respondError(ctx, err)
	}
	return respondOK(ctx, "Profile updated", user)
}

func (c *sessionController) ChangePassword(ctx *fiber.Ctx) error {
	var req dto.ChangePasswordRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := c.service.ChangePassword(ctx.Context(), &req); err != nil {
		return respondError(ctx, err)
	}
	return respondOK(ctx, "Password changed successfully", nil)
}

func respondOK(ctx *fiber.Ctx, message string, data interface{}) error {
	return ctx.JSON(fiber.Map{
		"success": true,
		"code":    200,
		"message": message,
		"data":    data,
	})
}

func respondError(ctx *fiber.Ctx, err error) error {
	code := errorStatus(err)
	return ctx.Status(code).JSON(fiber.Map{
		"success": false,
		"code":    code,
		"message": apierror.MessageOf(err),
	})
}

// errorStatus maps the fixed error kinds onto facade statuses. An
// auth-rejected error always reaches the view as 401 so it redirects to
// login; backend trouble surfaces as 502 since the facade is a proxy.
func errorStatus(err error) int {
	switch apierror.KindOf(err) {
	case apierror.KindAuthRejected:
		return fiber.StatusUnauthorized
	case apierror.KindValidation:
		return fiber.StatusBadRequest
	case apierror.KindNetwork, apierror.KindRemote:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
