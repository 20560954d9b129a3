package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/showup-or-else/event_service/internal/dto"
	"github.com/showup-or-else/event_service/internal/helper"
	"github.com/showup-or-else/event_service/internal/services"
	"github.com/showup-or-else/event_service/pkg/utils"
)

type UserHandler struct {
	svc  services.UserService
	auth helper.Auth
	prod bool
}

func NewUserHandler(svc services.UserService, auth helper.Auth, prod bool) *UserHandler {
	return &UserHandler{svc: svc, auth: auth, prod: prod}
}

func (h *UserHandler) Register(ctx *fiber.Ctx) error {
	var body dto.RegisterRequest
	if err := ctx.BodyParser(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.svc.Register(body); err != nil {
		return respondServiceError(ctx, err, h.prod)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, fiber.Map{
		"message": "registered, check your email to confirm your account",
	})
}

func (h *UserHandler) Login(ctx *fiber.Ctx) error {
	var body dto.UserLogin
	if err := ctx.BodyParser(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "email and password are required")
	}

	user, err := h.svc.Login(body.Email, body.Password)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "invalid email or password")
	}

	token, err := h.auth.GenerateToken(int(user.ID), user.Email)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "could not generate token")
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"token": token})
}

func (h *UserHandler) VerifyEmail(ctx *fiber.Ctx) error {
	var body struct {
		Token string `json:"token"`
	}
	if err := ctx.BodyParser(&body); err != nil || body.Token == "" {
		body.Token = ctx.Query("token")
	}
	if err := h.svc.VerifyEmail(body.Token); err != nil {
		return respondServiceError(ctx, err, h.prod)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"message": "email verified"})
}

// ForgotPassword always answers success so account existence cannot be
// probed.
func (h *UserHandler) ForgotPassword(ctx *fiber.Ctx) error {
	var body struct {
		Email string `json:"email"`
	}
	if err := ctx.BodyParser(&body); err != nil || body.Email == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "email is required")
	}

	if err := h.svc.ForgotPassword(body.Email); err != nil {
		if services.KindOf(err) == services.KindValidation {
			return respondServiceError(ctx, err, h.prod)
		}
		// dependency failures are logged server-side; the answer stays flat
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{})
}

func (h *UserHandler) ResetPassword(ctx *fiber.Ctx) error {
	var body dto.SetPasswordRequest
	if err := ctx.BodyParser(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.svc.ResetPassword(body); err != nil {
		return respondServiceError(ctx, err, h.prod)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"message": "password reset successfully"})
}

func (h *UserHandler) Me(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}
	user, err := h.svc.GetProfile(uint(claims.UserID))
	if err != nil {
		return respondServiceError(ctx, err, h.prod)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"user": user})
}
