package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/showup-or-else/event_service/internal/domain"
	"github.com/showup-or-else/event_service/internal/dto"
	"github.com/showup-or-else/event_service/internal/services"
	"github.com/showup-or-else/event_service/pkg/utils"
)

// respondServiceError maps a service error kind onto an HTTP status and the
// {success:false} envelope. Details only leak outside production.
func respondServiceError(ctx *fiber.Ctx, err error, prod bool) error {
	var se *services.ServiceError
	if errors.As(err, &se) {
		status := fiber.StatusInternalServerError
		switch se.Kind {
		case services.KindValidation:
			status = fiber.StatusBadRequest
		case services.KindNotFound:
			status = fiber.StatusNotFound
		case services.KindConflict:
			status = fiber.StatusConflict
		case services.KindDependency:
			status = fiber.StatusInternalServerError
		}
		if !prod && se.Details != "" {
			return utils.ResponseErrorDetails(ctx, status, se.Message, se.Details)
		}
		return utils.ResponseError(ctx, status, se.Message)
	}
	return utils.ResponseError(ctx, fiber.StatusInternalServerError, "internal server error")
}

// hostIdentity prefers the verified session over a client-supplied field.
// The body fallback keeps older clients working; it is an email match only.
func hostIdentity(ctx *fiber.Ctx, bodyEmail string) domain.HostID {
	if claims, ok := ctx.Locals("user").(dto.AuthResponse); ok && claims.Email != "" {
		return domain.NewHostID(claims.Email)
	}
	return domain.NewHostID(bodyEmail)
}
