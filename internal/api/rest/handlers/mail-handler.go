package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/showup-or-else/event_service/internal/dto"
	"github.com/showup-or-else/event_service/internal/services"
	"github.com/showup-or-else/event_service/pkg/utils"
)

// MailHandler exposes the direct send endpoints. Most mail goes through the
// broker; these exist for callers that want a synchronous send.
type MailHandler struct {
	mail *services.MailService
	prod bool
}

func NewMailHandler(mail *services.MailService, prod bool) *MailHandler {
	return &MailHandler{mail: mail, prod: prod}
}

func (h *MailHandler) SendTemplated(ctx *fiber.Ctx) error {
	var body dto.SendMailRequest
	if err := ctx.BodyParser(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid request body")
	}

	if strings.TrimSpace(body.ToEmail) == "" || strings.TrimSpace(body.PlanTitle) == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "to_email and plan_title are required")
	}

	var kind services.MailKind
	switch body.ActionType {
	case "invitation":
		kind = services.MailInvitation
	case "reminder":
		kind = services.MailReminder
	case "update":
		kind = services.MailUpdate
	default:
		return utils.ResponseError(ctx, fiber.StatusBadRequest,
			"action_type must be one of: invitation, reminder, update")
	}

	err := h.mail.Send(kind, body.ToEmail, map[string]string{
		"EventTitle": body.PlanTitle,
		"HostEmail":  body.HostName,
		"Date":       body.EventDate,
		"Time":       body.EventTime,
		"Location":   body.Location,
		"Message":    body.Message,
	})
	if err != nil {
		return respondServiceError(ctx, err, h.prod)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"data": fiber.Map{"to": body.ToEmail}})
}

func (h *MailHandler) SendConfirmation(ctx *fiber.Ctx) error {
	var body dto.SendConfirmationRequest
	if err := ctx.BodyParser(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(body.Email) == "" || strings.TrimSpace(body.Name) == "" || strings.TrimSpace(body.Token) == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "email, name and token are required")
	}

	err := h.mail.Send(services.MailConfirmation, body.Email, map[string]string{
		"Name":  body.Name,
		"Token": body.Token,
	})
	if err != nil {
		return respondServiceError(ctx, err, h.prod)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"data": fiber.Map{"to": body.Email}})
}
