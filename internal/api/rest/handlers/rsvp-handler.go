package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/showup-or-else/event_service/internal/dto"
	"github.com/showup-or-else/event_service/internal/services"
	"github.com/showup-or-else/event_service/pkg/utils"
)

type RSVPHandler struct {
	svc    services.RSVPService
	access services.AccessService
	prod   bool
}

func NewRSVPHandler(svc services.RSVPService, access services.AccessService, prod bool) *RSVPHandler {
	return &RSVPHandler{svc: svc, access: access, prod: prod}
}

// Handle dispatches POST /api/rsvp on the action field.
func (h *RSVPHandler) Handle(ctx *fiber.Ctx) error {
	var body dto.RSVPActionRequest
	if err := ctx.BodyParser(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid request body")
	}

	switch body.Action {
	case "rsvp":
		return h.submitRSVP(ctx, body)
	case "getParticipants":
		return h.getParticipants(ctx, body)
	case "addParticipant":
		return h.addParticipant(ctx, body)
	case "removeParticipant":
		return h.removeParticipant(ctx, body)
	case "createToken":
		return h.createToken(ctx, body)
	case "addInvitees":
		return h.addInvitees(ctx, body)
	default:
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "unknown action")
	}
}

func (h *RSVPHandler) submitRSVP(ctx *fiber.Ctx, body dto.RSVPActionRequest) error {
	if body.EventID == 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "event_id is required")
	}
	willAttend := true
	if body.WillAttend != nil {
		willAttend = *body.WillAttend
	}
	participant, err := h.svc.SubmitRSVP(body.EventID, dto.RSVPRequest{
		Name:       body.Name,
		Email:      body.Email,
		WillAttend: willAttend,
		Message:    body.Message,
		Token:      body.Token,
	})
	if err != nil {
		return respondServiceError(ctx, err, h.prod)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"participant": participant})
}

func (h *RSVPHandler) getParticipants(ctx *fiber.Ctx, body dto.RSVPActionRequest) error {
	if body.EventID == 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "event_id is required")
	}
	participants, err := h.svc.GetParticipants(body.EventID)
	if err != nil {
		return respondServiceError(ctx, err, h.prod)
	}
	attending, flaking := services.PartitionParticipants(participants)
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{
		"participants": participants,
		"attending":    attending,
		"flaking":      flaking,
	})
}

func (h *RSVPHandler) addParticipant(ctx *fiber.Ctx, body dto.RSVPActionRequest) error {
	if body.EventID == 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "event_id is required")
	}
	participant, err := h.svc.AddParticipant(hostIdentity(ctx, body.InvitedBy), body.EventID, dto.AddParticipantRequest{
		Name:    body.Name,
		Email:   body.Email,
		Message: body.Message,
	})
	if err != nil {
		return respondServiceError(ctx, err, h.prod)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"participant": participant})
}

func (h *RSVPHandler) removeParticipant(ctx *fiber.Ctx, body dto.RSVPActionRequest) error {
	if body.ParticipantID == 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "participant_id is required")
	}
	if err := h.svc.RemoveParticipant(hostIdentity(ctx, body.InvitedBy), body.ParticipantID); err != nil {
		return respondServiceError(ctx, err, h.prod)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{})
}

func (h *RSVPHandler) createToken(ctx *fiber.Ctx, body dto.RSVPActionRequest) error {
	if body.EventID == 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "event_id is required")
	}
	token, err := h.access.CreateToken(hostIdentity(ctx, body.InvitedBy), body.EventID, body.Email, body.ExpiresInDays)
	if err != nil {
		return respondServiceError(ctx, err, h.prod)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, fiber.Map{"token": token})
}

func (h *RSVPHandler) addInvitees(ctx *fiber.Ctx, body dto.RSVPActionRequest) error {
	if body.EventID == 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "event_id is required")
	}
	invitees, err := h.access.AddInvitees(hostIdentity(ctx, body.InvitedBy), body.EventID, body.Emails)
	if err != nil {
		return respondServiceError(ctx, err, h.prod)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"invitees": invitees})
}
