package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/showup-or-else/event_service/internal/dto"
	"github.com/showup-or-else/event_service/internal/services"
	"github.com/showup-or-else/event_service/pkg/utils"
)

type EventHandler struct {
	svc    services.EventService
	access services.AccessService
	prod   bool
}

func NewEventHandler(svc services.EventService, access services.AccessService, prod bool) *EventHandler {
	return &EventHandler{svc: svc, access: access, prod: prod}
}

// Handle dispatches POST /api/events on the action field.
func (h *EventHandler) Handle(ctx *fiber.Ctx) error {
	var body dto.EventActionRequest
	if err := ctx.BodyParser(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid request body")
	}

	switch body.Action {
	case "createEvent":
		return h.createEvent(ctx, body)
	case "getEvent":
		return h.getEvent(ctx, body)
	case "getEvents":
		return h.getEvents(ctx, body)
	case "getPastEvents":
		return h.getPastEvents(ctx, body)
	case "updateEvent":
		return h.updateEvent(ctx, body)
	case "cancelEvent":
		return h.cancelEvent(ctx, body)
	case "completeEvent":
		return h.completeEvent(ctx, body)
	case "deleteEvent":
		return h.deleteEvent(ctx, body)
	default:
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "unknown action")
	}
}

func (h *EventHandler) createEvent(ctx *fiber.Ctx, body dto.EventActionRequest) error {
	host := hostIdentity(ctx, body.InvitedBy)
	event, err := h.svc.CreateEvent(host, dto.CreateEventRequest{
		Title:            body.Title,
		Date:             body.Date,
		Time:             body.Time,
		Location:         body.Location,
		EventType:        body.EventType,
		Details:          body.Details,
		DecisionMode:     body.DecisionMode,
		Punishment:       body.Punishment,
		CustomPunishment: body.CustomPunishment,
		Access:           body.Access,
		PageVisibility:   body.PageVisibility,
	})
	if err != nil {
		return respondServiceError(ctx, err, h.prod)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, fiber.Map{"event": event})
}

func (h *EventHandler) getEvent(ctx *fiber.Ctx, body dto.EventActionRequest) error {
	if body.EventID == 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "event_id is required")
	}
	event, err := h.svc.GetEvent(body.EventID)
	if err != nil {
		return respondServiceError(ctx, err, h.prod)
	}

	actor := dto.Actor{HostID: hostIdentity(ctx, body.InvitedBy).String(), Email: body.Email}
	if !h.access.CanViewPage(event, actor) {
		return utils.ResponseError(ctx, fiber.StatusNotFound, "event not found")
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"event": event})
}

func (h *EventHandler) getEvents(ctx *fiber.Ctx, body dto.EventActionRequest) error {
	events, err := h.svc.GetEvents(hostIdentity(ctx, body.InvitedBy))
	if err != nil {
		return respondServiceError(ctx, err, h.prod)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"events": events})
}

func (h *EventHandler) getPastEvents(ctx *fiber.Ctx, body dto.EventActionRequest) error {
	events, err := h.svc.GetPastEvents(hostIdentity(ctx, body.InvitedBy))
	if err != nil {
		return respondServiceError(ctx, err, h.prod)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"events": events})
}

func (h *EventHandler) updateEvent(ctx *fiber.Ctx, body dto.EventActionRequest) error {
	if body.EventID == 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "event_id is required")
	}

	// re-parse with pointer fields so absent keys stay untouched
	var patch dto.UpdateEventRequest
	if err := ctx.BodyParser(&patch); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid request body")
	}

	event, err := h.svc.UpdateEvent(hostIdentity(ctx, body.InvitedBy), body.EventID, patch)
	if err != nil {
		return respondServiceError(ctx, err, h.prod)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"event": event})
}

func (h *EventHandler) cancelEvent(ctx *fiber.Ctx, body dto.EventActionRequest) error {
	if body.EventID == 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "event_id is required")
	}
	event, err := h.svc.CancelEvent(hostIdentity(ctx, body.InvitedBy), body.EventID)
	if err != nil {
		return respondServiceError(ctx, err, h.prod)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"event": event})
}

func (h *EventHandler) completeEvent(ctx *fiber.Ctx, body dto.EventActionRequest) error {
	if body.EventID == 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "event_id is required")
	}
	event, err := h.svc.CompleteEvent(hostIdentity(ctx, body.InvitedBy), body.EventID)
	if err != nil {
		return respondServiceError(ctx, err, h.prod)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"event": event})
}

func (h *EventHandler) deleteEvent(ctx *fiber.Ctx, body dto.EventActionRequest) error {
	if body.EventID == 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "event_id is required")
	}
	if err := h.svc.DeleteEvent(hostIdentity(ctx, body.InvitedBy), body.EventID); err != nil {
		return respondServiceError(ctx, err, h.prod)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{})
}
