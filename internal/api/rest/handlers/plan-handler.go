package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/showup-or-else/event_service/internal/dto"
	"github.com/showup-or-else/event_service/internal/services"
	"github.com/showup-or-else/event_service/pkg/utils"
)

// PlanHandler serves the legacy plans flow.
type PlanHandler struct {
	svc  services.PlanService
	prod bool
}

func NewPlanHandler(svc services.PlanService, prod bool) *PlanHandler {
	return &PlanHandler{svc: svc, prod: prod}
}

func (h *PlanHandler) CreatePlan(ctx *fiber.Ctx) error {
	var body dto.CreatePlanRequest
	if err := ctx.BodyParser(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid request body")
	}
	plan, err := h.svc.CreatePlan(body)
	if err != nil {
		return respondServiceError(ctx, err, h.prod)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, fiber.Map{"plan": plan})
}

func (h *PlanHandler) JoinPlan(ctx *fiber.Ctx) error {
	var body dto.JoinPlanRequest
	if err := ctx.BodyParser(&body); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid request body")
	}
	member, err := h.svc.JoinPlan(body)
	if err != nil {
		return respondServiceError(ctx, err, h.prod)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"member": member})
}

func (h *PlanHandler) ListPlans(ctx *fiber.Ctx) error {
	userID := ctx.Query("user_id")
	plans, err := h.svc.ListPlans(userID)
	if err != nil {
		return respondServiceError(ctx, err, h.prod)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{"plans": plans})
}
