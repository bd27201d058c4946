package portfolio

import (
	"errors"
	"strconv"

	"github.com/kgrubic/boston-energy/internal/middleware"
	"github.com/kgrubic/boston-energy/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles portfolio handlers. All routes sit behind RequireAuth,
// which puts the resolved user id into Locals.
type Handlers struct {
	Service *Service
}

// AddItem POST /api/portfolio/items/:contract_id
func (h *Handlers) AddItem(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return response.Unauthorized(c, "Unauthorized")
	}
	contractID, err := parseContractID(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	already, err := h.Service.Add(c.Context(), userID, contractID)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	if already {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true, "already": true})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true})
}

// RemoveItem DELETE /api/portfolio/items/:contract_id. Idempotent.
func (h *Handlers) RemoveItem(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return response.Unauthorized(c, "Unauthorized")
	}
	contractID, err := parseContractID(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	if err := h.Service.Remove(c.Context(), userID, contractID); err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListItems GET /api/portfolio/items
func (h *Handlers) ListItems(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return response.Unauthorized(c, "Unauthorized")
	}

	items, err := h.Service.Items(c.Context(), userID)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return c.JSON(items)
}

// GetMetrics GET /api/portfolio/metrics
func (h *Handlers) GetMetrics(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		return response.Unauthorized(c, "Unauthorized")
	}

	metrics, err := h.Service.Metrics(c.Context(), userID)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return c.JSON(metrics)
}

func parseContractID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("contract_id"), 10, 32)
	if err != nil {
		return 0, errors.New("contract_id must be a positive integer")
	}
	return uint(id), nil
}
