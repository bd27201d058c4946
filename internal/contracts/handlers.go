package contracts

import (
	"strconv"
	"time"

	"github.com/kgrubic/boston-energy/internal/cache"
	"github.com/kgrubic/boston-energy/internal/models"
	"github.com/kgrubic/boston-energy/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const dateLayout = "2006-01-02"

// Handlers bundles contract handlers.
type Handlers struct {
	Service *Service
	Cache   *cache.Cache
}

// ListContracts GET /api/contracts
func (h *Handlers) ListContracts(c *fiber.Ctx) error {
	filter, err := parseFilter(c, true)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	page, err := queryIntDefault(c, "page", 1)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	pageSize, err := queryIntDefault(c, "page_size", 20)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	params := ListParams{
		Filter:   filter,
		SortBy:   c.Query("sort_by"),
		SortDir:  c.Query("sort_dir", "desc"),
		Page:     page,
		PageSize: pageSize,
	}

	result, err := h.Service.List(c.Context(), params)
	if err != nil {
		if IsValidation(err) {
			return response.BadRequest(c, err.Error())
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return c.JSON(result)
}

// GetPriceBounds GET /api/contracts/price-bounds
func (h *Handlers) GetPriceBounds(c *fiber.Ctx) error {
	filter, err := parseFilter(c, false)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	bounds, err := h.Service.GetPriceBounds(c.Context(), filter)
	if err != nil {
		if IsValidation(err) {
			return response.BadRequest(c, err.Error())
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return c.JSON(bounds)
}

// ListLocations GET /api/contracts/locations
func (h *Handlers) ListLocations(c *fiber.Ctx) error {
	var locations []string
	if h.Cache.GetJSON(c.Context(), cache.LocationsKey, &locations) {
		return c.JSON(locations)
	}

	locations, err := h.Service.ListLocations(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	h.Cache.SetJSON(c.Context(), cache.LocationsKey, locations)
	return c.JSON(locations)
}

type contractRequest struct {
	EnergyType    string  `json:"energy_type"`
	QuantityMwh   int     `json:"quantity_mwh"`
	PricePerMwh   float64 `json:"price_per_mwh"`
	DeliveryStart string  `json:"delivery_start"`
	DeliveryEnd   string  `json:"delivery_end"`
	Location      string  `json:"location"`
	Status        string  `json:"status"`
}

// CreateContract POST /api/contracts
func (h *Handlers) CreateContract(c *fiber.Ctx) error {
	var req contractRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	energyType, err := models.ParseEnergyType(req.EnergyType)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	if req.QuantityMwh <= 0 {
		return response.BadRequest(c, "quantity_mwh must be positive")
	}
	if req.PricePerMwh <= 0 {
		return response.BadRequest(c, "price_per_mwh must be positive")
	}
	if req.Location == "" || len(req.Location) > 50 {
		return response.BadRequest(c, "location must be 1..50 characters")
	}
	start, err := time.Parse(dateLayout, req.DeliveryStart)
	if err != nil {
		return response.BadRequest(c, "delivery_start must be YYYY-MM-DD")
	}
	end, err := time.Parse(dateLayout, req.DeliveryEnd)
	if err != nil {
		return response.BadRequest(c, "delivery_end must be YYYY-MM-DD")
	}
	status := models.StatusAvailable
	if req.Status != "" {
		if status, err = models.ParseContractStatus(req.Status); err != nil {
			return response.BadRequest(c, err.Error())
		}
	}

	created, err := h.Service.Create(c.Context(), CreateInput{
		EnergyType:    energyType,
		QuantityMwh:   req.QuantityMwh,
		PricePerMwh:   req.PricePerMwh,
		DeliveryStart: start,
		DeliveryEnd:   end,
		Location:      req.Location,
		Status:        status,
	})
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	h.Cache.Invalidate(c.Context(), cache.LocationsKey)
	return c.Status(fiber.StatusCreated).JSON(created)
}

// GetContract GET /api/contracts/:id
func (h *Handlers) GetContract(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	contract, err := h.Service.Get(c.Context(), id)
	if err != nil {
		if err == ErrNotFound {
			return response.NotFound(c, ErrNotFound.Error())
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return c.JSON(contract)
}

type contractUpdateRequest struct {
	EnergyType    *string  `json:"energy_type"`
	QuantityMwh   *int     `json:"quantity_mwh"`
	PricePerMwh   *float64 `json:"price_per_mwh"`
	DeliveryStart *string  `json:"delivery_start"`
	DeliveryEnd   *string  `json:"delivery_end"`
	Location      *string  `json:"location"`
	Status        *string  `json:"status"`
}

// UpdateContract PATCH /api/contracts/:id. Only supplied fields change.
func (h *Handlers) UpdateContract(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	var req contractUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	var in UpdateInput
	if req.EnergyType != nil {
		et, err := models.ParseEnergyType(*req.EnergyType)
		if err != nil {
			return response.BadRequest(c, err.Error())
		}
		in.EnergyType = &et
	}
	if req.QuantityMwh != nil {
		if *req.QuantityMwh <= 0 {
			return response.BadRequest(c, "quantity_mwh must be positive")
		}
		in.QuantityMwh = req.QuantityMwh
	}
	if req.PricePerMwh != nil {
		if *req.PricePerMwh <= 0 {
			return response.BadRequest(c, "price_per_mwh must be positive")
		}
		in.PricePerMwh = req.PricePerMwh
	}
	if req.DeliveryStart != nil {
		start, err := time.Parse(dateLayout, *req.DeliveryStart)
		if err != nil {
			return response.BadRequest(c, "delivery_start must be YYYY-MM-DD")
		}
		in.DeliveryStart = &start
	}
	if req.DeliveryEnd != nil {
		end, err := time.Parse(dateLayout, *req.DeliveryEnd)
		if err != nil {
			return response.BadRequest(c, "delivery_end must be YYYY-MM-DD")
		}
		in.DeliveryEnd = &end
	}
	if req.Location != nil {
		if *req.Location == "" || len(*req.Location) > 50 {
			return response.BadRequest(c, "location must be 1..50 characters")
		}
		in.Location = req.Location
	}
	if req.Status != nil {
		st, err := models.ParseContractStatus(*req.Status)
		if err != nil {
			return response.BadRequest(c, err.Error())
		}
		in.Status = &st
	}

	updated, err := h.Service.Update(c.Context(), id, in)
	if err != nil {
		if err == ErrNotFound {
			return response.NotFound(c, ErrNotFound.Error())
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	h.Cache.Invalidate(c.Context(), cache.LocationsKey)
	return c.JSON(updated)
}

// DeleteContract DELETE /api/contracts/:id. Idempotent, always 204.
func (h *Handlers) DeleteContract(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	if err := h.Service.Delete(c.Context(), id); err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	h.Cache.Invalidate(c.Context(), cache.LocationsKey)
	return c.SendStatus(fiber.StatusNoContent)
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, invalid("contract id must be a positive integer")
	}
	return uint(id), nil
}

// parseFilter reads the shared filter parameters. Status defaults to
// Available when the parameter is absent; an explicitly empty status means
// no status constraint. Price bounds are only read for the listing query.
func parseFilter(c *fiber.Ctx, withPrice bool) (Filter, error) {
	var f Filter
	args := c.Context().QueryArgs()

	if !args.Has("status") {
		status := models.StatusAvailable
		f.Status = &status
	} else if raw := c.Query("status"); raw != "" {
		status, err := models.ParseContractStatus(raw)
		if err != nil {
			return f, invalid(err.Error())
		}
		f.Status = &status
	}

	for _, raw := range queryMulti(c, "energy_type") {
		et, err := models.ParseEnergyType(raw)
		if err != nil {
			return f, invalid(err.Error())
		}
		f.EnergyTypes = append(f.EnergyTypes, et)
	}
	f.Locations = queryMulti(c, "location")

	if withPrice {
		var err error
		if f.PriceMin, err = queryFloat(c, "price_min"); err != nil {
			return f, err
		}
		if f.PriceMax, err = queryFloat(c, "price_max"); err != nil {
			return f, err
		}
	}

	var err error
	if f.QtyMin, err = queryIntPtr(c, "qty_min"); err != nil {
		return f, err
	}
	if f.QtyMax, err = queryIntPtr(c, "qty_max"); err != nil {
		return f, err
	}
	if f.StartFrom, err = queryDate(c, "start_from"); err != nil {
		return f, err
	}
	if f.EndTo, err = queryDate(c, "end_to"); err != nil {
		return f, err
	}
	return f, nil
}

func queryMulti(c *fiber.Ctx, key string) []string {
	var values []string
	for _, v := range c.Context().QueryArgs().PeekMulti(key) {
		if len(v) > 0 {
			values = append(values, string(v))
		}
	}
	return values
}

func queryFloat(c *fiber.Ctx, key string) (*float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, invalid(key + " must be a number")
	}
	return &v, nil
}

func queryIntDefault(c *fiber.Ctx, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalid(key + " must be an integer")
	}
	return v, nil
}

func queryIntPtr(c *fiber.Ctx, key string) (*int, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, invalid(key + " must be an integer")
	}
	return &v, nil
}

func queryDate(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, invalid(key + " must be YYYY-MM-DD")
	}
	return &t, nil
}
