package stops

import (
	"errors"

	"transit-manager/core/logger"
	"transit-manager/core/resolver"
	"transit-manager/core/transit"
	"transit-manager/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for stops and buses.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// BusesResponse is the body of GET /stops/{id}/buses.
type BusesResponse struct {
	Buses []*transit.Bus `json:"buses"`
}

// RegisterRoutes registers the stop routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/stops")
	group.Get("/:id", h.HandleFindStop)
	group.Put("/:id", h.HandleSaveStop)
	group.Delete("/:id", h.HandleDeleteStop)
	group.Get("/:id/buses", h.HandleGetBuses)
}

// statusFor maps a resolver error to an HTTP status.
func statusFor(err error) int {
	kind := transit.KindOf(err)
	switch {
	case errors.Is(err, transit.ErrPartialLocation), errors.Is(err, transit.ErrInvalidStop):
		return fiber.StatusBadRequest
	case kind == transit.KindStopNotFound:
		return fiber.StatusNotFound
	case kind == transit.KindStopNotExist:
		return fiber.StatusGone
	case kind.IsUnavailable():
		return fiber.StatusServiceUnavailable
	case kind.IsMissingCollaborators():
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusInternalServerError
	}
}

func fail(c *fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// HandleFindStop returns a stop.
// @Summary Find Stop
// @Description Look a stop up across the offline and online Stop Getters.
// @Tags stops
// @Produce json
// @Param id path int true "Stop ID"
// @Param scope query string false "all, online or offline"
// @Param autosave query bool false "Save the stop when found online"
// @Success 200 {object} transit.Stop "Stop"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 410 {object} map[string]string "Stop does not exist"
// @Failure 503 {object} map[string]string "Sources unavailable"
// @Router /stops/{id} [get]
func (h *Handler) HandleFindStop(c *fiber.Ctx) error {
	id, err := utils.ParseStopID(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err)
	}
	scope, err := resolver.ParseScope(c.Query("scope"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err)
	}
	autoSave, err := utils.ParseOptionalBool(c.Query("autosave"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err)
	}

	l := logger.WithRayID(h.service.logger, c).With(zap.Int("stop_id", id))
	stop, err := h.service.FindStop(c.UserContext(), id, scope, resolver.AutoSaveFrom(autoSave))
	if err != nil {
		status := statusFor(err)
		if status >= fiber.StatusInternalServerError {
			l.Error("Stop lookup failed", zap.Error(err))
		}
		return fail(c, status, err)
	}
	return c.JSON(stop)
}

// HandleSaveStop saves a stop.
// @Summary Save Stop
// @Description Write a stop through the Stop Setters.
// @Tags stops
// @Accept json
// @Param id path int true "Stop ID"
// @Param update query bool false "Overwrite existing records"
// @Param fanout query string false "first or all"
// @Param stop body transit.Stop true "Stop"
// @Success 204 "Saved"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 503 {object} map[string]string "Setters unavailable"
// @Router /stops/{id} [put]
func (h *Handler) HandleSaveStop(c *fiber.Ctx) error {
	id, err := utils.ParseStopID(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err)
	}
	update, err := utils.ParseOptionalBool(c.Query("update"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err)
	}
	fanOut, err := resolver.ParseFanOut(c.Query("fanout"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err)
	}

	var stop transit.Stop
	if err := c.BodyParser(&stop); err != nil {
		return fail(c, fiber.StatusBadRequest, err)
	}
	if stop.ID != 0 && stop.ID != id {
		return fail(c, fiber.StatusBadRequest, errors.New("stop id in body does not match path"))
	}
	stop.ID = id
	if err := stop.Validate(); err != nil {
		return fail(c, fiber.StatusBadRequest, err)
	}

	l := logger.WithRayID(h.service.logger, c).With(zap.Int("stop_id", id))
	if err := h.service.SaveStop(c.UserContext(), &stop, update != nil && *update, fanOut); err != nil {
		l.Error("Stop save failed", zap.Error(err))
		return fail(c, statusFor(err), err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleDeleteStop deletes a stop.
// @Summary Delete Stop
// @Description Remove a stop through the Stop Deleters.
// @Tags stops
// @Param id path int true "Stop ID"
// @Param fanout query string false "first or all"
// @Success 204 "Deleted"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 503 {object} map[string]string "Deleters unavailable"
// @Router /stops/{id} [delete]
func (h *Handler) HandleDeleteStop(c *fiber.Ctx) error {
	id, err := utils.ParseStopID(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err)
	}
	fanOut, err := resolver.ParseFanOut(c.Query("fanout"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err)
	}

	l := logger.WithRayID(h.service.logger, c).With(zap.Int("stop_id", id))
	if err := h.service.DeleteStop(c.UserContext(), id, fanOut); err != nil {
		l.Error("Stop delete failed", zap.Error(err))
		return fail(c, statusFor(err), err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleGetBuses lists the buses of a stop.
// @Summary Get Buses
// @Description List the upcoming buses of a stop from the first Bus Getter that answers.
// @Tags stops
// @Produce json
// @Param id path int true "Stop ID"
// @Param sort query string false "none, time, line, route, line_route, time_line, time_route, time_line_route"
// @Param reverse query bool false "Reverse the order"
// @Param save query bool false "Store the result in the Bus Setters"
// @Success 200 {object} BusesResponse "Buses"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 410 {object} map[string]string "Stop does not exist"
// @Failure 503 {object} map[string]string "Bus getters unavailable"
// @Router /stops/{id}/buses [get]
func (h *Handler) HandleGetBuses(c *fiber.Ctx) error {
	id, err := utils.ParseStopID(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err)
	}
	sortBy, err := transit.ParseSortMethod(c.Query("sort"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err)
	}
	reverse, err := utils.ParseOptionalBool(c.Query("reverse"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err)
	}
	save, err := utils.ParseOptionalBool(c.Query("save"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err)
	}

	l := logger.WithRayID(h.service.logger, c).With(zap.Int("stop_id", id))
	buses, err := h.service.GetBuses(c.UserContext(), id, sortBy, reverse != nil && *reverse, save != nil && *save)
	if err != nil {
		status := statusFor(err)
		if status >= fiber.StatusInternalServerError {
			l.Error("Bus lookup failed", zap.Error(err))
		}
		return fail(c, status, err)
	}
	return c.JSON(BusesResponse{Buses: buses})
}
