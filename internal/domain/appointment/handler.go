package appointment

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/agenda/agenda/internal/platform/apperr"
	"github.com/agenda/agenda/pkg/pagination"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/appointments/:id", h.GetAppointment)
	api.GET("/patients/:id/appointments", h.ListByPatient)
	api.GET("/professionals/:id/appointments", h.ListByProfessional)
	api.GET("/groups/:id/appointments", h.ListGroup)
}

func (h *Handler) GetAppointment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.Respond(c, apperr.Validationf("invalid id"))
	}
	a, err := h.repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, apperr.OK(a))
}

func (h *Handler) ListByPatient(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.Respond(c, apperr.Validationf("invalid id"))
	}
	pg := pagination.FromContext(c)
	items, total, err := h.repo.ListByPatient(c.Request().Context(), id, pg.Limit, pg.Offset)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, apperr.OK(pagination.NewResponse(items, total, pg.Limit, pg.Offset)))
}

func (h *Handler) ListByProfessional(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.Respond(c, apperr.Validationf("invalid id"))
	}
	pg := pagination.FromContext(c)
	items, total, err := h.repo.ListByProfessional(c.Request().Context(), id, pg.Limit, pg.Offset)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, apperr.OK(pagination.NewResponse(items, total, pg.Limit, pg.Offset)))
}

func (h *Handler) ListGroup(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.Respond(c, apperr.Validationf("invalid id"))
	}
	items, err := h.repo.ListGroup(c.Request().Context(), id)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, apperr.OK(items))
}
