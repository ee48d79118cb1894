package directory

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/agenda/agenda/internal/platform/apperr"
	"github.com/agenda/agenda/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/professionals", h.ListProfessionals)
	api.GET("/professionals/:id", h.GetProfessional)
	api.POST("/professionals", h.CreateProfessional)
	api.PUT("/professionals/:id", h.UpdateProfessional)
	api.DELETE("/professionals/:id", h.DeleteProfessional)

	api.GET("/patients", h.ListPatients)
	api.GET("/patients/:id", h.GetPatient)
	api.POST("/patients", h.CreatePatient)
	api.PUT("/patients/:id", h.UpdatePatient)
	api.DELETE("/patients/:id", h.DeletePatient)
}

// -- Professional Handlers --

func (h *Handler) CreateProfessional(c echo.Context) error {
	var p Professional
	if err := c.Bind(&p); err != nil {
		return apperr.Respond(c, apperr.Validationf("invalid request body"))
	}
	if err := h.svc.CreateProfessional(c.Request().Context(), &p); err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusCreated, apperr.OK(p))
}

func (h *Handler) GetProfessional(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.Respond(c, apperr.Validationf("invalid id"))
	}
	p, err := h.svc.GetProfessional(c.Request().Context(), id)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, apperr.OK(p))
}

func (h *Handler) ListProfessionals(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListProfessionals(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, apperr.OK(pagination.NewResponse(items, total, pg.Limit, pg.Offset)))
}

func (h *Handler) UpdateProfessional(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.Respond(c, apperr.Validationf("invalid id"))
	}
	var p Professional
	if err := c.Bind(&p); err != nil {
		return apperr.Respond(c, apperr.Validationf("invalid request body"))
	}
	p.ID = id
	if err := h.svc.UpdateProfessional(c.Request().Context(), &p); err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, apperr.OK(p))
}

func (h *Handler) DeleteProfessional(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.Respond(c, apperr.Validationf("invalid id"))
	}
	if err := h.svc.DeleteProfessional(c.Request().Context(), id); err != nil {
		return apperr.Respond(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Patient Handlers --

func (h *Handler) CreatePatient(c echo.Context) error {
	var p Patient
	if err := c.Bind(&p); err != nil {
		return apperr.Respond(c, apperr.Validationf("invalid request body"))
	}
	if err := h.svc.CreatePatient(c.Request().Context(), &p); err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusCreated, apperr.OK(p))
}

func (h *Handler) GetPatient(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.Respond(c, apperr.Validationf("invalid id"))
	}
	p, err := h.svc.GetPatient(c.Request().Context(), id)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, apperr.OK(p))
}

func (h *Handler) ListPatients(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListPatients(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, apperr.OK(pagination.NewResponse(items, total, pg.Limit, pg.Offset)))
}

func (h *Handler) UpdatePatient(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.Respond(c, apperr.Validationf("invalid id"))
	}
	var p Patient
	if err := c.Bind(&p); err != nil {
		return apperr.Respond(c, apperr.Validationf("invalid request body"))
	}
	p.ID = id
	if err := h.svc.UpdatePatient(c.Request().Context(), &p); err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, apperr.OK(p))
}

func (h *Handler) DeletePatient(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.Respond(c, apperr.Validationf("invalid id"))
	}
	if err := h.svc.DeletePatient(c.Request().Context(), id); err != nil {
		return apperr.Respond(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
