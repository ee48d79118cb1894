package block

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/agenda/agenda/internal/platform/apperr"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/blocks", h.CreateBlock)
	api.GET("/blocks/renewable", h.ListRenewable)
	api.POST("/blocks/:id/renew", h.Renew)
	api.POST("/blocks/:id/dismiss", h.Dismiss)
}

func (h *Handler) CreateBlock(c echo.Context) error {
	var req CreateRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Respond(c, apperr.Validationf("invalid request body"))
	}
	appts, err := h.svc.CreateBlock(c.Request().Context(), &req)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusCreated, apperr.OK(appts))
}

func (h *Handler) ListRenewable(c echo.Context) error {
	var patientID *uuid.UUID
	if raw := c.QueryParam("patient_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return apperr.Respond(c, apperr.Validationf("invalid patient_id"))
		}
		patientID = &id
	}
	groups, err := h.svc.DetectRenewable(c.Request().Context(), patientID)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, apperr.OK(groups))
}

type renewRequest struct {
	AdditionalSessions int `json:"additional_sessions"`
}

func (h *Handler) Renew(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.Respond(c, apperr.Validationf("invalid id"))
	}
	var req renewRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Respond(c, apperr.Validationf("invalid request body"))
	}
	appts, err := h.svc.Renew(c.Request().Context(), id, req.AdditionalSessions)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusCreated, apperr.OK(appts))
}

func (h *Handler) Dismiss(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.Respond(c, apperr.Validationf("invalid id"))
	}
	if err := h.svc.Dismiss(c.Request().Context(), id); err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, apperr.OK(map[string]bool{"dismissed": true}))
}
