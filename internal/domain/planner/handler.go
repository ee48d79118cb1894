package planner

import (
	"net/http"

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
	api.POST("/planner/patterns", h.GeneratePatterns)
}

type generateRequest struct {
	Needs       []TherapyNeed `json:"needs"`
	Preferences Preference    `json:"preferences"`
	Format      bool          `json:"format"`
}

func (h *Handler) GeneratePatterns(c echo.Context) error {
	var req generateRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Respond(c, apperr.Validationf("invalid request body"))
	}
	res, err := h.svc.Plan(c.Request().Context(), req.Needs, req.Preferences, req.Format)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, apperr.OK(res))
}
