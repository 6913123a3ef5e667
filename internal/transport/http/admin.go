package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/app"
	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/domain"
)

type limitResponse struct {
	Tipo   string `json:"tipo"`
	Limite int    `json:"limite"`
}

type setLimitRequest struct {
	Limite *int `json:"limite" binding:"required,gte=0"`
}

type blockedResponse struct {
	Data   string `json:"data"`
	Motivo string `json:"motivo,omitempty"`
}

type blockDateRequest struct {
	Data   string `json:"data" binding:"required"`
	Motivo string `json:"motivo"`
}

func (h *Handler) ListLimits(c *gin.Context) {
	limits, err := h.admin.ListLimits(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	resp := make([]limitResponse, 0, len(limits))
	for _, l := range limits {
		resp = append(resp, limitResponse{Tipo: l.TruckType.String(), Limite: l.MaxPerDay})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) SetLimit(c *gin.Context) {
	var req setLimitRequest
	if err := bind(c, &req, binding.JSON); err != nil {
		h.writeBindError(c, err)
		return
	}

	limit, err := h.admin.SetLimit(c.Request.Context(), app.SetLimitInput{
		TruckType: c.Param("tipo"),
		MaxPerDay: *req.Limite,
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, limitResponse{Tipo: limit.TruckType.String(), Limite: limit.MaxPerDay})
}

// ListBlocked lists manually blocked days between ?de= and ?ate=.
func (h *Handler) ListBlocked(c *gin.Context) {
	from, ok := queryDate(c, "de")
	if !ok {
		return
	}
	to, ok := queryDate(c, "ate")
	if !ok {
		return
	}

	days, err := h.admin.ListBlocked(c.Request.Context(), from, to)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	resp := make([]blockedResponse, 0, len(days))
	for _, b := range days {
		resp = append(resp, blockedResponse{Data: b.Date.String(), Motivo: b.Reason})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) BlockDate(c *gin.Context) {
	var req blockDateRequest
	if err := bind(c, &req, binding.JSON); err != nil {
		h.writeBindError(c, err)
		return
	}
	day, err := domain.ParseDate(strings.TrimSpace(req.Data))
	if err != nil {
		writeError(c, http.StatusBadRequest, codeInvalidDate, "data must be YYYY-MM-DD")
		return
	}

	b, err := h.admin.BlockDate(c.Request.Context(), app.BlockDateInput{Date: day, Reason: req.Motivo})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, blockedResponse{Data: b.Date.String(), Motivo: b.Reason})
}

func (h *Handler) UnblockDate(c *gin.Context) {
	day, err := domain.ParseDate(c.Param("data"))
	if err != nil {
		writeError(c, http.StatusBadRequest, codeInvalidDate, "data must be YYYY-MM-DD")
		return
	}
	if err := h.admin.UnblockDate(c.Request.Context(), day); err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
