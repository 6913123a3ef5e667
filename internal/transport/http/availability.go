package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/domain"
)

type monthResponse struct {
	Bloqueados             []string `json:"bloqueados"`
	ParcialmenteAgendados  []string `json:"parcialmenteAgendados"`
	TotalmenteAgendados    []string `json:"totalmenteAgendados"`
	Disponiveis            []string `json:"disponiveis"`
	AgendamentosAnteriores bool     `json:"agendamentosAnteriores"`
}

// Month classifies the days of ?year=&month=, defaulting to the current
// month in the business time zone.
func (h *Handler) Month(c *gin.Context) {
	now := h.clock.Now()
	year, month := now.Year(), int(now.Month())

	if raw := strings.TrimSpace(c.Query("year")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 9999 {
			writeError(c, http.StatusBadRequest, codeInvalidYear, "year must be between 1 and 9999")
			return
		}
		year = v
	}
	if raw := strings.TrimSpace(c.Query("month")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 12 {
			writeError(c, http.StatusBadRequest, codeInvalidMonth, "month must be between 1 and 12")
			return
		}
		month = v
	}

	result, err := h.availability.Month(c.Request.Context(), year, time.Month(month))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, monthResponse{
		Bloqueados:             dateStrings(result.Blocked),
		ParcialmenteAgendados:  dateStrings(result.Partial),
		TotalmenteAgendados:    dateStrings(result.Full),
		Disponiveis:            dateStrings(result.Available),
		AgendamentosAnteriores: result.HasPriorReservations,
	})
}

// ForDate returns the remaining capacity per truck type for ?data=.
func (h *Handler) ForDate(c *gin.Context) {
	day, ok := queryDate(c, "data")
	if !ok {
		return
	}

	remaining, err := h.availability.ForDate(c.Request.Context(), day)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp := make(map[string]int, len(remaining))
	for truckType, n := range remaining {
		resp[truckType.String()] = n
	}
	c.JSON(http.StatusOK, resp)
}

// queryDate reads a required YYYY-MM-DD query parameter, writing the error
// response itself when it is missing or malformed.
func queryDate(c *gin.Context, name string) (domain.Date, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		writeError(c, http.StatusBadRequest, codeMissingDate, name+" is required")
		return domain.Date{}, false
	}
	day, err := domain.ParseDate(raw)
	if err != nil {
		writeError(c, http.StatusBadRequest, codeInvalidDate, name+" must be YYYY-MM-DD")
		return domain.Date{}, false
	}
	return day, true
}

func dateStrings(days []domain.Date) []string {
	out := make([]string, 0, len(days))
	for _, d := range days {
		out = append(out, d.String())
	}
	return out
}
