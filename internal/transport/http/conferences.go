package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/app"
	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/domain"
)

const conferenceRecordedMessage = "Conferência registrada com sucesso"

type conferenceForm struct {
	AgendamentoID    string `form:"agendamento_id" binding:"required"`
	PaletesRecebidos string `form:"paletes_recebidos" binding:"required,number"`
	VolumesRecebidos string `form:"volumes_recebidos" binding:"required,number"`
	Observacoes      string `form:"observacoes"`
	NomeConferente   string `form:"nome_conferente" binding:"required"`
}

// conferenceResponse keeps the {success, message} shape the conference
// screen expects, plus a machine code on failure.
type conferenceResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

func (h *Handler) RecordConference(c *gin.Context) {
	var form conferenceForm
	if err := bind(c, &form, binding.Form); err != nil {
		var valErr *domain.ValidationError
		if errors.As(err, &valErr) {
			writeConferenceError(c, http.StatusBadRequest, codeValidationFailed, valErr.Error())
			return
		}
		writeConferenceError(c, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return
	}

	if strings.TrimSpace(form.AgendamentoID) == "" {
		writeConferenceError(c, http.StatusBadRequest, codeValidationFailed, "agendamento_id: required")
		return
	}
	if strings.TrimSpace(form.NomeConferente) == "" {
		writeConferenceError(c, http.StatusBadRequest, codeValidationFailed, "nome_conferente: required")
		return
	}

	pallets, err := strconv.Atoi(form.PaletesRecebidos)
	if err != nil {
		writeConferenceError(c, http.StatusBadRequest, codeValidationFailed, "paletes_recebidos: must be a non-negative integer")
		return
	}
	volumes, err := strconv.Atoi(form.VolumesRecebidos)
	if err != nil {
		writeConferenceError(c, http.StatusBadRequest, codeValidationFailed, "volumes_recebidos: must be a non-negative integer")
		return
	}

	_, err = h.conferences.Record(c.Request.Context(), app.RecordConferenceInput{
		ReservationID:   form.AgendamentoID,
		PalletsReceived: pallets,
		VolumesReceived: volumes,
		Observations:    form.Observacoes,
		RecorderName:    form.NomeConferente,
	})
	if err != nil {
		status, code, msg := classifyError(err)
		if status >= http.StatusInternalServerError {
			h.logger.Error("conference failed", "reservation_id", form.AgendamentoID, "code", code, "error", err)
		}
		writeConferenceError(c, status, code, msg)
		return
	}

	c.JSON(http.StatusOK, conferenceResponse{Success: true, Message: conferenceRecordedMessage})
}

func writeConferenceError(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, conferenceResponse{Success: false, Message: msg, Code: code})
}
