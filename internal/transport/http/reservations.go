package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/app"
	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/auth"
	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/domain"
)

const reservationCreatedMessage = "Agendamento realizado com sucesso"

// createReservationForm mirrors the booking form. Quantities arrive as text
// and must be non-negative integers when present.
type createReservationForm struct {
	DataAgendamento   string `form:"dataAgendamento" binding:"required"`
	TipoCaminhao      string `form:"tipoCaminhao" binding:"required"`
	TipoCarga         string `form:"tipoCarga"`
	TipoMercadoria    string `form:"tipoMercadoria"`
	Fornecedor        string `form:"fornecedor"`
	NomeResponsavel   string `form:"nome_responsavel"`
	QuantidadePaletes string `form:"quantidadePaletes" binding:"omitempty,number"`
	QuantidadeVolumes string `form:"quantidadeVolumes" binding:"omitempty,number"`
	Placa             string `form:"placa"`
	NomeMotorista     string `form:"nomeMotorista"`
	CPFMotorista      string `form:"cpfMotorista"`
	NumeroContato     string `form:"numeroContato"`
	TipoRecebimento   string `form:"tipoRecebimento"`
}

type createReservationResponse struct {
	ID      string `json:"id"`
	Senha   string `json:"senha"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

type reservationResponse struct {
	ID                string     `json:"id"`
	DataAgendamento   string     `json:"dataAgendamento"`
	TipoCaminhao      string     `json:"tipoCaminhao"`
	Senha             string     `json:"senha"`
	Status            string     `json:"status"`
	CriadoPor         string     `json:"criadoPor"`
	CriadoEm          time.Time  `json:"criadoEm"`
	TipoCarga         string     `json:"tipoCarga"`
	TipoMercadoria    string     `json:"tipoMercadoria"`
	Fornecedor        string     `json:"fornecedor"`
	NomeResponsavel   string     `json:"nome_responsavel"`
	QuantidadePaletes int        `json:"quantidadePaletes"`
	QuantidadeVolumes int        `json:"quantidadeVolumes"`
	Placa             string     `json:"placa"`
	NomeMotorista     string     `json:"nomeMotorista"`
	CPFMotorista      string     `json:"cpfMotorista"`
	NumeroContato     string     `json:"numeroContato"`
	TipoRecebimento   string     `json:"tipoRecebimento"`
	ChegadaNF         *time.Time `json:"chegadaNF,omitempty"`
	DataConferencia   *time.Time `json:"dataConferencia,omitempty"`
	TempoManuseio     string     `json:"tempoManuseio,omitempty"`
}

func toReservationResponse(r domain.Reservation) reservationResponse {
	p := r.Payload
	return reservationResponse{
		ID:                r.ID,
		DataAgendamento:   r.Date.String(),
		TipoCaminhao:      r.TruckType.String(),
		Senha:             r.AccessCode,
		Status:            string(r.Status),
		CriadoPor:         r.CreatedBy,
		CriadoEm:          r.CreatedAt,
		TipoCarga:         p.CargoType,
		TipoMercadoria:    p.MerchandiseType,
		Fornecedor:        p.Supplier,
		NomeResponsavel:   p.ResponsibleName,
		QuantidadePaletes: p.PalletQuantity,
		QuantidadeVolumes: p.VolumeQuantity,
		Placa:             p.Plate,
		NomeMotorista:     p.DriverName,
		CPFMotorista:      p.DriverCPF,
		NumeroContato:     p.ContactNumber,
		TipoRecebimento:   p.ReceivingType,
		ChegadaNF:         r.ArrivalAt,
		DataConferencia:   r.ConferenceAt,
		TempoManuseio:     r.HandlingTime,
	}
}

func (h *Handler) CreateReservation(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		return
	}

	var form createReservationForm
	if err := bind(c, &form, binding.Form); err != nil {
		h.writeBindError(c, err)
		return
	}

	day, err := domain.ParseDate(strings.TrimSpace(form.DataAgendamento))
	if err != nil {
		writeError(c, http.StatusBadRequest, codeInvalidDate, "dataAgendamento must be YYYY-MM-DD")
		return
	}
	pallets, err := optionalCount("quantidadePaletes", form.QuantidadePaletes)
	if err != nil {
		h.writeBindError(c, err)
		return
	}
	volumes, err := optionalCount("quantidadeVolumes", form.QuantidadeVolumes)
	if err != nil {
		h.writeBindError(c, err)
		return
	}

	r, err := h.reservations.Admit(c.Request.Context(), app.AdmitInput{
		Date:        day,
		TruckType:   form.TipoCaminhao,
		RequestedBy: id.UserID,
		Payload: domain.ReservationPayload{
			CargoType:       form.TipoCarga,
			MerchandiseType: form.TipoMercadoria,
			Supplier:        form.Fornecedor,
			ResponsibleName: form.NomeResponsavel,
			PalletQuantity:  pallets,
			VolumeQuantity:  volumes,
			Plate:           form.Placa,
			DriverName:      form.NomeMotorista,
			DriverCPF:       form.CPFMotorista,
			ContactNumber:   form.NumeroContato,
			ReceivingType:   form.TipoRecebimento,
		},
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, createReservationResponse{
		ID:      r.ID,
		Senha:   r.AccessCode,
		Status:  string(r.Status),
		Message: reservationCreatedMessage,
	})
}

func (h *Handler) ListReservations(c *gin.Context) {
	day, ok := queryDate(c, "data")
	if !ok {
		return
	}

	rows, err := h.reservations.ListByDate(c.Request.Context(), day)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	resp := make([]reservationResponse, 0, len(rows))
	for _, r := range rows {
		resp = append(resp, toReservationResponse(r))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetReservation(c *gin.Context) {
	r, err := h.reservations.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReservationResponse(r))
}

// RecordArrival stamps the invoice arrival on a pending reservation.
func (h *Handler) RecordArrival(c *gin.Context) {
	r, err := h.conferences.RecordArrival(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReservationResponse(r))
}

func optionalCount(field, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, domain.NewValidationError(field, "must be a non-negative integer")
	}
	return n, nil
}

func identity(c *gin.Context) (auth.Identity, bool) {
	id, ok := auth.FromContext(c)
	if !ok {
		writeError(c, http.StatusUnauthorized, codeUnauthorized, "unauthorized")
		return auth.Identity{}, false
	}
	return id, true
}
