package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/app"
	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/domain"
)

func bookingForm() url.Values {
	return url.Values{
		"dataAgendamento":   {"2024-06-10"},
		"tipoCaminhao":      {"Truck"},
		"tipoCarga":         {"paletizada"},
		"tipoMercadoria":    {"bebidas"},
		"fornecedor":        {"Distribuidora Sul"},
		"nome_responsavel":  {"Carla"},
		"quantidadePaletes": {"12"},
		"quantidadeVolumes": {"340"},
		"placa":             {"ABC1D23"},
		"nomeMotorista":     {"João"},
		"cpfMotorista":      {"123.456.789-00"},
		"numeroContato":     {"(11) 99999-0000"},
		"tipoRecebimento":   {"descarga"},
	}
}

func TestCreateReservation_Success(t *testing.T) {
	env := newTestEnv(t)

	want := app.AdmitInput{
		Date:        june(10),
		TruckType:   "Truck",
		RequestedBy: "ana",
		Payload: domain.ReservationPayload{
			CargoType:       "paletizada",
			MerchandiseType: "bebidas",
			Supplier:        "Distribuidora Sul",
			ResponsibleName: "Carla",
			PalletQuantity:  12,
			VolumeQuantity:  340,
			Plate:           "ABC1D23",
			DriverName:      "João",
			DriverCPF:       "123.456.789-00",
			ContactNumber:   "(11) 99999-0000",
			ReceivingType:   "descarga",
		},
	}
	env.reservations.EXPECT().Admit(gomock.Any(), want).Return(domain.Reservation{
		ID:         "res-1",
		Date:       june(10),
		TruckType:  "truck",
		AccessCode: "K7QZ3MPA",
		Status:     domain.ReservationStatusPending,
	}, nil)

	rec := env.postForm("/api/agendamentos", env.staffToken, bookingForm())
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	var resp createReservationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ID != "res-1" || resp.Senha != "K7QZ3MPA" || resp.Status != "pendente" || resp.Message == "" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestCreateReservation_OptionalQuantitiesDefaultToZero(t *testing.T) {
	env := newTestEnv(t)

	form := url.Values{"dataAgendamento": {"2024-06-10"}, "tipoCaminhao": {"van"}}
	env.reservations.EXPECT().Admit(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, in app.AdmitInput) (domain.Reservation, error) {
			if in.Payload.PalletQuantity != 0 || in.Payload.VolumeQuantity != 0 {
				t.Fatalf("expected zero quantities, got %+v", in.Payload)
			}
			return domain.Reservation{ID: "res-2", Status: domain.ReservationStatusPending}, nil
		})

	rec := env.postForm("/api/agendamentos", env.staffToken, form)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
}

func TestCreateReservation_InvalidForm(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(url.Values)
		code   string
		field  string
	}{
		{name: "missing date", mutate: func(v url.Values) { v.Del("dataAgendamento") }, code: codeValidationFailed, field: "dataAgendamento"},
		{name: "missing truck type", mutate: func(v url.Values) { v.Del("tipoCaminhao") }, code: codeValidationFailed, field: "tipoCaminhao"},
		{name: "pallets not numeric", mutate: func(v url.Values) { v.Set("quantidadePaletes", "doze") }, code: codeValidationFailed, field: "quantidadePaletes"},
		{name: "negative volumes", mutate: func(v url.Values) { v.Set("quantidadeVolumes", "-3") }, code: codeValidationFailed, field: "quantidadeVolumes"},
		{name: "malformed date", mutate: func(v url.Values) { v.Set("dataAgendamento", "10/06/2024") }, code: codeInvalidDate, field: "dataAgendamento"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			form := bookingForm()
			tt.mutate(form)

			rec := env.postForm("/api/agendamentos", env.staffToken, form)
			resp := expectError(t, rec, http.StatusBadRequest, tt.code)
			if !strings.Contains(resp.Error, tt.field) {
				t.Fatalf("expected error to name %s, got %q", tt.field, resp.Error)
			}
		})
	}
}

func TestCreateReservation_ServiceErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
		substr string
	}{
		{
			name:   "capacity",
			err:    &domain.CapacityError{TruckType: "truck", Date: june(10), Limit: 2},
			status: http.StatusConflict,
			code:   codeCapacityExceeded,
			substr: "truck on 2024-06-10",
		},
		{
			name:   "unconfigured type",
			err:    &domain.ConfigError{TruckType: "bitrem"},
			status: http.StatusUnprocessableEntity,
			code:   codeTruckTypeNotConfigured,
			substr: "bitrem",
		},
		{
			name:   "validation",
			err:    domain.NewValidationError("truck_type", "required"),
			status: http.StatusBadRequest,
			code:   codeValidationFailed,
			substr: "truck_type",
		},
		{
			name:   "internal",
			err:    errors.New("connection refused"),
			status: http.StatusInternalServerError,
			code:   codeInternalError,
			substr: "internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.reservations.EXPECT().Admit(gomock.Any(), gomock.Any()).Return(domain.Reservation{}, tt.err)

			rec := env.postForm("/api/agendamentos", env.staffToken, bookingForm())
			resp := expectError(t, rec, tt.status, tt.code)
			if !strings.Contains(resp.Error, tt.substr) {
				t.Fatalf("expected %q in error, got %q", tt.substr, resp.Error)
			}
		})
	}
}

func TestListReservations(t *testing.T) {
	env := newTestEnv(t)
	arrival := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	env.reservations.EXPECT().ListByDate(gomock.Any(), june(10)).Return([]domain.Reservation{
		{ID: "r1", Date: june(10), TruckType: "truck", AccessCode: "AAAA2222", Status: domain.ReservationStatusPending, ArrivalAt: &arrival},
		{ID: "r2", Date: june(10), TruckType: "van", AccessCode: "BBBB3333", Status: domain.ReservationStatusReceived, HandlingTime: "01:30"},
	}, nil)

	rec := env.get("/api/agendamentos?data=2024-06-10", env.staffToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var resp []reservationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp) != 2 || resp[0].ID != "r1" || resp[1].TempoManuseio != "01:30" {
		t.Fatalf("unexpected list %+v", resp)
	}
	if resp[0].ChegadaNF == nil || !resp[0].ChegadaNF.Equal(arrival) {
		t.Fatalf("expected arrival on first reservation, got %v", resp[0].ChegadaNF)
	}

	rec = env.get("/api/agendamentos", env.staffToken)
	expectError(t, rec, http.StatusBadRequest, codeMissingDate)
}

func TestGetReservation(t *testing.T) {
	env := newTestEnv(t)
	env.reservations.EXPECT().Get(gomock.Any(), "r1").Return(domain.Reservation{
		ID: "r1", Date: june(10), TruckType: "truck", CreatedBy: "ana", Status: domain.ReservationStatusPending,
	}, nil)
	env.reservations.EXPECT().Get(gomock.Any(), "missing").Return(domain.Reservation{}, domain.ErrReservationNotFound)

	rec := env.get("/api/agendamentos/r1", env.staffToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"criadoPor":"ana"`) {
		t.Fatalf("expected creator in body, got %s", rec.Body.String())
	}

	rec = env.get("/api/agendamentos/missing", env.staffToken)
	expectError(t, rec, http.StatusNotFound, codeReservationNotFound)
}

func TestRecordArrival(t *testing.T) {
	env := newTestEnv(t)
	at := time.Date(2024, 6, 10, 7, 45, 0, 0, time.UTC)
	env.conferences.EXPECT().RecordArrival(gomock.Any(), "r1").Return(domain.Reservation{
		ID: "r1", Status: domain.ReservationStatusPending, ArrivalAt: &at,
	}, nil)
	env.conferences.EXPECT().RecordArrival(gomock.Any(), "r2").Return(domain.Reservation{}, domain.ErrAlreadyReceived)

	rec := env.do(http.MethodPost, "/api/agendamentos/r1/chegada", env.staffToken, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"chegadaNF":"2024-06-10T07:45:00Z"`) {
		t.Fatalf("expected arrival in body, got %s", rec.Body.String())
	}

	rec = env.do(http.MethodPost, "/api/agendamentos/r2/chegada", env.staffToken, "", nil)
	expectError(t, rec, http.StatusConflict, codeAlreadyReceived)
}
