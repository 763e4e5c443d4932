package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/ecocoleta/internal/domain/errors"
	"github.com/polkiloo/ecocoleta/internal/domain/model"
	"github.com/polkiloo/ecocoleta/internal/domain/workflow"
	"github.com/polkiloo/ecocoleta/internal/server/http/dto"
	"github.com/polkiloo/ecocoleta/internal/server/http/middleware"
	testhelpers "github.com/polkiloo/ecocoleta/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.RegisterValidators()
}

var (
	citizenActor = model.Actor{ID: uuid.New(), Role: model.RoleCitizen}
	agentActor   = model.Actor{ID: uuid.New(), Role: model.RoleAgent}
	driverActor  = model.Actor{ID: uuid.New(), Role: model.RoleDriver}
	adminActor   = model.Actor{ID: uuid.New(), Role: model.RoleAdmin}
)

func asActor(actor model.Actor) func(*gin.Context) {
	return func(c *gin.Context) { c.Set(middleware.ActorContextKey, actor) }
}

func performRequest(t *testing.T, method, pattern, path string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, pattern, func(c *gin.Context) {
		if setup != nil {
			setup(c)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()
	var body dto.ErrorResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("error body is not json: %q", resp.Body.String())
	}
	return body.Error
}

func TestCurrentActor(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentActor(c); got != (model.Actor{}) {
		t.Fatalf("expected zero actor when not set, got %+v", got)
	}

	c.Set(middleware.ActorContextKey, agentActor)
	if got := CurrentActor(c); got != agentActor {
		t.Fatalf("expected %+v, got %+v", agentActor, got)
	}
}

func TestWriteErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domainErrors.ErrClosedOrder, http.StatusConflict},
		{domainErrors.ErrUnknownStatus, http.StatusBadRequest},
		{domainErrors.ErrUnauthorizedTransition, http.StatusForbidden},
		{domainErrors.ErrForbidden, http.StatusForbidden},
		{domainErrors.ErrAnnotationRequired, http.StatusUnprocessableEntity},
		{domainErrors.ErrSchedulingDataRequired, http.StatusUnprocessableEntity},
		{domainErrors.ErrInvalidOrder, http.StatusUnprocessableEntity},
		{domainErrors.ErrInvalidTaxID, http.StatusUnprocessableEntity},
		{domainErrors.ErrInvalidAccount, http.StatusUnprocessableEntity},
		{domainErrors.ErrInvalidQueueRequest, http.StatusBadRequest},
		{domainErrors.ErrUnsupportedQueryShape, http.StatusBadRequest},
		{domainErrors.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("transition order 0001: %w", domainErrors.ErrConflict), http.StatusConflict},
		{domainErrors.ErrAlreadyExists, http.StatusConflict},
		{domainErrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		resp := performRequest(t, http.MethodGet, "/", "/", func(c *gin.Context) { writeError(c, tc.err) }, nil, nil)
		if resp.Code != tc.code {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.code, resp.Code)
		}
		msg := decodeError(t, resp)
		if tc.code == http.StatusInternalServerError && msg != "internal error" {
			t.Fatalf("internal errors must not leak details, got %q", msg)
		}
	}
}

var campinas = dto.AddressRequest{Street: "Rua das Flores", Number: "120", District: "Centro", City: "Campinas", State: "SP", PostalCode: "13010-050"}

func TestAuthHandlerRegister(t *testing.T) {
	name := testhelpers.RandomASCIIString(7, 14)
	password := testhelpers.RandomASCIIString(16, 32)
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{RegisterFn: func(_ context.Context, in model.Registration) (string, error) {
		if in.Name != name || in.Password != password || in.TaxID != "529.982.247-25" || in.Phone != "(19) 3232-1000" {
			t.Fatalf("unexpected registration passed to facade: %+v", in)
		}
		want := model.Address{Street: "Rua das Flores", Number: "120", District: "Centro", City: "Campinas", State: "SP", PostalCode: "13010-050"}
		if in.Address != want {
			t.Fatalf("address not forwarded: %+v", in.Address)
		}
		return "issued", nil
	}})
	body, _ := json.Marshal(dto.RegisterRequest{Name: name, Email: "user@example.org", TaxID: "529.982.247-25", Phone: "(19) 3232-1000", Address: campinas, Password: password})

	resp := performRequest(t, http.MethodPost, "/register", "/register", handler.Register, nil, body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if resp.Header().Get("Authorization") != "Bearer issued" {
		t.Fatalf("expected auth header to be set")
	}
	var token dto.TokenResponse
	_ = json.Unmarshal(resp.Body.Bytes(), &token)
	if token.Token != "issued" {
		t.Fatalf("unexpected token body %q", resp.Body.String())
	}
}

func TestAuthHandlerRegisterErrors(t *testing.T) {
	valid := dto.RegisterRequest{Name: "Ana", Email: "ana@example.org", TaxID: "52998224725", Phone: "19987654321", Address: campinas, Password: "secret1"}

	badCPF := valid
	badCPF.TaxID = "52998224726"
	body, _ := json.Marshal(badCPF)
	resp := performRequest(t, http.MethodPost, "/register", "/register", NewAuthHandler(testhelpers.AuthFacadeStub{}).Register, nil, body)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for invalid cpf, got %d", resp.Code)
	}

	noCity := valid
	noCity.Address.City = ""
	body, _ = json.Marshal(noCity)
	resp = performRequest(t, http.MethodPost, "/register", "/register", NewAuthHandler(testhelpers.AuthFacadeStub{}).Register, nil, body)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for incomplete address, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodPost, "/register", "/register", NewAuthHandler(testhelpers.AuthFacadeStub{}).Register, nil, []byte("{"))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", resp.Code)
	}

	body, _ = json.Marshal(valid)
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, model.Registration) (string, error) {
		return "", domainErrors.ErrAlreadyExists
	}})
	resp = performRequest(t, http.MethodPost, "/register", "/register", handler.Register, nil, body)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate, got %d", resp.Code)
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	body, _ := json.Marshal(dto.LoginRequest{Email: "user@example.org", Password: "pass"})
	resp := performRequest(t, http.MethodPost, "/login", "/login", NewAuthHandler(testhelpers.AuthFacadeStub{}).Login, nil, body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	handler := NewAuthHandler(testhelpers.AuthFacadeStub{AuthenticateFn: func(context.Context, string, string) (string, error) {
		return "", domainErrors.ErrInvalidCredentials
	}})
	resp = performRequest(t, http.MethodPost, "/login", "/login", handler.Login, nil, body)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodPost, "/login", "/login", handler.Login, nil, []byte(`{"email":"x"}`))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestOrderHandlerCreate(t *testing.T) {
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{CreateFn: func(_ context.Context, actor model.Actor, in model.OrderDraft) (*model.Order, error) {
		if actor != citizenActor || in.ServiceType != model.ServiceDonation || in.EquipmentType != model.EquipmentPrinter {
			t.Fatalf("unexpected create call %+v %+v", actor, in)
		}
		return &model.Order{Number: 12, ServiceType: in.ServiceType, EquipmentType: in.EquipmentType, Status: model.StatusAwaitingAnalysis}, nil
	}})
	body, _ := json.Marshal(dto.CreateOrderRequest{ServiceType: "donation", EquipmentType: "printer", Description: "Works fine"})

	resp := performRequest(t, http.MethodPost, "/orders", "/orders", handler.Create, asActor(citizenActor), body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
	var got dto.OrderResponse
	_ = json.Unmarshal(resp.Body.Bytes(), &got)
	if got.Number != "0012" || got.Status.Code != "awaiting_analysis" || got.Status.Label != "Aguardando Análise" {
		t.Fatalf("unexpected response %+v", got)
	}
	if got.EquipmentType != "printer" || got.EquipmentLabel != "Impressora" {
		t.Fatalf("unexpected equipment %q %q", got.EquipmentType, got.EquipmentLabel)
	}

	body, _ = json.Marshal(dto.CreateOrderRequest{ServiceType: "donation", EquipmentType: "Printer", Description: "Works fine"})
	resp = performRequest(t, http.MethodPost, "/orders", "/orders", handler.Create, asActor(citizenActor), body)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for equipment outside the catalog, got %d", resp.Code)
	}

	body, _ = json.Marshal(dto.CreateOrderRequest{ServiceType: "repair", EquipmentType: "printer", Description: "x"})
	resp = performRequest(t, http.MethodPost, "/orders", "/orders", handler.Create, asActor(citizenActor), body)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for unknown service type, got %d", resp.Code)
	}
}

func TestOrderHandlerGet(t *testing.T) {
	date := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	shift := model.ShiftAfternoon
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{OrderFn: func(_ context.Context, actor model.Actor, number int64) (*model.OrderView, error) {
		if number != 7 {
			return nil, domainErrors.ErrNotFound
		}
		return &model.OrderView{
			Order:     model.Order{Number: 7, Status: model.StatusScheduledTransport, ScheduledDate: &date, Shift: &shift},
			Requester: model.Requester{Name: "Ana", TaxID: "52998224725", Phone: "19987654321", Address: model.Address{
				Street: "Rua das Flores", Number: "120", District: "Centro", City: "Campinas", State: "SP", PostalCode: "13010050",
			}},
		}, nil
	}})

	resp := performRequest(t, http.MethodGet, "/orders/:number", "/orders/0007", handler.Get, asActor(driverActor), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var got dto.OrderDetailResponse
	_ = json.Unmarshal(resp.Body.Bytes(), &got)
	if got.Number != "0007" || got.Requester.Name != "Ana" || got.Requester.Phone != "19987654321" {
		t.Fatalf("unexpected detail %+v", got)
	}
	if got.Requester.Address.Number != "120" || got.Requester.Address.PostalCode != "13010050" || got.Requester.Address.State != "SP" {
		t.Fatalf("requester address not rendered: %+v", got.Requester.Address)
	}
	if got.ScheduledDate == nil || *got.ScheduledDate != "2024-06-03" || got.Shift == nil || *got.Shift != "afternoon" {
		t.Fatalf("scheduling not rendered: %+v", got)
	}
	if len(got.AllowedTransitions) != 2 {
		t.Fatalf("driver should see two moves, got %+v", got.AllowedTransitions)
	}

	resp = performRequest(t, http.MethodGet, "/orders/:number", "/orders/8", handler.Get, asActor(driverActor), nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
	resp = performRequest(t, http.MethodGet, "/orders/:number", "/orders/abc", handler.Get, asActor(driverActor), nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad number, got %d", resp.Code)
	}
}

func TestOrderHandlerHistory(t *testing.T) {
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{HistoryFn: func(context.Context, model.Actor, int64) ([]model.TransitionRecord, error) {
		return []model.TransitionRecord{{From: model.StatusAwaitingAnalysis, To: model.StatusInService, ActorRole: model.RoleAgent, Annotation: "Calling requester"}}, nil
	}})

	resp := performRequest(t, http.MethodGet, "/orders/:number/history", "/orders/1/history", handler.History, asActor(agentActor), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var got []dto.HistoryEntryResponse
	_ = json.Unmarshal(resp.Body.Bytes(), &got)
	if len(got) != 1 || got[0].To.Code != "in_service" || got[0].Annotation != "Calling requester" {
		t.Fatalf("unexpected history %+v", got)
	}
}

func TestOrderHandlerTransition(t *testing.T) {
	var gotTarget model.StatusID
	var gotPayload workflow.Payload
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{TransitionFn: func(_ context.Context, actor model.Actor, number int64, target model.StatusID, p workflow.Payload) (*model.Order, error) {
		gotTarget, gotPayload = target, p
		return &model.Order{Number: number, Status: target}, nil
	}})

	body := []byte(`{"status":"Destino Transporte Coleta","annotation":"Pickup by truck","scheduled_date":"2024-06-03","shift":"morning"}`)
	resp := performRequest(t, http.MethodPost, "/orders/:number/transitions", "/orders/3/transitions", handler.Transition, asActor(agentActor), body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if gotTarget != model.StatusScheduledTransport {
		t.Fatalf("label not resolved, got %v", gotTarget)
	}
	if gotPayload.ScheduledDate == nil || gotPayload.ScheduledDate.Day() != 3 || gotPayload.Shift == nil || *gotPayload.Shift != model.ShiftMorning {
		t.Fatalf("scheduling not forwarded: %+v", gotPayload)
	}

	body = []byte(`{"status":"7","annotation":"Calling requester"}`)
	resp = performRequest(t, http.MethodPost, "/orders/:number/transitions", "/orders/3/transitions", handler.Transition, asActor(agentActor), body)
	if resp.Code != http.StatusOK || gotTarget != model.StatusInService {
		t.Fatalf("numeric status not accepted: %d %v", resp.Code, gotTarget)
	}
}

func TestOrderHandlerTransitionErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
		err  error
		code int
	}{
		{"bad shift", `{"status":"2","annotation":"Long enough text","scheduled_date":"2024-06-03","shift":"night"}`, nil, http.StatusUnprocessableEntity},
		{"bad date", `{"status":"2","annotation":"Long enough text","scheduled_date":"03/06/2024","shift":"morning"}`, nil, http.StatusUnprocessableEntity},
		{"closed", `{"status":"7","annotation":"Long enough text"}`, domainErrors.ErrClosedOrder, http.StatusConflict},
		{"unauthorized", `{"status":"5","annotation":"Long enough text"}`, domainErrors.ErrUnauthorizedTransition, http.StatusForbidden},
		{"annotation", `{"status":"7","annotation":"short"}`, domainErrors.ErrAnnotationRequired, http.StatusUnprocessableEntity},
		{"conflict", `{"status":"7","annotation":"Long enough text"}`, domainErrors.ErrConflict, http.StatusConflict},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewOrderHandler(testhelpers.OrderFacadeStub{TransitionFn: func(_ context.Context, _ model.Actor, number int64, target model.StatusID, _ workflow.Payload) (*model.Order, error) {
				if tc.err != nil {
					return nil, tc.err
				}
				return &model.Order{Number: number, Status: target}, nil
			}})
			resp := performRequest(t, http.MethodPost, "/orders/:number/transitions", "/orders/3/transitions", handler.Transition, asActor(agentActor), []byte(tc.body))
			if resp.Code != tc.code {
				t.Fatalf("expected %d, got %d: %s", tc.code, resp.Code, resp.Body.String())
			}
			if decodeError(t, resp) == "" {
				t.Fatalf("expected error message")
			}
		})
	}
}

func TestOrderHandlerTransitionUnknownLabelReachesEngine(t *testing.T) {
	closed := map[int64]bool{4: true}
	var calls int
	var gotTarget model.StatusID
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{TransitionFn: func(_ context.Context, _ model.Actor, number int64, target model.StatusID, _ workflow.Payload) (*model.Order, error) {
		calls++
		gotTarget = target
		if closed[number] {
			return nil, domainErrors.ErrClosedOrder
		}
		if !target.Valid() {
			return nil, domainErrors.ErrUnknownStatus
		}
		return &model.Order{Number: number, Status: target}, nil
	}})
	body := []byte(`{"status":"Pedido Arquivado","annotation":"Long enough text"}`)

	resp := performRequest(t, http.MethodPost, "/orders/:number/transitions", "/orders/4/transitions", handler.Transition, asActor(agentActor), body)
	if resp.Code != http.StatusConflict {
		t.Fatalf("closed order must win over an unknown label, got %d: %s", resp.Code, resp.Body.String())
	}
	if calls != 1 || gotTarget.Valid() {
		t.Fatalf("unknown label should be forwarded as an invalid id, calls=%d target=%v", calls, gotTarget)
	}

	resp = performRequest(t, http.MethodPost, "/orders/:number/transitions", "/orders/5/transitions", handler.Transition, asActor(agentActor), body)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status on an open order, got %d", resp.Code)
	}
	if calls != 2 {
		t.Fatalf("expected the transition to be attempted, calls=%d", calls)
	}
}

func TestParseTarget(t *testing.T) {
	cases := map[string]model.StatusID{
		"3":                model.StatusScheduledTransport,
		" cancelled ":      model.StatusCancelled,
		"Coleta Concluída": model.StatusCollectionCompleted,
		"99":               99,
		"Pedido Arquivado": 0,
	}
	for raw, want := range cases {
		if got := parseTarget(raw); got != want {
			t.Fatalf("parseTarget(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestQueueHandler(t *testing.T) {
	var got model.QueueRequest
	handler := NewQueueHandler(testhelpers.QueueFacadeStub{QueueFn: func(_ context.Context, req model.QueueRequest) ([]model.Order, error) {
		got = req
		if req.Queue == "archive" {
			return nil, domainErrors.ErrInvalidQueueRequest
		}
		return []model.Order{{Number: 1, Status: model.StatusAwaitingAnalysis}}, nil
	}})

	resp := performRequest(t, http.MethodGet, "/queue", "/queue", handler.Default, asActor(citizenActor), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if got.Role != model.RoleCitizen || got.RequesterID != citizenActor.ID || got.Queue != "" {
		t.Fatalf("unexpected request %+v", got)
	}

	resp = performRequest(t, http.MethodGet, "/queues/:name", "/queues/cancelled", handler.Named, asActor(agentActor), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if got.Queue != model.QueueCancelled || got.RequesterID != uuid.Nil {
		t.Fatalf("unexpected request %+v", got)
	}
	var orders []dto.OrderResponse
	_ = json.Unmarshal(resp.Body.Bytes(), &orders)
	if len(orders) != 1 || orders[0].Number != "0001" {
		t.Fatalf("unexpected orders %+v", orders)
	}

	resp = performRequest(t, http.MethodGet, "/queues/:name", "/queues/archive", handler.Named, asActor(agentActor), nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestQueueHandlerLookup(t *testing.T) {
	handler := NewQueueHandler(testhelpers.QueueFacadeStub{LookupFn: func(_ context.Context, q string) (*model.LookupResult, error) {
		switch q {
		case "52998224725":
			return &model.LookupResult{Mode: model.LookupByTaxID, Orders: []model.OrderView{
				{Order: model.Order{Number: 4, Status: model.StatusAwaitingAnalysis}, Requester: model.Requester{Name: "Ana", TaxID: q, Phone: "19987654321", Address: model.Address{City: "Campinas", State: "SP"}}},
			}}, nil
		case "Ana":
			return nil, domainErrors.ErrUnsupportedQueryShape
		}
		return nil, domainErrors.ErrNotFound
	}})

	resp := performRequest(t, http.MethodGet, "/lookup", "/lookup?q=52998224725", handler.Lookup, asActor(agentActor), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var got dto.LookupResponse
	_ = json.Unmarshal(resp.Body.Bytes(), &got)
	if got.Mode != "tax_id" || len(got.Orders) != 1 || got.Orders[0].Requester.TaxID != "52998224725" {
		t.Fatalf("unexpected lookup %+v", got)
	}
	if r := got.Orders[0].Requester; r.Phone != "19987654321" || r.Address.City != "Campinas" {
		t.Fatalf("lookup should carry the requester profile, got %+v", r)
	}

	if resp = performRequest(t, http.MethodGet, "/lookup", "/lookup?q=Ana", handler.Lookup, asActor(agentActor), nil); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if resp = performRequest(t, http.MethodGet, "/lookup", "/lookup?q=9", handler.Lookup, asActor(agentActor), nil); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestStaffHandler(t *testing.T) {
	staffID := uuid.New()
	handler := NewStaffHandler(testhelpers.StaffFacadeStub{
		ListFn: func(context.Context, model.Actor) ([]model.User, error) {
			return []model.User{{ID: staffID, Name: "Dani", Role: model.RoleDriver}}, nil
		},
		DeleteFn: func(_ context.Context, _ model.Actor, id uuid.UUID) error {
			if id != staffID {
				return domainErrors.ErrNotFound
			}
			return nil
		},
	})

	body, _ := json.Marshal(dto.StaffRequest{Name: "Dani", Email: "dani@agency.gov", Password: "secret1", Role: "driver"})
	resp := performRequest(t, http.MethodPost, "/staff", "/staff", handler.Create, asActor(adminActor), body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	body, _ = json.Marshal(dto.StaffRequest{Name: "Dani", Email: "dani@agency.gov", Password: "secret1", Role: "admin"})
	resp = performRequest(t, http.MethodPost, "/staff", "/staff", handler.Create, asActor(adminActor), body)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for admin role, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodGet, "/staff", "/staff", handler.List, asActor(adminActor), nil)
	var list []dto.StaffResponse
	_ = json.Unmarshal(resp.Body.Bytes(), &list)
	if resp.Code != http.StatusOK || len(list) != 1 || list[0].ID != staffID.String() {
		t.Fatalf("unexpected list %d %+v", resp.Code, list)
	}

	resp = performRequest(t, http.MethodDelete, "/staff/:id", "/staff/"+staffID.String(), handler.Delete, asActor(adminActor), nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
	resp = performRequest(t, http.MethodDelete, "/staff/:id", "/staff/"+uuid.NewString(), handler.Delete, asActor(adminActor), nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
	resp = performRequest(t, http.MethodDelete, "/staff/:id", "/staff/nope", handler.Delete, asActor(adminActor), nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

type healthStub struct{ err error }

func (h healthStub) HealthCheck(context.Context) error { return h.err }

func TestHealth(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/healthz", "/healthz", Health(healthStub{}), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	resp = performRequest(t, http.MethodGet, "/healthz", "/healthz", Health(healthStub{err: errors.New("down")}), nil, nil)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
}

var _ CollectionFacade = testhelpers.CollectionFacadeStub{}

func TestCatalog(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/catalog", "/catalog", Catalog, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var got dto.CatalogResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Statuses) != 7 || got.Statuses[0].Code != "awaiting_analysis" {
		t.Fatalf("unexpected statuses %+v", got.Statuses)
	}
	if len(got.Equipment) != len(model.EquipmentCatalog()) {
		t.Fatalf("unexpected equipment %+v", got.Equipment)
	}
	for _, e := range got.Equipment {
		if !model.EquipmentType(e.Code).Valid() || e.Label == "" {
			t.Fatalf("bad equipment entry %+v", e)
		}
	}
}
