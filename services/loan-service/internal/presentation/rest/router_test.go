package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loanflow/loanflow/pkg/auth"
	"github.com/loanflow/loanflow/pkg/observability"
	"github.com/loanflow/loanflow/services/loan-service/internal/application/usecase"
	"github.com/loanflow/loanflow/services/loan-service/internal/domain/service"
	"github.com/loanflow/loanflow/services/loan-service/internal/infrastructure/kafka"
	"github.com/loanflow/loanflow/services/loan-service/internal/infrastructure/memory"
)

type nopMetrics struct{}

func (nopMetrics) RecordUnderwriting(context.Context, string) {}
func (nopMetrics) RecordKyc(context.Context, string)          {}

type testServer struct {
	router http.Handler
	audit  *memory.AuditLog
}

func newTestServer(t *testing.T, mutate func(*RouterConfig)) testServer {
	t.Helper()
	logger := observability.NopLogger()
	customers := memory.NewSeededCustomerRepository()
	audit := memory.NewAuditLog()
	letters := memory.NewSanctionLetterRepository()
	recorder := usecase.NewDirectRecorder(audit, kafka.NopPublisher{}, logger)
	rules := memory.NewSeededRuleRepository()

	loans := NewLoanHandler(
		usecase.NewVerifyKycUseCase(customers, recorder, nopMetrics{}, service.NewKycVerifier(), logger),
		usecase.NewEvaluateUnderwritingUseCase(customers, recorder, nopMetrics{},
			service.NewUnderwritingEngine(service.NewReferenceGenerator(service.UnderwritingPrefix, nil)), logger),
		usecase.NewGetAuditLogsUseCase(audit),
		usecase.NewCustomerDirectoryUseCase(customers),
		usecase.NewExtractSalaryUseCase(customers),
		usecase.NewGenerateSanctionLetterUseCase(letters, recorder,
			service.NewReferenceGenerator(service.SanctionPrefix, nil), logger),
		usecase.NewGetSanctionLetterUseCase(letters),
		logger,
	)
	cfg := RouterConfig{
		Loans: loans,
		Rules: NewRulesHandler(
			usecase.NewManageRulesUseCase(rules, logger),
			usecase.NewEvaluateRulesUseCase(rules, recorder, logger),
			false, logger,
		),
		Products:       NewProductHandler(usecase.NewListLoanProductsUseCase(memory.NewSeededProductCatalog()), logger),
		Health:         NewHealthHandler("loan-service", nil, logger),
		Metrics:        http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, "# metrics\n") }),
		AllowedOrigins: []string{"*"},
		Logger:         logger,
	}
	if mutate != nil {
		mutate(&cfg)
	}
	return testServer{router: NewRouter(cfg), audit: audit}
}

func (s testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t, nil)

	for _, path := range []string{"/healthz", "/readyz", "/api/health"} {
		rec := s.do(t, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	body := decodeBody[map[string]any](t, s.do(t, http.MethodGet, "/api/health", ""))
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["timestamp"])

	rec := s.do(t, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "# metrics")
}

func TestReadinessFailure(t *testing.T) {
	logger := observability.NopLogger()
	h := NewHealthHandler("loan-service", map[string]ReadinessCheck{
		"postgres": func(context.Context) error { return errors.New("connection refused") },
	}, logger)
	s := newTestServer(t, func(cfg *RouterConfig) { cfg.Health = h })

	rec := s.do(t, http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "connection refused")
}

func TestCustomerEndpoints(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/api/customers", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]map[string]any](t, rec), 10)

	rec = s.do(t, http.MethodGet, "/api/customers/CUST003", "")
	require.Equal(t, http.StatusOK, rec.Code)
	customer := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "Sneha Kapoor", customer["name"])
	assert.Equal(t, "Self-Employed", customer["employment_type"])

	rec = s.do(t, http.MethodGet, "/api/crm/CUST999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, decodeBody[errorResponse](t, rec).Error, "customer not found")

	rec = s.do(t, http.MethodGet, "/api/credit/CUST002", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 680, decodeBody[map[string]any](t, rec)["score"])

	rec = s.do(t, http.MethodGet, "/api/offers", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]map[string]any](t, rec), 10)

	rec = s.do(t, http.MethodGet, "/api/offers/CUST004", "")
	require.Equal(t, http.StatusOK, rec.Code)
	offers := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "CUST004", offers["customer_id"])
	assert.EqualValues(t, 1, offers["total_offers"])
}

func TestVerifyKycEndpoint(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPost, "/api/verify-kyc",
		`{"customer_id":"CUST001","name":"anita  verma","phone":"+91 9810000001","address":"Flat 2, Delhi"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "VERIFIED", body["status"])
	assert.Equal(t, []any{}, body["mismatches"])

	rec = s.do(t, http.MethodPost, "/api/verify-kyc",
		`{"customer_id":"CUST999","name":"x","phone":"1","address":"y"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeBody[map[string]any](t, rec)
	assert.Equal(t, "FAILED", body["status"])
	assert.Equal(t, []any{"Customer not found in CRM"}, body["mismatches"])

	rec = s.do(t, http.MethodPost, "/api/verify-kyc", `{"customer_id":"CUST001"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing address, name, phone")

	rec = s.do(t, http.MethodPost, "/api/verify-kyc", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	audit := decodeBody[[]map[string]any](t, s.do(t, http.MethodGet, "/api/audit/CUST001", ""))
	require.Len(t, audit, 1)
	assert.Equal(t, "KYC_VERIFICATION", audit[0]["action"])
	assert.Equal(t, "All details verified", audit[0]["reason"])
}

func TestUnderwriteEndpoint(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPost, "/api/underwrite",
		`{"customer_id":"CUST001","loan_amount":150000,"tenure_months":24,"annual_rate_percent":12,"credit_score":720,"pre_approved_limit":100000}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "APPROVE", body["decision"])
	assert.Equal(t, "7061", body["emi"])
	assert.Equal(t, "169464", body["total_amount"])
	assert.True(t, strings.HasPrefix(body["reference_number"].(string), "UW"))
	assert.NotContains(t, body, "required_action")

	rec = s.do(t, http.MethodPost, "/api/underwrite",
		`{"customer_id":"CUST002","loan_amount":"50000","tenure_months":12,"annual_rate_percent":"10.5","credit_score":650}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeBody[map[string]any](t, rec)
	assert.Equal(t, "REJECT", body["decision"])
	assert.Equal(t, "Please improve your credit score and reapply.", body["required_action"])

	rec = s.do(t, http.MethodPost, "/api/underwrite",
		`{"customer_id":"CUST001","loan_amount":0,"tenure_months":24,"annual_rate_percent":12}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/underwrite",
		`{"customer_id":"CUST001","loan_amount":1000,"tenure_months":0,"annual_rate_percent":12}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 2, s.audit.Len())
}

func TestSalaryAndSanctionEndpoints(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPost, "/api/extract-salary", `{"customer_id":"CUST003"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	slip := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "156000", slip["gross_income"])
	assert.Equal(t, "Self-Employed", slip["employer"])
	assert.Equal(t, true, slip["parsed"])

	rec = s.do(t, http.MethodPost, "/api/generate-sanction-letter",
		`{"customer_id":"CUST003","amount":500000,"tenure_months":48,"annual_rate_percent":9.5}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	letter := decodeBody[map[string]any](t, rec)
	ref := letter["reference_number"].(string)
	assert.True(t, strings.HasPrefix(ref, "SNCT"))
	assert.Equal(t, "12562", letter["emi"])

	rec = s.do(t, http.MethodGet, "/api/sanction/"+ref, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "CUST003", decodeBody[map[string]any](t, rec)["customer_id"])

	rec = s.do(t, http.MethodGet, "/api/sanction/SNCT0", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/generate-sanction-letter", `{"customer_id":"CUST003","amount":-1,"tenure_months":12}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBearerAuth(t *testing.T) {
	jwtSvc, err := auth.NewJWTService(auth.JWTConfig{Secret: "test-secret", Issuer: "loanflow", Expiration: time.Hour})
	require.NoError(t, err)
	s := newTestServer(t, func(cfg *RouterConfig) { cfg.JWT = jwtSvc })

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/healthz", "").Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/health", "").Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/customers", "").Code)

	token, err := jwtSvc.GenerateToken("underwriter-1", []string{auth.RoleUnderwriter})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/customers", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, func(cfg *RouterConfig) { cfg.RateLimiter = NewRateLimiter(1, 2) })

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/offers", "").Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/offers", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, s.do(t, http.MethodGet, "/api/offers", "").Code)
	// Health checks are never limited.
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/healthz", "").Code)
}

func TestRulesEndpoints(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/api/rules", "")
	require.Equal(t, http.StatusOK, rec.Code)
	rules := decodeBody[map[string][]map[string]any](t, rec)["rules"]
	require.Len(t, rules, 3)
	assert.Equal(t, "Min Credit Score", rules[0]["name"])
	assert.EqualValues(t, 700, rules[0]["threshold"])

	rec = s.do(t, http.MethodPost, "/api/rules",
		`{"name":"Senior Cap","rule_type":"age_restriction","operator":"gt","threshold":60,"action":"REJECT","priority":150}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/rules",
		`{"name":"Senior Cap","rule_type":"age_restriction","operator":"gt","threshold":60,"action":"REJECT"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/rules", `{"name":"Bad","rule_type":"nope","operator":"gt","threshold":1,"action":"REJECT"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/rules/evaluate",
		`{"customer_id":"CUST004","facts":{"credit_score_min":760,"age_restriction":64}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	eval := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "REJECT", eval["decision"])
	assert.Equal(t, "Failed rules: Senior Cap", eval["reason"])

	entries, err := s.audit.ListByCustomer(context.Background(), "CUST004")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "RULES_EVALUATION", entries[0].Action())

	rec = s.do(t, http.MethodPut, "/api/rules/Senior%20Cap", `{"enabled":false}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, false, decodeBody[map[string]any](t, rec)["enabled"])

	rec = s.do(t, http.MethodPost, "/api/rules/evaluate", `{"facts":{"credit_score_min":760,"age_restriction":64}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "APPROVE", decodeBody[map[string]any](t, rec)["decision"])

	assert.Equal(t, http.StatusNoContent, s.do(t, http.MethodDelete, "/api/rules/Senior%20Cap", "").Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodDelete, "/api/rules/Senior%20Cap", "").Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodPut, "/api/rules/Ghost", `{"priority":1}`).Code)
}

func TestRuleEditsRequireAdmin(t *testing.T) {
	jwtSvc, err := auth.NewJWTService(auth.JWTConfig{Secret: "router-test-secret", Issuer: "loanflow-test", Expiration: time.Hour})
	require.NoError(t, err)
	s := newTestServer(t, func(cfg *RouterConfig) {
		cfg.JWT = jwtSvc
		cfg.Rules.enforceRoles = true
	})

	call := func(roles []string, method, path, body string) int {
		token, err := jwtSvc.GenerateToken("staff-1", roles)
		require.NoError(t, err)
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)
		return rec.Code
	}

	body := `{"name":"Salaried","rule_type":"employment_type","operator":"in","threshold":["Salaried"],"action":"APPROVE"}`
	assert.Equal(t, http.StatusForbidden, call([]string{auth.RoleUnderwriter}, http.MethodPost, "/api/rules", body))
	assert.Equal(t, http.StatusOK, call([]string{auth.RoleUnderwriter}, http.MethodGet, "/api/rules", ""))
	assert.Equal(t, http.StatusCreated, call([]string{auth.RoleAdmin}, http.MethodPost, "/api/rules", body))
	assert.Equal(t, http.StatusForbidden, call([]string{auth.RoleAuditor}, http.MethodDelete, "/api/rules/Salaried", ""))
}

func TestProductsEndpoint(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/api/loans/products", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]map[string]any](t, rec), 25)

	rec = s.do(t, http.MethodGet, "/api/loans/products?category=home&bank=SBI", "")
	require.Equal(t, http.StatusOK, rec.Code)
	products := decodeBody[[]map[string]any](t, rec)
	require.Len(t, products, 1)
	assert.Equal(t, "sbi-hl-002", products[0]["id"])
	assert.Equal(t, "INR", products[0]["currency"])

	rec = s.do(t, http.MethodGet, "/api/loans/products?category=Vehicle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	vehicles := decodeBody[[]map[string]any](t, rec)
	require.Len(t, vehicles, 2)
	assert.NotContains(t, vehicles[0], "max_amount")
	assert.Equal(t, "100% On-Road Price", vehicles[0]["max_amount_note"])
}
