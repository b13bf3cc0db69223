package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/aqabadeal-png/canroad/internal/app"
	"github.com/aqabadeal-png/canroad/internal/domain"
	"github.com/aqabadeal-png/canroad/internal/handler"
	"github.com/aqabadeal-png/canroad/internal/repository/memory"
	"github.com/aqabadeal-png/canroad/internal/service"
)

type routerFixture struct {
	router  *gin.Engine
	jobRepo *memory.JobRepository
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	userRepo := memory.NewUserRepository()
	serviceRepo := memory.NewServiceRepository()
	jobRepo := memory.NewJobRepository()
	locationStore := memory.NewLocationStore()
	lockStore := memory.NewLockStore()
	sessionStore := memory.NewSessionStore()
	if err := memory.SeedRepositories(context.Background(), userRepo, serviceRepo); err != nil {
		t.Fatalf("seeding repositories: %v", err)
	}

	fareCfg := service.DefaultFareConfig()
	estimateService := service.NewEstimateService(fareCfg, locationStore, jobRepo, nil)
	pricingService := service.NewPricingService(fareCfg, estimateService, serviceRepo, nil, nil)
	notificationService := service.NewNotificationService()
	bookingService := service.NewBookingService(jobRepo, userRepo, lockStore, pricingService, notificationService, nil)
	catalogService := service.NewCatalogService(serviceRepo, pricingService)
	authService := service.NewAuthService(userRepo, sessionStore)
	invoiceService := service.NewInvoiceService()
	trackingService := service.NewTrackingService(locationStore, userRepo, nil)
	reportService := service.NewReportService(jobRepo)

	router := app.NewRouter(app.RouterDeps{
		AuthHandler:     handler.NewAuthHandler(authService),
		PricingHandler:  handler.NewPricingHandler(pricingService),
		JobHandler:      handler.NewJobHandler(bookingService, invoiceService),
		MechanicHandler: handler.NewMechanicHandler(bookingService, trackingService),
		CatalogHandler:  handler.NewCatalogHandler(catalogService),
		UserHandler:     handler.NewUserHandler(userRepo),
		ReportHandler:   handler.NewReportHandler(reportService),
		AuthService:     authService,
	})

	return &routerFixture{router: router, jobRepo: jobRepo}
}

func (f *routerFixture) login(t *testing.T, email string) string {
	t.Helper()
	body, _ := json.Marshal(handler.LoginRequest{Email: email, Password: "password123"})
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("login as %s: expected 200, got %d (%s)", email, w.Code, w.Body.String())
	}
	var resp handler.LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding login response: %v", err)
	}
	return resp.Token
}

func (f *routerFixture) get(path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestRouter_JobsListRoles(t *testing.T) {
	f := newRouterFixture(t)

	if w := f.get("/v1/jobs", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous jobs list: expected 401, got %d", w.Code)
	}
	for _, email := range []string{
		"accounting@canroad.example.com",
		"mike@canroad.example.com",
		"admin@canroad.example.com",
	} {
		token := f.login(t, email)
		if w := f.get("/v1/jobs", token); w.Code != http.StatusOK {
			t.Errorf("jobs list as %s: expected 200, got %d (%s)", email, w.Code, w.Body.String())
		}
	}
}

func TestRouter_RevenueReport(t *testing.T) {
	f := newRouterFixture(t)

	job := &domain.Job{
		ID:           "job-1",
		CustomerID:   "cust-1",
		CustomerName: "Jane Doe",
		ServiceType:  domain.ServiceGeneralMechanics,
		Status:       domain.JobStatusCompleted,
		FinalInvoice: &domain.PricingEstimate{TotalMin: 95, TotalMax: 95},
	}
	if err := f.jobRepo.Create(context.Background(), job); err != nil {
		t.Fatalf("seeding job: %v", err)
	}

	token := f.login(t, "accounting@canroad.example.com")
	w := f.get("/v1/reports/revenue", token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	var report handler.RevenueReportResponse
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("decoding report: %v", err)
	}
	if report.JobsCompleted != 1 || report.TotalRevenue != 95 {
		t.Errorf("expected 1 job totalling 95, got %+v", report)
	}

	mechanicToken := f.login(t, "mike@canroad.example.com")
	if w := f.get("/v1/reports/revenue", mechanicToken); w.Code != http.StatusForbidden {
		t.Errorf("revenue report as mechanic: expected 403, got %d", w.Code)
	}
}
