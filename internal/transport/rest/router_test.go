package rest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"futured/internal/features"
	"futured/internal/model"
	"futured/internal/riskmodel"
	"futured/internal/service"
	"futured/internal/transport/ws"
)

func newTestRouter(bundle *riskmodel.Bundle) http.Handler {
	authSvc := service.NewAuthService("admin", "secret123", "test-jwt-secret")
	predictionSvc := service.NewPredictionService(bundle, nil, nil, nil, nil, nil, nil)
	syncSvc := service.NewSyncService(predictionSvc, nil)

	return NewRouter(&Container{
		AuthService:       authSvc,
		PredictionService: predictionSvc,
		SyncService:       syncSvc,
		Bundle:            bundle,
		WSHub:             ws.NewHub(),
	})
}

// readyBundle builds a bundle whose classifier always answers
// sigmoid(-3), about 4.74%.
func readyBundle() *riskmodel.Bundle {
	classifier := &riskmodel.LogisticClassifier{
		Columns: features.FeatureNames(),
		Weights: make([]float64, len(features.FeatureNames())),
		Bias:    -3,
	}
	return riskmodel.NewBundle(classifier, features.NewRegistry())
}

func loginToken(t *testing.T, router http.Handler) string {
	t.Helper()
	body := strings.NewReader(`{"username":"admin","password":"secret123"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("login: got status %d, want 200", rec.Code)
	}
	var resp model.LoginResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("login: failed to decode response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("login: empty token")
	}
	return resp.Token
}

func TestHealthReportsModelState(t *testing.T) {
	cases := []struct {
		name   string
		bundle *riskmodel.Bundle
		want   bool
	}{
		{"without model", nil, false},
		{"with model", readyBundle(), true},
	}
	for _, tc := range cases {
		router := newTestRouter(tc.bundle)
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("%s: got status %d, want 200", tc.name, rec.Code)
		}
		var body struct {
			Status      string `json:"status"`
			ModelLoaded bool   `json:"model_loaded"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("%s: failed to decode body: %v", tc.name, err)
		}
		if body.Status != "ok" {
			t.Errorf("%s: status = %q, want ok", tc.name, body.Status)
		}
		if body.ModelLoaded != tc.want {
			t.Errorf("%s: model_loaded = %v, want %v", tc.name, body.ModelLoaded, tc.want)
		}
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	router := newTestRouter(nil)
	body := strings.NewReader(`{"username":"admin","password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("got status %d, want 401", rec.Code)
	}
}

func TestStaffRoutesRequireToken(t *testing.T) {
	router := newTestRouter(readyBundle())
	req := httptest.NewRequest(http.MethodPost, "/v1/score", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("got status %d, want 401", rec.Code)
	}
}

func TestPreflightBypassesAuth(t *testing.T) {
	router := newTestRouter(readyBundle())
	req := httptest.NewRequest(http.MethodOptions, "/v1/score", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("got status %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got == "" {
		t.Error("missing Access-Control-Allow-Origin header")
	}
}

func TestScoreWithoutModelAnswers503(t *testing.T) {
	router := newTestRouter(nil)
	token := loginToken(t, router)

	req := httptest.NewRequest(http.MethodPost, "/v1/score", strings.NewReader(`{}`))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("got status %d, want 503", rec.Code)
	}
}

func TestScoreClassifiesDocument(t *testing.T) {
	router := newTestRouter(readyBundle())
	token := loginToken(t, router)

	doc := map[string]interface{}{
		"studentId":        "stu_1",
		"enrollmentNumber": "20233000001",
		"academic": map[string]interface{}{
			"promedio_previo":     9.5,
			"materias_reprobadas": 0,
		},
	}
	body, _ := json.Marshal(doc)
	req := httptest.NewRequest(http.MethodPost, "/v1/score", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var assessment model.RiskAssessment
	if err := json.NewDecoder(rec.Body).Decode(&assessment); err != nil {
		t.Fatalf("failed to decode assessment: %v", err)
	}
	if assessment.RiskPercentage != 4.74 {
		t.Errorf("risk percentage = %v, want 4.74", assessment.RiskPercentage)
	}
	if assessment.Tier != model.TierLow {
		t.Errorf("tier = %q, want %q", assessment.Tier, model.TierLow)
	}
	if assessment.Policy != model.PolicyFourBand {
		t.Errorf("policy = %q, want %q", assessment.Policy, model.PolicyFourBand)
	}
	if assessment.StudentID != "stu_1" {
		t.Errorf("student id = %q, want stu_1", assessment.StudentID)
	}
}
