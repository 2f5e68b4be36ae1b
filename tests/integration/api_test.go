package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"wallet-funding-service/config"
	"wallet-funding-service/internal/adapter/gateway/cheetah"
	"wallet-funding-service/internal/adapter/gateway/paystack"
	httpHandler "wallet-funding-service/internal/adapter/http/handler"
	redisStorage "wallet-funding-service/internal/adapter/storage/redis"
	"wallet-funding-service/internal/core/ports"
	"wallet-funding-service/internal/service"
	"wallet-funding-service/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// paystackStub fakes the payment provider. Every initialized transaction is
// remembered so a later verify call can report it; the reported status is
// configurable per reference.
type paystackStub struct {
	mu       sync.Mutex
	seq      int
	amounts  map[string]int64 // reference -> amount in minor units
	statuses map[string]string
	emails   map[string]string
	names    map[string]string
	server   *httptest.Server
}

func newPaystackStub() *paystackStub {
	s := &paystackStub{
		amounts:  make(map[string]int64),
		statuses: make(map[string]string),
		emails:   make(map[string]string),
		names:    make(map[string]string),
	}
	s.server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

func (s *paystackStub) handle(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/transaction/initialize":
		var req struct {
			Email    string `json:"email"`
			Amount   int64  `json:"amount"`
			Metadata struct {
				FullName string `json:"full_name"`
			} `json:"metadata"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)

		s.mu.Lock()
		s.seq++
		ref := fmt.Sprintf("ref_%06d", s.seq)
		s.amounts[ref] = req.Amount
		s.statuses[ref] = "success"
		s.emails[ref] = req.Email
		s.names[ref] = req.Metadata.FullName
		s.mu.Unlock()

		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  true,
			"message": "Authorization URL created",
			"data": map[string]interface{}{
				"authorization_url": "https://checkout.example.com/" + ref,
				"access_code":       "code_" + ref,
				"reference":         ref,
			},
		})

	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/transaction/verify/"):
		ref := strings.TrimPrefix(r.URL.Path, "/transaction/verify/")

		s.mu.Lock()
		amount, ok := s.amounts[ref]
		status := s.statuses[ref]
		email := s.emails[ref]
		name := s.names[ref]
		s.mu.Unlock()

		if !ok {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  false,
				"message": "Transaction reference not found",
			})
			return
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  true,
			"message": "Verification successful",
			"data": map[string]interface{}{
				"reference": ref,
				"amount":    amount,
				"status":    status,
				"customer":  map[string]interface{}{"email": email},
				"metadata":  map[string]interface{}{"full_name": name},
			},
		})

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// setStatus overrides the status a later verify call reports.
func (s *paystackStub) setStatus(reference, status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses[reference] = status
}

// cheetahStub fakes the airtime settlement provider.
type cheetahStub struct {
	server *httptest.Server
}

func newCheetahStub() *cheetahStub {
	s := &cheetahStub{}
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/pinDeposit" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{
			"status":  "success",
			"message": "pin received",
		})
	}))
	return s
}

// testApp builds the full application stack: real HTTP layer, middleware,
// handlers, services, Redis stores over miniredis, provider clients over
// stub HTTP servers, and in-memory postgres repos.
type testApp struct {
	server   *httptest.Server
	redis    *miniredis.Miniredis
	paystack *paystackStub
	cheetah  *cheetahStub
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	log := logger.New("debug", false)

	receiptCache := redisStorage.NewReceiptCache(rdb)

	psStub := newPaystackStub()
	chStub := newCheetahStub()

	paystackClient := paystack.New(config.PaystackConfig{
		BaseURL:   psStub.server.URL,
		SecretKey: "sk_test_secret",
		Timeout:   5 * time.Second,
	}, log)
	cheetahClient := cheetah.New(config.CheetahConfig{
		BaseURL:    chStub.server.URL,
		PrivateKey: "priv_test",
		PublicKey:  "pub_test",
		Timeout:    5 * time.Second,
	}, log)

	customerRepo := newInMemoryCustomerRepo()
	walletRepo := newInMemoryWalletRepo()
	orderRepo := newInMemoryAirtimeOrderRepo()
	transactor := newInMemoryTransactor()

	hashSvc := service.NewArgon2HashService()
	tokenSvc := service.NewJWTTokenService("test-jwt-secret-key-32bytes!!", 24*time.Hour, "test-issuer")
	allocator := service.NewCodeAllocator(customerRepo, orderRepo)

	walletSvc := service.NewWalletService(walletRepo, transactor, log)
	fundingSvc := service.NewFundingService(paystackClient, walletSvc, receiptCache, log)
	authSvc := service.NewAuthService(customerRepo, walletSvc, hashSvc, tokenSvc, allocator, log)
	airtimeSvc := service.NewAirtimeService(cheetahClient, orderRepo, allocator, log)

	redisHealth := redisStorage.NewHealthCheck(rdb)

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AuthSvc:        authSvc,
		FundingSvc:     fundingSvc,
		WalletSvc:      walletSvc,
		AirtimeSvc:     airtimeSvc,
		CustomerRepo:   customerRepo,
		TokenSvc:       tokenSvc,
		HealthCheckers: []ports.HealthChecker{redisHealth},
		Logger:         log,
	})

	server := httptest.NewServer(router)

	return &testApp{
		server:   server,
		redis:    mr,
		paystack: psStub,
		cheetah:  chStub,
	}
}

func (a *testApp) close() {
	a.server.Close()
	a.redis.Close()
	a.paystack.server.Close()
	a.cheetah.server.Close()
}

// register creates a customer and returns its JWT token.
func (a *testApp) register(t *testing.T, email string) string {
	t.Helper()

	regBody, _ := json.Marshal(map[string]string{
		"first_name":   "Ada",
		"last_name":    "Obi",
		"email":        email,
		"phone_number": "08011112222",
		"password":     "StrongPass123!",
	})
	resp, err := http.Post(a.server.URL+"/api/v1/auth/register", "application/json", bytes.NewReader(regBody))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	loginBody, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": "StrongPass123!",
	})
	resp, err = http.Post(a.server.URL+"/api/v1/auth/login", "application/json", bytes.NewReader(loginBody))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var loginResult struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&loginResult))
	resp.Body.Close()
	require.NotEmpty(t, loginResult.Data.Token)
	return loginResult.Data.Token
}

func (a *testApp) doJSON(t *testing.T, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, a.server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var parsed map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&parsed)
	return resp, parsed
}

// --- Integration Tests ---

func TestIntegration_HealthCheck(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	resp, err := http.Get(app.server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
}

func TestIntegration_RegisterAndLogin(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	regBody, _ := json.Marshal(map[string]string{
		"first_name":   "Ada",
		"last_name":    "Obi",
		"email":        "ada@example.com",
		"phone_number": "08011112222",
		"password":     "StrongPass123!",
	})
	resp, err := http.Post(app.server.URL+"/api/v1/auth/register", "application/json", bytes.NewReader(regBody))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var regResp map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&regResp))
	resp.Body.Close()
	data := regResp["data"].(map[string]interface{})
	assert.NotEmpty(t, data["customer_id"])
	assert.NotEmpty(t, data["wallet_id"])
	assert.Regexp(t, `^18/52[0-9a-z]{4}[0-9]{3}$`, data["referral_code"])

	// Duplicate email is rejected
	resp, err = http.Post(app.server.URL+"/api/v1/auth/register", "application/json", bytes.NewReader(regBody))
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Login yields a token that opens the wallet endpoint
	loginBody, _ := json.Marshal(map[string]string{
		"email":    "ada@example.com",
		"password": "StrongPass123!",
	})
	resp, err = http.Post(app.server.URL+"/api/v1/auth/login", "application/json", bytes.NewReader(loginBody))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var loginResult struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&loginResult))
	resp.Body.Close()

	walletResp, walletBody := app.doJSON(t, http.MethodGet, "/api/v1/wallet", loginResult.Data.Token, nil)
	assert.Equal(t, http.StatusOK, walletResp.StatusCode)
	walletData := walletBody["data"].(map[string]interface{})
	assert.Equal(t, float64(0), walletData["balance"])
}

func TestIntegration_RegisterWithReferral(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	regBody, _ := json.Marshal(map[string]string{
		"first_name":   "Ada",
		"last_name":    "Obi",
		"email":        "referrer@example.com",
		"phone_number": "08011112222",
		"password":     "StrongPass123!",
	})
	resp, err := http.Post(app.server.URL+"/api/v1/auth/register", "application/json", bytes.NewReader(regBody))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var regResp map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&regResp))
	resp.Body.Close()
	referralCode := regResp["data"].(map[string]interface{})["referral_code"].(string)

	// Referred registration succeeds
	refBody, _ := json.Marshal(map[string]string{
		"first_name":   "Ben",
		"last_name":    "Eze",
		"email":        "referred@example.com",
		"phone_number": "08033334444",
		"password":     "StrongPass123!",
		"referred_by":  referralCode,
	})
	resp, err = http.Post(app.server.URL+"/api/v1/auth/register", "application/json", bytes.NewReader(refBody))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Unknown referral code fails before anything is written
	badBody, _ := json.Marshal(map[string]string{
		"first_name":   "Cara",
		"last_name":    "Ume",
		"email":        "cara@example.com",
		"phone_number": "08055556666",
		"password":     "StrongPass123!",
		"referred_by":  "18/52zzzz999",
	})
	resp, err = http.Post(app.server.URL+"/api/v1/auth/register", "application/json", bytes.NewReader(badBody))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestIntegration_FundAndVerify(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	token := app.register(t, "funder@example.com")

	// Initiate funding of 5000 major units
	fundResp, fundBody := app.doJSON(t, http.MethodPost, "/api/v1/wallet/fund", token, map[string]interface{}{"amount": 5000})
	require.Equal(t, http.StatusOK, fundResp.StatusCode)
	fundData := fundBody["data"].(map[string]interface{})
	reference := fundData["reference"].(string)
	require.NotEmpty(t, reference)
	assert.NotEmpty(t, fundData["authorization_url"])

	// Verify: the provider reports 500000 minor units, wallet is credited once
	verifyResp, verifyBody := app.doJSON(t, http.MethodGet, "/api/v1/wallet/fund/verify/"+reference, token, nil)
	require.Equal(t, http.StatusOK, verifyResp.StatusCode)
	verifyData := verifyBody["data"].(map[string]interface{})
	assert.Equal(t, float64(500000), verifyData["balance"])
	assert.Equal(t, "5000", verifyData["balance_major"])
	txns := verifyData["transactions"].([]interface{})
	require.Len(t, txns, 1)
	assert.Equal(t, reference, txns[0].(map[string]interface{})["reference"])
	assert.Equal(t, "success", txns[0].(map[string]interface{})["status"])

	// Replaying the verification does not credit twice
	replayResp, replayBody := app.doJSON(t, http.MethodGet, "/api/v1/wallet/fund/verify/"+reference, token, nil)
	require.Equal(t, http.StatusOK, replayResp.StatusCode)
	replayData := replayBody["data"].(map[string]interface{})
	assert.Equal(t, float64(500000), replayData["balance"])
	assert.Len(t, replayData["transactions"].([]interface{}), 1)

	// Receipt lookup by reference
	receiptResp, receiptBody := app.doJSON(t, http.MethodGet, "/api/v1/wallet/receipt/"+reference, token, nil)
	require.Equal(t, http.StatusOK, receiptResp.StatusCode)
	receiptData := receiptBody["data"].(map[string]interface{})
	assert.Equal(t, float64(500000), receiptData["balance"])
}

func TestIntegration_FailedPaymentRecordedWithoutCredit(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	token := app.register(t, "failed@example.com")

	fundResp, fundBody := app.doJSON(t, http.MethodPost, "/api/v1/wallet/fund", token, map[string]interface{}{"amount": 2000})
	require.Equal(t, http.StatusOK, fundResp.StatusCode)
	reference := fundBody["data"].(map[string]interface{})["reference"].(string)

	app.paystack.setStatus(reference, "failed")

	verifyResp, verifyBody := app.doJSON(t, http.MethodGet, "/api/v1/wallet/fund/verify/"+reference, token, nil)
	require.Equal(t, http.StatusOK, verifyResp.StatusCode)
	verifyData := verifyBody["data"].(map[string]interface{})
	assert.Equal(t, float64(0), verifyData["balance"])
	txns := verifyData["transactions"].([]interface{})
	require.Len(t, txns, 1)
	assert.Equal(t, "failed", txns[0].(map[string]interface{})["status"])
}

func TestIntegration_VerifyUnknownReference(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	token := app.register(t, "unknown@example.com")

	resp, body := app.doJSON(t, http.MethodGet, "/api/v1/wallet/fund/verify/ref_does_not_exist", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "GW_002", body["error_code"])
}

func TestIntegration_AirtimeToCash(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	token := app.register(t, "airtime@example.com")

	resp, body := app.doJSON(t, http.MethodPost, "/api/v1/airtime/to-cash", token, map[string]interface{}{
		"pin":             "1234567890123456",
		"amount":          1000,
		"network":         "MTN",
		"depositor_phone": "+2348011112222",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Regexp(t, `^[0-9]{6}$`, data["order_id"])
	assert.Equal(t, "sent", data["status"])
	assert.Equal(t, "success", data["provider_status"])

	// Excluded network is rejected before any order is written
	resp, body = app.doJSON(t, http.MethodPost, "/api/v1/airtime/to-cash", token, map[string]interface{}{
		"pin":     "1234567890123456",
		"amount":  1000,
		"network": "MTN TRANSFER",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VAL_004", body["error_code"])
}

func TestIntegration_AuthRequired(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	resp, _ := app.doJSON(t, http.MethodGet, "/api/v1/wallet", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = app.doJSON(t, http.MethodPost, "/api/v1/wallet/fund", "not-a-token", map[string]interface{}{"amount": 100})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
