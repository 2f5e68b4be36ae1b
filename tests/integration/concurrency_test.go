package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentVerification fires many verification requests for the same
// payment reference at once. The conditional ledger append must let exactly
// one of them credit the wallet; all must return the same final balance.
func TestConcurrentVerification(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	token := app.register(t, "concurrent@example.com")

	fundResp, fundBody := app.doJSON(t, http.MethodPost, "/api/v1/wallet/fund", token, map[string]interface{}{"amount": 5000})
	require.Equal(t, http.StatusOK, fundResp.StatusCode)
	reference := fundBody["data"].(map[string]interface{})["reference"].(string)

	concurrency := 50
	var wg sync.WaitGroup
	var okCount atomic.Int64
	var failCount atomic.Int64

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			req, err := http.NewRequest(http.MethodGet, app.server.URL+"/api/v1/wallet/fund/verify/"+reference, nil)
			if err != nil {
				failCount.Add(1)
				return
			}
			req.Header.Set("Authorization", "Bearer "+token)

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				failCount.Add(1)
				return
			}
			defer resp.Body.Close()

			if resp.StatusCode == http.StatusOK {
				okCount.Add(1)
			} else {
				failCount.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(concurrency), okCount.Load())
	assert.Equal(t, int64(0), failCount.Load())

	// Exactly one credit: 5000 major -> 500000 minor, single ledger entry
	walletResp, walletBody := app.doJSON(t, http.MethodGet, "/api/v1/wallet", token, nil)
	require.Equal(t, http.StatusOK, walletResp.StatusCode)
	data := walletBody["data"].(map[string]interface{})
	assert.Equal(t, float64(500000), data["balance"])
	assert.Len(t, data["transactions"].([]interface{}), 1)
}

// TestConcurrentRegistrations registers many customers at once and checks
// that every allocated referral code is distinct.
func TestConcurrentRegistrations(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	concurrency := 30
	var wg sync.WaitGroup
	var mu sync.Mutex
	codes := make(map[string]bool)
	var failCount atomic.Int64

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			body, _ := json.Marshal(map[string]string{
				"first_name":   "Customer",
				"last_name":    fmt.Sprintf("Number%d", idx),
				"email":        fmt.Sprintf("customer%d@example.com", idx),
				"phone_number": fmt.Sprintf("080%08d", idx),
				"password":     "StrongPass123!",
			})
			resp, err := http.Post(app.server.URL+"/api/v1/auth/register", "application/json", bytes.NewReader(body))
			if err != nil {
				failCount.Add(1)
				return
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusCreated {
				failCount.Add(1)
				return
			}

			var regResp struct {
				Data struct {
					ReferralCode string `json:"referral_code"`
				} `json:"data"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&regResp); err != nil {
				failCount.Add(1)
				return
			}

			mu.Lock()
			codes[regResp.Data.ReferralCode] = true
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(0), failCount.Load())
	assert.Len(t, codes, concurrency)
}
