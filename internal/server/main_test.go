package server_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/gorm"

	"lab-portal/internal/app"
	"lab-portal/internal/client"
	"lab-portal/internal/config"
	"lab-portal/internal/logging"
	"lab-portal/internal/server"
	"lab-portal/internal/testutil"
)

const (
	testKeyID         = "rzp_test_key"
	testKeySecret     = "rzp_test_secret"
	testSessionSecret = "session-secret"
)

type testApp struct {
	handler http.Handler
	db      *gorm.DB
	mail    *client.ConsoleMailClient
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	var seq atomic.Int64
	rzp := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/orders" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		var req client.RazorpayOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(client.RazorpayOrder{
			ID:       fmt.Sprintf("order_rzp_%d", seq.Add(1)),
			Entity:   "order",
			Amount:   req.Amount,
			Currency: req.Currency,
			Receipt:  req.Receipt,
			Status:   "created",
		})
	}))
	t.Cleanup(rzp.Close)

	cfg := &config.Config{
		Environment: config.Environment{Name: config.EnvDevelopment},
		HTTP:        config.HTTPServer{BodyLimit: "1M"},
		BaseURL:     "http://labs.test",
		CORSOrigins: []string{"http://labs.test"},
		Razorpay: config.Razorpay{
			BaseApiURL: rzp.URL,
			KeyID:      testKeyID,
			KeySecret:  testKeySecret,
		},
		Auth: config.Auth{
			TokenTTL:      time.Hour,
			SessionTTL:    time.Hour,
			SessionSecret: testSessionSecret,
		},
	}

	logger := logging.Discard()
	db := testutil.OpenDB(t)
	mailClient := client.NewConsoleMailClient(mail.Address{Address: "no-reply@labs.test"}, logger)

	services := app.NewServices(cfg, db, app.Clients{
		Razorpay: client.NewRazorpayClient(&cfg.Razorpay),
		Mail:     mailClient,
	}, logger)

	return &testApp{
		handler: server.NewServer(cfg, logger, services).Handler(),
		db:      db,
		mail:    mailClient,
	}
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func (a *testApp) do(method, path string, body []byte, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

// call sends a request and decodes the JSON object in the response.
func (a *testApp) call(t *testing.T, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var data []byte
	if body != nil {
		data = marshal(t, body)
	}
	rec := a.do(method, path, data, "")

	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("%s %s: decode response %q: %v", method, path, rec.Body.String(), err)
	}
	return rec.Code, out
}

func (a *testApp) run(t *testing.T, tests []httpTest) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := a.do(tt.method, tt.path, tt.body, tt.token)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func marshal(t *testing.T, obj any) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshal(): %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 any
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %s; wantData %s", rec.Body.String(), tt.wantData)
	}
}

func str(m map[string]any, keys ...string) string {
	var cur any = m
	for _, k := range keys {
		obj, ok := cur.(map[string]any)
		if !ok {
			return ""
		}
		cur = obj[k]
	}
	s, _ := cur.(string)
	return s
}
