package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"presale-core/internal/model"
	"presale-core/internal/service"
	"presale-core/internal/store"
	"presale-core/pkg/errno"
)

type stubVerifier bool

func (v stubVerifier) Verify(context.Context, string, decimal.Decimal, model.Currency) bool {
	return bool(v)
}

type stubSender struct {
	sig string
	err error
}

func (s stubSender) SendTokens(context.Context, string, uint64) (string, error) {
	return s.sig, s.err
}

type memorySaver struct {
	data []byte
	err  error
}

func (m *memorySaver) Save(_ context.Context, data []byte) error {
	if m.err != nil {
		return m.err
	}
	m.data = data
	return nil
}

func setupRouter(verifier service.PaymentChecker, sender service.TokenSender, saver ProgressSaver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	service.Purchase = service.NewPurchaseService(store.NewMemoryStore(0), verifier, sender, nil, "topic")
	Progress = NewProgressHandler(saver)

	r := gin.New()
	r.POST("/api/initiate-purchase", Purchase.InitiatePurchase)
	r.POST("/api/confirm-payment", Purchase.ConfirmPayment)
	r.GET("/api/purchases/:id", Purchase.GetPurchase)
	r.POST("/save-progress", Progress.SaveProgress)
	r.GET("/health", HealthCheck)
	return r
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func initiate(t *testing.T, r http.Handler, body string) string {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/api/initiate-purchase", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		TransactionID string `json:"transactionId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.TransactionID)
	return resp.TransactionID
}

func TestInitiateAndConfirm(t *testing.T) {
	r := setupRouter(stubVerifier(true), stubSender{sig: "tokenSig111"}, &memorySaver{})

	id := initiate(t, r, `{"buyerAddress":"B","amount":0.001,"currency":"STABLE"}`)

	w := doJSON(r, http.MethodGet, "/api/purchases/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"PENDING"`)

	w = doJSON(r, http.MethodPost, "/api/confirm-payment", `{"transactionId":"`+id+`","signature":"validSig"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"signature":"tokenSig111"}`, w.Body.String())

	w = doJSON(r, http.MethodGet, "/api/purchases/"+id, "")
	assert.Contains(t, w.Body.String(), `"status":"COMPLETED"`)

	// 重复确认
	w = doJSON(r, http.MethodPost, "/api/confirm-payment", `{"transactionId":"`+id+`","signature":"validSig"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"Transaction already completed"}`, w.Body.String())
}

func TestInitiateAcceptsStringAmountAndAliases(t *testing.T) {
	r := setupRouter(stubVerifier(true), stubSender{sig: "s"}, &memorySaver{})

	id := initiate(t, r, `{"buyerAddress":"B","amount":"1.5","currency":"sol"}`)
	intent, err := service.Purchase.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, model.CurrencyNative, intent.Currency)
	assert.Equal(t, "1.5", intent.Amount.String())
}

func TestInitiateMalformedJSON(t *testing.T) {
	r := setupRouter(stubVerifier(true), stubSender{}, &memorySaver{})

	w := doJSON(r, http.MethodPost, "/api/initiate-purchase", `{"buyerAddress":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"error"`)
}

func TestConfirmErrors(t *testing.T) {
	t.Run("unknown id", func(t *testing.T) {
		r := setupRouter(stubVerifier(true), stubSender{}, &memorySaver{})
		w := doJSON(r, http.MethodPost, "/api/confirm-payment", `{"transactionId":"nope","signature":"x"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Transaction not found"}`, w.Body.String())
	})

	t.Run("invalid payment", func(t *testing.T) {
		r := setupRouter(stubVerifier(false), stubSender{}, &memorySaver{})
		id := initiate(t, r, `{"buyerAddress":"B","amount":1,"currency":"NATIVE"}`)

		w := doJSON(r, http.MethodPost, "/api/confirm-payment", `{"transactionId":"`+id+`","signature":"bad"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Invalid payment"}`, w.Body.String())

		w = doJSON(r, http.MethodGet, "/api/purchases/"+id, "")
		assert.Contains(t, w.Body.String(), `"status":"PENDING"`)
	})

	t.Run("disbursement failure", func(t *testing.T) {
		sender := stubSender{err: errno.ErrDisbursement.Wrap(errors.New("insufficient funds"))}
		r := setupRouter(stubVerifier(true), sender, &memorySaver{})
		id := initiate(t, r, `{"buyerAddress":"B","amount":1,"currency":"NATIVE"}`)

		w := doJSON(r, http.MethodPost, "/api/confirm-payment", `{"transactionId":"`+id+`","signature":"ok"}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"insufficient funds"}`, w.Body.String())
	})
}

func TestGetPurchaseNotFound(t *testing.T) {
	r := setupRouter(stubVerifier(true), stubSender{}, &memorySaver{})

	w := doJSON(r, http.MethodGet, "/api/purchases/unknown", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSaveProgress(t *testing.T) {
	saver := &memorySaver{}
	r := setupRouter(stubVerifier(true), stubSender{}, saver)

	w := doJSON(r, http.MethodPost, "/save-progress", `{"step":3,"items":[1,2]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Progress saved", w.Body.String())
	assert.Equal(t, "{\n  \"step\": 3,\n  \"items\": [\n    1,\n    2\n  ]\n}", string(saver.data))

	w = doJSON(r, http.MethodPost, "/save-progress", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	saver.err = errors.New("disk full")
	w = doJSON(r, http.MethodPost, "/save-progress", `{}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"disk full"}`, w.Body.String())
}

func TestHealthCheck(t *testing.T) {
	r := setupRouter(stubVerifier(true), stubSender{}, &memorySaver{})

	w := doJSON(r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"UP"`)
}
