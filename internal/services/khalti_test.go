package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func khaltiTestServer(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	t.Setenv("KHALTI_BASE_URL", srv.URL)
	t.Setenv("KHALTI_SECRET_KEY", "test-secret")
}

func TestKhaltiInitiate(t *testing.T) {
	khaltiTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/epayment/initiate/", r.URL.Path)
		assert.Equal(t, "key test-secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(215000), body["amount"])
		assert.Equal(t, "LC-20260830153045-9f3a", body["purchase_order_id"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"pidx":        "bZQLD9wRVWo4CdESSfuSsB",
			"payment_url": "https://test-pay.khalti.com/?pidx=bZQLD9wRVWo4CdESSfuSsB",
			"expires_in":  1800,
		})
	})

	raw, err := KhaltiInitiate(context.Background(), KhaltiInitiateRequest{
		ReturnURL:         "http://localhost:3000/payment/return",
		WebsiteURL:        "http://localhost:3000",
		Amount:            215000,
		PurchaseOrderID:   "LC-20260830153045-9f3a",
		PurchaseOrderName: "Commande La Cave",
		CustomerInfo:      KhaltiCustomer{Name: "Jean Dupont", Email: "jean@example.com", Phone: "9800000001"},
	})
	require.NoError(t, err)

	assert.Equal(t, "bZQLD9wRVWo4CdESSfuSsB", KhaltiString(raw, "pidx"))
	assert.NotEmpty(t, KhaltiString(raw, "payment_url"))
}

func TestKhaltiInitiate_ErreurFournisseur(t *testing.T) {
	khaltiTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"amount":    []string{"Amount should be greater than Rs. 1"},
			"error_key": "validation_error",
		})
	})

	_, err := KhaltiInitiate(context.Background(), KhaltiInitiateRequest{Amount: 50})
	require.Error(t, err)

	var kerr *KhaltiError
	require.ErrorAs(t, err, &kerr)
	assert.Equal(t, http.StatusBadRequest, kerr.StatusCode)
	assert.Equal(t, "validation_error", kerr.Body["error_key"])
}

func TestKhaltiLookup(t *testing.T) {
	khaltiTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/epayment/lookup/", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "bZQLD9wRVWo4CdESSfuSsB", body["pidx"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"pidx":           "bZQLD9wRVWo4CdESSfuSsB",
			"status":         "Completed",
			"transaction_id": "GFq9PFS7b2iYvL8Lir9oXe",
			"total_amount":   215000,
			"fee":            0,
			"refunded":       false,
		})
	})

	raw, err := KhaltiLookup(context.Background(), "bZQLD9wRVWo4CdESSfuSsB")
	require.NoError(t, err)

	assert.Equal(t, "Completed", KhaltiString(raw, "status"))
	assert.Equal(t, "GFq9PFS7b2iYvL8Lir9oXe", KhaltiString(raw, "transaction_id"))
	assert.Equal(t, int64(215000), KhaltiAmount(raw))
}

func TestKhaltiLookup_Expire(t *testing.T) {
	khaltiTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"pidx":         "H889Er9gq4j92oCrePrDwf",
			"status":       "Expired",
			"total_amount": 215000,
		})
	})

	raw, err := KhaltiLookup(context.Background(), "H889Er9gq4j92oCrePrDwf")
	require.NoError(t, err)
	assert.Equal(t, "Expired", KhaltiString(raw, "status"))
	assert.Empty(t, KhaltiString(raw, "transaction_id"))
}

func TestKhaltiHelpers_TypesInattendus(t *testing.T) {
	raw := map[string]interface{}{"status": 12, "total_amount": "beaucoup"}
	assert.Empty(t, KhaltiString(raw, "status"))
	assert.Empty(t, KhaltiString(raw, "absent"))
	assert.Equal(t, int64(0), KhaltiAmount(raw))
}
