package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

// Client HTTP partagé pour les appels sortants vers Khalti
var khaltiHTTP = &http.Client{Timeout: 15 * time.Second}

func khaltiBaseURL() string {
	if u := os.Getenv("KHALTI_BASE_URL"); u != "" {
		return u
	}
	// environnement sandbox par défaut
	return "https://dev.khalti.com/api/v2"
}

// KhaltiError : Khalti a répondu avec un corps d'erreur structuré (4xx/5xx).
// Le corps est conservé tel quel pour être renvoyé au client.
type KhaltiError struct {
	StatusCode int
	Body       map[string]interface{}
}

func (e *KhaltiError) Error() string {
	return fmt.Sprintf("khalti: statut HTTP %d", e.StatusCode)
}

type KhaltiCustomer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type KhaltiProductDetail struct {
	Identity   string  `json:"identity"`
	Name       string  `json:"name"`
	TotalPrice int64   `json:"total_price"`
	Quantity   int     `json:"quantity"`
	UnitPrice  int64   `json:"unit_price"`
}

// Payload de POST /epayment/initiate/ — montants en paisa
type KhaltiInitiateRequest struct {
	ReturnURL         string                `json:"return_url"`
	WebsiteURL        string                `json:"website_url"`
	Amount            int64                 `json:"amount"`
	PurchaseOrderID   string                `json:"purchase_order_id"`
	PurchaseOrderName string                `json:"purchase_order_name"`
	CustomerInfo      KhaltiCustomer        `json:"customer_info"`
	ProductDetails    []KhaltiProductDetail `json:"product_details,omitempty"`
}

// KhaltiInitiate appelle POST /epayment/initiate/ et renvoie la réponse brute
// du fournisseur ({pidx, payment_url, ...}).
func KhaltiInitiate(ctx context.Context, req KhaltiInitiateRequest) (map[string]interface{}, error) {
	return khaltiPost(ctx, "/epayment/initiate/", req)
}

// KhaltiLookup appelle POST /epayment/lookup/ avec le pidx et renvoie la
// réponse brute ({pidx, status, transaction_id, total_amount, ...}).
func KhaltiLookup(ctx context.Context, pidx string) (map[string]interface{}, error) {
	return khaltiPost(ctx, "/epayment/lookup/", map[string]string{"pidx": pidx})
}

func khaltiPost(ctx context.Context, path string, payload interface{}) (map[string]interface{}, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, khaltiBaseURL()+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key "+os.Getenv("KHALTI_SECRET_KEY"))

	resp, err := khaltiHTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var decoded map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		if resp.StatusCode >= 400 {
			return nil, &KhaltiError{StatusCode: resp.StatusCode}
		}
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, &KhaltiError{StatusCode: resp.StatusCode, Body: decoded}
	}

	return decoded, nil
}

// Helpers de lecture des champs de la réponse lookup

func KhaltiString(raw map[string]interface{}, key string) string {
	if v, ok := raw[key].(string); ok {
		return v
	}
	return ""
}

func KhaltiAmount(raw map[string]interface{}) int64 {
	if v, ok := raw["total_amount"].(float64); ok {
		return int64(v)
	}
	return 0
}
