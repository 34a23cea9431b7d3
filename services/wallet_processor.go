package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// HTTPWalletProcessor talks to an STK-push style mobile-money gateway:
// initiate pushes a payment prompt to the phone, status polls settlement.
type HTTPWalletProcessor struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

func NewHTTPWalletProcessor(baseURL, apiKey string) *HTTPWalletProcessor {
	return &HTTPWalletProcessor{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type walletPushReq struct {
	Phone     string `json:"phone"`
	Amount    int64  `json:"amount"`
	Reference string `json:"reference"`
}

type walletPushRes struct {
	RequestID string `json:"requestId"`
	Error     string `json:"error"`
}

func (w *HTTPWalletProcessor) InitiatePush(phone string, amount int64, orderNumber string) (string, error) {
	var out walletPushRes
	err := w.post("/push", walletPushReq{Phone: phone, Amount: amount, Reference: orderNumber}, &out)
	if err != nil {
		return "", err
	}
	if out.RequestID == "" {
		return "", errors.New("wallet provider returned no request id")
	}
	return out.RequestID, nil
}

type walletStatusRes struct {
	Status string `json:"status"` // PENDING | PAID | FAILED
	Error  string `json:"error"`
}

func (w *HTTPWalletProcessor) PushPaid(ref string) (bool, error) {
	var out walletStatusRes
	if err := w.post("/status", map[string]string{"requestId": ref}, &out); err != nil {
		return false, err
	}
	return out.Status == "PAID", nil
}

func (w *HTTPWalletProcessor) post(path string, body, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, w.BaseURL+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+w.APIKey)

	res, err := w.Client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return fmt.Errorf("wallet provider: status %d", res.StatusCode)
	}
	return json.NewDecoder(res.Body).Decode(out)
}
