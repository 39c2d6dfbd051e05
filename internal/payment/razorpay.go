package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"roastery-be/internal/logger"

	"go.uber.org/zap"
)

const razorpayBaseURL = "https://api.razorpay.com"

// Gateway creates payment intents on the external provider.
type Gateway interface {
	CreateOrder(ctx context.Context, amountMinor int64, receipt string) (*ProviderOrder, error)
}

type razorpayGateway struct {
	keyID      string
	keySecret  string
	baseURL    string
	httpClient *http.Client
}

func NewRazorpayGateway(keyID, keySecret string) Gateway {
	if keyID == "" || keySecret == "" {
		logger.L().Warn("Razorpay credentials are empty")
	}

	return &razorpayGateway{
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   razorpayBaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (g *razorpayGateway) CreateOrder(ctx context.Context, amountMinor int64, receipt string) (*ProviderOrder, error) {
	log := logger.FromCtx(ctx).With(
		zap.Int64("amount", amountMinor),
		zap.String("receipt", receipt),
	)

	body := map[string]interface{}{
		"amount":   amountMinor,
		"currency": "INR",
		"receipt":  receipt,
	}
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", g.baseURL+"/v1/orders", bytes.NewBuffer(jsonBody))
	if err != nil {
		log.Error("failed creating request", zap.Error(err))
		return nil, err
	}

	req.SetBasicAuth(g.keyID, g.keySecret)
	req.Header.Add("Content-Type", "application/json")

	log.Info("creating Razorpay order")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Error("Razorpay request failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("failed to read response body", zap.Error(err))
		return nil, fmt.Errorf("failed to read razorpay response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Error("Razorpay returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return nil, fmt.Errorf("razorpay error: %s", string(bodyBytes))
	}

	var order ProviderOrder
	if err := json.Unmarshal(bodyBytes, &order); err != nil {
		log.Error("failed decoding Razorpay response", zap.Error(err))
		return nil, err
	}

	log.Info("Razorpay order created", zap.String("order_id", order.ID))
	return &order, nil
}

// VerifySignature recomputes HMAC-SHA256 over "orderID|paymentID" with the
// key secret and compares in constant time against the supplied hex digest.
func VerifySignature(keySecret, orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
