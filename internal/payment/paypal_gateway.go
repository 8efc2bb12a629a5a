package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"freshcart-be/internal/logger"

	"go.uber.org/zap"
)

// Order totals are in INR; the processor settles in USD at a fixed
// approximate rate.
const inrPerUSD = 83.0

type paypalGateway struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
}

// ----------------- Constructor -----------------

func NewPayPalGateway(baseURL, clientID, clientSecret string) Gateway {
	if clientID == "" || clientSecret == "" {
		logger.L().Warn("PayPal client credentials are empty")
	}

	return &paypalGateway{
		baseURL:      strings.TrimRight(baseURL, "/"),
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ----------------- Access token -----------------

// obtainAccessToken runs the client-credentials grant. No token is
// cached; every operation pays one extra round trip.
func (g *paypalGateway) obtainAccessToken(ctx context.Context) (string, error) {
	log := logger.FromCtx(ctx)

	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, "POST",
		g.baseURL+"/v1/oauth2/token",
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return "", err
	}

	req.SetBasicAuth(g.clientID, g.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Error("token request failed", zap.Error(err))
		return "", err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Error("token endpoint returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return "", &GatewayError{
			StatusCode: resp.StatusCode,
			Message:    "token exchange rejected",
			Body:       bodyBytes,
		}
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(bodyBytes, &tokenResp); err != nil {
		return "", err
	}

	if tokenResp.AccessToken == "" {
		log.Error("token response missing access_token", zap.ByteString("response", bodyBytes))
		return "", ErrNoAccessToken
	}

	return tokenResp.AccessToken, nil
}

// ----------------- CreateIntent -----------------

func (g *paypalGateway) CreateIntent(ctx context.Context, items []IntentItem, totalAmount float64) (*Intent, error) {
	log := logger.FromCtx(ctx).With(
		zap.Int("item_count", len(items)),
		zap.Float64("total_amount", totalAmount),
	)

	if len(items) == 0 {
		log.Warn("create intent rejected: empty items")
		return nil, ErrEmptyItems
	}
	if totalAmount <= 0 || math.IsNaN(totalAmount) || math.IsInf(totalAmount, 0) {
		log.Warn("create intent rejected: bad amount")
		return nil, ErrInvalidAmount
	}

	token, err := g.obtainAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	usdAmount := fmt.Sprintf("%.2f", totalAmount/inrPerUSD)

	body := map[string]interface{}{
		"intent": "CAPTURE",
		"purchase_units": []map[string]interface{}{
			{
				"amount": map[string]interface{}{
					"currency_code": "USD",
					"value":         usdAmount,
				},
			},
		},
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST",
		g.baseURL+"/v2/checkout/orders",
		bytes.NewBuffer(jsonBody),
	)
	if err != nil {
		log.Error("failed creating intent request", zap.Error(err))
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")

	log.Info("sending intent request to processor", zap.String("usd_amount", usdAmount))

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Error("intent request failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read processor response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Error("processor returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return nil, &GatewayError{
			StatusCode: resp.StatusCode,
			Message:    extractGatewayMessage(bodyBytes, "failed to create payment intent"),
			Body:       bodyBytes,
		}
	}

	var intent Intent
	if err := json.Unmarshal(bodyBytes, &intent); err != nil {
		log.Error("failed decoding intent response", zap.Error(err))
		return nil, err
	}
	intent.RawResponse = json.RawMessage(bodyBytes)

	log.Info("payment intent created",
		zap.String("intent_id", intent.ID),
		zap.String("status", intent.Status),
	)

	return &intent, nil
}

// ----------------- CapturePayment -----------------

func (g *paypalGateway) CapturePayment(ctx context.Context, intentID string) (*CaptureResult, error) {
	log := logger.FromCtx(ctx).With(zap.String("intent_id", intentID))

	if intentID == "" {
		return nil, ErrEmptyIntentID
	}

	token, err := g.obtainAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST",
		fmt.Sprintf("%s/v2/checkout/orders/%s/capture", g.baseURL, intentID),
		bytes.NewBufferString("{}"),
	)
	if err != nil {
		log.Error("failed creating capture request", zap.Error(err))
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	// Request id derived from the intent so retried captures dedupe
	// processor-side.
	req.Header.Set("PayPal-Request-Id", "capture_"+intentID)

	log.Info("sending capture request to processor")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Error("capture request failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read processor response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Error("capture rejected",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return nil, &GatewayError{
			StatusCode: resp.StatusCode,
			Message:    extractGatewayMessage(bodyBytes, "failed to capture payment"),
			Body:       bodyBytes,
		}
	}

	var result CaptureResult
	if err := json.Unmarshal(bodyBytes, &result); err != nil {
		log.Error("failed decoding capture response", zap.Error(err))
		return nil, err
	}
	result.RawResponse = json.RawMessage(bodyBytes)

	log.Info("payment captured",
		zap.String("capture_id", result.ID),
		zap.String("status", result.Status),
	)

	return &result, nil
}

// extractGatewayMessage pulls the processor's human-readable message
// out of an error payload, falling back when the shape is unknown.
func extractGatewayMessage(body []byte, fallback string) string {
	var payload struct {
		Message string `json:"message"`
		Name    string `json:"name"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Name != "" {
			return payload.Name
		}
	}
	return fallback
}
