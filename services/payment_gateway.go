package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentRequest struct {
	TransactionID string
	Amount        decimal.Decimal
	Currency      string
	Description   string
	NotifyURL     string
	ReturnURL     string

	CustomerName    string
	CustomerSurname string
	CustomerEmail   string
	CustomerPhone   string
	CustomerCity    string
	CustomerAddress string
}

type PaymentIntent struct {
	Token      string
	URL        string
	ResponseID string
}

type PaymentState string

const (
	PaymentAccepted PaymentState = "ACCEPTED"
	PaymentRefused  PaymentState = "REFUSED"
	PaymentWaiting  PaymentState = "PENDING"
)

type PaymentResult struct {
	State     PaymentState
	PaymentID string
}

// PaymentGateway opens a hosted payment page and reports its outcome.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, req PaymentRequest) (*PaymentIntent, error)
	Verify(ctx context.Context, transactionID string) (*PaymentResult, error)
}

// ---------------- CinetPay ----------------

type CinetPayGateway struct {
	APIKey  string
	SiteID  string
	BaseURL string
	Client  *http.Client
}

func NewCinetPayGateway(apiKey, siteID, baseURL string) *CinetPayGateway {
	return &CinetPayGateway{
		APIKey:  apiKey,
		SiteID:  siteID,
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type cinetPayReply struct {
	Code          string          `json:"code"`
	Message       string          `json:"message"`
	Description   string          `json:"description"`
	APIResponseID string          `json:"api_response_id"`
	Data          json.RawMessage `json:"data"`
}

func (g *CinetPayGateway) post(ctx context.Context, path string, body any) (*cinetPayReply, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.BaseURL+path, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := g.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cinetpay %s: %w", path, err)
	}
	defer res.Body.Close()

	var out cinetPayReply
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("cinetpay %s: decode: %w", path, err)
	}
	return &out, nil
}

func (g *CinetPayGateway) CreateIntent(ctx context.Context, in PaymentRequest) (*PaymentIntent, error) {
	body := map[string]any{
		"apikey":                g.APIKey,
		"site_id":               g.SiteID,
		"transaction_id":        in.TransactionID,
		"amount":                in.Amount.Ceil().IntPart(),
		"currency":              in.Currency,
		"description":           in.Description,
		"notify_url":            in.NotifyURL,
		"return_url":            in.ReturnURL,
		"channels":              "ALL",
		"customer_name":         in.CustomerName,
		"customer_surname":      in.CustomerSurname,
		"customer_email":        in.CustomerEmail,
		"customer_phone_number": in.CustomerPhone,
		"customer_city":         in.CustomerCity,
		"customer_address":      in.CustomerAddress,
	}
	rep, err := g.post(ctx, "/payment", body)
	if err != nil {
		return nil, err
	}
	if rep.Code != "201" {
		return nil, fmt.Errorf("cinetpay payment: %s %s", rep.Code, rep.Description)
	}
	var data struct {
		PaymentToken string `json:"payment_token"`
		PaymentURL   string `json:"payment_url"`
	}
	if err := json.Unmarshal(rep.Data, &data); err != nil {
		return nil, fmt.Errorf("cinetpay payment: data: %w", err)
	}
	return &PaymentIntent{Token: data.PaymentToken, URL: data.PaymentURL, ResponseID: rep.APIResponseID}, nil
}

func (g *CinetPayGateway) Verify(ctx context.Context, transactionID string) (*PaymentResult, error) {
	rep, err := g.post(ctx, "/payment/check", map[string]any{
		"apikey":         g.APIKey,
		"site_id":        g.SiteID,
		"transaction_id": transactionID,
	})
	if err != nil {
		return nil, err
	}
	var data struct {
		Status     string `json:"status"`
		OperatorID string `json:"operator_id"`
	}
	if len(rep.Data) > 0 {
		_ = json.Unmarshal(rep.Data, &data)
	}
	switch {
	case rep.Code == "00" && data.Status == string(PaymentAccepted):
		return &PaymentResult{State: PaymentAccepted, PaymentID: data.OperatorID}, nil
	case data.Status == string(PaymentRefused):
		return &PaymentResult{State: PaymentRefused}, nil
	default:
		return &PaymentResult{State: PaymentWaiting}, nil
	}
}

// ---------------- Local ----------------

// LocalGateway accepts every payment; used when no provider is configured.
type LocalGateway struct{}

func (LocalGateway) CreateIntent(_ context.Context, in PaymentRequest) (*PaymentIntent, error) {
	u := in.ReturnURL
	if u != "" {
		sep := "?"
		if strings.Contains(u, "?") {
			sep = "&"
		}
		u += sep + "transaction_id=" + url.QueryEscape(in.TransactionID)
	}
	return &PaymentIntent{Token: uuid.NewString(), URL: u, ResponseID: "local"}, nil
}

func (LocalGateway) Verify(_ context.Context, transactionID string) (*PaymentResult, error) {
	return &PaymentResult{State: PaymentAccepted, PaymentID: "local-" + transactionID}, nil
}
