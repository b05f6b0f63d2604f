package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

const tracerName = "github.com/osa911/contactform/internal/service"

// BrevoConfig configures the Brevo transactional email client
type BrevoConfig struct {
	APIKey         string
	BaseURL        string
	SenderEmail    string
	SenderName     string
	RecipientEmail string
	// SendRate and SendBurst pace calls to the provider
	SendRate  float64
	SendBurst int
}

// BrevoService sends contact messages via Brevo's transactional email API
type BrevoService struct {
	cfg     BrevoConfig
	client  *http.Client
	limiter *rate.Limiter
	tracer  trace.Tracer
}

// NewBrevoService creates a new Brevo service
func NewBrevoService(cfg BrevoConfig) (*BrevoService, error) {
	if cfg.APIKey == "" || cfg.SenderEmail == "" || cfg.RecipientEmail == "" {
		return nil, ErrNotConfigured
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.brevo.com/v3"
	}
	if cfg.SendRate <= 0 {
		cfg.SendRate = 5
	}
	if cfg.SendBurst <= 0 {
		cfg.SendBurst = 1
	}

	return &BrevoService{
		cfg: cfg,
		// deadlines come from the caller's context
		client:  &http.Client{},
		limiter: rate.NewLimiter(rate.Limit(cfg.SendRate), cfg.SendBurst),
		tracer:  otel.Tracer(tracerName),
	}, nil
}

type brevoContact struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// brevoEmail is the body of POST /smtp/email
type brevoEmail struct {
	Sender      brevoContact   `json:"sender"`
	To          []brevoContact `json:"to"`
	ReplyTo     brevoContact   `json:"replyTo"`
	Subject     string         `json:"subject"`
	HTMLContent string         `json:"htmlContent"`
	TextContent string         `json:"textContent"`
}

type brevoSendResponse struct {
	MessageID string `json:"messageId"`
}

type brevoErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SendContactEmail forwards a contact message to the configured recipient
func (s *BrevoService) SendContactEmail(ctx context.Context, msg *ContactMessage) (string, error) {
	ctx, span := s.tracer.Start(ctx, "brevo.send_email", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	messageID, err := s.send(ctx, msg)
	if err != nil {
		var dispatchErr *DispatchError
		if errors.As(err, &dispatchErr) {
			span.SetAttributes(
				attribute.String("brevo.error_kind", string(dispatchErr.Kind)),
				attribute.Int("http.response.status_code", dispatchErr.StatusCode),
			)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "send failed")
		return "", err
	}

	span.SetAttributes(attribute.String("brevo.message_id", messageID))
	return messageID, nil
}

func (s *BrevoService) send(ctx context.Context, msg *ContactMessage) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", &DispatchError{Kind: DispatchQuotaExceeded, Err: fmt.Errorf("outbound send rate exhausted: %w", err)}
	}

	payload := brevoEmail{
		Sender:      brevoContact{Email: s.cfg.SenderEmail, Name: s.cfg.SenderName},
		To:          []brevoContact{{Email: s.cfg.RecipientEmail}},
		ReplyTo:     brevoContact{Email: msg.Email, Name: msg.Name},
		Subject:     contactSubject(msg),
		HTMLContent: contactHTML(msg),
		TextContent: contactText(msg),
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal brevo email: %w", err)
	}

	endpoint := strings.TrimRight(s.cfg.BaseURL, "/") + "/smtp/email"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create brevo request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", &DispatchError{Kind: DispatchNetwork, Err: scrubURLError(err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return "", &DispatchError{Kind: DispatchNetwork, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read brevo response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &DispatchError{
			Kind:       classifyStatus(resp.StatusCode),
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("brevo API returned %s", describeBrevoError(body)),
		}
	}

	var result brevoSendResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", &DispatchError{Kind: DispatchRejected, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to parse brevo response: %w", err)}
	}

	return result.MessageID, nil
}

func classifyStatus(status int) DispatchKind {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return DispatchAuthentication
	case http.StatusPaymentRequired, http.StatusTooManyRequests:
		return DispatchQuotaExceeded
	default:
		return DispatchRejected
	}
}

func describeBrevoError(body []byte) string {
	var apiErr brevoErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Code != "" {
		return fmt.Sprintf("%s: %s", apiErr.Code, apiErr.Message)
	}
	return "an unexpected response"
}

// scrubURLError drops the request URL from transport errors
func scrubURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s request failed: %w", urlErr.Op, urlErr.Err)
	}
	return err
}
