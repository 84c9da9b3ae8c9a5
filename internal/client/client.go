package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"zko-backend/internal/config"
	"zko-backend/internal/metrics"
	"zko-backend/internal/retry"
	"zko-backend/internal/zko"
)

const maxBodySize = 10 << 20

// Client: типизированная обёртка над REST бэкенда ZKO.
// Все ошибки приводятся к zko.Error: Validation, NotFound, Remote, Network, Decode.
type Client struct {
	baseURL string
	http    *http.Client
	policy  retry.Policy
	log     *slog.Logger
}

func New(cfg config.Remote, log *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		policy: retry.Policy{
			MaxAttempts: cfg.RetryAttempts,
			BaseDelay:   cfg.RetryBaseDelay,
			Factor:      cfg.RetryFactor,
		},
		log: log,
	}
}

// read: идемпотентный запрос, повторяется при сетевых сбоях.
func (c *Client) read(ctx context.Context, op, endpoint, path string) ([]byte, error) {
	var data []byte
	err := retry.Do(ctx, c.policy, c.log, endpoint, func(ctx context.Context) error {
		var err error
		data, err = c.send(ctx, op, endpoint, http.MethodGet, path, nil)
		return err
	})
	return data, err
}

// send выполняет ровно одну попытку. Мутации ходят только через него.
func (c *Client) send(ctx context.Context, op, endpoint, method, path string, body any) ([]byte, error) {
	start := time.Now()
	data, err := c.roundTrip(ctx, op, method, path, body)

	metrics.RemoteDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	outcome := "ok"
	if err != nil {
		outcome = zko.KindOf(err).String()
	}
	metrics.RemoteRequests.WithLabelValues(endpoint, outcome).Inc()

	return data, err
}

func (c *Client) roundTrip(ctx context.Context, op, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, zko.NewValidationError(op, fmt.Sprintf("nie można zakodować żądania: %v", err))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, zko.NewValidationError(op, fmt.Sprintf("nieprawidłowe żądanie: %v", err))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, zko.NewNetworkError(op, describeTransportError(err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, zko.NewNetworkError(op, fmt.Errorf("read body: %w", err))
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return data, nil
	}

	msg := serverMessage(data)
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &zko.Error{Kind: zko.KindNotFound, Op: op, StatusCode: resp.StatusCode, Message: msg}
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, &zko.Error{Kind: zko.KindValidation, Op: op, StatusCode: resp.StatusCode, Message: msg}
	default:
		return nil, zko.NewRemoteFault(op, resp.StatusCode, msg)
	}
}

func describeTransportError(err error) error {
	var urlErr interface{ Timeout() bool }
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return fmt.Errorf("request timed out: %w", err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out: %w", err)
	}
	return fmt.Errorf("no response from server: %w", err)
}

// serverMessage достаёт komunikat/error из тела ошибки, если тело в JSON.
func serverMessage(data []byte) string {
	var env envelope
	if err := json.Unmarshal(data, &env); err == nil {
		return env.message()
	}
	return ""
}

// decode разбирает тело; битый JSON даёт DecodeError.
func decode(op string, data []byte, out any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return zko.NewDecodeError(op, errors.New("empty response body"))
	}
	if err := json.Unmarshal(data, out); err != nil {
		return zko.NewDecodeError(op, err)
	}
	return nil
}

// checkEnvelope превращает sukces:false в RemoteFault с сообщением сервера.
func checkEnvelope(op string, data []byte) (envelope, error) {
	var env envelope
	if err := decode(op, data, &env); err != nil {
		return env, err
	}
	if env.Sukces != nil && !*env.Sukces {
		msg := env.message()
		if msg == "" {
			msg = "operacja odrzucona przez serwer"
		}
		return env, zko.NewRemoteFault(op, http.StatusOK, msg)
	}
	return env, nil
}
