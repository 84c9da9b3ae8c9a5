package client

import (
	"context"
	"net/http"

	"zko-backend/internal/zko"
)

// ChangeStatus: POST /api/zko/status/change.
// Неизвестный код этапа отклоняется до отправки запроса.
func (c *Client) ChangeStatus(ctx context.Context, req zko.StatusChange) (string, error) {
	const op = "client.ChangeStatus"

	if err := req.Validate(); err != nil {
		return "", err
	}
	if req.Uzytkownik == "" {
		req.Uzytkownik = req.Operator
	}

	data, err := c.send(ctx, op, "status-change", http.MethodPost, "/api/zko/status/change", req)
	if err != nil {
		return "", err
	}

	env, err := checkEnvelope(op, data)
	if err != nil {
		return "", err
	}
	return env.Komunikat, nil
}
