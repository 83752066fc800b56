// ABOUTME: Identity exchange with the auth endpoint
// ABOUTME: Trades the host-platform init payload for a session token and identity
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/roomly-app/roomly/models"
)

// ErrAuthBlocked means the identity exists but has no linked email yet; the
// backend refuses a session until the user links one through the bot.
var ErrAuthBlocked = errors.New("auth blocked: email link required")

type authRequest struct {
	InitData string `json:"init_data"`
}

// ExchangeTelegram posts the Telegram init payload and returns the issued
// token plus identity snapshot. A 403 maps to ErrAuthBlocked; any other
// failure surfaces as-is for the caller to treat as transient.
func (c *Client) ExchangeTelegram(ctx context.Context, initData string) (*models.AuthResponse, error) {
	var out models.AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/telegram", nil, authRequest{InitData: initData}, &out)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusForbidden {
			return nil, ErrAuthBlocked
		}
		return nil, err
	}
	return &out, nil
}
