// ABOUTME: Startup identity resolution against the auth service
// ABOUTME: Exchanges the host init payload, persists the session, and classifies failures
package session

import (
	"context"
	"errors"
	"log"

	"github.com/roomly-app/roomly/api"
	"github.com/roomly-app/roomly/models"
)

// Banner texts mirror the mini-app's wording.
const (
	msgEmailRequired = "Email required. Please send /email you@domain.com to the bot, then reopen the app."
	msgAuthFailed    = "Auth failed. Please reopen the app."
)

// AuthExchanger is the slice of the API client bootstrap needs.
type AuthExchanger interface {
	ExchangeTelegram(ctx context.Context, initData string) (*models.AuthResponse, error)
}

// Outcome is the result of bootstrap. Blocked means the identity exists but
// must link an email first; portal entry is refused while it is set.
// Message, when non-empty, is shown as an auth banner. Identity is nil when
// no usable session exists.
type Outcome struct {
	Identity *models.Identity
	Blocked  bool
	Message  string
}

// Bootstrap resolves the caller's identity at startup. With an init payload
// it performs the exchange and persists the issued token and identity
// snapshot; without one (or after a transient failure) it falls back to the
// stored snapshot. A blocked exchange wins over any cached session.
func Bootstrap(ctx context.Context, auth AuthExchanger, store *Store, initData string) Outcome {
	var out Outcome

	if initData != "" {
		res, err := auth.ExchangeTelegram(ctx, initData)
		switch {
		case errors.Is(err, api.ErrAuthBlocked):
			out.Blocked = true
			out.Message = msgEmailRequired
		case err != nil:
			log.Printf("session: auth exchange failed: %v", err)
			out.Message = msgAuthFailed
		default:
			if res.AccessToken != "" {
				if err := store.SetToken(res.AccessToken); err != nil {
					log.Printf("session: persist token: %v", err)
				}
			}
			if err := store.SetIdentity(res.User); err != nil {
				log.Printf("session: persist identity: %v", err)
			}
		}
	}

	if out.Blocked {
		return out
	}

	out.Identity = store.Identity()
	return out
}
