package transport

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/srmendes/dashboard/internal/entity"
	"github.com/srmendes/dashboard/pkg/logger"
)

// CredentialProvider yields the bearer token for an outgoing request. It is
// consulted fresh on every call; an empty token means the request goes out
// unauthenticated.
type CredentialProvider interface {
	Token(ctx context.Context) (string, error)
}

// BearerRoundTripper attaches the session bearer token and request id to
// every outgoing backend request. A token already present on the incoming
// request context wins over the stored one.
type BearerRoundTripper struct {
	creds     CredentialProvider
	Transport http.RoundTripper
}

func NewBearerRoundTripper(creds CredentialProvider, transport http.RoundTripper) *BearerRoundTripper {
	return &BearerRoundTripper{creds: creds, Transport: transport}
}

func (b *BearerRoundTripper) RoundTrip(r *http.Request) (*http.Response, error) {
	ctx := r.Context()

	reqID := logger.RequestIDFromCtx(ctx)
	if reqID != "" {
		r.Header.Set("X-Request-Id", reqID)
	}

	token := entity.JWTFromCtx(ctx)
	if token == "" && b.creds != nil {
		stored, err := b.creds.Token(ctx)
		if err != nil {
			// A broken session store must not fail the request; it
			// just goes out unauthenticated.
			slog.WarnContext(ctx, "read session token", "error", err)
		} else {
			token = stored
		}
	}

	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}

	slog.InfoContext(ctx, "outgoing request", "request", fmt.Sprintf("%s %s", r.Method, r.URL.Redacted()))

	resp, err := b.Transport.RoundTrip(r)
	if err != nil {
		return nil, fmt.Errorf("round trip: %w", err)
	}

	slog.InfoContext(ctx, "incoming response", "response", fmt.Sprintf("%s %s %d", r.Method, r.URL.Redacted(), resp.StatusCode))

	return resp, nil
}
