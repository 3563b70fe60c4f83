// Package auth authenticates callers from host-issued bearer tokens.
//
// The hosting environment signs a JWT binding the caller to their 32-byte
// wallet address; this middleware only verifies the signature and extracts
// the address. Key distribution and token issuance belong to the host.
package auth

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"sovereign/pkg/domain"
	dErrors "sovereign/pkg/domain-errors"
	"sovereign/pkg/platform/httputil"
	"sovereign/pkg/requestcontext"
)

// WalletClaim is the JWT claim carrying the caller's hex-encoded wallet
// address.
const WalletClaim = "wallet"

type claims struct {
	Wallet string `json:"wallet"`
	jwt.RegisteredClaims
}

// Verifier validates bearer tokens and extracts the caller address.
type Verifier struct {
	signingKey []byte
}

// NewVerifier builds a Verifier for host-issued HS256 tokens.
func NewVerifier(signingKey string) *Verifier {
	return &Verifier{signingKey: []byte(signingKey)}
}

// CallerFromToken parses and verifies a bearer token, returning the caller
// wallet address bound into it.
func (v *Verifier) CallerFromToken(tokenString string) (domain.Address, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.signingKey, nil
	})
	if err != nil {
		return domain.Address{}, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return domain.Address{}, fmt.Errorf("token is not valid")
	}
	caller, err := domain.ParseAddress(c.Wallet)
	if err != nil {
		return domain.Address{}, fmt.Errorf("wallet claim: %w", err)
	}
	return caller, nil
}

// RequireCaller rejects requests without a valid bearer token and injects
// the authenticated caller address into the request context.
func RequireCaller(verifier *Verifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "bearer token required"))
				return
			}

			caller, err := verifier.CallerFromToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized request - invalid token",
					"request_id", requestcontext.RequestID(ctx),
					"error", err,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid bearer token"))
				return
			}

			next.ServeHTTP(w, r.WithContext(requestcontext.WithCaller(ctx, caller)))
		})
	}
}
