package v1handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"typeracer/internal/config"
	"typeracer/pkg/domain"
	"typeracer/pkg/serrors"

	"github.com/golang-jwt/jwt/v5"
)

type ctxKey string

// OperatorKey is the context key of the authenticated operator.
const OperatorKey ctxKey = "operator"

// SecHandlerOptions configure admin token verification.
type SecHandlerOptions struct {
	// PublicKey is the PEM encoded RSA key tokens are verified with. Admin
	// routes reject every request when it is empty.
	PublicKey string
}

// NewSecHandlerOptions reads the JWT settings of cfg.
func NewSecHandlerOptions(cfg *config.Config) *SecHandlerOptions {
	return &SecHandlerOptions{PublicKey: cfg.JWT.PublicKey}
}

// SecHandler authenticates operators with RS256 bearer tokens.
type SecHandler struct {
	parser *jwt.Parser
	keyFn  jwt.Keyfunc
}

// NewSecHandler parses the public key of opts.
func NewSecHandler(opts *SecHandlerOptions) (*SecHandler, error) {
	sh := &SecHandler{
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}
	if opts == nil || opts.PublicKey == "" {
		return sh, nil
	}

	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(opts.PublicKey))
	if err != nil {
		return nil, fmt.Errorf("could not parse RSA public key: %w", err)
	}
	sh.keyFn = func(*jwt.Token) (any, error) { return key, nil }

	return sh, nil
}

// HandleBearerAuth verifies token and stores its subject in the returned context.
func (s *SecHandler) HandleBearerAuth(ctx context.Context, token string) (context.Context, error) {
	if s.keyFn == nil {
		return ctx, serrors.With(serrors.ErrForbidden, "admin API is disabled")
	}

	var claims jwt.RegisteredClaims
	if _, err := s.parser.ParseWithClaims(token, &claims, s.keyFn); err != nil {
		return ctx, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid token")
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return ctx, serrors.With(serrors.ErrUnauthorized, "token has no subject")
	}

	return context.WithValue(ctx, OperatorKey, domain.OperatorID(claims.Subject)), nil
}

// Require rejects requests without a valid bearer token.
func (s *SecHandler) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			writeError(w, &ErrorResponse{
				StatusCode: http.StatusUnauthorized,
				Code:       serrors.ErrUnauthorized.Error(),
				Message:    "missing bearer token",
			})

			return
		}

		ctx, err := s.HandleBearerAuth(r.Context(), token)
		if err != nil {
			writeError(w, (&Handler{}).NewError(r.Context(), err))

			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetOperatorFromContext returns the operator stored by HandleBearerAuth.
func GetOperatorFromContext(ctx context.Context) domain.OperatorID {
	id, _ := ctx.Value(OperatorKey).(domain.OperatorID)

	return id
}
