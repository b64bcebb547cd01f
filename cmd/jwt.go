package main

import (
	"crypto/rsa"
	"fmt"
	"time"
	"typeracer/internal/config"
	"typeracer/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// operatorToken signs an admin token for operator that expires after ttl.
func operatorToken(key *rsa.PrivateKey, operator string, ttl time.Duration, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   operator,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("could not sign token: %w", err)
	}

	return signed, nil
}

// JWTCommand constructs the 'jwt' subcommand that prints an admin token for
// the session endpoints of the HTTP API.
func JWTCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jwt",
		Short: "Generates an admin JWT for the given operator",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			operator, _ := cmd.Flags().GetString("operator")
			ttl, _ := cmd.Flags().GetDuration("ttl")

			key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(cfg.JWT.PrivateKey))
			if err != nil {
				logger.Fatal(ctx, "could not parse RSA private key", zap.Error(err))
			}

			token, err := operatorToken(key, operator, ttl, time.Now())
			if err != nil {
				logger.Fatal(ctx, "could not create admin token", zap.Error(err))
			}

			fmt.Println(token) //nolint: forbidigo
		},
	}

	cmd.Flags().String("operator", "", "operator name recorded in admin logs")
	cmd.Flags().Duration("ttl", time.Hour, "token lifetime (e.g. 15m, 1h)")
	_ = cmd.MarkFlagRequired("operator")

	return cmd
}
