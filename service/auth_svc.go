package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Gthulhu/cpupower/domain"
	"github.com/Gthulhu/cpupower/pkg/errs"
	"github.com/Gthulhu/cpupower/pkg/logger"
	"github.com/Gthulhu/cpupower/pkg/util"
	"github.com/golang-jwt/jwt/v5"
)

// VerifyAndGenerateToken verifies the provided public key and generates a JWT token if valid
func (svc *Service) VerifyAndGenerateToken(ctx context.Context, clientID string, publicKey string) (string, int64, error) {
	if svc.jwtPrivateKey == nil {
		return "", 0, domain.ErrTokenUnavailable
	}
	err := svc.VerifyPublicKey(publicKey)
	if err != nil {
		return "", 0, errs.NewHTTPStatusError(http.StatusUnauthorized, "Public key verification failed", err)
	}
	token, claims, err := svc.generateJWT(ctx, clientID)
	if err != nil {
		return "", 0, fmt.Errorf("JWT generation failed: %v", err)
	}
	return token, claims.ExpiresAt.Unix(), nil
}

// VerifyPublicKey checks that publicKeyPEM belongs to the server's private key
func (svc *Service) VerifyPublicKey(publicKeyPEM string) error {
	rsaPublicKey, err := util.PEMToRSAPublicKey(publicKeyPEM)
	if err != nil {
		return fmt.Errorf("failed to parse public key: %v", err)
	}
	if !rsaPublicKey.Equal(&svc.jwtPrivateKey.PublicKey) {
		return fmt.Errorf("public key does not match server's private key")
	}
	return nil
}

func (svc *Service) generateJWT(ctx context.Context, clientID string) (string, domain.Claims, error) {
	expireHr := svc.tokenConfig.TokenDurationHr
	if expireHr <= 0 {
		logger.Logger(ctx).Warn().Msgf("invalid token duration hr %d, defaulting to 24 hours", expireHr)
		expireHr = 24
	}

	now := time.Now()
	claims := domain.Claims{
		ClientID: clientID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expireHr) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "cpupower",
			Subject:   clientID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	tokenStr, err := token.SignedString(svc.jwtPrivateKey)
	if err != nil {
		return "", domain.Claims{}, fmt.Errorf("failed to sign JWT token: %v", err)
	}
	return tokenStr, claims, nil
}

// VerifyJWTToken validates a bearer token and returns its claims
func (svc *Service) VerifyJWTToken(ctx context.Context, tokenString string) (*domain.Claims, error) {
	if svc.jwtPrivateKey == nil {
		return nil, domain.ErrTokenUnavailable
	}
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return &svc.jwtPrivateKey.PublicKey, nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*domain.Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

// clientID names the caller for audit log lines; requests without a verified token are anonymous.
func clientID(ctx context.Context) string {
	if claims, ok := domain.ClaimsFromContext(ctx); ok && claims.ClientID != "" {
		return claims.ClientID
	}
	return "anonymous"
}

// withClientLogger tags the context logger with the caller so downstream log lines carry it.
func withClientLogger(ctx context.Context) context.Context {
	return logger.Logger(ctx).With().Str("client_id", clientID(ctx)).Logger().WithContext(ctx)
}
