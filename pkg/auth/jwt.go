package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrNoSigningKey is returned by GenerateToken in validation-only mode.
var ErrNoSigningKey = errors.New("auth: no signing key configured")

// JWTConfig holds JWT configuration. Exactly one of Secret, PrivateKeyPEM or
// PublicKeyPEM must be set.
type JWTConfig struct {
	// Secret is the HMAC-SHA256 symmetric key.
	Secret string

	// PrivateKeyPEM is a PEM-encoded RSA private key (sign and validate).
	PrivateKeyPEM string

	// PublicKeyPEM is a PEM-encoded RSA public key (validate only).
	PublicKeyPEM string

	Issuer     string
	Expiration time.Duration
}

// JWTService handles JWT token operations.
type JWTService struct {
	config     JWTConfig
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
}

// NewJWTService creates a new JWTService with the given configuration.
func NewJWTService(cfg JWTConfig) (*JWTService, error) {
	svc := &JWTService{config: cfg}

	switch {
	case cfg.PrivateKeyPEM != "":
		privKey, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(cfg.PrivateKeyPEM))
		if err != nil {
			return nil, fmt.Errorf("auth: parse RSA private key: %w", err)
		}
		svc.privateKey = privKey
		svc.publicKey = &privKey.PublicKey
	case cfg.PublicKeyPEM != "":
		pubKey, err := jwt.ParseRSAPublicKeyFromPEM([]byte(cfg.PublicKeyPEM))
		if err != nil {
			return nil, fmt.Errorf("auth: parse RSA public key: %w", err)
		}
		svc.publicKey = pubKey
	case cfg.Secret != "":
	default:
		return nil, errors.New("auth: jwt configuration requires PrivateKeyPEM, PublicKeyPEM, or Secret")
	}

	return svc, nil
}

func (s *JWTService) usesRSA() bool { return s.publicKey != nil }

// GenerateToken issues a token for subject carrying the given roles.
func (s *JWTService) GenerateToken(subject string, roles []string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.Expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
		Roles: roles,
	}

	if s.usesRSA() {
		if s.privateKey == nil {
			return "", ErrNoSigningKey
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(s.privateKey)
		if err != nil {
			return "", fmt.Errorf("auth: sign token: %w", err)
		}
		return signed, nil
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and validates a JWT token string.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	opts := []jwt.ParserOption{}
	if s.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.config.Issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if s.usesRSA() {
			if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.publicKey, nil
		}
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("auth: parse token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("auth: invalid token")
	}

	return claims, nil
}

// LoadKeyFromFile reads a PEM-encoded key from a file path.
func LoadKeyFromFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("auth: read key file %q: %w", path, err)
	}
	return data, nil
}
