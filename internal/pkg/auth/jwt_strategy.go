package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const jwtIssuer = "ecocoleta"

type claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// JWTStrategy issues HS256 signed JSON web tokens.
type JWTStrategy struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTStrategy builds JWTStrategy with provided secret and options.
func NewJWTStrategy(secret string, opts Options) *JWTStrategy {
	return &JWTStrategy{secret: []byte(secret), ttl: opts.ttl(), now: time.Now}
}

// IssueToken signs a token whose subject is the user id.
func (s *JWTStrategy) IssueToken(id Identity) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID.String(),
			Issuer:    jwtIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Role: id.Role,
	})
	return token.SignedString(s.secret)
}

// ParseToken verifies signature, issuer and expiry.
func (s *JWTStrategy) ParseToken(token string) (Identity, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(jwtIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return Identity{}, ErrInvalidToken
	}

	userID, err := uuid.Parse(c.Subject)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}
	return Identity{UserID: userID, Role: c.Role}, nil
}

func (s *JWTStrategy) Name() string {
	return "jwt"
}
