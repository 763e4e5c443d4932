package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid auth token")

// HMACStrategy implements auth token creation/verification using HMAC signatures.
type HMACStrategy struct {
	secret []byte
	ttl    time.Duration
}

// NewHMACStrategy builds HMACStrategy with provided secret and options.
func NewHMACStrategy(secret string, opts Options) *HMACStrategy {
	return &HMACStrategy{secret: []byte(secret), ttl: opts.ttl()}
}

// IssueToken generates signed auth token for the identity.
func (s *HMACStrategy) IssueToken(id Identity) (string, error) {
	if strings.Contains(id.Role, ":") {
		return "", fmt.Errorf("role %q contains separator", id.Role)
	}
	expires := time.Now().Add(s.ttl).Unix()
	payload := fmt.Sprintf("%s:%s:%d", id.UserID, id.Role, expires)
	sig := s.sign(payload)
	token := fmt.Sprintf("%s:%s", payload, sig)
	return base64.StdEncoding.EncodeToString([]byte(token)), nil
}

// ParseToken validates token and returns the encoded identity.
func (s *HMACStrategy) ParseToken(token string) (Identity, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}

	parts := strings.Split(string(raw), ":")
	if len(parts) != 4 {
		return Identity{}, ErrInvalidToken
	}

	payload := strings.Join(parts[:3], ":")
	expectedSig := s.sign(payload)
	if !hmac.Equal([]byte(expectedSig), []byte(parts[3])) {
		return Identity{}, ErrInvalidToken
	}

	userID, err := uuid.Parse(parts[0])
	if err != nil {
		return Identity{}, ErrInvalidToken
	}

	expires, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}

	if time.Unix(expires, 0).Before(time.Now()) {
		return Identity{}, ErrInvalidToken
	}

	return Identity{UserID: userID, Role: parts[1]}, nil
}

func (s *HMACStrategy) Name() string {
	return "hmac"
}

func (s *HMACStrategy) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
