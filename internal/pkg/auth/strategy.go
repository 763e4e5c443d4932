package auth

import (
	"time"

	"github.com/google/uuid"
)

// Identity is what a token asserts about its bearer.
type Identity struct {
	UserID uuid.UUID
	Role   string
}

type Strategy interface {
	IssueToken(id Identity) (string, error)
	ParseToken(token string) (Identity, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}

func (o Options) ttl() time.Duration {
	if o.TTL <= 0 {
		return 24 * time.Hour
	}
	return o.TTL
}
