package test

import "context"

// AdminSeederStub records bootstrap admin requests.
type AdminSeederStub struct {
	Err   error
	Email string
	Calls int
}

// EnsureAdmin stores the e-mail and returns the configured error.
func (s *AdminSeederStub) EnsureAdmin(ctx context.Context, email, password string) error {
	s.Calls++
	s.Email = email
	return s.Err
}
