package client

import (
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/oasiswork/zimsoap/pkg/soap"
	"github.com/oasiswork/zimsoap/pkg/zobjects"
)

// Session owns the authentication token of one client and its
// freshness. A session is logged-in iff a token is present; it is valid
// iff the server still honors that token, which only IsSessionValid can
// tell.
type Session struct {
	client    *Client
	authToken string

	// endDate is zero for imported tokens, whose true expiry is not
	// known locally.
	endDate time.Time
}

func newSession(c *Client) *Session {
	return &Session{client: c}
}

// AuthToken returns the current bearer token, empty when anonymous.
func (s *Session) AuthToken() string { return s.authToken }

// Login sends the Auth handshake and stores the returned token and its
// computed absolute expiry. namespace overrides the client's own when
// the service authenticates elsewhere (the mail service authenticates
// against urn:zimbraAccount).
func (s *Session) Login(username, password, namespace string) error {
	selector, err := (&zobjects.Account{Name: username}).ToSelector()
	if err != nil {
		return err
	}

	resp, err := s.client.RequestNS("Auth", soap.Params{
		"account":  selector,
		"password": soap.Params{"_content": password},
	}, namespace)
	if err != nil {
		return err
	}

	token := soap.Content(resp["authToken"])
	if token == "" {
		return errors.New("Auth response carries no authToken")
	}
	lifetime, err := strconv.Atoi(soap.Content(resp["lifetime"]))
	if err != nil {
		return errors.Wrap(err, "bad lifetime in Auth response")
	}

	s.authToken = token
	s.SetEndDate(lifetime)
	return nil
}

// ImportSession adopts a token obtained elsewhere (preauth, delegated
// auth) without a password login. No expiry is known for it.
func (s *Session) ImportSession(authToken string) error {
	if authToken == "" {
		return errors.New("auth token should be a non-empty string")
	}
	s.authToken = authToken
	s.endDate = time.Time{}
	return nil
}

// SetEndDate computes the absolute session expiry from a lifetime in
// seconds.
func (s *Session) SetEndDate(lifetimeSeconds int) {
	s.endDate = time.Now().Add(time.Duration(lifetimeSeconds) * time.Second)
}

// IsLoggedIn is the cheap local check: a token is present and the local
// clock has not passed its expiry. Imported tokens have no known expiry
// and count as fresh until the server says otherwise.
func (s *Session) IsLoggedIn() bool {
	if s.authToken == "" {
		return false
	}
	if s.endDate.IsZero() {
		return true
	}
	return !s.endDate.Before(time.Now())
}

// IsSessionValid is the authoritative check: a lightweight Auth
// round-trip carrying only the token, letting the server confirm or
// reject it.
func (s *Session) IsSessionValid() bool {
	_, err := s.client.RequestNS("Auth", soap.Params{
		"authToken": soap.Params{"_content": s.authToken},
	}, "")
	if err != nil {
		s.client.logger.WithField("error", err).Debug("session check failed")
		return false
	}
	return true
}
