package client

import "github.com/pkg/errors"

var (
	// ErrShouldAuthenticateFirst is returned by operations that need
	// a logged-in helper client (delegated auth, preauth) before any
	// login happened.
	ErrShouldAuthenticateFirst = errors.New("this operation requires a prior login")

	// ErrDomainHasNoPreauthKey is returned when preauth is attempted
	// against a domain lacking a zimbraPreAuthKey; make one first
	// with "zmprov gdpak <domain>", see
	// http://wiki.zimbra.com/wiki/Preauth.
	ErrDomainHasNoPreauthKey = errors.New("domain has no preauth key")
)
