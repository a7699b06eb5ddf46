package client

import (
	"time"

	"github.com/oasiswork/zimsoap/pkg/preauth"
	"github.com/oasiswork/zimsoap/pkg/soap"
	"github.com/oasiswork/zimsoap/pkg/zobjects"
)

// AdminClient accesses the zimbraAdmin webservice. API reference:
// http://files.zimbra.com/docs/soap_api/<zimbra version>/api-reference/zimbraAdmin/service-summary.html
type AdminClient struct {
	*Client
}

// NewAdminClient binds an admin client to a host; an empty port means
// the 7071 admin default.
func NewAdminClient(host, port string, opts ...Option) *AdminClient {
	return &AdminClient{New(AdminService, host, port, opts...)}
}

// MkAuthToken builds a preauth token for an account, signed with the
// zimbraPreAuthKey of its domain. duration is in seconds, zero meaning
// the account default lifetime.
func (c *AdminClient) MkAuthToken(account *zobjects.Account, admin bool, duration int64) (string, error) {
	domain, err := account.Domain()
	if err != nil {
		return "", err
	}
	fetched, err := c.GetDomain(domain)
	if err != nil {
		return "", err
	}
	key := soap.Content(fetched.PropertyOr("zimbraPreAuthKey", ""))
	if key == "" {
		return "", ErrDomainHasNoPreauthKey
	}
	timestamp := time.Now().Unix() * 1000
	return preauth.SignString(key, account.Name, timestamp, duration*1000, admin), nil
}

// GetAccountAuthToken uses DelegateAuth to mint a token (and its
// lifetime in seconds) for another account, the flow behind "view mail"
// in the admin console.
func (c *AdminClient) GetAccountAuthToken(account *zobjects.Account) (string, int, error) {
	selector, err := account.ToSelector()
	if err != nil {
		return "", 0, err
	}
	resp, err := c.Request("DelegateAuth", soap.Params{"account": selector})
	if err != nil {
		return "", 0, err
	}
	token := soap.Content(resp["authToken"])
	lifetime := soap.AutoType(soap.Content(resp["lifetime"]))
	seconds, _ := lifetime.(int)
	return token, seconds, nil
}

// DelegateAuth returns an account client already logged in as the given
// account through delegated auth.
func (c *AdminClient) DelegateAuth(account *zobjects.Account) (*AccountClient, error) {
	token, lifetime, err := c.GetAccountAuthToken(account)
	if err != nil {
		return nil, err
	}
	zc := NewAccountClient(c.host, "")
	if err := zc.LoginWithAuthToken(token, lifetime); err != nil {
		return nil, err
	}
	return zc, nil
}

// DelegatedLogin logs this client in as login through an already
// logged-in admin client.
func (c *Client) DelegatedLogin(login string, admin *AdminClient) error {
	if !admin.Session().IsLoggedIn() {
		return ErrShouldAuthenticateFirst
	}
	selector, err := (&zobjects.Account{Name: login}).ToSelector()
	if err != nil {
		return err
	}
	resp, err := admin.Request("DelegateAuth", soap.Params{"account": selector})
	if err != nil {
		return err
	}
	token := soap.Content(resp["authToken"])
	lifetime, _ := soap.AutoType(soap.Content(resp["lifetime"])).(int)
	return c.LoginWithAuthToken(token, lifetime)
}

// LoggedInBy logs this client in as login via the preauth mechanism,
// using an already logged-in admin client to read the domain preauth
// key. The key cannot be created by API; provision it with
// "zmprov gdpak <domain>".
func (c *Client) LoggedInBy(login string, admin *AdminClient) error {
	if !admin.Session().IsLoggedIn() {
		return ErrShouldAuthenticateFirst
	}
	account := &zobjects.Account{Name: login}
	domain, err := account.Domain()
	if err != nil {
		return err
	}
	fetched, err := admin.GetDomain(domain)
	if err != nil {
		return err
	}
	key := soap.Content(fetched.PropertyOr("zimbraPreAuthKey", ""))
	if key == "" {
		return ErrDomainHasNoPreauthKey
	}

	var rc *preauth.RESTClient
	switch c.service.Name {
	case "admin":
		rc = preauth.NewAdminClient(c.host, c.port, key)
	case "mail":
		rc = preauth.NewMailClient(c.host, c.port, key)
	default:
		rc = preauth.NewAccountClient(c.host, c.port, key)
	}
	if c.preauthBaseURL != "" {
		rc.SetBaseURL(c.preauthBaseURL)
	}

	token, err := rc.GetPreauthToken(login, 0)
	if err != nil {
		return err
	}
	return c.LoginWithAuthToken(token, 0)
}
