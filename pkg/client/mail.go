package client

import "strings"

// MailClient accesses the zimbraMail webservice. API reference:
// http://files.zimbra.com/docs/soap_api/<zimbra version>/api-reference/zimbraMail/service-summary.html
type MailClient struct {
	*Client
}

// NewMailClient binds a mail client to a host; an empty port means 443.
func NewMailClient(host, port string, opts ...Option) *MailClient {
	return &MailClient{New(MailService, host, port, opts...)}
}

// Login authenticates against urn:zimbraAccount: the mail service has
// no Auth operation of its own.
func (c *MailClient) Login(username, password string) error {
	return c.session.Login(username, password, AccountService.Namespace)
}

// IsSessionValid borrows an account client to check the token, for the
// same reason Login authenticates elsewhere.
func (c *MailClient) IsSessionValid() bool {
	zac := NewAccountClient(c.host, c.port,
		WithHTTPClient(c.httpClient),
		WithBaseURL(strings.TrimSuffix(c.baseURL, c.service.Path)))
	if err := zac.Session().ImportSession(c.session.AuthToken()); err != nil {
		return false
	}
	return zac.Session().IsSessionValid()
}

// commaList joins ids the way multi-target mail operations expect,
// e.g. ["260","261"] to "260,261".
func commaList(ids []string) string {
	return strings.Join(ids, ",")
}
