package client

// AccountClient accesses the zimbraAccount webservice. API reference:
// http://files.zimbra.com/docs/soap_api/<zimbra version>/api-reference/zimbraAccount/service-summary.html
type AccountClient struct {
	*Client
}

// NewAccountClient binds an account client to a host; an empty port
// means 443.
func NewAccountClient(host, port string, opts ...Option) *AccountClient {
	return &AccountClient{New(AccountService, host, port, opts...)}
}
