// Package client provides the SOAP clients for the Zimbra admin,
// account and mail services, along with the authentication session
// lifecycle (password login, token import, preauth and delegated auth).
package client

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/oasiswork/zimsoap/pkg/log"
	"github.com/oasiswork/zimsoap/pkg/soap"
)

// HTTPClient is the transport dependency, an interface so tests can
// swap the real client out.
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// Service describes one of the three Zimbra SOAP webservices.
type Service struct {
	Name        string
	Namespace   string
	Path        string
	DefaultPort string
}

var (
	AdminService   = Service{Name: "admin", Namespace: "urn:zimbraAdmin", Path: "/service/admin/soap", DefaultPort: "7071"}
	AccountService = Service{Name: "account", Namespace: "urn:zimbraAccount", Path: "/service/soap", DefaultPort: "443"}
	MailService    = Service{Name: "mail", Namespace: "urn:zimbraMail", Path: "/service/soap", DefaultPort: "443"}
)

// Client is the request dispatcher for one service endpoint. It owns
// exactly one Session and one transport handle; nothing is shared
// between instances and no internal locking is performed.
type Client struct {
	host    string
	port    string
	service Service

	baseURL        string
	preauthBaseURL string
	httpClient     HTTPClient
	session        *Session

	logger *logrus.Entry
}

// Option customizes a Client at construction.
type Option func(*Client)

// WithHTTPClient replaces the transport, e.g. with a mock.
func WithHTTPClient(hc HTTPClient) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL overrides the https://host:port prefix, letting tests
// target an in-process server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL + c.service.Path }
}

// WithPreauthBaseURL overrides the endpoint used for preauth token
// minting in LoggedInBy.
func WithPreauthBaseURL(baseURL string) Option {
	return func(c *Client) { c.preauthBaseURL = baseURL }
}

// New builds a client bound to one host and service. An empty port
// selects the service default (7071 for admin, 443 otherwise).
func New(service Service, host, port string, opts ...Option) *Client {
	if port == "" {
		port = service.DefaultPort
	}
	c := &Client{
		host:    host,
		port:    port,
		service: service,
		baseURL: fmt.Sprintf("https://%s:%s%s", host, port, service.Path),
		httpClient: &http.Client{
			Transport: &http.Transport{
				// Zimbra boxes commonly run self-signed
				// certificates and the historical clients never
				// verified them
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
		logger: log.WithField("service", service.Name),
	}
	c.session = newSession(c)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Host returns the server host the client is bound to.
func (c *Client) Host() string { return c.host }

// Port returns the server port the client is bound to.
func (c *Client) Port() string { return c.port }

// Session exposes the authentication session of the client.
func (c *Client) Session() *Session { return c.session }

// Request sends one operation against the client's own namespace.
// name is the bare operation ("GetAccount"); the wire tags are derived
// by suffixing Request/Response. The result is the content of the
// response tag as a dict.
func (c *Client) Request(name string, content soap.Params) (soap.Params, error) {
	return c.RequestNS(name, content, "")
}

// RequestNS is Request with an explicit namespace, needed when the
// authentication of one service must be issued against another one.
func (c *Client) RequestNS(name string, content soap.Params, namespace string) (soap.Params, error) {
	if namespace == "" {
		namespace = c.service.Namespace
	}
	reqName := name + "Request"
	respName := name + "Response"

	// only the login operation itself goes out unauthenticated
	token := ""
	if c.session.IsLoggedIn() {
		token = c.session.AuthToken()
	}

	payload, err := soap.BuildEnvelope(reqName, namespace, content, token)
	if err != nil {
		return nil, err
	}
	c.logger.WithFields(logrus.Fields{"request": reqName, "namespace": namespace}).
		Debugf("sending %s", payload)

	req, err := http.NewRequest(http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/soap+xml; charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot reach %s", c.baseURL)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read response")
	}
	c.logger.WithFields(logrus.Fields{"request": reqName, "status": resp.StatusCode}).
		Debugf("received %s", data)

	body, err := soap.ParseEnvelope(data)
	if err != nil {
		var serr *soap.ServerError
		if errors.As(err, &serr) {
			return nil, serr
		}
		if resp.StatusCode >= 400 {
			return nil, errors.Errorf("HTTP %d", resp.StatusCode)
		}
		return nil, err
	}

	if r, ok := body[respName].(soap.Params); ok {
		return r, nil
	}
	return nil, &soap.UnexpectedResponseError{Name: respName, Body: body}
}

// RequestSingle narrows a response expected to carry one element: the
// first child element found, the first of a list if the server sent
// several. Attribute entries are skipped.
func (c *Client) RequestSingle(name string, content soap.Params) (soap.Params, error) {
	resp, err := c.Request(name, content)
	if err != nil {
		return nil, err
	}
	for _, v := range resp {
		switch t := v.(type) {
		case []interface{}:
			if len(t) > 0 {
				if m, ok := t[0].(soap.Params); ok {
					return m, nil
				}
			}
		case soap.Params:
			return t, nil
		}
	}
	return nil, nil
}

// RequestList narrows a response expected to carry a list of elements,
// normalizing the one-element case the server collapses into a bare
// object.
func (c *Client) RequestList(name string, content soap.Params) ([]soap.Params, error) {
	resp, err := c.Request(name, content)
	if err != nil {
		return nil, err
	}
	for _, v := range resp {
		switch t := v.(type) {
		case []interface{}:
			out := make([]soap.Params, 0, len(t))
			for _, e := range t {
				if m, ok := e.(soap.Params); ok {
					out = append(out, m)
				}
			}
			return out, nil
		case soap.Params:
			return []soap.Params{t}, nil
		}
	}
	return nil, nil
}

// Login performs the password login handshake for the client's
// service.
func (c *Client) Login(username, password string) error {
	return c.session.Login(username, password, "")
}

// LoginWithAuthToken adopts an externally obtained token, optionally
// with its known lifetime in seconds.
func (c *Client) LoginWithAuthToken(token string, lifetimeSeconds int) error {
	if err := c.session.ImportSession(token); err != nil {
		return err
	}
	if lifetimeSeconds > 0 {
		c.session.SetEndDate(lifetimeSeconds)
	}
	return nil
}

// IsSessionValid asks the server whether the current token is still
// honored.
func (c *Client) IsSessionValid() bool {
	return c.session.IsSessionValid()
}
