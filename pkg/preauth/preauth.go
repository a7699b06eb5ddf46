// Package preauth mints Zimbra session tokens without a password, using
// the per-domain shared key mechanism described on
// http://wiki.zimbra.com/wiki/Preauth.
package preauth

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/tls"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// Cookie names carrying the minted token, one per target service.
const (
	AdminTokenCookie   = "ZM_ADMIN_AUTH_TOKEN"
	AccountTokenCookie = "ZM_AUTH_TOKEN"
	MailTokenCookie    = "ZM_MAIL_AUTH_TOKEN"
)

// ErrNoPreauthKey is returned when a token is requested from a client
// that was built without the domain shared key.
var ErrNoPreauthKey = errors.New("no preauth key provided")

// BackendError wraps an HTTP rejection from the preauth endpoint, e.g.
// unknown account or bad signature.
type BackendError struct {
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("zimbra issued HTTP error: %v", e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// SignString builds the canonical preauth string and signs it with
// HMAC-SHA1 under the domain shared key. The canonical form is
// "account|name|expires|timestamp", with an extra "1" flag after the
// account for admin tokens. Timestamps and expiries are milliseconds.
func SignString(preauthKey, accountName string, timestamp, expires int64, admin bool) string {
	var s string
	if admin {
		s = fmt.Sprintf("%s|1|name|%d|%d", accountName, expires, timestamp)
	} else {
		s = fmt.Sprintf("%s|name|%d|%d", accountName, expires, timestamp)
	}
	mac := hmac.New(sha1.New, []byte(preauthKey))
	mac.Write([]byte(s))
	return hex.EncodeToString(mac.Sum(nil))
}

// RESTClient exchanges a signed preauth assertion for a session token
// over the /service/preauth endpoint, reading the token back from a
// service-specific cookie.
type RESTClient struct {
	preauthURL  string
	preauthKey  string
	tokenCookie string
	isAdmin     bool
	httpClient  *http.Client
}

func newRESTClient(host, port, preauthKey, tokenCookie string, admin bool) *RESTClient {
	preauthURL := fmt.Sprintf("https://%s/service/preauth?", host)
	if port != "" {
		preauthURL = fmt.Sprintf("https://%s:%s/service/preauth?", host, port)
	}
	return &RESTClient{
		preauthURL:  preauthURL,
		preauthKey:  preauthKey,
		tokenCookie: tokenCookie,
		isAdmin:     admin,
		httpClient: &http.Client{
			Transport: &http.Transport{
				// Zimbra boxes commonly run self-signed
				// certificates and the historical clients never
				// verified them
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
	}
}

// NewAdminClient targets the admin service (port 7071 by default).
func NewAdminClient(host, port, preauthKey string) *RESTClient {
	if port == "" {
		port = "7071"
	}
	return newRESTClient(host, port, preauthKey, AdminTokenCookie, true)
}

// NewAccountClient targets the account service.
func NewAccountClient(host, port, preauthKey string) *RESTClient {
	return newRESTClient(host, port, preauthKey, AccountTokenCookie, false)
}

// NewMailClient targets the mail service.
func NewMailClient(host, port, preauthKey string) *RESTClient {
	return newRESTClient(host, port, preauthKey, MailTokenCookie, false)
}

// SetPreauthKey replaces the domain shared key.
func (c *RESTClient) SetPreauthKey(preauthKey string) {
	c.preauthKey = preauthKey
}

// SetBaseURL points the client at an arbitrary endpoint, used by tests
// to target an in-process fixture server.
func (c *RESTClient) SetBaseURL(baseURL string) {
	c.preauthURL = baseURL + "/service/preauth?"
}

// GetPreauthToken signs a preauth assertion for accountName and trades
// it for a session token. expires is in seconds, zero meaning the
// account default lifetime.
func (c *RESTClient) GetPreauthToken(accountName string, expires int64) (string, error) {
	if c.preauthKey == "" {
		return "", ErrNoPreauthKey
	}

	ts := time.Now().Unix() * 1000
	sig := SignString(c.preauthKey, accountName, ts, expires*1000, c.isAdmin)

	admin := "0"
	if c.isAdmin {
		admin = "1"
	}
	args := url.Values{
		"account":   {accountName},
		"by":        {"name"},
		"timestamp": {strconv.FormatInt(ts, 10)},
		"expires":   {strconv.FormatInt(expires*1000, 10)},
		"admin":     {admin},
		"preauth":   {sig},
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return "", err
	}
	c.httpClient.Jar = jar

	resp, err := c.httpClient.Get(c.preauthURL + args.Encode())
	if err != nil {
		return "", &BackendError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", &BackendError{Err: errors.Errorf("HTTP %d", resp.StatusCode)}
	}

	u, err := url.Parse(c.preauthURL)
	if err != nil {
		return "", err
	}
	for _, cookie := range jar.Cookies(u) {
		if cookie.Name == c.tokenCookie {
			return cookie.Value, nil
		}
	}
	return "", &BackendError{Err: errors.Errorf("no %s cookie in response", c.tokenCookie)}
}
