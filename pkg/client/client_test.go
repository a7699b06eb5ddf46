package client

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/oasiswork/zimsoap/pkg/soap"
	"github.com/oasiswork/zimsoap/pkg/soaptest"
	"github.com/oasiswork/zimsoap/pkg/zobjects"
)

const (
	testDomain     = "zimbratest.example.com"
	testAdmin      = "admin@" + testDomain
	testAdminPass  = "password"
	testUser       = "jdoe@" + testDomain
	testUserPass   = "s3cret"
	testPreauthKey = "6b7ead4bd425836e8cf0079cd6c1a05acc127acd07c8ee4b61023e19250e929c"
)

// newFixture seeds a fixture install with one domain (carrying a
// preauth key), an admin and a user, served over httptest.
func newFixture(t *testing.T) (*soaptest.Server, *httptest.Server) {
	t.Helper()
	fixture := soaptest.NewServer()
	fixture.AddDomain(testDomain, testPreauthKey)
	fixture.AddAccount(testAdmin, testAdminPass, true)
	fixture.AddAccount(testUser, testUserPass, false)
	ts := httptest.NewServer(fixture.Router())
	t.Cleanup(ts.Close)
	return fixture, ts
}

// mockTransport answers every request with a canned payload, recording
// the last request body for shape assertions.
type mockTransport struct {
	payload []byte
	lastReq []byte
}

func (m *mockTransport) Do(req *http.Request) (*http.Response, error) {
	body, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, err
	}
	m.lastReq = body
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(bytes.NewReader(m.payload)),
	}, nil
}

// envelope builds a canned response payload for a mockTransport.
func envelope(t *testing.T, respName, namespace string, content soap.Params) []byte {
	t.Helper()
	payload, err := soap.BuildEnvelope(respName, namespace, content, "")
	if err != nil {
		t.Fatalf("cannot build envelope: %v", err)
	}
	return payload
}

func testOptions(ts *httptest.Server) []Option {
	return []Option{
		WithBaseURL(ts.URL),
		WithPreauthBaseURL(ts.URL),
		WithHTTPClient(ts.Client()),
	}
}

func loggedInAdmin(t *testing.T, ts *httptest.Server) *AdminClient {
	t.Helper()
	zc := NewAdminClient("localhost", "7071", testOptions(ts)...)
	if err := zc.Login(testAdmin, testAdminPass); err != nil {
		t.Fatalf("admin login failed: %v", err)
	}
	return zc
}

func TestLogin(t *testing.T) {
	_, ts := newFixture(t)

	t.Run("ok", func(t *testing.T) {
		zc := NewAdminClient("localhost", "7071", testOptions(ts)...)
		assert.False(t, zc.Session().IsLoggedIn())

		err := zc.Login(testAdmin, testAdminPass)
		assert.NoError(t, err)
		assert.True(t, zc.Session().IsLoggedIn())
		assert.NotEmpty(t, zc.Session().AuthToken())
		assert.True(t, zc.IsSessionValid())
	})

	t.Run("bad_password", func(t *testing.T) {
		zc := NewAdminClient("localhost", "7071", testOptions(ts)...)
		err := zc.Login(testAdmin, "wrong")

		var serr *soap.ServerError
		assert.True(t, errors.As(err, &serr))
		assert.Equal(t, "account.AUTH_FAILED", serr.Code)
		assert.False(t, zc.Session().IsLoggedIn())
	})

	t.Run("operation_before_login_is_rejected", func(t *testing.T) {
		zc := NewAdminClient("localhost", "7071", testOptions(ts)...)
		_, err := zc.GetAllDomains()

		var serr *soap.ServerError
		assert.True(t, errors.As(err, &serr))
		assert.Equal(t, "service.AUTH_REQUIRED", serr.Code)
	})
}

func TestLoginWithAuthToken(t *testing.T) {
	_, ts := newFixture(t)
	admin := loggedInAdmin(t, ts)

	t.Run("imported_token_is_honored", func(t *testing.T) {
		zc := NewAdminClient("localhost", "7071", testOptions(ts)...)
		err := zc.LoginWithAuthToken(admin.Session().AuthToken(), 0)
		assert.NoError(t, err)
		assert.True(t, zc.Session().IsLoggedIn())
		assert.True(t, zc.IsSessionValid())
	})

	t.Run("forged_token_looks_logged_in_but_is_invalid", func(t *testing.T) {
		zc := NewAdminClient("localhost", "7071", testOptions(ts)...)
		err := zc.LoginWithAuthToken("0_forged", 0)
		assert.NoError(t, err)
		// the local check cannot tell, only the server can
		assert.True(t, zc.Session().IsLoggedIn())
		assert.False(t, zc.IsSessionValid())
	})

	t.Run("empty_token_is_an_error", func(t *testing.T) {
		zc := NewAdminClient("localhost", "7071", testOptions(ts)...)
		assert.Error(t, zc.LoginWithAuthToken("", 0))
	})
}

func TestDomains(t *testing.T) {
	fixture, ts := newFixture(t)
	fixture.AddDomain("other.example.com", "")
	admin := loggedInAdmin(t, ts)

	t.Run("get_all_domains", func(t *testing.T) {
		domains, err := admin.GetAllDomains()
		assert.NoError(t, err)
		assert.Len(t, domains, 2)
		for _, d := range domains {
			assert.True(t, zobjects.IsZimbraID(d.ID))
		}
	})

	t.Run("get_domain_by_name", func(t *testing.T) {
		domain, err := admin.GetDomain(&zobjects.Domain{Name: testDomain})
		assert.NoError(t, err)
		assert.Equal(t, testDomain, domain.Name)
		assert.Equal(t, testPreauthKey, domain.PropertyOr("zimbraPreAuthKey", ""))
	})

	t.Run("get_domain_not_found", func(t *testing.T) {
		_, err := admin.GetDomain(&zobjects.Domain{Name: "nope.example.com"})
		var serr *soap.ServerError
		assert.True(t, errors.As(err, &serr))
		assert.Equal(t, "account.NO_SUCH_DOMAIN", serr.Code)
	})
}

func TestGetAccount(t *testing.T) {
	_, ts := newFixture(t)
	admin := loggedInAdmin(t, ts)

	account, err := admin.GetAccount(&zobjects.Account{Name: testAdmin})
	assert.NoError(t, err)
	assert.Equal(t, testAdmin, account.Name)
	assert.True(t, zobjects.IsZimbraID(account.ID))
	assert.True(t, account.IsAdmin())
}

func TestDistributionListLifecycle(t *testing.T) {
	_, ts := newFixture(t)
	admin := loggedInAdmin(t, ts)
	listAddr := "staff@" + testDomain

	created, err := admin.CreateDistributionList(listAddr, false)
	assert.NoError(t, err)
	assert.True(t, zobjects.IsZimbraID(created.ID))
	assert.Equal(t, listAddr, created.Name)

	err = admin.AddDistributionListMembers(created, []string{testUser, testAdmin})
	assert.NoError(t, err)

	fetched, err := admin.GetDistributionList(&zobjects.DistributionList{Name: listAddr})
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{testUser, testAdmin}, fetched.Members)

	eq, err := zobjects.Equal(created, fetched)
	assert.NoError(t, err)
	assert.True(t, eq)

	err = admin.DeleteDistributionList(fetched)
	assert.NoError(t, err)

	_, err = admin.GetDistributionList(&zobjects.DistributionList{Name: listAddr})
	var serr *soap.ServerError
	assert.True(t, errors.As(err, &serr))
	assert.Equal(t, "account.NO_SUCH_DISTRIBUTION_LIST", serr.Code)
}

func TestDelegatedLogin(t *testing.T) {
	_, ts := newFixture(t)
	admin := loggedInAdmin(t, ts)

	t.Run("ok", func(t *testing.T) {
		zc := NewAccountClient("localhost", "", testOptions(ts)...)
		err := zc.DelegatedLogin(testUser, admin)
		assert.NoError(t, err)
		assert.True(t, zc.Session().IsLoggedIn())
		assert.True(t, zc.IsSessionValid())
	})

	t.Run("requires_logged_in_admin", func(t *testing.T) {
		anonymous := NewAdminClient("localhost", "7071", testOptions(ts)...)
		zc := NewAccountClient("localhost", "", testOptions(ts)...)
		err := zc.DelegatedLogin(testUser, anonymous)
		assert.Equal(t, ErrShouldAuthenticateFirst, err)
	})
}

func TestGetAccountAuthToken(t *testing.T) {
	fixture, ts := newFixture(t)
	admin := loggedInAdmin(t, ts)

	token, lifetime, err := admin.GetAccountAuthToken(&zobjects.Account{Name: testUser})
	assert.NoError(t, err)
	assert.True(t, fixture.TokenKnown(token))
	assert.Equal(t, soaptest.TokenLifetime*1000, lifetime)
}

func TestLoggedInBy(t *testing.T) {
	fixture, ts := newFixture(t)
	fixture.AddDomain("keyless.example.com", "")
	fixture.AddAccount("user@keyless.example.com", "x", false)
	admin := loggedInAdmin(t, ts)

	t.Run("preauth_login", func(t *testing.T) {
		zc := NewAccountClient("localhost", "", testOptions(ts)...)
		err := zc.LoggedInBy(testUser, admin)
		assert.NoError(t, err)
		assert.True(t, zc.Session().IsLoggedIn())
		assert.True(t, zc.IsSessionValid())
	})

	t.Run("domain_without_preauth_key", func(t *testing.T) {
		zc := NewAccountClient("localhost", "", testOptions(ts)...)
		err := zc.LoggedInBy("user@keyless.example.com", admin)
		assert.Equal(t, ErrDomainHasNoPreauthKey, err)
	})

	t.Run("requires_logged_in_admin", func(t *testing.T) {
		anonymous := NewAdminClient("localhost", "7071", testOptions(ts)...)
		zc := NewAccountClient("localhost", "", testOptions(ts)...)
		err := zc.LoggedInBy(testUser, anonymous)
		assert.Equal(t, ErrShouldAuthenticateFirst, err)
	})
}

func TestMkAuthToken(t *testing.T) {
	_, ts := newFixture(t)
	admin := loggedInAdmin(t, ts)

	token, err := admin.MkAuthToken(&zobjects.Account{Name: testUser}, false, 0)
	assert.NoError(t, err)
	// an HMAC-SHA1 preauth signature, hex-encoded
	assert.Len(t, token, 40)
}

func TestRequestUnexpectedResponseTag(t *testing.T) {
	// no fault, HTTP 200, but the body carries the wrong response tag:
	// the contract violation must surface as a typed error
	mock := &mockTransport{
		payload: envelope(t, "SomethingElseResponse", AdminService.Namespace, soap.Params{}),
	}
	zc := NewAdminClient("localhost", "7071", WithHTTPClient(mock))

	_, err := zc.Request("GetAccount", soap.Params{})
	var uerr *soap.UnexpectedResponseError
	assert.True(t, errors.As(err, &uerr))
	assert.Equal(t, "GetAccountResponse", uerr.Name)
	assert.Contains(t, uerr.Body, "SomethingElseResponse")
}

func TestMailClientLogin(t *testing.T) {
	_, ts := newFixture(t)

	zc := NewMailClient("localhost", "", testOptions(ts)...)
	err := zc.Login(testUser, testUserPass)
	assert.NoError(t, err)
	assert.True(t, zc.Session().IsLoggedIn())
	assert.True(t, zc.IsSessionValid())
}

func TestClientDefaults(t *testing.T) {
	admin := NewAdminClient("zimbra.example.com", "")
	assert.Equal(t, "zimbra.example.com", admin.Host())
	assert.Equal(t, "7071", admin.Port())

	mail := NewMailClient("zimbra.example.com", "")
	assert.Equal(t, "443", mail.Port())
}
