package preauth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oasiswork/zimsoap/pkg/preauth"
	"github.com/oasiswork/zimsoap/pkg/soaptest"
)

// reference values from the preauth wiki example
const (
	wikiKey     = "6b7ead4bd425836e8cf0079cd6c1a05acc127acd07c8ee4b61023e19250e929c"
	wikiAccount = "john.doe@domain.com"
	wikiTS      = 1135280708088
	wikiSig     = "b248f6cfd027edd45c5369f8490125204772f844"
)

func TestSignString(t *testing.T) {
	tests := []struct {
		name    string
		account string
		ts      int64
		expires int64
		admin   bool
		want    string
	}{
		{
			name:    "wiki_reference_vector",
			account: wikiAccount,
			ts:      wikiTS,
			expires: 0,
			admin:   false,
			want:    wikiSig,
		},
		{
			name:    "admin_flag_changes_signature",
			account: wikiAccount,
			ts:      wikiTS,
			expires: 0,
			admin:   true,
			want:    "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := preauth.SignString(wikiKey, tt.account, tt.ts, tt.expires, tt.admin)
			assert.Len(t, got, 40)
			if tt.want != "" {
				assert.Equal(t, tt.want, got)
			} else {
				assert.NotEqual(t, wikiSig, got)
			}
		})
	}
}

func TestGetPreauthToken(t *testing.T) {
	fixture := soaptest.NewServer()
	fixture.AddDomain("domain.com", wikiKey)
	fixture.AddAccount(wikiAccount, "s3cret", false)
	ts := httptest.NewServer(fixture.Router())
	defer ts.Close()

	t.Run("valid_signature_yields_token", func(t *testing.T) {
		rc := preauth.NewAccountClient("localhost", "", wikiKey)
		rc.SetBaseURL(ts.URL)
		token, err := rc.GetPreauthToken(wikiAccount, 0)
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.True(t, fixture.TokenKnown(token))
	})

	t.Run("wrong_key_is_backend_error", func(t *testing.T) {
		rc := preauth.NewAccountClient("localhost", "", "badkey")
		rc.SetBaseURL(ts.URL)
		_, err := rc.GetPreauthToken(wikiAccount, 0)
		assert.Error(t, err)
		assert.IsType(t, &preauth.BackendError{}, err)
	})

	t.Run("unknown_account_is_backend_error", func(t *testing.T) {
		rc := preauth.NewAccountClient("localhost", "", wikiKey)
		rc.SetBaseURL(ts.URL)
		_, err := rc.GetPreauthToken("nobody@domain.com", 0)
		assert.Error(t, err)
		assert.IsType(t, &preauth.BackendError{}, err)
	})

	t.Run("no_key_configured", func(t *testing.T) {
		rc := preauth.NewAccountClient("localhost", "", "")
		rc.SetBaseURL(ts.URL)
		_, err := rc.GetPreauthToken(wikiAccount, 0)
		assert.Equal(t, preauth.ErrNoPreauthKey, err)
	})

	t.Run("missing_token_cookie_is_backend_error", func(t *testing.T) {
		// a 200 answer carrying no token cookie must not pass for a
		// successful preauth
		bare := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer bare.Close()

		rc := preauth.NewAccountClient("localhost", "", wikiKey)
		rc.SetBaseURL(bare.URL)
		_, err := rc.GetPreauthToken(wikiAccount, 0)
		assert.Error(t, err)
		assert.IsType(t, &preauth.BackendError{}, err)
	})

	t.Run("unreachable_server_is_backend_error", func(t *testing.T) {
		rc := preauth.NewAccountClient("localhost", "", wikiKey)
		rc.SetBaseURL("http://127.0.0.1:1")
		_, err := rc.GetPreauthToken(wikiAccount, 0)
		assert.Error(t, err)
		assert.IsType(t, &preauth.BackendError{}, err)
	})
}
