package soap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildEnvelope(t *testing.T) {
	t.Run("anonymous", func(t *testing.T) {
		payload, err := BuildEnvelope("AuthRequest", "urn:zimbraAdmin", Params{
			"account":  Params{"by": "name", "_content": "admin@domain.tld"},
			"password": Params{"_content": "s3cret"},
		}, "")
		assert.NoError(t, err)

		s := string(payload)
		assert.Contains(t, s, `<soap:Envelope xmlns:soap="http://www.w3.org/2003/05/soap-envelope">`)
		assert.Contains(t, s, `<context xmlns="urn:zimbra">`)
		assert.Contains(t, s, `<format type="xml"/>`)
		assert.NotContains(t, s, "<authToken>")
		assert.Contains(t, s, `<AuthRequest xmlns="urn:zimbraAdmin">`)
		assert.Contains(t, s, `<account by="name">admin@domain.tld</account>`)
		assert.Contains(t, s, "<password>s3cret</password>")
	})

	t.Run("with_auth_token", func(t *testing.T) {
		payload, err := BuildEnvelope("GetAllDomainsRequest", "urn:zimbraAdmin", Params{}, "0_fd2233")
		assert.NoError(t, err)
		assert.Contains(t, string(payload), "<authToken>0_fd2233</authToken>")
	})
}

func TestParseEnvelope(t *testing.T) {
	t.Run("response_body", func(t *testing.T) {
		data := []byte(`<?xml version="1.0"?>
<soap:Envelope xmlns:soap="http://www.w3.org/2003/05/soap-envelope">
  <soap:Header><context xmlns="urn:zimbra"/></soap:Header>
  <soap:Body>
    <AuthResponse xmlns="urn:zimbraAdmin">
      <authToken>0_cafe</authToken>
      <lifetime>172800000</lifetime>
    </AuthResponse>
  </soap:Body>
</soap:Envelope>`)
		body, err := ParseEnvelope(data)
		assert.NoError(t, err)
		resp, ok := body["AuthResponse"].(Params)
		assert.True(t, ok)
		assert.Equal(t, "0_cafe", Content(resp["authToken"]))
		assert.Equal(t, "172800000", Content(resp["lifetime"]))
	})

	t.Run("fault_to_server_error", func(t *testing.T) {
		data := []byte(`<?xml version="1.0"?>
<soap:Envelope xmlns:soap="http://www.w3.org/2003/05/soap-envelope">
  <soap:Body>
    <soap:Fault>
      <soap:Reason><soap:Text>authentication failed for [admin]</soap:Text></soap:Reason>
      <soap:Detail>
        <Error xmlns="urn:zimbra">
          <Code>account.AUTH_FAILED</Code>
          <Trace>qtp509886383-36031</Trace>
        </Error>
      </soap:Detail>
    </soap:Fault>
  </soap:Body>
</soap:Envelope>`)
		_, err := ParseEnvelope(data)
		assert.Error(t, err)

		serr, ok := err.(*ServerError)
		assert.True(t, ok)
		assert.Equal(t, "account.AUTH_FAILED", serr.Code)
		assert.Equal(t, "authentication failed for [admin]", serr.Reason)
		assert.Equal(t, "qtp509886383-36031", serr.Trace)
		assert.Equal(t, "account.AUTH_FAILED: authentication failed for [admin]", serr.Error())
	})

	t.Run("not_an_envelope", func(t *testing.T) {
		_, err := ParseEnvelope([]byte("<html><body>502 Bad Gateway</body></html>"))
		assert.Error(t, err)
	})

	t.Run("no_body", func(t *testing.T) {
		_, err := ParseEnvelope([]byte(`<soap:Envelope xmlns:soap="http://www.w3.org/2003/05/soap-envelope"/>`))
		assert.Error(t, err)
	})
}
