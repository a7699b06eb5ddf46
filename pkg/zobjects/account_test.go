package zobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oasiswork/zimsoap/pkg/soap"
)

func TestSignatureToCreator(t *testing.T) {
	t.Run("create_with_plain_content", func(t *testing.T) {
		s := &Signature{Name: "unittest"}
		s.SetContent("my signature", "text/plain")
		creator, err := s.ToCreator(false)
		assert.NoError(t, err)
		assert.Equal(t, "unittest", creator["name"])

		contents, ok := creator["content"].([]interface{})
		assert.True(t, ok)
		assert.Equal(t, soap.Params{"type": "text/plain", "_content": "my signature"}, contents[0])
		// the other MIME type goes out empty so no stale body survives
		assert.Equal(t, soap.Params{"type": "text/html", "_content": ""}, contents[1])
	})

	t.Run("create_without_content_fails", func(t *testing.T) {
		_, err := (&Signature{Name: "unittest"}).ToCreator(false)
		assert.Error(t, err)
	})

	t.Run("modify_requires_id", func(t *testing.T) {
		_, err := (&Signature{Name: "unittest"}).ToCreator(true)
		assert.Error(t, err)
	})

	t.Run("modify_without_content_is_a_selector", func(t *testing.T) {
		creator, err := (&Signature{ID: uuidA}).ToCreator(true)
		assert.NoError(t, err)
		assert.Equal(t, uuidA, creator["id"])
		assert.NotContains(t, creator, "content")
	})
}

func TestSignatureFromDict(t *testing.T) {
	d := soap.Params{
		"id":   uuidA,
		"name": "unittest",
		"content": []interface{}{
			soap.Params{"type": "text/plain", "_content": ""},
			soap.Params{"type": "text/html", "_content": "<b>hello</b>"},
		},
	}
	s, err := SignatureFromDict(d)
	assert.NoError(t, err)
	assert.Equal(t, uuidA, s.ID)
	assert.Equal(t, "unittest", s.Name)
	assert.Equal(t, "<b>hello</b>", s.Content)
	assert.Equal(t, "text/html", s.ContentType)
	assert.NotContains(t, s.Extra(), "content")
}

func TestSignatureRoundTrip(t *testing.T) {
	s := &Signature{Name: "unittest"}
	s.SetContent("<b>hello</b>", "text/html")
	creator, err := s.ToCreator(false)
	assert.NoError(t, err)

	parsed, err := SignatureFromDict(creator)
	assert.NoError(t, err)
	assert.Equal(t, s.Name, parsed.Name)
	assert.Equal(t, s.Content, parsed.Content)
	assert.Equal(t, s.ContentType, parsed.ContentType)
}

func TestIdentity(t *testing.T) {
	d := soap.Params{
		"id":   uuidA,
		"name": "DEFAULT",
		"a": []interface{}{
			soap.Params{"name": "zimbraPrefFromAddress", "_content": "jdoe@x.tld"},
		},
	}
	i, err := IdentityFromDict(d)
	assert.NoError(t, err)
	assert.True(t, i.IsDefault())
	assert.Equal(t, "jdoe@x.tld", i.PropertyOr("zimbraPrefFromAddress", ""))
}

func TestAccountDomainAndLoginPart(t *testing.T) {
	a := &Account{Name: "jdoe@domain.tld"}

	domain, err := a.Domain()
	assert.NoError(t, err)
	assert.Equal(t, "domain.tld", domain.Name)

	login, err := a.LoginPart()
	assert.NoError(t, err)
	assert.Equal(t, "jdoe", login)

	bare := &Account{Name: "jdoe"}
	_, err = bare.Domain()
	assert.Equal(t, ErrNotEnoughInformation, err)
	_, err = bare.LoginPart()
	assert.Equal(t, ErrNotEnoughInformation, err)
}
