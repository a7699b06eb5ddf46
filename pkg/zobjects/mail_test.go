package zobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oasiswork/zimsoap/pkg/soap"
)

func TestTaskToCreator(t *testing.T) {
	creator := (&Task{}).ToCreator("my task", "something to do")

	m, ok := creator["m"].(soap.Params)
	assert.True(t, ok)
	assert.Equal(t, "my task", m["su"])

	comp := m["inv"].(soap.Params)["comp"].(soap.Params)
	assert.Equal(t, "my task", comp["name"])
	assert.Equal(t, "something to do", soap.Content(comp["desc"]))
	assert.Equal(t, "something to do", soap.Content(comp["fr"]))
	assert.Equal(t, "0", comp["percentComplete"])
}

func TestFilterRuleFromDict(t *testing.T) {
	d := soap.Params{
		"name":   "spam-to-trash",
		"active": "1",
		"filterTests": soap.Params{
			"condition":  "anyof",
			"headerTest": soap.Params{"header": "subject", "stringComparison": "contains", "value": "spam"},
		},
		"filterActions": soap.Params{"actionFileInto": soap.Params{"folderPath": "Trash"}},
	}
	f, err := FilterRuleFromDict(d)
	assert.NoError(t, err)
	assert.Equal(t, "spam-to-trash", f.Name)
	assert.Equal(t, "1", f.Active)
	// the raw dict survives for the whole-set resend of ModifyFilterRules
	assert.Equal(t, d, f.FullData())
}

func TestContactFromDict(t *testing.T) {
	c, err := ContactFromDict(soap.Params{
		"id": "264",
		"l":  "7",
		"a": []interface{}{
			soap.Params{"n": "lastName", "_content": "MARTIN"},
			soap.Params{"n": "email", "_content": "pmartin@example.com"},
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, "264", c.ID)
	assert.Equal(t, "7", c.FolderID)
	assert.Equal(t, "MARTIN", c.PropertyOr("lastName", ""))
}
