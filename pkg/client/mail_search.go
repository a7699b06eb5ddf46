package client

import (
	"github.com/oasiswork/zimsoap/pkg/soap"
)

// Search runs a mailbox search with the Zimbra query language (e.g.
// "in:inbox is:unread"). extra carries the optional Search attributes
// (types, limit, offset, sortBy...) and may be nil. The raw response
// dict is returned, hits under "c" for conversations or "m" for
// messages.
func (c *MailClient) Search(query string, extra soap.Params) (soap.Params, error) {
	content := soap.Params{"query": soap.Params{"_content": query}}
	for k, v := range extra {
		content[k] = v
	}
	return c.Request("Search", content)
}
