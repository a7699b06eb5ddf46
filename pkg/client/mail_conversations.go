package client

import (
	"github.com/oasiswork/zimsoap/pkg/soap"
)

// GetConversation fetches a conversation with its messages as a raw
// dict.
func (c *MailClient) GetConversation(convID string) (soap.Params, error) {
	return c.Request("GetConv", soap.Params{"c": soap.Params{"id": convID}})
}

// DeleteConversations deletes conversations by id.
func (c *MailClient) DeleteConversations(convIDs []string) error {
	_, err := c.Request("ConvAction", soap.Params{
		"action": soap.Params{"id": commaList(convIDs), "op": "delete"},
	})
	return err
}

// MoveConversations moves conversations to another folder.
func (c *MailClient) MoveConversations(convIDs []string, folderID string) error {
	_, err := c.Request("ConvAction", soap.Params{
		"action": soap.Params{"id": commaList(convIDs), "op": "move", "l": folderID},
	})
	return err
}
