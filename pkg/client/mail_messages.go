package client

import (
	"github.com/oasiswork/zimsoap/pkg/soap"
)

// AddMessage injects a raw RFC 822 message into a folder, given by path
// (starting with "/") or id. Returns the stored message as a dict.
func (c *MailClient) AddMessage(msgContent, folder string) (soap.Params, error) {
	resp, err := c.Request("AddMsg", soap.Params{
		"m": soap.Params{
			"l":       folder,
			"content": soap.Params{"_content": msgContent},
		},
	})
	if err != nil {
		return nil, err
	}
	m, ok := resp["m"].(soap.Params)
	if !ok {
		return nil, &soap.UnexpectedResponseError{Name: "m", Body: resp}
	}
	return m, nil
}

// GetMessage fetches one message as a raw dict.
func (c *MailClient) GetMessage(msgID string) (soap.Params, error) {
	return c.Request("GetMsg", soap.Params{"m": soap.Params{"id": msgID}})
}

// MoveMessages moves messages to another folder.
func (c *MailClient) MoveMessages(msgIDs []string, folderID string) error {
	_, err := c.Request("MsgAction", soap.Params{
		"action": soap.Params{"id": commaList(msgIDs), "op": "move", "l": folderID},
	})
	return err
}

// UpdateMessagesFlag sets the flag string of messages. Flags: u unread,
// f flagged, a has attachment, s sent by me, r replied, w forwarded,
// d draft, x deleted, n notification sent, ! high priority, ? low
// priority.
func (c *MailClient) UpdateMessagesFlag(msgIDs []string, flags string) error {
	_, err := c.Request("MsgAction", soap.Params{
		"action": soap.Params{"id": commaList(msgIDs), "op": "update", "f": flags},
	})
	return err
}

// DeleteMessages deletes messages by id.
func (c *MailClient) DeleteMessages(msgIDs []string) error {
	_, err := c.Request("MsgAction", soap.Params{
		"action": soap.Params{"id": commaList(msgIDs), "op": "delete"},
	})
	return err
}
