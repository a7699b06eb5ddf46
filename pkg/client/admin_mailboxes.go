package client

import (
	"github.com/oasiswork/zimsoap/pkg/soap"
	"github.com/oasiswork/zimsoap/pkg/zobjects"
)

// MailboxStats is the store-wide aggregate returned by
// GetMailboxStats.
type MailboxStats struct {
	NumMboxes int
	TotalSize int64
}

// GetAllMailboxes lists the store metadata of every mailbox.
func (c *AdminClient) GetAllMailboxes() ([]*zobjects.Mailbox, error) {
	dicts, err := c.RequestList("GetAllMailboxes", soap.Params{})
	if err != nil {
		return nil, err
	}
	mailboxes := make([]*zobjects.Mailbox, 0, len(dicts))
	for _, d := range dicts {
		m, err := zobjects.MailboxFromDict(d)
		if err != nil {
			return nil, err
		}
		mailboxes = append(mailboxes, m)
	}
	return mailboxes, nil
}

// GetMailboxStats returns the mailbox count and cumulated size of the
// whole install.
func (c *AdminClient) GetMailboxStats() (*MailboxStats, error) {
	resp, err := c.RequestSingle("GetMailboxStats", soap.Params{})
	if err != nil {
		return nil, err
	}
	stats := &MailboxStats{}
	if n, ok := soap.AutoType(resp["numMboxes"]).(int); ok {
		stats.NumMboxes = n
	}
	switch s := soap.AutoType(resp["totalSize"]).(type) {
	case int:
		stats.TotalSize = int64(s)
	case float64:
		stats.TotalSize = int64(s)
	}
	return stats, nil
}
