package client

import (
	"github.com/oasiswork/zimsoap/pkg/soap"
)

// ResetRanking empties the contact ranking table driving address
// auto-completion.
func (c *MailClient) ResetRanking() error {
	_, err := c.Request("RankingAction", soap.Params{
		"action": soap.Params{"op": "reset"},
	})
	return err
}

// DeleteRankingEntry removes one address from the auto-completion
// ranking.
func (c *MailClient) DeleteRankingEntry(email string) error {
	_, err := c.Request("RankingAction", soap.Params{
		"action": soap.Params{"op": "delete", "email": email},
	})
	return err
}
