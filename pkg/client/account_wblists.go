package client

import (
	"github.com/oasiswork/zimsoap/pkg/soap"
)

// WhiteBlackLists is the anti-spam address book of an account.
type WhiteBlackLists struct {
	WhiteList []string
	BlackList []string
}

// GetWhiteBlackLists fetches the white and black sender lists of the
// logged-in user.
func (c *AccountClient) GetWhiteBlackLists() (*WhiteBlackLists, error) {
	resp, err := c.Request("GetWhiteBlackList", soap.Params{})
	if err != nil {
		return nil, err
	}
	return &WhiteBlackLists{
		WhiteList: addrContents(resp["whiteList"]),
		BlackList: addrContents(resp["blackList"]),
	}, nil
}

// AddToWhiteList adds sender addresses to the white list.
func (c *AccountClient) AddToWhiteList(addrs []string) error {
	return c.modifyWBList("whiteList", "+", addrs)
}

// RemoveFromWhiteList removes sender addresses from the white list.
func (c *AccountClient) RemoveFromWhiteList(addrs []string) error {
	return c.modifyWBList("whiteList", "-", addrs)
}

// AddToBlackList adds sender addresses to the black list.
func (c *AccountClient) AddToBlackList(addrs []string) error {
	return c.modifyWBList("blackList", "+", addrs)
}

// RemoveFromBlackList removes sender addresses from the black list.
func (c *AccountClient) RemoveFromBlackList(addrs []string) error {
	return c.modifyWBList("blackList", "-", addrs)
}

func (c *AccountClient) modifyWBList(list, op string, addrs []string) error {
	tags := make([]interface{}, 0, len(addrs))
	for _, addr := range addrs {
		tags = append(tags, soap.Params{"op": op, "_content": addr})
	}
	_, err := c.Request("ModifyWhiteBlackList", soap.Params{
		list: soap.Params{"addr": tags},
	})
	return err
}

func addrContents(v interface{}) []string {
	list, ok := v.(soap.Params)
	if !ok {
		return nil
	}
	var out []string
	for _, addr := range soap.AsList(list["addr"]) {
		if s := soap.Content(addr); s != "" {
			out = append(out, s)
		}
	}
	return out
}
