package client

import (
	"github.com/oasiswork/zimsoap/pkg/soap"
	"github.com/oasiswork/zimsoap/pkg/zobjects"
)

// CreateTask creates a plain-text task and returns its calendar item
// id.
func (c *MailClient) CreateTask(subject, desc string) (string, error) {
	task := &zobjects.Task{}
	resp, err := c.Request("CreateTask", task.ToCreator(subject, desc))
	if err != nil {
		return "", err
	}
	return soap.Content(resp["calItemId"]), nil
}

// GetTask retrieves one task by id; a missing task is (nil, nil).
func (c *MailClient) GetTask(taskID string) (*zobjects.Task, error) {
	resp, err := c.RequestSingle("GetTask", soap.Params{"id": taskID})
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, nil
	}
	return zobjects.TaskFromDict(resp)
}
