package zobjects

import "github.com/oasiswork/zimsoap/pkg/soap"

// Contact is an address book entry; its fields (lastName, email...) are
// generic properties.
type Contact struct {
	ID       string `mapstructure:"id"`
	FolderID string `mapstructure:"l"`

	zobject
}

func (c *Contact) TagName() string { return "cn" }

func (c *Contact) selectorAttrs() []selectorAttr {
	return []selectorAttr{{"id", c.ID}}
}

func (c *Contact) entityID() string { return c.ID }

func (c *Contact) ToSelector() (soap.Params, error) { return ToSelector(c) }

func ContactFromDict(d soap.Params) (*Contact, error) {
	c := &Contact{}
	if err := decodeEntity(d, c, "n"); err != nil {
		return nil, err
	}
	return c, nil
}

// FilterRule is a sieve-like mailbox rule. Rules are always re-sent
// whole by ModifyFilterRules, so the raw wire dict is kept around.
type FilterRule struct {
	Name   string `mapstructure:"name"`
	Active string `mapstructure:"active"`

	zobject
}

func (f *FilterRule) TagName() string { return "filterRule" }

func (f *FilterRule) selectorAttrs() []selectorAttr {
	return []selectorAttr{{"name", f.Name}}
}

func (f *FilterRule) entityID() string { return "" }

func (f *FilterRule) ToSelector() (soap.Params, error) { return ToSelector(f) }

func FilterRuleFromDict(d soap.Params) (*FilterRule, error) {
	f := &FilterRule{}
	if err := decodeEntity(d, f, "name"); err != nil {
		return nil, err
	}
	return f, nil
}

// Task is a calendar task item.
type Task struct {
	ID string `mapstructure:"id"`

	zobject
}

func (t *Task) TagName() string { return "task" }

func (t *Task) selectorAttrs() []selectorAttr {
	return []selectorAttr{{"id", t.ID}}
}

func (t *Task) entityID() string { return t.ID }

func (t *Task) ToSelector() (soap.Params, error) { return ToSelector(t) }

// ToCreator returns the dict for a CreateTask request:
//
//	<CreateTaskRequest>
//	  <m su="Task subject">
//	    <inv><comp name="Task subject">
//	      <fr>Task comment</fr><desc>Task comment</desc>
//	    </comp></inv>
//	    <mp><content/></mp>
//	  </m>
//	</CreateTaskRequest>
func (t *Task) ToCreator(subject, desc string) soap.Params {
	return soap.Params{
		"m": soap.Params{
			"su": subject,
			"inv": soap.Params{
				"comp": soap.Params{
					"name":            subject,
					"fr":              soap.Params{"_content": desc},
					"desc":            soap.Params{"_content": desc},
					"percentComplete": "0",
				},
			},
			"mp": soap.Params{
				"content": soap.Params{},
			},
		},
	}
}

func TaskFromDict(d soap.Params) (*Task, error) {
	t := &Task{}
	if err := decodeEntity(d, t, "id"); err != nil {
		return nil, err
	}
	return t, nil
}
