package models

// DataItem is a quantity exchanged between the activities of a composite workflow.
type DataItem struct {
	ID       string   `json:"id"        validate:"required"`
	Owner    string   `json:"owner"     validate:"required"` // Activity owning the item
	LinkedTo []string `json:"linked_to"`                     // Items this item takes its value from
	LinkedBy []string `json:"linked_by"`                     // Items taking their value from this item
}

// Coupling is a snapshot of the composite workflow a model takes part in.
type Coupling struct {
	DataItems    []DataItem `json:"data_items"`
	Simultaneous []string   `json:"simultaneous"` // Activities running in the same composite workflow
}

// DataItemsOwnedBy returns the IDs of the items owned by the activity.
func (c *Coupling) DataItemsOwnedBy(activity string) []string {
	var ids []string

	for _, item := range c.DataItems {
		if item.Owner == activity {
			ids = append(ids, item.ID)
		}
	}

	return ids
}

// LinkedTo returns the items the given item takes its value from.
func (c *Coupling) LinkedTo(item string) []string {
	if di, ok := c.item(item); ok {
		return di.LinkedTo
	}

	return nil
}

// LinkedBy returns the items taking their value from the given item.
func (c *Coupling) LinkedBy(item string) []string {
	if di, ok := c.item(item); ok {
		return di.LinkedBy
	}

	return nil
}

// Owner returns the activity owning the item.
func (c *Coupling) Owner(item string) (string, bool) {
	di, ok := c.item(item)
	if !ok {
		return "", false
	}

	return di.Owner, true
}

// SimultaneousActivities returns the activities run together with the model.
func (c *Coupling) SimultaneousActivities() []string {
	return c.Simultaneous
}

// Link connects two items in both directions: to takes its value from from.
func (c *Coupling) Link(from, to string) {
	for i := range c.DataItems {
		switch c.DataItems[i].ID {
		case from:
			c.DataItems[i].LinkedBy = append(c.DataItems[i].LinkedBy, to)
		case to:
			c.DataItems[i].LinkedTo = append(c.DataItems[i].LinkedTo, from)
		}
	}
}

func (c *Coupling) item(id string) (DataItem, bool) {
	for _, di := range c.DataItems {
		if di.ID == id {
			return di, true
		}
	}

	return DataItem{}, false
}
