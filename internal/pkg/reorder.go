package pkg

import (
	"strconv"
)

// ReorderItem assigns an explicit position to one record.
type ReorderItem struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}

// ReorderRequest accepts either an ordered id list, where each id's index
// becomes its position, or explicit id/order pairs.
type ReorderRequest struct {
	IDs   []string      `json:"ids"`
	Items []ReorderItem `json:"items"`
}

// Validate implements Validator.
func (r *ReorderRequest) Validate() error {
	c := NewChecker()
	switch {
	case len(r.IDs) == 0 && len(r.Items) == 0:
		c.Add("ids", "This field is required")
	case len(r.IDs) > 0 && len(r.Items) > 0:
		c.Add("ids", "Send either ids or items, not both")
	}
	seen := make(map[string]struct{})
	for i, id := range r.IDs {
		c.Check("ids["+strconv.Itoa(i)+"]", id, "required,uuid")
		if _, dup := seen[id]; dup {
			c.Add("ids", "Contains duplicate id "+id)
		}
		seen[id] = struct{}{}
	}
	for i, it := range r.Items {
		c.Check("items["+strconv.Itoa(i)+"].id", it.ID, "required,uuid")
		c.Check("items["+strconv.Itoa(i)+"].order", it.Order, "gte=0")
		if _, dup := seen[it.ID]; dup {
			c.Add("items", "Contains duplicate id "+it.ID)
		}
		seen[it.ID] = struct{}{}
	}
	return c.Err()
}

// Positions normalizes the request into id/order pairs.
func (r *ReorderRequest) Positions() []ReorderItem {
	if len(r.Items) > 0 {
		return r.Items
	}
	out := make([]ReorderItem, len(r.IDs))
	for i, id := range r.IDs {
		out[i] = ReorderItem{ID: id, Order: i}
	}
	return out
}
