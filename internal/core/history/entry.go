package history

import "time"

// Limit is the maximum number of entries kept.
const Limit = 5

// Key is the single kv key holding the serialized list.
const Key = "qrHistory"

// Entry is one prior successful generation.
type Entry struct {
	ID        string    `json:"id,omitempty"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// List is ordered most-recent-first.
type List []Entry

// Texts returns the entry texts in list order.
func (l List) Texts() []string {
	out := make([]string, len(l))
	for i, e := range l {
		out[i] = e.Text
	}
	return out
}

// prepend returns a new list with e at the front, truncated to limit.
func (l List) prepend(e Entry, limit int) List {
	n := len(l) + 1
	if n > limit {
		n = limit
	}
	out := make(List, 0, n)
	out = append(out, e)
	for _, old := range l {
		if len(out) == n {
			break
		}
		out = append(out, old)
	}
	return out
}
