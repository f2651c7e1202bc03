package analyzer

import (
	"strings"

	"github.com/ppiankov/riskspectre/internal/inventory"
)

// AllowList restricts analysis to a set of identifiers. The zero value is
// disabled and admits everything.
type AllowList struct {
	ids map[string]struct{}
}

// AllowAll returns a disabled allow-list.
func AllowAll() AllowList {
	return AllowList{}
}

// NewAllowList builds an allow-list from ids. Entries are trimmed and blank
// entries are skipped; if nothing remains the list is disabled.
func NewAllowList(ids []string) AllowList {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		set[id] = struct{}{}
	}
	if len(set) == 0 {
		return AllowAll()
	}
	return AllowList{ids: set}
}

// Enabled reports whether the list restricts anything.
func (a AllowList) Enabled() bool {
	return a.ids != nil
}

// Len returns the number of allowed identifiers.
func (a AllowList) Len() int {
	return len(a.ids)
}

// Allowed reports whether identifier passes the list. Matching is exact after
// trimming surrounding whitespace.
func (a AllowList) Allowed(identifier string) bool {
	if !a.Enabled() {
		return true
	}
	_, ok := a.ids[strings.TrimSpace(identifier)]
	return ok
}

// Filter returns the records whose identifier is allowed, in input order.
func (a AllowList) Filter(records []inventory.Record) []inventory.Record {
	if !a.Enabled() {
		return records
	}
	out := make([]inventory.Record, 0, len(records))
	for _, r := range records {
		if a.Allowed(r.Identifier) {
			out = append(out, r)
		}
	}
	return out
}
