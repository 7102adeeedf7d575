// Package statuses is the fixed lookup of named states shared by users,
// reviews and issues. The ids match the rows seeded into the statuses table.
package statuses

import (
	"fmt"
	"strings"
)

type ID int16

const (
	Active ID = iota + 1
	Suspended
	Banned
	Pending
	Approved
	Rejected
	RecheckRequested
	Resolved
	InProgress
)

var names = map[ID]string{
	Active:           "active",
	Suspended:        "suspended",
	Banned:           "banned",
	Pending:          "pending",
	Approved:         "approved",
	Rejected:         "rejected",
	RecheckRequested: "recheck_requested",
	Resolved:         "resolved",
	InProgress:       "in_progress",
}

type Status struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

func (id ID) String() string {
	if n, ok := names[id]; ok {
		return n
	}
	return fmt.Sprintf("status(%d)", int16(id))
}

func (id ID) Valid() bool {
	_, ok := names[id]
	return ok
}

// Parse accepts snake_case, CamelCase or spaced names, case-insensitively.
func Parse(name string) (ID, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(key)
	for id, n := range names {
		if strings.ReplaceAll(n, "_", "") == key {
			return id, nil
		}
	}
	return 0, fmt.Errorf("unknown status %q", name)
}

// All returns every status ordered by id.
func All() []Status {
	out := make([]Status, 0, len(names))
	for id := Active; id <= InProgress; id++ {
		out = append(out, Status{ID: id, Name: names[id]})
	}
	return out
}

// ReviewStatuses are the states a review may be in.
func ReviewStatuses() []ID {
	return []ID{Pending, Approved, Rejected, RecheckRequested}
}
