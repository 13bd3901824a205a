// Package storage holds the shared storage types and sentinel errors
// used by the concrete backends.
package storage

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("not found")

// Kolonne is a field work crew.
type Kolonne struct {
	ID      string  `json:"id"`
	Number  string  `json:"number"`
	Project *string `json:"project"`
}

// DailyFilter narrows daily report queries. KolonneID empty means all
// crews.
type DailyFilter struct {
	From      time.Time
	To        time.Time
	KolonneID string
}
