// Package events defines the domain events exchanged between modules over
// the in-memory bus.
package events

import (
	"github.com/google/uuid"

	"panelbom_backend/platform/events"
	"panelbom_backend/platform/money"
)

// QuotationIssued is published after a quotation has been computed and
// persisted. The notification module emails a summary when a customer
// email is present.
type QuotationIssued struct {
	events.BaseEvent
	QuotationID   uuid.UUID
	CustomerName  string
	CustomerEmail string
	Status        string
	Total         money.Cents
	Currency      string
}

// EventName returns the event identifier.
func (QuotationIssued) EventName() string { return "quotation.issued" }

// CatalogRefreshed is published when a refresh swapped in a new snapshot.
type CatalogRefreshed struct {
	events.BaseEvent
	Version     string
	Fingerprint string
	Products    int
	Accessories int
}

// EventName returns the event identifier.
func (CatalogRefreshed) EventName() string { return "catalog.refreshed" }
