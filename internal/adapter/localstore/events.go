package localstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/threadline/storefront/internal/core/domain"
	"github.com/threadline/storefront/internal/core/port"
)

const eventsKey = "events"

type eventRecord struct {
	EventID   string    `json:"event_id"`
	Kind      string    `json:"kind"`
	ProductID string    `json:"product_id,omitempty"`
	Quantity  int       `json:"quantity,omitempty"`
	At        time.Time `json:"at"`
}

var _ port.EventSink = EventJournal{}

// EventJournal appends one JSON line per session event, the durable
// trace behind the storefront's toast confirmations.
type EventJournal struct {
	store Store
}

func NewEventJournal(store Store) EventJournal {
	return EventJournal{store}
}

func (j EventJournal) Record(ctx context.Context, evt domain.SessionEvent) error {
	const op = "EventJournal.Record"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	rec := eventRecord{
		EventID:   uuid.NewString(),
		Kind:      string(evt.Kind),
		ProductID: evt.ProductID,
		Quantity:  evt.Quantity,
		At:        evt.At,
	}

	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := j.store.Append(eventsKey, b); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
