package core

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"restaurantcore/pkg/domain"
)

// ChangeEvent announces one committed mutation.
type ChangeEvent struct {
	ID         string            `json:"id"`
	Entity     domain.EntityType `json:"entity"`
	Action     domain.Action     `json:"action"`
	EntityID   int64             `json:"entity_id"`
	OccurredAt time.Time         `json:"occurred_at"`
}

func (e ChangeEvent) encode() ([]byte, error) {
	return json.Marshal(e)
}

type eventKey struct {
	entity domain.EntityType
	id     int64
}

var actionWeight = map[domain.Action]int{
	domain.ActionUpdate: 0,
	domain.ActionCreate: 1,
	domain.ActionDelete: 2,
}

// changeEvents collapses a change set to one event per record in order of
// first appearance. Delete outranks create, which outranks update.
func changeEvents(changes []domain.Change, at time.Time) []ChangeEvent {
	var order []eventKey
	actions := make(map[eventKey]domain.Action, len(changes))
	for _, change := range changes {
		key := eventKey{entity: change.Entity, id: change.ID}
		current, seen := actions[key]
		if !seen {
			order = append(order, key)
			actions[key] = change.Action
			continue
		}
		if actionWeight[change.Action] > actionWeight[current] {
			actions[key] = change.Action
		}
	}
	events := make([]ChangeEvent, 0, len(order))
	for _, key := range order {
		events = append(events, ChangeEvent{
			ID:         uuid.NewString(),
			Entity:     key.entity,
			Action:     actions[key],
			EntityID:   key.id,
			OccurredAt: at.UTC(),
		})
	}
	return events
}
