package memory

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"restaurantcore/pkg/domain"
)

// transaction represents a mutation set applied to a cloned store state.
type transaction struct {
	transactionView
	state   memoryState
	changes []domain.Change
	now     time.Time
}

// Snapshot returns a read-only view over the transactional state.
func (tx *transaction) Snapshot() domain.TransactionView {
	return newTransactionView(&tx.state)
}

// Changes returns a copy of the recorded changes.
func (tx *transaction) Changes() []domain.Change {
	return append([]domain.Change(nil), tx.changes...)
}

func (tx *transaction) recordChange(change domain.Change) {
	tx.changes = append(tx.changes, change)
}

// touch records that a surviving record was affected by another mutation so
// that its rules are evaluated again at commit.
func (tx *transaction) touch(entity domain.EntityType, id int64) {
	after, ok := tx.find(entity, id)
	if !ok {
		return
	}
	tx.recordChange(domain.Change{Entity: entity, Action: domain.ActionUpdate, ID: id, After: after})
}

func (tx *transaction) nextID(entity domain.EntityType) int64 {
	tx.state.sequences[entity]++
	return tx.state.sequences[entity]
}

func (tx *transaction) requireRef(entity domain.EntityType, field string, target domain.EntityType, id int64) error {
	if id == 0 || tx.state.exists(target, id) {
		return nil
	}
	return domain.PreconditionError{Entity: entity, Field: field, Target: target, ID: id}
}

func (tx *transaction) requireRefs(entity domain.EntityType, field string, target domain.EntityType, ids []int64) error {
	for _, id := range ids {
		if !tx.state.exists(target, id) {
			return domain.PreconditionError{Entity: entity, Field: field, Target: target, ID: id}
		}
	}
	return nil
}

// normalizeIDs dedupes and sorts a relation id list.
func normalizeIDs(ids []int64) []int64 {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}

func taken[V any](m map[int64]V, self int64, value string, key func(V) string, equal func(a, b string) bool) bool {
	if value == "" {
		return false
	}
	for id, v := range m {
		if id != self && equal(key(v), value) {
			return true
		}
	}
	return false
}

func exact(a, b string) bool { return a == b }

// replaceLinks makes the join records of parentID in rel match ids exactly.
func (tx *transaction) replaceLinks(name domain.RelationName, parentID int64, ids []int64) {
	set := tx.state.links[name]
	for link := range set {
		if link.LeftID == parentID {
			delete(set, link)
		}
	}
	for _, id := range ids {
		set[domain.Link{LeftID: parentID, RightID: id}] = struct{}{}
	}
}

// Link adds a join record to a many-to-many relation.
func (tx *transaction) Link(name domain.RelationName, parentID, childID int64) error {
	rel, err := joinRelation(name)
	if err != nil {
		return err
	}
	if !tx.state.exists(rel.Parent, parentID) {
		return domain.NotFoundError{Entity: rel.Parent, ID: parentID}
	}
	if err := tx.requireRefs(rel.Parent, string(name), rel.Child, []int64{childID}); err != nil {
		return err
	}
	link := domain.Link{LeftID: parentID, RightID: childID}
	set := tx.state.links[name]
	if _, ok := set[link]; ok {
		return nil
	}
	set[link] = struct{}{}
	tx.touch(rel.Parent, parentID)
	return nil
}

// Unlink removes a join record from a many-to-many relation.
func (tx *transaction) Unlink(name domain.RelationName, parentID, childID int64) error {
	rel, err := joinRelation(name)
	if err != nil {
		return err
	}
	if !tx.state.exists(rel.Parent, parentID) {
		return domain.NotFoundError{Entity: rel.Parent, ID: parentID}
	}
	link := domain.Link{LeftID: parentID, RightID: childID}
	set := tx.state.links[name]
	if _, ok := set[link]; !ok {
		return nil
	}
	delete(set, link)
	tx.touch(rel.Parent, parentID)
	return nil
}

func joinRelation(name domain.RelationName) (domain.Relation, error) {
	rel, ok := domain.LookupRelation(name)
	if !ok || rel.Kind != domain.ManyToMany {
		return domain.Relation{}, fmt.Errorf("relation %q is not a join relation", name)
	}
	return rel, nil
}

// deleteEntity removes a record after applying the delete policy of every
// relation it participates in. Cascades recurse; detaches clear the child's
// foreign key and mark the child for re-validation.
func (tx *transaction) deleteEntity(entity domain.EntityType, id int64) error {
	before, ok := tx.find(entity, id)
	if !ok {
		return domain.NotFoundError{Entity: entity, ID: id}
	}
	for _, rel := range domain.DependentRelations(entity) {
		if err := tx.applyDeletePolicy(rel, entity, id); err != nil {
			return err
		}
	}
	tx.state.remove(entity, id)
	tx.recordChange(domain.Change{Entity: entity, Action: domain.ActionDelete, ID: id, Before: before})
	return nil
}

func (tx *transaction) applyDeletePolicy(rel domain.Relation, entity domain.EntityType, id int64) error {
	if rel.Kind == domain.ManyToMany {
		fromChild := rel.Child == entity
		survivor := rel.Child
		if fromChild {
			survivor = rel.Parent
		}
		set := tx.state.links[rel.Name]
		for _, other := range tx.state.linked(rel.Name, id, fromChild) {
			link := domain.Link{LeftID: id, RightID: other}
			if fromChild {
				link = domain.Link{LeftID: other, RightID: id}
			}
			delete(set, link)
			tx.touch(survivor, other)
		}
		return nil
	}
	for _, childID := range tx.state.children(rel, id) {
		switch rel.Policy {
		case domain.PolicyCascade:
			if !tx.state.exists(rel.Child, childID) {
				continue
			}
			if err := tx.deleteEntity(rel.Child, childID); err != nil {
				return err
			}
		case domain.PolicySetNull:
			tx.clearReference(rel, childID)
			tx.touch(rel.Child, childID)
		default:
			return domain.ValidationError{
				Entity: entity,
				Field:  string(rel.Name),
				Reason: fmt.Sprintf("still referenced by %s %d", rel.Child, childID),
			}
		}
	}
	return nil
}

func (tx *transaction) clearReference(rel domain.Relation, childID int64) {
	switch rel.Name {
	case domain.RelDeliverDelivery:
		v := tx.state.deliveries[childID]
		v.DeliverID = 0
		v.UpdatedAt = tx.now
		tx.state.deliveries[childID] = v
	case domain.RelReservationTable:
		v := tx.state.tables[childID]
		v.ReservationID = nil
		v.UpdatedAt = tx.now
		tx.state.tables[childID] = v
	case domain.RelOrderAddress:
		v := tx.state.addresses[childID]
		v.OrderID = nil
		v.UpdatedAt = tx.now
		tx.state.addresses[childID] = v
	case domain.RelAddressOrder:
		v := tx.state.orders[childID]
		v.AddressHistoryID = 0
		v.UpdatedAt = tx.now
		tx.state.orders[childID] = v
	}
}

// attachTables points exactly the listed tables at reservationID, detaching
// tables it no longer lists. Reservations losing a table are re-validated.
func (tx *transaction) attachTables(reservationID int64, tableIDs []int64) {
	want := make(map[int64]struct{}, len(tableIDs))
	for _, id := range tableIDs {
		want[id] = struct{}{}
	}
	ids := make([]int64, 0, len(tx.state.tables))
	for id := range tx.state.tables {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		table := tx.state.tables[id]
		current := deref(table.ReservationID)
		_, wanted := want[id]
		switch {
		case wanted && current != reservationID:
			before := cloneTable(table)
			table.ReservationID = &reservationID
			table.UpdatedAt = tx.now
			tx.state.tables[id] = table
			tx.recordChange(domain.Change{Entity: domain.EntityTable, Action: domain.ActionUpdate, ID: id, Before: before, After: cloneTable(table)})
			if current != 0 {
				tx.touch(domain.EntityReservation, current)
			}
		case !wanted && current == reservationID:
			before := cloneTable(table)
			table.ReservationID = nil
			table.UpdatedAt = tx.now
			tx.state.tables[id] = table
			tx.recordChange(domain.Change{Entity: domain.EntityTable, Action: domain.ActionUpdate, ID: id, Before: before, After: cloneTable(table)})
		}
	}
}

func sameEmail(a, b string) bool { return strings.EqualFold(a, b) }
