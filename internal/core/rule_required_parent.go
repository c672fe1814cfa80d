package core

import (
	"context"
	"fmt"

	"restaurantcore/pkg/domain"
)

// requiredParentRule rejects touched records whose mandatory foreign key is
// unset or points at a record that no longer exists.
type requiredParentRule struct {
	name    string
	entity  domain.EntityType
	message string
	parent  func(view domain.RuleView, id int64) (int64, bool)
	exists  func(view domain.RuleView, id int64) bool
}

func (r requiredParentRule) Name() string { return r.name }

func (r requiredParentRule) Evaluate(_ context.Context, view domain.RuleView, changes []domain.Change) (domain.Result, error) {
	res := domain.Result{}
	for _, id := range touched(changes, r.entity) {
		parentID, ok := r.parent(view, id)
		if !ok {
			continue
		}
		if parentID != 0 && r.exists(view, parentID) {
			continue
		}
		res.Violations = append(res.Violations, blocking(r.name, r.entity, id, fmt.Sprintf("%s (%s %d)", r.message, r.entity, id)))
	}
	return res, nil
}

func personExists(view domain.RuleView, id int64) bool {
	_, ok := view.FindPerson(id)
	return ok
}

func clientExists(view domain.RuleView, id int64) bool {
	_, ok := view.FindClient(id)
	return ok
}

// RequiredParentRules returns the required-reference rules of the schema.
func RequiredParentRules() []domain.Rule {
	return []domain.Rule{
		requiredParentRule{
			name:    "client_person_required",
			entity:  domain.EntityClient,
			message: "a client must be associated with a person",
			parent: func(v domain.RuleView, id int64) (int64, bool) {
				c, ok := v.FindClient(id)
				return c.PersonID, ok
			},
			exists: personExists,
		},
		requiredParentRule{
			name:    "deliver_person_required",
			entity:  domain.EntityDeliver,
			message: "a deliver must be associated with a person",
			parent: func(v domain.RuleView, id int64) (int64, bool) {
				d, ok := v.FindDeliver(id)
				return d.PersonID, ok
			},
			exists: personExists,
		},
		requiredParentRule{
			name:    "employee_person_required",
			entity:  domain.EntityRestaurantEmployee,
			message: "a restaurant employee must be associated with a person",
			parent: func(v domain.RuleView, id int64) (int64, bool) {
				e, ok := v.FindRestaurantEmployee(id)
				return e.PersonID, ok
			},
			exists: personExists,
		},
		requiredParentRule{
			name:    "contract_employee_required",
			entity:  domain.EntityEmploymentContract,
			message: "an employment contract must be associated with a restaurant employee",
			parent: func(v domain.RuleView, id int64) (int64, bool) {
				c, ok := v.FindEmploymentContract(id)
				return c.EmployeeID, ok
			},
			exists: func(v domain.RuleView, id int64) bool {
				_, ok := v.FindRestaurantEmployee(id)
				return ok
			},
		},
		requiredParentRule{
			name:    "address_client_required",
			entity:  domain.EntityAddressHistory,
			message: "an address history record must be associated with a client",
			parent: func(v domain.RuleView, id int64) (int64, bool) {
				a, ok := v.FindAddressHistory(id)
				return a.ClientID, ok
			},
			exists: clientExists,
		},
		requiredParentRule{
			name:    "delivery_deliver_required",
			entity:  domain.EntityDelivery,
			message: "a delivery must have a deliver assigned",
			parent: func(v domain.RuleView, id int64) (int64, bool) {
				d, ok := v.FindDelivery(id)
				return d.DeliverID, ok
			},
			exists: func(v domain.RuleView, id int64) bool {
				_, ok := v.FindDeliver(id)
				return ok
			},
		},
		requiredParentRule{
			name:    "order_client_required",
			entity:  domain.EntityOrder,
			message: "an order must be associated with a client",
			parent: func(v domain.RuleView, id int64) (int64, bool) {
				o, ok := v.FindOrder(id)
				return o.ClientID, ok
			},
			exists: clientExists,
		},
		requiredParentRule{
			name:    "order_address_required",
			entity:  domain.EntityOrder,
			message: "an order must be associated with an address history record",
			parent: func(v domain.RuleView, id int64) (int64, bool) {
				o, ok := v.FindOrder(id)
				return o.AddressHistoryID, ok
			},
			exists: func(v domain.RuleView, id int64) bool {
				_, ok := v.FindAddressHistory(id)
				return ok
			},
		},
		requiredParentRule{
			name:    "reservation_client_required",
			entity:  domain.EntityReservation,
			message: "a reservation must be associated with a client",
			parent: func(v domain.RuleView, id int64) (int64, bool) {
				r, ok := v.FindReservation(id)
				return r.ClientID, ok
			},
			exists: clientExists,
		},
	}
}
