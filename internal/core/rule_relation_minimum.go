package core

import (
	"context"
	"fmt"

	"restaurantcore/pkg/domain"
)

// relationMinimumRule rejects touched records whose relation set is smaller
// than min. size reports the committed set size of a record.
type relationMinimumRule struct {
	name     string
	entity   domain.EntityType
	min      int
	relation string
	size     func(view domain.RuleView, id int64) (int, bool)
}

func (r relationMinimumRule) Name() string { return r.name }

func (r relationMinimumRule) Evaluate(_ context.Context, view domain.RuleView, changes []domain.Change) (domain.Result, error) {
	res := domain.Result{}
	for _, id := range touched(changes, r.entity) {
		n, ok := r.size(view, id)
		if !ok || n >= r.min {
			continue
		}
		res.Violations = append(res.Violations, blocking(r.name, r.entity, id,
			fmt.Sprintf("%s %d must have at least %d %s, has %d", r.entity, id, r.min, r.relation, n)))
	}
	return res, nil
}

// RelationMinimumRules returns the minimum-cardinality rules of the schema.
func RelationMinimumRules() []domain.Rule {
	return []domain.Rule{
		relationMinimumRule{
			name:     "delivery_ingredient_minimum",
			entity:   domain.EntityDelivery,
			min:      1,
			relation: "ingredient(s)",
			size: func(v domain.RuleView, id int64) (int, bool) {
				d, ok := v.FindDelivery(id)
				return len(d.IngredientIDs), ok
			},
		},
		relationMinimumRule{
			name:     "dish_ingredient_minimum",
			entity:   domain.EntityDish,
			min:      2,
			relation: "ingredients",
			size: func(v domain.RuleView, id int64) (int, bool) {
				d, ok := v.FindDish(id)
				return len(d.IngredientIDs), ok
			},
		},
		relationMinimumRule{
			name:     "order_dish_minimum",
			entity:   domain.EntityOrder,
			min:      1,
			relation: "dish(es)",
			size: func(v domain.RuleView, id int64) (int, bool) {
				o, ok := v.FindOrder(id)
				return len(o.DishIDs), ok
			},
		},
		relationMinimumRule{
			name:     "order_employee_minimum",
			entity:   domain.EntityOrder,
			min:      2,
			relation: "restaurant employees",
			size: func(v domain.RuleView, id int64) (int, bool) {
				o, ok := v.FindOrder(id)
				return len(o.EmployeeIDs), ok
			},
		},
		relationMinimumRule{
			name:     "reservation_table_minimum",
			entity:   domain.EntityReservation,
			min:      1,
			relation: "table(s)",
			size: func(v domain.RuleView, id int64) (int, bool) {
				r, ok := v.FindReservation(id)
				return len(r.TableIDs), ok
			},
		},
	}
}
