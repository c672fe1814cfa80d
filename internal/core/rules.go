package core

import (
	"context"
	"slices"

	"restaurantcore/pkg/domain"
)

// NewDefaultRulesEngine builds a rules engine with the built-in restaurant invariants.
func NewDefaultRulesEngine() *domain.RulesEngine {
	engine := domain.NewRulesEngine()
	for _, rule := range DefaultRules() {
		engine.Register(rule)
	}
	return engine
}

// DefaultRules returns one rule per schema invariant in evaluation order.
func DefaultRules() []domain.Rule {
	rules := []domain.Rule{PersonSingleRoleRule()}
	rules = append(rules, RequiredParentRules()...)
	return append(rules, RelationMinimumRules()...)
}

// CheckEntity evaluates the engine against a single record as if it had just
// been written. It lets callers holding a view ask whether a record in its
// current state would be accepted at commit.
func CheckEntity(ctx context.Context, engine *domain.RulesEngine, view domain.RuleView, entity domain.EntityType, id int64) (domain.Result, error) {
	if engine == nil {
		return domain.Result{}, nil
	}
	return engine.Evaluate(ctx, view, []domain.Change{{Entity: entity, Action: domain.ActionUpdate, ID: id}})
}

// touched returns the sorted ids of surviving records of entity that the
// change set created or modified.
func touched(changes []domain.Change, entity domain.EntityType) []int64 {
	var ids []int64
	deleted := make(map[int64]bool)
	for _, change := range changes {
		if change.Entity != entity {
			continue
		}
		if change.Action == domain.ActionDelete {
			deleted[change.ID] = true
			continue
		}
		ids = append(ids, change.ID)
	}
	slices.Sort(ids)
	ids = slices.Compact(ids)
	return slices.DeleteFunc(ids, func(id int64) bool { return deleted[id] })
}

func blocking(rule string, entity domain.EntityType, id int64, message string) domain.Violation {
	return domain.Violation{
		Rule:     rule,
		Severity: domain.SeverityBlock,
		Message:  message,
		Entity:   entity,
		EntityID: id,
	}
}
