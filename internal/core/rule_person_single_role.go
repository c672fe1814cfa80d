package core

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"restaurantcore/pkg/domain"
)

// PersonSingleRoleRule rejects a person holding more than one of the client,
// employee and courier roles.
func PersonSingleRoleRule() domain.Rule {
	return personSingleRoleRule{}
}

type personSingleRoleRule struct{}

func (personSingleRoleRule) Name() string { return "person_single_role" }

func (r personSingleRoleRule) Evaluate(_ context.Context, view domain.RuleView, changes []domain.Change) (domain.Result, error) {
	persons := touched(changes, domain.EntityPerson)
	for _, id := range touched(changes, domain.EntityClient) {
		if v, ok := view.FindClient(id); ok {
			persons = append(persons, v.PersonID)
		}
	}
	for _, id := range touched(changes, domain.EntityRestaurantEmployee) {
		if v, ok := view.FindRestaurantEmployee(id); ok {
			persons = append(persons, v.PersonID)
		}
	}
	for _, id := range touched(changes, domain.EntityDeliver) {
		if v, ok := view.FindDeliver(id); ok {
			persons = append(persons, v.PersonID)
		}
	}
	res := domain.Result{}
	if len(persons) == 0 {
		return res, nil
	}
	slices.Sort(persons)
	persons = slices.Compact(persons)

	roles := make(map[int64][]string)
	for _, c := range view.ListClients() {
		roles[c.PersonID] = append(roles[c.PersonID], "client")
	}
	for _, e := range view.ListRestaurantEmployees() {
		roles[e.PersonID] = append(roles[e.PersonID], "restaurant employee")
	}
	for _, d := range view.ListDelivers() {
		roles[d.PersonID] = append(roles[d.PersonID], "deliver")
	}
	for _, id := range persons {
		if id == 0 || len(roles[id]) <= 1 {
			continue
		}
		res.Violations = append(res.Violations, blocking(r.Name(), domain.EntityPerson, id,
			fmt.Sprintf("person %d can only hold one role, has %s", id, strings.Join(roles[id], ", "))))
	}
	return res, nil
}
