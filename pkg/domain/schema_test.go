package domain

import "testing"

func TestRelationsCoverSchema(t *testing.T) {
	rels := Relations()
	if len(rels) != 15 {
		t.Fatalf("expected 15 relations, got %d", len(rels))
	}
	seen := make(map[RelationName]struct{}, len(rels))
	for _, rel := range rels {
		if _, dup := seen[rel.Name]; dup {
			t.Fatalf("duplicate relation %s", rel.Name)
		}
		seen[rel.Name] = struct{}{}
		if rel.Policy == PolicyRestrict {
			t.Fatalf("relation %s unexpectedly restricts", rel.Name)
		}
		if rel.Kind == OneToMany && rel.Field == "" {
			t.Fatalf("relation %s missing foreign key field", rel.Name)
		}
	}
	rels[0].Policy = PolicyRestrict
	if Relations()[0].Policy == PolicyRestrict {
		t.Fatalf("Relations must return a copy")
	}
}

func TestLookupRelation(t *testing.T) {
	rel, ok := LookupRelation(RelDeliverDelivery)
	if !ok {
		t.Fatalf("expected deliver_delivery relation")
	}
	if rel.Policy != PolicySetNull || rel.Child != EntityDelivery || rel.Field != "deliver_id" {
		t.Fatalf("unexpected relation: %+v", rel)
	}
	if _, ok := LookupRelation("missing"); ok {
		t.Fatalf("expected unknown relation lookup to fail")
	}
}

func TestDependentRelations(t *testing.T) {
	cases := map[EntityType][]RelationName{
		EntityPerson:             {RelPersonClient, RelPersonEmployee, RelPersonDeliver},
		EntityClient:             {RelClientAddress, RelClientOrder, RelClientReservation},
		EntityRestaurantEmployee: {RelEmployeeContract, RelOrderEmployee},
		EntityIngredient:         {RelDishIngredient, RelDeliveryIngredient},
		EntityOrder:              {RelOrderAddress, RelOrderDish, RelOrderEmployee},
		EntityDish:               {RelDishIngredient, RelOrderDish},
		EntityTable:              nil,
		EntityEmploymentContract: nil,
	}
	for entity, want := range cases {
		got := DependentRelations(entity)
		if len(got) != len(want) {
			t.Fatalf("%s: expected %d relations, got %+v", entity, len(want), got)
		}
		for i, rel := range got {
			if rel.Name != want[i] {
				t.Fatalf("%s: expected %s at %d, got %s", entity, want[i], i, rel.Name)
			}
		}
	}
}

func TestJoinRelations(t *testing.T) {
	joins := JoinRelations()
	if len(joins) != 4 {
		t.Fatalf("expected 4 join relations, got %d", len(joins))
	}
	for _, rel := range joins {
		if rel.Policy != PolicyCascade {
			t.Fatalf("join relation %s must cascade", rel.Name)
		}
	}
}
