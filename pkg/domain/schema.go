package domain

// RelationKind describes the cardinality shape of a relation.
type RelationKind string

// Relation shapes.
const (
	OneToMany  RelationKind = "one_to_many"
	ManyToMany RelationKind = "many_to_many"
)

// DeletePolicy is applied to dependents when the parent side of a relation is removed.
type DeletePolicy string

// Deletion policies. Restrict is part of the vocabulary but no relation uses it.
const (
	PolicyCascade  DeletePolicy = "cascade"
	PolicySetNull  DeletePolicy = "set_null"
	PolicyRestrict DeletePolicy = "restrict"
)

// RelationName identifies a relation in the schema.
type RelationName string

// Relations of the restaurant schema.
const (
	RelPersonClient       RelationName = "person_client"
	RelPersonEmployee     RelationName = "person_employee"
	RelPersonDeliver      RelationName = "person_deliver"
	RelClientAddress      RelationName = "client_address"
	RelClientOrder        RelationName = "client_order"
	RelClientReservation  RelationName = "client_reservation"
	RelEmployeeContract   RelationName = "employee_contract"
	RelDeliverDelivery    RelationName = "deliver_delivery"
	RelReservationTable   RelationName = "reservation_table"
	RelOrderAddress       RelationName = "order_address"
	RelAddressOrder       RelationName = "address_order"
	RelDishIngredient     RelationName = "dish_ingredient"
	RelDeliveryIngredient RelationName = "delivery_ingredient"
	RelOrderDish          RelationName = "order_dish"
	RelOrderEmployee      RelationName = "order_employee"
)

// Relation declares how a child entity depends on a parent. For one-to-many
// relations the child holds the foreign key named by Field. For many-to-many
// relations Parent is the left side of the join record and Child the right side;
// removing either side removes its join records.
type Relation struct {
	Name   RelationName
	Kind   RelationKind
	Parent EntityType
	Child  EntityType
	Field  string
	Policy DeletePolicy
}

var relations = []Relation{
	{Name: RelPersonClient, Kind: OneToMany, Parent: EntityPerson, Child: EntityClient, Field: "person_id", Policy: PolicyCascade},
	{Name: RelPersonEmployee, Kind: OneToMany, Parent: EntityPerson, Child: EntityRestaurantEmployee, Field: "person_id", Policy: PolicyCascade},
	{Name: RelPersonDeliver, Kind: OneToMany, Parent: EntityPerson, Child: EntityDeliver, Field: "person_id", Policy: PolicyCascade},
	{Name: RelClientAddress, Kind: OneToMany, Parent: EntityClient, Child: EntityAddressHistory, Field: "client_id", Policy: PolicyCascade},
	{Name: RelClientOrder, Kind: OneToMany, Parent: EntityClient, Child: EntityOrder, Field: "client_id", Policy: PolicyCascade},
	{Name: RelClientReservation, Kind: OneToMany, Parent: EntityClient, Child: EntityReservation, Field: "client_id", Policy: PolicyCascade},
	{Name: RelEmployeeContract, Kind: OneToMany, Parent: EntityRestaurantEmployee, Child: EntityEmploymentContract, Field: "employee_id", Policy: PolicyCascade},
	{Name: RelDeliverDelivery, Kind: OneToMany, Parent: EntityDeliver, Child: EntityDelivery, Field: "deliver_id", Policy: PolicySetNull},
	{Name: RelReservationTable, Kind: OneToMany, Parent: EntityReservation, Child: EntityTable, Field: "reservation_id", Policy: PolicySetNull},
	{Name: RelOrderAddress, Kind: OneToMany, Parent: EntityOrder, Child: EntityAddressHistory, Field: "order_id", Policy: PolicySetNull},
	{Name: RelAddressOrder, Kind: OneToMany, Parent: EntityAddressHistory, Child: EntityOrder, Field: "address_history_id", Policy: PolicySetNull},
	{Name: RelDishIngredient, Kind: ManyToMany, Parent: EntityDish, Child: EntityIngredient, Policy: PolicyCascade},
	{Name: RelDeliveryIngredient, Kind: ManyToMany, Parent: EntityDelivery, Child: EntityIngredient, Policy: PolicyCascade},
	{Name: RelOrderDish, Kind: ManyToMany, Parent: EntityOrder, Child: EntityDish, Policy: PolicyCascade},
	{Name: RelOrderEmployee, Kind: ManyToMany, Parent: EntityOrder, Child: EntityRestaurantEmployee, Policy: PolicyCascade},
}

// Relations returns the fixed relation table of the schema.
func Relations() []Relation {
	return append([]Relation(nil), relations...)
}

// LookupRelation returns the relation with the given name.
func LookupRelation(name RelationName) (Relation, bool) {
	for _, rel := range relations {
		if rel.Name == name {
			return rel, true
		}
	}
	return Relation{}, false
}

// DependentRelations returns the relations affected when an entity of type t is
// deleted: one-to-many relations where t is the parent, and many-to-many
// relations where t is on either side.
func DependentRelations(t EntityType) []Relation {
	var out []Relation
	for _, rel := range relations {
		switch rel.Kind {
		case OneToMany:
			if rel.Parent == t {
				out = append(out, rel)
			}
		case ManyToMany:
			if rel.Parent == t || rel.Child == t {
				out = append(out, rel)
			}
		}
	}
	return out
}

// JoinRelations returns the many-to-many relations in declaration order.
func JoinRelations() []Relation {
	var out []Relation
	for _, rel := range relations {
		if rel.Kind == ManyToMany {
			out = append(out, rel)
		}
	}
	return out
}
