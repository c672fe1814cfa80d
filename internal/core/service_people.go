package core

import (
	"context"

	"restaurantcore/pkg/domain"
)

// CreatePerson persists a new person. Email must be unique ignoring case.
func (s *Service) CreatePerson(ctx context.Context, in PersonInput) (domain.Person, error) {
	return mutate(ctx, s, "person.create", nil, func(tx domain.Transaction) (domain.Person, error) {
		return tx.CreatePerson(in.record())
	})
}

// UpdatePerson applies the non-nil fields of patch to person id.
func (s *Service) UpdatePerson(ctx context.Context, id int64, patch PersonPatch) (domain.Person, error) {
	return mutate(ctx, s, "person.update", nil, func(tx domain.Transaction) (domain.Person, error) {
		return tx.UpdatePerson(id, func(p *domain.Person) error {
			patch.apply(p)
			return nil
		})
	})
}

// DeletePerson removes a person together with its role record.
func (s *Service) DeletePerson(ctx context.Context, id int64) error {
	return s.run(ctx, "person.delete", func(tx domain.Transaction) error {
		return tx.DeletePerson(id)
	})
}

// GetPerson returns one person.
func (s *Service) GetPerson(ctx context.Context, id int64) (domain.Person, error) {
	return get(ctx, s, "person.get", domain.EntityPerson, id, domain.TransactionView.FindPerson)
}

// ListPersons returns every person ordered by id.
func (s *Service) ListPersons(ctx context.Context) ([]domain.Person, error) {
	return list(ctx, s, "person.list", domain.TransactionView.ListPersons)
}

// CreateClient persists the client role of an existing person.
func (s *Service) CreateClient(ctx context.Context, in ClientInput) (domain.Client, error) {
	return mutate(ctx, s, "client.create", nil, func(tx domain.Transaction) (domain.Client, error) {
		return tx.CreateClient(in.record())
	})
}

// UpdateClient applies the non-nil fields of patch to client id.
func (s *Service) UpdateClient(ctx context.Context, id int64, patch ClientPatch) (domain.Client, error) {
	return mutate(ctx, s, "client.update", nil, func(tx domain.Transaction) (domain.Client, error) {
		return tx.UpdateClient(id, func(c *domain.Client) error {
			patch.apply(c)
			return nil
		})
	})
}

// DeleteClient removes a client and cascades to its addresses, orders and
// reservations.
func (s *Service) DeleteClient(ctx context.Context, id int64) error {
	return s.run(ctx, "client.delete", func(tx domain.Transaction) error {
		return tx.DeleteClient(id)
	})
}

// GetClient returns one client.
func (s *Service) GetClient(ctx context.Context, id int64) (domain.Client, error) {
	return get(ctx, s, "client.get", domain.EntityClient, id, domain.TransactionView.FindClient)
}

// ListClients returns every client ordered by id.
func (s *Service) ListClients(ctx context.Context) ([]domain.Client, error) {
	return list(ctx, s, "client.list", domain.TransactionView.ListClients)
}

// CreateRestaurantEmployee persists the staff role of an existing person.
func (s *Service) CreateRestaurantEmployee(ctx context.Context, in RestaurantEmployeeInput) (domain.RestaurantEmployee, error) {
	return mutate(ctx, s, "restaurant_employee.create", in.validate, func(tx domain.Transaction) (domain.RestaurantEmployee, error) {
		return tx.CreateRestaurantEmployee(in.record())
	})
}

// UpdateRestaurantEmployee applies the non-nil fields of patch to employee id.
func (s *Service) UpdateRestaurantEmployee(ctx context.Context, id int64, patch RestaurantEmployeePatch) (domain.RestaurantEmployee, error) {
	return mutate(ctx, s, "restaurant_employee.update", patch.validate, func(tx domain.Transaction) (domain.RestaurantEmployee, error) {
		return tx.UpdateRestaurantEmployee(id, func(e *domain.RestaurantEmployee) error {
			patch.apply(e)
			return nil
		})
	})
}

// DeleteRestaurantEmployee removes an employee, its contracts and its order
// assignments. Orders left with fewer than two employees abort the delete.
func (s *Service) DeleteRestaurantEmployee(ctx context.Context, id int64) error {
	return s.run(ctx, "restaurant_employee.delete", func(tx domain.Transaction) error {
		return tx.DeleteRestaurantEmployee(id)
	})
}

// GetRestaurantEmployee returns one employee.
func (s *Service) GetRestaurantEmployee(ctx context.Context, id int64) (domain.RestaurantEmployee, error) {
	return get(ctx, s, "restaurant_employee.get", domain.EntityRestaurantEmployee, id, domain.TransactionView.FindRestaurantEmployee)
}

// ListRestaurantEmployees returns every employee ordered by id.
func (s *Service) ListRestaurantEmployees(ctx context.Context) ([]domain.RestaurantEmployee, error) {
	return list(ctx, s, "restaurant_employee.list", domain.TransactionView.ListRestaurantEmployees)
}

// CreateDeliver persists the courier role of an existing person.
func (s *Service) CreateDeliver(ctx context.Context, in DeliverInput) (domain.Deliver, error) {
	return mutate(ctx, s, "deliver.create", nil, func(tx domain.Transaction) (domain.Deliver, error) {
		return tx.CreateDeliver(in.record())
	})
}

// UpdateDeliver applies the non-nil fields of patch to courier id.
func (s *Service) UpdateDeliver(ctx context.Context, id int64, patch DeliverPatch) (domain.Deliver, error) {
	return mutate(ctx, s, "deliver.update", nil, func(tx domain.Transaction) (domain.Deliver, error) {
		return tx.UpdateDeliver(id, func(d *domain.Deliver) error {
			patch.apply(d)
			return nil
		})
	})
}

// DeleteDeliver removes a courier. Deliveries still assigned to it are
// detached and then rejected, so the delete only succeeds once they are gone.
func (s *Service) DeleteDeliver(ctx context.Context, id int64) error {
	return s.run(ctx, "deliver.delete", func(tx domain.Transaction) error {
		return tx.DeleteDeliver(id)
	})
}

// GetDeliver returns one courier.
func (s *Service) GetDeliver(ctx context.Context, id int64) (domain.Deliver, error) {
	return get(ctx, s, "deliver.get", domain.EntityDeliver, id, domain.TransactionView.FindDeliver)
}

// ListDelivers returns every courier ordered by id.
func (s *Service) ListDelivers(ctx context.Context) ([]domain.Deliver, error) {
	return list(ctx, s, "deliver.list", domain.TransactionView.ListDelivers)
}

// CreateEmploymentContract persists a contract for an existing employee.
func (s *Service) CreateEmploymentContract(ctx context.Context, in EmploymentContractInput) (domain.EmploymentContract, error) {
	return mutate(ctx, s, "employment_contract.create", in.validate, func(tx domain.Transaction) (domain.EmploymentContract, error) {
		return tx.CreateEmploymentContract(in.record())
	})
}

// UpdateEmploymentContract applies the non-nil fields of patch to contract id.
func (s *Service) UpdateEmploymentContract(ctx context.Context, id int64, patch EmploymentContractPatch) (domain.EmploymentContract, error) {
	return mutate(ctx, s, "employment_contract.update", patch.validate, func(tx domain.Transaction) (domain.EmploymentContract, error) {
		return tx.UpdateEmploymentContract(id, func(c *domain.EmploymentContract) error {
			patch.apply(c)
			return nil
		})
	})
}

// DeleteEmploymentContract removes a contract.
func (s *Service) DeleteEmploymentContract(ctx context.Context, id int64) error {
	return s.run(ctx, "employment_contract.delete", func(tx domain.Transaction) error {
		return tx.DeleteEmploymentContract(id)
	})
}

// GetEmploymentContract returns one contract.
func (s *Service) GetEmploymentContract(ctx context.Context, id int64) (domain.EmploymentContract, error) {
	return get(ctx, s, "employment_contract.get", domain.EntityEmploymentContract, id, domain.TransactionView.FindEmploymentContract)
}

// ListEmploymentContracts returns every contract ordered by id.
func (s *Service) ListEmploymentContracts(ctx context.Context) ([]domain.EmploymentContract, error) {
	return list(ctx, s, "employment_contract.list", domain.TransactionView.ListEmploymentContracts)
}
