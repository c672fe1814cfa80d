package core

import (
	"context"

	"restaurantcore/pkg/domain"
)

// CreateOrder persists an order with its dish and employee sets. The client
// and address must already exist.
func (s *Service) CreateOrder(ctx context.Context, in OrderInput) (domain.Order, error) {
	return mutate(ctx, s, "order.create", in.validate, func(tx domain.Transaction) (domain.Order, error) {
		return tx.CreateOrder(in.record())
	})
}

// UpdateOrder applies patch to order id. Non-nil dish and employee lists
// replace the corresponding sets.
func (s *Service) UpdateOrder(ctx context.Context, id int64, patch OrderPatch) (domain.Order, error) {
	return mutate(ctx, s, "order.update", patch.validate, func(tx domain.Transaction) (domain.Order, error) {
		return tx.UpdateOrder(id, func(o *domain.Order) error {
			patch.apply(o)
			return nil
		})
	})
}

// DeleteOrder removes an order, its join rows and the order reference held by
// its address.
func (s *Service) DeleteOrder(ctx context.Context, id int64) error {
	return s.run(ctx, "order.delete", func(tx domain.Transaction) error {
		return tx.DeleteOrder(id)
	})
}

func (s *Service) GetOrder(ctx context.Context, id int64) (domain.Order, error) {
	return get(ctx, s, "order.get", domain.EntityOrder, id, domain.TransactionView.FindOrder)
}

func (s *Service) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return list(ctx, s, "order.list", domain.TransactionView.ListOrders)
}

// AddOrderEmployee assigns an employee to an order.
func (s *Service) AddOrderEmployee(ctx context.Context, orderID, employeeID int64) (domain.Order, error) {
	return s.linkOrder(ctx, "order.add_employee", orderID, func(tx domain.Transaction) error {
		return tx.Link(domain.RelOrderEmployee, orderID, employeeID)
	})
}

// RemoveOrderEmployee unassigns an employee. The commit fails when the order
// would be left with fewer than two employees.
func (s *Service) RemoveOrderEmployee(ctx context.Context, orderID, employeeID int64) (domain.Order, error) {
	return s.linkOrder(ctx, "order.remove_employee", orderID, func(tx domain.Transaction) error {
		return tx.Unlink(domain.RelOrderEmployee, orderID, employeeID)
	})
}

func (s *Service) linkOrder(ctx context.Context, op string, orderID int64, fn func(domain.Transaction) error) (domain.Order, error) {
	return mutate(ctx, s, op, nil, func(tx domain.Transaction) (domain.Order, error) {
		if err := fn(tx); err != nil {
			return domain.Order{}, err
		}
		order, _ := tx.FindOrder(orderID)
		return order, nil
	})
}

func (s *Service) CreateAddressHistory(ctx context.Context, in AddressHistoryInput) (domain.AddressHistory, error) {
	return mutate(ctx, s, "address_history.create", nil, func(tx domain.Transaction) (domain.AddressHistory, error) {
		return tx.CreateAddressHistory(in.record())
	})
}

func (s *Service) UpdateAddressHistory(ctx context.Context, id int64, patch AddressHistoryPatch) (domain.AddressHistory, error) {
	return mutate(ctx, s, "address_history.update", nil, func(tx domain.Transaction) (domain.AddressHistory, error) {
		return tx.UpdateAddressHistory(id, func(a *domain.AddressHistory) error {
			patch.apply(a)
			return nil
		})
	})
}

// DeleteAddressHistory removes an address. Orders still pointing at it lose
// their required address, so the delete is rejected while they exist.
func (s *Service) DeleteAddressHistory(ctx context.Context, id int64) error {
	return s.run(ctx, "address_history.delete", func(tx domain.Transaction) error {
		return tx.DeleteAddressHistory(id)
	})
}

func (s *Service) GetAddressHistory(ctx context.Context, id int64) (domain.AddressHistory, error) {
	return get(ctx, s, "address_history.get", domain.EntityAddressHistory, id, domain.TransactionView.FindAddressHistory)
}

func (s *Service) ListAddressHistories(ctx context.Context) ([]domain.AddressHistory, error) {
	return list(ctx, s, "address_history.list", domain.TransactionView.ListAddressHistories)
}

// CreateReservation persists a reservation and points the listed tables at it.
func (s *Service) CreateReservation(ctx context.Context, in ReservationInput) (domain.Reservation, error) {
	return mutate(ctx, s, "reservation.create", in.validate, func(tx domain.Transaction) (domain.Reservation, error) {
		return tx.CreateReservation(in.record())
	})
}

func (s *Service) UpdateReservation(ctx context.Context, id int64, patch ReservationPatch) (domain.Reservation, error) {
	return mutate(ctx, s, "reservation.update", patch.validate, func(tx domain.Transaction) (domain.Reservation, error) {
		return tx.UpdateReservation(id, func(r *domain.Reservation) error {
			patch.apply(r)
			return nil
		})
	})
}

// DeleteReservation removes a reservation and frees its tables.
func (s *Service) DeleteReservation(ctx context.Context, id int64) error {
	return s.run(ctx, "reservation.delete", func(tx domain.Transaction) error {
		return tx.DeleteReservation(id)
	})
}

func (s *Service) GetReservation(ctx context.Context, id int64) (domain.Reservation, error) {
	return get(ctx, s, "reservation.get", domain.EntityReservation, id, domain.TransactionView.FindReservation)
}

func (s *Service) ListReservations(ctx context.Context) ([]domain.Reservation, error) {
	return list(ctx, s, "reservation.list", domain.TransactionView.ListReservations)
}

func (s *Service) CreateTable(ctx context.Context, in TableInput) (domain.Table, error) {
	return mutate(ctx, s, "table.create", in.validate, func(tx domain.Transaction) (domain.Table, error) {
		return tx.CreateTable(in.record())
	})
}

func (s *Service) UpdateTable(ctx context.Context, id int64, patch TablePatch) (domain.Table, error) {
	return mutate(ctx, s, "table.update", nil, func(tx domain.Transaction) (domain.Table, error) {
		return tx.UpdateTable(id, func(t *domain.Table) error {
			patch.apply(t)
			return nil
		})
	})
}

// DeleteTable removes a table. A reservation left without tables aborts the delete.
func (s *Service) DeleteTable(ctx context.Context, id int64) error {
	return s.run(ctx, "table.delete", func(tx domain.Transaction) error {
		return tx.DeleteTable(id)
	})
}

func (s *Service) GetTable(ctx context.Context, id int64) (domain.Table, error) {
	return get(ctx, s, "table.get", domain.EntityTable, id, domain.TransactionView.FindTable)
}

func (s *Service) ListTables(ctx context.Context) ([]domain.Table, error) {
	return list(ctx, s, "table.list", domain.TransactionView.ListTables)
}
