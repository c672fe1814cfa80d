package core

import (
	"context"

	"restaurantcore/pkg/domain"
)

// CreateDish persists a dish together with its ingredient set.
func (s *Service) CreateDish(ctx context.Context, in DishInput) (domain.Dish, error) {
	return mutate(ctx, s, "dish.create", in.validate, func(tx domain.Transaction) (domain.Dish, error) {
		return tx.CreateDish(in.record())
	})
}

// UpdateDish applies patch to dish id. A non-nil ingredient list replaces the set.
func (s *Service) UpdateDish(ctx context.Context, id int64, patch DishPatch) (domain.Dish, error) {
	return mutate(ctx, s, "dish.update", patch.validate, func(tx domain.Transaction) (domain.Dish, error) {
		return tx.UpdateDish(id, func(d *domain.Dish) error {
			patch.apply(d)
			return nil
		})
	})
}

// DeleteDish removes a dish and its join rows; ingredients survive.
func (s *Service) DeleteDish(ctx context.Context, id int64) error {
	return s.run(ctx, "dish.delete", func(tx domain.Transaction) error {
		return tx.DeleteDish(id)
	})
}

func (s *Service) GetDish(ctx context.Context, id int64) (domain.Dish, error) {
	return get(ctx, s, "dish.get", domain.EntityDish, id, domain.TransactionView.FindDish)
}

func (s *Service) ListDishes(ctx context.Context) ([]domain.Dish, error) {
	return list(ctx, s, "dish.list", domain.TransactionView.ListDishes)
}

// AddDishIngredient links an ingredient to a dish.
func (s *Service) AddDishIngredient(ctx context.Context, dishID, ingredientID int64) (domain.Dish, error) {
	return s.linkDish(ctx, "dish.add_ingredient", dishID, func(tx domain.Transaction) error {
		return tx.Link(domain.RelDishIngredient, dishID, ingredientID)
	})
}

// RemoveDishIngredient unlinks an ingredient from a dish. The commit fails
// when the dish would be left with fewer than two ingredients.
func (s *Service) RemoveDishIngredient(ctx context.Context, dishID, ingredientID int64) (domain.Dish, error) {
	return s.linkDish(ctx, "dish.remove_ingredient", dishID, func(tx domain.Transaction) error {
		return tx.Unlink(domain.RelDishIngredient, dishID, ingredientID)
	})
}

func (s *Service) linkDish(ctx context.Context, op string, dishID int64, fn func(domain.Transaction) error) (domain.Dish, error) {
	return mutate(ctx, s, op, nil, func(tx domain.Transaction) (domain.Dish, error) {
		if err := fn(tx); err != nil {
			return domain.Dish{}, err
		}
		dish, _ := tx.FindDish(dishID)
		return dish, nil
	})
}

func (s *Service) CreateIngredient(ctx context.Context, in IngredientInput) (domain.Ingredient, error) {
	return mutate(ctx, s, "ingredient.create", in.validate, func(tx domain.Transaction) (domain.Ingredient, error) {
		return tx.CreateIngredient(in.record())
	})
}

func (s *Service) UpdateIngredient(ctx context.Context, id int64, patch IngredientPatch) (domain.Ingredient, error) {
	return mutate(ctx, s, "ingredient.update", patch.validate, func(tx domain.Transaction) (domain.Ingredient, error) {
		return tx.UpdateIngredient(id, func(i *domain.Ingredient) error {
			patch.apply(i)
			return nil
		})
	})
}

// DeleteIngredient removes an ingredient and every join row naming it.
// Dishes or deliveries dropping below their minimum abort the delete.
func (s *Service) DeleteIngredient(ctx context.Context, id int64) error {
	return s.run(ctx, "ingredient.delete", func(tx domain.Transaction) error {
		return tx.DeleteIngredient(id)
	})
}

func (s *Service) GetIngredient(ctx context.Context, id int64) (domain.Ingredient, error) {
	return get(ctx, s, "ingredient.get", domain.EntityIngredient, id, domain.TransactionView.FindIngredient)
}

func (s *Service) ListIngredients(ctx context.Context) ([]domain.Ingredient, error) {
	return list(ctx, s, "ingredient.list", domain.TransactionView.ListIngredients)
}

// CreateDelivery persists a delivery together with its ingredient set.
func (s *Service) CreateDelivery(ctx context.Context, in DeliveryInput) (domain.Delivery, error) {
	return mutate(ctx, s, "delivery.create", in.validate, func(tx domain.Transaction) (domain.Delivery, error) {
		return tx.CreateDelivery(in.record())
	})
}

func (s *Service) UpdateDelivery(ctx context.Context, id int64, patch DeliveryPatch) (domain.Delivery, error) {
	return mutate(ctx, s, "delivery.update", patch.validate, func(tx domain.Transaction) (domain.Delivery, error) {
		return tx.UpdateDelivery(id, func(d *domain.Delivery) error {
			patch.apply(d)
			return nil
		})
	})
}

func (s *Service) DeleteDelivery(ctx context.Context, id int64) error {
	return s.run(ctx, "delivery.delete", func(tx domain.Transaction) error {
		return tx.DeleteDelivery(id)
	})
}

func (s *Service) GetDelivery(ctx context.Context, id int64) (domain.Delivery, error) {
	return get(ctx, s, "delivery.get", domain.EntityDelivery, id, domain.TransactionView.FindDelivery)
}

func (s *Service) ListDeliveries(ctx context.Context) ([]domain.Delivery, error) {
	return list(ctx, s, "delivery.list", domain.TransactionView.ListDeliveries)
}
