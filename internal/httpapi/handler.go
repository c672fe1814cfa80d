// Package httpapi exposes the restaurant service over a JSON REST API.
package httpapi

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"restaurantcore/internal/core"
	"restaurantcore/internal/entitymodel"
)

// Handler routes API requests to a core.Service.
type Handler struct {
	svc     *core.Service
	logger  *zap.SugaredLogger
	metrics prometheus.Gatherer
	now     func() time.Time
}

type Option func(*Handler)

func WithLogger(logger *zap.SugaredLogger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithMetrics serves gatherer on /metrics.
func WithMetrics(gatherer prometheus.Gatherer) Option {
	return func(h *Handler) { h.metrics = gatherer }
}

func New(svc *core.Service, opts ...Option) *Handler {
	h := &Handler{svc: svc, logger: zap.NewNop().Sugar(), now: time.Now}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes builds the router.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog(h.logger))
	r.Use(middleware.Recoverer)

	if h.metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(h.metrics, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", h.healthCheckHandler)
		r.Handle("/schema", entitymodel.NewCatalogHandler())

		svc := h.svc
		r.Route("/person", crud(h, svc.ListPersons, svc.GetPerson, svc.GetPersonWithRelations,
			svc.CreatePerson, svc.UpdatePerson, svc.DeletePerson))
		r.Route("/client", crud(h, svc.ListClients, svc.GetClient, svc.GetClientWithRelations,
			svc.CreateClient, svc.UpdateClient, svc.DeleteClient))
		r.Route("/restaurant-employee", crud(h, svc.ListRestaurantEmployees, svc.GetRestaurantEmployee, svc.GetRestaurantEmployeeWithRelations,
			svc.CreateRestaurantEmployee, svc.UpdateRestaurantEmployee, svc.DeleteRestaurantEmployee))
		r.Route("/deliver", crud(h, svc.ListDelivers, svc.GetDeliver, svc.GetDeliverWithRelations,
			svc.CreateDeliver, svc.UpdateDeliver, svc.DeleteDeliver))
		r.Route("/delivery", crud(h, svc.ListDeliveries, svc.GetDelivery, svc.GetDeliveryWithRelations,
			svc.CreateDelivery, svc.UpdateDelivery, svc.DeleteDelivery))
		r.Route("/dish", func(r chi.Router) {
			crud(h, svc.ListDishes, svc.GetDish, svc.GetDishWithRelations,
				svc.CreateDish, svc.UpdateDish, svc.DeleteDish)(r)
			r.Post("/{id}/ingredients/{childID}", join(h, svc.AddDishIngredient))
			r.Delete("/{id}/ingredients/{childID}", join(h, svc.RemoveDishIngredient))
		})
		r.Route("/ingredient", crud(h, svc.ListIngredients, svc.GetIngredient, svc.GetIngredientWithRelations,
			svc.CreateIngredient, svc.UpdateIngredient, svc.DeleteIngredient))
		r.Route("/order", func(r chi.Router) {
			crud(h, svc.ListOrders, svc.GetOrder, svc.GetOrderWithRelations,
				svc.CreateOrder, svc.UpdateOrder, svc.DeleteOrder)(r)
			r.Post("/{id}/employees/{childID}", join(h, svc.AddOrderEmployee))
			r.Delete("/{id}/employees/{childID}", join(h, svc.RemoveOrderEmployee))
		})
		r.Route("/reservation", crud(h, svc.ListReservations, svc.GetReservation, svc.GetReservationWithRelations,
			svc.CreateReservation, svc.UpdateReservation, svc.DeleteReservation))
		r.Route("/table", crud(h, svc.ListTables, svc.GetTable, svc.GetTableWithRelations,
			svc.CreateTable, svc.UpdateTable, svc.DeleteTable))
		r.Route("/address-history", crud(h, svc.ListAddressHistories, svc.GetAddressHistory, svc.GetAddressHistoryWithRelations,
			svc.CreateAddressHistory, svc.UpdateAddressHistory, svc.DeleteAddressHistory))
		r.Route("/employment-contract", crud(h, svc.ListEmploymentContracts, svc.GetEmploymentContract, svc.GetEmploymentContractWithRelations,
			svc.CreateEmploymentContract, svc.UpdateEmploymentContract, svc.DeleteEmploymentContract))
	})

	return r
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

type pinger interface {
	DB() *sql.DB
}

func (h *Handler) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	storageStatus := "ok"
	if p, ok := h.svc.Store().(pinger); ok {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := p.DB().PingContext(ctx); err != nil {
			h.logger.Warnw("storage ping failed", "error", err)
			storageStatus = "error"
		}
	}

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: h.now(),
		Services:  map[string]string{"storage": storageStatus},
	}
	status := http.StatusOK
	if storageStatus != "ok" {
		response.Status = "unhealthy"
		status = http.StatusServiceUnavailable
	}
	h.respond(w, r, status, response)
}
