package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// crud mounts the list, read, expand, create, update and delete endpoints of
// one entity.
func crud[T, In, P, R any](
	h *Handler,
	list func(context.Context) ([]T, error),
	get func(context.Context, int64) (T, error),
	related func(context.Context, int64) (R, error),
	create func(context.Context, In) (T, error),
	update func(context.Context, int64, P) (T, error),
	remove func(context.Context, int64) error,
) func(chi.Router) {
	return func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			items, err := list(r.Context())
			if err != nil {
				h.errorResponse(w, r, err)
				return
			}
			h.respond(w, r, http.StatusOK, items)
		})

		r.Post("/", func(w http.ResponseWriter, r *http.Request) {
			var in In
			if err := readJSON(w, r, &in); err != nil {
				h.badRequestResponse(w, r, err)
				return
			}
			created, err := create(r.Context(), in)
			if err != nil {
				h.errorResponse(w, r, err)
				return
			}
			h.respond(w, r, http.StatusCreated, created)
		})

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", func(w http.ResponseWriter, r *http.Request) {
				id, err := idParam(r, "id")
				if err != nil {
					h.badRequestResponse(w, r, err)
					return
				}
				item, err := get(r.Context(), id)
				if err != nil {
					h.errorResponse(w, r, err)
					return
				}
				h.respond(w, r, http.StatusOK, item)
			})

			r.Get("/with-relations", func(w http.ResponseWriter, r *http.Request) {
				id, err := idParam(r, "id")
				if err != nil {
					h.badRequestResponse(w, r, err)
					return
				}
				item, err := related(r.Context(), id)
				if err != nil {
					h.errorResponse(w, r, err)
					return
				}
				h.respond(w, r, http.StatusOK, item)
			})

			r.Put("/", func(w http.ResponseWriter, r *http.Request) {
				id, err := idParam(r, "id")
				if err != nil {
					h.badRequestResponse(w, r, err)
					return
				}
				var patch P
				if err := readJSON(w, r, &patch); err != nil {
					h.badRequestResponse(w, r, err)
					return
				}
				updated, err := update(r.Context(), id, patch)
				if err != nil {
					h.errorResponse(w, r, err)
					return
				}
				h.respond(w, r, http.StatusOK, updated)
			})

			r.Delete("/", func(w http.ResponseWriter, r *http.Request) {
				id, err := idParam(r, "id")
				if err != nil {
					h.badRequestResponse(w, r, err)
					return
				}
				if err := remove(r.Context(), id); err != nil {
					h.errorResponse(w, r, err)
					return
				}
				w.WriteHeader(http.StatusNoContent)
			})
		})
	}
}

// join serves the add and remove helpers of a many-to-many relation.
func join[T any](h *Handler, op func(context.Context, int64, int64) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parentID, err := idParam(r, "id")
		if err != nil {
			h.badRequestResponse(w, r, err)
			return
		}
		childID, err := idParam(r, "childID")
		if err != nil {
			h.badRequestResponse(w, r, err)
			return
		}
		parent, err := op(r.Context(), parentID, childID)
		if err != nil {
			h.errorResponse(w, r, err)
			return
		}
		h.respond(w, r, http.StatusOK, parent)
	}
}
