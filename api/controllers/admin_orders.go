package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"

	"github.com/soft99/storefront-backend/api/responses"
	"github.com/soft99/storefront-backend/api/validators"
	"github.com/soft99/storefront-backend/internal/orders"
	"github.com/soft99/storefront-backend/internal/providers"
	"github.com/soft99/storefront-backend/pkg/enums"
	"github.com/soft99/storefront-backend/pkg/logger"
	"github.com/soft99/storefront-backend/pkg/models"
)

// AdminListOrders lists every order, or one customer's when user_id is set.
// status narrows the list to one lifecycle state.
func AdminListOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := ""
		if v := validators.ParseQueryString(r, "user_id", 128); v != nil {
			userID = *v
		}
		var status enums.OrderStatus
		if v := validators.ParseQueryString(r, "status", 32); v != nil {
			parsed, err := enums.ParseOrderStatus(*v)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, invalidQuery("status", err))
				return
			}
			status = parsed
		}
		list, err := svc.List(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if status != "" {
			list = lo.Filter(list, func(o models.Order, _ int) bool { return o.Status == status })
		}
		if list == nil {
			list = []models.Order{}
		}
		responses.WriteSuccess(w, list)
	}
}

func AdminGetOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		order, err := svc.Get(r.Context(), chi.URLParam(r, "orderId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// AdminUpdateOrder patches status and customer details. Status changes go
// through the order state machine.
func AdminUpdateOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch models.OrderPatch
		if err := validators.DecodeJSONBody(r, &patch); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		updated, err := svc.Update(r.Context(), chi.URLParam(r, "orderId"), patch)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

func AdminDeleteOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "orderId")
		ok, err := svc.Delete(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !ok {
			responses.WriteError(r.Context(), logg, w, providers.NotFound("order", id))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
