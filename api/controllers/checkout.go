package controllers

import (
	"net/http"

	"github.com/soft99/storefront-backend/api/responses"
	"github.com/soft99/storefront-backend/api/validators"
	"github.com/soft99/storefront-backend/internal/orders"
	"github.com/soft99/storefront-backend/pkg/logger"
)

type checkoutRequest struct {
	UserID        string `json:"user_id" validate:"omitempty,max=128"`
	CustomerName  string `json:"customer_name" validate:"required,min=2,max=100"`
	CustomerEmail string `json:"customer_email" validate:"required,email"`
	CustomerPhone string `json:"customer_phone" validate:"required,min=6,max=20"`
	Notes         string `json:"notes" validate:"max=1000"`
}

func (r checkoutRequest) toInput() orders.CheckoutInput {
	return orders.CheckoutInput{
		UserID:        validators.SanitizeString(r.UserID, 128),
		CustomerName:  validators.SanitizeString(r.CustomerName, 100),
		CustomerEmail: validators.SanitizeString(r.CustomerEmail, 254),
		CustomerPhone: validators.SanitizeString(r.CustomerPhone, 20),
		Notes:         validators.SanitizeString(r.Notes, 1000),
	}
}

// Checkout turns the session cart into a pending order.
func Checkout(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := cartSession(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		receipt, err := svc.Checkout(r.Context(), sessionID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, receipt)
	}
}
