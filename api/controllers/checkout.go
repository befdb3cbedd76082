package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/guardtag/guardtag-backend/api/middleware"
	"github.com/guardtag/guardtag-backend/api/responses"
	"github.com/guardtag/guardtag-backend/api/validators"
	"github.com/guardtag/guardtag-backend/internal/cart"
	"github.com/guardtag/guardtag-backend/internal/checkout"
	"github.com/guardtag/guardtag-backend/pkg/db/models"
	"github.com/guardtag/guardtag-backend/pkg/enums"
	pkgerrors "github.com/guardtag/guardtag-backend/pkg/errors"
	"github.com/guardtag/guardtag-backend/pkg/logger"
	"github.com/guardtag/guardtag-backend/pkg/types"
)

type checkoutRequest struct {
	CustomerName  string                 `json:"customerName" validate:"required"`
	CustomerEmail string                 `json:"customerEmail" validate:"required,email"`
	Address       checkoutAddressRequest `json:"shippingAddress" validate:"required"`
	PaymentMethod string                 `json:"paymentMethod" validate:"required"`
}

type checkoutAddressRequest struct {
	Street  string `json:"street" validate:"required"`
	City    string `json:"city" validate:"required"`
	ZipCode string `json:"zipCode" validate:"required"`
	Country string `json:"country" validate:"required"`
}

type checkoutResponse struct {
	Order        orderView `json:"order"`
	ClientSecret string    `json:"clientSecret,omitempty"`
}

type orderView struct {
	ID              string            `json:"id"`
	CustomerName    string            `json:"customerName"`
	CustomerEmail   string            `json:"customerEmail"`
	ShippingAddress types.Address     `json:"shippingAddress"`
	Items           []types.OrderItem `json:"items"`
	TotalAmount     string            `json:"totalAmount"`
	Status          string            `json:"status"`
	PaymentMethod   string            `json:"paymentMethod"`
}

func newOrderView(order *models.Order) orderView {
	return orderView{
		ID:              order.ID.String(),
		CustomerName:    order.CustomerName,
		CustomerEmail:   order.CustomerEmail,
		ShippingAddress: order.ShippingAddress,
		Items:           order.Items,
		TotalAmount:     order.TotalAmount,
		Status:          order.Status.String(),
		PaymentMethod:   order.PaymentMethod.String(),
	}
}

// Checkout drains the session's cart into an order.
func Checkout(svc checkout.Service, manager *cart.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, err := enums.ParsePaymentMethod(strings.TrimSpace(payload.PaymentMethod))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method"))
			return
		}

		sessionID := middleware.CartSessionID(r.Context())
		if sessionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart session missing from request"))
			return
		}
		session := manager.Session(r.Context(), sessionID)

		result, err := svc.Checkout(r.Context(), session, checkout.Input{
			CustomerName:  strings.TrimSpace(payload.CustomerName),
			CustomerEmail: strings.TrimSpace(payload.CustomerEmail),
			ShippingAddress: types.Address{
				Street:  strings.TrimSpace(payload.Address.Street),
				City:    strings.TrimSpace(payload.Address.City),
				ZipCode: strings.TrimSpace(payload.Address.ZipCode),
				Country: strings.TrimSpace(payload.Address.Country),
			},
			PaymentMethod: method,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, checkoutResponse{
			Order:        newOrderView(result.Order),
			ClientSecret: result.ClientSecret,
		})
	}
}

// ConfirmPayment settles a card order once the provider reports success.
func ConfirmPayment(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			OrderID string `json:"orderId" validate:"required,uuid"`
		}
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := uuid.Parse(payload.OrderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order id"))
			return
		}

		order, err := svc.ConfirmPayment(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newOrderView(order))
	}
}
