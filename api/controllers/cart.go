package controllers

import (
	"net/http"
	"strings"

	"github.com/guardtag/guardtag-backend/api/middleware"
	"github.com/guardtag/guardtag-backend/api/responses"
	"github.com/guardtag/guardtag-backend/api/validators"
	"github.com/guardtag/guardtag-backend/internal/cart"
	"github.com/guardtag/guardtag-backend/internal/catalog"
	pkgerrors "github.com/guardtag/guardtag-backend/pkg/errors"
	"github.com/guardtag/guardtag-backend/pkg/logger"
)

type cartItemView struct {
	Product       catalog.Product    `json:"product"`
	Customization cart.Customization `json:"customization,omitempty"`
	Fingerprint   string             `json:"fingerprint"`
	Quantity      int                `json:"quantity"`
}

type cartView struct {
	SessionID  string         `json:"sessionId"`
	Items      []cartItemView `json:"items"`
	TotalItems int            `json:"totalItems"`
	TotalPrice string         `json:"totalPrice"`
	IsOpen     bool           `json:"isOpen"`
}

func renderCart(session *cart.Session) (cartView, error) {
	total, err := session.TotalPrice()
	if err != nil {
		return cartView{}, err
	}

	items := session.Items()
	view := cartView{
		SessionID:  session.ID(),
		Items:      make([]cartItemView, 0, len(items)),
		TotalItems: session.TotalItems(),
		TotalPrice: total.StringFixed(2),
		IsOpen:     session.IsOpen(),
	}
	for _, item := range items {
		view.Items = append(view.Items, cartItemView{
			Product:       item.Product,
			Customization: item.Customization,
			Fingerprint:   item.Fingerprint.String(),
			Quantity:      item.Quantity,
		})
	}
	return view, nil
}

func sessionFromRequest(r *http.Request, manager *cart.Manager) (*cart.Session, error) {
	sessionID := middleware.CartSessionID(r.Context())
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart session missing from request")
	}
	return manager.Session(r.Context(), sessionID), nil
}

// GetCart returns the session's cart with totals.
func GetCart(manager *cart.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessionFromRequest(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := renderCart(session)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

type addCartItemRequest struct {
	ProductID     string             `json:"productId" validate:"required"`
	Quantity      int                `json:"quantity" validate:"required,min=1"`
	Customization cart.Customization `json:"customization,omitempty"`
}

// AddCartItem resolves the product and merges it into the cart. Equal
// customizations land on the same line no matter the JSON key order.
func AddCartItem(manager *cart.Manager, catalogSvc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := catalogSvc.Get(r.Context(), strings.TrimSpace(payload.ProductID))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := sessionFromRequest(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := session.AddWithCustomization(r.Context(), product, payload.Customization, payload.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := renderCart(session)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}

type updateCartItemRequest struct {
	ProductID   string `json:"productId" validate:"required"`
	Fingerprint string `json:"fingerprint"`
	Quantity    int    `json:"quantity"`
}

// UpdateCartItem sets the quantity on a line; zero or less removes it.
func UpdateCartItem(manager *cart.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := sessionFromRequest(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		fp := cart.Fingerprint(payload.Fingerprint)
		if payload.Fingerprint == "" {
			fp = cart.EmptyFingerprint
		}

		if err := session.UpdateQuantity(r.Context(), payload.ProductID, fp, payload.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := renderCart(session)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

type removeCartItemRequest struct {
	ProductID   string `json:"productId" validate:"required"`
	Fingerprint string `json:"fingerprint"`
}

// RemoveCartItem deletes one line from the cart.
func RemoveCartItem(manager *cart.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload removeCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := sessionFromRequest(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		fp := cart.Fingerprint(payload.Fingerprint)
		if payload.Fingerprint == "" {
			fp = cart.EmptyFingerprint
		}

		if err := session.Remove(r.Context(), payload.ProductID, fp); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := renderCart(session)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// ClearCart empties the session's cart.
func ClearCart(manager *cart.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessionFromRequest(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := session.Clear(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := renderCart(session)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// OpenCart marks the drawer visible for the session.
func OpenCart(manager *cart.Manager, logg *logger.Logger) http.HandlerFunc {
	return setCartOpen(manager, logg, true)
}

// CloseCart marks the drawer hidden for the session.
func CloseCart(manager *cart.Manager, logg *logger.Logger) http.HandlerFunc {
	return setCartOpen(manager, logg, false)
}

func setCartOpen(manager *cart.Manager, logg *logger.Logger, open bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessionFromRequest(r, manager)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if open {
			session.Open()
		} else {
			session.Close()
		}

		view, err := renderCart(session)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}
