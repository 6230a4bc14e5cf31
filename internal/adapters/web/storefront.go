package web

import (
	"net/http"

	"shopfront/internal/app"
)

// listProducts handles GET /api/products.
func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListProducts(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// getProduct handles GET /api/products/{id}.
func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetProduct(r.Context(), urlID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// addReview handles POST /api/products/{id}/reviews.
func (h *Handler) addReview(w http.ResponseWriter, r *http.Request) {
	var req app.ReviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ProductID = urlID(r)
	result, err := h.svc.AddReview(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// getCart handles GET /api/cart.
func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetCart(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// addToCart handles POST /api/cart/items.
func (h *Handler) addToCart(w http.ResponseWriter, r *http.Request) {
	var req app.CartLineRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.AddToCart(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// updateCartLine handles PUT /api/cart/items.
func (h *Handler) updateCartLine(w http.ResponseWriter, r *http.Request) {
	var req app.CartLineRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.UpdateCartLine(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// removeCartLine handles POST /api/cart/items/remove.
func (h *Handler) removeCartLine(w http.ResponseWriter, r *http.Request) {
	var req app.CartLineRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.RemoveCartLine(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// checkout handles POST /api/checkout.
func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var req app.CheckoutRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.Checkout(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// trackOrder handles GET /api/orders/{id}/track.
func (h *Handler) trackOrder(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.TrackOrder(r.Context(), urlID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// cancelMyOrder handles POST /api/orders/{id}/cancel.
func (h *Handler) cancelMyOrder(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.CancelMyOrder(r.Context(), urlID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// paymentDirectory handles GET /api/payment-directory.
func (h *Handler) paymentDirectory(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.PaymentDirectory(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// askAdvisor handles POST /api/advisor.
func (h *Handler) askAdvisor(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question string `json:"question"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.AskAdvisor(r.Context(), req.Question)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}
