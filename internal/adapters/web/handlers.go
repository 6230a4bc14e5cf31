package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"shopfront/internal/app"
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc       app.ApplicationService
	router    chi.Router
	jwtSecret string
}

// NewHandler creates and wires the chi router with all routes. The
// storefront surface is public; everything under /api/admin requires a
// valid operator session.
func NewHandler(svc app.ApplicationService, allowedOrigins []string, jwtSecret string) http.Handler {
	h := &Handler{svc: svc, jwtSecret: jwtSecret}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(CORS(allowedOrigins))
	r.Use(RequestBodyLimit(1 << 20)) // 1 MB

	// ── Health (public) ───────────────────────────────────────────────────
	r.Get("/api/health", h.health)

	// ── Auth ──────────────────────────────────────────────────────────────
	r.Post("/api/auth/login", h.login)
	r.Post("/api/auth/logout", h.logout)

	// ── Storefront (public) ───────────────────────────────────────────────
	r.Get("/api/products", h.listProducts)
	r.Get("/api/products/{id}", h.getProduct)
	r.Post("/api/products/{id}/reviews", h.addReview)

	r.Get("/api/cart", h.getCart)
	r.Post("/api/cart/items", h.addToCart)
	r.Put("/api/cart/items", h.updateCartLine)
	r.Post("/api/cart/items/remove", h.removeCartLine)

	r.Post("/api/checkout", h.checkout)
	r.Get("/api/orders/{id}/track", h.trackOrder)
	r.Post("/api/orders/{id}/cancel", h.cancelMyOrder)

	r.Get("/api/payment-directory", h.paymentDirectory)
	r.Post("/api/advisor", h.askAdvisor)

	// ── Back office (operator session required) ───────────────────────────
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(h.RequireAuth)

		r.Get("/auth/me", h.me)

		r.Post("/products", h.createProduct)
		r.Put("/products/{id}", h.updateProduct)
		r.Delete("/products/{id}", h.deleteProduct)
		r.Post("/products/{id}/restock", h.restockProduct)
		r.Post("/products/describe", h.draftDescription)
		r.Post("/products/{id}/video", h.generateProductVideo)

		r.Get("/orders", h.listOrders)
		r.Get("/orders/{id}", h.getOrder)
		r.Post("/orders/{id}/status", h.updateOrderStatus)
		r.Post("/shop-sales", h.recordShopSale)

		r.Get("/transactions", h.listTransactions)
		r.Post("/transactions", h.addTransaction)

		r.Get("/payees", h.listPayees)
		r.Post("/payees", h.addPayee)
		r.Get("/payables", h.listPayables)
		r.Post("/payables", h.addPayable)
		r.Post("/payables/{id}/settle", h.settlePayable)
		r.Get("/receivables", h.listReceivables)
		r.Post("/receivables", h.addReceivable)
		r.Post("/receivables/{id}/settle", h.settleReceivable)

		r.Get("/notifications", h.listNotifications)
		r.Post("/notifications/{id}/read", h.markNotificationRead)
		r.Post("/notifications/read-all", h.markAllNotificationsRead)

		r.Get("/settings/profile", h.getShopProfile)
		r.Put("/settings/profile", h.updateShopProfile)
		r.Post("/settings/banks", h.addBankAccount)
		r.Delete("/settings/banks/{id}", h.deleteBankAccount)
		r.Post("/settings/wallets", h.addWallet)
		r.Delete("/settings/wallets/{id}", h.deleteWallet)

		r.Get("/users", h.listUsers)
		r.Post("/users", h.createUser)
		r.Delete("/users/{id}", h.deleteUser)
	})

	h.router = r
	return r
}

// health returns service status.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status string `json:"status"`
	}
	writeJSON(w, response{Status: "ok"})
}

// urlID extracts the {id} URL parameter.
func urlID(r *http.Request) string {
	return chi.URLParam(r, "id")
}

// decodeOptionalJSON is decodeJSON for endpoints where an empty body is a
// valid request, leaving v at its zero value.
func decodeOptionalJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
	return false
}

// decodeJSON decodes the request body into v and returns false + writes an
// appropriate error response on failure. Returns HTTP 413 when the body
// exceeds the size limit set by RequestBodyLimit; 400 for other decode
// errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}
