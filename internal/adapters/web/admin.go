package web

import (
	"net/http"

	"shopfront/internal/app"
	"shopfront/internal/core"
)

// ── Catalog ───────────────────────────────────────────────────────────────────

// createProduct handles POST /api/admin/products.
func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req app.ProductRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.CreateProduct(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// updateProduct handles PUT /api/admin/products/{id}.
func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var req app.ProductRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.UpdateProduct(r.Context(), urlID(r), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// deleteProduct handles DELETE /api/admin/products/{id}.
func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteProduct(r.Context(), urlID(r)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// restockProduct handles POST /api/admin/products/{id}/restock.
func (h *Handler) restockProduct(w http.ResponseWriter, r *http.Request) {
	var req app.RestockRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.RestockProduct(r.Context(), urlID(r), req.Color, req.Size, req.Quantity)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// draftDescription handles POST /api/admin/products/describe.
func (h *Handler) draftDescription(w http.ResponseWriter, r *http.Request) {
	var req app.ProductRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.DraftDescription(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// generateProductVideo handles POST /api/admin/products/{id}/video.
// The render is synchronous and can take minutes; the storefront polls the
// product for the stored URL afterwards.
func (h *Handler) generateProductVideo(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GenerateProductVideo(r.Context(), urlID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// ── Orders ────────────────────────────────────────────────────────────────────

// listOrders handles GET /api/admin/orders.
func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListOrders(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// getOrder handles GET /api/admin/orders/{id}.
func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetOrder(r.Context(), urlID(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// updateOrderStatus handles POST /api/admin/orders/{id}/status.
func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status core.OrderStatus `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.UpdateOrderStatus(r.Context(), urlID(r), req.Status)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// recordShopSale handles POST /api/admin/shop-sales.
func (h *Handler) recordShopSale(w http.ResponseWriter, r *http.Request) {
	var req app.ShopSaleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.RecordShopSale(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// ── Finance ───────────────────────────────────────────────────────────────────

// listTransactions handles GET /api/admin/transactions.
func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListTransactions(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// addTransaction handles POST /api/admin/transactions.
func (h *Handler) addTransaction(w http.ResponseWriter, r *http.Request) {
	var req app.TransactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.AddTransaction(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// listPayees handles GET /api/admin/payees.
func (h *Handler) listPayees(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListPayees(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// addPayee handles POST /api/admin/payees.
func (h *Handler) addPayee(w http.ResponseWriter, r *http.Request) {
	var req app.PayeeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.AddPayee(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// listPayables handles GET /api/admin/payables.
func (h *Handler) listPayables(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListPayables(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// addPayable handles POST /api/admin/payables.
func (h *Handler) addPayable(w http.ResponseWriter, r *http.Request) {
	var req app.ObligationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.AddPayable(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// settlePayable handles POST /api/admin/payables/{id}/settle.
func (h *Handler) settlePayable(w http.ResponseWriter, r *http.Request) {
	var req app.SettleRequest
	if !decodeOptionalJSON(w, r, &req) {
		return
	}
	result, err := h.svc.SettlePayable(r.Context(), urlID(r), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// listReceivables handles GET /api/admin/receivables.
func (h *Handler) listReceivables(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListReceivables(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// addReceivable handles POST /api/admin/receivables.
func (h *Handler) addReceivable(w http.ResponseWriter, r *http.Request) {
	var req app.ObligationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.AddReceivable(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// settleReceivable handles POST /api/admin/receivables/{id}/settle.
func (h *Handler) settleReceivable(w http.ResponseWriter, r *http.Request) {
	var req app.SettleRequest
	if !decodeOptionalJSON(w, r, &req) {
		return
	}
	result, err := h.svc.SettleReceivable(r.Context(), urlID(r), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// ── Notifications ─────────────────────────────────────────────────────────────

// listNotifications handles GET /api/admin/notifications.
func (h *Handler) listNotifications(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListNotifications(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// markNotificationRead handles POST /api/admin/notifications/{id}/read.
func (h *Handler) markNotificationRead(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.MarkNotificationRead(r.Context(), urlID(r)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// markAllNotificationsRead handles POST /api/admin/notifications/read-all.
func (h *Handler) markAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.MarkAllNotificationsRead(r.Context()); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ── Settings and users ────────────────────────────────────────────────────────

// getShopProfile handles GET /api/admin/settings/profile.
func (h *Handler) getShopProfile(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetShopProfile(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// updateShopProfile handles PUT /api/admin/settings/profile.
func (h *Handler) updateShopProfile(w http.ResponseWriter, r *http.Request) {
	var profile core.ShopProfile
	if !decodeJSON(w, r, &profile) {
		return
	}
	if err := h.svc.UpdateShopProfile(r.Context(), profile); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, profile)
}

// addBankAccount handles POST /api/admin/settings/banks.
func (h *Handler) addBankAccount(w http.ResponseWriter, r *http.Request) {
	var req app.BankAccountRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	account, err := h.svc.AddBankAccount(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, account)
}

// deleteBankAccount handles DELETE /api/admin/settings/banks/{id}.
func (h *Handler) deleteBankAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteBankAccount(r.Context(), urlID(r)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// addWallet handles POST /api/admin/settings/wallets.
func (h *Handler) addWallet(w http.ResponseWriter, r *http.Request) {
	var req app.WalletRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	wallet, err := h.svc.AddWallet(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, wallet)
}

// deleteWallet handles DELETE /api/admin/settings/wallets/{id}.
func (h *Handler) deleteWallet(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteWallet(r.Context(), urlID(r)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// listUsers handles GET /api/admin/users.
func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListUsers(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// createUser handles POST /api/admin/users.
func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var req app.UserRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.CreateUser(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// deleteUser handles DELETE /api/admin/users/{id}.
func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteUser(r.Context(), urlID(r)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
