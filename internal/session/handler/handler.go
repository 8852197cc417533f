package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pantrylab/inventory-service/internal/inventory"
	"github.com/pantrylab/inventory-service/internal/session"
	"github.com/pantrylab/inventory-service/pkg/logger"
	"go.uber.org/zap"
)

type HTTPHandler struct {
	session *session.Session
	logger  logger.ZapLogger
}

type addItemRequest struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

type searchRequest struct {
	Term string `json:"term"`
}

type itemIDRequest struct {
	ID string `json:"id"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewHTTPHandler(s *session.Session, log logger.ZapLogger) *HTTPHandler {
	return &HTTPHandler{session: s, logger: log}
}

func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.HealthCheck)
	mux.HandleFunc("/api/state", h.State)
	mux.HandleFunc("/api/items", h.AddItem)
	mux.HandleFunc("/api/items/search", h.SearchItems)
	mux.HandleFunc("/api/items/increment", h.IncrementQuantity)
	mux.HandleFunc("/api/items/decrement", h.DecrementQuantity)
	mux.HandleFunc("/api/items/remove", h.RemoveItem)
	mux.HandleFunc("/api/selection/toggle", h.ToggleSelection)
	mux.HandleFunc("/api/selection/toggle-all", h.SelectAllToggle)
	mux.HandleFunc("/api/conflict/confirm", h.ConfirmPriceConflict)
	mux.HandleFunc("/api/conflict/cancel", h.CancelPriceConflict)
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HTTPHandler) State(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, h.session.View())
}

func (h *HTTPHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if _, err := h.session.AddItem(r.Context(), req.Name, req.Price); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.session.View())
}

func (h *HTTPHandler) SearchItems(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	h.session.SearchItems(req.Term)
	writeJSON(w, http.StatusOK, h.session.View())
}

func (h *HTTPHandler) IncrementQuantity(w http.ResponseWriter, r *http.Request) {
	h.quantityAction(w, r, h.session.IncrementQuantity)
}

func (h *HTTPHandler) DecrementQuantity(w http.ResponseWriter, r *http.Request) {
	h.quantityAction(w, r, h.session.DecrementQuantity)
}

func (h *HTTPHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.quantityAction(w, r, h.session.RemoveItem)
}

func (h *HTTPHandler) ToggleSelection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req itemIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing item id"})
		return
	}

	h.session.ToggleSelection(req.ID)
	writeJSON(w, http.StatusOK, h.session.View())
}

func (h *HTTPHandler) SelectAllToggle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.session.SelectAllToggle()
	writeJSON(w, http.StatusOK, h.session.View())
}

func (h *HTTPHandler) ConfirmPriceConflict(w http.ResponseWriter, r *http.Request) {
	h.conflictAction(w, r, h.session.ConfirmPriceConflict)
}

func (h *HTTPHandler) CancelPriceConflict(w http.ResponseWriter, r *http.Request) {
	h.conflictAction(w, r, h.session.CancelPriceConflict)
}

func (h *HTTPHandler) quantityAction(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, id string) error) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req itemIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing item id"})
		return
	}

	if err := action(r.Context(), req.ID); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.session.View())
}

func (h *HTTPHandler) conflictAction(w http.ResponseWriter, r *http.Request, action func(ctx context.Context) error) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := action(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.session.View())
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, inventory.ErrNameRequired), errors.Is(err, inventory.ErrInvalidPrice):
		status = http.StatusBadRequest
	case errors.Is(err, inventory.ErrItemNotFound):
		status = http.StatusNotFound
	case errors.Is(err, inventory.ErrConflictPending), errors.Is(err, inventory.ErrNoPendingConflict):
		status = http.StatusConflict
	default:
		h.logger.Error("store operation failed", zap.Error(err))
	}

	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
