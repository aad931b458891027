package transaction

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/prajwal2403/fintrack/internal/http/identity"
	"github.com/prajwal2403/fintrack/internal/http/respond"
	"github.com/prajwal2403/fintrack/internal/transaction"
)

type Handler struct {
	svc      *transaction.Service
	identity identity.Resolver
}

func NewHandler(svc *transaction.Service, resolver identity.Resolver) *Handler {
	return &Handler{svc: svc, identity: resolver}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

// AdminRoutes registers the unscoped per-user listing. The router mounts it
// behind the admin token, never on the public tree.
func (h *Handler) AdminRoutes(r chi.Router) {
	r.Get("/user/{user_id}", h.listByUser)
}

type createTransactionRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description *string         `json:"description,omitempty"`
	Date        time.Time       `json:"date"`
	Category    *string         `json:"category,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	email, err := h.identity(r)
	if err != nil {
		respond.DomainError(w, err)
		return
	}

	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tx, err := h.svc.Create(r.Context(), email, transaction.Draft{
		Amount:      req.Amount,
		Description: req.Description,
		Date:        req.Date,
		Category:    req.Category,
	})
	if err != nil {
		respond.DomainError(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(tx))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	email, err := h.identity(r)
	if err != nil {
		respond.DomainError(w, err)
		return
	}

	txs, err := h.svc.List(r.Context(), email)
	if err != nil {
		respond.DomainError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(txs))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	email, err := h.identity(r)
	if err != nil {
		respond.DomainError(w, err)
		return
	}

	tx, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"), email)
	if err != nil {
		respond.DomainError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(tx))
}

type updateTransactionRequest struct {
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Description *string          `json:"description,omitempty"`
	Date        *time.Time       `json:"date,omitempty"`
	Category    *string          `json:"category,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	email, err := h.identity(r)
	if err != nil {
		respond.DomainError(w, err)
		return
	}

	var req updateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tx, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), email, transaction.Patch{
		Amount:      req.Amount,
		Description: req.Description,
		Date:        req.Date,
		Category:    req.Category,
	})
	if err != nil {
		respond.DomainError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(tx))
}

type deleteResponse struct {
	Message string `json:"message"`
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	email, err := h.identity(r)
	if err != nil {
		respond.DomainError(w, err)
		return
	}

	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id"), email); err != nil {
		respond.DomainError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, deleteResponse{Message: "Transaction deleted successfully"})
}

func (h *Handler) listByUser(w http.ResponseWriter, r *http.Request) {
	txs, err := h.svc.ListByUserID(r.Context(), chi.URLParam(r, "user_id"))
	if err != nil {
		respond.DomainError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(txs))
}
