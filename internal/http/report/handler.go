package report

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/prajwal2403/fintrack/internal/http/identity"
	"github.com/prajwal2403/fintrack/internal/http/respond"
	"github.com/prajwal2403/fintrack/internal/report"
)

type Handler struct {
	svc      *report.Service
	identity identity.Resolver
}

func NewHandler(svc *report.Service, resolver identity.Resolver) *Handler {
	return &Handler{svc: svc, identity: resolver}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/monthly-expenses", h.monthly)
	r.Get("/category-spending", h.byCategory)
	r.Get("/recent-spending", h.recent)
}

type monthlyResponse struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

func (h *Handler) monthly(w http.ResponseWriter, r *http.Request) {
	email, err := h.identity(r)
	if err != nil {
		respond.DomainError(w, err)
		return
	}

	totals, err := h.svc.Monthly(r.Context(), email)
	if err != nil {
		respond.DomainError(w, err)
		return
	}

	out := make([]monthlyResponse, 0, len(totals))
	for _, t := range totals {
		out = append(out, monthlyResponse{Month: t.Month, Total: t.Total})
	}
	respond.JSON(w, http.StatusOK, out)
}

type categoryResponse struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
}

func (h *Handler) byCategory(w http.ResponseWriter, r *http.Request) {
	email, err := h.identity(r)
	if err != nil {
		respond.DomainError(w, err)
		return
	}

	totals, err := h.svc.ByCategory(r.Context(), email)
	if err != nil {
		respond.DomainError(w, err)
		return
	}

	out := make([]categoryResponse, 0, len(totals))
	for _, t := range totals {
		out = append(out, categoryResponse{Category: t.Category, Total: t.Total, Count: t.Count})
	}
	respond.JSON(w, http.StatusOK, out)
}

type dailyResponse struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

func (h *Handler) recent(w http.ResponseWriter, r *http.Request) {
	email, err := h.identity(r)
	if err != nil {
		respond.DomainError(w, err)
		return
	}

	days := report.DefaultRecentDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respond.Error(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = parsed
	}

	totals, err := h.svc.RecentDaily(r.Context(), email, days)
	if err != nil {
		respond.DomainError(w, err)
		return
	}

	out := make([]dailyResponse, 0, len(totals))
	for _, t := range totals {
		out = append(out, dailyResponse{Date: t.Date, Amount: t.Amount})
	}
	respond.JSON(w, http.StatusOK, out)
}
