package importcsv

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/prajwal2403/fintrack/internal/http/identity"
	"github.com/prajwal2403/fintrack/internal/http/respond"
	"github.com/prajwal2403/fintrack/internal/importer"
	"github.com/prajwal2403/fintrack/internal/transaction"
)

const maxUploadBytes = 10 << 20

type Handler struct {
	importer *importer.Service
	txs      *transaction.Service
	identity identity.Resolver
}

func NewHandler(imp *importer.Service, txs *transaction.Service, resolver identity.Resolver) *Handler {
	return &Handler{importer: imp, txs: txs, identity: resolver}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/import", h.upload)
}

type importedTransaction struct {
	ID     string          `json:"id"`
	Amount decimal.Decimal `json:"amount"`
	Date   string          `json:"date"`
}

type importResponse struct {
	Imported     int                   `json:"imported"`
	Transactions []importedTransaction `json:"transactions"`
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	email, err := h.identity(r)
	if err != nil {
		respond.DomainError(w, err)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respond.Error(w, http.StatusBadRequest, "could not parse multipart form")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "missing file upload")
		return
	}
	defer file.Close()

	format := importer.Format(r.FormValue("format"))
	if format == "" {
		format = importer.FormatStatement
	}

	drafts, err := h.importer.Import(format, file)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.txs.CreateBatch(r.Context(), email, drafts)
	if err != nil {
		respond.DomainError(w, err)
		return
	}

	out := importResponse{
		Imported:     len(created),
		Transactions: make([]importedTransaction, 0, len(created)),
	}
	for _, tx := range created {
		out.Transactions = append(out.Transactions, importedTransaction{
			ID:     tx.ID.String(),
			Amount: tx.Amount,
			Date:   tx.Date.Format("2006-01-02"),
		})
	}
	respond.JSON(w, http.StatusCreated, out)
}
