package api

import (
	"net/http"
	"strconv"

	"fjacquet/ledger-csv/internal/history"
	"fjacquet/ledger-csv/internal/ledger"
	"fjacquet/ledger-csv/internal/logging"
	"fjacquet/ledger-csv/internal/models"
	"fjacquet/ledger-csv/internal/parsererror"
	"fjacquet/ledger-csv/internal/projection"
	"fjacquet/ledger-csv/internal/report"
	"fjacquet/ledger-csv/internal/validation"

	"github.com/go-chi/chi/v5"
)

// Source supplies ledgers and currency views. The container implements it.
type Source interface {
	LoadLedger(dir string) (*ledger.Ledger, error)
	CurrencyView(code string) (models.CurrencyView, error)
	HistoryWindow() int
}

// Handler serves the ledger found in one input directory.
type Handler struct {
	source Source
	dir    string
	logger logging.Logger
}

// NewHandler creates a Handler reading dir through source.
func NewHandler(source Source, dir string, logger logging.Logger) *Handler {
	return &Handler{source: source, dir: dir, logger: logging.OrDefault(logger)}
}

// MonthsResponse lists the available months, newest first.
type MonthsResponse struct {
	Months []models.MonthKey `json:"months"`
	Latest models.MonthKey   `json:"latest"`
}

// LedgerResponse is the (optionally month-filtered) transaction list.
type LedgerResponse struct {
	Month        models.MonthKey     `json:"month,omitempty"`
	Currency     string              `json:"currency"`
	Count        int                 `json:"count"`
	Transactions []models.ViewRecord `json:"transactions"`
}

// request is the resolved state shared by every handler.
type request struct {
	ledger *ledger.Ledger
	view   models.CurrencyView
	agg    *history.Aggregator
	month  models.MonthKey
}

// prepare validates q, loads the ledger and resolves the currency view. When
// needMonth is set the month must exist in the ledger. On failure the error
// response has been written and ok is false.
func (h *Handler) prepare(w http.ResponseWriter, q validation.Query, needMonth bool) (request, bool) {
	if err := validation.ValidateQuery(q); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return request{}, false
	}

	view, err := h.source.CurrencyView(q.Currency)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return request{}, false
	}

	l, err := h.source.LoadLedger(h.dir)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load ledger", logging.F(logging.FieldDirectory, h.dir))
		WriteError(w, http.StatusInternalServerError, "failed to load ledger")
		return request{}, false
	}

	req := request{
		ledger: l,
		view:   view,
		agg:    history.New(l.Transactions()).WithWindow(h.source.HistoryWindow()),
		month:  models.MonthKey(q.Month),
	}
	if needMonth && !req.agg.Has(req.month) {
		WriteError(w, http.StatusNotFound, "month not found: "+q.Month)
		return request{}, false
	}
	return req, true
}

func monthQuery(r *http.Request) validation.Query {
	return validation.Query{
		Month:    chi.URLParam(r, "month"),
		Currency: r.URL.Query().Get("currency"),
	}
}

// Months handles GET /api/months.
func (h *Handler) Months(w http.ResponseWriter, r *http.Request) {
	req, ok := h.prepare(w, validation.Query{}, false)
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, MonthsResponse{
		Months: req.ledger.Months(),
		Latest: req.ledger.LatestMonth(),
	})
}

// Ledger handles GET /api/ledger?month=&currency=.
func (h *Handler) Ledger(w http.ResponseWriter, r *http.Request) {
	q := validation.Query{
		Month:    r.URL.Query().Get("month"),
		Currency: r.URL.Query().Get("currency"),
	}
	req, ok := h.prepare(w, q, false)
	if !ok {
		return
	}

	txs := req.ledger.Transactions()
	if req.month != "" {
		txs = req.ledger.ForMonth(req.month)
	}
	records := ledger.ViewOf(txs, req.view)
	WriteJSON(w, http.StatusOK, LedgerResponse{
		Month:        req.month,
		Currency:     req.view.Code,
		Count:        len(records),
		Transactions: records,
	})
}

// Summary handles GET /api/months/{month}/summary. Repeated category
// parameters narrow the subcategory breakdown.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	req, ok := h.prepare(w, monthQuery(r), true)
	if !ok {
		return
	}
	categories := r.URL.Query()["category"]
	WriteJSON(w, http.StatusOK, report.SummaryPayload{
		Summary:  req.agg.Summary(req.month, categories...).Scale(req.view),
		Snapshot: projection.Snapshot(req.ledger.ForMonth(req.month)).Scale(req.view),
	})
}

// Projection handles GET /api/months/{month}/projection.
func (h *Handler) Projection(w http.ResponseWriter, r *http.Request) {
	req, ok := h.prepare(w, monthQuery(r), true)
	if !ok {
		return
	}
	txs := req.ledger.ForMonth(req.month)
	WriteJSON(w, http.StatusOK, report.ProjectionPayload{
		Projection: projection.Project(txs, req.month).Scale(req.view),
		Snapshot:   projection.Snapshot(txs).Scale(req.view),
	})
}

// Context handles GET /api/months/{month}/context.
func (h *Handler) Context(w http.ResponseWriter, r *http.Request) {
	req, ok := h.prepare(w, monthQuery(r), true)
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, req.agg.Context(req.month).Scale(req.view))
}

// Trailing handles GET /api/months/{month}/trailing.
func (h *Handler) Trailing(w http.ResponseWriter, r *http.Request) {
	req, ok := h.prepare(w, monthQuery(r), true)
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, req.agg.Trailing(req.month).Scale(req.view))
}

// CategoryAverages handles GET /api/months/{month}/category-averages?window=.
func (h *Handler) CategoryAverages(w http.ResponseWriter, r *http.Request) {
	q := monthQuery(r)
	if raw := r.URL.Query().Get("window"); raw != "" {
		window, err := strconv.Atoi(raw)
		if err != nil {
			WriteError(w, http.StatusBadRequest, (&parsererror.ValidationError{
				Subject: "window",
				Reason:  strconv.Quote(raw) + " is not a number",
			}).Error())
			return
		}
		q.Window = window
	}

	req, ok := h.prepare(w, q, true)
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, req.agg.CategoryAverages(req.month, q.Window).Scale(req.view))
}

// Compare handles GET /api/compare?a=&b=.
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	q := validation.Query{
		CompareA: r.URL.Query().Get("a"),
		CompareB: r.URL.Query().Get("b"),
		Currency: r.URL.Query().Get("currency"),
	}
	if q.CompareA == "" || q.CompareB == "" {
		WriteError(w, http.StatusBadRequest, "both a and b months are required")
		return
	}

	req, ok := h.prepare(w, q, false)
	if !ok {
		return
	}
	a, b := models.MonthKey(q.CompareA), models.MonthKey(q.CompareB)
	for _, m := range []models.MonthKey{a, b} {
		if !req.agg.Has(m) {
			WriteError(w, http.StatusNotFound, "month not found: "+m.String())
			return
		}
	}
	WriteJSON(w, http.StatusOK, report.ComparePayload{
		MonthA: a,
		MonthB: b,
		Deltas: req.agg.Compare(a, b).Scale(req.view),
	})
}
