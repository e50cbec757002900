package finance

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"solar_finance/pkg/core/finance"
	"solar_finance/pkg/core/fx"
	"solar_finance/pkg/core/utils"
)

// Handler holds dependencies for the finance endpoints
type Handler struct {
	Rates *fx.Resolver
	Log   *logrus.Logger
}

// NewHandler creates a new finance handler
func NewHandler(rates *fx.Resolver, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.New()
	}
	return &Handler{Rates: rates, Log: log}
}

func cors(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

// HandleMetrics runs the full pipeline for one project request and returns
// the evaluation (settings, cost, O&M, metrics). The engine itself never
// fails; only an undecodable body produces a non-200.
func (h *Handler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	cors(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req finance.ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	reqID := uuid.NewString()[:8]
	fmt.Printf("[FINANCE] %s metrics: country=%q capacity=%.1fkW output=%.0fkWh\n",
		reqID, req.Country, req.CapacityKW, req.FirstYearOutputKWh)

	calc := finance.NewCalculator(req.Country, h.Rates, h.Log)
	eval := calc.EvaluateProject(req)

	fmt.Printf("[FINANCE] %s done: npv=%.2f irr=%.2f%% payback=%v\n",
		reqID, eval.Metrics.NPV, eval.Metrics.IRR, eval.Metrics.PaybackPeriod)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(eval)
}

// CurrencyRequest switches inputs from their current currency context to a
// new one. The converted inputs come back in the response; the posted copy
// is what gets rescaled.
type CurrencyRequest struct {
	Country     string                  `json:"country"`
	NewCurrency string                  `json:"new_currency"`
	Inputs      finance.FinancialInputs `json:"inputs"`
}

// CurrencyResponse carries the rescaled inputs and the resulting settings.
type CurrencyResponse struct {
	Settings finance.Settings        `json:"settings"`
	Inputs   finance.FinancialInputs `json:"inputs"`
}

// HandleCurrency applies a currency change to posted financial inputs.
func (h *Handler) HandleCurrency(w http.ResponseWriter, r *http.Request) {
	cors(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req CurrencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	calc := finance.NewCalculator(req.Country, h.Rates, h.Log)
	calc.UpdateCurrency(req.NewCurrency, &req.Inputs)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(CurrencyResponse{
		Settings: calc.Settings(),
		Inputs:   req.Inputs,
	})
}

// RegionsResponse exposes the reference tables for UI pickers.
type RegionsResponse struct {
	Regions    map[string]finance.RegionalProfile `json:"regions"`
	Currencies map[string]finance.CurrencyInfo    `json:"currencies"`
}

// HandleRegions serves the regional cost and currency reference tables.
func (h *Handler) HandleRegions(w http.ResponseWriter, r *http.Request) {
	cors(w)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(RegionsResponse{
		Regions:    finance.RegionCosts,
		Currencies: finance.Currencies,
	})
}

// HandleReport evaluates a project and returns a Markdown report, or HTML
// when ?format=html is set.
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	cors(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req finance.ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	calc := finance.NewCalculator(req.Country, h.Rates, h.Log)
	eval := calc.EvaluateProject(req)
	report := finance.BuildReport(eval)

	if !utils.ValidateMarkdown(report) {
		http.Error(w, "Report rendering failed", http.StatusInternalServerError)
		return
	}

	if r.URL.Query().Get("format") == "html" {
		html, err := utils.RenderMarkdown(report)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, html)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	fmt.Fprint(w, report)
}
