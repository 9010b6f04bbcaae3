// Package server exposes the calculator over a small JSON HTTP API. A form
// front-end posts its current field snapshot to /api/calculate on every
// change and renders the returned display string.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/iwvelando/annuity-calc/internal/calculator"
	"github.com/iwvelando/annuity-calc/pkg/annuity"
	"github.com/iwvelando/annuity-calc/pkg/constants"
	"github.com/iwvelando/annuity-calc/pkg/output"
	"go.uber.org/zap"
)

type handler struct {
	logger         *zap.Logger
	maxRequestSize int64
	version        string
	calc           *calculator.Calculator
}

// NewHandler constructs the HTTP handler that serves the calculation API.
func NewHandler(logger *zap.Logger, maxRequestSize int64, version string, calc *calculator.Calculator) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxRequestSize <= 0 {
		maxRequestSize = constants.DefaultMaxRequestSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	if calc == nil {
		calc = calculator.New(logger, annuity.SolverConfig{})
	}

	h := &handler{logger: logger, maxRequestSize: maxRequestSize, version: trimmedVersion, calc: calc}

	mux := http.NewServeMux()

	// Recalculation endpoint, invoked on every input change
	mux.HandleFunc("/api/calculate", h.handleCalculate)

	// Selector metadata for the form
	mux.HandleFunc("/api/terms", h.handleTerms)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type calculateResponse struct {
	output.Report
	Duration string `json:"duration"`
}

type skippedResponse struct {
	Skipped bool   `json:"skipped"`
	Reason  string `json:"reason"`
}

type termsResponse struct {
	Terms []int    `json:"terms"`
	Modes []string `json:"modes"`
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)

	var raw calculator.RawInputs
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxRequestSize))
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode inputs: %v", err))
		return
	}

	in, err := calculator.ParseInputs(raw)
	if err != nil {
		// Incomplete input: the form keeps its previous result.
		h.logger.Debug("skipping recalculation",
			zap.String("op", "server.handleCalculate"),
			zap.Error(err),
		)
		h.writeJSON(w, http.StatusUnprocessableEntity, skippedResponse{Skipped: true, Reason: err.Error()})
		return
	}

	result := h.calc.Calculate(in)
	elapsed := time.Since(start)

	h.logger.Info("calculation served",
		zap.String("op", "server.handleCalculate"),
		zap.String("mode", in.Mode.String()),
		zap.String("kind", result.Kind.String()),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, calculateResponse{
		Report:   output.NewReport(in, result),
		Duration: elapsed.String(),
	})
}

func (h *handler) handleTerms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, termsResponse{
		Terms: append([]int(nil), calculator.TermChoices...),
		Modes: []string{calculator.ModePayment.String(), calculator.ModeRate.String()},
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string) {
	h.logger.Error("calculation request failed",
		zap.String("op", "server.handleCalculate"),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
