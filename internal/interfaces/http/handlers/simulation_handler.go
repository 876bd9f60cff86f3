package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/OLVCORE/smartimport/internal/domain/costing"
	domain "github.com/OLVCORE/smartimport/internal/domain/simulation"
	"github.com/OLVCORE/smartimport/pkg/errors"
)

// SimulationRunner is the handler's view of the simulation service.
type SimulationRunner interface {
	Run(ctx context.Context, req domain.Request) (*domain.Simulation, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Simulation, error)
	List(ctx context.Context, limit int) ([]*domain.Simulation, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SimulationHandler serves landed-cost simulation runs.
type SimulationHandler struct {
	service SimulationRunner
}

// NewSimulationHandler builds the handler.
func NewSimulationHandler(service SimulationRunner) *SimulationHandler {
	return &SimulationHandler{service: service}
}

// namedAmount mirrors costing.NamedAmount with a string amount on the wire.
type namedAmount struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

type runRequest struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Currency      string `json:"currency"`
	OperationDate string `json:"operation_date"`
	RegionCode    string `json:"region_code"`

	Quantity  string `json:"quantity"`
	UnitValue string `json:"unit_value"`
	Freight   string `json:"freight"`
	Insurance string `json:"insurance"`

	Duties           []namedAmount `json:"duties"`
	DeclaredExpenses string        `json:"declared_expenses"`
	SelectedExpenses []namedAmount `json:"selected_expenses"`
	LicenseCost      string        `json:"license_cost"`

	IncentiveKeys []string `json:"incentive_keys"`
	RegimeKeys    []string `json:"regime_keys"`
}

// Run handles POST /simulations.
func (h *SimulationHandler) Run(w http.ResponseWriter, r *http.Request) {
	var body runRequest
	if err := decodeJSON(r, &body); err != nil {
		writeAppError(w, err)
		return
	}

	req, err := body.toDomain()
	if err != nil {
		writeAppError(w, err)
		return
	}

	sim, err := h.service.Run(r.Context(), req)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sim)
}

// Get handles GET /simulations/{id}.
func (h *SimulationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeAppError(w, errors.InvalidParam("id must be a UUID"))
		return
	}
	sim, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sim)
}

// List handles GET /simulations?limit=20.
func (h *SimulationHandler) List(w http.ResponseWriter, r *http.Request) {
	sims, err := h.service.List(r.Context(), parseLimit(r))
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"simulations": sims})
}

// Delete handles DELETE /simulations/{id}.
func (h *SimulationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeAppError(w, errors.InvalidParam("id must be a UUID"))
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		writeAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (b *runRequest) toDomain() (domain.Request, error) {
	req := domain.Request{
		Name:          b.Name,
		Description:   b.Description,
		Currency:      b.Currency,
		RegionCode:    b.RegionCode,
		IncentiveKeys: b.IncentiveKeys,
		RegimeKeys:    b.RegimeKeys,
	}

	if b.OperationDate != "" {
		parsed, err := time.Parse(dateLayout, b.OperationDate)
		if err != nil {
			return req, errors.InvalidParam("operation_date must be YYYY-MM-DD")
		}
		req.OperationDate = parsed
	}

	var err error
	if req.Quantity, err = parseDecimal(b.Quantity, "quantity"); err != nil {
		return req, err
	}
	if req.UnitValue, err = parseDecimal(b.UnitValue, "unit_value"); err != nil {
		return req, err
	}
	if req.Freight, err = parseDecimal(b.Freight, "freight"); err != nil {
		return req, err
	}
	if req.Insurance, err = parseDecimal(b.Insurance, "insurance"); err != nil {
		return req, err
	}
	if req.DeclaredExpenses, err = parseDecimal(b.DeclaredExpenses, "declared_expenses"); err != nil {
		return req, err
	}
	if req.LicenseCost, err = parseDecimal(b.LicenseCost, "license_cost"); err != nil {
		return req, err
	}
	if req.Duties, err = parseNamedAmounts(b.Duties, "duties"); err != nil {
		return req, err
	}
	if req.SelectedExpenses, err = parseNamedAmounts(b.SelectedExpenses, "selected_expenses"); err != nil {
		return req, err
	}
	return req, nil
}

// parseDecimal treats an empty string as zero.
func parseDecimal(raw, field string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, errors.InvalidParam(field + " must be a decimal number")
	}
	return d, nil
}

func parseNamedAmounts(in []namedAmount, field string) ([]costing.NamedAmount, error) {
	out := make([]costing.NamedAmount, 0, len(in))
	for _, na := range in {
		amount, err := parseDecimal(na.Amount, field)
		if err != nil {
			return nil, err
		}
		out = append(out, costing.NamedAmount{Name: na.Name, Amount: amount})
	}
	return out, nil
}

//Personal.AI order the ending
