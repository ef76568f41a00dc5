package server

import (
	"net/http"

	"github.com/dmarins/parcelamento/pkg/money"
	"github.com/dmarins/parcelamento/pkg/tradein"
)

type tradeInRequest struct {
	StoreID            string   `json:"storeId"`
	DeviceModel        string   `json:"deviceModel"`
	Damages            []string `json:"damages,omitempty"`
	ProposedValueCents int64    `json:"proposedValueCents"`
}

type tradeInResponse struct {
	SuggestedMinCents   int64  `json:"suggestedMinCents"`
	SuggestedMaxCents   int64  `json:"suggestedMaxCents"`
	TotalDeductionCents int64  `json:"totalDeductionCents"`
	Valid               bool   `json:"valid"`
	Kind                string `json:"kind,omitempty"`
	Message             string `json:"message,omitempty"`
}

func (h *handler) handleTradeInValidate(w http.ResponseWriter, r *http.Request) {
	var req tradeInRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.StoreID == "" || req.DeviceModel == "" {
		h.respondError(w, http.StatusBadRequest, "storeId and deviceModel are required")
		return
	}

	deviceRange, err := h.catalog.TradeInRangeFor(req.DeviceModel, req.StoreID)
	if err != nil {
		h.respondEngineError(w, err)
		return
	}

	deductions, unknown := h.selectDeductions(req.Damages)
	if unknown != "" {
		h.respondError(w, http.StatusBadRequest, "unknown damage type: "+unknown)
		return
	}

	suggested, err := tradein.Suggest(deviceRange, deductions)
	if err != nil {
		h.respondEngineError(w, err)
		return
	}

	// The proposed value may legitimately arrive negative from a form; the
	// valuator reports it as an InvalidValue outcome rather than an error.
	result, err := tradein.Validate(deviceRange, deductions, money.Cents(req.ProposedValueCents))
	if err != nil {
		h.respondEngineError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, tradeInResponse{
		SuggestedMinCents:   suggested.Min.Int64(),
		SuggestedMaxCents:   suggested.Max.Int64(),
		TotalDeductionCents: tradein.TotalDeduction(deductions).Int64(),
		Valid:               result.Valid,
		Kind:                string(result.Kind),
		Message:             result.Message,
	})
}

// selectDeductions resolves damage names against the configured table. The
// second return is the first unknown name, empty when all resolve.
func (h *handler) selectDeductions(names []string) ([]tradein.Deduction, string) {
	table := h.catalog.DamageTable()
	byName := make(map[string]tradein.Deduction, len(table))
	for _, d := range table {
		byName[d.Name] = d
	}

	var selected []tradein.Deduction
	for _, name := range names {
		d, ok := byName[name]
		if !ok {
			return nil, name
		}
		selected = append(selected, d)
	}
	return selected, ""
}
