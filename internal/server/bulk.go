package server

import (
	"errors"
	"net/http"

	"github.com/dmarins/parcelamento/pkg/bulk"
	"github.com/dmarins/parcelamento/pkg/money"
	"github.com/dmarins/parcelamento/pkg/validation"
)

type bulkTargetValue struct {
	EntityID string `json:"entityId"`
	StoreID  string `json:"storeId"`
	Field    string `json:"field"`
	Cents    int64  `json:"cents"`
}

type bulkRequest struct {
	Mode          string             `json:"mode"`
	EntityIDs     []string           `json:"entityIds"`
	StoreIDs      []string           `json:"storeIds"`
	Fields        []string           `json:"fields"`
	PercentDeltas map[string]float64 `json:"percentDeltas,omitempty"`
	FixedDeltas   map[string]int64   `json:"fixedDeltas,omitempty"`
	Overrides     []bulkTargetValue  `json:"overrides,omitempty"`
	CurrentValues []bulkTargetValue  `json:"currentValues"`
}

type bulkItemResponse struct {
	EntityID      string `json:"entityId"`
	StoreID       string `json:"storeId"`
	Field         string `json:"field"`
	PreviousCents int64  `json:"previousCents"`
	NewCents      int64  `json:"newCents"`
	Error         string `json:"error,omitempty"`
}

type bulkResponse struct {
	Summary   string             `json:"summary"`
	Succeeded int                `json:"succeeded"`
	Failed    int                `json:"failed"`
	Items     []bulkItemResponse `json:"items"`
}

func (h *handler) handleBulkApply(w http.ResponseWriter, r *http.Request) {
	var req bulkRequest
	if !h.decode(w, r, &req) {
		return
	}

	spec := bulk.Spec{
		Mode:          bulk.Mode(req.Mode),
		EntityIDs:     req.EntityIDs,
		StoreIDs:      req.StoreIDs,
		Fields:        req.Fields,
		PercentDeltas: req.PercentDeltas,
		FixedDeltas:   req.FixedDeltas,
	}
	if len(req.Overrides) > 0 {
		spec.Overrides = make(map[bulk.TargetKey]int64, len(req.Overrides))
		for _, o := range req.Overrides {
			spec.Overrides[bulk.TargetKey{EntityID: o.EntityID, StoreID: o.StoreID, Field: o.Field}] = o.Cents
		}
	}

	values := make(map[bulk.TargetKey]money.Cents, len(req.CurrentValues))
	for _, v := range req.CurrentValues {
		values[bulk.TargetKey{EntityID: v.EntityID, StoreID: v.StoreID, Field: v.Field}] = money.Cents(v.Cents)
	}

	report, err := h.bulkEngine.ApplyBatch(spec, values)
	if err != nil {
		// Spec-level rejection happens before any value is touched.
		var confErr *validation.ConfigurationError
		if errors.As(err, &confErr) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.respondEngineError(w, err)
		return
	}

	items := make([]bulkItemResponse, len(report.Items))
	for i, item := range report.Items {
		items[i] = bulkItemResponse{
			EntityID:      item.Key.EntityID,
			StoreID:       item.Key.StoreID,
			Field:         item.Key.Field,
			PreviousCents: item.Previous.Int64(),
			NewCents:      item.Value.Int64(),
		}
		if item.Err != nil {
			items[i].Error = item.Err.Error()
		}
	}

	h.respondJSON(w, http.StatusOK, bulkResponse{
		Summary:   report.Summary(),
		Succeeded: report.Succeeded,
		Failed:    report.Failed,
		Items:     items,
	})
}
