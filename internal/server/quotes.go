package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/dmarins/parcelamento/pkg/money"
	"github.com/dmarins/parcelamento/pkg/quote"
	"github.com/dmarins/parcelamento/pkg/quotetext"
)

type quoteRequest struct {
	StoreID            string `json:"storeId"`
	RateTableID        string `json:"rateTableId,omitempty"`
	ProductID          string `json:"productId,omitempty"`
	ProductName        string `json:"productName,omitempty"`
	PriceCents         *int64 `json:"priceCents,omitempty"`
	DownPaymentCents   int64  `json:"downPaymentCents"`
	TradeInCreditCents int64  `json:"tradeInCreditCents"`
}

type optionResponse struct {
	Label               string `json:"label"`
	Installments        int    `json:"installments"`
	PerInstallmentCents int64  `json:"perInstallmentCents"`
	TotalFinancedCents  int64  `json:"totalFinancedCents"`
	IncludesDownPayment bool   `json:"includesDownPayment"`
}

type quoteBody struct {
	RateTableID string           `json:"rateTableId"`
	BaseCents   int64            `json:"baseCents"`
	Options     []optionResponse `json:"options"`
	Text        string           `json:"text"`
}

type quoteResponse struct {
	ID     string `json:"id"`
	Cached bool   `json:"cached"`
	quoteBody
}

func (h *handler) handleQuote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.StoreID == "" {
		h.respondError(w, http.StatusBadRequest, "storeId is required")
		return
	}
	if req.PriceCents == nil && req.ProductID == "" {
		h.respondError(w, http.StatusBadRequest, "either priceCents or productId is required")
		return
	}

	table, err := h.resolveTable(req)
	if err != nil {
		h.respondEngineError(w, err)
		return
	}

	input, product, err := h.resolveInput(req)
	if err != nil {
		h.respondEngineError(w, err)
		return
	}
	if product == "" {
		product = "Produto"
	}

	cacheKey := fmt.Sprintf("quote:%s:%s:%d:%d:%d",
		table.ID, product, input.Price, input.DownPayment, input.TradeInCredit)
	if cached, ok := h.cache.Get(cacheKey); ok {
		var body quoteBody
		if err := json.Unmarshal([]byte(cached), &body); err == nil {
			h.respondJSON(w, http.StatusOK, quoteResponse{ID: newQuoteID(), Cached: true, quoteBody: body})
			return
		}
		h.logger.Warn("discarding undecodable cached quote",
			zap.String("op", "server.handleQuote"),
			zap.String("key", cacheKey),
		)
	}

	computed, err := quote.Compute(input, table)
	if err != nil {
		h.respondEngineError(w, err)
		return
	}

	body := quoteBody{
		RateTableID: table.ID,
		BaseCents:   computed.Base.Int64(),
		Options:     toOptionResponses(computed.Options),
		Text:        quotetext.FormatBasicQuote(product, input, computed),
	}

	if encoded, err := json.Marshal(body); err == nil {
		if err := h.cache.Set(cacheKey, string(encoded)); err != nil {
			// Cache trouble should never fail a quote.
			h.logger.Warn("failed to cache quote",
				zap.String("op", "server.handleQuote"),
				zap.String("key", cacheKey),
				zap.Error(err),
			)
		}
	}

	h.respondJSON(w, http.StatusOK, quoteResponse{ID: newQuoteID(), quoteBody: body})
}

// resolveTable picks the rate table: an explicit ID wins, otherwise the
// store's active table.
func (h *handler) resolveTable(req quoteRequest) (quote.RateTable, error) {
	if req.RateTableID != "" {
		return h.catalog.RateTable(req.RateTableID)
	}
	return h.catalog.RateTableForStore(req.StoreID)
}

// resolveInput builds the calculator input, looking the price up in the
// catalog when the request names a product instead of supplying it.
func (h *handler) resolveInput(req quoteRequest) (quote.Input, string, error) {
	var price money.Cents
	var err error

	product := req.ProductName
	switch {
	case req.PriceCents != nil:
		price, err = money.FromInt("priceCents", *req.PriceCents)
	default:
		price, err = h.catalog.ProductPrice(req.ProductID, req.StoreID)
		if product == "" {
			product = req.ProductID
		}
	}
	if err != nil {
		return quote.Input{}, "", err
	}

	down, err := money.FromInt("downPaymentCents", req.DownPaymentCents)
	if err != nil {
		return quote.Input{}, "", err
	}
	tradeIn, err := money.FromInt("tradeInCreditCents", req.TradeInCreditCents)
	if err != nil {
		return quote.Input{}, "", err
	}

	return quote.Input{Price: price, DownPayment: down, TradeInCredit: tradeIn}, product, nil
}

func toOptionResponses(options []quote.InstallmentOption) []optionResponse {
	out := make([]optionResponse, len(options))
	for i, opt := range options {
		out[i] = optionResponse{
			Label:               opt.Label,
			Installments:        opt.Installments,
			PerInstallmentCents: opt.PerInstallment.Int64(),
			TotalFinancedCents:  opt.TotalFinanced.Int64(),
			IncludesDownPayment: opt.IncludesDownPayment,
		}
	}
	return out
}
