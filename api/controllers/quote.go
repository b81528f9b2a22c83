package controllers

import (
	"fmt"
	"net/http"

	"github.com/OmerAlfiel/Shahen-website/api/responses"
	"github.com/OmerAlfiel/Shahen-website/api/validators"
	"github.com/OmerAlfiel/Shahen-website/internal/quote"
	pkgerrors "github.com/OmerAlfiel/Shahen-website/pkg/errors"
	"github.com/OmerAlfiel/Shahen-website/pkg/logger"
	"github.com/OmerAlfiel/Shahen-website/pkg/metrics"
)

// EstimateQuote prices a quote request. Unknown truck labels are priced at
// the default tariff rather than rejected.
func EstimateQuote(svc quote.Service, m *metrics.QuoteMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}

		var body quote.EstimateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		req := body.Normalize()
		estimate, err := estimateSafely(svc, req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		m.ObserveEstimate(quote.TierName(quote.ClassifyTruck(req.TruckLabel)), estimate.Estimate)
		responses.WriteSuccess(w, "Quote estimated successfully", estimate)
	}
}

func estimateSafely(svc quote.Service, req quote.Request) (estimate quote.Estimate, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			cause := fmt.Errorf("%v", rec)
			err = pkgerrors.Wrap(pkgerrors.CodeInternal, cause, "Failed to estimate quote").WithDetails(cause)
		}
	}()
	return svc.Estimate(req), nil
}
