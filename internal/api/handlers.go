package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"xrate/internal/provider"
	"xrate/internal/service"
)

// RateResponse represents the response for a single-currency rate
type RateResponse struct {
	Currency string `json:"currency" example:"USD"`
	Date     string `json:"date" example:"2010-06-25"`
	Rate     string `json:"rate" example:"1.2271"`
}

// CrossRateResponse represents the response for a cross-rate between two currencies
type CrossRateResponse struct {
	Base  string `json:"base" example:"USD"`
	Quote string `json:"quote" example:"GBP"`
	Date  string `json:"date" example:"2010-06-25"`
	Rate  string `json:"rate" example:"1.4901"`
}

// HandleGetRate godoc
// @Summary Get the rate of a currency on a date
// @Description Fetches the daily rate document for the date and returns the rate of the currency against the source's base currency.
// @Tags rates
// @Produce json
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Param day path int true "Day of month"
// @Param code path string true "Currency code (3 upper-case letters)" minlength(3) maxlength(3)
// @Success 200 {object} RateResponse "Rate found"
// @Failure 400 {object} ErrorResponse "Invalid date or currency code"
// @Failure 404 {object} ErrorResponse "Currency not listed for the date"
// @Failure 502 {object} ErrorResponse "Rate source unavailable or returned an invalid document"
// @Router /rates/{year}/{month}/{day}/{code} [get]
func HandleGetRate(svc service.RateServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date, err := service.ParseDate(chi.URLParam(r, "year"), chi.URLParam(r, "month"), chi.URLParam(r, "day"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}

		res, err := svc.GetRate(r.Context(), chi.URLParam(r, "code"), date)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, RateResponse{
			Currency: res.Quote,
			Date:     res.Date,
			Rate:     service.FormatRate(res.Rate),
		})
	}
}

// HandleGetCrossRate godoc
// @Summary Get the cross-rate between two currencies on a date
// @Description Fetches the daily rate document once and returns rate(from) / rate(to).
// @Tags rates
// @Produce json
// @Param year path int true "Year"
// @Param month path int true "Month (1-12)"
// @Param day path int true "Day of month"
// @Param from path string true "Base currency code" minlength(3) maxlength(3)
// @Param to path string true "Quote currency code" minlength(3) maxlength(3)
// @Success 200 {object} CrossRateResponse "Cross-rate computed"
// @Failure 400 {object} ErrorResponse "Invalid date or currency code"
// @Failure 404 {object} ErrorResponse "Currency not listed for the date"
// @Failure 422 {object} ErrorResponse "Quote currency rate is zero"
// @Failure 502 {object} ErrorResponse "Rate source unavailable or returned an invalid document"
// @Router /rates/{year}/{month}/{day}/{from}/{to} [get]
func HandleGetCrossRate(svc service.RateServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date, err := service.ParseDate(chi.URLParam(r, "year"), chi.URLParam(r, "month"), chi.URLParam(r, "day"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}

		res, err := svc.GetCrossRate(r.Context(), chi.URLParam(r, "from"), chi.URLParam(r, "to"), date)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, CrossRateResponse{
			Base:  res.Base,
			Quote: res.Quote,
			Date:  res.Date,
			Rate:  service.FormatRate(res.Rate),
		})
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCurrencyCode),
		errors.Is(err, service.ErrUnsupportedCurrency),
		errors.Is(err, service.ErrInvalidDate):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, provider.ErrCurrencyNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, provider.ErrZeroRate):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case errors.Is(err, provider.ErrNetwork):
		writeJSON(w, http.StatusBadGateway, ErrorResponse{Error: "Rate source unavailable"})
	case errors.Is(err, provider.ErrParse):
		writeJSON(w, http.StatusBadGateway, ErrorResponse{Error: "Rate source returned an invalid document"})
	default:
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal error"})
	}
}
