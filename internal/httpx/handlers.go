package httpx

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/you/go-flight-monitor/internal/service"
)

type sourceResponse struct {
	Source string   `json:"source"`
	Price  *float64 `json:"price,omitempty"`
	Link   string   `json:"link,omitempty"`
	Error  string   `json:"error,omitempty"`
}

type livePricesResponse struct {
	Origin      string           `json:"origin"`
	Destination string           `json:"destination"`
	Departure   string           `json:"departure"`
	Return      string           `json:"return"`
	Adults      int              `json:"adults"`
	Sources     []sourceResponse `json:"sources"`
}

// LivePricesHandler resolves one date pair on demand across the enabled
// sources. Missing parameters fall back to the monitored trip.
func LivePricesHandler(agg *service.Aggregator, defaults service.CommandDefaults) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		origin := defaults.Origin
		destination := defaults.Destination
		departure := defaults.DepartureDate
		ret := defaults.ReturnDate
		adults := defaults.Passengers

		if v := q.Get("origin"); v != "" {
			origin = strings.ToUpper(v)
		}
		if v := q.Get("destination"); v != "" {
			destination = strings.ToUpper(v)
		}
		if v := q.Get("departure"); v != "" {
			departure = v
		}
		if v := q.Get("return"); v != "" {
			ret = v
		}
		if v := q.Get("adults"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				adults = n
			}
		}

		results, err := agg.ResolveRoute(r.Context(), origin, destination, departure, ret, adults, service.TripIdeal)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}

		resp := livePricesResponse{
			Origin: origin, Destination: destination,
			Departure: departure, Return: ret, Adults: adults,
		}
		for _, res := range results {
			sr := sourceResponse{Source: res.Source}
			if res.Err != nil {
				sr.Error = res.Err.Error()
			} else {
				sr.Source = res.Quote.Source
				sr.Price = res.Quote.Price
				sr.Link = res.Quote.Link
			}
			resp.Sources = append(resp.Sources, sr)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

type checkResponse struct {
	Tier          string   `json:"tier"`
	BestPrice     *float64 `json:"best_price,omitempty"`
	Source        string   `json:"source,omitempty"`
	PreviousPrice float64  `json:"previous_price"`
}

// CheckNowHandler triggers a monitor run outside the schedule.
func CheckNowHandler(m *service.Monitor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		outcome, err := m.CheckPrices(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		resp := checkResponse{
			Tier:          outcome.Tier.String(),
			PreviousPrice: outcome.PreviousPrice,
		}
		if outcome.Best != nil {
			resp.BestPrice = outcome.Best.Price
			resp.Source = outcome.Best.Source
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}
