package providers

import (
	"fmt"
	"net/url"
	"strings"
)

// Display names of the link-only sources, keyed by the short names used in
// the enabled-source list.
var LinkSites = map[string]string{
	"google":     "Google Flights",
	"skyscanner": "Skyscanner",
	"kayak":      "Kayak",
	"aeromexico": "Aeromexico",
}

// BuildLink returns a search deep link for the given site and parameters.
// Deterministic per input tuple; an unknown site falls back to the generic
// Google Flights page.
func BuildLink(site, origin, destination, departureDate, returnDate string, adults int) string {
	switch site {
	case "Google Flights", "google":
		params := url.Values{}
		params.Set("hl", "it")
		params.Set("gl", "it")
		fragment := fmt.Sprintf("#flt=%s.%s.%s*%s.%s.%s;c:EUR;e:1;sd:1;tt:o",
			origin, destination, departureDate, destination, origin, returnDate)
		return "https://www.google.com/travel/flights?" + params.Encode() + fragment
	case "Skyscanner", "skyscanner":
		return fmt.Sprintf("https://www.skyscanner.it/trasporti/voli/%s/%s/%s/%s/?adults=%d&currency=EUR",
			strings.ToLower(origin),
			strings.ToLower(destination),
			strings.ReplaceAll(departureDate, "-", ""),
			strings.ReplaceAll(returnDate, "-", ""),
			adults)
	case "Kayak", "kayak":
		return fmt.Sprintf("https://www.kayak.it/flights/%s-%s/%s/%s?adults=%d&c=EUR",
			origin, destination, departureDate, returnDate, adults)
	case "Aeromexico", "aeromexico":
		params := url.Values{}
		params.Set("tripType", "roundTrip")
		params.Set("adults", fmt.Sprint(adults))
		params.Set("children", "0")
		params.Set("infants", "0")
		params.Set("origin", origin)
		params.Set("destination", destination)
		params.Set("departureDate", departureDate)
		params.Set("returnDate", returnDate)
		params.Set("cabin", "ECONOMY")
		return "https://aeromexico.com/en-us/search?" + params.Encode()
	}
	return "https://www.google.com/travel/flights"
}
