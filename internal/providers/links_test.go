package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildLink_GoogleFlights(t *testing.T) {
	link := BuildLink("Google Flights", "FCO", "MEX", "2026-01-12", "2026-02-08", 4)
	assert.Contains(t, link, "https://www.google.com/travel/flights?")
	assert.Contains(t, link, "#flt=FCO.MEX.2026-01-12*MEX.FCO.2026-02-08")
}

func TestBuildLink_Skyscanner(t *testing.T) {
	link := BuildLink("Skyscanner", "FCO", "MEX", "2026-01-12", "2026-02-08", 4)
	assert.Equal(t, "https://www.skyscanner.it/trasporti/voli/fco/mex/20260112/20260208/?adults=4&currency=EUR", link)
}

func TestBuildLink_Kayak(t *testing.T) {
	link := BuildLink("Kayak", "FCO", "MEX", "2026-01-12", "2026-02-08", 4)
	assert.Equal(t, "https://www.kayak.it/flights/FCO-MEX/2026-01-12/2026-02-08?adults=4&c=EUR", link)
}

func TestBuildLink_Aeromexico(t *testing.T) {
	link := BuildLink("Aeromexico", "FCO", "MEX", "2026-01-12", "2026-02-08", 4)
	assert.Contains(t, link, "https://aeromexico.com/en-us/search?")
	assert.Contains(t, link, "origin=FCO")
	assert.Contains(t, link, "destination=MEX")
	assert.Contains(t, link, "departureDate=2026-01-12")
	assert.Contains(t, link, "adults=4")
}

func TestBuildLink_ShortNamesMatchDisplayNames(t *testing.T) {
	for short, display := range LinkSites {
		assert.Equal(t,
			BuildLink(display, "FCO", "MEX", "2026-01-12", "2026-02-08", 2),
			BuildLink(short, "FCO", "MEX", "2026-01-12", "2026-02-08", 2))
	}
}

func TestBuildLink_UnknownSiteFallsBack(t *testing.T) {
	assert.Equal(t, "https://www.google.com/travel/flights",
		BuildLink("mystery-travel", "FCO", "MEX", "2026-01-12", "2026-02-08", 4))
}

func TestBuildLink_Deterministic(t *testing.T) {
	a := BuildLink("Aeromexico", "FCO", "MEX", "2026-01-12", "2026-02-08", 4)
	b := BuildLink("Aeromexico", "FCO", "MEX", "2026-01-12", "2026-02-08", 4)
	assert.Equal(t, a, b)
}
