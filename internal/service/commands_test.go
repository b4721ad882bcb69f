package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/you/go-flight-monitor/internal/providers"
)

func testDefaults() CommandDefaults {
	return CommandDefaults{
		Origin:        "FCO",
		Destination:   "MEX",
		DepartureDate: "2026-01-12",
		ReturnDate:    "2026-02-08",
		Passengers:    4,
	}
}

func TestInterpret_Start(t *testing.T) {
	interp := NewCommandInterpreter(newTestAggregator([]string{"kayak"}), testDefaults())

	for _, cmd := range []string{"/start", "start", "  /START  "} {
		reply := interp.Interpret(context.Background(), cmd)
		assert.Contains(t, reply, "/prices", "command %q", cmd)
		assert.Contains(t, reply, "FCO MEX 2026-01-12 2026-02-08 4")
	}
}

func TestInterpret_UnknownCommand(t *testing.T) {
	interp := NewCommandInterpreter(newTestAggregator([]string{"kayak"}), testDefaults())
	assert.Equal(t, "Command not recognized. Use /prices", interp.Interpret(context.Background(), "/weather"))
}

func TestInterpret_PricesWithDefaults(t *testing.T) {
	p := ProviderMock{name: "amadeus", offers: []providers.Offer{{TotalPrice: 1100, Currency: "EUR"}}}
	interp := NewCommandInterpreter(newTestAggregator([]string{"amadeus", "kayak"}, p), testDefaults())

	reply := interp.Interpret(context.Background(), "/prices")
	lines := strings.Split(reply, "\n")
	require.GreaterOrEqual(t, len(lines), 3)

	assert.Contains(t, lines[0], "FCO→MEX")
	assert.Contains(t, lines[0], "2026-01-12→2026-02-08")
	assert.Contains(t, lines[0], "adults: 4")
	assert.Contains(t, reply, "- amadeus: €1100")
	assert.Contains(t, reply, "- Kayak: —")
}

func TestInterpret_PricesWithFullArguments(t *testing.T) {
	interp := NewCommandInterpreter(newTestAggregator([]string{"kayak"}), testDefaults())

	reply := interp.Interpret(context.Background(), "/prices ams bcn 2026-03-01 2026-03-20 2")
	assert.Contains(t, reply, "AMS→BCN 2026-03-01→2026-03-20 (adults: 2)")
	assert.Contains(t, reply, "AMS-BCN")
}

func TestInterpret_PricesWithPartialArgumentsFallsBack(t *testing.T) {
	interp := NewCommandInterpreter(newTestAggregator([]string{"kayak"}), testDefaults())

	// Only origin and destination given; dates and passengers come from the
	// defaults.
	reply := interp.Interpret(context.Background(), "/prices AMS BCN")
	assert.Contains(t, reply, "AMS→BCN 2026-01-12→2026-02-08 (adults: 4)")
}

func TestInterpret_PricesWithBadAdultsFallsBack(t *testing.T) {
	interp := NewCommandInterpreter(newTestAggregator([]string{"kayak"}), testDefaults())

	reply := interp.Interpret(context.Background(), "/prices AMS BCN 2026-03-01 2026-03-20 many")
	assert.Contains(t, reply, "(adults: 4)")
}

func TestInterpret_PricesReportsSourceErrors(t *testing.T) {
	p := ProviderMock{name: "amadeus", errorOut: assert.AnError}
	interp := NewCommandInterpreter(newTestAggregator([]string{"amadeus"}, p), testDefaults())

	reply := interp.Interpret(context.Background(), "/prices")
	assert.Contains(t, reply, "- amadeus: error")
}
