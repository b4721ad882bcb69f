package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// CommandDefaults fills in any trailing /prices arguments the user omits.
type CommandDefaults struct {
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string
	Passengers    int
}

// CommandInterpreter turns short text commands from the chat bot into live
// lookups across the enabled sources.
type CommandInterpreter struct {
	agg      *Aggregator
	defaults CommandDefaults
}

func NewCommandInterpreter(agg *Aggregator, defaults CommandDefaults) *CommandInterpreter {
	return &CommandInterpreter{agg: agg, defaults: defaults}
}

func (c *CommandInterpreter) helpText() string {
	return fmt.Sprintf("👋 Hi! Use /prices for live prices on the monitored dates.\n"+
		"You can also use: /prices %s %s %s %s %d",
		c.defaults.Origin, c.defaults.Destination,
		c.defaults.DepartureDate, c.defaults.ReturnDate, c.defaults.Passengers)
}

// Interpret handles one incoming message and returns the reply text.
func (c *CommandInterpreter) Interpret(ctx context.Context, text string) string {
	switch verb := strings.ToLower(strings.TrimSpace(text)); {
	case verb == "/start" || verb == "start":
		return c.helpText()
	case strings.HasPrefix(verb, "/prices"):
		return c.livePrices(ctx, text)
	}
	return "Command not recognized. Use /prices"
}

// livePrices parses "/prices [ORIG] [DEST] [YYYY-MM-DD] [YYYY-MM-DD] [adults]",
// falling back to the configured defaults for missing trailing arguments.
func (c *CommandInterpreter) livePrices(ctx context.Context, text string) string {
	origin := c.defaults.Origin
	destination := c.defaults.Destination
	departure := c.defaults.DepartureDate
	ret := c.defaults.ReturnDate
	adults := c.defaults.Passengers

	parts := strings.Fields(text)
	if len(parts) > 1 {
		origin = strings.ToUpper(parts[1])
	}
	if len(parts) > 2 {
		destination = strings.ToUpper(parts[2])
	}
	if len(parts) > 3 {
		departure = parts[3]
	}
	if len(parts) > 4 {
		ret = parts[4]
	}
	if len(parts) > 5 {
		if n, err := strconv.Atoi(parts[5]); err == nil {
			adults = n
		}
	}

	results, err := c.agg.ResolveRoute(ctx, origin, destination, departure, ret, adults, TripIdeal)
	if err != nil {
		return "Lookup failed: " + err.Error()
	}

	lines := []string{fmt.Sprintf("📊 Live prices %s→%s %s→%s (adults: %d)",
		origin, destination, departure, ret, adults)}
	for _, r := range results {
		if r.Err != nil {
			lines = append(lines, fmt.Sprintf("- %s: error %v", r.Source, r.Err))
			continue
		}
		price := "—"
		if r.Quote.Price != nil {
			price = fmt.Sprintf("€%.0f", *r.Quote.Price)
		}
		lines = append(lines, fmt.Sprintf("- %s: %s\n  %s", r.Quote.Source, price, r.Quote.Link))
	}
	return strings.Join(lines, "\n")
}
