package notify

import "fmt"

// Render produces the subject and body for an alert. The body is what chat
// channels send verbatim; email prepends the subject.
func Render(a AlertPayload) (subject, body string) {
	if a.Kind == KindPriceDrop {
		return renderDrop(a)
	}
	return renderOffer(a)
}

func renderOffer(a AlertPayload) (string, string) {
	var emoji, status, urgency string
	switch a.Kind {
	case KindTarget:
		emoji = "🎯🔥"
		status = fmt.Sprintf("TARGET PRICE €%.0f REACHED!", a.TargetPrice)
		urgency = "BOOK NOW!"
	case KindGood:
		emoji = "✨💰"
		status = fmt.Sprintf("GREAT PRICE €%.0f REACHED!", a.GoodPrice)
		urgency = "Excellent price!"
	default:
		emoji = "📢💡"
		status = fmt.Sprintf("Interesting price below €%.0f", a.NotifyBelow)
		urgency = "Worth a look!"
	}

	total := a.Price * float64(a.Passengers)
	savings := (a.BaselinePrice - a.Price) * float64(a.Passengers)

	subject := fmt.Sprintf("🔥 FLIGHT DEAL! €%.0f", a.Price)
	body := fmt.Sprintf(`%s DEAL FOUND! %s

✈️ Direct %s→%s
📅 %s → %s
📊 Type: %s
🌐 Source: %s

💰 €%.0f/person
💰 €%.0f TOTAL x%d

🎯 SAVINGS: €%.0f total!
🟢 %s

🏃 %s

🔗 Link: %s`,
		emoji, emoji,
		a.Origin, a.Destination,
		a.Departure, a.Return,
		a.TripType,
		a.Source,
		a.Price,
		total, a.Passengers,
		savings,
		status,
		urgency,
		a.Link)
	return subject, body
}

func renderDrop(a AlertPayload) (string, string) {
	perPerson := a.PreviousPrice - a.Price
	total := a.Price * float64(a.Passengers)
	savings := perPerson * float64(a.Passengers)

	subject := fmt.Sprintf("📉 PRICE DROP! €%.0f", a.Price)
	body := fmt.Sprintf(`📉 PRICE DROP! 📉

✈️ Direct %s→%s
📅 %s → %s

💰 Before: €%.0f/person
💰 Now: €%.0f/person
📉 Down: €%.0f

💰 TOTAL x%d: €%.0f
🎯 SAVINGS: €%.0f

🟢 Significant drop!
🌐 Source: %s
🔗 Link: %s`,
		a.Origin, a.Destination,
		a.Departure, a.Return,
		a.PreviousPrice,
		a.Price,
		perPerson,
		a.Passengers, total,
		savings,
		a.Source,
		a.Link)
	return subject, body
}
