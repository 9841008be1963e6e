package notifier

import (
	"fmt"
	"strings"

	"flights-bot/pkg/flights"

	"github.com/disgoorg/disgo/discord"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	embedColor = 0x3498DB
	timeLayout = "2006-01-02 15:04"
)

var printer = message.NewPrinter(language.English)

func BuildEmbed(q flights.Query, offers []flights.Offer) discord.Embed {
	embedBuilder := discord.NewEmbedBuilder()
	embedBuilder.SetTitle(fmt.Sprintf("🛫 Top %d cheapest flights %s → %s", len(offers), q.Origin, q.Destination))
	embedBuilder.SetDescription(fmt.Sprintf("One adult, one way, departing %s on **%s**.\n[Search all fares](%s)",
		q.Origin, q.Date, flights.SearchLink(q.Origin, q.Destination, q.Date)))
	embedBuilder.SetColor(embedColor)
	embedBuilder.SetFooterText("Prices in USD from Amadeus. Times are local to each airport.")
	for i, offer := range offers {
		embedBuilder.AddField(FieldName(i+1, offer), FieldValue(offer), false)
	}
	return embedBuilder.Build()
}

func FieldName(rank int, offer flights.Offer) string {
	return printer.Sprintf("#%d - $%.0f %s", rank, offer.Price, currency(offer))
}

func FieldValue(offer flights.Offer) string {
	var from, to string
	if len(offer.Segments) != 0 {
		from = " (" + offer.Segments[0].From + ")"
		to = " (" + offer.Segments[len(offer.Segments)-1].To + ")"
	}
	lines := []string{
		fmt.Sprintf("🛫 Departure: %s%s", offer.DepartureAt.Format(timeLayout), from),
		fmt.Sprintf("🛬 Arrival: %s%s", offer.ArrivalAt.Format(timeLayout), to),
		fmt.Sprintf("⏱️ Duration: %s", flights.HumanizeDuration(offer.Duration)),
		fmt.Sprintf("✈️ Carriers: %s", strings.Join(offer.Carriers(), ", ")),
		fmt.Sprintf("🔢 Flights: %s", strings.Join(offer.FlightNumbers(), ", ")),
	}
	if offer.Link != "" {
		lines = append(lines, fmt.Sprintf("🔎 [Google Flights](%s)", offer.Link))
	}
	return strings.Join(lines, "\n")
}

func currency(offer flights.Offer) string {
	if offer.Currency == "" {
		return "USD"
	}
	return offer.Currency
}
