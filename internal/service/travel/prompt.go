package travel

import (
	"fmt"
	"strings"
	"time"
)

// InsightsRequest 旅行洞察请求，携带行程上下文与搜索结果
type InsightsRequest struct {
	Destination        string   `json:"destination" binding:"required"`
	StartDate          string   `json:"startDate"`
	EndDate            string   `json:"endDate"`
	Passengers         int      `json:"passengers"`
	OriginAirport      string   `json:"originAirport"`
	DestinationAirport string   `json:"destinationAirport"`
	Flights            []Flight `json:"flights"`
	Hotels             []Hotel  `json:"hotels"`
}

type Flight struct {
	AirlineName string  `json:"airlineName"`
	Price       float64 `json:"price"`
	TotalPrice  float64 `json:"totalPrice"`
	Stops       int     `json:"stops"`
	Duration    string  `json:"duration"`
}

type Hotel struct {
	Name       string   `json:"name"`
	Stars      int      `json:"stars"`
	Price      float64  `json:"price"`
	TotalPrice float64  `json:"totalPrice"`
	Rating     float64  `json:"rating"`
	Reviews    int      `json:"reviews"`
	Amenities  []string `json:"amenities"`
}

const maxListedOptions = 10

// BuildPrompt 由行程上下文构造旅行规划提示词
func BuildPrompt(req *InsightsRequest) string {
	destination := valueOr(req.Destination, "Unknown")
	startDate := valueOr(req.StartDate, "?")
	endDate := valueOr(req.EndDate, "?")
	origin := valueOr(req.OriginAirport, "EWR")
	destAirport := valueOr(req.DestinationAirport, "?")
	passengers := req.Passengers
	if passengers <= 0 {
		passengers = 3
	}
	nights := nightsBetween(req.StartDate, req.EndDate)

	var b strings.Builder
	b.WriteString("You are a family travel planning advisor. Use the available tools\n")
	b.WriteString("to look up real-time information about the destination when helpful.\n\n")

	fmt.Fprintf(&b, "**Family Context:** Traveling family of %d:\n", passengers)
	b.WriteString("- Michael (father), Carolyn (pregnant wife), Sebastian \"Sebby\" (4 years old), possibly Jax (dog)\n")
	fmt.Fprintf(&b, "- Based in Morristown, NJ. Flying from %s.\n\n", origin)

	fmt.Fprintf(&b, "**Trip:** %s\n", destination)
	fmt.Fprintf(&b, "**Dates:** %s to %s (%s nights)\n", startDate, endDate, nights)
	fmt.Fprintf(&b, "**Route:** %s → %s\n", origin, destAirport)
	b.WriteString(flightSection(req.Flights))
	b.WriteString(hotelSection(req.Hotels))

	b.WriteString("\nProvide a comprehensive, personalized travel guide with these sections:\n\n")

	b.WriteString("## Destination Overview\n")
	fmt.Fprintf(&b, "What makes %s special. Key highlights for a family visit during these dates.\n\n", destination)

	b.WriteString("## Family Travel Tips\n")
	b.WriteString("Specific advice for traveling with a 4-year-old and a pregnant woman:\n")
	b.WriteString("- Kid-friendly activities, restaurants, and attractions\n")
	b.WriteString("- Pregnancy considerations (nearby medical facilities, comfort tips, activity restrictions)\n")
	b.WriteString("- Pet-friendly options if bringing Jax, or boarding recommendations\n\n")

	b.WriteString("## Weather & Packing\n")
	fmt.Fprintf(&b, "Expected weather for %s to %s. Use the weather tool if available.\n", startDate, endDate)
	b.WriteString("What to pack for the family.\n\n")

	b.WriteString("## Day-by-Day Itinerary\n")
	fmt.Fprintf(&b, "Suggest a %s-day itinerary balancing activities with rest:\n", nights)
	b.WriteString("- Morning, afternoon, and evening suggestions each day\n")
	b.WriteString("- Include specific restaurant names and activity names where possible\n")
	b.WriteString("- Factor in nap time / rest periods for Sebby and Carolyn\n")
	b.WriteString("- Include estimated costs where possible\n\n")

	b.WriteString("## Flight Recommendation\n")
	if len(req.Flights) > 0 {
		b.WriteString("Analyze the flight options above. Which offers the best combination of price, timing, stops, and comfort for a family with a young child and pregnant woman? Rank your top 2-3 picks with reasoning.\n\n")
	} else {
		b.WriteString("No flight results available yet. Provide general flight advice for this route, covering best airlines, typical prices, and best times to fly.\n\n")
	}

	b.WriteString("## Hotel Recommendation\n")
	if len(req.Hotels) > 0 {
		b.WriteString("Analyze the hotel options above. Which is best for a family considering location, amenities (pool, kid-friendly), comfort, and value? Rank your top 2-3 picks with reasoning.\n\n")
	} else {
		b.WriteString("No hotel results available yet. Suggest what type of accommodation to look for, including best neighborhoods for families and what amenities to prioritize.\n\n")
	}

	b.WriteString("## Budget Estimate\n")
	b.WriteString("Estimated total trip cost breakdown:\n")
	if len(req.Flights) > 0 {
		b.WriteString("- Flights (based on options above)\n")
	} else {
		b.WriteString("- Flights (estimated for this route)\n")
	}
	if len(req.Hotels) > 0 {
		fmt.Fprintf(&b, "- Hotel (based on options above × %s nights)\n", nights)
	} else {
		fmt.Fprintf(&b, "- Hotel (estimated × %s nights)\n", nights)
	}
	fmt.Fprintf(&b, "- Food & dining (family of %d, %s days)\n", passengers, nights)
	b.WriteString("- Activities & attractions\n")
	b.WriteString("- Local transportation\n")
	b.WriteString("- **Total estimated cost**\n\n")

	b.WriteString("Be specific with names, prices, and actionable details. No generic filler.")
	return b.String()
}

// flightSection 航班候选摘要，最多列出前 10 项
func flightSection(flights []Flight) string {
	if len(flights) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "\n**Available Flights (%d options):**\n", len(flights))
	for i, f := range flights {
		if i >= maxListedOptions {
			break
		}
		stops := "nonstop"
		if f.Stops > 0 {
			stops = fmt.Sprintf("%d stop(s)", f.Stops)
		}
		duration := valueOr(f.Duration, "?")
		fmt.Fprintf(&b, "%d. %s — $%.0f/pp ($%.0f total) | %s | %s\n",
			i+1, valueOr(f.AirlineName, "?"), f.Price, f.TotalPrice, stops, duration)
	}
	return b.String()
}

// hotelSection 酒店候选摘要，最多列出前 10 项
func hotelSection(hotels []Hotel) string {
	if len(hotels) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "\n**Available Hotels (%d options):**\n", len(hotels))
	for i, h := range hotels {
		if i >= maxListedOptions {
			break
		}
		fmt.Fprintf(&b, "%d. %s", i+1, valueOr(h.Name, "?"))
		if h.Stars > 0 {
			fmt.Fprintf(&b, " %d★", h.Stars)
		}
		fmt.Fprintf(&b, " — $%.0f/night ($%.0f total) |", h.Price, h.TotalPrice)
		if h.Rating > 0 {
			fmt.Fprintf(&b, " Rating: %.1f/10", h.Rating)
		}
		if h.Reviews > 0 {
			fmt.Fprintf(&b, " (%d reviews)", h.Reviews)
		}
		if len(h.Amenities) > 0 {
			limit := len(h.Amenities)
			if limit > 4 {
				limit = 4
			}
			fmt.Fprintf(&b, " | %s", strings.Join(h.Amenities[:limit], ", "))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// nightsBetween 计算住宿晚数，日期不可解析时返回 "?"
func nightsBetween(start, end string) string {
	d1, err1 := time.Parse("2006-01-02", start)
	d2, err2 := time.Parse("2006-01-02", end)
	if err1 != nil || err2 != nil {
		return "?"
	}
	return fmt.Sprintf("%d", int(d2.Sub(d1).Hours()/24))
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
