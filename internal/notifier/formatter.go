package notifier

import (
	"fmt"
	"strings"

	"OpportunityScout/internal/model"
	"OpportunityScout/internal/recorder"
)

func formatCurrency(value float64) string {
	return fmt.Sprintf("$%.2f", value)
}

// FormatOpportunityAlert formats one opportunity as a Telegram alert.
// `more` is how many further opportunities the current scan holds.
func FormatOpportunityAlert(opp *model.Opportunity, more int) string {
	var b strings.Builder

	b.WriteString("📊 *OPPORTUNITY ALERT* 📊\n\n")
	b.WriteString(fmt.Sprintf("*Symbol:* %s\n", opp.Symbol))
	b.WriteString(fmt.Sprintf("*Company:* %s\n", opp.Name))
	b.WriteString(fmt.Sprintf("*Signal:* %s\n", opp.Direction))
	b.WriteString(fmt.Sprintf("*Current Price:* %s\n", formatCurrency(opp.Price)))
	b.WriteString(fmt.Sprintf("*Target Price:* %s\n", formatCurrency(opp.TargetPrice)))
	b.WriteString(fmt.Sprintf("*Stop Loss:* %s\n\n", formatCurrency(opp.StopLoss)))
	b.WriteString(fmt.Sprintf("*Risk/Reward:* %.1f\n", opp.RiskReward))
	b.WriteString(fmt.Sprintf("*Confidence:* %d%%\n\n", opp.Confidence))
	b.WriteString("*Your $100 budget:*\n")
	b.WriteString(fmt.Sprintf("Units to buy: %.2f\n", opp.Units))
	b.WriteString(fmt.Sprintf("Potential profit: %s\n", formatCurrency(opp.PotentialProfit)))
	b.WriteString(fmt.Sprintf("Maximum loss: %s\n\n", formatCurrency(opp.MaxLoss)))
	b.WriteString(fmt.Sprintf("*Rationale:*\n%s", opp.Rationale))

	if more > 0 {
		b.WriteString(fmt.Sprintf("\n\n%d more opportunities available — use /watchlist to see them.", more))
	}
	return b.String()
}

// FormatOpportunityList formats a ranked opportunity list.
func FormatOpportunityList(opps []model.Opportunity) string {
	if len(opps) == 0 {
		return "No opportunities found right now. The market gave no strong signals — try again later or run /scan."
	}
	var b strings.Builder
	b.WriteString("*Current Opportunities:*\n\n")
	for i, opp := range opps {
		b.WriteString(fmt.Sprintf("%d. %s (%s) - %s at %s | confidence %d%% | R/R %.1f\n",
			i+1, opp.Symbol, opp.Name, opp.Direction, formatCurrency(opp.Price),
			opp.Confidence, opp.RiskReward))
	}
	b.WriteString("\nUse /details [symbol] for more information on any opportunity.")
	return b.String()
}

// FormatWelcome is the /start reply.
func FormatWelcome() string {
	return "🤖 *Financial Opportunity Scout* 🤖\n\n" +
		"Welcome to your personal investment alert system!\n\n" +
		"I'll scan the markets and notify you of potential opportunities based on " +
		"technical analysis.\n\n" +
		"Each opportunity will be tailored to your $100 weekly investment budget.\n\n" +
		"Commands:\n" +
		"/scan - Run a market scan now\n" +
		"/watchlist - See current opportunities\n" +
		"/help - Show all commands"
}

// FormatHelp is the /help reply.
func FormatHelp() string {
	return "*Available Commands:*\n\n" +
		"/scan - Run a market scan immediately\n" +
		"/watchlist - View current opportunities\n" +
		"/details [symbol] - Get detailed analysis on a specific asset\n" +
		"/watch [symbol] - Add a symbol to your personal watchlist\n" +
		"/unwatch [symbol] - Remove a symbol from your watchlist\n" +
		"/settings - Configure your alert preferences\n" +
		"/set [key] [value] - Change a preference (alerts, min_confidence, min_risk_reward)\n" +
		"/performance - Track past recommendations\n" +
		"/help - Show this help message"
}

// FormatQuote formats a plain quote for symbols without an active
// opportunity.
func FormatQuote(q *model.Quote) string {
	change := q.CurrentPrice - q.PreviousClose
	changePercent := 0.0
	if q.PreviousClose != 0 {
		changePercent = change / q.PreviousClose * 100
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("*%s: %s*\n\n", q.Symbol, q.Name))
	b.WriteString(fmt.Sprintf("Current Price: %s\n", formatCurrency(q.CurrentPrice)))
	b.WriteString(fmt.Sprintf("Previous Close: %s\n", formatCurrency(q.PreviousClose)))
	b.WriteString(fmt.Sprintf("Change: %s (%.2f%%)\n\n", formatCurrency(change), changePercent))
	b.WriteString("No specific opportunity identified for this symbol yet.\n")
	b.WriteString("Run /scan to check for new opportunities.")
	return b.String()
}

// FormatWatchSymbols formats a personal watchlist.
func FormatWatchSymbols(symbols []string) string {
	if len(symbols) == 0 {
		return "Your watchlist is empty. Add symbols with /watch [symbol]."
	}
	return fmt.Sprintf("*Your watchlist:* %s\n\nWatched symbols are scanned first on /scan.",
		strings.Join(symbols, ", "))
}

// FormatSettings formats the current alert preferences.
func FormatSettings(p model.Preferences) string {
	alerts := "off"
	if p.AlertsEnabled {
		alerts = "on"
	}
	var b strings.Builder
	b.WriteString("*Your alert preferences:*\n\n")
	b.WriteString(fmt.Sprintf("alerts: %s\n", alerts))
	b.WriteString(fmt.Sprintf("min\\_confidence: %d\n", p.MinConfidence))
	b.WriteString(fmt.Sprintf("min\\_risk\\_reward: %.1f\n\n", p.MinRiskReward))
	b.WriteString("Change with /set [key] [value], e.g. /set min_confidence 80")
	return b.String()
}

// FormatPerformance formats the recent recommendation history.
func FormatPerformance(records []recorder.OpportunityRecord) string {
	if len(records) == 0 {
		return "No recommendations recorded yet. Run /scan to generate some."
	}
	var b strings.Builder
	b.WriteString("*Recent recommendations:*\n\n")
	for _, rec := range records {
		b.WriteString(fmt.Sprintf("%s  %s %s at %s → target %s, stop %s (conf %d%%)\n",
			rec.Time.Format("01-02"), rec.Symbol, rec.Direction,
			formatCurrency(rec.Price), formatCurrency(rec.TargetPrice),
			formatCurrency(rec.StopLoss), rec.Confidence))
	}
	return b.String()
}
