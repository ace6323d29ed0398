package scheduler

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"OpportunityScout/internal/engine"
	"OpportunityScout/internal/notifier"
)

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(chatID int64, text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	command := strings.ToLower(fields[0])
	if i := strings.Index(command, "@"); i > 0 {
		command = command[:i] // strip @botname suffix in group chats
	}
	args := fields[1:]

	// Every interaction makes the chat a subscriber.
	s.Engine.Subscribe(chatID)

	switch command {
	case "/start":
		return notifier.FormatWelcome()

	case "/help":
		return notifier.FormatHelp()

	case "/scan":
		opps, err := s.Engine.RunScan(chatID, "MANUAL")
		if err != nil {
			log.Printf("[ERROR] manual scan for %d: %v", chatID, err)
			return "🔍 Scan failed, please try again later."
		}
		return "🔍 Scanning markets for opportunities...\n\n" + notifier.FormatOpportunityList(opps)

	case "/watchlist":
		return notifier.FormatOpportunityList(s.Engine.Cached(chatID))

	case "/watch":
		if len(args) == 0 {
			return "Please provide a symbol. Example: /watch AAPL"
		}
		quote, err := s.Engine.AddWatch(chatID, args[0])
		if err != nil {
			return watchErrorReply(args[0], err)
		}
		return fmt.Sprintf("Added %s (%s) to your watchlist.", quote.Symbol, quote.Name)

	case "/unwatch":
		if len(args) == 0 {
			return "Please provide a symbol. Example: /unwatch AAPL"
		}
		if err := s.Engine.RemoveWatch(chatID, args[0]); err != nil {
			return fmt.Sprintf("%s is not on your watchlist.", strings.ToUpper(args[0]))
		}
		return fmt.Sprintf("Removed %s from your watchlist.", strings.ToUpper(args[0]))

	case "/mywatchlist":
		return notifier.FormatWatchSymbols(s.Engine.Watchlist(chatID))

	case "/details":
		if len(args) == 0 {
			return "Please provide a symbol. Example: /details AAPL"
		}
		return s.detailsReply(chatID, args[0])

	case "/settings":
		return notifier.FormatSettings(s.Engine.Preferences(chatID))

	case "/set":
		if len(args) < 2 {
			return "Usage: /set [key] [value], e.g. /set min_confidence 80"
		}
		prefs, err := s.Engine.SetPreference(chatID, args[0], args[1])
		if err != nil {
			return fmt.Sprintf("Could not update preference: %v", err)
		}
		return notifier.FormatSettings(prefs)

	case "/performance":
		records, err := s.Engine.Performance(10)
		if err != nil {
			log.Printf("[ERROR] performance query for %d: %v", chatID, err)
			return "Could not load recommendation history."
		}
		return notifier.FormatPerformance(records)

	default:
		return "Unknown command. Use /help to see all commands."
	}
}

func (s *Scheduler) detailsReply(chatID int64, symbol string) string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	// A cached opportunity for the symbol is the richest answer.
	for _, opp := range s.Engine.Cached(chatID) {
		if opp.Symbol == symbol {
			return notifier.FormatOpportunityAlert(&opp, 0)
		}
	}

	quote, err := s.Engine.Quote(symbol)
	if err != nil {
		return fmt.Sprintf("Could not find data for symbol %s. Please check the symbol and try again.", symbol)
	}
	return notifier.FormatQuote(quote)
}

func watchErrorReply(symbol string, err error) string {
	symbol = strings.ToUpper(symbol)
	switch {
	case errors.Is(err, engine.ErrInvalidSymbol):
		return fmt.Sprintf("Could not resolve symbol %s. Please check the symbol and try again.", symbol)
	case errors.Is(err, engine.ErrAlreadyWatched):
		return fmt.Sprintf("%s is already on your watchlist.", symbol)
	default:
		return fmt.Sprintf("Could not add %s right now, please try again later.", symbol)
	}
}
