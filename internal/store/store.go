package store

import (
	"sort"
	"sync"

	"OpportunityScout/internal/model"
)

// Store holds all mutable subscriber state: the subscriber set, per-user
// watchlists, per-user preferences, and the most recent global opportunity
// list. Everything is in-memory and resets on restart.
//
// All reads hand out copies so broadcast iteration never races with
// user-initiated mutations; the opportunity cache is replaced wholesale so
// readers see either the previous snapshot or the new one, never a partial
// write. The subscriber set only grows: there is no unsubscribe transition.
type Store struct {
	mu          sync.RWMutex
	subscribers map[int64]struct{}
	watchlists  map[int64][]string
	prefs       map[int64]model.Preferences
	cache       []model.Opportunity
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		subscribers: make(map[int64]struct{}),
		watchlists:  make(map[int64][]string),
		prefs:       make(map[int64]model.Preferences),
	}
}

// Subscribe adds a chat to the subscriber set. Returns true when the chat is
// new.
func (s *Store) Subscribe(chatID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subscribers[chatID]; ok {
		return false
	}
	s.subscribers[chatID] = struct{}{}
	return true
}

// Subscribers returns a snapshot of the subscriber set, sorted for
// deterministic broadcast order.
func (s *Store) Subscribers() []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]int64, 0, len(s.subscribers))
	for id := range s.subscribers {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// SubscriberCount returns the current size of the subscriber set.
func (s *Store) SubscriberCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subscribers)
}

// Watchlist returns a copy of the chat's watchlist, creating an empty one on
// first access.
func (s *Store) Watchlist(chatID int64) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	wl, ok := s.watchlists[chatID]
	if !ok {
		s.watchlists[chatID] = nil
		return nil
	}
	out := make([]string, len(wl))
	copy(out, wl)
	return out
}

// AddWatch appends a symbol to the chat's watchlist. Returns false when the
// symbol is already present; duplicates are forbidden.
func (s *Store) AddWatch(chatID int64, symbol string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.watchlists[chatID] {
		if existing == symbol {
			return false
		}
	}
	s.watchlists[chatID] = append(s.watchlists[chatID], symbol)
	return true
}

// RemoveWatch removes a symbol from the chat's watchlist. Returns false when
// the symbol was not present.
func (s *Store) RemoveWatch(chatID int64, symbol string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	wl := s.watchlists[chatID]
	for i, existing := range wl {
		if existing == symbol {
			s.watchlists[chatID] = append(wl[:i], wl[i+1:]...)
			return true
		}
	}
	return false
}

// Preferences returns the chat's preferences, creating defaults on first
// access.
func (s *Store) Preferences(chatID int64) model.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.prefs[chatID]
	if !ok {
		p = model.DefaultPreferences()
		s.prefs[chatID] = p
	}
	return p
}

// SetPreferences replaces the chat's preferences.
func (s *Store) SetPreferences(chatID int64, p model.Preferences) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs[chatID] = p
}

// SetCache replaces the global opportunity cache wholesale.
func (s *Store) SetCache(opps []model.Opportunity) {
	snapshot := make([]model.Opportunity, len(opps))
	copy(snapshot, opps)
	s.mu.Lock()
	s.cache = snapshot
	s.mu.Unlock()
}

// Cache returns a copy of the most recent global opportunity list.
func (s *Store) Cache() []model.Opportunity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Opportunity, len(s.cache))
	copy(out, s.cache)
	return out
}
