package profile

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"ghprofile/internal/pkg/logx"
	"ghprofile/internal/pkg/randx"
)

// Searcher resolves usernames through a Lookup and dispatches the result into a Container.
// Only the most recently started search may change the state: starting a search cancels the
// one in flight, and a result that arrives after a newer search started is discarded.
type Searcher struct {
	lookup    Lookup
	container *Container

	// mu protects generation and cancel.
	mu sync.Mutex

	// generation increments with every started search.
	generation uint64

	// cancel aborts the lookup of the search in flight, if any.
	cancel context.CancelFunc

	logger zerolog.Logger
}

// NewSearcher creates a Searcher that applies lookups from lookup to container.
func NewSearcher(lookup Lookup, container *Container) *Searcher {
	return &Searcher{
		lookup:    lookup,
		container: container,
		logger:    logx.Component("ProfileSearcher"),
	}
}

// Search looks up username and, if it is still the latest search when the lookup returns,
// dispatches CHANGE_USER with the payload and returns the resulting record.
// On any error the state is left untouched and the last known record stays current.
// A blank username fails with ErrEmptyUsername before the search is registered, so it does not
// supersede or cancel a search already in flight.
func (s *Searcher) Search(ctx context.Context, username string) (UserProfile, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return UserProfile{}, ErrEmptyUsername
	}

	lookupCtx, gen := s.begin(ctx)
	logger := s.logger.With().
		Str("request_id", randx.LookupID()).
		Str("username", username).
		Uint64("generation", gen).
		Logger()

	payload, err := s.lookup.Lookup(lookupCtx, username)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		logger.Info().Msg("Discarding lookup result: a newer search started.")
		return UserProfile{}, ErrSuperseded
	}
	s.cancel()
	s.cancel = nil

	if err != nil {
		logger.Warn().Err(err).Msg("Profile lookup failed. Keeping current profile.")
		return UserProfile{}, err
	}

	logger.Debug().Str("login", payload.Login).Msg("Lookup resolved. Dispatching change.")
	return s.container.ChangeUser(ctx, payload), nil
}

// begin registers a new search generation and cancels the previous lookup.
func (s *Searcher) begin(ctx context.Context) (context.Context, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	lookupCtx, cancel := context.WithCancel(ctx)
	s.generation++
	s.cancel = cancel

	return lookupCtx, s.generation
}
