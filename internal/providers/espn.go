package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/fantasyops/leaguedesk/internal/models"
)

// Resource identifies one fetchable league resource kind.
type Resource string

const (
	ResourceSettings  Resource = "settings"
	ResourceRosters   Resource = "rosters"
	ResourceStandings Resource = "standings"
	ResourceMatchups  Resource = "matchups"
	ResourcePlayers   Resource = "players"
)

// views returns the ESPN view parameters that populate the resource.
func (r Resource) views() []string {
	switch r {
	case ResourceSettings:
		return []string{"mSettings"}
	case ResourceRosters:
		return []string{"mTeam", "mRoster", "mSettings"}
	case ResourceStandings:
		return []string{"mTeam", "mSettings"}
	case ResourceMatchups:
		return []string{"mTeam", "mMatchup", "mSettings"}
	case ResourcePlayers:
		return []string{"kona_player_info", "mSettings"}
	}
	return []string{"mSettings"}
}

// ESPNClient issues read-only requests to the ESPN fantasy v3 API for a
// given league and season. Each logical fetch retries transient failures
// with exponential backoff and classifies permanent ones immediately.
type ESPNClient struct {
	httpClient      *http.Client
	logger          *logrus.Logger
	baseURL         string
	retryAttempts   int
	backoffBase     time.Duration
	overallDeadline time.Duration
	breaker         *gobreaker.CircuitBreaker

	mu  sync.Mutex
	rng *rand.Rand
}

// ESPNClientOptions carries the tunables the config layer exposes.
type ESPNClientOptions struct {
	BaseURL          string
	Timeout          time.Duration
	RetryAttempts    int
	BackoffBase      time.Duration
	OverallDeadline  time.Duration
	BreakerThreshold int
}

// NewESPNClient creates a new ESPN fantasy client.
func NewESPNClient(opts ESPNClientOptions, logger *logrus.Logger) *ESPNClient {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://lm-api-reads.fantasy.espn.com/apis/v3/games/ffl"
	}
	if opts.Timeout == 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.RetryAttempts == 0 {
		opts.RetryAttempts = 3
	}
	if opts.BackoffBase == 0 {
		opts.BackoffBase = time.Second
	}
	if opts.OverallDeadline == 0 {
		opts.OverallDeadline = 15 * time.Second
	}
	if opts.BreakerThreshold == 0 {
		opts.BreakerThreshold = 5
	}

	settings := gobreaker.Settings{
		Name:        "espn",
		MaxRequests: uint32(opts.BreakerThreshold),
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"component": "provider",
				"service":   name,
				"from":      from.String(),
				"to":        to.String(),
			}).Info("Circuit breaker state changed")
		},
	}

	return &ESPNClient{
		httpClient:      &http.Client{Timeout: opts.Timeout},
		logger:          logger,
		baseURL:         opts.BaseURL,
		retryAttempts:   opts.RetryAttempts,
		backoffBase:     opts.BackoffBase,
		overallDeadline: opts.OverallDeadline,
		breaker:         gobreaker.NewCircuitBreaker(settings),
		rng:             rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// GetLeague fetches league settings and normalizes them.
func (c *ESPNClient) GetLeague(ctx context.Context, ref models.LeagueRef, creds models.CredentialPair) (*models.League, error) {
	raw, err := c.fetch(ctx, ref, creds, ResourceSettings, 0)
	if err != nil {
		return nil, err
	}
	return buildLeague(raw)
}

// GetTeams fetches all teams with rosters for the league.
func (c *ESPNClient) GetTeams(ctx context.Context, ref models.LeagueRef, creds models.CredentialPair, week int) ([]models.Team, error) {
	raw, err := c.fetch(ctx, ref, creds, ResourceRosters, week)
	if err != nil {
		return nil, err
	}
	return buildTeams(raw, ref)
}

// GetStandings fetches teams without roster detail, for standings views.
func (c *ESPNClient) GetStandings(ctx context.Context, ref models.LeagueRef, creds models.CredentialPair) ([]models.Team, error) {
	raw, err := c.fetch(ctx, ref, creds, ResourceStandings, 0)
	if err != nil {
		return nil, err
	}
	return buildTeams(raw, ref)
}

// GetMatchups fetches the head-to-head pairings for a week.
func (c *ESPNClient) GetMatchups(ctx context.Context, ref models.LeagueRef, creds models.CredentialPair, week int) ([]models.Matchup, error) {
	raw, err := c.fetch(ctx, ref, creds, ResourceMatchups, week)
	if err != nil {
		return nil, err
	}
	return buildMatchups(raw, ref, week)
}

// GetPlayers fetches the league-wide player pool, including free agents
// with ownership percentages.
func (c *ESPNClient) GetPlayers(ctx context.Context, ref models.LeagueRef, creds models.CredentialPair, week int) ([]models.Player, error) {
	raw, err := c.fetch(ctx, ref, creds, ResourcePlayers, week)
	if err != nil {
		return nil, err
	}
	return buildPlayerPool(raw)
}

// attemptOutcome carries a permanent failure through the circuit breaker
// without counting it as a breaker failure; only transient exhaustion
// should push the breaker toward open.
type attemptOutcome struct {
	payload *rawLeagueResponse
	err     error
}

func (c *ESPNClient) fetch(ctx context.Context, ref models.LeagueRef, creds models.CredentialPair, resource Resource, week int) (*rawLeagueResponse, error) {
	started := time.Now()

	out, err := c.breaker.Execute(func() (interface{}, error) {
		payload, ferr := c.fetchWithRetry(ctx, ref, creds, resource, week)
		if ferr != nil && !errors.Is(ferr, ErrProviderUnavailable) {
			return attemptOutcome{err: ferr}, nil
		}
		return attemptOutcome{payload: payload}, ferr
	})

	log := c.logger.WithFields(logrus.Fields{
		"component": "provider",
		"league_id": ref.LeagueID,
		"season":    ref.Season,
		"resource":  string(resource),
		"week":      week,
		"duration":  time.Since(started).String(),
		"at":        time.Now().Format(time.RFC3339),
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			log.Warn("Circuit breaker open, short-circuiting provider call")
			return nil, fmt.Errorf("%w: circuit open", ErrProviderUnavailable)
		}
		log.WithError(err).Warn("Provider fetch failed")
		return nil, err
	}

	outcome := out.(attemptOutcome)
	if outcome.err != nil {
		log.WithError(outcome.err).Warn("Provider fetch failed")
		return nil, outcome.err
	}

	log.Debug("Provider fetch completed")
	return outcome.payload, nil
}

// fetchWithRetry runs the bounded retry loop. The loop is driven by the
// failure class of each attempt: transient classes back off and retry,
// permanent classes return immediately, and the overall deadline caps
// the whole sequence regardless of remaining attempts.
func (c *ESPNClient) fetchWithRetry(ctx context.Context, ref models.LeagueRef, creds models.CredentialPair, resource Resource, week int) (*rawLeagueResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.overallDeadline)
	defer cancel()

	url := c.buildURL(ref, resource, week)

	var lastErr error
	for attempt := 0; attempt < c.retryAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(c.backoffDelay(attempt)):
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: deadline exceeded during backoff", ErrProviderUnavailable)
			}
		}

		payload, class, err := c.doAttempt(ctx, url, creds)
		switch class {
		case ClassSuccess:
			return payload, nil
		case ClassPermanent:
			return nil, err
		case ClassTransient:
			lastErr = err
			c.logger.WithFields(logrus.Fields{
				"component": "provider",
				"league_id": ref.LeagueID,
				"attempt":   attempt + 1,
			}).WithError(err).Warn("Transient provider failure, will retry")
		}

		if ctx.Err() != nil {
			break
		}
	}

	if lastErr == nil {
		lastErr = errors.New("retry attempts exhausted")
	}
	if errors.Is(lastErr, ErrProviderUnavailable) {
		return nil, lastErr
	}
	return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, lastErr)
}

// doAttempt issues one HTTP request and classifies the outcome.
func (c *ESPNClient) doAttempt(ctx context.Context, url string, creds models.CredentialPair) (*rawLeagueResponse, FailureClass, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, ClassPermanent, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "leaguedesk/1.0.0")

	// Private leagues authenticate through the provider's cookie pair.
	// The opaque credential type is only unwrapped here.
	if !creds.IsPublic() {
		req.AddCookie(&http.Cookie{Name: "SWID", Value: creds.SWID.Reveal()})
		req.AddCookie(&http.Cookie{Name: "espn_s2", Value: creds.ESPNS2.Reveal()})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		class := classifyTransportError(err)
		if class == ClassPermanent {
			return nil, class, fmt.Errorf("%w: request aborted", ErrProviderUnavailable)
		}
		return nil, class, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	class, terminal := classifyStatus(resp.StatusCode)
	if class != ClassSuccess {
		return nil, class, fmt.Errorf("%w: status %d", terminal, resp.StatusCode)
	}

	var payload rawLeagueResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, ClassPermanent, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &payload, ClassSuccess, nil
}

func (c *ESPNClient) buildURL(ref models.LeagueRef, resource Resource, week int) string {
	url := fmt.Sprintf("%s/seasons/%d/segments/0/leagues/%s", c.baseURL, ref.Season, ref.LeagueID)
	sep := "?"
	for _, view := range resource.views() {
		url += sep + "view=" + view
		sep = "&"
	}
	if week > 0 {
		url += sep + fmt.Sprintf("scoringPeriodId=%d", week)
	}
	return url
}

// backoffDelay computes the exponential backoff for an attempt with
// plus-or-minus 20 percent jitter.
func (c *ESPNClient) backoffDelay(attempt int) time.Duration {
	base := float64(c.backoffBase) * math.Pow(2, float64(attempt-1))

	c.mu.Lock()
	jitter := 0.8 + 0.4*c.rng.Float64()
	c.mu.Unlock()

	return time.Duration(base * jitter)
}
