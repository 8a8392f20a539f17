package espn

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/JamesM813/NFL-Locked-In/internal/platform/logging"
	"github.com/JamesM813/NFL-Locked-In/internal/platform/resilience"
	"github.com/JamesM813/NFL-Locked-In/internal/usecase"
)

const (
	defaultBaseURL    = "https://site.api.espn.com/apis/site/v2/sports/football/nfl/scoreboard"
	regularSeasonType = 2
	maxResponseBytes  = 6 << 20
)

var errESPNTransient = crerr.New("espn transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads the public ESPN NFL scoreboard feed. The feed needs no
// credentials; resilience against its flakiness (rate limits, slow Sundays)
// comes from retries with backoff behind a circuit breaker, and concurrent
// fetches of the same week collapse into one request.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type scoreboardEnvelope struct {
	Events []scoreboardEvent `json:"events"`
}

type scoreboardEvent struct {
	ID           string             `json:"id"`
	Date         string             `json:"date"`
	Status       eventStatus        `json:"status"`
	Competitions []eventCompetition `json:"competitions"`
}

type eventStatus struct {
	Type eventStatusType `json:"type"`
}

type eventStatusType struct {
	State     string `json:"state"`
	Completed bool   `json:"completed"`
}

type eventCompetition struct {
	Date        string            `json:"date"`
	Competitors []eventCompetitor `json:"competitors"`
	Status      *eventStatus      `json:"status"`
}

type eventCompetitor struct {
	HomeAway string    `json:"homeAway"`
	Winner   bool      `json:"winner"`
	Score    string    `json:"score"`
	Team     eventTeam `json:"team"`
}

type eventTeam struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

// FetchWeek pulls one regular-season week of the scoreboard.
func (c *Client) FetchWeek(ctx context.Context, season, week int) ([]usecase.ExternalGame, error) {
	if season <= 0 {
		return nil, fmt.Errorf("season must be greater than zero")
	}
	if week <= 0 {
		return nil, fmt.Errorf("week must be greater than zero")
	}

	query := url.Values{}
	query.Set("dates", strconv.Itoa(season))
	query.Set("seasontype", strconv.Itoa(regularSeasonType))
	query.Set("week", strconv.Itoa(week))
	fullURL := c.baseURL + "?" + query.Encode()

	raw, err := c.fetch(ctx, fullURL)
	if err != nil {
		return nil, fmt.Errorf("fetch scoreboard season=%d week=%d: %w", season, week, err)
	}

	var envelope scoreboardEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode scoreboard season=%d week=%d: %w", season, week, err)
	}

	games := make([]usecase.ExternalGame, 0, len(envelope.Events))
	for _, event := range envelope.Events {
		game, ok := c.mapEvent(ctx, week, event)
		if !ok {
			continue
		}
		games = append(games, game)
	}
	return games, nil
}

func (c *Client) fetch(ctx context.Context, fullURL string) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "espn circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: scores feed is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errESPNTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}
	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errESPNTransient, err)
		} else {
			raw, readErr := readBody(resp.Body)
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errESPNTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: feed status=%d", errESPNTransient, resp.StatusCode)
			} else {
				return nil, fmt.Errorf("feed status=%d", resp.StatusCode)
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("feed request failed")
	}
	c.logger.WarnContext(ctx, "espn request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func readBody(body io.Reader) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if _, err := io.Copy(buf, io.LimitReader(body, maxResponseBytes)); err != nil {
		return nil, err
	}
	raw := make([]byte, buf.Len())
	copy(raw, buf.Bytes())
	return raw, nil
}

func (c *Client) mapEvent(ctx context.Context, week int, event scoreboardEvent) (usecase.ExternalGame, bool) {
	if strings.TrimSpace(event.ID) == "" || len(event.Competitions) == 0 {
		return usecase.ExternalGame{}, false
	}
	competition := event.Competitions[0]

	var home, away *eventCompetitor
	for i := range competition.Competitors {
		switch competition.Competitors[i].HomeAway {
		case "home":
			home = &competition.Competitors[i]
		case "away":
			away = &competition.Competitors[i]
		}
	}
	if home == nil || away == nil {
		c.logger.WarnContext(ctx, "skip scoreboard event without both sides", "event_id", event.ID, "week", week)
		return usecase.ExternalGame{}, false
	}

	kickoff, err := parseEventDate(event.Date, competition.Date)
	if err != nil {
		c.logger.WarnContext(ctx, "skip scoreboard event with bad kickoff", "event_id", event.ID, "week", week, "error", err.Error())
		return usecase.ExternalGame{}, false
	}

	status := event.Status
	if competition.Status != nil {
		status = *competition.Status
	}

	game := usecase.ExternalGame{
		ExternalID:   event.ID,
		Week:         week,
		HomeTeamName: home.Team.DisplayName,
		AwayTeamName: away.Team.DisplayName,
		KickoffAt:    kickoff,
		Status:       mapEventState(status),
		HomeWinner:   home.Winner,
		AwayWinner:   away.Winner,
		HomeScore:    parseScore(home.Score),
		AwayScore:    parseScore(away.Score),
	}
	return game, true
}

// parseEventDate accepts the scoreboard's minute-precision timestamps, which
// drop seconds from RFC 3339.
func parseEventDate(values ...string) (time.Time, error) {
	layouts := []string{"2006-01-02T15:04Z07:00", time.RFC3339}
	var lastErr error
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		for _, layout := range layouts {
			parsed, err := time.Parse(layout, value)
			if err == nil {
				return parsed, nil
			}
			lastErr = err
		}
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no kickoff timestamp")
	}
	return time.Time{}, lastErr
}

func mapEventState(status eventStatus) string {
	switch strings.ToLower(strings.TrimSpace(status.Type.State)) {
	case "pre":
		return "scheduled"
	case "in":
		return "in_progress"
	case "post":
		if status.Type.Completed {
			return "final"
		}
		return "in_progress"
	default:
		return "scheduled"
	}
}

func parseScore(value string) *int {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	score, err := strconv.Atoi(value)
	if err != nil || score < 0 {
		return nil
	}
	return &score
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || statusCode >= 500
}
