package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"aocbot/internal/models"
	"aocbot/internal/providers"
	"aocbot/internal/structures"
)

const maxLeaderboardSize = 8 << 20 // 8 MB

var ErrLeaderboardTooLarge = errors.New("leaderboard response exceeds size limit")

type LeaderboardFetcherInterface interface {
	// Fetch returns nil when the leaderboard could not be read or parsed.
	Fetch(ctx context.Context) *models.Leaderboard
}

type LeaderboardFetcher struct {
	conf    *structures.Config
	logger  providers.Logger
	cache   providers.CacheProviderInterface
	metrics providers.MetricsProviderInterface
	client  *http.Client
}

func NewLeaderboardFetcher(conf *structures.Config, logger providers.Logger, cache providers.CacheProviderInterface, metrics providers.MetricsProviderInterface) LeaderboardFetcherInterface {
	return &LeaderboardFetcher{
		conf:    conf,
		logger:  logger,
		cache:   cache,
		metrics: metrics,
		client:  newHTTPClient(conf.Fetch.Timeout),
	}
}

func newHTTPClient(timeout time.Duration) *http.Client {
	tr := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 60 * time.Second}).DialContext,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: tr}
}

func (f *LeaderboardFetcher) URL() string {
	return fmt.Sprintf("%s/%s/leaderboard/private/view/%s.json",
		strings.TrimRight(f.conf.Fetch.BaseURL, "/"),
		url.PathEscape(f.conf.Board.Year),
		url.PathEscape(f.conf.Board.Board))
}

func (f *LeaderboardFetcher) cacheKey() string {
	return "leaderboard:" + f.conf.Board.Year + ":" + f.conf.Board.Board
}

func (f *LeaderboardFetcher) Fetch(ctx context.Context) *models.Leaderboard {
	if body, ok := f.cache.Get(f.cacheKey()); ok {
		if leaderboard, err := models.DecodeLeaderboard(body); err == nil {
			f.logger.Debugf(providers.TypeFetch, "Serving leaderboard %s/%s from cache", f.conf.Board.Year, f.conf.Board.Board)
			f.metrics.IncFetch("cached")
			return leaderboard
		}
	}

	body, err := f.get(ctx)
	if err != nil {
		f.logger.Errorf(providers.TypeFetch, "Leaderboard request failed: %s", err)
		f.metrics.IncFetch("error")
		return nil
	}

	// Without a valid session the site answers 200 with an HTML page, which
	// fails here as invalid JSON.
	leaderboard, err := models.DecodeLeaderboard(body)
	if err != nil {
		f.logger.Errorf(providers.TypeFetch, "Received unexpected leaderboard payload: %s", err)
		f.metrics.IncFetch("invalid")
		return nil
	}

	f.cache.Set(f.cacheKey(), body)
	f.metrics.IncFetch("ok")
	f.logger.Debugf(providers.TypeFetch, "Fetched leaderboard with %d members", leaderboard.Members.Len())
	return leaderboard
}

func (f *LeaderboardFetcher) get(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Cookie", "session="+f.conf.Board.SessionCookie)
	req.Header.Set("User-Agent", f.conf.Fetch.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxLeaderboardSize+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(body) > maxLeaderboardSize {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrLeaderboardTooLarge, maxLeaderboardSize)
	}
	return body, nil
}
