package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"superadmin/navigation/internal/config"
	"superadmin/navigation/internal/domain"
	"superadmin/navigation/internal/upstream"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

type MenuClient interface {
	GetMenuHierarchy(ctx context.Context, query domain.MenuQuery) ([]domain.MenuItemAPIResponse, error)
}

type menuClient struct {
	rl         ratelimit.Limiter
	config     config.MenuAPIConfig
	httpClient *resty.Client
	upstreams  upstream.Supplier
	tokens     TokenProvider

	// Circuit breaker for 429 responses
	circuitBreakerMutex sync.RWMutex
	throttledUntil      time.Time
	circuitBreakerDelay time.Duration
}

func NewMenuClient(cfg config.MenuAPIConfig, upstreams upstream.Supplier, tokens TokenProvider) MenuClient {
	client := resty.New().
		SetTimeout(cfg.RequestTimeout()).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(time.Duration(cfg.RetryWaitMillis)*time.Millisecond).
		SetRetryMaxWaitTime(time.Duration(cfg.RetryMaxWaitMillis)*time.Millisecond).
		SetRetryDefaultConditions(false).
		AddRetryConditions(shouldRetry).
		SetHeader("Accept", "application/json")

	rl := ratelimit.NewUnlimited()
	if cfg.MaxRequestsPerSecond > 0 {
		rl = ratelimit.New(cfg.MaxRequestsPerSecond)
	}

	if tokens == nil {
		tokens = NewStaticTokenProvider("")
	}

	return &menuClient{
		rl:                  rl,
		config:              cfg,
		httpClient:          client,
		upstreams:           upstreams,
		tokens:              tokens,
		circuitBreakerDelay: time.Duration(cfg.CircuitBreakerDelay) * time.Second,
	}
}

// shouldRetry retries transport failures and 5xx responses. 4xx is final.
func shouldRetry(resp *resty.Response, err error) bool {
	if err != nil {
		return !errors.Is(err, context.Canceled)
	}
	return resp != nil && resp.StatusCode() >= http.StatusInternalServerError
}

func (c *menuClient) GetMenuHierarchy(ctx context.Context, query domain.MenuQuery) ([]domain.MenuItemAPIResponse, error) {
	body, err := c.fetch(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch menu hierarchy %s: %w", query.CacheKey(), err)
	}

	var envelope domain.MenuHierarchyResponse
	if err := json.Unmarshal([]byte(body), &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	if !envelope.IsSuccess {
		return nil, fmt.Errorf("%w: %s", ErrUnsuccessful, strings.Join(envelope.Errors, "; "))
	}

	log.Debugf("Fetched %d root menu items for %s", len(envelope.Value.Items), query.CacheKey())
	return envelope.Value.Items, nil
}

func (c *menuClient) isCircuitBreakerOpen() bool {
	c.circuitBreakerMutex.RLock()
	now := time.Now()
	wasOpen := now.Before(c.throttledUntil)
	wasTriggered := !c.throttledUntil.IsZero()
	c.circuitBreakerMutex.RUnlock()

	if !wasOpen && wasTriggered {
		c.circuitBreakerMutex.Lock()
		if !c.throttledUntil.IsZero() && now.After(c.throttledUntil) {
			c.throttledUntil = time.Time{}
			log.Infof("✅ Circuit breaker re-enabled - menu API requests are allowed again")
		}
		c.circuitBreakerMutex.Unlock()
	}

	return wasOpen
}

func (c *menuClient) triggerCircuitBreaker() {
	c.circuitBreakerMutex.Lock()
	defer c.circuitBreakerMutex.Unlock()

	c.throttledUntil = time.Now().Add(c.circuitBreakerDelay)
	log.Warnf("🚫 Circuit breaker activated! Menu API requests disabled until %v",
		c.throttledUntil.Format("15:04:05"))
}

func (c *menuClient) getRemainingCircuitBreakerTime() time.Duration {
	c.circuitBreakerMutex.RLock()
	defer c.circuitBreakerMutex.RUnlock()

	remaining := time.Until(c.throttledUntil)
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (c *menuClient) fetch(ctx context.Context, query domain.MenuQuery) (string, error) {
	if c.isCircuitBreakerOpen() {
		remaining := c.getRemainingCircuitBreakerTime()
		log.Debugf("🚫 Request blocked by circuit breaker. Remaining time: %v", remaining.Round(time.Second))
		return "", fmt.Errorf("%w: requests disabled for %v more", ErrCircuitOpen, remaining.Round(time.Second))
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to obtain access token: %w", err)
	}

	baseURL := c.upstreams.Get()
	body, err := c.get(ctx, baseURL, token, query)
	if err == nil || c.upstreams.Len() < 2 || ctx.Err() != nil {
		return body, err
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return "", err
	}

	// Transport failure after retries: try the next upstream once
	next := c.upstreams.Get()
	log.Warnf("🔄 Upstream %s failed (%v), switching to %s", baseURL, err, next)
	return c.get(ctx, next, token, query)
}

func (c *menuClient) get(ctx context.Context, baseURL, token string, query domain.MenuQuery) (string, error) {
	c.rl.Take()

	req := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"menuTypeCode":    query.MenuType.String(),
			"languageCode":    query.LanguageCode,
			"includeInactive": strconv.FormatBool(query.IncludeInactive),
		})
	if token != "" {
		req.SetAuthToken(token)
	}

	resp, err := req.Get(baseURL + c.config.HierarchyPath)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("request cancelled: %w", ctx.Err())
		}
		return "", fmt.Errorf("failed to fetch URL: %w", err)
	}

	if resp.StatusCode() == http.StatusTooManyRequests {
		c.triggerCircuitBreaker()
	}

	if resp.IsError() {
		return "", &StatusError{StatusCode: resp.StatusCode(), Status: resp.Status()}
	}

	return resp.String(), nil
}
