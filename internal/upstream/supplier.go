package upstream

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"resty.dev/v3"
)

// Supplier hands out menu API base URLs in round-robin order
type Supplier interface {
	Get() string
	Len() int
}

type supplier struct {
	baseURLs []string
	current  int
	mutex    sync.Mutex
}

// NewSupplier probes every candidate's health endpoint in parallel and keeps
// the ones that answer. If none answer, all candidates are kept so the
// service can recover once the API comes back.
func NewSupplier(ctx context.Context, baseURLs []string, healthPath string) (Supplier, error) {
	candidates := make([]string, 0, len(baseURLs))
	for _, u := range baseURLs {
		if u = strings.TrimRight(strings.TrimSpace(u), "/"); u != "" {
			candidates = append(candidates, u)
		}
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no menu API base URLs configured")
	}

	log.Infof("🔄 Probing %d menu API upstreams in parallel...", len(candidates))

	healthy := make([]bool, len(candidates))
	semaphore := make(chan struct{}, 10)

	var wg sync.WaitGroup
	for i, baseURL := range candidates {
		wg.Add(1)

		go func(index int, baseURL string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if isHealthy(ctx, baseURL+healthPath) {
				healthy[index] = true
				log.Infof("✅ Upstream %s is healthy", baseURL)
			} else {
				log.Warnf("❌ Upstream %s failed its health check, skipping", baseURL)
			}
		}(i, baseURL)
	}
	wg.Wait()

	valid := make([]string, 0, len(candidates))
	for i, baseURL := range candidates {
		if healthy[i] {
			valid = append(valid, baseURL)
		}
	}

	if len(valid) == 0 {
		log.Warnf("⚠️ No upstream passed its health check, keeping all %d candidates", len(candidates))
		valid = candidates
	}

	log.Infof("✅ Upstream supplier initialized with %d of %d base URLs", len(valid), len(candidates))

	return &supplier{baseURLs: valid}, nil
}

// Get returns the next base URL in round-robin fashion
func (s *supplier) Get() string {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if len(s.baseURLs) == 0 {
		return ""
	}

	baseURL := s.baseURLs[s.current]
	s.current = (s.current + 1) % len(s.baseURLs)

	return baseURL
}

func (s *supplier) Len() int {
	return len(s.baseURLs)
}

// isHealthy tests whether the health URL answers with a non-error status
func isHealthy(ctx context.Context, healthURL string) bool {
	client := resty.New().
		SetTimeout(5 * time.Second).
		SetRetryCount(0)
	defer client.Close()

	resp, err := client.R().
		SetContext(ctx).
		Get(healthURL)

	if err != nil {
		log.Debugf("Health check failed for %s: %v", healthURL, err)
		return false
	}

	if resp.IsError() {
		log.Debugf("Health check failed for %s with status: %s", healthURL, resp.Status())
		return false
	}

	return true
}
