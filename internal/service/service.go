package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"superadmin/navigation/internal/breadcrumb"
	"superadmin/navigation/internal/client"
	"superadmin/navigation/internal/domain"
	"superadmin/navigation/internal/domain/task"
	"superadmin/navigation/internal/queue"
	"superadmin/navigation/internal/routes"

	"golang.org/x/sync/errgroup"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// MenuSource is the cached menu layer the service reads from
type MenuSource interface {
	Get(ctx context.Context, query domain.MenuQuery) domain.MenuState
	Peek(query domain.MenuQuery) domain.MenuState
	Fetch(ctx context.Context, query domain.MenuQuery) domain.MenuState
	Invalidate(ctx context.Context, query domain.MenuQuery)
	Generation() uint64
	Sweep() int
}

type Options struct {
	MenuTypes       []domain.MenuTypeCode
	Languages       []string
	DefaultLanguage string
	IncludeInactive bool
	MaxRefreshRetry int
	GroupName       string
	MinIdleTime     time.Duration
	SweepInterval   time.Duration
}

const maxRouteTables = 256

type routeTableEntry struct {
	generation uint64
	table      domain.RouteTable
}

type Service struct {
	menus    MenuSource
	queue    queue.Queue
	resolver *breadcrumb.Resolver
	memo     *breadcrumb.Memo
	opts     Options

	mu     sync.Mutex
	tables map[string]routeTableEntry
}

// NewService wires the service. q may be nil, in which case invalidations
// are applied in-process and no workers consume streams.
func NewService(menus MenuSource, q queue.Queue, resolver *breadcrumb.Resolver, opts Options) *Service {
	if opts.SweepInterval <= 0 {
		opts.SweepInterval = time.Minute
	}
	if opts.MinIdleTime <= 0 {
		opts.MinIdleTime = 2 * time.Minute
	}
	return &Service{
		menus:    menus,
		queue:    q,
		resolver: resolver,
		memo:     breadcrumb.NewMemo(resolver, 0),
		opts:     opts,
		tables:   make(map[string]routeTableEntry),
	}
}

// Language returns lang if it is configured, the default language otherwise
func (s *Service) Language(lang string) string {
	for _, l := range s.opts.Languages {
		if strings.EqualFold(l, lang) {
			return l
		}
	}
	return s.opts.DefaultLanguage
}

func (s *Service) MenuTypes() []domain.MenuTypeCode {
	return append([]domain.MenuTypeCode(nil), s.opts.MenuTypes...)
}

func (s *Service) query(menuType domain.MenuTypeCode, lang string) domain.MenuQuery {
	return domain.MenuQuery{
		MenuType:        menuType,
		LanguageCode:    s.Language(lang),
		IncludeInactive: s.opts.IncludeInactive,
	}
}

// callerQuery scopes the query to the token forwarded with ctx, if any
func (s *Service) callerQuery(ctx context.Context, menuType domain.MenuTypeCode, lang string) domain.MenuQuery {
	q := s.query(menuType, lang)
	q.Principal = client.Principal(ctx)
	return q
}

// Menu returns one menu's navigation state, waiting for the fetch if needed.
// Asking for inactive items when they are not configured bypasses the cache.
func (s *Service) Menu(ctx context.Context, menuType domain.MenuTypeCode, lang string, includeInactive bool) domain.MenuState {
	q := s.callerQuery(ctx, menuType, lang)
	if includeInactive && !q.IncludeInactive {
		q.IncludeInactive = true
		return s.menus.Fetch(ctx, q)
	}
	return s.menus.Get(ctx, q)
}

// PeekMenu returns the cached state and starts a background fetch when
// nothing is cached yet.
func (s *Service) PeekMenu(ctx context.Context, menuType domain.MenuTypeCode, lang string) domain.MenuState {
	q := s.callerQuery(ctx, menuType, lang)
	st := s.menus.Peek(q)
	if len(st.Items) == 0 && !st.IsLoading && !st.IsError {
		go s.menus.Get(context.WithoutCancel(ctx), q)
		st.IsLoading = true
	}
	return st
}

// RouteTable returns a copy of the consolidated route table for lang
func (s *Service) RouteTable(ctx context.Context, lang string) domain.RouteTable {
	table, _, _ := s.routeTable(ctx, s.Language(lang))
	return table.Clone()
}

// routeTable reads every menu type through the cache on each call, so stale
// and failed entries get refetched, and only rebuilds the table when the
// cache generation moved. stable is false when the cache changed during the
// reads; such a table is not tied to a generation.
func (s *Service) routeTable(ctx context.Context, lang string) (table domain.RouteTable, generation uint64, stable bool) {
	principal := client.Principal(ctx)
	scope := lang + ":" + principal
	before := s.menus.Generation()

	states := make([]domain.MenuState, len(s.opts.MenuTypes))
	g, gctx := errgroup.WithContext(ctx)
	for i, menuType := range s.opts.MenuTypes {
		g.Go(func() error {
			states[i] = s.menus.Get(gctx, s.callerQuery(ctx, menuType, lang))
			return nil
		})
	}
	_ = g.Wait()

	after := s.menus.Generation()

	s.mu.Lock()
	cached, ok := s.tables[scope]
	s.mu.Unlock()
	stable = before == after
	if ok && stable && cached.generation == after {
		return cached.table, after, true
	}

	sources := make([]domain.SourcedRouteTable, len(s.opts.MenuTypes))
	for i, menuType := range s.opts.MenuTypes {
		if states[i].IsError {
			log.Warnf("⚠️ Menu %s (%s) unavailable, building routes from %d fallback items: %s",
				menuType, lang, len(states[i].Items), states[i].Error)
		}
		sources[i] = domain.SourcedRouteTable{
			MenuType:    menuType,
			RouteConfig: routes.BuildRouteConfigFromMenu(states[i].Items, menuType),
		}
	}
	table = routes.ConsolidateRouteConfigs(sources)
	log.Debugf("Rebuilt route table for %s with %d top-level routes", lang, len(table))
	if !stable {
		return table, after, false
	}

	s.mu.Lock()
	if len(s.tables) >= maxRouteTables {
		s.tables = make(map[string]routeTableEntry)
	}
	s.tables[scope] = routeTableEntry{generation: after, table: table}
	s.mu.Unlock()

	return table, after, true
}

// Breadcrumbs resolves the trail for pathname against the route table of
// the language found in its locale prefix.
func (s *Service) Breadcrumbs(ctx context.Context, pathname string) []domain.BreadcrumbItem {
	lang := s.opts.DefaultLanguage
	if segments := routes.SplitPath(pathname); len(segments) > 0 {
		lang = s.Language(segments[0])
	}

	table, generation, stable := s.routeTable(ctx, lang)
	if !stable {
		return s.resolver.Resolve(pathname, table)
	}
	return s.memo.Resolve(lang+":"+client.Principal(ctx), pathname, table, generation)
}

// Invalidate drops cached menus and refetches them. An empty lang covers all
// configured languages.
func (s *Service) Invalidate(ctx context.Context, menuType domain.MenuTypeCode, lang string) {
	languages := s.opts.Languages
	if lang != "" {
		languages = []string{s.Language(lang)}
	}

	for _, l := range languages {
		q := s.query(menuType, l)
		s.menus.Invalidate(ctx, q)
		if st := s.menus.Get(ctx, q); st.IsError {
			log.Warnf("⚠️ Refetch after invalidation of %s failed: %s", q.CacheKey(), st.Error)
		}
	}
}

// RequestInvalidation publishes an invalidation task, or applies it directly
// when no queue is configured.
func (s *Service) RequestInvalidation(ctx context.Context, menuType domain.MenuTypeCode, lang, reason string) error {
	if s.queue == nil {
		s.Invalidate(ctx, menuType, lang)
		return nil
	}

	_, err := s.queue.AddTask(ctx, &task.MenuInvalidationTask{
		MenuType:     menuType,
		LanguageCode: lang,
		Reason:       reason,
	})
	if err != nil {
		return fmt.Errorf("failed to queue invalidation for %s: %w", menuType, err)
	}

	log.Infof("📨 Queued invalidation of %s (%s)", menuType, lang)
	return nil
}

// Warm loads every configured menu type and language concurrently. Failures
// are queued for retry when a queue is available.
func (s *Service) Warm(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, menuType := range s.opts.MenuTypes {
		for _, lang := range s.opts.Languages {
			g.Go(func() error {
				q := s.query(menuType, lang)
				st := s.menus.Get(gctx, q)
				if !st.IsError {
					log.Infof("✅ Warmed %s: %d root items", q.CacheKey(), len(st.Items))
					return nil
				}

				if s.queue == nil {
					log.Warnf("⚠️ Warm-up of %s failed: %s", q.CacheKey(), st.Error)
					return nil
				}

				retryTask := &task.MenuRefreshRetryTask{
					MenuType:     menuType,
					LanguageCode: q.LanguageCode,
					Error:        st.Error,
				}
				if _, err := s.queue.AddTask(gctx, retryTask); err != nil {
					log.Errorf("❌ Failed to add %s to retry queue: %v", q.CacheKey(), err)
				} else {
					log.Warnf("🔄 Added %s to retry queue due to fetch failure: %s", q.CacheKey(), st.Error)
				}
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return err
	}

	log.Infof("✅ Warmed %d menu types in %d languages", len(s.opts.MenuTypes), len(s.opts.Languages))
	return ctx.Err()
}

func (s *Service) RunWorkers(ctx context.Context, numWorkers int) error {
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.runSweeper(ctx)
	}()

	if s.queue != nil {
		s.runWorkersForStream(ctx, &wg, numWorkers, queue.StreamName(task.TypeMenuInvalidation), "invalidation")
		s.runWorkersForStream(ctx, &wg, max(1, numWorkers/2), queue.StreamName(task.TypeMenuRefreshRetry), "retry")
	}

	wg.Wait()
	return nil
}

func (s *Service) runSweeper(ctx context.Context) {
	ticker := time.NewTicker(s.opts.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.menus.Sweep(); removed > 0 {
				log.Infof("🧹 Evicted %d expired menus", removed)
			}
		}
	}
}

func (s *Service) runWorkersForStream(ctx context.Context, wg *sync.WaitGroup, numWorkers int, streamName, workerType string) {
	// Auto-claimer for this stream
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(s.opts.MinIdleTime)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				consumer := fmt.Sprintf("autoclaimer-%s-%s", workerType, uuid.NewString())
				claimedMessages, err := s.queue.AutoClaim(ctx, s.opts.GroupName, consumer, streamName, s.opts.MinIdleTime)
				if err != nil {
					log.Errorf("❌ Failed to auto-claim messages for %s: %v", streamName, err)
					continue
				}
				if len(claimedMessages) > 0 {
					log.Infof("🔄 Auto-claimed %d messages from %s stream", len(claimedMessages), workerType)
					for _, msg := range claimedMessages {
						if err := s.processMessage(ctx, &msg); err != nil {
							log.Errorf("❌ Failed to process auto-claimed message %s: %v", msg.ID, err)
						}
					}
				}
			}
		}
	}()

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			consumer := fmt.Sprintf("%s-worker-%d", workerType, workerID)
			log.Infof("🚀 Starting %s worker %d as consumer %s", workerType, workerID, consumer)
			for {
				select {
				case <-ctx.Done():
					log.Infof("🛑 %s worker %d stopping", workerType, workerID)
					return
				default:
					msg, err := s.queue.GetTask(ctx, s.opts.GroupName, consumer, streamName)
					if err != nil {
						if ctx.Err() == nil {
							log.Errorf("❌ Failed to get task from %s: %v", streamName, err)
						}
						continue
					}

					if msg != nil {
						if err := s.processMessage(ctx, msg); err != nil {
							log.Errorf("❌ Failed to process message %s: %v", msg.ID, err)
						}
					}
				}
			}
		}(i + 1)
	}
}

func (s *Service) processMessage(ctx context.Context, msg *redis.XMessage) error {
	taskType, taskData, err := queue.MessageTask(msg)
	if err != nil {
		return err
	}

	switch taskType {
	case task.TypeMenuInvalidation:
		invalidation, err := task.UnmarshalTask[*task.MenuInvalidationTask]([]byte(taskData))
		if err != nil {
			return fmt.Errorf("failed to unmarshal invalidation task data: %w", err)
		}

		log.Infof("🔄 Invalidating %s (%s): %s", invalidation.MenuType, invalidation.LanguageCode, invalidation.Reason)
		s.Invalidate(ctx, invalidation.MenuType, invalidation.LanguageCode)

	case task.TypeMenuRefreshRetry:
		retryTask, err := task.UnmarshalTask[*task.MenuRefreshRetryTask]([]byte(taskData))
		if err != nil {
			return fmt.Errorf("failed to unmarshal retry task data: %w", err)
		}

		if err := s.retryRefresh(ctx, retryTask); err != nil {
			return fmt.Errorf("failed to retry refresh: %w", err)
		}

	default:
		return fmt.Errorf("unknown task type: %s", taskType)
	}

	if err := s.queue.AckTask(ctx, queue.StreamName(taskType), s.opts.GroupName, msg.ID); err != nil {
		return fmt.Errorf("failed to ack message %s: %w", msg.ID, err)
	}

	return nil
}

func (s *Service) retryRefresh(ctx context.Context, retryTask *task.MenuRefreshRetryTask) error {
	retryTask.RetryCount++

	q := s.query(retryTask.MenuType, retryTask.LanguageCode)
	log.Infof("🔄 Retrying refresh of %s (attempt %d)", q.CacheKey(), retryTask.RetryCount)

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(retryDelay(retryTask.RetryCount)):
	}

	s.menus.Invalidate(ctx, q)
	st := s.menus.Get(ctx, q)
	if !st.IsError {
		log.Infof("✅ Recovered %s after %d attempts", q.CacheKey(), retryTask.RetryCount)
		return nil
	}

	if retryTask.RetryCount >= s.opts.MaxRefreshRetry {
		log.Errorf("❌ Giving up on %s after %d attempts: %s", q.CacheKey(), retryTask.RetryCount, st.Error)
		return nil
	}

	next := &task.MenuRefreshRetryTask{
		MenuType:     retryTask.MenuType,
		LanguageCode: q.LanguageCode,
		RetryCount:   retryTask.RetryCount,
		Error:        st.Error,
	}
	if _, err := s.queue.AddTask(ctx, next); err != nil {
		log.Errorf("❌ Failed to re-add retry task for %s: %v", q.CacheKey(), err)
		return err
	}

	log.Warnf("🔄 Refresh of %s failed again, will retry (attempt %d): %s", q.CacheKey(), retryTask.RetryCount, st.Error)
	return nil
}

// retryDelay is an exponential backoff capped at one minute
func retryDelay(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}
	delay := time.Second << (attempt - 2)
	if delay > time.Minute || delay <= 0 {
		return time.Minute
	}
	return delay
}
