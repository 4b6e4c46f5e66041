package state

import (
	"context"
	"log/slog"
	"reflect"
	"sync"
	"time"

	"example.com/cleanslate/backend/internal/ai"
	"example.com/cleanslate/backend/internal/analytics"
	"example.com/cleanslate/backend/internal/models"
	"example.com/cleanslate/backend/internal/notifications"
)

// Persister хранит полный снимок состояния между запусками.
type Persister interface {
	Load(ctx context.Context) models.AppState
	Save(ctx context.Context, state models.AppState)
}

// Clearer удаляет сохраненный снимок. Persister может его реализовать,
// тогда Reset очищает слот вместо записи начального состояния.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Generator генерирует текст по промпту и сценарию.
type Generator interface {
	Generate(ctx context.Context, input ai.GenerateInput) (ai.GenerateResult, []byte, error)
}

// Publisher рассылает события об изменениях подписчикам.
type Publisher interface {
	Publish(eventType string, data interface{})
}

var nowUTC = func() time.Time { return time.Now().UTC() }

// Observer получает пересчитанные показатели после каждого изменения состояния.
type Observer func(snapshot analytics.Snapshot)

// GenerationObserver получает исход каждого запроса генерации.
type GenerationObserver func(useCase ai.UseCase, failed bool)

// Change описывает результат операции над состоянием.
type Change struct {
	Version   uint64             `json:"version"`
	Changed   bool               `json:"changed"`
	State     models.AppState    `json:"-"`
	Analytics analytics.Snapshot `json:"analytics"`
}

type Store struct {
	mu        sync.RWMutex
	state     models.AppState
	version   uint64
	analytics analytics.Snapshot

	resultMu   sync.RWMutex
	lastResult *ai.GenerateResult

	persister Persister
	generator Generator
	publisher Publisher
	observers []Observer
	genHooks  []GenerationObserver
	logger    *slog.Logger
}

// NewStore загружает состояние через persister и создает хранилище.
// generator и publisher могут быть nil.
func NewStore(ctx context.Context, persister Persister, generator Generator, publisher Publisher, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}

	initial := persister.Load(ctx)
	return &Store{
		state:     initial,
		version:   1,
		analytics: analytics.Compute(initial),
		persister: persister,
		generator: generator,
		publisher: publisher,
		logger:    logger,
	}
}

// Observe регистрирует наблюдателя и сразу передает ему текущие показатели.
func (s *Store) Observe(observer Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.observers = append(s.observers, observer)
	observer(s.analytics)
}

// ObserveGenerations регистрирует наблюдателя запросов генерации.
func (s *Store) ObserveGenerations(observer GenerationObserver) {
	s.resultMu.Lock()
	defer s.resultMu.Unlock()

	s.genHooks = append(s.genHooks, observer)
}

// State возвращает копию текущего состояния.
func (s *Store) State() models.AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.Clone()
}

// Version возвращает номер текущей версии состояния.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.version
}

// Analytics возвращает показатели, посчитанные для текущей версии состояния.
func (s *Store) Analytics() analytics.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.analytics
}

// Snapshot возвращает согласованную пару состояния и показателей.
func (s *Store) Snapshot() (models.AppState, analytics.Snapshot, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.Clone(), s.analytics, s.version
}

// Apply применяет операцию к состоянию и сохраняет результат.
// Неизвестный идентификатор не является ошибкой: состояние не меняется.
func (s *Store) Apply(ctx context.Context, op Operation, id int) (Change, error) {
	reducer, ok := reducers[op]
	if !ok {
		return Change{}, ErrUnknownOperation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := reducer(s.state, id)
	changed := !reflect.DeepEqual(next, s.state)
	if changed {
		s.state = next
		s.version++
		s.analytics = analytics.Compute(next)
	}

	s.persister.Save(ctx, s.state)

	change := Change{
		Version:   s.version,
		Changed:   changed,
		State:     s.state.Clone(),
		Analytics: s.analytics,
	}

	if changed {
		s.logger.Info("state updated", slog.String("operation", string(op)), slog.Int("id", id), slog.Uint64("version", s.version))
		s.notify(change, op, id)
	}

	return change, nil
}

// CancelSubscription отменяет подписку.
func (s *Store) CancelSubscription(ctx context.Context, id int) Change {
	change, _ := s.Apply(ctx, OpCancelSubscription, id)
	return change
}

// PauseSubscription приостанавливает подписку.
func (s *Store) PauseSubscription(ctx context.Context, id int) Change {
	change, _ := s.Apply(ctx, OpPauseSubscription, id)
	return change
}

// ActivateSubscription возобновляет подписку.
func (s *Store) ActivateSubscription(ctx context.Context, id int) Change {
	change, _ := s.Apply(ctx, OpActivateSubscription, id)
	return change
}

// UnsubscribeEmail отписывает от рассылки.
func (s *Store) UnsubscribeEmail(ctx context.Context, id int) Change {
	change, _ := s.Apply(ctx, OpUnsubscribeEmail, id)
	return change
}

// ResubscribeEmail возобновляет рассылку.
func (s *Store) ResubscribeEmail(ctx context.Context, id int) Change {
	change, _ := s.Apply(ctx, OpResubscribeEmail, id)
	return change
}

// DismissInsight скрывает подсказку.
func (s *Store) DismissInsight(ctx context.Context, id int) Change {
	change, _ := s.Apply(ctx, OpDismissInsight, id)
	return change
}

// Reset заменяет состояние начальным. Слот очищается, если persister это умеет,
// иначе в него записывается начальное состояние.
func (s *Store) Reset(ctx context.Context) Change {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = models.DefaultState()
	s.version++
	s.analytics = analytics.Compute(s.state)
	s.clearSlot(ctx)

	change := Change{Version: s.version, Changed: true, State: s.state.Clone(), Analytics: s.analytics}
	s.logger.Info("state reset", slog.Uint64("version", s.version))
	s.notify(change, "reset", 0)
	return change
}

// Generate запрашивает текст у генератора. При любой ошибке возвращает
// ai.FallbackContent, ошибка только логируется. Результат записывается в слот последнего ответа.
func (s *Store) Generate(ctx context.Context, prompt string, useCase ai.UseCase) ai.GenerateResult {
	var (
		result ai.GenerateResult
		err    error
	)

	if s.generator == nil {
		err = ai.ErrMissingAPIKey
	} else {
		result, _, err = s.generator.Generate(ctx, ai.GenerateInput{Prompt: prompt, Type: useCase})
	}

	if err != nil {
		s.logger.Warn("text generation failed, using fallback", slog.String("use_case", string(useCase)), slog.String("error", err.Error()))
		result = ai.GenerateResult{Content: ai.FallbackContent, Timestamp: nowUTC()}
	}

	s.resultMu.Lock()
	stored := result
	s.lastResult = &stored
	hooks := s.genHooks
	s.resultMu.Unlock()

	for _, hook := range hooks {
		hook(useCase, err != nil)
	}

	if s.publisher != nil {
		s.publisher.Publish(notifications.EventAIResult, result)
	}

	return result
}

// LastResult возвращает последний ответ генерации, если он был.
func (s *Store) LastResult() (ai.GenerateResult, bool) {
	s.resultMu.RLock()
	defer s.resultMu.RUnlock()

	if s.lastResult == nil {
		return ai.GenerateResult{}, false
	}
	return *s.lastResult, true
}

func (s *Store) clearSlot(ctx context.Context) {
	clearer, ok := s.persister.(Clearer)
	if !ok {
		s.persister.Save(ctx, s.state)
		return
	}

	if err := clearer.Clear(ctx); err != nil {
		s.logger.Warn("snapshot clear failed, saving defaults", slog.String("error", err.Error()))
		s.persister.Save(ctx, s.state)
	}
}

func (s *Store) notify(change Change, op Operation, id int) {
	for _, observer := range s.observers {
		observer(change.Analytics)
	}

	if s.publisher == nil {
		return
	}

	s.publisher.Publish(notifications.EventStateUpdated, map[string]interface{}{
		"operation": op,
		"id":        id,
		"version":   change.Version,
		"analytics": change.Analytics,
	})
}
