package state

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example.com/cleanslate/backend/internal/ai"
	"example.com/cleanslate/backend/internal/analytics"
	"example.com/cleanslate/backend/internal/models"
	"example.com/cleanslate/backend/internal/notifications"
)

type memoryPersister struct {
	mu      sync.Mutex
	initial models.AppState
	saved   []models.AppState
}

func (p *memoryPersister) Load(context.Context) models.AppState {
	return p.initial
}

func (p *memoryPersister) Save(_ context.Context, state models.AppState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.saved = append(p.saved, state)
}

type fakeGenerator struct {
	result ai.GenerateResult
	err    error
}

func (g fakeGenerator) Generate(context.Context, ai.GenerateInput) (ai.GenerateResult, []byte, error) {
	return g.result, nil, g.err
}

func newTestStore(t *testing.T, generator Generator) (*Store, *memoryPersister, *notifications.Hub) {
	t.Helper()

	persister := &memoryPersister{initial: testState()}
	hub := notifications.NewHub()
	store := NewStore(context.Background(), persister, generator, hub, nil)
	return store, persister, hub
}

func TestStoreApplyPersistsAndRecomputes(t *testing.T) {
	store, persister, hub := newTestStore(t, nil)
	events, unsubscribe := hub.Subscribe()
	defer unsubscribe()

	before := store.Analytics()
	change := store.CancelSubscription(context.Background(), 2)

	assert.True(t, change.Changed)
	assert.Equal(t, uint64(2), change.Version)
	assert.InDelta(t, before.MonthlySpend-52.99, change.Analytics.MonthlySpend, 0.001)
	assert.Equal(t, analytics.Compute(store.State()), store.Analytics())

	require.Len(t, persister.saved, 1)
	assert.Equal(t, models.StatusCancelled, persister.saved[0].Subscriptions[1].Status)

	event := <-events
	assert.Equal(t, notifications.EventStateUpdated, event.Type)
}

func TestStoreUnknownIDStillSaves(t *testing.T) {
	store, persister, _ := newTestStore(t, nil)

	change := store.PauseSubscription(context.Background(), 404)

	assert.False(t, change.Changed)
	assert.Equal(t, uint64(1), store.Version())
	require.Len(t, persister.saved, 1)
	assert.Equal(t, testState(), persister.saved[0])
}

func TestStoreApplyUnknownOperation(t *testing.T) {
	store, persister, _ := newTestStore(t, nil)

	_, err := store.Apply(context.Background(), Operation("drop"), 1)

	assert.ErrorIs(t, err, ErrUnknownOperation)
	assert.Empty(t, persister.saved)
}

func TestStoreStateIsCopy(t *testing.T) {
	store, _, _ := newTestStore(t, nil)

	snapshot := store.State()
	snapshot.Subscriptions[0].Status = models.StatusCancelled

	assert.Equal(t, models.StatusActive, store.State().Subscriptions[0].Status)
}

func TestStoreObserverReceivesAnalytics(t *testing.T) {
	store, _, _ := newTestStore(t, nil)

	var seen []analytics.Snapshot
	store.Observe(func(snapshot analytics.Snapshot) {
		seen = append(seen, snapshot)
	})
	store.DismissInsight(context.Background(), 1)

	require.Len(t, seen, 2)
	assert.Equal(t, store.Analytics(), seen[1])
}

func TestStoreReset(t *testing.T) {
	store, persister, _ := newTestStore(t, nil)

	store.UnsubscribeEmail(context.Background(), 1)
	change := store.Reset(context.Background())

	assert.Equal(t, models.DefaultState(), change.State)
	assert.Equal(t, models.DefaultState(), persister.saved[len(persister.saved)-1])
}

type clearingPersister struct {
	memoryPersister
	clearErr error
	clears   int
}

func (p *clearingPersister) Clear(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clears++
	return p.clearErr
}

func TestStoreResetClearsSlot(t *testing.T) {
	persister := &clearingPersister{memoryPersister: memoryPersister{initial: testState()}}
	store := NewStore(context.Background(), persister, nil, nil, nil)

	store.DismissInsight(context.Background(), 1)
	saves := len(persister.saved)

	change := store.Reset(context.Background())

	assert.True(t, change.Changed)
	assert.Equal(t, models.DefaultState(), store.State())
	assert.Equal(t, 1, persister.clears)
	assert.Len(t, persister.saved, saves, "reset must clear the slot instead of writing defaults")
}

func TestStoreResetSavesWhenClearFails(t *testing.T) {
	persister := &clearingPersister{
		memoryPersister: memoryPersister{initial: testState()},
		clearErr:        errors.New("read-only volume"),
	}
	store := NewStore(context.Background(), persister, nil, nil, nil)

	store.Reset(context.Background())

	require.NotEmpty(t, persister.saved)
	assert.Equal(t, models.DefaultState(), persister.saved[len(persister.saved)-1])
}

func TestStoreGenerateSuccess(t *testing.T) {
	store, _, _ := newTestStore(t, fakeGenerator{result: ai.GenerateResult{Content: "three tips"}})

	_, ok := store.LastResult()
	assert.False(t, ok)

	result := store.Generate(context.Background(), "analyze", ai.UseCaseAnalysis)
	assert.Equal(t, "three tips", result.Content)

	last, ok := store.LastResult()
	require.True(t, ok)
	assert.Equal(t, "three tips", last.Content)
}

func TestStoreGenerateFallback(t *testing.T) {
	store, _, hub := newTestStore(t, fakeGenerator{err: errors.New("connection refused")})
	events, unsubscribe := hub.Subscribe()
	defer unsubscribe()

	result := store.Generate(context.Background(), "analyze", ai.UseCaseAnalysis)

	assert.Equal(t, ai.FallbackContent, result.Content)
	assert.False(t, result.Timestamp.IsZero())

	event := <-events
	assert.Equal(t, notifications.EventAIResult, event.Type)
}

func TestStoreGenerateWithoutGenerator(t *testing.T) {
	store, _, _ := newTestStore(t, nil)

	result := store.Generate(context.Background(), "hello", ai.UseCaseGeneral)

	assert.Equal(t, ai.FallbackContent, result.Content)
}

func TestStoreGenerationObserver(t *testing.T) {
	store, _, _ := newTestStore(t, fakeGenerator{err: errors.New("timeout")})

	var outcomes []bool
	store.ObserveGenerations(func(useCase ai.UseCase, failed bool) {
		assert.Equal(t, ai.UseCaseEmail, useCase)
		outcomes = append(outcomes, failed)
	})
	store.Generate(context.Background(), "draft", ai.UseCaseEmail)

	assert.Equal(t, []bool{true}, outcomes)
}
