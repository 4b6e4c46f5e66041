package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"example.com/cleanslate/backend/internal/models"
)

// Driver reads and writes the raw bytes of one named slot.
// Read returns ErrSlotEmpty when nothing has been written yet.
type Driver interface {
	Name() string
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, payload []byte) error
	Delete(ctx context.Context) error
	Close() error
}

type SnapshotStore struct {
	driver  Driver
	logger  *slog.Logger
	timeout time.Duration
}

// New создает хранилище снимков состояния поверх драйвера слота.
func New(driver Driver, logger *slog.Logger) *SnapshotStore {
	if logger == nil {
		logger = slog.Default()
	}

	return &SnapshotStore{driver: driver, logger: logger}
}

// Load читает снимок. При отсутствии или повреждении данных возвращает состояние по умолчанию.
func (s *SnapshotStore) Load(ctx context.Context) models.AppState {
	ctx, cancel := s.operationContext(ctx)
	defer cancel()

	payload, err := s.driver.Read(ctx)
	if err != nil {
		if errors.Is(err, ErrSlotEmpty) {
			s.logger.Info("snapshot slot empty, using defaults", slog.String("driver", s.driver.Name()))
		} else {
			s.logger.Warn("snapshot read failed, using defaults", slog.String("driver", s.driver.Name()), slog.String("error", err.Error()))
		}
		return models.DefaultState()
	}

	state, err := Decode(payload)
	if err != nil {
		s.logger.Warn("snapshot rejected, using defaults", slog.String("driver", s.driver.Name()), slog.String("error", err.Error()))
		return models.DefaultState()
	}

	return state
}

// Save перезаписывает слот полным снимком. Ошибки записи логируются и не возвращаются.
func (s *SnapshotStore) Save(ctx context.Context, state models.AppState) {
	payload, err := Encode(state)
	if err != nil {
		s.logger.Warn("snapshot encode failed", slog.String("error", err.Error()))
		return
	}

	ctx, cancel := s.operationContext(ctx)
	defer cancel()

	if err := s.driver.Write(ctx, payload); err != nil {
		s.logger.Warn("snapshot write failed", slog.String("driver", s.driver.Name()), slog.String("error", err.Error()))
	}
}

// SetTimeout ограничивает длительность одной операции с драйвером. Ноль снимает ограничение.
func (s *SnapshotStore) SetTimeout(timeout time.Duration) {
	s.timeout = timeout
}

// Driver возвращает имя используемого драйвера.
func (s *SnapshotStore) Driver() string {
	return s.driver.Name()
}

// Clear удаляет сохраненный снимок. Следующий Load вернет состояние по умолчанию.
func (s *SnapshotStore) Clear(ctx context.Context) error {
	ctx, cancel := s.operationContext(ctx)
	defer cancel()

	if err := s.driver.Delete(ctx); err != nil {
		return fmt.Errorf("clear %s slot: %w", s.driver.Name(), err)
	}
	return nil
}

// Close освобождает ресурсы драйвера.
func (s *SnapshotStore) Close() error {
	return s.driver.Close()
}

// operationContext не наследует отмену запроса, только его значения.
func (s *SnapshotStore) operationContext(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx = context.WithoutCancel(ctx)
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}
