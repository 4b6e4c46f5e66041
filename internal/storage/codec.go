package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"example.com/cleanslate/backend/internal/models"
)

var (
	ErrSlotEmpty = errors.New("snapshot slot is empty")
	ErrCorrupt   = errors.New("snapshot is corrupt")
)

var snapshotValidator = validator.New()

// Encode сериализует полное состояние в JSON-документ.
// Пустые коллекции пишутся как [], чтобы документ проходил Decode.
func Encode(state models.AppState) ([]byte, error) {
	if state.Subscriptions == nil {
		state.Subscriptions = []models.Subscription{}
	}
	if state.Emails == nil {
		state.Emails = []models.EmailSender{}
	}
	if state.Insights == nil {
		state.Insights = []models.Insight{}
	}

	return json.Marshal(state)
}

// Decode разбирает документ и накладывает известные поля верхнего уровня поверх значений по умолчанию.
// Любое поле неверной формы делает весь документ некорректным.
func Decode(data []byte) (models.AppState, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return models.AppState{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if fields == nil {
		return models.AppState{}, fmt.Errorf("%w: document is not an object", ErrCorrupt)
	}

	state := models.DefaultState()

	if err := decodeField(fields, "user", &state.User); err != nil {
		return models.AppState{}, err
	}
	if err := decodeField(fields, "subscriptions", &state.Subscriptions); err != nil {
		return models.AppState{}, err
	}
	if err := decodeField(fields, "emails", &state.Emails); err != nil {
		return models.AppState{}, err
	}
	if err := decodeField(fields, "insights", &state.Insights); err != nil {
		return models.AppState{}, err
	}

	if err := Validate(state); err != nil {
		return models.AppState{}, err
	}

	return state, nil
}

// Validate проверяет структуру состояния: перечисления, диапазоны и уникальность идентификаторов.
func Validate(state models.AppState) error {
	if err := snapshotValidator.Struct(state); err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	if err := uniqueIDs("subscription", len(state.Subscriptions), func(i int) int { return state.Subscriptions[i].ID }); err != nil {
		return err
	}
	if err := uniqueIDs("email", len(state.Emails), func(i int) int { return state.Emails[i].ID }); err != nil {
		return err
	}
	return uniqueIDs("insight", len(state.Insights), func(i int) int { return state.Insights[i].ID })
}

func decodeField[T any](fields map[string]json.RawMessage, key string, target *T) error {
	raw, ok := fields[key]
	if !ok {
		return nil
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return fmt.Errorf("%w: %s is null", ErrCorrupt, key)
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}

	*target = value
	return nil
}

func uniqueIDs(kind string, n int, id func(int) int) error {
	seen := make(map[int]struct{}, n)
	for i := 0; i < n; i++ {
		value := id(i)
		if _, exists := seen[value]; exists {
			return fmt.Errorf("%w: duplicate %s id %d", ErrCorrupt, kind, value)
		}
		seen[value] = struct{}{}
	}
	return nil
}
