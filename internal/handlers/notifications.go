package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/cleanslate/backend/internal/notifications"
	"example.com/cleanslate/backend/internal/state"
)

const keepAliveInterval = 25 * time.Second

type NotificationHandler struct {
	Hub   *notifications.Hub
	Store *state.Store
}

// NewNotificationHandler создает SSE-обработчик уведомлений.
func NewNotificationHandler(hub *notifications.Hub, store *state.Store) *NotificationHandler {
	return &NotificationHandler{Hub: hub, Store: store}
}

// Stream открывает SSE-поток событий об изменениях состояния и ответах ассистента.
func (h *NotificationHandler) Stream(c echo.Context) error {
	flusher, ok := c.Response().Writer.(http.Flusher)
	if !ok {
		return serverError(c)
	}

	// Поток живет дольше WriteTimeout сервера.
	_ = http.NewResponseController(c.Response()).SetWriteDeadline(time.Time{})

	c.Response().Header().Set(echo.HeaderContentType, "text/event-stream")
	c.Response().Header().Set(echo.HeaderCacheControl, "no-cache")
	c.Response().Header().Set(echo.HeaderConnection, "keep-alive")
	c.Response().WriteHeader(http.StatusOK)

	ch, unsubscribe := h.Hub.Subscribe()
	defer unsubscribe()

	_ = writeSSE(c, notifications.Event{
		Type:      "connected",
		Timestamp: time.Now().UTC(),
		Data:      map[string]uint64{"version": h.Store.Version()},
	})
	flusher.Flush()

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := c.Response().Write([]byte(": keep-alive\n\n")); err != nil {
				return nil
			}
			flusher.Flush()
		case event, ok := <-ch:
			if !ok {
				return nil
			}
			if err := writeSSE(c, event); err != nil {
				return nil
			}
			flusher.Flush()
		}
	}
}

func writeSSE(c echo.Context, event notifications.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	var frame []byte
	if event.ID != uuid.Nil {
		frame = append(frame, "id: "+event.ID.String()+"\n"...)
	}
	frame = append(frame, "event: "+event.Type+"\n"...)
	frame = append(frame, "data: "+string(payload)+"\n\n"...)

	_, err = c.Response().Write(frame)
	return err
}
