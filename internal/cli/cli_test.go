package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example.com/cleanslate/backend/internal/ai"
	"example.com/cleanslate/backend/internal/auth"
	"example.com/cleanslate/backend/internal/models"
	"example.com/cleanslate/backend/internal/state"
	"example.com/cleanslate/backend/internal/storage"
)

func fileOpener(t *testing.T) (Opener, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "state.json")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return func(ctx context.Context) (*state.Store, io.Closer, error) {
		driver, err := storage.NewFileDriver(path)
		if err != nil {
			return nil, nil, err
		}
		snapshots := storage.New(driver, logger)
		service := ai.NewService(ai.NewCannedClient(), 0)
		return state.NewStore(ctx, snapshots, service, nil, logger), snapshots, nil
	}, path
}

func run(t *testing.T, open Opener, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := NewRootCmd(open)
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestCancelPersistsBetweenRuns(t *testing.T) {
	open, _ := fileOpener(t)

	out, err := run(t, open, "cancel", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled Adobe Creative Cloud")
	assert.Contains(t, out, "$52.99")

	out, err = run(t, open, "state")
	require.NoError(t, err)

	var saved models.AppState
	require.NoError(t, json.Unmarshal([]byte(out), &saved))
	sub, ok := saved.FindSubscription(3)
	require.True(t, ok)
	assert.Equal(t, models.StatusCancelled, sub.Status)
	assert.InDelta(t, 247.80+52.99, saved.User.TotalSaved, 0.001)

	out, err = run(t, open, "cancel", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to change")
}

func TestOperationRejectsBadID(t *testing.T) {
	open, _ := fileOpener(t)

	_, err := run(t, open, "pause", "abc")
	assert.ErrorContains(t, err, "invalid id")

	_, err = run(t, open, "pause")
	assert.Error(t, err)
}

func TestListAndEmails(t *testing.T) {
	open, _ := fileOpener(t)

	out, err := run(t, open, "list", "--status", "unused", "--sort", "name")
	require.NoError(t, err)
	assert.Contains(t, out, "Adobe Creative Cloud")
	assert.Contains(t, out, "LinkedIn Premium")
	assert.NotContains(t, out, "Netflix")
	assert.Less(t, strings.Index(out, "Adobe"), strings.Index(out, "LinkedIn"))

	out, err = run(t, open, "emails", "--subscribed", "unsubscribed")
	require.NoError(t, err)
	assert.Contains(t, out, "Medium")
	assert.NotContains(t, out, "Groupon")

	out, err = run(t, open, "list", "--search", "zzz")
	require.NoError(t, err)
	assert.Contains(t, out, "No subscriptions match")
}

func TestStatsAndGenerate(t *testing.T) {
	open, _ := fileOpener(t)

	out, err := run(t, open, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Sarah Johnson")
	assert.Contains(t, out, "82.6%")

	out, err = run(t, open, "generate", "--type", "analysis", "what", "should", "I", "cancel")
	require.NoError(t, err)
	assert.Contains(t, out, "top 3 recommendations")
}

func TestResetRestoresDefaults(t *testing.T) {
	open, path := fileOpener(t)

	_, err := run(t, open, "dismiss", "1")
	require.NoError(t, err)
	require.FileExists(t, path)

	_, err = run(t, open, "reset")
	require.NoError(t, err)
	assert.NoFileExists(t, path, "reset must clear the saved slot")

	out, err := run(t, open, "state")
	require.NoError(t, err)
	var saved models.AppState
	require.NoError(t, json.Unmarshal([]byte(out), &saved))
	assert.Equal(t, models.DefaultState(), saved)

	_, err = run(t, open, "pause", "1")
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestHashPasscodeSkipsState(t *testing.T) {
	failing := func(context.Context) (*state.Store, io.Closer, error) {
		return nil, nil, fs.ErrPermission
	}

	out, err := run(t, failing, "hash-passcode", "letmein")
	require.NoError(t, err)
	assert.NoError(t, auth.ComparePassword(strings.TrimSpace(out), "letmein"))

	_, err = run(t, failing, "stats")
	assert.ErrorIs(t, err, fs.ErrPermission)
}

func TestApplyByOperationName(t *testing.T) {
	open, _ := fileOpener(t)

	out, err := run(t, open, "apply", "unsubscribe_email", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Unsubscribed from")

	_, err = run(t, open, "apply", "delete_everything", "1")
	assert.ErrorIs(t, err, state.ErrUnknownOperation)
}

func TestListRejectsUnknownStatus(t *testing.T) {
	open, _ := fileOpener(t)

	_, err := run(t, open, "list", "--status", "expired")
	require.Error(t, err)
	assert.ErrorContains(t, err, "active, unused, forgotten, paused, cancelled")
}
