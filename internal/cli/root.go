package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"example.com/cleanslate/backend/internal/ai"
	"example.com/cleanslate/backend/internal/config"
	"example.com/cleanslate/backend/internal/state"
	"example.com/cleanslate/backend/internal/storage"
)

// Opener открывает хранилище состояния для одной команды.
type Opener func(ctx context.Context) (*state.Store, io.Closer, error)

// OpenFromConfig собирает хранилище по той же конфигурации, что и сервер.
func OpenFromConfig(ctx context.Context) (*state.Store, io.Closer, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	snapshots, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	service := ai.NewService(ai.NewClient(cfg.AI), cfg.AI.MaxOutputTokens)
	return state.NewStore(ctx, snapshots, service, nil, logger), snapshots, nil
}

type session struct {
	open   Opener
	store  *state.Store
	closer io.Closer
}

// NewRootCmd собирает дерево команд cleanslatectl.
func NewRootCmd(open Opener) *cobra.Command {
	s := &session{open: open}

	root := &cobra.Command{
		Use:   "cleanslatectl",
		Short: "Manage CleanSlate subscriptions and email senders from the terminal",
		Long: `cleanslatectl reads and changes the same saved dashboard state as the
CleanSlate server: list subscriptions, cancel or pause them, unsubscribe
from senders and ask the assistant for advice.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[annotationNoState] == "true" {
				return nil
			}
			store, closer, err := s.open(cmd.Context())
			if err != nil {
				return err
			}
			s.store, s.closer = store, closer
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if s.closer == nil {
				return nil
			}
			return s.closer.Close()
		},
	}

	root.AddCommand(
		newStateCmd(s),
		newStatsCmd(s),
		newListCmd(s),
		newEmailsCmd(s),
		newOperationCmd(s, "cancel", "Cancel a subscription and count its amount as saved", state.OpCancelSubscription),
		newOperationCmd(s, "pause", "Pause a subscription", state.OpPauseSubscription),
		newOperationCmd(s, "activate", "Reactivate a subscription", state.OpActivateSubscription),
		newOperationCmd(s, "unsubscribe", "Unsubscribe from an email sender", state.OpUnsubscribeEmail),
		newOperationCmd(s, "resubscribe", "Subscribe to an email sender again", state.OpResubscribeEmail),
		newOperationCmd(s, "dismiss", "Dismiss an insight", state.OpDismissInsight),
		newApplyCmd(s),
		newGenerateCmd(s),
		newResetCmd(s),
		newHashPasscodeCmd(),
	)

	return root
}
