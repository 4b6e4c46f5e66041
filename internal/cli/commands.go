package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"example.com/cleanslate/backend/internal/ai"
	"example.com/cleanslate/backend/internal/auth"
	"example.com/cleanslate/backend/internal/models"
	"example.com/cleanslate/backend/internal/state"
	"example.com/cleanslate/backend/internal/view"
)

const annotationNoState = "no-state"

func newStateCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Print the saved state as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := json.MarshalIndent(s.store.State(), "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(payload))
			return err
		},
	}
}

func newStatsCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show spending, savings and inbox statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			current, snapshot, _ := s.store.Snapshot()
			_, err := fmt.Fprintln(cmd.OutOrStdout(), renderStats(current.User, snapshot))
			return err
		},
	}
}

func newListCmd(s *session) *cobra.Command {
	var search, status, sortBy string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List subscriptions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := view.ParseQuery(search, status, sortBy)
			if query.Status != view.StatusAll && !models.SubscriptionStatus(query.Status).IsValid() {
				return fmt.Errorf("unknown status %q, expected one of: %s", status, statusChoices())
			}
			subs := view.Subscriptions(s.store.State().Subscriptions, query)
			_, err := fmt.Fprintln(cmd.OutOrStdout(), renderSubscriptions(subs))
			return err
		},
	}

	cmd.Flags().StringVarP(&search, "search", "q", "", "Match name or category (case-insensitive)")
	cmd.Flags().StringVar(&status, "status", view.StatusAll, "Filter by status: "+statusChoices())
	cmd.Flags().StringVar(&sortBy, "sort", view.SortByAmount, "Sort by: amount, name, status, category")
	return cmd
}

func newEmailsCmd(s *session) *cobra.Command {
	var search, emailType, subscribed string

	cmd := &cobra.Command{
		Use:   "emails",
		Short: "List email senders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := view.ParseEmailQuery(search, emailType, subscribed)
			emails := view.Emails(s.store.State().Emails, query)
			_, err := fmt.Fprintln(cmd.OutOrStdout(), renderEmails(emails))
			return err
		},
	}

	cmd.Flags().StringVarP(&search, "search", "q", "", "Match sender or category (case-insensitive)")
	cmd.Flags().StringVar(&emailType, "type", view.StatusAll, "Filter by type: all, promotional, newsletter, notification")
	cmd.Flags().StringVar(&subscribed, "subscribed", view.SubscribedAll, "Filter: all, subscribed, unsubscribed")
	return cmd
}

func newOperationCmd(s *session, use, short string, op state.Operation) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperation(cmd, s, op, args[0])
		},
	}
}

func runOperation(cmd *cobra.Command, s *session, op state.Operation, rawID string) error {
	id, err := strconv.Atoi(rawID)
	if err != nil {
		return fmt.Errorf("invalid id %q", rawID)
	}

	before := s.store.State()
	change, err := s.store.Apply(cmd.Context(), op, id)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), renderChange(op, id, before, change))
	return err
}

func newApplyCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "apply <operation> <id>",
		Short: "Apply an operation by name, e.g. cancel_subscription or dismiss_insight",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := state.ParseOperation(args[0])
			if err != nil {
				return err
			}
			return runOperation(cmd, s, op, args[1])
		},
	}
}

func statusChoices() string {
	choices := []string{view.StatusAll}
	for _, status := range models.Statuses() {
		choices = append(choices, string(status))
	}
	return strings.Join(choices, ", ")
}

func newGenerateCmd(s *session) *cobra.Command {
	var useCase string

	cmd := &cobra.Command{
		Use:   "generate <prompt>",
		Short: "Ask the assistant for text (analysis, email drafts, advice)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := s.store.Generate(cmd.Context(), strings.Join(args, " "), ai.ParseUseCase(useCase))
			_, err := fmt.Fprintln(cmd.OutOrStdout(), renderResult(result))
			return err
		},
	}

	cmd.Flags().StringVarP(&useCase, "type", "t", string(ai.UseCaseGeneral), "Use case: review, email, analysis, general")
	return cmd
}

func newResetCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Replace the saved state with the initial demo data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s.store.Reset(cmd.Context())
			_, err := fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("State reset to defaults"))
			return err
		},
	}
}

func newHashPasscodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "hash-passcode <passcode>",
		Short:       "Print a bcrypt hash for AUTH_PASSCODE_HASH",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{annotationNoState: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := auth.HashPassword(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
			return err
		},
	}
}
