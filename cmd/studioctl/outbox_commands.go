package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"fitstudio/internal/adapters/email"
	outboxStore "fitstudio/internal/adapters/storage/outbox"
	"fitstudio/internal/application/orchestrators"
	"fitstudio/internal/domain/outbox"
)

func newOutboxCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outbox",
		Short: "Inspect and replay queued notification emails",
	}
	cmd.AddCommand(newOutboxListCommand(ctx))
	cmd.AddCommand(newOutboxActionCommand(ctx, "retry", "Run a pending or retrying entry now, ignoring backoff",
		func(p *orchestrators.OutboxProcessor, cmd *cobra.Command, id string) error {
			return p.ProcessSingle(cmd.Context(), id)
		}))
	cmd.AddCommand(newOutboxActionCommand(ctx, "requeue", "Reset a failed entry and run it once",
		func(p *orchestrators.OutboxProcessor, cmd *cobra.Command, id string) error {
			return p.RequeueEntry(cmd.Context(), id)
		}))
	cmd.AddCommand(newOutboxActionCommand(ctx, "abandon", "Stop retrying an entry",
		func(p *orchestrators.OutboxProcessor, cmd *cobra.Command, id string) error {
			return p.AbandonEntry(cmd.Context(), id)
		}))
	cmd.AddCommand(newOutboxProcessCommand(ctx))
	return cmd
}

func newOutboxListCommand(ctx *commandContext) *cobra.Command {
	var (
		status string
		limit  int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List outbox entries, failed ones by default",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if status == "all" {
				status = ""
			}
			db, err := ctx.database()
			if err != nil {
				return err
			}
			store := outboxStore.NewSQLiteStore(db)
			entries, err := store.ListByStatus(cmd.Context(), status, limit)
			if err != nil {
				return err
			}
			counts, err := store.CountByStatus(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, map[string]any{"entries": entries, "by_status": counts})
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No outbox entries")
			} else {
				rows := make([][]string, 0, len(entries))
				for _, e := range entries {
					rows = append(rows, []string{
						e.ID, e.ActionType, e.Status,
						fmt.Sprintf("%d/%d", e.Attempts, e.MaxAttempts),
						formatTime(e.CreatedAt), formatTime(e.LastAttemptedAt),
						orDash(truncate(e.ErrorMessage, 60)),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"ID", "Action", "Status", "Attempts", "Created", "Last attempt", "Error"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight},
				))
			}

			countRows := make([][]string, 0, len(counts))
			for _, c := range counts {
				countRows = append(countRows, []string{c.Status, strconv.Itoa(c.Count)})
			}
			if len(countRows) > 0 {
				fmt.Fprintln(out, renderTable([]string{"Status", "Count"}, countRows, []columnAlignment{alignLeft, alignRight}))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", outbox.StatusFailed, "Status to list, or all")
	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "Maximum entries to list")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	return cmd
}

type outboxAction func(p *orchestrators.OutboxProcessor, cmd *cobra.Command, id string) error

func newOutboxActionCommand(ctx *commandContext, use, short string, action outboxAction) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <entry-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, store, err := newProcessor(ctx, cmd)
			if err != nil {
				return err
			}
			if err := action(p, cmd, args[0]); err != nil {
				return err
			}
			entry, err := store.GetByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Entry %s is %s after %d attempt(s)\n", entry.ID, entry.Status, entry.Attempts)
			return nil
		},
	}
}

func newOutboxProcessCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "process",
		Short: "Run one pass over due pending entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, store, err := newProcessor(ctx, cmd)
			if err != nil {
				return err
			}
			if err := p.ProcessPending(cmd.Context()); err != nil {
				return err
			}
			pending, err := store.ListPending(cmd.Context(), 1000)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Processed outbox; %d entries still pending\n", len(pending))
			return nil
		},
	}
}

// newProcessor builds an outbox processor that sends through Resend when
// STUDIO_RESEND_KEY is set.
func newProcessor(ctx *commandContext, cmd *cobra.Command) (*orchestrators.OutboxProcessor, *outboxStore.SQLiteStore, error) {
	db, err := ctx.database()
	if err != nil {
		return nil, nil, err
	}
	store := outboxStore.NewSQLiteStore(db)

	var sender email.Sender
	if key := os.Getenv("STUDIO_RESEND_KEY"); key != "" {
		from := os.Getenv("STUDIO_RESEND_FROM")
		sender = email.NewResendSender(key, from)
	} else {
		fmt.Fprintln(cmd.ErrOrStderr(), "WARNING: STUDIO_RESEND_KEY is not set, emails are discarded")
		sender = email.NewNoopSender()
	}
	p := orchestrators.NewOutboxProcessor(store, map[string]orchestrators.ActionExecutor{
		outbox.ActionTypeNotifyEmail: &orchestrators.EmailExecutor{Sender: sender},
	}, time.Now)
	return p, store, nil
}
