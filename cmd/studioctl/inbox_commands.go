package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	bookingStore "fitstudio/internal/adapters/storage/booking"
	contactStore "fitstudio/internal/adapters/storage/contact"
	eventStore "fitstudio/internal/adapters/storage/event"
)

func newInboxCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "List accepted form submissions",
	}
	cmd.AddCommand(newInboxContactCommand(ctx))
	cmd.AddCommand(newInboxBookingsCommand(ctx))
	cmd.AddCommand(newInboxRegistrationsCommand(ctx))
	return cmd
}

func newInboxContactCommand(ctx *commandContext) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Recent contact messages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := ctx.database()
			if err != nil {
				return err
			}
			msgs, err := contactStore.NewSQLiteStore(db).ListRecent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(msgs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No contact messages")
				return nil
			}
			rows := make([][]string, 0, len(msgs))
			for _, m := range msgs {
				rows = append(rows, []string{formatTime(m.SubmittedAt), m.FullName, m.Email, orDash(m.Subject), truncate(m.Body, 50)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Received", "Name", "Email", "Subject", "Message"}, rows, nil))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum messages to list")
	return cmd
}

func newInboxBookingsCommand(ctx *commandContext) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "Recent booking requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := ctx.database()
			if err != nil {
				return err
			}
			reqs, err := bookingStore.NewSQLiteStore(db).ListRecent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(reqs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No booking requests")
				return nil
			}
			rows := make([][]string, 0, len(reqs))
			for _, r := range reqs {
				rows = append(rows, []string{formatTime(r.SubmittedAt), r.Service, r.FullName, r.Email, r.Phone})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Received", "Service", "Name", "Email", "Phone"}, rows, nil))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum requests to list")
	return cmd
}

func newInboxRegistrationsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "registrations <event-id>",
		Short: "Registrations for one event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := ctx.database()
			if err != nil {
				return err
			}
			store := eventStore.NewSQLiteStore(db)
			ev, err := store.GetByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			regs, err := store.ListRegistrations(cmd.Context(), ev.ID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			total := 0
			rows := make([][]string, 0, len(regs))
			for _, r := range regs {
				total += r.Participants
				rows = append(rows, []string{formatTime(r.RegisteredAt), r.FullName, r.Email, r.Phone, strconv.Itoa(r.Participants)})
			}
			fmt.Fprintf(out, "%s on %s: %d registration(s), %d participant(s)\n", ev.Title, ev.Date.Format("Mon 2 Jan 2006"), len(regs), total)
			if len(rows) > 0 {
				fmt.Fprintln(out, renderTable([]string{"Registered", "Name", "Email", "Phone", "People"}, rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight}))
			}
			return nil
		},
	}
}
