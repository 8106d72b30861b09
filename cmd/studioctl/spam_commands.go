package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	spamStore "fitstudio/internal/adapters/storage/spam"
	"fitstudio/internal/domain/spam"
)

func newSpamCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spam",
		Short: "Score submissions and review rejections",
	}
	cmd.AddCommand(newSpamCheckCommand())
	cmd.AddCommand(newSpamReviewCommand(ctx))
	return cmd
}

type checkResult struct {
	Spam           bool   `json:"spam"`
	Reason         string `json:"reason,omitempty"`
	Confidence     string `json:"confidence"`
	MatchedKeyword string `json:"matched_keyword,omitempty"`
	Links          int    `json:"links"`
}

func newSpamCheckCommand() *cobra.Command {
	var (
		message  string
		address  string
		honeypot string
		fillTime time.Duration
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Score a message the way the site forms do",
		Long:  "Score a message the way the site forms do. Without --message the message is read from stdin.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("message") {
				raw, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read message: %w", err)
				}
				message = string(raw)
			}

			now := time.Now()
			in := spam.Input{Message: message, Email: address, Honeypot: honeypot}
			if fillTime > 0 {
				in.FormLoadedAt = now.Add(-fillTime)
			}
			v := spam.Detect(in, now)
			res := checkResult{
				Spam:           v.IsSpam,
				Reason:         v.Reason,
				Confidence:     string(v.Confidence),
				MatchedKeyword: v.MatchedKeyword,
				Links:          spam.CountURLs(message),
			}
			if asJSON {
				return writeJSON(cmd, res)
			}

			verdict := "OK"
			if res.Spam {
				verdict = "SPAM"
			}
			rows := [][]string{
				{"Verdict", verdict},
				{"Reason", orDash(res.Reason)},
				{"Confidence", res.Confidence},
				{"Keyword", orDash(res.MatchedKeyword)},
				{"Links", strconv.Itoa(res.Links)},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Check", "Result"}, rows, nil))
			return nil
		},
	}
	cmd.Flags().StringVarP(&message, "message", "m", "", "Message body to score")
	cmd.Flags().StringVarP(&address, "email", "e", "", "Sender email address")
	cmd.Flags().StringVar(&honeypot, "honeypot", "", "Value of the hidden website field")
	cmd.Flags().DurationVar(&fillTime, "fill-time", 0, "Time between form load and submit (0 = unknown)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the verdict as JSON")
	return cmd
}

func newSpamReviewCommand(ctx *commandContext) *cobra.Command {
	var (
		form   string
		limit  int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "review",
		Short: "List recent spam rejections and counts by reason",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if form != "" && form != spam.FormContact && form != spam.FormBooking && form != spam.FormEventRegistration {
				return spam.ErrInvalidForm
			}
			db, err := ctx.database()
			if err != nil {
				return err
			}
			store := spamStore.NewSQLiteStore(db)
			recent, err := store.ListRecent(cmd.Context(), form, limit)
			if err != nil {
				return err
			}
			counts, err := store.CountByReason(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, map[string]any{"recent": recent, "by_reason": counts})
			}

			out := cmd.OutOrStdout()
			if len(recent) == 0 {
				fmt.Fprintln(out, "No spam rejections recorded")
				return nil
			}
			rows := make([][]string, 0, len(recent))
			for _, r := range recent {
				rows = append(rows, []string{
					formatTime(r.RejectedAt), r.Form, orDash(r.Email), r.Reason,
					string(r.Confidence), orDash(r.MatchedKeyword),
				})
			}
			fmt.Fprintln(out, renderTable([]string{"Rejected", "Form", "Email", "Reason", "Confidence", "Keyword"}, rows, nil))

			countRows := make([][]string, 0, len(counts))
			for _, c := range counts {
				countRows = append(countRows, []string{c.Reason, strconv.Itoa(c.Count)})
			}
			fmt.Fprintln(out, renderTable([]string{"Reason", "Count"}, countRows, []columnAlignment{alignLeft, alignRight}))
			return nil
		},
	}
	cmd.Flags().StringVar(&form, "form", "", "Only show one form: contact, booking, event_registration")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum rejections to list")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	return cmd
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
