package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"dashinbox/internal/model"
	"dashinbox/internal/widget"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List inbox messages",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := loadInbox(cmd)
		if err != nil {
			return err
		}

		snap := svc.Snapshot()
		printRows(cmd.OutOrStdout(), snap.Rows)
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d unread\n", snap.Unread)
		return nil
	},
}

var toggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Open a message, marking it read if it was new",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := model.ParseMessageID(args[0])
		if err != nil {
			return err
		}

		svc, err := loadInbox(cmd)
		if err != nil {
			return err
		}

		row, task, ok := svc.Toggle(cmd.Context(), id)
		if !ok {
			return fmt.Errorf("message %s is not in the inbox", id)
		}

		if task != nil {
			ctx, cancel := context.WithTimeout(cmd.Context(), waitTimeout(cmd))
			defer cancel()
			if err := task.Wait(ctx); err != nil {
				if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
					fmt.Fprintf(cmd.ErrOrStderr(), "mark as read failed: %v\n", err)
				}
			}
			row, _ = svc.Row(id)
		}

		printMessage(cmd.OutOrStdout(), row)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a message from the inbox",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := model.ParseMessageID(args[0])
		if err != nil {
			return err
		}

		svc, err := loadInbox(cmd)
		if err != nil {
			return err
		}

		task, ok := svc.Delete(cmd.Context(), id)
		if !ok {
			return fmt.Errorf("message %s is not in the inbox", id)
		}

		// The process must outlive the request for it to reach the server.
		ctx, cancel := context.WithTimeout(cmd.Context(), waitTimeout(cmd))
		defer cancel()
		_ = task.Wait(ctx)

		fmt.Fprintf(cmd.OutOrStdout(), "message %s removed\n", id)
		return nil
	},
}

func printRows(w io.Writer, rows []widget.Row) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATE\tTITLE")
	for _, r := range rows {
		marker := " "
		if r.Bold {
			marker = "*"
		}
		fmt.Fprintf(tw, "%s\t%s%s\t%s\n", r.ID, marker, r.State, r.Title)
	}
	tw.Flush()
}

func printMessage(w io.Writer, row widget.Row) {
	fmt.Fprintf(w, "#%s [%s] %s\n", row.ID, row.State, row.Title)
	if row.Expanded && row.Body != "" {
		fmt.Fprintf(w, "\n%s\n", row.Body)
	}
}

func init() {
	rootCmd.AddCommand(listCmd, toggleCmd, deleteCmd)
}
