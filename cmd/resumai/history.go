package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/thanush/resumai/internal/api"
	"github.com/thanush/resumai/internal/types"
)

var historyCommand = &cobra.Command{
	Use:   "history",
	Short: "List the signed-in user's saved analyses",
	Long:  "Prints saved analyses newest first. Reads local history by default; --remote fetches the backend's copy instead.",
	RunE:  runHistoryCmd,
}

var (
	historyRemote bool
	historyJSON   bool
)

func init() {
	historyCommand.Flags().BoolVar(&historyRemote, "remote", false, "Fetch history from the backend instead of local storage")
	historyCommand.Flags().BoolVar(&historyJSON, "json", false, "Print full records as JSON")
	rootCmd.AddCommand(historyCommand, deleteCommand)
}

var deleteCommand = &cobra.Command{
	Use:   "delete <analysis-id>",
	Short: "Delete one saved analysis from local history",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeleteCmd,
}

func runDeleteCmd(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid analysis id %q: %w", args[0], err)
	}

	gw, err := newGateway()
	if err != nil {
		return err
	}
	user, err := gw.ActiveUser()
	if err != nil {
		return err
	}
	if err := gw.DeleteHistoryItem(user.ID, id); err != nil {
		return err
	}
	fmt.Println("Deleted.")
	return nil
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	gw, err := newGateway()
	if err != nil {
		return err
	}

	var items []types.HistoryItem
	if historyRemote {
		ctx, cancel := context.WithTimeout(context.Background(), api.DefaultTimeout)
		defer cancel()
		items, err = gw.RemoteHistory(ctx)
	} else {
		var user *types.User
		user, err = gw.ActiveUser()
		if err == nil {
			items, err = gw.UserHistory(user.ID)
		}
	}
	if err != nil {
		return err
	}

	if historyJSON {
		out, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode history: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	if len(items) == 0 {
		fmt.Println("No saved analyses.")
		return nil
	}
	w := os.Stdout
	for _, it := range items {
		fmt.Fprintf(w, "%s  %s  score=%d ats=%d  %s\n",
			it.Timestamp.Format("2006-01-02 15:04"), it.ID, it.Analysis.Score, it.Analysis.ATSScore, firstLine(it.Analysis.Summary))
	}
	return nil
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	if len(s) > 80 {
		return s[:80] + "..."
	}
	return s
}
