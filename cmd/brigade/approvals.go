package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/brigadehq/brigade/internal/approval"
)

var approvalsDBPath string

var approvalsCmd = &cobra.Command{
	Use:   "approvals",
	Short: "Manage saved approval requests",
	Long: `Manage approval requests saved for later during analysis.

Requests saved from the interactive prompt are kept in a local SQLite
database until they are approved or denied.`,
}

var approvalsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pending approval requests",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		store, err := openApprovalStore()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer store.Close()

		pending, err := store.ListPending(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if len(pending) == 0 {
			fmt.Println("No pending approval requests.")
			return
		}

		bold := color.New(color.Bold).SprintFunc()
		fmt.Printf("%s\n", bold(fmt.Sprintf("%d pending approval request(s)", len(pending))))
		for _, req := range pending {
			fmt.Printf("  %s  %s (quality %.1f, %d fixes, saved %s)\n",
				req.ID, req.Path, req.QualityScore, len(req.Fixes),
				req.CreatedAt.Format("2006-01-02 15:04"))
		}
	},
}

var approvalsApproveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "Approve a pending request",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		decideApproval(args[0], true)
	},
}

var approvalsDenyCmd = &cobra.Command{
	Use:   "deny <id>",
	Short: "Deny a pending request",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		decideApproval(args[0], false)
	},
}

func init() {
	rootCmd.AddCommand(approvalsCmd)
	approvalsCmd.AddCommand(approvalsListCmd)
	approvalsCmd.AddCommand(approvalsApproveCmd)
	approvalsCmd.AddCommand(approvalsDenyCmd)
	approvalsCmd.PersistentFlags().StringVar(&approvalsDBPath, "db", ".brigade/approvals.db", "Path to the approvals database")
}

func openApprovalStore() (*approval.Store, error) {
	return approval.NewStore(approvalsDBPath)
}

func decideApproval(id string, approve bool) {
	ctx := context.Background()

	store, err := openApprovalStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if approve {
		err = store.Approve(ctx, id)
	} else {
		err = store.Deny(ctx, id)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if approve {
		fmt.Printf("Approved %s\n", id)
	} else {
		fmt.Printf("Denied %s\n", id)
	}
}
