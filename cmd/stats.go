package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/mailio/go-campaign-console/services"
	"github.com/mailio/go-campaign-console/types"
	"github.com/mailio/go-campaign-console/util"
	"github.com/spf13/cobra"
)

func init() {
	statsCmd.AddCommand(statsLogsCmd)
	statsCmd.AddCommand(statsDeleteCmd)
	statsCmd.AddCommand(statsDeleteAllCmd)
	rootCmd.AddCommand(statsCmd)
}

func openStats() (context.Context, *services.StatisticsService, context.CancelFunc) {
	ctx, cancel := commandContext()
	s := openPanel(ctx, services.TabStats).(*services.StatisticsService)
	check(s.Refresh(ctx))
	return ctx, s, cancel
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Monthly usage of the current user",
	Run: func(cmd *cobra.Command, args []string) {
		_, s, cancel := openStats()
		defer cancel()
		u := s.Usage()
		fmt.Printf("Sent this month: %d\nMonthly limit:   %s\nRemaining:       %s\n",
			u.SentThisMonth, util.FormatLimit(u.MonthlyEmailLimit), util.FormatRemaining(u.Remaining))
	},
}

var statsLogsCmd = &cobra.Command{
	Use:   "logs",
	Short: "List scheduled, sent and failed emails",
	Run: func(cmd *cobra.Command, args []string) {
		_, s, cancel := openStats()
		defer cancel()
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "ID\tSTATUS\tSENDER\tRECEIVER\tSCHEDULED\tEXECUTED\tERROR\n")
		for _, l := range s.Logs() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", l.ID, l.Status, l.Sender, l.Receiver,
				l.ScheduledAt, util.StringOr(l.ExecutedAt, "-"), util.StringOr(l.Error, ""))
		}
		w.Flush()
	},
}

var statsDeleteCmd = &cobra.Command{
	Use:   "delete <log id>...",
	Short: "Delete one or more email logs",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, s, cancel := openStats()
		defer cancel()
		if len(args) == 1 {
			check(s.DeleteLog(ctx, types.LogID(args[0]), confirmer()))
		} else {
			for _, id := range args {
				s.Selection.Toggle(types.LogID(id))
			}
			check(s.DeleteSelected(ctx, confirmer()))
		}
		fmt.Printf("Deleted %d log(s), %d left\n", len(args), len(s.Logs()))
	},
}

var statsDeleteAllCmd = &cobra.Command{
	Use:   "delete-all",
	Short: "Delete the whole email log history",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, s, cancel := openStats()
		defer cancel()
		check(s.DeleteAll(ctx, confirmer()))
		fmt.Println("All logs deleted")
	},
}
