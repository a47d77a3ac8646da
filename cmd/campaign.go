package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mailio/go-campaign-console/services"
	"github.com/mailio/go-campaign-console/types"
	"github.com/spf13/cobra"
)

var (
	subject      string
	bodyFile     string
	templateName string
	senders      []string
	receivers    []string
	csvPath      string
	mode         string
	startTime    string
	gapMinutes   int
)

func init() {
	for _, c := range []*cobra.Command{scheduleCmd, autoCmd, masterCmd} {
		c.Flags().StringVarP(&subject, "subject", "s", "", "email subject")
		c.Flags().StringVarP(&bodyFile, "body-file", "b", "", "file with the email body")
		c.Flags().StringVarP(&templateName, "template", "t", "", "saved template (id or name) for subject and body")
		c.Flags().StringVar(&csvPath, "csv", "", "CSV file")
	}
	for _, c := range []*cobra.Command{scheduleCmd, autoCmd} {
		c.Flags().StringArrayVar(&senders, "sender", nil, "sender as email[:password], repeatable; saved senders are looked up")
	}
	scheduleCmd.Flags().StringArrayVarP(&receivers, "receiver", "r", nil, "receiver as email|yyyy-mm-dd hh:mm[|name[|domain]], repeatable")
	autoCmd.Flags().StringArrayVarP(&receivers, "receiver", "r", nil, "receiver as email[|name[|domain]], repeatable")
	autoCmd.Flags().StringVarP(&mode, "mode", "m", types.AutoModeManual, "manual, csv or full_csv")
	autoCmd.Flags().StringVar(&startTime, "start", "", "start time, yyyy-mm-dd hh:mm")
	autoCmd.Flags().IntVar(&gapMinutes, "gap", 5, "minutes between emails (1-60)")

	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(autoCmd)
	rootCmd.AddCommand(masterCmd)
}

// openPanel mounts a panel for tab in an authorized console
func openPanel(ctx context.Context, tab services.Tab) interface{} {
	authorize(ctx)
	panel, err := console.Shell.Select(tab)
	check(err)
	return panel
}

func fillMessage(ctx context.Context, form *services.MessageForm, library *services.LibraryService) {
	if templateName != "" {
		check(form.UseTemplate(ctx, library, templateName))
	}
	if subject != "" {
		form.Subject = subject
	}
	if bodyFile != "" {
		body, err := os.ReadFile(bodyFile)
		check(err)
		form.Body = string(body)
	}
}

func fillSenders(ctx context.Context, form *services.SenderForm, library *services.LibraryService) {
	for _, s := range senders {
		email, password, hasPassword := strings.Cut(s, ":")
		if !hasPassword && form.UseSavedSender(ctx, library, email) == nil {
			continue
		}
		form.AddSender(email, password)
	}
}

// parseReceiver splits email|a|b|c, missing fields are empty
func parseReceiver(s string) (string, []string) {
	parts := strings.Split(s, "|")
	for len(parts) < 4 {
		parts = append(parts, "")
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts[0], parts[1:]
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Schedule emails, each receiver with its own send time",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := commandContext()
		defer cancel()
		s := openPanel(ctx, services.TabSchedule).(*services.ScheduleService)
		fillMessage(ctx, &s.MessageForm, s.Library())
		fillSenders(ctx, &s.SenderForm, s.Library())
		for _, r := range receivers {
			email, rest := parseReceiver(r)
			s.AddReceiver(types.Receiver{Email: email, ScheduledAt: rest[0], Name: rest[1], Domain: rest[2]})
		}
		if csvPath != "" {
			s.UseCSV = true
			s.CSVPath = csvPath
		}
		result, err := s.Submit(ctx)
		check(err)
		printScheduleResult(result)
	},
}

var autoCmd = &cobra.Command{
	Use:   "auto",
	Short: "Schedule emails from a start time with a fixed gap",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := commandContext()
		defer cancel()
		s := openPanel(ctx, services.TabAutoSchedule).(*services.AutoScheduleService)
		fillMessage(ctx, &s.MessageForm, s.Library())
		fillSenders(ctx, &s.SenderForm, s.Library())
		for _, r := range receivers {
			email, rest := parseReceiver(r)
			s.AddReceiver(types.Receiver{Email: email, Name: rest[0], Domain: rest[1]})
		}
		s.Mode = mode
		s.StartTime = startTime
		s.GapMinutes = gapMinutes
		s.CSVPath = csvPath
		s.UseCSV = csvPath != ""
		summary, err := s.Submit(ctx)
		check(err)
		printBatchSummary(summary)
	},
}

var masterCmd = &cobra.Command{
	Use:   "master",
	Short: "Schedule independent jobs listed in a CSV (sender, receiver and time per row)",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := commandContext()
		defer cancel()
		s := openPanel(ctx, services.TabMasterSchedule).(*services.MasterScheduleService)
		fillMessage(ctx, &s.MessageForm, s.Library())
		s.CSVPath = csvPath
		summary, err := s.Submit(ctx)
		check(err)
		printBatchSummary(summary)
	},
}

func printScheduleResult(r *types.ScheduleResult) {
	if r.ScheduledCount != nil {
		fmt.Printf("%s (%d scheduled)\n", r.Message, *r.ScheduledCount)
		return
	}
	fmt.Println(r.Message)
}

func printBatchSummary(b *types.BatchSummary) {
	if b.Message != "" {
		fmt.Println(b.Message)
	}
	fmt.Printf("Scheduled: %d, failed: %d\n", b.Scheduled, b.Failed)
	for _, e := range b.Errors {
		fmt.Println("  " + e.String())
	}
}
