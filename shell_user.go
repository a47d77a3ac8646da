package main

import (
	"context"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/mailio/go-campaign-console/services"
	"github.com/mailio/go-campaign-console/types"
	"github.com/mailio/go-campaign-console/util"
)

const formHelp = "subject, body, template <id|name>, save-template <name>, preview, wrap <start> <end> <tag> [href], insert <pos> <placeholder>, " +
	"sender <email>, saved-sender <email>, remove-sender <n>, show, submit"

func (s *shell) userCommand(args []string) bool {
	switch args[0] {
	case "help":
		s.printf("Available commands: tabs, open <tab>, health, templates, senders, whoami, logout, exit\n")
		s.panelHelp()
	case "tabs":
		s.printTabs()
	case "health":
		ctx, cancel := commandContext()
		defer cancel()
		s.printf("Server: %s\n", s.healthLabel(ctx))
	case "open":
		if len(args) < 2 {
			s.printf("Usage: open <tab>\n")
			return true
		}
		tab, err := services.ParseTab(strings.Join(args[1:], " "))
		if err != nil {
			s.report(err)
			s.printTabs()
			return true
		}
		panel, _ := s.console.Shell.Select(tab)
		s.printf("%s\n", tab.Title())
		s.mountPanel(panel)
	default:
		return s.panelCommand(args)
	}
	return true
}

// mountPanel loads what a panel shows on open
func (s *shell) mountPanel(panel interface{}) {
	ctx, cancel := commandContext()
	defer cancel()
	switch p := panel.(type) {
	case *services.DomainService:
		domains, err := p.Refresh(ctx)
		if err != nil {
			s.report(err)
			return
		}
		s.printDomains(domains)
	case *services.StatisticsService:
		err := p.Refresh(ctx)
		s.printStats(p)
		s.report(err)
	}
}

func (s *shell) panelHelp() {
	_, panel := s.console.Shell.Active()
	switch panel.(type) {
	case *services.ScheduleService:
		s.printf("Schedule: %s, receiver <email> <YYYY-MM-DD HH:MM> [name] [domain], csv <path>, manual\n", formHelp)
	case *services.AutoScheduleService:
		s.printf("Auto schedule: %s, mode <manual|csv|full_csv>, start <YYYY-MM-DD HH:MM>, gap <minutes>, receiver <email> [name] [domain], csv <path>\n", formHelp)
	case *services.MasterScheduleService:
		s.printf("Master schedule: subject, body, template <id|name>, save-template <name>, preview, csv <path>, show, submit\n")
	case *services.DomainService:
		s.printf("Domains: list, verify <email|domain>, status <domain>, records, delete <domain>\n")
	case *services.ExtractService:
		s.printf("Extract: csv <path>, column <name>, workers <1-50>, out <path>, show, submit\n")
	case *services.StatisticsService:
		s.printf("Stats: refresh, select <id>, select-all, delete <id>, delete-selected, delete-all\n")
	}
}

func (s *shell) panelCommand(args []string) bool {
	_, panel := s.console.Shell.Active()
	switch p := panel.(type) {
	case *services.ScheduleService:
		return s.scheduleCommand(p, args)
	case *services.AutoScheduleService:
		return s.autoScheduleCommand(p, args)
	case *services.MasterScheduleService:
		return s.masterScheduleCommand(p, args)
	case *services.DomainService:
		return s.domainCommand(p, args)
	case *services.ExtractService:
		return s.extractCommand(p, args)
	case *services.StatisticsService:
		return s.statsCommand(p, args)
	}
	return false
}

// messageCommand handles the template input shared by the scheduling panels
func (s *shell) messageCommand(form *services.MessageForm, args []string) bool {
	ctx := context.Background()
	switch args[0] {
	case "subject":
		if len(args) > 1 {
			form.Subject = strings.Join(args[1:], " ")
		} else {
			form.Subject = s.promptDefault("Subject", form.Subject)
		}
	case "body":
		if body, ok := s.promptText("Body"); ok {
			form.Body = body
		}
	case "template":
		if len(args) < 2 {
			s.printf("Usage: template <id|name>\n")
			return true
		}
		if err := form.UseTemplate(ctx, s.console.Library, strings.Join(args[1:], " ")); err != nil {
			s.report(err)
		}
	case "save-template":
		if len(args) < 2 {
			s.printf("Usage: save-template <name>\n")
			return true
		}
		t, err := form.SaveAsTemplate(ctx, s.console.Library, strings.Join(args[1:], " "))
		if err != nil {
			s.report(err)
			return true
		}
		s.printf("Template %s saved (%s)\n", t.Name, t.ID)
	case "preview":
		s.printf("Subject: %s\n\n%s\n", form.Subject, form.Preview())
	case "wrap":
		if len(args) < 4 {
			s.printf("Usage: wrap <start> <end> <tag> [href]\n")
			return true
		}
		href := ""
		if len(args) > 4 {
			href = args[4]
		}
		body, cursor, err := util.WrapSelection(form.Body, util.StringToInt(args[1]), util.StringToInt(args[2]), args[3], href)
		if err != nil {
			s.report(err)
			return true
		}
		form.Body = body
		s.printf("%s\n(cursor at %d)\n", form.Body, cursor)
	case "insert":
		if len(args) < 3 {
			s.printf("Usage: insert <pos> <%s>\n", strings.Join(util.Placeholders(), "|"))
			return true
		}
		body, cursor, err := util.InsertAtCursor(form.Body, util.StringToInt(args[1]), args[2])
		if err != nil {
			s.report(err)
			return true
		}
		form.Body = body
		s.printf("%s\n(cursor at %d)\n", form.Body, cursor)
	default:
		return false
	}
	return true
}

// senderCommand handles the sender rows
func (s *shell) senderCommand(form *services.SenderForm, args []string) bool {
	switch args[0] {
	case "sender":
		if len(args) < 2 {
			s.printf("Usage: sender <email>\n")
			return true
		}
		password := ""
		if util.SenderNeedsPassword(args[1]) {
			var ok bool
			if password, ok = s.promptSecret("Password: "); !ok {
				return true
			}
		} else {
			s.printf("%s is managed via its domain, no password needed\n", args[1])
		}
		form.AddSender(args[1], password)
	case "saved-sender":
		if len(args) < 2 {
			s.printf("Usage: saved-sender <email>\n")
			return true
		}
		if err := form.UseSavedSender(context.Background(), s.console.Library, args[1]); err != nil {
			s.report(err)
		}
	case "remove-sender":
		if len(args) < 2 {
			s.printf("Usage: remove-sender <n>\n")
			return true
		}
		if err := form.RemoveSender(util.StringToInt(args[1]) - 1); err != nil {
			s.report(err)
		}
	default:
		return false
	}
	return true
}

func (s *shell) printSenders(senders []types.Sender) {
	for i, sender := range senders {
		auth := "managed via domain"
		if util.SenderNeedsPassword(sender.Email) {
			auth = "password set"
			if sender.Password == "" {
				auth = "PASSWORD MISSING"
			}
		}
		s.printf("  %d. %s (%s)\n", i+1, sender.Email, auth)
	}
}

func (s *shell) printReceivers(form *services.ReceiverForm) {
	if form.UseCSV {
		s.printf("Receivers: CSV %s\n", util.StringOr(&form.CSVPath, "(no file selected)"))
		return
	}
	s.printf("Receivers:\n")
	for i, r := range form.Receivers {
		s.printf("  %d. %s %s %s %s\n", i+1, r.Email, r.Name, r.Domain, r.ScheduledAt)
	}
}

func (s *shell) printBatch(summary *types.BatchSummary) {
	if summary.Message != "" {
		s.printf("%s\n", summary.Message)
	}
	s.printf("Scheduled: %d, failed: %d\n", summary.Scheduled, summary.Failed)
	for _, e := range summary.Errors {
		s.printf("  - %s\n", e.String())
	}
}

func (s *shell) scheduleCommand(p *services.ScheduleService, args []string) bool {
	if s.messageCommand(&p.MessageForm, args) || s.senderCommand(&p.SenderForm, args) {
		return true
	}
	switch args[0] {
	case "receiver":
		if len(args) < 4 {
			s.printf("Usage: receiver <email> <YYYY-MM-DD> <HH:MM> [name] [domain]\n")
			return true
		}
		r := types.Receiver{Email: args[1], ScheduledAt: args[2] + " " + args[3]}
		if len(args) > 4 {
			r.Name = args[4]
		}
		if len(args) > 5 {
			r.Domain = args[5]
		}
		p.AddReceiver(r)
	case "csv":
		if len(args) < 2 {
			s.printf("Usage: csv <path>\n")
			return true
		}
		p.UseCSV = true
		p.CSVPath = args[1]
	case "manual":
		p.UseCSV = false
	case "show":
		s.printf("Subject: %s\nSenders:\n", p.Subject)
		s.printSenders(p.Senders)
		s.printReceivers(&p.ReceiverForm)
	case "submit":
		ctx, cancel := commandContext()
		defer cancel()
		result, err := p.Submit(ctx)
		if err != nil {
			s.report(err)
			return true
		}
		if result.Success != nil && !*result.Success {
			s.printf("Error: %s\n", result.Message)
			return true
		}
		s.printf("%s\n", util.StringOr(&result.Message, "Emails scheduled"))
		if result.ScheduledCount != nil {
			s.printf("Scheduled: %d\n", *result.ScheduledCount)
		}
	default:
		return false
	}
	return true
}

func (s *shell) autoScheduleCommand(p *services.AutoScheduleService, args []string) bool {
	if s.messageCommand(&p.MessageForm, args) || s.senderCommand(&p.SenderForm, args) {
		return true
	}
	switch args[0] {
	case "mode":
		if len(args) < 2 {
			s.printf("Usage: mode <manual|csv|full_csv>\n")
			return true
		}
		p.Mode = args[1]
		p.UseCSV = p.Mode != types.AutoModeManual
	case "start":
		if len(args) < 2 {
			s.printf("Usage: start <YYYY-MM-DD HH:MM>\n")
			return true
		}
		p.StartTime = strings.Join(args[1:], " ")
	case "gap":
		if len(args) < 2 || !util.IsNumber(args[1]) {
			s.printf("Usage: gap <minutes>\n")
			return true
		}
		p.GapMinutes = util.StringToInt(args[1])
	case "receiver":
		if len(args) < 2 {
			s.printf("Usage: receiver <email> [name] [domain]\n")
			return true
		}
		r := types.Receiver{Email: args[1]}
		if len(args) > 2 {
			r.Name = args[2]
		}
		if len(args) > 3 {
			r.Domain = args[3]
		}
		p.AddReceiver(r)
	case "csv":
		if len(args) < 2 {
			s.printf("Usage: csv <path>\n")
			return true
		}
		p.CSVPath = args[1]
		if p.Mode == types.AutoModeManual {
			p.Mode = types.AutoModeCSV
		}
		p.UseCSV = true
	case "show":
		s.printf("Mode: %s\nStart: %s, gap: %d minutes\nSubject: %s\n", p.Mode, p.StartTime, p.GapMinutes, p.Subject)
		if p.Mode != types.AutoModeFullCSV {
			s.printf("Senders:\n")
			s.printSenders(p.Senders)
		}
		s.printReceivers(&p.ReceiverForm)
	case "submit":
		ctx, cancel := commandContext()
		defer cancel()
		summary, err := p.Submit(ctx)
		if err != nil {
			s.report(err)
			return true
		}
		s.printBatch(summary)
	default:
		return false
	}
	return true
}

func (s *shell) masterScheduleCommand(p *services.MasterScheduleService, args []string) bool {
	if s.messageCommand(&p.MessageForm, args) {
		return true
	}
	switch args[0] {
	case "csv":
		if len(args) < 2 {
			s.printf("Usage: csv <path>\n")
			return true
		}
		p.CSVPath = args[1]
	case "show":
		s.printf("CSV: %s\nSubject: %s\n", util.StringOr(&p.CSVPath, "(no file selected)"), p.Subject)
	case "submit":
		ctx, cancel := commandContext()
		defer cancel()
		summary, err := p.Submit(ctx)
		if err != nil {
			s.report(err)
			return true
		}
		s.printBatch(summary)
	default:
		return false
	}
	return true
}

func (s *shell) printDomains(domains []types.Domain) {
	if len(domains) == 0 {
		s.printf("No domains\n")
		return
	}
	w := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	s.fprintf(w, "DOMAIN\tSTATUS\tPROVIDER\tCREATED\tVERIFIED\n")
	for _, d := range domains {
		s.fprintf(w, "%s\t%s\t%s\t%s\t%s\n", d.Domain, d.Status, d.Provider, d.CreatedAt, util.StringOr(d.VerifiedAt, "-"))
	}
	w.Flush()
}

func (s *shell) printRecords(p *services.DomainService) {
	lines := p.FormattedRecords()
	if len(lines) == 0 {
		s.printf("No pending DNS records\n")
		return
	}
	s.printf("Publish these DNS records, then run 'status <domain>':\n")
	for _, line := range lines {
		s.printf("  %s\n", line)
	}
}

func (s *shell) domainCommand(p *services.DomainService, args []string) bool {
	ctx, cancel := commandContext()
	defer cancel()
	switch args[0] {
	case "list":
		domains, err := p.Refresh(ctx)
		if err != nil {
			s.report(err)
			return true
		}
		s.printDomains(domains)
	case "verify":
		if len(args) < 2 {
			s.printf("Usage: verify <email|domain>\n")
			return true
		}
		verification, err := p.RequestVerification(ctx, args[1])
		if err != nil {
			s.report(err)
			return true
		}
		if verification.IsVerified() {
			s.printf("%s is verified\n", verification.Domain)
			s.printDomains(p.Domains())
			return true
		}
		if verification.Message != "" {
			s.printf("%s\n", verification.Message)
		}
		s.printRecords(p)
	case "records":
		s.printRecords(p)
	case "status":
		if len(args) < 2 {
			s.printf("Usage: status <domain>\n")
			return true
		}
		verification, err := p.CheckStatus(ctx, args[1])
		if err != nil {
			s.report(err)
			return true
		}
		s.printf("%s: %s\n", verification.Domain, verification.Status)
		if verification.Message != "" {
			s.printf("%s\n", verification.Message)
		}
	case "delete":
		if len(args) < 2 {
			s.printf("Usage: delete <domain>\n")
			return true
		}
		if err := p.Delete(ctx, args[1], s.confirmer()); err != nil {
			s.report(err)
			return true
		}
		s.printf("Domain %s deleted\n", args[1])
		s.printDomains(p.Domains())
	default:
		return false
	}
	return true
}

func (s *shell) extractCommand(p *services.ExtractService, args []string) bool {
	switch args[0] {
	case "csv":
		if len(args) < 2 {
			s.printf("Usage: csv <path>\n")
			return true
		}
		p.CSVPath = args[1]
	case "column":
		if len(args) < 2 {
			s.printf("Usage: column <name>\n")
			return true
		}
		p.ColumnName = strings.Join(args[1:], " ")
	case "workers":
		if len(args) < 2 || !util.IsNumber(args[1]) {
			s.printf("Usage: workers <1-50>\n")
			return true
		}
		p.Workers = util.StringToInt(args[1])
	case "out":
		if len(args) < 2 {
			s.printf("Usage: out <path>\n")
			return true
		}
		p.OutputPath = args[1]
	case "show":
		s.printf("CSV: %s\nColumn: %s\nWorkers: %d\nOutput: %s\n", p.CSVPath, p.ColumnName, p.Workers, util.StringOr(&p.OutputPath, "(current directory)"))
	case "submit":
		s.printf("Extracting, this can take a while...\n")
		ctx, cancel := commandContext()
		defer cancel()
		out, path, err := p.Submit(ctx)
		if err != nil {
			s.report(err)
			return true
		}
		if out.Message != "" {
			s.printf("%s\n", out.Message)
		}
		if out.EmailsFound > 0 {
			s.printf("Emails found: %d of %d rows\n", out.EmailsFound, out.TotalRows)
		}
		s.printf("Saved to %s\n", path)
	default:
		return false
	}
	return true
}

func (s *shell) printStats(p *services.StatisticsService) {
	if usage := p.Usage(); usage != nil {
		s.printf("Sent this month: %d, limit: %s, remaining: %s\n",
			usage.SentThisMonth, util.FormatLimit(usage.MonthlyEmailLimit), util.FormatRemaining(usage.Remaining))
	}
	logs := p.Logs()
	if len(logs) == 0 {
		s.printf("No email logs\n")
		return
	}
	w := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	s.fprintf(w, " \tID\tSENDER\tRECEIVER\tSTATUS\tSCHEDULED\tEXECUTED\tERROR\n")
	for _, l := range logs {
		mark := " "
		if p.Selection.IsSelected(l.ID) {
			mark = "*"
		}
		s.fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n", mark, l.ID, l.Sender, l.Receiver, l.Status,
			l.ScheduledAt, util.StringOr(l.ExecutedAt, "-"), util.StringOr(l.Error, ""))
	}
	w.Flush()
	s.printf("%s selected\n", strconv.Itoa(p.Selection.Len()))
}

func (s *shell) statsCommand(p *services.StatisticsService, args []string) bool {
	ctx, cancel := commandContext()
	defer cancel()
	switch args[0] {
	case "refresh", "logs":
		err := p.Refresh(ctx)
		s.printStats(p)
		s.report(err)
	case "select":
		if len(args) < 2 {
			s.printf("Usage: select <id>\n")
			return true
		}
		p.Selection.Toggle(types.LogID(args[1]))
		s.printf("%d selected\n", p.Selection.Len())
	case "select-all":
		p.ToggleAll()
		s.printf("%d selected\n", p.Selection.Len())
	case "delete":
		if len(args) < 2 {
			s.printf("Usage: delete <id>\n")
			return true
		}
		if err := p.DeleteLog(ctx, types.LogID(args[1]), s.confirmer()); err != nil {
			s.report(err)
			return true
		}
		s.printStats(p)
	case "delete-selected":
		if err := p.DeleteSelected(ctx, s.confirmer()); err != nil {
			s.report(err)
			return true
		}
		s.printStats(p)
	case "delete-all":
		if err := p.DeleteAll(ctx, s.confirmer()); err != nil {
			s.report(err)
			return true
		}
		s.printStats(p)
	default:
		return false
	}
	return true
}
