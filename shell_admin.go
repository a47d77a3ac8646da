package main

import (
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/mailio/go-campaign-console/services"
	"github.com/mailio/go-campaign-console/types"
	"github.com/mailio/go-campaign-console/util"
)

func (s *shell) adminCommand(args []string) bool {
	admin := s.console.Admin
	switch args[0] {
	case "help":
		s.printf("Available commands: users, edit <user id>, templates, senders, whoami, logout, exit\n")
	case "users":
		ctx, cancel := commandContext()
		defer cancel()
		rows, err := admin.Refresh(ctx)
		if err != nil {
			s.report(err)
			return true
		}
		s.printUsers(rows)
	case "edit":
		if len(args) < 2 {
			s.printf("Usage: edit <user id>\n")
			return true
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			s.printf("Invalid user id %s\n", args[1])
			return true
		}
		user, err := admin.FindUser(id)
		if err != nil {
			s.printf("User %d not found, run 'users' first\n", id)
			return true
		}
		s.editPermissions(*user)
	default:
		return false
	}
	return true
}

func (s *shell) printUsers(rows []types.UserRow) {
	w := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	s.fprintf(w, "ID\tEMAIL\tCOMPANY\tSTATUS\tAPIS\tSENT\tLIMIT\tREMAINING\tEXPIRES\n")
	for _, r := range rows {
		sent, limit, remaining := "-", util.FormatLimit(r.User.MonthlyEmailLimit), "-"
		if r.Usage != nil {
			sent = strconv.Itoa(r.Usage.SentThisMonth)
			limit = util.FormatLimit(r.Usage.MonthlyEmailLimit)
			remaining = util.FormatRemaining(r.Usage.Remaining)
		}
		s.fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.User.ID, r.User.Email, r.User.Company, r.User.Status,
			strings.Join(r.User.AllowedAPIs, ","), sent, limit, remaining,
			util.StringOr(r.User.AccessExpiresAt, "-"))
	}
	w.Flush()
}

// editPermissions is the permission modal: pre-filled form, closed on success only
func (s *shell) editPermissions(user types.User) {
	form := services.NewPermissionForm(user)
	s.printf("Editing %s\n", user.Email)
	form.Status = s.promptDefault("Status (pending/approved/rejected/expired)", form.Status)
	form.AllowedAPIs = util.SplitList(s.promptDefault("Allowed APIs", strings.Join(form.AllowedAPIs, ",")))
	form.AccessDays = s.promptInt("Access days (0 = unlimited)", form.AccessDays)
	form.MonthlyEmailLimit = s.promptInt("Monthly email limit (0 = unlimited)", form.MonthlyEmailLimit)

	for {
		ctx, cancel := commandContext()
		msg, err := s.console.Admin.UpdatePermissions(ctx, form)
		cancel()
		if err == nil {
			s.printf("%s\n", msg)
			s.printUsers(s.console.Admin.Rows())
			return
		}
		s.report(err)
		answer, ok := s.promptLine("Retry? [y/N]: ")
		if !ok || !strings.EqualFold(answer, "y") {
			return
		}
	}
}

func (s *shell) promptInt(label string, current int) int {
	answer := s.promptDefault(label, strconv.Itoa(current))
	if !util.IsNumber(answer) {
		s.printf("%s is not a number, keeping %d\n", answer, current)
		return current
	}
	return util.StringToInt(answer)
}
