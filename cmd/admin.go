package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/mailio/go-campaign-console/services"
	"github.com/mailio/go-campaign-console/util"
	"github.com/spf13/cobra"
)

var (
	userID            int64
	status            string
	allowedAPIs       string
	accessDays        int
	monthlyEmailLimit int
)

func init() {
	updateCmd.Flags().Int64Var(&userID, "user", 0, "user id")
	updateCmd.Flags().StringVar(&status, "status", "", "pending, approved, rejected or expired (default: current, pending becomes approved)")
	updateCmd.Flags().StringVar(&allowedAPIs, "apis", "", "comma separated allowed APIs (default: current or the default set)")
	updateCmd.Flags().IntVar(&accessDays, "days", -1, "access days, 0 = unlimited (default: current)")
	updateCmd.Flags().IntVar(&monthlyEmailLimit, "limit", -1, "monthly email limit, 0 = unlimited (default: current)")
	updateCmd.MarkFlagRequired("user")

	adminCmd.AddCommand(usersCmd)
	adminCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(adminCmd)
}

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "User administration (admin accounts only)",
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List users with their monthly usage",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := commandContext()
		defer cancel()
		authorize(ctx)
		rows, err := console.Admin.Refresh(ctx)
		check(err)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "ID\tEMAIL\tSTATUS\tAPIS\tSENT\tLIMIT\tREMAINING\n")
		for _, r := range rows {
			sent, remaining := "-", "-"
			if r.Usage != nil {
				sent = fmt.Sprint(r.Usage.SentThisMonth)
				remaining = util.FormatRemaining(r.Usage.Remaining)
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n", r.User.ID, r.User.Email, r.User.Status,
				strings.Join(r.User.AllowedAPIs, ","), sent, util.FormatLimit(r.User.MonthlyEmailLimit), remaining)
		}
		w.Flush()
	},
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update status, permissions and limits of a user",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := commandContext()
		defer cancel()
		authorize(ctx)
		_, err := console.Admin.Refresh(ctx)
		check(err)
		user, err := console.Admin.FindUser(userID)
		check(err)

		form := services.NewPermissionForm(*user)
		if status != "" {
			form.Status = status
		}
		if allowedAPIs != "" {
			form.AllowedAPIs = util.SplitList(allowedAPIs)
		}
		if accessDays >= 0 {
			form.AccessDays = accessDays
		}
		if monthlyEmailLimit >= 0 {
			form.MonthlyEmailLimit = monthlyEmailLimit
		}
		msg, err := console.Admin.UpdatePermissions(ctx, form)
		check(err)
		fmt.Println(msg)
	},
}
