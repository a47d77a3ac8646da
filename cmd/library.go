package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mailio/go-campaign-console/types"
	"github.com/mailio/go-campaign-console/util"
	"github.com/spf13/cobra"
)

var templateID string

func init() {
	templatesSaveCmd.Flags().StringVar(&templateID, "id", "", "id of the template to replace")
	templatesSaveCmd.Flags().StringVarP(&subject, "subject", "s", "", "email subject")
	templatesSaveCmd.Flags().StringVarP(&bodyFile, "body-file", "b", "", "file with the email body")

	sendersSaveCmd.Flags().StringVarP(&password, "password", "p", "", "password, required for public email providers")

	templatesCmd.AddCommand(templatesListCmd, templatesShowCmd, templatesSaveCmd, templatesDeleteCmd)
	sendersCmd.AddCommand(sendersListCmd, sendersSaveCmd, sendersDeleteCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(sendersCmd)
	rootCmd.AddCommand(healthCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check whether the API is reachable",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := commandContext()
		defer cancel()
		if !console.Shell.CheckHealth(ctx) {
			fmt.Println("API offline")
			os.Exit(1)
		}
		fmt.Println("API online")
	},
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Locally saved message templates",
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved templates",
	Run: func(cmd *cobra.Command, args []string) {
		templates, err := console.Library.ListTemplates(context.Background())
		check(err)
		for _, t := range templates {
			fmt.Printf("%s  %s  (%s)\n", t.ID, t.Name, t.Subject)
		}
	},
}

var templatesShowCmd = &cobra.Command{
	Use:   "show <id or name>",
	Short: "Show a template with its rendered preview",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		t, err := console.Library.FindTemplate(context.Background(), args[0])
		check(err)
		fmt.Printf("Name:    %s\nSubject: %s\n\n%s\n", t.Name, t.Subject, util.Preview(t.Body))
	},
}

var templatesSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save a template, replacing --id when given",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		t := types.Template{ID: templateID, Name: args[0], Subject: subject}
		if bodyFile != "" {
			body, err := os.ReadFile(bodyFile)
			check(err)
			t.Body = string(body)
		}
		saved, err := console.Library.SaveTemplate(context.Background(), t)
		check(err)
		fmt.Printf("Saved %s (%s)\n", saved.Name, saved.ID)
	},
}

var templatesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a template",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		check(console.Library.DeleteTemplate(context.Background(), args[0]))
		fmt.Println("Deleted")
	},
}

var sendersCmd = &cobra.Command{
	Use:   "senders",
	Short: "Locally saved sender credentials",
}

var sendersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved senders",
	Run: func(cmd *cobra.Command, args []string) {
		senders, err := console.Library.ListSenders(context.Background())
		check(err)
		for _, s := range senders {
			secret := ""
			if s.Password != "" {
				secret = " (password saved)"
			}
			fmt.Println(s.Email + secret)
		}
	},
}

var sendersSaveCmd = &cobra.Command{
	Use:   "save <email>",
	Short: "Save a sender, replacing an existing one with the same email",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		sender := types.SavedSender{Email: strings.TrimSpace(args[0]), Password: password}
		check(console.Library.SaveSender(context.Background(), sender))
		fmt.Printf("Saved %s\n", sender.Email)
	},
}

var sendersDeleteCmd = &cobra.Command{
	Use:   "delete <email>",
	Short: "Delete a saved sender",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		check(console.Library.DeleteSender(context.Background(), args[0]))
		fmt.Println("Deleted")
	},
}
