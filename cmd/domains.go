package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/mailio/go-campaign-console/services"
	"github.com/spf13/cobra"
)

func init() {
	domainsCmd.AddCommand(domainsListCmd)
	domainsCmd.AddCommand(domainsVerifyCmd)
	domainsCmd.AddCommand(domainsStatusCmd)
	domainsCmd.AddCommand(domainsDeleteCmd)
	rootCmd.AddCommand(domainsCmd)
}

var domainsCmd = &cobra.Command{
	Use:   "domains",
	Short: "Sender domain verification",
}

var domainsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List domains and their verification status",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := commandContext()
		defer cancel()
		s := openPanel(ctx, services.TabDomains).(*services.DomainService)
		domains, err := s.Refresh(ctx)
		check(err)
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "DOMAIN\tSTATUS\tPROVIDER\tCREATED\n")
		for _, d := range domains {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.Domain, d.Status, d.Provider, d.CreatedAt)
		}
		w.Flush()
	},
}

var domainsVerifyCmd = &cobra.Command{
	Use:   "verify <email or domain>",
	Short: "Request the DNS records proving ownership of a domain",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := commandContext()
		defer cancel()
		s := openPanel(ctx, services.TabDomains).(*services.DomainService)
		v, err := s.RequestVerification(ctx, args[0])
		check(err)
		if v.IsVerified() {
			fmt.Printf("%s is already verified\n", v.Domain)
			return
		}
		if v.Message != "" {
			fmt.Println(v.Message)
		}
		fmt.Printf("Publish these records for %s, then run 'campaignctl domains status %s':\n", v.Domain, v.Domain)
		for _, line := range s.FormattedRecords() {
			fmt.Println("  " + line)
		}
	},
}

var domainsStatusCmd = &cobra.Command{
	Use:   "status <domain>",
	Short: "Check the verification status of a domain",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := commandContext()
		defer cancel()
		s := openPanel(ctx, services.TabDomains).(*services.DomainService)
		v, err := s.CheckStatus(ctx, args[0])
		check(err)
		fmt.Printf("%s: %s\n", v.Domain, v.Status)
		if v.Message != "" {
			fmt.Println(v.Message)
		}
	},
}

var domainsDeleteCmd = &cobra.Command{
	Use:   "delete <domain>",
	Short: "Delete a domain",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := commandContext()
		defer cancel()
		s := openPanel(ctx, services.TabDomains).(*services.DomainService)
		check(s.Delete(ctx, args[0], confirmer()))
		fmt.Printf("Deleted %s\n", args[0])
	},
}
