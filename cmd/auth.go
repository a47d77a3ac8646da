package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mailio/go-campaign-console/types"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	email    string
	password string
	otp      string
	company  string
	location string
)

func init() {
	loginCmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	loginCmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when empty)")
	loginCmd.MarkFlagRequired("email")

	signupCmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	signupCmd.MarkFlagRequired("email")

	signupCompleteCmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	signupCompleteCmd.Flags().StringVar(&otp, "otp", "", "one-time passcode received by email")
	signupCompleteCmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when empty)")
	signupCompleteCmd.Flags().StringVar(&company, "company", "", "company")
	signupCompleteCmd.Flags().StringVar(&location, "location", "", "location")
	signupCompleteCmd.MarkFlagRequired("email")
	signupCompleteCmd.MarkFlagRequired("otp")

	signupCmd.AddCommand(signupCompleteCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(signupCmd)
}

func readPassword() string {
	if password != "" {
		return password
	}
	fmt.Print("Password: ")
	secret, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	check(err)
	return string(secret)
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and print the session token",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := commandContext()
		defer cancel()
		session, err := console.Login(ctx, email, readPassword())
		check(err)
		role := "user"
		if session.IsAdmin {
			role = "admin"
		}
		fmt.Fprintf(os.Stderr, "Logged in as %s (%s)\n", session.Email, role)
		fmt.Println(session.Token)
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Request a one-time passcode to create an account",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := commandContext()
		defer cancel()
		msg, err := console.Auth.RequestOTP(ctx, email)
		check(err)
		if msg == "" {
			msg = "A one-time passcode was sent to " + email
		}
		fmt.Println(msg)
		fmt.Println("Complete with: campaignctl signup complete --email " + email + " --otp <code>")
	},
}

var signupCompleteCmd = &cobra.Command{
	Use:   "complete",
	Short: "Create the account with the received passcode",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := commandContext()
		defer cancel()
		msg, err := console.Auth.CompleteSignup(ctx, types.InputSignupComplete{
			Email:    email,
			OTP:      otp,
			Password: readPassword(),
			Company:  strings.TrimSpace(company),
			Location: strings.TrimSpace(location),
		})
		check(err)
		fmt.Println(msg)
	},
}
