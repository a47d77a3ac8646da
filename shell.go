package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mailio/go-campaign-console/services"
	"github.com/mailio/go-campaign-console/types"
)

// shell is the interactive front end: auth flow, admin console or user console
// depending on the session
type shell struct {
	console  *services.Console
	in       *bufio.Scanner
	out      io.Writer
	terminal bool
	fd       int
	// sleep is replaced in tests
	sleep func(time.Duration)
}

func newShell(console *services.Console, in io.Reader, out io.Writer) *shell {
	fd, terminal := terminalFd(in)
	return &shell{
		console:  console,
		in:       newScanner(in),
		out:      out,
		terminal: terminal,
		fd:       fd,
		sleep:    time.Sleep,
	}
}

func (s *shell) printf(format string, args ...interface{}) {
	fmt.Fprintf(s.out, format, args...)
}

// report prints an error the same way whatever its origin
func (s *shell) report(err error) {
	if err == nil {
		return
	}
	var ve *types.ValidationError
	switch {
	case errors.Is(err, types.ErrNotConfirmed):
		s.printf("Cancelled.\n")
	case errors.As(err, &ve):
		s.printf("Invalid input: %s\n", ve.Message)
	default:
		s.printf("Error: %s\n", err.Error())
	}
}

func (s *shell) prompt() string {
	switch s.console.View() {
	case services.ViewAdmin:
		return "admin> "
	case services.ViewUser:
		tab, _ := s.console.Shell.Active()
		if tab == "" {
			return "console> "
		}
		return string(tab) + "> "
	}
	return s.console.Auth.State().String() + "> "
}

func (s *shell) run() {
	s.printf("Campaign console. Type 'help' for a list of commands.\n")
	for {
		fmt.Fprint(s.out, s.prompt())
		if !s.in.Scan() {
			return
		}
		args := strings.Fields(s.in.Text())
		if len(args) == 0 {
			continue
		}
		if args[0] == "exit" || args[0] == "quit" {
			s.printf("Bye\n")
			return
		}
		var handled bool
		switch s.console.View() {
		case services.ViewAuth:
			handled = s.authCommand(args)
		case services.ViewAdmin:
			handled = s.commonCommand(args) || s.adminCommand(args)
		case services.ViewUser:
			handled = s.commonCommand(args) || s.userCommand(args)
		}
		if !handled {
			s.printf("Unknown command. Type 'help' for a list of commands.\n")
		}
	}
}

// commands available with a session
func (s *shell) commonCommand(args []string) bool {
	switch args[0] {
	case "logout":
		s.console.Logout()
		s.printf("Logged out\n")
	case "whoami":
		session := s.console.Session.Get()
		role := "user"
		if session.IsAdmin {
			role = "admin"
		}
		s.printf("%s (%s)\n", session.Email, role)
	case "templates":
		s.templatesCommand(args[1:])
	case "senders":
		s.sendersCommand(args[1:])
	default:
		return false
	}
	return true
}

func (s *shell) authCommand(args []string) bool {
	auth := s.console.Auth
	switch args[0] {
	case "help":
		s.printf("Available commands: login, signup, otp, back, exit\n")
	case "login":
		auth.SwitchToLogin()
		email, ok := s.promptLine("Email: ")
		if !ok {
			return true
		}
		password, ok := s.promptSecret("Password: ")
		if !ok {
			return true
		}
		ctx, cancel := commandContext()
		defer cancel()
		session, err := s.console.Login(ctx, email, password)
		if err != nil {
			if errors.Is(err, types.ErrPendingApproval) {
				s.printf("Your account is waiting for an administrator to approve it.\n")
				return true
			}
			s.report(err)
			return true
		}
		if session.IsAdmin {
			s.printf("Welcome %s (administrator)\n", session.Email)
			return true
		}
		s.printf("Welcome %s\n", session.Email)
		s.printf("Server: %s\n", s.healthLabel(ctx))
		s.printTabs()
	case "signup":
		auth.SwitchToSignup()
		email, ok := s.promptLine("Email: ")
		if !ok {
			return true
		}
		ctx, cancel := commandContext()
		defer cancel()
		msg, err := auth.RequestOTP(ctx, email)
		if err != nil {
			s.report(err)
			return true
		}
		if msg == "" {
			msg = "A one-time passcode was sent to " + email
		}
		s.printf("%s\n", msg)
		s.completeSignup()
	case "otp":
		s.completeSignup()
	case "back":
		auth.Back()
	default:
		return false
	}
	return true
}

func (s *shell) completeSignup() {
	auth := s.console.Auth
	input := types.InputSignupComplete{Email: auth.SignupEmail()}
	if input.Email == "" {
		email, ok := s.promptLine("Email: ")
		if !ok {
			return
		}
		input.Email = email
	}
	var ok bool
	if input.OTP, ok = s.promptLine("One-time passcode: "); !ok {
		return
	}
	if input.Password, ok = s.promptSecret("Password: "); !ok {
		return
	}
	if input.Company, ok = s.promptLine("Company: "); !ok {
		return
	}
	if input.Location, ok = s.promptLine("Location: "); !ok {
		return
	}
	ctx, cancel := commandContext()
	defer cancel()
	msg, err := auth.CompleteSignup(ctx, input)
	if err != nil {
		s.report(err)
		return
	}
	s.printf("%s\n", msg)
	s.sleep(auth.SignupReturnDelay())
	auth.SwitchToLogin()
}

// healthLabel polls the health endpoint once
func (s *shell) healthLabel(ctx context.Context) string {
	if s.console.Shell.CheckHealth(ctx) {
		return "online"
	}
	return "offline"
}

func (s *shell) printTabs() {
	var names []string
	for _, t := range services.Tabs() {
		names = append(names, fmt.Sprintf("%s (%s)", t, t.Title()))
	}
	s.printf("Tabs: %s\nUse 'open <tab>' to switch.\n", strings.Join(names, ", "))
}
