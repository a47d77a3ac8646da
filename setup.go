package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/mailio/go-campaign-console/services"
	"golang.org/x/term"
)

// promptLine prints label and reads one line
func (s *shell) promptLine(label string) (string, bool) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

// promptDefault shows the current value and keeps it on an empty answer
func (s *shell) promptDefault(label, current string) string {
	answer, ok := s.promptLine(fmt.Sprintf("%s [%s]: ", label, current))
	if !ok || answer == "" {
		return current
	}
	return answer
}

// promptSecret reads without echo when stdin is a terminal
func (s *shell) promptSecret(label string) (string, bool) {
	if s.terminal {
		fmt.Fprint(s.out, label)
		secret, err := term.ReadPassword(s.fd)
		fmt.Fprintln(s.out)
		if err != nil {
			return "", false
		}
		return string(secret), true
	}
	return s.promptLine(label)
}

// promptText reads lines until a single "." line
func (s *shell) promptText(label string) (string, bool) {
	fmt.Fprintf(s.out, "%s (end with a single '.' line)\n", label)
	var lines []string
	for s.in.Scan() {
		line := s.in.Text()
		if strings.TrimSpace(line) == "." {
			return strings.Join(lines, "\n"), true
		}
		lines = append(lines, line)
	}
	return "", false
}

// confirmer asks y/N on the shell
func (s *shell) confirmer() services.Confirmer {
	return services.ConfirmFunc(func(ctx context.Context, message string) (bool, error) {
		answer, ok := s.promptLine(message + " [y/N]: ")
		if !ok {
			return false, nil
		}
		answer = strings.ToLower(answer)
		return answer == "y" || answer == "yes", nil
	})
}

// commandContext is cancelled by Ctrl-C while a command runs
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// terminalFd returns the descriptor of in when it is a terminal
func terminalFd(in io.Reader) (int, bool) {
	f, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0, false
	}
	return int(f.Fd()), true
}

func newScanner(in io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(in)
	// bodies can be long
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	return scanner
}
