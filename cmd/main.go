package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/mailio/go-campaign-console/app"
	"github.com/mailio/go-campaign-console/services"
	"github.com/spf13/cobra"
)

var (
	configFile string
	token      string
	assumeYes  bool

	console *services.Console
)

func check(e error) {
	if e != nil {
		fmt.Printf("%v\n", e.Error())
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "conf.yaml", "configuration file path")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "session token (default $CONSOLE_TOKEN)")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "answer yes to confirmations")
}

var rootCmd = &cobra.Command{
	Use:     "campaignctl",
	Short:   "Scriptable client of the email campaign service",
	Long:    `campaignctl schedules campaigns, manages domains, extracts emails and administers users of the email campaign service. Run 'campaignctl login' and export the printed token as CONSOLE_TOKEN.`,
	Version: "1.0.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		a, err := app.Load(configFile)
		check(err)
		a.ServeMetrics()
		console = a.Console
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// authorize starts a session from --token or CONSOLE_TOKEN
func authorize(ctx context.Context) {
	t := token
	if t == "" {
		t = os.Getenv("CONSOLE_TOKEN")
	}
	if t == "" {
		check(fmt.Errorf("not logged in: pass --token or set CONSOLE_TOKEN (see 'campaignctl login')"))
	}
	console.UseToken(ctx, t)
}

// confirmer honours --yes, otherwise asks on stdin
func confirmer() services.Confirmer {
	if assumeYes {
		return services.AlwaysConfirm
	}
	return services.ConfirmFunc(func(ctx context.Context, message string) (bool, error) {
		fmt.Printf("%s [y/N]: ", message)
		var answer string
		fmt.Scanln(&answer)
		answer = strings.ToLower(strings.TrimSpace(answer))
		return answer == "y" || answer == "yes", nil
	})
}

func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func main() {
	Execute()
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
