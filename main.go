package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/go-kit/log/level"
	"github.com/mailio/go-campaign-console/app"
	"github.com/mailio/go-campaign-console/global"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [-c conf.yaml]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Interactive console of the email campaign service.\n\n")
	flag.PrintDefaults()
}

func main() {
	var (
		configFile string
	)
	// configuration file optional path. Default:  current dir with  filename conf.yaml
	flag.StringVar(&configFile, "c", "conf.yaml", "Configuration file path.")
	flag.StringVar(&configFile, "config", "conf.yaml", "Configuration file path.")
	flag.Usage = usage
	flag.Parse()

	a, err := app.Load(configFile)
	if err != nil {
		level.Error(global.Logger).Log("msg", "failed to start", "err", err)
		os.Exit(1)
	}
	a.ServeMetrics()

	sh := newShell(a.Console, os.Stdin, os.Stdout)
	sh.run()
}
