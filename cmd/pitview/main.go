package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/egarage/pitview/internal/app"
	"github.com/egarage/pitview/internal/session"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	pollSeconds := flag.Int("poll", 0, "refresh interval in seconds (optional, defaults to 30s)")
	demoMode := flag.Bool("demo", false, "show sample data without contacting the backend")
	logout := flag.Bool("logout", false, "clear the stored session and exit")
	flag.Parse()

	if *logout {
		if err := session.Clear(""); err != nil {
			fmt.Fprintf(os.Stderr, "pitview: %v\n", err)
			return 1
		}
		fmt.Println("signed out")
		return 0
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{ConfigPath: *configPath, Demo: *demoMode}
	if poll := *pollSeconds; poll > 0 {
		opts.PollEvery = poll
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "pitview: %v\n", err)
		return 1
	}
	return 0
}
