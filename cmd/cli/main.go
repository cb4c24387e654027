// One-shot mode: run a single tour check (or a test call) from a terminal
// without standing up the HTTP server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"tournotify/internal/checker"
	"tournotify/internal/config"
	"tournotify/internal/domain"
	"tournotify/internal/logging"
	"tournotify/internal/notify"
	"tournotify/internal/repo/memory"
	"tournotify/internal/tours"
)

func main() {
	testCall := flag.Bool("test-call", false, "place a test call instead of checking tours")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.FromEnv()

	logger, err := logging.NewLogger(cfg.LogDir, true)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx := context.Background()

	var notifier notify.Multi
	if v := notify.NewTwilioVoice(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFrom, cfg.NotifyTo); v != nil {
		notifier = append(notifier, v)
	}

	if *testCall {
		if len(notifier) == 0 {
			fmt.Fprintln(os.Stderr, "Twilio is not configured; set TWILIO_* and NOTIFY_TO.")
			os.Exit(1)
		}
		err := notifier.Send(ctx, "Test call from tournotify",
			"If you hear this, notifications are working.")
		if err != nil {
			fmt.Fprintln(os.Stderr, "test call failed:", err)
			os.Exit(1)
		}
		fmt.Println("test call placed")
		return
	}

	src := tours.NewClient(cfg.UpstreamURL, cfg.TourCategoryID, cfg.GroupSize, cfg.HTTPTimeout)
	chk := checker.New(logger, src, memory.New(), notifier, cfg.Cooldown)

	rep := chk.Run(ctx)
	out, _ := json.MarshalIndent(rep, "", "  ")
	fmt.Println(string(out))
	if rep.Status == domain.StatusError {
		os.Exit(1)
	}
}
