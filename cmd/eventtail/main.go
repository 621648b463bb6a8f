// Command eventtail prints chat domain events forwarded to NATS JetStream.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"course-advisor-be/internal/config"
	"course-advisor-be/pkg/events"
	pktNats "course-advisor-be/pkg/nats"

	"github.com/fatih/color"
)

func main() {
	cfg := config.Load()

	url := flag.String("url", cfg.App.NatsURL, "NATS server URL")
	filter := flag.String("filter", pktNats.SubjectPrefix+"chat.>", "subject filter")
	durable := flag.String("durable", "", "durable consumer name (empty for ephemeral)")
	flag.Parse()

	if *url == "" {
		color.Red("NATS_URL is not set and -url was not given")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sub, err := pktNats.NewSubscriber(*url)
	if err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
	defer sub.Close()

	err = sub.Subscribe(ctx, *filter, *durable, func(_ context.Context, evt events.Envelope) error {
		data, _ := json.Marshal(evt.Data)
		label := color.CyanString
		if strings.HasSuffix(evt.Type, ".failed") {
			label = color.RedString
		} else if strings.HasSuffix(evt.Type, ".deleted") {
			label = color.YellowString
		}
		color.White("%s %s %s", evt.OccurredAt.Format("15:04:05.000"), label("%-30s", evt.Type), data)
		return nil
	})
	if err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}

	color.Green("Listening on %s (%s), Ctrl+C to stop", *filter, *url)
	<-ctx.Done()
}
