package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"codecollab-be/internal/config"
	"codecollab-be/pkg/events"
	pktNats "codecollab-be/pkg/nats"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newActivityCommand(loadConfig func() *config.Config) *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Tail room activity exported to NATS",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			if cfg.App.NatsURL == "" {
				return errors.New("NATS_URL is not set")
			}

			sub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
			if err != nil {
				return err
			}
			defer sub.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			out := cmd.OutOrStdout()
			cc, err := sub.Subscribe(ctx, subject, "", func(_ context.Context, event events.Event) error {
				renderEvent(out, event)
				return nil
			})
			if err != nil {
				return err
			}
			defer cc.Stop()

			fmt.Fprintf(out, "Listening on %s (Ctrl+C to stop)\n", subject)
			<-ctx.Done()
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", pktNats.SubjectPrefix+">", "Subject filter")
	return cmd
}

func renderEvent(out io.Writer, event events.Event) {
	paint := color.New(color.FgWhite)
	switch event.EventType() {
	case events.RoomJoined:
		paint = color.New(color.FgGreen)
	case events.RoomLeft:
		paint = color.New(color.FgYellow)
	case events.CodeExecuted:
		paint = color.New(color.FgCyan)
	}

	fmt.Fprintf(out, "%s %s room=%s user=%s\n",
		event.Timestamp().Format("15:04:05"),
		paint.Sprintf("%-13s", event.EventType()),
		events.RoomID(event),
		events.Username(event),
	)
}
