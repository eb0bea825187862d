package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/structuresh/structure/internal/api"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func (c *CLI) logsCommand() *cobra.Command {
	var stream bool
	cmd := &cobra.Command{
		Use:   "logs [app]",
		Short: "View a running app's logs",
		Args:  cobra.MaximumNArgs(1),
		RunE: c.loginRequired(func(cmd *cobra.Command, args []string) error {
			app := appArg(cmd, args)
			if app == "" {
				return c.missingApp("logs")
			}
			return c.streamLogs(cmd.Context(), app, stream)
		}),
	}
	addAppFlag(cmd)
	cmd.Flags().BoolVarP(&stream, "stream", "s", false, "keep polling for new log lines")
	return cmd
}

// streamLogs prints the logs of app. When stream is set it keeps polling with
// the server's next_check cursor until the server stops sending one, the
// stream duration runs out or ctx is cancelled.
func (c *CLI) streamLogs(ctx context.Context, app string, stream bool) error {
	fmt.Fprintf(c.Out, "%sFetching logs for %s...\n", arrow, app)
	if stream {
		fmt.Fprintf(c.Out, "%sPress %s to exit\n\n", arrow, c.bold("Ctrl-C"))
	}

	client := c.api()
	limiter := rate.NewLimiter(rate.Every(c.pollInterval()), 1)
	deadline := time.Now().Add(c.streamDuration())
	since := 0.0

	for {
		if time.Now().After(deadline) {
			fmt.Fprintf(c.Out, "%sExiting after %s. Run `structure logs` again to see new logs.\n\n", arrow, describeDuration(c.streamDuration()))
			return nil
		}
		if err := limiter.Wait(ctx); err != nil {
			fmt.Fprintf(c.Out, "%sExiting...\n", arrow)
			return nil
		}

		resp, err := client.Logs(ctx, app, since)
		if err != nil {
			if ctx.Err() != nil {
				fmt.Fprintf(c.Out, "%sExiting...\n", arrow)
				return nil
			}
			c.logger().Debug("Fetching logs failed", zap.String("app", app), zap.Error(err))
			return c.warn(api.MessageOf(err, "Unable to retrieve application logs."))
		}

		if text := resp.Text(); text != "" {
			fmt.Fprintln(c.Out, text)
		}
		if !stream || resp.NextCheck == nil {
			return nil
		}
		since = *resp.NextCheck
	}
}

func describeDuration(d time.Duration) string {
	if d >= time.Minute && d%time.Minute == 0 {
		if d == time.Minute {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", int(d/time.Minute))
	}
	return d.String()
}
