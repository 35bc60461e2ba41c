package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	sessionrender "github.com/bnema/sensor-access-cli/internal/adapters/render/session"
	"github.com/bnema/sensor-access-cli/internal/application"
	"github.com/bnema/sensor-access-cli/internal/domain"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// Plain output prints every snapshot, so it gets room to absorb bursts.
const plainFeedSize = 64

type accessOptions struct {
	plain         bool
	count         uint64
	maxRecords    int
	metricsListen string
}

func newAccessCmd(app *app) *cobra.Command {
	opts := accessOptions{}

	cmd := &cobra.Command{
		Use:   "access",
		Short: "Purchase access and stream live sensor data",
		Long:  "access loads the contract, connects the wallet, purchases access, verifies it with the backend and streams live sensor records until interrupted.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("metrics-listen") {
				opts.metricsListen = app.cfg.MetricsListen
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runAccess(ctx, cmd, app, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.plain, "plain", false, "print session events as lines instead of the interactive screen")
	cmd.Flags().Uint64Var(&opts.count, "count", 0, "stop after the stream delivered this many records (0 runs until interrupted)")
	cmd.Flags().IntVar(&opts.maxRecords, "max-records", 0, "limit the records drawn on screen (0 shows the whole buffer)")
	cmd.Flags().StringVar(&opts.metricsListen, "metrics-listen", "", "serve Prometheus metrics on this address (overrides metrics.listen)")

	return cmd
}

func runAccess(ctx context.Context, cmd *cobra.Command, app *app, opts accessOptions) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	feedSize := 1
	if opts.plain {
		feedSize = plainFeedSize
	}
	feed := newViewFeed(feedSize, opts.count, cancel)

	orchestrator, err := app.newOrchestrator(ctx, feed.push)
	if err != nil {
		return err
	}
	log := app.log().WithField("session_id", orchestrator.ID())

	g, gctx := errgroup.WithContext(ctx)
	if opts.metricsListen != "" {
		g.Go(func() error {
			return serveMetrics(gctx, opts.metricsListen, app.metrics.Handler(), log)
		})
	}
	g.Go(func() error {
		defer cancel()

		renderOpts := sessionrender.RenderOptions{MaxRecords: opts.maxRecords}
		if opts.plain {
			return runPlainSession(gctx, orchestrator, feed, cmd.OutOrStdout(), renderOpts, log)
		}
		return runLiveSession(gctx, orchestrator, feed, cmd.InOrStdin(), cmd.OutOrStdout(), renderOpts, log)
	})

	return g.Wait()
}

func runPlainSession(ctx context.Context, orchestrator *application.AccessOrchestrator, feed *viewFeed, out io.Writer, renderOpts sessionrender.RenderOptions, log *logrus.Entry) error {
	printer := sessionrender.NewPrinter(out, renderOpts)
	ended := make(chan error, 1)
	printed := make(chan struct{})

	go func() {
		defer close(printed)
		for view := range feed.Updates() {
			if err := printer.Print(view); err != nil {
				log.WithError(err).Warn("writing session output")
			}
			if done, err := streamEnded(view); done {
				select {
				case ended <- err:
				default:
				}
			}
		}
	}()
	defer func() {
		releaseSession(orchestrator, feed, log)
		<-printed
	}()

	if err := orchestrator.Start(ctx); err != nil {
		return err
	}
	if err := orchestrator.ConnectWallet(ctx); err != nil {
		return err
	}
	if err := orchestrator.Purchase(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}

	select {
	case <-ctx.Done():
		return nil
	case err := <-ended:
		return err
	}
}

func runLiveSession(ctx context.Context, orchestrator *application.AccessOrchestrator, feed *viewFeed, in io.Reader, out io.Writer, renderOpts sessionrender.RenderOptions, log *logrus.Entry) error {
	defer releaseSession(orchestrator, feed, log)

	purchase := func() error {
		if err := orchestrator.Start(ctx); err != nil {
			return err
		}
		if err := orchestrator.ConnectWallet(ctx); err != nil {
			return err
		}
		return orchestrator.Purchase(ctx)
	}

	onKey := func(key string) {
		var err error
		switch key {
		case "p":
			err = purchase()
		case "r":
			err = orchestrator.RetryVerification(ctx)
		case "o":
			err = orchestrator.OpenStream(ctx)
		case "d":
			err = orchestrator.Disconnect()
		}
		if err != nil {
			log.WithError(err).WithField("key", key).Debug("session action failed")
		}
	}

	go onKey("p")

	return sessionrender.RunLive(ctx, orchestrator.View(), feed.Updates(), in, out, sessionrender.LiveOptions{
		Render: renderOpts,
		OnKey:  onKey,
	})
}

// releaseSession shuts the session down before closing the feed so the
// final snapshot is still delivered.
func releaseSession(orchestrator *application.AccessOrchestrator, feed *viewFeed, log *logrus.Entry) {
	if err := orchestrator.Shutdown(); err != nil {
		log.WithError(err).Warn("session shutdown")
	}
	feed.close()
}

func streamEnded(view application.SessionView) (bool, error) {
	switch view.StreamStatus {
	case domain.StreamError:
		if view.LastError != nil {
			return true, errors.New(view.LastError.Message)
		}
		return true, domain.ErrTransportError
	case domain.StreamClosed:
		return true, nil
	default:
		return false, nil
	}
}
