package commands

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/elizafairlady/go-wheel/draw"
	"github.com/elizafairlady/go-wheel/entry"
	"github.com/elizafairlady/go-wheel/wheelapp"
	"github.com/elizafairlady/go-wheel/wheelfs"
)

func serveCmd() *cobra.Command {
	var (
		addr    string
		display bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the wheel and serve it over 9P",
		Long: `Run the wheel and serve it as a 9P file tree.

Mount it with e.g. 9pfuse, or drive it with plan9port:

  echo 'add label=Alice' | 9p -a tcp!127.0.0.1!5640 write ctl
  echo spin | 9p -a tcp!127.0.0.1!5640 write ctl
  9p -a tcp!127.0.0.1!5640 read winner`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if addr == "" {
				addr = cfg.Listen
			}

			var surface draw.Canvas
			if display {
				dev, derr := draw.OpenDevice()
				if derr != nil {
					return derr
				}
				defer func() { err = multierr.Append(err, dev.Close()) }()
				surface = dev
			}

			store.Subscribe(func(l entry.List) {
				log.Debug().Int("names", len(l)).Int("active", len(l.Active())).Msg("names saved")
			})

			host := wheelapp.NewHost(store, wheelapp.Options{
				Theme:         th,
				Spin:          cfg.SpinOptions(),
				FrameInterval: cfg.FrameInterval,
				Width:         cfg.Width,
				Height:        cfg.Height,
				Seed:          cfg.Seed,
				OnWinner: func(label string) {
					log.Info().Str("winner", label).Msg("we have a winner")
				},
			})
			srv := wheelfs.New(host)

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", addr, err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				_, err := host.Run(gctx, surface)
				return err
			})
			g.Go(func() error {
				err := srv.Serve(ln)
				if errors.Is(err, wheelfs.ErrServerClosed) {
					return nil
				}
				return err
			})
			g.Go(func() error {
				<-gctx.Done()
				log.Info().Msg("shutting down")
				host.Close()
				return srv.Close()
			})

			err = g.Wait()
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&display, "display", false, "also draw the wheel on /dev/draw")
	return cmd
}
