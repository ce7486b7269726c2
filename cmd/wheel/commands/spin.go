package commands

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color/palette"
	stddraw "image/draw"
	"image/gif"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/elizafairlady/go-wheel/draw"
	"github.com/elizafairlady/go-wheel/wheelapp"
)

// Slowest frame rate a GIF viewer reliably honors.
const gifMinFrame = 40 * time.Millisecond

var errNoNames = errors.New("no names on the wheel; add some with 'wheel add'")

func spinCmd() *cobra.Command {
	var (
		pngOut string
		gifOut string
		seed   uint64
	)
	cmd := &cobra.Command{
		Use:   "spin",
		Short: "Spin once and print the winner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(store.List().Active()) == 0 {
				return errNoNames
			}
			if seed == 0 {
				seed = cfg.Seed
			}

			frame := cfg.FrameInterval
			raster := draw.NewRaster(cfg.Width, cfg.Height)
			var surface draw.Canvas
			var rec *gifRecorder
			switch {
			case gifOut != "":
				frame = max(frame, gifMinFrame)
				rec = &gifRecorder{Raster: raster, delay: int(frame / (10 * time.Millisecond))}
				surface = rec
			case pngOut != "":
				surface = raster
			}

			host := wheelapp.NewHost(store, wheelapp.Options{
				Theme:         th,
				Spin:          cfg.SpinOptions(),
				FrameInterval: frame,
				Width:         cfg.Width,
				Height:        cfg.Height,
				Seed:          seed,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			type result struct {
				m   wheelapp.Model
				err error
			}
			done := make(chan result, 1)
			go func() {
				m, err := host.Run(ctx, surface)
				done <- result{m, err}
			}()

			if err := host.Ctl(ctx, "spin"); err != nil {
				host.Close()
				<-done
				return err
			}
			host.Close()
			res := <-done
			if res.err != nil {
				if errors.Is(res.err, context.Canceled) {
					return errors.New("spin interrupted")
				}
				return res.err
			}
			log.Debug().Float64("rotation", res.m.Spin.Rotation).Int("frames", rec.frames()).Msg("spin settled")

			if rec != nil {
				if err := rec.write(gifOut); err != nil {
					return err
				}
			}
			if pngOut != "" {
				if err := writePNG(pngOut, raster); err != nil {
					return err
				}
			}
			if res.m.Winner == "" {
				return errNoNames
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.m.Winner)
			return nil
		},
	}
	cmd.Flags().StringVar(&pngOut, "png", "", "write the final wheel to this PNG")
	cmd.Flags().StringVar(&gifOut, "gif", "", "write the spin animation to this GIF")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for the spin (default from config, or the clock)")
	return cmd
}

// gifRecorder is a raster canvas that keeps a paletted copy of the
// image at every flush.
type gifRecorder struct {
	*draw.Raster
	delay int // hundredths of a second
	anim  gif.GIF
}

func (g *gifRecorder) Flush() error {
	if err := g.Raster.Flush(); err != nil {
		return err
	}
	src := g.Image()
	p := image.NewPaletted(src.Bounds(), palette.Plan9)
	stddraw.Draw(p, p.Rect, src, src.Bounds().Min, stddraw.Src)
	g.anim.Image = append(g.anim.Image, p)
	g.anim.Delay = append(g.anim.Delay, g.delay)
	return nil
}

func (g *gifRecorder) frames() int {
	if g == nil {
		return 0
	}
	return len(g.anim.Image)
}

func (g *gifRecorder) write(path string) (err error) {
	if len(g.anim.Image) == 0 {
		return nil
	}
	// hold the last frame
	g.anim.Delay[len(g.anim.Delay)-1] = 200
	g.anim.LoopCount = -1

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := gif.EncodeAll(f, &g.anim); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
