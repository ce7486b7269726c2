package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/elizafairlady/go-wheel/draw"
	"github.com/elizafairlady/go-wheel/wheel"
	"github.com/elizafairlady/go-wheel/wheelapp"
)

func renderCmd() *cobra.Command {
	var (
		out      string
		rotation float64
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write the wheel as a PNG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := draw.NewRaster(cfg.Width, cfg.Height)
			m := wheelapp.Model{
				Entries: store.List(),
				Spin:    wheel.Spin{Rotation: rotation},
			}
			wheelapp.Draw(th, m, r)
			return writePNG(out, r)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "wheel.png", "output file")
	cmd.Flags().Float64Var(&rotation, "rotation", 0, "wheel rotation in radians")
	return cmd
}

func writePNG(path string, r *draw.Raster) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := r.EncodePNG(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
