package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/sourcegraph/conc"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gogpu/ggshot"
	"github.com/gogpu/ggshot/capture"
	"github.com/gogpu/ggshot/engine"
	"github.com/gogpu/ggshot/internal/config"
	"github.com/gogpu/ggshot/internal/screencam"
	"github.com/gogpu/ggshot/internal/testcard"
)

var shootCmd = &cobra.Command{
	Use:   "shoot",
	Short: "Render frames and capture one into a file",
	Long: `Shoot starts the render loop, lets it warm up for a few frames and then
captures the next frame of the main camera into the output file. The
format follows the file extension: .png, .bmp, .tif or .tiff.

The source is either a generated test card or an OS display.`,
	Args: cobra.NoArgs,
	RunE: runShoot,
}

func init() {
	f := shootCmd.Flags()
	f.StringP("output", "o", "", "output file (default shot.png)")
	f.Int("width", 0, "display width in pixels")
	f.Int("height", 0, "display height in pixels")
	f.Int("fps", 0, "frames per second of the render loop")
	f.String("source", "", `camera source: "testcard" or "desktop"`)
	f.Int("desktop-display", 0, "OS display index for the desktop source")
	f.Int("frames-before", 0, "frames rendered before the capture")
	f.Duration("timeout", 0, "maximum wait for the captured frame")
	f.String("backend", "", `surface backend, "pixmap" unless a host registers more (default: best available)`)

	for key, flag := range map[string]string{
		"output.path":             "output",
		"display.width":           "width",
		"display.height":          "height",
		"display.fps":             "fps",
		"capture.source":          "source",
		"capture.desktop_display": "desktop-display",
		"capture.warmup_frames":   "frames-before",
		"capture.timeout":         "timeout",
		"capture.backend":         "backend",
	} {
		_ = viper.BindPFlag(key, f.Lookup(flag))
	}

	rootCmd.AddCommand(shootCmd)
}

func runShoot(cmd *cobra.Command, _ []string) error {
	if configErr != nil {
		return configErr
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	path, err := shoot(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
	return err
}

// shoot runs the engine until the capture configured by cfg is on disk and
// returns the written path.
func shoot(ctx context.Context, cfg *config.Config) (string, error) {
	log := ggshot.Logger()

	eng := engine.New(cfg.Display.Width, cfg.Display.Height)
	cam := engine.NewCamera("main", drawFunc(cfg))
	eng.AddCamera(cam)

	session := capture.NewSession(eng.Display(),
		capture.WithTargets(cam),
		capture.WithBackend(cfg.Capture.Backend),
		capture.WithFrameBarrier(eng.Exec),
	)
	defer session.Close()
	eng.OnPostRender(session.OnRenderImage)

	for range cfg.Capture.WarmupFrames {
		eng.RenderFrame()
	}

	shot, err := session.CaptureToFile(cfg.Output.Path)
	if err != nil {
		return "", fmt.Errorf("shoot: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Capture.Timeout)
	defer cancel()

	var wg conc.WaitGroup
	wg.Go(func() {
		if err := eng.Run(ctx, cfg.FrameInterval()); err != nil {
			log.Error("shoot: render loop failed", "err", err)
		}
	})

	path, err := shot.Wait(ctx)
	cancel()
	wg.Wait()

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "", fmt.Errorf("shoot: no frame captured within %v", cfg.Capture.Timeout)
	case err != nil:
		return "", fmt.Errorf("shoot: %w", err)
	}
	log.Debug("shoot: done", "frames", eng.Frame(), "path", path)
	return path, nil
}

func drawFunc(cfg *config.Config) engine.DrawFunc {
	if cfg.Capture.Source == config.SourceDesktop {
		return screencam.Desktop{Display: cfg.Capture.DesktopDisplay}.Draw
	}
	return testcard.Card{Label: "ggshot"}.Draw
}
