package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/df07/go-tiled-pathtracer/pkg/config"
	"github.com/df07/go-tiled-pathtracer/pkg/film"
	"github.com/df07/go-tiled-pathtracer/pkg/renderer"
)

// RenderFlags are the flags of the render and config commands. Each one
// overrides the matching config file value when set.
var RenderFlags = []cli.Flag{
	cli.StringFlag{Name: "config, c", Usage: "YAML render settings"},
	cli.StringFlag{Name: "scene, s", Usage: "built-in scene name"},
	cli.IntFlag{Name: "width", Usage: "film width"},
	cli.IntFlag{Name: "height", Usage: "film height"},
	cli.IntFlag{Name: "spp", Usage: "samples per pixel (0 uses the scene's recommendation)"},
	cli.Uint64Flag{Name: "seed", Usage: "base seed of the sampler"},
	cli.StringFlag{Name: "sampler", Usage: "independent or stratified"},
	cli.StringFlag{Name: "filter", Usage: "box, tent, gaussian, mitchell, catmullrom or lanczos"},
	cli.StringFlag{Name: "integrator, i", Usage: "path or direct"},
	cli.IntFlag{Name: "max-depth", Usage: "longest path, -1 for unlimited"},
	cli.IntFlag{Name: "rr-depth", Usage: "depth from which Russian roulette may end paths"},
	cli.BoolFlag{Name: "hide-emitters", Usage: "do not show emitters seen directly by the camera"},
	cli.StringFlag{Name: "mode, m", Usage: "tiled or wavefront"},
	cli.IntFlag{Name: "block-size", Usage: "tile edge length, a power of two"},
	cli.IntFlag{Name: "samples-per-pass", Usage: "split the samples into passes of this size"},
	cli.IntFlag{Name: "workers, w", Usage: "worker goroutines (0 uses one per CPU)"},
	cli.DurationFlag{Name: "timeout", Usage: "stop rendering after this long"},
	cli.StringFlag{Name: "out, o", Usage: "image filename (.png, .tiff or .bmp)"},
	cli.Float64Flag{Name: "exposure", Usage: "exposure applied before tone mapping"},
}

// loadConfig reads the config file, if any, and applies flag overrides
func loadConfig(ctx *cli.Context) (config.Config, error) {
	cfg := config.Default()
	if path := ctx.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}

	if ctx.IsSet("scene") {
		cfg.Scene = ctx.String("scene")
	}
	if ctx.IsSet("width") {
		cfg.Width = ctx.Int("width")
	}
	if ctx.IsSet("height") {
		cfg.Height = ctx.Int("height")
	}
	if ctx.IsSet("spp") {
		cfg.Samples = ctx.Int("spp")
	}
	if ctx.IsSet("seed") {
		cfg.Seed = ctx.Uint64("seed")
	}
	if ctx.IsSet("sampler") {
		cfg.Sampler = ctx.String("sampler")
	}
	if ctx.IsSet("filter") {
		cfg.Filter.Name = ctx.String("filter")
	}
	if ctx.IsSet("integrator") {
		cfg.Integrator.Name = ctx.String("integrator")
	}
	if ctx.IsSet("max-depth") {
		cfg.Integrator.MaxDepth = ctx.Int("max-depth")
	}
	if ctx.IsSet("rr-depth") {
		cfg.Integrator.RRDepth = ctx.Int("rr-depth")
	}
	if ctx.IsSet("hide-emitters") {
		cfg.Integrator.HideEmitters = ctx.Bool("hide-emitters")
	}
	if ctx.IsSet("mode") {
		cfg.Render.Mode = renderer.Mode(ctx.String("mode"))
	}
	if ctx.IsSet("block-size") {
		cfg.Render.BlockSize = ctx.Int("block-size")
	}
	if ctx.IsSet("samples-per-pass") {
		cfg.Render.SamplesPerPass = ctx.Int("samples-per-pass")
	}
	if ctx.IsSet("workers") {
		cfg.Render.Workers = ctx.Int("workers")
	}
	if ctx.IsSet("timeout") {
		cfg.Render.Timeout = ctx.Duration("timeout")
	}
	if ctx.IsSet("out") {
		cfg.Output.Path = ctx.String("out")
	}
	if ctx.IsSet("exposure") {
		cfg.Output.Exposure = ctx.Float64("exposure")
	}
	return cfg, cfg.Validate()
}

// Render renders a scene and writes the developed image.
func Render(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	setupLogging(ctx, cfg.LogLevel)
	if err != nil {
		return err
	}

	s, cfg, err := cfg.Build()
	if err != nil {
		return err
	}

	r, err := renderer.New(cfg.Renderer(), renderer.WithProgress(renderer.NewLogReporter(logger, 10)))
	if err != nil {
		return err
	}

	// Interrupting keeps the partial image
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Noticef("Rendering scene %q at %dx%d", cfg.Scene, cfg.Width, cfg.Height)
	if _, err := r.Render(runCtx, s, s.Sensor, cfg.Seed); err != nil {
		return err
	}

	hdr, ok := s.Sensor.Film().(*film.HDRFilm)
	if !ok {
		return errors.Errorf("unexpected film type %T", s.Sensor.Film())
	}
	img, err := hdr.Develop()
	if err != nil {
		return err
	}
	if err := film.Write(cfg.Output.Path, img, cfg.Output.Exposure, cfg.Output.Gamma); err != nil {
		return err
	}

	displayStats(r.Stats())
	logger.Noticef("Wrote %s", cfg.Output.Path)
	return nil
}

func displayStats(stats renderer.Stats) {
	logger.Noticef("render statistics\n%s", statsTable(stats))
}

func statsTable(stats renderer.Stats) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Mode", "Workers", "Passes", "Work units", "Samples", "Samples/s", "Rejected"})
	table.Append([]string{
		string(stats.Mode),
		fmt.Sprintf("%d", stats.Workers),
		fmt.Sprintf("%d x %d spp", stats.Passes, stats.SamplesPerPass),
		fmt.Sprintf("%d/%d", stats.Blocks, stats.TotalBlocks),
		fmt.Sprintf("%d", stats.Samples),
		fmt.Sprintf("%.0f", stats.SamplesPerSecond()),
		fmt.Sprintf("%02.2f %%", 100*stats.RejectedFraction()),
	})

	status := "COMPLETED"
	if !stats.Completed {
		status = "STOPPED: " + stats.StopReason
	}
	table.SetFooter([]string{"", "", "", "", "", status, stats.Elapsed.String()})
	table.Render()
	return buf.String()
}

// PrintConfig writes the effective settings as YAML.
func PrintConfig(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = ctx.App.Writer.Write(data)
	return err
}
