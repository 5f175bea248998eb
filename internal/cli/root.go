package cli

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ironsheep/draw-click/internal/annotate"
	"github.com/ironsheep/draw-click/internal/config"
	"github.com/ironsheep/draw-click/internal/imaging"
)

// Usage is printed when the positional arguments are wrong.
const Usage = "Usage: draw-click <image_path> <x> <y> <label> [output_path]"

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var errUsage = errors.New("wrong number of arguments")

// readError is printed as is, without the "Error:" prefix.
type readError struct {
	path string
	err  error
}

func (e *readError) Error() string { return "cannot read image: " + e.path }

func (e *readError) Unwrap() error { return e.err }

type options struct {
	configPath string
	quality    int
	lossless   bool
}

// NewRootCmd builds the command tree. stdout receives results and stderr
// receives diagnostics and debug logs.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "draw-click <image_path> <x> <y> <label> [output_path]",
		Short: "Mark where a click happened on a screenshot",
		Long: `draw-click dims an image except for a spotlight around (x, y) and draws a
crosshair, two rings, a "Click: <label>" callout and the coordinates there.

Without output_path, "name.png" is written to "name-click.png"; other
extensions get "-click" inserted before the extension.

Put "--" before the positional arguments when x or y is negative, when the
label starts with "-", or when the image file is named "serve" or
"version", which would otherwise select those subcommands:

  draw-click -- shot.png -20 40 "Back"
  draw-click -- serve 10 10 "-v flag"`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 4 || len(args) > 5 {
				return errUsage
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       fmt.Sprintf("%s (built %s, commit %s)", Version, BuildTime, GitCommit),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnnotate(cmd, opts, args)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "YAML style/output config (default $"+config.EnvConfigPath+")")
	flags.IntVarP(&opts.quality, "quality", "q", 0, "JPEG/WebP quality 1-100 (overrides config)")
	flags.BoolVar(&opts.lossless, "lossless", false, "encode WebP output losslessly")

	cmd.AddCommand(newServeCmd(opts), newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "draw-click %s\n", Version)
			fmt.Fprintf(out, "  Build time: %s\n", BuildTime)
			fmt.Fprintf(out, "  Git commit: %s\n", GitCommit)
		},
	}
}

// Execute runs the CLI with args and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd(stdout, stderr)
	if args == nil {
		// cobra falls back to os.Args on nil
		args = []string{}
	}
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(stderr, Usage)
			return 1
		}
		var re *readError
		if errors.As(err, &re) {
			fmt.Fprintln(stderr, re.Error())
			return 1
		}
		color.New(color.FgRed).Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// loadConfig resolves the configuration and applies command-line overrides.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("quality") {
		cfg.Output.JPEGQuality = opts.quality
		cfg.Output.WebPQuality = opts.quality
	}
	if opts.lossless {
		cfg.Output.WebPLossless = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger follows the stderr logging setup of the server binary: dated,
// with file and line, and silent unless debug is enabled.
func newLogger(cfg *config.Config, w io.Writer) *log.Logger {
	if !cfg.Debug() {
		w = io.Discard
	}
	return log.New(w, "", log.Ldate|log.Ltime|log.Lshortfile)
}

func runAnnotate(cmd *cobra.Command, opts *options, args []string) error {
	x, err := parseCoord("x", args[1])
	if err != nil {
		return err
	}
	y, err := parseCoord("y", args[2])
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	logger := newLogger(cfg, cmd.ErrOrStderr())
	logger.Printf("draw-click %s (built %s, commit %s)", Version, BuildTime, GitCommit)

	req := annotate.Request{
		ImagePath: args[0],
		X:         x,
		Y:         y,
		Label:     args[3],
	}
	if len(args) > 4 {
		req.OutputPath = args[4]
	}

	a := annotate.New(imaging.NewImageCache(), cfg.Style, cfg.SaveOptions(), annotate.WithLogger(logger))
	res, err := a.Annotate(req)
	if err != nil {
		if errors.Is(err, annotate.ErrUnreadableImage) {
			logger.Printf("%v", err)
			return &readError{path: req.ImagePath, err: err}
		}
		return err
	}

	color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Saved: %s\n", res.OutputPath)
	return nil
}

func parseCoord(name, s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be a base-10 integer", name, s)
	}
	return v, nil
}
