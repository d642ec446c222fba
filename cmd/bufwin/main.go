package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"regexp"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/bft-labs/bufwin"
	"github.com/bft-labs/bufwin/internal/cliconfig"
	"github.com/bft-labs/bufwin/pkg/log"
	"github.com/bft-labs/bufwin/samplers"
	"github.com/bft-labs/bufwin/sequence"
)

const helpDescription = `
Group lines from stdin or a file into windows and print one JSON array per window.

Window boundaries are decided by a sampling strategy:
  --count N            every N lines (default, N=10)
  --count N --stride S sliding windows of N lines advancing by S
  --every DUR          fixed interval, independent of line arrival
  --match REGEX        a matching line closes its window
  --watch PATH         a write to PATH closes the current window

Configure via flags, a TOML config file, or BUFWIN_* environment variables;
explicit flags win over the environment, which wins over the file.
`

var exampleUsage = strings.TrimSpace(`
  tail -f access.log | bufwin --count 100
  bufwin --input events.ndjson --every 2s --no-tail
  kubectl get events -w | bufwin --match 'Error' | jq length
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	logger := cliconfig.Logger()

	root := &cobra.Command{
		Use:     "bufwin",
		Short:   "Batch lines into windows using a pluggable sampling strategy",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load config file first (default ~/.bufwin/config.toml),
			// then env, then flag overrides.
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			cliconfig.ApplyEnvConfig(&cfg, changed)

			if err := cfg.Validate(); err != nil {
				return err
			}

			if cfg.Verbose {
				logger = logger.Level(zerolog.DebugLevel)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return run(ctx, cfg, logger)
		},
	}

	flags := root.Flags()
	flags.StringVar(&cfgPath, "config", "", "path to TOML config file")
	flags.StringVarP(&cfg.Input, "input", "i", cfg.Input, "input file (default stdin)")
	flags.IntVarP(&cfg.Count, "count", "n", cfg.Count, "lines per window")
	flags.IntVar(&cfg.Stride, "stride", cfg.Stride, "slide count windows by this many lines")
	flags.DurationVar(&cfg.Every, "every", cfg.Every, "flush on a fixed interval")
	flags.StringVar(&cfg.Match, "match", cfg.Match, "flush when a line matches this regexp")
	flags.StringVar(&cfg.Watch, "watch", cfg.Watch, "flush when this file is written")
	flags.BoolVar(&cfg.NoTail, "no-tail", cfg.NoTail, "drop a trailing partial window")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "enable debug logging")

	if err := root.Execute(); err != nil {
		logger.Error().Err(err).Msg("bufwin failed")
		os.Exit(1)
	}
}

// newSampler builds the sampling strategy selected by the configuration.
func newSampler(cfg cliconfig.Config) (bufwin.Sampler[string], error) {
	switch {
	case cfg.Every > 0:
		return samplers.Every[string](cfg.Every), nil
	case cfg.Match != "":
		re, err := regexp.Compile(cfg.Match)
		if err != nil {
			return nil, err
		}
		return samplers.When[string](re.MatchString), nil
	case cfg.Watch != "":
		return samplers.FileChange[string](cfg.Watch), nil
	case cfg.Stride > 0:
		return samplers.Sliding[string](cfg.Count, cfg.Stride), nil
	default:
		return samplers.Count[string](cfg.Count), nil
	}
}

func run(ctx context.Context, cfg cliconfig.Config, logger zerolog.Logger) error {
	smp, err := newSampler(cfg)
	if err != nil {
		return err
	}

	tr, err := bufwin.New(smp,
		bufwin.WithExhaustOnDone(!cfg.NoTail),
		bufwin.WithLogger(log.NewZerologAdapterWithLogger(logger)),
	)
	if err != nil {
		return err
	}

	var in io.ReadCloser = os.Stdin
	if cfg.Input != "" {
		in, err = os.Open(cfg.Input)
		if err != nil {
			return err
		}
		defer in.Close()
	}

	lines := make(chan string)
	out := tr.Bind(sequence.FromChannel(lines))

	start := time.Now()
	windows := 0
	enc := json.NewEncoder(os.Stdout)
	done := make(chan error, 1)

	sub := out.Listen(sequence.Handlers[[]string]{
		OnItem: func(window []string) {
			windows++
			if err := enc.Encode(window); err != nil {
				logger.Error().Err(err).Msg("write window")
			}
		},
		OnError: func(err error) {
			done <- err
		},
		OnDone: func() {
			done <- nil
		},
		CancelOnError: true,
	})

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return scanner.Err()
	})
	g.Go(func() error {
		select {
		case err := <-done:
			return err
		case <-ctx.Done():
			sub.Cancel()
			return ctx.Err()
		}
	})

	err = g.Wait()
	logger.Debug().Int("windows", windows).Dur("elapsed", time.Since(start)).Msg("finished")
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
