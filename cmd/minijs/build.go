package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/orizon-lang/minijs/internal/compiler"
	"github.com/orizon-lang/minijs/internal/config"
	"github.com/orizon-lang/minijs/internal/diagnostic"
	"github.com/orizon-lang/minijs/internal/transform"
	"github.com/orizon-lang/minijs/internal/watch"
)

func newBuildCommand(a *app) *cobra.Command {
	var (
		watchMode bool
		jobs      int
	)

	cmd := &cobra.Command{
		Use:   "build <file>...",
		Short: "Compile files to <name>.min.js",
		Long: `Compile each file and write <name>.min.js next to it, or into --out-dir.
With --source-map a <name>.min.js.map file is written as well.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, files []string) error {
			plugins, err := a.cfg.Plugins()
			if err != nil {
				return err
			}
			b := &builder{app: a, plugins: plugins}

			buildErr := b.buildAll(cmd.Context(), files, jobs)
			if !watchMode {
				return buildErr
			}
			return b.watch(cmd.Context(), files)
		},
	}

	f := cmd.Flags()
	f.Bool(config.KeyMinify, true, "run the minifier and drop whitespace")
	f.Bool(config.KeySourceMap, false, "write a source map next to each output")
	f.StringSlice(config.KeyPasses, nil, "extra passes run after the minifier (fold, dce, rename)")
	f.String(config.KeyOutDir, "", "output directory (default: next to the input)")
	f.BoolVarP(&watchMode, "watch", "w", false, "rebuild when an input changes")
	f.IntVarP(&jobs, "jobs", "j", runtime.GOMAXPROCS(0), "number of files compiled in parallel")

	return cmd
}

type builder struct {
	*app
	plugins []transform.Pass
}

// report describes one written output.
type report struct {
	input   string
	output  string
	inSize  int
	outSize int
}

func (r report) String() string {
	saved := ""
	if r.inSize > 0 {
		saved = fmt.Sprintf(" (%+.0f%%)", float64(r.outSize-r.inSize)*100/float64(r.inSize))
	}
	return fmt.Sprintf("%s -> %s  %s -> %s%s",
		r.input, r.output,
		humanize.Bytes(uint64(r.inSize)), humanize.Bytes(uint64(r.outSize)), saved)
}

// buildAll compiles files concurrently. Every file is attempted; failures
// are rendered to stderr and combined into the returned error.
func (b *builder) buildAll(ctx context.Context, files []string, jobs int) error {
	g, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}

	reports := make([]report, len(files))
	errs := make([]error, len(files))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			src, err := os.ReadFile(path)
			if err != nil {
				errs[i] = err
				return nil
			}
			reports[i], errs[i] = b.buildFile(path, src)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var failed error
	for i, err := range errs {
		if err != nil {
			b.printError(files[i], err)
			failed = multierr.Append(failed, fmt.Errorf("%s: build failed", files[i]))
			continue
		}
		fmt.Fprintln(b.stdout, reports[i])
	}
	return failed
}

// buildFile compiles one source and writes its outputs.
func (b *builder) buildFile(path string, src []byte) (report, error) {
	out := outputPath(path, b.cfg.OutDir)

	res, err := compiler.Compile(string(src), compiler.Config{
		Filename:  filepath.Base(path),
		Minify:    b.cfg.Minify,
		SourceMap: b.cfg.SourceMap,
		Plugins:   b.plugins,
		Logger:    b.log,
	})
	if err != nil {
		return report{}, err
	}

	code := res.Code
	if res.Map != "" {
		mapPath := out + ".map"
		if err := writeOutput(mapPath, res.Map); err != nil {
			return report{}, err
		}
		code += "\n//# sourceMappingURL=" + filepath.Base(mapPath) + "\n"
	}
	if err := writeOutput(out, code); err != nil {
		return report{}, err
	}

	b.log.Debug("Wrote output", zap.String("file", out), zap.Int("bytes", len(code)))
	return report{input: path, output: out, inSize: len(src), outSize: len(code)}, nil
}

// printError renders compile errors against their source; other errors
// are printed as they are.
func (b *builder) printError(path string, err error) {
	var cerr *compiler.Error
	if errors.As(err, &cerr) {
		if src, readErr := os.ReadFile(path); readErr == nil {
			fmt.Fprint(b.stderr, diagnostic.Render(path, string(src), err))
			return
		}
	}
	fmt.Fprintf(b.stderr, "%s: %v\n", path, err)
}

func (b *builder) watch(ctx context.Context, files []string) error {
	w, err := watch.NewFSWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer w.Close()

	loop := &watch.Loop{
		Watcher: w,
		Logger:  b.log,
		Build: func(_ context.Context, path string, content []byte) error {
			r, err := b.buildFile(path, content)
			if err != nil {
				b.printError(path, err)
				return err
			}
			fmt.Fprintln(b.stdout, r)
			return nil
		},
	}

	fmt.Fprintln(b.stderr, "watching for changes, press Ctrl+C to stop")
	return loop.Run(ctx, files)
}

// outputPath returns <dir>/<name>.min.js for input <name>.<ext>.
func outputPath(input, outDir string) string {
	dir, base := filepath.Split(input)
	if outDir != "" {
		dir = outDir
	}
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, name+".min.js")
}

func writeOutput(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
