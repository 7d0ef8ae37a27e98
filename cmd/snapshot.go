package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/idepositbox/console/internal/client"
	"github.com/idepositbox/console/internal/htmldoc"
	"github.com/idepositbox/console/internal/pages"
	"github.com/idepositbox/console/internal/progress"
	"github.com/idepositbox/console/internal/shell"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Render the console headlessly and print the resulting page",
	Long: `Loads the shell page from a running console, runs the shell against it
without a browser and prints the rendered HTML. With --all every menu entry is
clicked in turn and each result is written to {out}/{path}.html.`,
	RunE: runSnapshot,
}

func init() {
	snapshotCmd.Flags().String("url", "http://127.0.0.1:8880", "base URL of the console server")
	snapshotCmd.Flags().String("location", "/", "browser location used to pick the initial entry")
	snapshotCmd.Flags().Bool("all", false, "capture every menu entry")
	snapshotCmd.Flags().String("out", "snapshots", "output directory for --all")
	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	baseURL, _ := cmd.Flags().GetString("url")
	location, _ := cmd.Flags().GetString("location")
	all, _ := cmd.Flags().GetBool("all")
	outDir, _ := cmd.Flags().GetString("out")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	c := client.New(baseURL, client.WithLogger(logger))
	doc := shellDocument(ctx, c)
	s := shell.New(c, doc.Nav(), doc.Content(), logger)

	if err := s.LoadMenu(ctx, location); err != nil {
		if len(doc.Entries()) == 0 {
			return err
		}
		// The menu rendered; only the first page failed and shows the error fragment.
		logger.Warn("initial page failed", zap.Error(err))
	}

	if !all {
		return doc.Render(cmd.OutOrStdout())
	}
	return captureAll(doc, s, outDir)
}

// shellDocument parses the server's shell page, falling back to a bare
// document when it cannot be fetched or lacks the expected containers.
func shellDocument(ctx context.Context, c *client.Client) *htmldoc.Document {
	page, err := c.Index(ctx)
	if err != nil {
		logger.Warn("using built-in shell page", zap.Error(err))
		return htmldoc.New()
	}
	doc, err := htmldoc.Parse(strings.NewReader(page))
	if err != nil {
		logger.Warn("using built-in shell page", zap.Error(err))
		return htmldoc.New()
	}
	return doc
}

// captureAll clicks every entry and writes one snapshot per page. Entries
// whose path would leave outDir are skipped and reported in the error.
func captureAll(doc *htmldoc.Document, s *shell.Shell, outDir string) error {
	entries := doc.Entries()
	reporter := progress.NewReporter("Capturing pages")
	reporter.Start(len(entries))

	var errs []error
	for i, e := range entries {
		if err := pages.ValidPath(e.Path); err != nil {
			logger.Warn("skipping menu entry", zap.String("path", e.Path), zap.Error(err))
			errs = append(errs, fmt.Errorf("snapshot %s: %w", e.Path, err))
			reporter.Update(i+1, e.Path)
			continue
		}

		doc.Click(e.Path)
		s.Wait()

		if err := writeSnapshot(doc, filepath.Join(outDir, filepath.FromSlash(e.Path)+".html")); err != nil {
			errs = append(errs, err)
		}
		reporter.Update(i+1, e.Path)
	}
	reporter.Finish()

	fmt.Fprintf(os.Stderr, "Captured %d pages into %s\n", len(entries)-len(errs), outDir)
	return errors.Join(errs...)
}

func writeSnapshot(doc *htmldoc.Document, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := doc.Render(f); err != nil {
		f.Close()
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	return f.Close()
}
