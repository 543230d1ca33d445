package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"ponder/internal/config"
	"ponder/internal/logging"
	"ponder/internal/session"
	"ponder/internal/stream"
)

var (
	replayInterval  time.Duration
	replayChunkSize int
	replayFollow    bool
)

// replayCmd feeds saved transcripts through the extraction engine.
var replayCmd = &cobra.Command{
	Use:   "replay [file...]",
	Short: "Replay transcript files through the status engine",
	Long: `Feeds one or more transcript files through the extraction engine and
prints the status timeline each would have produced on screen.

A transcript is plain text treated as reasoning; everything after a bare
"---" line counts as the answer. The file is fed in fixed-size chunks
against a synthetic clock, so a replay is deterministic and instant no
matter how long the original stream took.

With --follow, a single file is tailed instead: appended text is fed
through the engine as it lands, against the real clock.

Examples:
  ponder replay testdata/weather.txt
  ponder replay --interval 500ms --chunk-size 40 run1.txt run2.txt
  ponder replay --follow /tmp/reasoning.log`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().DurationVar(&replayInterval, "interval", 300*time.Millisecond, "Synthetic clock advance per chunk")
	replayCmd.Flags().IntVar(&replayChunkSize, "chunk-size", 80, "Bytes fed to the engine per chunk")
	replayCmd.Flags().BoolVar(&replayFollow, "follow", false, "Tail a growing file (exactly one file)")
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := logging.Initialize("."); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logging.CloseAll()

	if replayFollow {
		if len(args) != 1 {
			return fmt.Errorf("--follow replays exactly one file, got %d", len(args))
		}
		return followFile(args[0], cfg)
	}

	// Replay files concurrently but print reports in argument order.
	reports := make([]string, len(args))
	var g errgroup.Group
	for i, path := range args {
		g.Go(func() error {
			report, err := replayFile(path, cfg)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, report := range reports {
		fmt.Print(report)
	}
	return nil
}

// replayFile runs one transcript through a fresh session on a synthetic
// clock and renders the resulting timeline.
func replayFile(path string, cfg *config.Config) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	logger.Debug("Replaying transcript",
		zap.String("file", path), zap.Int("bytes", len(data)))

	script, err := stream.ParseScript(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	var reasoning, answer strings.Builder
	for _, c := range script {
		if c.Kind == stream.KindReasoning {
			reasoning.WriteString(c.Text)
		} else {
			answer.WriteString(c.Text)
		}
	}

	sess := session.New("replay "+filepath.Base(path), cfg.Engine())

	var sb strings.Builder
	fmt.Fprintf(&sb, "=== %s (%d reasoning bytes, %d answer bytes) ===\n",
		path, reasoning.Len(), answer.Len())

	step := replayChunkSize
	if step <= 0 {
		step = 80
	}

	base := time.Now()
	clock := base
	updates := 0
	text := reasoning.String()
	for off := 0; off < len(text); off += step {
		end := off + step
		if end > len(text) {
			end = len(text)
		}
		res := sess.FeedAt(text[off:end], clock)
		if res.Updated {
			updates++
			fmt.Fprintf(&sb, "  %+7.1fs  %-12s %s\n",
				clock.Sub(base).Seconds(), sess.CurrentPhase(), res.Text)
		}
		clock = clock.Add(replayInterval)
	}
	sess.FeedAnswer(answer.String())
	sess.Finish()

	fmt.Fprintf(&sb, "  %d updates, %d phase changes, final phase %s\n",
		updates, len(sess.Timeline()), sess.CurrentPhase())
	return sb.String(), nil
}

// followFile tails a growing transcript and feeds appended text through the
// engine on the real clock, printing status transitions as they happen.
func followFile(path string, cfg *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		logger.Info("Received shutdown signal")
		cancel()
	}()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors and loggers often replace
	// the file, which drops a direct watch.
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	sess := session.New("follow "+filepath.Base(path), cfg.Engine())

	var offset int64
	offset, err = tailFrom(sess, abs, offset)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	fmt.Printf("Following %s (Ctrl+C to stop)\n", path)

	for {
		select {
		case <-ctx.Done():
			sess.Finish()
			fmt.Printf("Stopped: %d phase changes, final phase %s\n",
				len(sess.Timeline()), sess.CurrentPhase())
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			evAbs, _ := filepath.Abs(event.Name)
			if evAbs != abs || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			offset, err = tailFrom(sess, abs, offset)
			if err != nil {
				logger.Warn("Tail read failed", zap.Error(err))
			}

		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error", zap.Error(werr))
		}
	}
}

// tailFrom reads everything past offset, feeds it to the session, and prints
// any status transition. It returns the new offset.
func tailFrom(sess *session.Session, path string, offset int64) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return offset, err
	}
	defer f.Close()

	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return offset, err
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return offset, err
	}
	if len(data) == 0 {
		return offset, nil
	}

	if res := sess.Feed(string(data)); res.Updated {
		fmt.Printf("  %-12s %s\n", sess.CurrentPhase(), res.Text)
	}
	return offset + int64(len(data)), nil
}
