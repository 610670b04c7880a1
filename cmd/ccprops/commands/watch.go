package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/ccprops/internal/errors"
	"github.com/thoreinstein/ccprops/internal/store"
)

func init() {
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-check the configuration whenever its files change",
	Long: `Watch c_cpp_properties.json and the compile commands files it names.
Every change is reloaded, migrated, validated and reported until interrupted.`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	s, err := newStore(cmd, store.WithWatch(true), store.WithCompilerPending())
	if err != nil {
		return err
	}
	defer s.Close()

	// The watcher goroutine and the probe both emit.
	var mu sync.Mutex
	w := cmd.OutOrStdout()
	unsubscribe := s.Subscribe(func(ev store.Event) {
		mu.Lock()
		defer mu.Unlock()
		reportEvent(w, s, ev)
	})
	defer unsubscribe()

	if err := s.Open(); err != nil {
		return errors.NewConfigError(err)
	}

	go probeInBackground(ctx, s)

	if !quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s (Ctrl-C to stop)\n", s.Path())
	}
	<-ctx.Done()
	return nil
}

func probeInBackground(ctx context.Context, s *store.Store) {
	d := compilerDefaults(ctx)
	if ctx.Err() != nil {
		return
	}
	s.SetCompilerDefaults(d)
}

func reportEvent(w io.Writer, s *store.Store, ev store.Event) {
	label := color.CyanString(ev.Kind.String())
	switch ev.Kind {
	case store.ConfigurationsChanged:
		fmt.Fprintf(w, "%s %d configuration(s), current %q\n", label, len(ev.Configurations), ev.Name)
		if res := s.CurrentErrors(); res != nil {
			for _, issue := range res.Issues {
				fmt.Fprintf(w, "  %s %s\n", color.YellowString(issue.Field), issue.Message)
			}
		}
		writeDiagnostics(w, s)
	case store.SelectionChanged:
		fmt.Fprintf(w, "%s %q (index %d)\n", label, ev.Name, ev.Index)
	case store.CompileCommandsChanged:
		fmt.Fprintf(w, "%s %q: %s\n", label, ev.Name, ev.CompileCommands)
	}
}
