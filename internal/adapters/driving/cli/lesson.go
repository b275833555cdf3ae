package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/crhp-archive/internal/adapters/driven/config/file"
	"github.com/custodia-labs/crhp-archive/internal/adapters/driving/tui"
	"github.com/custodia-labs/crhp-archive/internal/core/domain"
	"github.com/custodia-labs/crhp-archive/internal/core/services"
	"github.com/custodia-labs/crhp-archive/internal/logger"
)

var lessonCmd = &cobra.Command{
	Use:   "lesson",
	Short: "Build and view the lesson plan",
	Long: `Build the lesson plan configured by lesson.path (or the built-in lesson)
from the active archive collection.`,
}

var lessonShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the lesson plan",
	Args:  cobra.NoArgs,
	RunE:  runLessonShow,
}

var lessonWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print the lesson plan and rebuild it when the collection changes",
	Long: `Print the lesson plan, then watch the config file. When archive.collection
changes the lesson is rebuilt from the new collection. Stop with ctrl+c.`,
	Args: cobra.NoArgs,
	RunE: runLessonWatch,
}

var lessonTUICmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse the lesson plan in an interactive terminal UI",
	Long: `Launch the interactive terminal UI for the lesson plan.

Controls:
  tab      - Switch between terms and clips
  ↑/k, ↓/j - Scroll
  r        - Reload
  ?        - Toggle help
  q        - Quit`,
	Args: cobra.NoArgs,
	RunE: runLessonTUI,
}

// jsonOutput is the --json flag shared by read commands.
var jsonOutput bool

func init() {
	lessonShowCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print JSON instead of text")

	lessonCmd.AddCommand(lessonShowCmd)
	lessonCmd.AddCommand(lessonWatchCmd)
	lessonCmd.AddCommand(lessonTUICmd)
	rootCmd.AddCommand(lessonCmd)
}

func runLessonShow(cmd *cobra.Command, _ []string) error {
	rt, err := newRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()

	svc, err := rt.lessonService()
	if err != nil {
		return err
	}
	defer svc.Close()

	return printLessonState(cmd, rt.content, svc.Run(cmd.Context()))
}

func printLessonState(cmd *cobra.Command, content domain.LessonContent, state domain.LoadState) error {
	out := newPrinter(cmd.OutOrStdout())
	if state.Err != nil {
		out.unavailable()
		return fmt.Errorf("lesson content unavailable: %w", state.Err)
	}
	if state.View == nil {
		// Superseded by a run that is still loading.
		out.line("Loading %s...", state.Collection)
		return nil
	}

	if jsonOutput {
		return writeJSON(cmd.OutOrStdout(), lessonJSON{
			Title:      content.Title,
			Collection: state.Collection.String(),
			Generation: state.Generation,
			Terms:      state.View.Terms,
			Clips:      state.View.Clips,
		})
	}

	out.lesson(content, state)
	return nil
}

func runLessonWatch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	rt, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	svc, err := rt.lessonService()
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := printLessonState(cmd, rt.content, svc.Run(ctx)); err != nil {
		// Keep watching; a later collection may be readable.
		logger.Error("%v", err)
	}

	return watchConfig(ctx, rt, func() {
		cmd.Println()
		if err := printLessonState(cmd, rt.content, svc.Run(ctx)); err != nil {
			logger.Error("%v", err)
		}
	})
}

// watchConfig calls onCollectionChange whenever the config file changes the
// active collection. It blocks until ctx is done.
func watchConfig(ctx context.Context, rt *runtime, onCollectionChange func()) error {
	path := rt.config.Path()
	if path == "" {
		<-ctx.Done()
		return nil
	}

	w, err := file.NewWatcher(path, file.DefaultDebounce)
	if err != nil {
		return err
	}
	defer w.Close()

	logger.Info("watching %s", path)
	err = w.Run(ctx, func() {
		changed, err := rt.reloadConfig()
		if err != nil {
			logger.Warn("config reload: %v", err)
			return
		}
		if changed {
			logger.Info("collection changed to %s", rt.resolver.Active())
			onCollectionChange()
		}
	}, func(err error) {
		logger.Warn("config watch: %v", err)
	})
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

func runLessonTUI(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	rt, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	fwd := &tui.Forwarder{}
	svc, err := rt.lessonService(services.WithOnChange(fwd.Publish))
	if err != nil {
		return err
	}
	defer svc.Close()

	app, err := tui.NewApp(&tui.Ports{Lesson: svc})
	if err != nil {
		return err
	}

	go func() {
		if err := watchConfig(ctx, rt, func() { svc.Trigger(ctx) }); err != nil {
			logger.Warn("config watch stopped: %v", err)
		}
	}()

	return app.WithContext(ctx).Run(fwd)
}
