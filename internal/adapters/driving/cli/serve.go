package cli

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/crhp-archive/internal/adapters/driving/api"
	"github.com/custodia-labs/crhp-archive/internal/core/ports/driven"
	"github.com/custodia-labs/crhp-archive/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the archive and lesson plan over HTTP",
	Long: `Start a read-only JSON API.

Routes:
  GET /health
  GET /api/collection
  GET /api/lesson[?refresh=true]
  GET /api/interviews/:id
  GET /api/interviews/:id/clips/:clipId
  GET /api/terms/:id`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var (
	serveAddr        string
	serveCORSOrigins []string
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "127.0.0.1:8080", "Listen address")
	serveCmd.Flags().StringSliceVar(&serveCORSOrigins, "cors-origin", nil, "Allowed CORS origin (repeatable; default any)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	rt, err := newRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	lesson, err := rt.lessonService()
	if err != nil {
		return err
	}
	defer lesson.Close()

	go func() {
		if err := watchConfig(ctx, rt, func() { lesson.Trigger(ctx) }); err != nil {
			logger.Warn("config watch stopped: %v", err)
		}
	}()

	gin.SetMode(ginMode(rt.config, logger.IsVerbose()))
	handler := api.NewHandler(api.Ports{Archive: rt.archive, Lesson: lesson}, serveCORSOrigins)
	cmd.Printf("Listening on http://%s\n", serveAddr)
	return api.Serve(ctx, serveAddr, handler)
}

// ginMode picks gin's debug mode for --verbose or serve.debug = true.
func ginMode(cfg driven.ConfigStore, verbose bool) string {
	if verbose || cfg.GetBool(keyServeDebug) {
		return gin.DebugMode
	}
	return gin.ReleaseMode
}
