package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/crhp-archive/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can read the
archive and the lesson plan.

Tools: lesson_plan, get_interview, get_clip, get_term.
Resources: crhp://lesson, crhp://interviews/{interviewId}.

The server speaks JSON-RPC over stdio unless --port is given.

Examples:
  crhp mcp serve
  crhp mcp serve --port 8090`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

var mcpPort int

func init() {
	mcpServeCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	rt, err := newRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()

	lesson, err := rt.lessonService()
	if err != nil {
		return err
	}
	defer lesson.Close()

	server, err := mcp.NewServer(&mcp.Ports{Archive: rt.archive, Lesson: lesson})
	if err != nil {
		return err
	}

	if mcpPort > 0 {
		addr := fmt.Sprintf(":%d", mcpPort)
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}
	return server.Run(cmd.Context())
}
