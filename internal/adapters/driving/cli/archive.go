package cli

import (
	"github.com/spf13/cobra"
)

var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Read interviews from the archive",
}

var interviewGetCmd = &cobra.Command{
	Use:   "get <interview-id>",
	Short: "Print one interview",
	Long: `Print the interview with the given logical id. The id is normalized for the
active collection, so "Fannie Lou Hamer" and "fannie_lou_hamer" both work
against interviewsV2.`,
	Args: cobra.ExactArgs(1),
	RunE: runInterviewGet,
}

var clipCmd = &cobra.Command{
	Use:   "clip",
	Short: "Read interview clips from the archive",
}

var clipGetCmd = &cobra.Command{
	Use:   "get <interview-id> <clip-id>",
	Short: "Print one clip",
	Args:  cobra.ExactArgs(2),
	RunE:  runClipGet,
}

var termCmd = &cobra.Command{
	Use:   "term",
	Short: "Read glossary terms from the archive",
}

var termGetCmd = &cobra.Command{
	Use:   "get <term-id>",
	Short: "Print one glossary term",
	Args:  cobra.ExactArgs(1),
	RunE:  runTermGet,
}

func init() {
	for _, c := range []*cobra.Command{interviewGetCmd, clipGetCmd, termGetCmd} {
		c.Flags().BoolVar(&jsonOutput, "json", false, "Print JSON instead of text")
	}

	interviewCmd.AddCommand(interviewGetCmd)
	clipCmd.AddCommand(clipGetCmd)
	termCmd.AddCommand(termGetCmd)

	rootCmd.AddCommand(interviewCmd)
	rootCmd.AddCommand(clipCmd)
	rootCmd.AddCommand(termCmd)
}

func runInterviewGet(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()

	rec, err := rt.archive.Interview(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if jsonOutput {
		return writeJSON(cmd.OutOrStdout(), rec)
	}
	newPrinter(cmd.OutOrStdout()).interview(rec)
	return nil
}

func runClipGet(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()

	rec, err := rt.archive.Clip(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}
	if jsonOutput {
		return writeJSON(cmd.OutOrStdout(), rec)
	}
	newPrinter(cmd.OutOrStdout()).clip(rec)
	return nil
}

func runTermGet(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()

	rec, err := rt.archive.Term(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if jsonOutput {
		return writeJSON(cmd.OutOrStdout(), rec)
	}
	newPrinter(cmd.OutOrStdout()).term(rec)
	return nil
}
