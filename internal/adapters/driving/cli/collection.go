package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/crhp-archive/internal/collections"
	"github.com/custodia-labs/crhp-archive/internal/core/domain"
	"github.com/custodia-labs/crhp-archive/internal/core/services"
)

var collectionCmd = &cobra.Command{
	Use:   "collection",
	Short: "Inspect archive collection versions",
	Long: `The active collection is read from $CRHP_COLLECTION, falling back to
archive.collection in config.toml.`,
}

var collectionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active collection",
	Args:  cobra.NoArgs,
	RunE:  runCollectionShow,
}

var collectionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List known collection versions",
	Args:  cobra.NoArgs,
	Run:   runCollectionList,
}

var collectionNormalizeCmd = &cobra.Command{
	Use:   "normalize <id>",
	Short: "Show the store key an interview id maps to",
	Args:  cobra.ExactArgs(1),
	RunE:  runCollectionNormalize,
}

var collectionUseCmd = &cobra.Command{
	Use:   "use <collection>",
	Short: "Set archive.collection in config.toml",
	Args:  cobra.ExactArgs(1),
	RunE:  runCollectionUse,
}

var normalizeFor string

func init() {
	collectionNormalizeCmd.Flags().StringVar(&normalizeFor, "collection", "", "Collection to normalize for (default: active)")

	collectionCmd.AddCommand(collectionShowCmd)
	collectionCmd.AddCommand(collectionListCmd)
	collectionCmd.AddCommand(collectionNormalizeCmd)
	collectionCmd.AddCommand(collectionUseCmd)
	rootCmd.AddCommand(collectionCmd)
}

func runCollectionShow(cmd *cobra.Command, _ []string) error {
	rt, err := newRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()

	cmd.Println(rt.resolver.Active())
	return nil
}

func runCollectionList(cmd *cobra.Command, _ []string) {
	for _, c := range collections.Known() {
		s, _ := collections.Lookup(c)
		cmd.Printf("%-20s interviews=%s clips=%s\n", c, s.InterviewCollection, s.ClipSubcollection)
	}
}

func runCollectionNormalize(cmd *cobra.Command, args []string) error {
	c := domain.Collection(normalizeFor)
	if c == "" {
		rt, err := newRuntime(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.Close()
		c = rt.resolver.Active()
	}
	if _, ok := collections.Lookup(c); !ok {
		return fmt.Errorf("collection %q: %w", c, domain.ErrUnsupportedType)
	}

	cmd.Println(collections.Normalize(args[0], c))
	return nil
}

func runCollectionUse(cmd *cobra.Command, args []string) error {
	c := domain.Collection(args[0])
	if _, ok := collections.Lookup(c); !ok {
		return fmt.Errorf("collection %q: %w", c, domain.ErrUnsupportedType)
	}

	rt, err := newRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()

	if err := rt.config.Set(services.ConfigKeyCollection, string(c)); err != nil {
		return fmt.Errorf("saving collection: %w", err)
	}
	cmd.Printf("%s = %s\n", services.ConfigKeyCollection, c)
	if env := os.Getenv(services.EnvCollection); env != "" && env != string(c) {
		cmd.Printf("note: $%s=%s takes precedence\n", services.EnvCollection, env)
	}
	return nil
}
