package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var mediaRandom bool

var mediaCmd = &cobra.Command{
	Use:   "media [query]",
	Short: "Search the space imagery archive",
	Long: `Search the space imagery archive and print quality-tiered URLs for the
first usable image or video, or pick one at random.

Examples:
  cosmus media "mars rover"
  cosmus media --random`,
	RunE: runMedia,
}

func init() {
	mediaCmd.Flags().BoolVar(&mediaRandom, "random", false, "pick a random topic instead of searching")
}

func runMedia(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := initCore(ctx, false); err != nil {
		return err
	}

	if mediaRandom {
		fmt.Print(renderMedia(defaultTheme, engine.FetchRandom(ctx)))
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("provide a query or use --random")
	}
	query := strings.Join(args, " ")
	fmt.Print(renderMedia(defaultTheme, engine.FetchByQuery(ctx, query)))
	return nil
}
