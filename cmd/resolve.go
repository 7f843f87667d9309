package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <name>",
	Short: "Look up the Wikipedia photo for one celebrity",
	Long: `Look up the photo URL for a single celebrity name using the same three
strategies as rendering: exact title, top search result, page images.
Run with --log-level debug to see why each strategy failed.

Examples:
  celebrity-twin resolve "Tom Hanks"
  celebrity-twin resolve "kaley cuoco" --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().Bool("json", false, "Output as JSON")
}

func runResolve(cmd *cobra.Command, args []string) error {
	name := strings.Join(args, " ")

	cfg := loadConfig()
	images, err := newResolver(cfg)
	if err != nil {
		return err
	}

	url, ok := images.Resolve(context.Background(), name)

	if mustGetBool(cmd, "json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(map[string]any{"name": name, "found": ok, "image_url": url}); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		return nil
	}

	if !ok {
		fmt.Printf("No image found for %q\n", name)
		return nil
	}
	fmt.Println(url)
	return nil
}
