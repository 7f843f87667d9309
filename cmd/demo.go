package cmd

import (
	"github.com/kozaktomas/celebrity-twin/internal/render"
	"github.com/spf13/cobra"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Render the built-in sample matches",
	Long: `Render Kaley Cuoco (88%), Reese Witherspoon (85%) and Tom Hanks (82%)
against the live Wikipedia API. Useful as a quick end-to-end check.`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().String("format", "text", "Output format: html, json or text")
	demoCmd.Flags().StringP("output", "o", "", "Write output to file instead of stdout")
	demoCmd.Flags().Bool("fragment", false, "HTML only: write just the error and results elements")
	demoCmd.Flags().Bool("no-progress", false, "Disable the progress bar")
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	renderer, _, err := newRenderer(cfg)
	if err != nil {
		return err
	}

	page := render.NewPage()
	page.Title = "Demo: " + render.DefaultTitle
	return renderMatches(cmd, renderer, render.DemoMatches(cfg.Demo), page, mustGetString(cmd, "format"))
}
