package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/kozaktomas/celebrity-twin/internal/render"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render [matches.json]",
	Short: "Render a JSON list of matches",
	Long: `Render a JSON array of {"name": ..., "percent": ...} objects into a results
page. Matches are sorted by percent (highest first) and each celebrity's
photo is looked up on Wikipedia, one card at a time.

Reads from the given file, or from stdin when the file is omitted or "-".

Examples:
  # Render an HTML page
  celebrity-twin render matches.json --output twins.html

  # Only the #error and #results elements, for embedding
  celebrity-twin render matches.json --fragment

  # Pipe matches in and print a table
  echo '[{"name":"Tom Hanks","percent":82}]' | celebrity-twin render --format text`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().String("format", "html", "Output format: html, json or text")
	renderCmd.Flags().StringP("output", "o", "", "Write output to file instead of stdout")
	renderCmd.Flags().Bool("fragment", false, "HTML only: write just the error and results elements")
	renderCmd.Flags().Bool("no-progress", false, "Disable the progress bar")
}

// progressResults forwards cards to the page and ticks a progress bar.
type progressResults struct {
	*render.Page
	bar *progressbar.ProgressBar
}

// Append never fails because of the bar; a broken stderr only loses progress output.
func (p *progressResults) Append(card render.Card) error {
	if err := p.Page.Append(card); err != nil {
		return err
	}
	if err := p.bar.Add(1); err != nil {
		slog.Debug("updating progress bar failed", "error", err)
	}
	return nil
}

func readMatchesInput(args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", args[0], err)
	}
	return data, nil
}

func runRender(cmd *cobra.Command, args []string) error {
	data, err := readMatchesInput(args)
	if err != nil {
		return err
	}

	cfg := loadConfig()
	renderer, _, err := newRenderer(cfg)
	if err != nil {
		return err
	}

	return renderMatches(cmd, renderer, render.ParseMatches(data), render.NewPage(), mustGetString(cmd, "format"))
}

// renderMatches renders into page and writes it out in the requested format.
// Shared by the render and demo commands.
func renderMatches(cmd *cobra.Command, renderer *render.Renderer, matches []render.Match, page *render.Page, format string) error {
	if err := checkFormat(format); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var results render.ResultsContainer = page
	if !mustGetBool(cmd, "no-progress") && len(matches) > 0 {
		bar := progressbar.NewOptions(len(matches),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("Looking up photos"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetItsString("cards"),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionClearOnFinish(),
		)
		results = &progressResults{Page: page, bar: bar}
	}

	renderErr := renderer.Render(ctx, matches, results, page)

	out := io.Writer(os.Stdout)
	if path := mustGetString(cmd, "output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := writePage(out, page, format, mustGetBool(cmd, "fragment")); err != nil {
		return err
	}

	// "No matches found." is a normal outcome, it is already in the output
	if renderErr != nil && !errors.Is(renderErr, render.ErrNoMatches) {
		return renderErr
	}
	return nil
}

func checkFormat(format string) error {
	switch format {
	case "html", "json", "text":
		return nil
	default:
		return fmt.Errorf("unknown format %q (expected html, json or text)", format)
	}
}

func writePage(w io.Writer, page *render.Page, format string, fragment bool) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(page.View()); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		return nil
	case "text":
		return writeTable(w, page)
	default:
		if fragment {
			return page.WriteResultsHTML(w)
		}
		return page.WriteHTML(w)
	}
}

func writeTable(w io.Writer, page *render.Page) error {
	if page.ErrorVisible {
		_, err := fmt.Fprintln(w, page.ErrorMessage)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tMATCH\tPHOTO")
	for _, c := range page.Cards {
		photo := c.ImageURL
		if c.ImageHidden {
			photo = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c.Name, c.PercentLabel, photo)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("writing table: %w", err)
	}
	return nil
}
