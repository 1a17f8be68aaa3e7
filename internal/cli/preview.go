package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/excalimaid/pkg/errors"
	"github.com/matzehuels/excalimaid/pkg/pipeline"
	"github.com/matzehuels/excalimaid/pkg/render/nodelink"
)

// previewCommand renders the extracted graph through Graphviz.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		output    string
		format    string
		direction string
		refresh   bool
	)

	cmd := &cobra.Command{
		Use:   "preview <input>",
		Short: "Render the extracted graph with Graphviz",
		Long: `Preview renders the graph excalimaid extracts from a diagram through Graphviz,
as a quick visual check of what the Mermaid output will contain.

Without -o the output is written next to the input with the format's
extension (diagram.excalidraw -> diagram.svg).`,
		Args: inputArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			input := args[0]

			f, err := nodelink.ParseFormat(format)
			if err != nil {
				return err
			}
			if output == "" {
				output = defaultPreviewPath(input, f)
			}
			if err := errors.ValidatePath(output); err != nil {
				return err
			}

			data, err := pipeline.ReadInput(input)
			if err != nil {
				return err
			}

			runner, err := c.newRunner(ctx, c.settings().Cache)
			if err != nil {
				return err
			}
			defer runner.Close()

			prog := newProgress(c.Logger)
			spin := newSpinner(ctx, c.Err, fmt.Sprintf("Rendering %s...", f))
			spin.Start()
			out, _, hit, err := runner.Preview(ctx, data, pipeline.PreviewOptions{
				Direction: c.direction(direction),
				Format:    string(f),
				Refresh:   refresh,
			})
			cancelled := spin.Cancelled()
			spin.Stop()
			if cancelled {
				return ctx.Err()
			}
			if err != nil {
				return err
			}

			if err := os.WriteFile(output, out, 0o644); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", output)
			}
			prog.done("Rendered preview")

			printSuccess(c.Out, "Rendered %s preview", strings.ToUpper(string(f)))
			printFile(c.Out, output)
			if hit {
				printDetail(c.Out, iconCached)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file")
	cmd.Flags().StringVarP(&format, "format", "f", string(nodelink.FormatSVG), "output format: svg, png, dot")
	cmd.Flags().StringVarP(&direction, "direction", "d", "", "force the direction: TD, TB, LR, BT, RL")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cached renderings")

	return cmd
}

// defaultPreviewPath swaps the input's extension for the format's.
func defaultPreviewPath(input string, f nodelink.Format) string {
	base := strings.TrimSuffix(input, ".json")
	if i := strings.LastIndex(base, "."); i > strings.LastIndexAny(base, `/\`) {
		base = base[:i]
	}
	return base + "." + string(f)
}
