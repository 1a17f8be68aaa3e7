package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/excalimaid/pkg/pipeline"
)

// convertFlags are the root command's conversion flags.
type convertFlags struct {
	output    string
	direction string
	json      bool
	refresh   bool
}

func (f *convertFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "write the markup to this file")
	cmd.Flags().StringVarP(&f.direction, "direction", "d", "", "force the direction: TD, TB, LR, BT, RL")
	cmd.Flags().BoolVar(&f.json, "json", false, "print the result as JSON")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "bypass cached results")
}

// runConvert converts input and prints the markup, the JSON result or, when
// an output file was written, a short summary.
func (c *CLI) runConvert(ctx context.Context, input string, flags convertFlags) error {
	runner, err := c.newRunner(ctx, c.settings().Cache)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, err := runner.Execute(ctx, pipeline.Options{
		Input:     input,
		Direction: c.direction(flags.direction),
		Output:    flags.output,
		Refresh:   flags.refresh,
		Logger:    c.Logger,
	})
	if err != nil {
		return err
	}

	switch {
	case flags.json:
		return writeJSON(c.Out, res.Conversion)
	case flags.output != "":
		c.printConversionSummary(res, flags.output)
		return nil
	default:
		_, err := fmt.Fprint(c.Out, res.Conversion.Mermaid)
		return err
	}
}

func (c *CLI) printConversionSummary(res *pipeline.Result, output string) {
	conv := res.Conversion
	printSuccess(c.Out, "Converted to Mermaid")
	printFile(c.Out, output)
	printStats(c.Out, conv.NodeCount, conv.EdgeCount, string(conv.Direction), res.CacheHit)
	if conv.NodeCount == 0 {
		printWarning(c.Out, "no shapes found; the flowchart is empty")
	}
}
