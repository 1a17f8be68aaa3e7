package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/excalimaid/pkg/extract"
	"github.com/matzehuels/excalimaid/pkg/flowchart"
	"github.com/matzehuels/excalimaid/pkg/pipeline"
	"github.com/matzehuels/excalimaid/pkg/render/mermaid"
)

// inspectCommand prints the graph extracted from a diagram.
func (c *CLI) inspectCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect <input>",
		Short: "Show the nodes, edges and groups extracted from a diagram",
		Long: `Inspect shows the intermediate graph excalimaid builds before rendering.
Node ids in the first column match the ids used in the Mermaid output.`,
		Args: inputArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := pipeline.ReadInput(args[0])
			if err != nil {
				return err
			}
			doc, err := pipeline.Parse(cmd.Context(), data)
			if err != nil {
				return err
			}
			g := extract.Extract(doc)
			c.Logger.Debug("extracted graph", "elements", len(doc.Elements), "nodes", g.NodeCount())

			if asJSON {
				return flowchart.WriteJSON(g, c.Out)
			}
			printGraph(c.Out, g)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the graph as JSON")
	return cmd
}

var (
	tableHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func printGraph(w io.Writer, g *flowchart.Graph) {
	printKeyValue(w, "Direction", string(g.Direction()))
	printKeyValue(w, "Nodes", strconv.Itoa(g.NodeCount()))
	printKeyValue(w, "Edges", strconv.Itoa(g.EdgeCount()))
	printKeyValue(w, "Groups", strconv.Itoa(g.GroupCount()))

	shortIDs := make(map[string]string, g.NodeCount())
	nodeRows := make([][]string, 0, g.NodeCount())
	for i, n := range g.Nodes() {
		sid := mermaid.ShortID(i)
		shortIDs[n.ID] = sid
		nodeRows = append(nodeRows, []string{sid, n.Label, string(n.Shape), n.ID})
	}
	if len(nodeRows) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, StyleTitle.Render("Nodes"))
	fmt.Fprintln(w, renderTable([]string{"ID", "Label", "Shape", "Element"}, nodeRows))

	if edges := g.Edges(); len(edges) > 0 {
		rows := make([][]string, 0, len(edges))
		for _, e := range edges {
			rows = append(rows, []string{shortIDs[e.From], shortIDs[e.To], string(e.Style), e.Label})
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, StyleTitle.Render("Edges"))
		fmt.Fprintln(w, renderTable([]string{"From", "To", "Style", "Label"}, rows))
	}

	if groups := g.Groups(); len(groups) > 0 {
		rows := make([][]string, 0, len(groups))
		for _, grp := range groups {
			members := make([]string, len(grp.Members))
			for i, id := range grp.Members {
				members[i] = shortIDs[id]
			}
			rows = append(rows, []string{grp.Label, string(grp.Origin), strings.Join(members, ", ")})
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, StyleTitle.Render("Groups"))
		fmt.Fprintln(w, renderTable([]string{"Title", "Origin", "Members"}, rows))
	}
}

func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return tableHeaderStyle.Padding(0, 1)
			}
			return tableCellStyle
		}).
		Render()
}
