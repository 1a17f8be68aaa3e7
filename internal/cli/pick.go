package cli

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/excalimaid/pkg/errors"
)

// diagramExt is the extension Excalidraw uses for saved documents.
const diagramExt = ".excalidraw"

// pickCommand lists diagrams under a directory and converts the chosen one.
func (c *CLI) pickCommand() *cobra.Command {
	var flags convertFlags

	cmd := &cobra.Command{
		Use:   "pick [dir]",
		Short: "Choose a diagram interactively and convert it",
		Long: `Pick searches dir (default ".") for *.excalidraw files, lets you choose one
and converts it exactly like the root command. The list is drawn on stderr so
the markup can be redirected.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			files, err := findDiagrams(dir)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				printInfo(c.Out, "No %s files under %s", diagramExt, dir)
				return nil
			}

			p := tea.NewProgram(NewDiagramListModel(files),
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(c.Err))
			final, err := p.Run()
			if err != nil {
				return err
			}
			m, ok := final.(DiagramListModel)
			if !ok || m.Selected == nil {
				return nil
			}

			c.Logger.Debug("picked diagram", "path", m.Selected.Path)
			return c.runConvert(cmd.Context(), m.Selected.Path, flags)
		},
	}

	flags.register(cmd)
	return cmd
}

// findDiagrams walks dir for Excalidraw documents, skipping hidden
// directories, sorted by path.
func findDiagrams(dir string) ([]diagramFile, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "directory %s", dir)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidPath, "%s is not a directory", dir)
	}

	var files []diagramFile
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(d.Name()), diagramExt) {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return nil
		}
		files = append(files, diagramFile{Path: path, Size: fi.Size(), ModTime: fi.ModTime()})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}
