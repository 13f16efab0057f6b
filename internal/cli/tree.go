package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quiltviz/quilt/pkg/figfile"
	"github.com/quiltviz/quilt/pkg/render/treeviz"
)

// treeOpts holds the command-line flags for the tree command.
type treeOpts struct {
	output   string // output file path; empty writes DOT to stdout
	format   string // output format: dot, svg, png
	detailed bool   // show tags, grid shapes, and design strings per node
}

// treeCommand creates the tree command for visualizing a figure's
// composition structure as a node diagram.
func (c *CLI) treeCommand() *cobra.Command {
	var opts treeOpts

	cmd := &cobra.Command{
		Use:   "tree [file]",
		Short: "Visualize the composition tree of a figure file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTree(args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: DOT to stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "dot", "output format: dot, svg, png")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show tags, grid shapes, and design strings")

	return cmd
}

func (c *CLI) runTree(input string, opts *treeOpts) error {
	f, err := figfile.Load(input)
	if err != nil {
		return err
	}
	tree, err := f.Build()
	if err != nil {
		return err
	}

	dot := treeviz.ToDOT(tree, treeviz.Options{Detailed: opts.detailed})

	var data []byte
	switch opts.format {
	case "dot":
		data = []byte(dot)
	case "svg":
		if data, err = treeviz.RenderSVG(dot); err != nil {
			return err
		}
	case "png":
		if data, err = treeviz.RenderPNG(dot); err != nil {
			return err
		}
	default:
		return fmt.Errorf("invalid format: %s (must be 'dot', 'svg', or 'png')", opts.format)
	}

	if opts.output == "" && opts.format == "dot" {
		fmt.Print(dot)
		return nil
	}

	path := opts.output
	if path == "" {
		path = strings.TrimSuffix(input, ".toml") + "_tree." + opts.format
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	printSuccess("Generated composition diagram")
	printFile(path)
	return nil
}
