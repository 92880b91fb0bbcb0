package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fromsvg/svgraster/pkg/source/local"
)

// hashCommand creates the hash command for printing content hashes.
// The hash matches the one used in artifact cache keys, so it can be used
// to detect whether a source changed since its last render.
func (c *CLI) hashCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hash [file]",
		Short: "Print the content hash of an SVG file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, hash, err := local.Load(args[0])
			if err != nil {
				return err
			}
			fmt.Println(hash)
			return nil
		},
	}
}
