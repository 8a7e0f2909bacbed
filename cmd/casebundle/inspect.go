package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/casebundle/internal/api"
	"github.com/jackzampolin/casebundle/internal/pdfgraph"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.pdf>...",
	Short: "Show page count, title and size of PDF files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		infos := make([]*pdfgraph.Info, 0, len(args))
		for _, path := range args {
			info, err := pdfgraph.Inspect(path)
			if err != nil {
				return err
			}
			infos = append(infos, info)
		}
		if len(infos) == 1 {
			return api.Output(infos[0])
		}
		return api.Output(infos)
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
