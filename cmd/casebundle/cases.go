package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/casebundle/internal/api"
	"github.com/jackzampolin/casebundle/internal/bundle"
	"github.com/jackzampolin/casebundle/internal/casestore"
	"github.com/jackzampolin/casebundle/internal/server/endpoints"
)

var casesDB string

var casesCmd = &cobra.Command{
	Use:   "cases",
	Short: "Read cases from the case database",
}

var casesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cases, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, store, err := openCases(cmd)
		if err != nil {
			return err
		}
		defer e.close()
		defer store.Close()

		cases, err := store.Cases(ctx)
		if err != nil {
			return err
		}
		if cases == nil {
			cases = []casestore.Case{}
		}
		return api.Output(endpoints.ListCasesResponse{Cases: cases})
	},
}

var casesDocumentsCmd = &cobra.Command{
	Use:   "documents <case-id>",
	Short: "List the bundle documents of a case with their planned pages",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, store, err := openCases(cmd)
		if err != nil {
			return err
		}
		defer e.close()
		defer store.Close()

		c, err := store.Case(ctx, args[0])
		if err != nil {
			return err
		}
		docs, err := store.BundleDocuments(ctx, args[0])
		if err != nil {
			return err
		}

		compiler := bundle.New(e.live.Get().CompilerConfig(e.logger))
		p := endpoints.Preview(compiler, docs, nil)
		return api.Output(endpoints.CaseDocumentsResponse{
			Case:       *c,
			Documents:  docs,
			TOCEntries: p.TOCEntries,
			TotalPages: p.TotalPages,
		})
	},
}

func openCases(cmd *cobra.Command) (*env, *casestore.Store, error) {
	e, err := loadEnv(cmd.Context())
	if err != nil {
		return nil, nil, err
	}
	store, err := casestore.Open(cmd.Context(), e.caseDBPath(casesDB), false, e.logger)
	if err != nil {
		e.close()
		return nil, nil, err
	}
	return e, store, nil
}

func init() {
	casesCmd.PersistentFlags().StringVar(&casesDB, "db", "", "Case database (default: case_db or ~/.casebundle/cases.db)")
	casesCmd.AddCommand(casesListCmd)
	casesCmd.AddCommand(casesDocumentsCmd)
	rootCmd.AddCommand(casesCmd)
}
