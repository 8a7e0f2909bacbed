package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/casebundle/internal/casestore"
	"github.com/jackzampolin/casebundle/internal/config"
	"github.com/jackzampolin/casebundle/internal/home"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the home directory, default config and databases",
	Long: `Create ~/.casebundle (or --home) with:
  config.yaml  - default configuration
  bundles/     - default output directory
  cases.db     - empty case database
  settings.db  - runtime setting overrides

An existing config.yaml is kept unless --force is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}

		if !h.ConfigExists() || initForce {
			if err := config.WriteDefault(h.ConfigPath()); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", h.ConfigPath())
		} else {
			fmt.Printf("Kept %s\n", h.ConfigPath())
		}

		cases, err := casestore.Open(ctx, h.CaseDBPath(), true, newLogger())
		if err != nil {
			return err
		}
		defer cases.Close()
		if err := cases.Migrate(ctx); err != nil {
			return err
		}
		fmt.Printf("Case database %s\n", h.CaseDBPath())

		settings, err := config.OpenStore(ctx, h.SettingsDBPath())
		if err != nil {
			return err
		}
		defer settings.Close()
		fmt.Printf("Settings store %s\n", h.SettingsDBPath())
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config.yaml")
	rootCmd.AddCommand(initCmd)
}
