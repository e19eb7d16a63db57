package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/easeltools/easel/cli"
	"github.com/easeltools/easel/config"
)

// NewConfigCmd creates the `config` command group.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and validate the easel configuration",
	}

	cmd.AddCommand(
		newConfigShowCmd(),
		newConfigValidateCmd(),
		newConfigSchemaCmd(),
	)

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Prints the configuration after defaults are applied, with the
source file it was loaded from.

Examples:
  # Show the effective config
  easel config show
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.LoadConfig(cmd)
			if err != nil {
				return cli.NewErrorHandler(false).Handle(err)
			}

			if cfg.Path != "" {
				fmt.Printf("# Source: %s\n", cfg.Path)
			} else {
				fmt.Println("# Source: built-in defaults (no config file found)")
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			fmt.Print(string(data))
			return nil
		},
	}
}

func newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration against the schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			handler := cli.NewErrorHandler(opts.Verbose)

			cfg, err := cli.LoadConfig(cmd)
			if err != nil {
				return handler.Handle(err)
			}

			validator, err := config.NewValidator()
			if err != nil {
				return handler.Handle(err)
			}
			if err := validator.Validate(cfg); err != nil {
				return handler.Handle(err)
			}

			if cfg.Path != "" {
				fmt.Printf("✓ %s is valid\n", cfg.Path)
			} else {
				fmt.Println("✓ built-in defaults are valid")
			}
			return nil
		},
	}
}

func newConfigSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the configuration JSON schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.GenerateSchema()
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		},
	}
}
