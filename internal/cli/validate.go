package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// ValidationResult is the JSON shape of validate.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Commands []string `json:"commands"`
	Errors   []string `json:"errors,omitempty"`
}

// ErrInvalid is returned when definition files fail to load.
var ErrInvalid = errors.New("invalid command definitions")

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [dir]",
		Short: "Load every definition file and report the ones that fail",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := commandsDir(rootOpts, args)
			if err != nil {
				return err
			}

			loaded, errs := loadCommands(dir)
			res := ValidationResult{Valid: len(errs) == 0, Commands: []string{}}
			for _, c := range loaded {
				res.Commands = append(res.Commands, c.Name)
			}
			for _, e := range errs {
				res.Errors = append(res.Errors, e.Error())
			}

			out := cmd.OutOrStdout()
			if rootOpts.Format == "json" {
				if err := writeJSON(out, res); err != nil {
					return err
				}
			} else {
				for _, e := range res.Errors {
					fmt.Fprintf(out, "✗ %s\n", e)
				}
				if res.Valid {
					fmt.Fprintf(out, "✓ %d command(s) valid\n", len(res.Commands))
				}
			}
			if !res.Valid {
				return ErrInvalid
			}
			return nil
		},
	}
}

// commandsDir picks the positional dir, then --commands, then the config.
func commandsDir(rootOpts *RootOptions, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if rootOpts.CommandsPath != "" {
		return rootOpts.CommandsPath, nil
	}
	cfg, err := rootOpts.config()
	if err != nil {
		return "", err
	}
	return cfg.CommandsPath, nil
}
