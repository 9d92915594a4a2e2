package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/pathtree/internal/config"
)

const (
	initUse              = "init"
	initShortDescription = "write a default configuration file"
	initLongDescription  = `Write the default configuration to ./.pathtree.yaml, or to
~/.pathtree/config.yaml with --global. An existing file is kept unless --force is given.`
	initGlobalFlagName        = "global"
	initForceFlagName         = "force"
	initGlobalFlagDescription = "write the global configuration under the home directory"
	initForceFlagDescription  = "overwrite an existing configuration file"
	initWrittenTemplate       = "Configuration written to %s\n"
)

func newInitCommand(dependencies Dependencies) *cobra.Command {
	var global bool
	var force bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			command.SilenceUsage = true
			target := config.InitTargetLocal
			if global {
				target = config.InitTargetGlobal
			}
			writtenPath, initError := config.InitializeConfiguration(config.InitOptions{
				Target:           target,
				Force:            force,
				WorkingDirectory: dependencies.WorkingDirectory,
			})
			if initError != nil {
				return initError
			}
			_, writeError := fmt.Fprintf(dependencies.Stdout, initWrittenTemplate, writtenPath)
			return writeError
		},
	}
	initCommand.Flags().BoolVar(&global, initGlobalFlagName, false, initGlobalFlagDescription)
	initCommand.Flags().BoolVar(&force, initForceFlagName, false, initForceFlagDescription)
	return initCommand
}
