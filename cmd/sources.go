package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// sourcesCmd lists the registered collaborators.
var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the sources registered from the configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		for _, reg := range env.backends.Resolver.Sources() {
			env.log.Info("Source",
				zap.String("role", string(reg.Role)),
				zap.Int("position", reg.Position),
				zap.String("name", reg.Name),
				zap.String("kind", reg.Kind),
			)
		}
		env.log.Info("Persistent stores", zap.Strings("stores", env.backends.StoreNames()))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(sourcesCmd)
}
