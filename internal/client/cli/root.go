package cli

import (
	"github.com/spf13/cobra"
)

// rootCommand builds a fresh command tree. The shell builds one per line so
// flag values never leak between commands.
func (a *App) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "clinicadmin",
		Short:         "Admin console for the clinic backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runShell(cmd.Context())
		},
	}

	root.AddGroup(
		&cobra.Group{ID: "session", Title: "Session:"},
		&cobra.Group{ID: "records", Title: "Records:"},
	)

	root.AddCommand(
		a.loginCommand(),
		a.signupCommand(),
		a.logoutCommand(),
		a.whoamiCommand(),
		a.resourcesCommand(),
		a.listCommand(),
		a.showCommand(),
		a.createCommand(),
		a.updateCommand(),
		a.deleteCommand(),
		a.shellCommand(),
	)
	return root
}

func (a *App) shellCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive shell (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runShell(cmd.Context())
		},
	}
}
