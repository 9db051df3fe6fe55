package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DukeRupert/traslado/internal/email"
)

// ErrNotConnected is returned when the service cannot reach its transport.
var ErrNotConnected = errors.New("email transport not connected")

func (a *App) newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check the service's mail transport",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.client().VerifyConnection(cmd.Context()) {
				fmt.Fprintf(a.stdout, "%s: not connected\n", a.serviceURL)
				return ErrNotConnected
			}
			fmt.Fprintf(a.stdout, "%s: connected\n", a.serviceURL)
			return nil
		},
	}
}

// newTemplatesCmd lists the templates built into this binary.
func (a *App) newTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the built-in email templates",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range email.DefaultRegistry().Names() {
				fmt.Fprintln(a.stdout, name)
			}
		},
	}
}
