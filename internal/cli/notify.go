package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DukeRupert/traslado/internal/domain"
	"github.com/DukeRupert/traslado/internal/notify"
)

type notifyOptions struct {
	reservationID string
	clientEmail   string
	driverEmail   string
}

func (a *App) newNotifyCmd() *cobra.Command {
	opts := &notifyOptions{}

	cmd := &cobra.Command{
		Use:       "notify <created|confirmed|completed>",
		Short:     "Send the emails for a reservation event",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(domain.NotificationCreated), string(domain.NotificationConfirmed), string(domain.NotificationCompleted)},
		RunE: func(cmd *cobra.Command, args []string) error {
			notifier := notify.NewNotifier(a.client(), a.adminEmail, a.logger())
			batch, err := notifier.SendAutomaticEmails(
				cmd.Context(),
				opts.reservationID,
				opts.clientEmail,
				domain.NotificationEvent(args[0]),
				opts.driverEmail,
			)
			if err != nil {
				return err
			}
			if err := a.printJSON(batch); err != nil {
				return err
			}
			if !batch.Success {
				return fmt.Errorf("%w: %d of %d attempts failed", ErrSendFailed, failed(batch), len(batch.Results))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.reservationID, "reservation", "r", "", "Reservation ID (required)")
	cmd.Flags().StringVar(&opts.clientEmail, "client-email", "", "Client recipient (required)")
	cmd.Flags().StringVar(&opts.driverEmail, "driver-email", "", "Driver recipient for confirmed events")

	_ = cmd.MarkFlagRequired("reservation")
	_ = cmd.MarkFlagRequired("client-email")

	return cmd
}

func failed(b *domain.BatchResult) int {
	n := 0
	for _, r := range b.Results {
		if !r.Success {
			n++
		}
	}
	return n
}
