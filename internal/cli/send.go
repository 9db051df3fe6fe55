package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DukeRupert/traslado/internal/domain"
)

// ErrSendFailed is returned when the service reports an unsuccessful send.
var ErrSendFailed = errors.New("email not sent")

type sendOptions struct {
	reservationID string
	templateName  string
	recipient     string
}

func (a *App) newSendCmd() *cobra.Command {
	opts := &sendOptions{}

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send one templated email for a reservation",
		Long: `Send one templated email for a stored reservation.

Examples:
  # Confirmation to the client
  trasladoctl send -r 3f0c... -t reservation_confirmed --to ana@example.com

  # Admin copy
  trasladoctl send -r 3f0c... -t admin_new_reservation --to ops@traslado.app`,
		RunE: func(cmd *cobra.Command, args []string) error {
			res := a.client().SendReservationEmail(cmd.Context(), opts.reservationID, opts.templateName, opts.recipient)
			return a.report(res)
		},
	}

	cmd.Flags().StringVarP(&opts.reservationID, "reservation", "r", "", "Reservation ID (required)")
	cmd.Flags().StringVarP(&opts.templateName, "template", "t", "", "Template name (required)")
	cmd.Flags().StringVar(&opts.recipient, "to", "", "Recipient email (required)")

	_ = cmd.MarkFlagRequired("reservation")
	_ = cmd.MarkFlagRequired("template")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func (a *App) report(res domain.SendResult) error {
	if err := a.printJSON(res); err != nil {
		return err
	}
	if !res.Success {
		return fmt.Errorf("%w: %s", ErrSendFailed, res.Error)
	}
	return nil
}
