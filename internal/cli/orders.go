package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"lab-portal/internal/client"
	"lab-portal/internal/repository"
	"lab-portal/internal/service"
)

func newPaidOrdersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paid-orders",
		Short: "Print orders whose payment was captured",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer env.close()

			payments := service.NewPaymentService(
				env.db,
				client.NewRazorpayClient(&env.cfg.Razorpay),
				repository.NewOrderRepository(env.db),
				repository.NewCheckoutUserRepository(env.db),
				env.logger,
			)
			orders, err := payments.PaidOrders(cmd.Context())
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(orders)
		},
	}
}
