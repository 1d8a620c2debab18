package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"lab-portal/internal/dto"
	"lab-portal/internal/repository"
	"lab-portal/internal/service"
	"lab-portal/internal/validation"
)

func newAddUserCmd() *cobra.Command {
	var req dto.CheckoutUserRequest

	cmd := &cobra.Command{
		Use:   "add-user",
		Short: "Register a buyer so they can sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.Struct(&req); err != nil {
				return err
			}

			env, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer env.close()

			checkout := service.NewCheckoutService(
				env.db,
				repository.NewOrderRepository(env.db),
				repository.NewCheckoutUserRepository(env.db),
				env.logger,
			)
			user, err := checkout.SaveCheckoutUser(cmd.Context(), &req)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(user)
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "buyer name")
	cmd.Flags().StringVar(&req.Email, "email", "", "buyer email")
	cmd.Flags().StringVar(&req.Order, "order", "", "order id to link")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
