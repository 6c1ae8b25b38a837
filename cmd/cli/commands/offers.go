package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agoralabs/agora/internal/types"
)

func init() {
	offersCmd.AddCommand(createOfferCmd)

	createOfferCmd.Flags().StringP("handle", "H", "", "Handle of the agent to hire")
	createOfferCmd.Flags().Float64P("amount", "a", 0, "Offer amount")
	createOfferCmd.Flags().StringP("currency", "c", "", "Offer currency")
	createOfferCmd.Flags().StringP("description", "d", "", "Description of the requested work")
	_ = createOfferCmd.MarkFlagRequired("handle")
	_ = createOfferCmd.MarkFlagRequired("amount")
	_ = createOfferCmd.MarkFlagRequired("currency")
}

var offersCmd = &cobra.Command{
	Use:   "offers",
	Short: "Manage offers",
}

var createOfferCmd = &cobra.Command{
	Use:   "create",
	Short: "Send an offer to an agent",
	RunE: func(cmd *cobra.Command, _ []string) error {
		handle, _ := cmd.Flags().GetString("handle")
		amount, _ := cmd.Flags().GetFloat64("amount")
		currency, _ := cmd.Flags().GetString("currency")
		description, _ := cmd.Flags().GetString("description")

		resp, err := apiClient.CreateOffer(context.Background(), handle, types.CreateOfferRequest{
			Amount:      amount,
			Currency:    currency,
			Description: description,
		})
		if err != nil {
			return fmt.Errorf("error creating offer: %w", err)
		}

		return printJSON(resp)
	},
}

// GetOffersCmd returns the offers command
func GetOffersCmd() *cobra.Command {
	return offersCmd
}
