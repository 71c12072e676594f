package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"

	"github.com/openalpha/syndicate/x/syndicate/types"
)

// GetTxCmd returns the transaction commands for the syndicate module
func GetTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "syndicate",
		Short:                      "Syndicate module transaction commands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdCreateScheme(),
		CmdDeposit(),
		CmdWithdraw(),
		CmdMakeBuyOrder(),
		CmdPublishToken(),
		CmdSellAsset(),
		CmdUpdateSellOrder(),
		CmdRedeem(),
		CmdTransfer(),
		CmdApprove(),
		CmdTransferFrom(),
	)

	return cmd
}

// CmdCreateScheme returns the command to create a scheme
func CmdCreateScheme() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-scheme [asset-ref] [settlement-denom] [offer-closing] [order-expiration] [maturity]",
		Short: "Create a new investment scheme",
		Long: `Create a new investment scheme. Deadlines are unix timestamps in seconds.

Examples:
  syndicated tx syndicate create-scheme NIKKEI-FUT-2026 uusdc 1760000000 1762000000 1775000000 --from alice`,
		Args: cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			offerClosing, err := strconv.ParseInt(args[2], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid offer closing time: %v", err)
			}
			orderExpiration, err := strconv.ParseInt(args[3], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid order expiration: %v", err)
			}
			maturity, err := strconv.ParseInt(args[4], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid maturity: %v", err)
			}

			msg := &types.MsgCreateScheme{
				Creator:            clientCtx.GetFromAddress().String(),
				UnderlyingAssetRef: args[0],
				SettlementDenom:    args[1],
				OfferClosingTime:   offerClosing,
				OrderExpiration:    orderExpiration,
				Maturity:           maturity,
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdDeposit returns the command to deposit into a scheme
func CmdDeposit() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deposit [scheme-id] [amount]",
		Short: "Deposit settlement funds into an offering scheme",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgDeposit{
				Depositor: clientCtx.GetFromAddress().String(),
				SchemeID:  args[0],
				Amount:    args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdWithdraw returns the command to withdraw from a scheme
func CmdWithdraw() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "withdraw [scheme-id] [amount]",
		Short: "Withdraw contributed funds while the offer is open (omit amount for all)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			amount := ""
			if len(args) == 2 {
				amount = args[1]
			}

			msg := &types.MsgWithdraw{
				Caller:   clientCtx.GetFromAddress().String(),
				SchemeID: args[0],
				Amount:   amount,
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdMakeBuyOrder returns the command to place the collective buy order
func CmdMakeBuyOrder() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "make-buy-order [scheme-id]",
		Short: "Place the collective buy order after the offer closes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			msg := &types.MsgMakeBuyOrder{
				Caller:   clientCtx.GetFromAddress().String(),
				SchemeID: args[0],
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdPublishToken returns the command to poll the buy order for a fill
func CmdPublishToken() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish-token [scheme-id]",
		Short: "Poll the buy order and publish shares on fill",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			msg := &types.MsgPublishToken{
				Caller:   clientCtx.GetFromAddress().String(),
				SchemeID: args[0],
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdSellAsset returns the command to place the sell order at maturity
func CmdSellAsset() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sell-asset [scheme-id]",
		Short: "Place the sell order for the held asset at maturity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			msg := &types.MsgSellAsset{
				Caller:   clientCtx.GetFromAddress().String(),
				SchemeID: args[0],
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdUpdateSellOrder returns the command to poll the sell order for a fill
func CmdUpdateSellOrder() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update-sell-order [scheme-id]",
		Short: "Poll the sell order and record proceeds on fill",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			msg := &types.MsgUpdateSellOrder{
				Caller:   clientCtx.GetFromAddress().String(),
				SchemeID: args[0],
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdRedeem returns the command to run the refund engine
func CmdRedeem() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "redeem [scheme-id]",
		Short: "Refund all holders and close a redeemable scheme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			msg := &types.MsgRedeem{
				Caller:   clientCtx.GetFromAddress().String(),
				SchemeID: args[0],
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdTransfer returns the command to transfer shares
func CmdTransfer() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfer [scheme-id] [to] [amount]",
		Short: "Transfer scheme shares to another holder",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			msg := &types.MsgTransfer{
				From:     clientCtx.GetFromAddress().String(),
				To:       args[1],
				SchemeID: args[0],
				Amount:   args[2],
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdApprove returns the command to set a share allowance
func CmdApprove() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "approve [scheme-id] [spender] [amount]",
		Short: "Approve a spender for scheme shares",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			msg := &types.MsgApprove{
				Owner:    clientCtx.GetFromAddress().String(),
				Spender:  args[1],
				SchemeID: args[0],
				Amount:   args[2],
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdTransferFrom returns the command to transfer shares within an allowance
func CmdTransferFrom() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfer-from [scheme-id] [from] [to] [amount]",
		Short: "Transfer scheme shares on behalf of an owner",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}
			msg := &types.MsgTransferFrom{
				Spender:  clientCtx.GetFromAddress().String(),
				From:     args[1],
				To:       args[2],
				SchemeID: args[0],
				Amount:   args[3],
			}
			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}
