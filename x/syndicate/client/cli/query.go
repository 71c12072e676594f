package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
)

// GetQueryCmd returns the cli query commands for the syndicate module
func GetQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "syndicate",
		Short:                      "Querying commands for the syndicate module",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdQueryScheme(),
		CmdQuerySchemes(),
		CmdQueryLedger(),
		CmdQueryBalance(),
		CmdQueryCustody(),
	)

	return cmd
}

// CmdQueryScheme returns the command to query a scheme by ID
func CmdQueryScheme() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scheme [scheme-id]",
		Short: "Query a scheme by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schemeID := args[0]
			fmt.Printf("Scheme query for ID: %s requires running node connection\n", schemeID)
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQuerySchemes returns the command to list schemes
func CmdQuerySchemes() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schemes",
		Short: "Query all schemes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Schemes query requires running node connection")
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryLedger returns the command to query a scheme's ledger
func CmdQueryLedger() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger [scheme-id]",
		Short: "Query a scheme's contribution or share ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schemeID := args[0]
			fmt.Printf("Ledger query for scheme: %s requires running node connection\n", schemeID)
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryBalance returns the command to query a holder's balance
func CmdQueryBalance() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance [scheme-id] [holder]",
		Short: "Query a holder's share balance",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("Balance query for holder: %s requires running node connection\n", args[1])
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryCustody returns the command to query a scheme's custody account
func CmdQueryCustody() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "custody [scheme-id]",
		Short: "Query a scheme's custody address and settlement balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schemeID := args[0]
			fmt.Printf("Custody query for scheme: %s requires running node connection\n", schemeID)
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}
