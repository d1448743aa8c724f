package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/0xAtelerix/esdt/library/esdt"
)

func newEncodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode <token id> <amount>",
		Short: "Build ESDTTransfer or, with --nonce, ESDTNFTTransfer call data",
		Example: `  esdtdecode encode WEGLD-bd4d79 1000000000000000000
  esdtdecode encode MEX-455c57 1 --nonce 10`,
		Args: cobra.ExactArgs(2),
		RunE: runEncode,
	}

	cmd.Flags().Uint64("nonce", 0, "token nonce; builds non-fungible transfer call data when set")

	return cmd
}

func runEncode(cmd *cobra.Command, args []string) error {
	amount, err := esdt.ParseAmount(args[1])
	if err != nil {
		return fmt.Errorf("amount %q: %w", args[1], err)
	}

	var data string

	if cmd.Flags().Changed("nonce") {
		nonce, err := cmd.Flags().GetUint64("nonce")
		if err != nil {
			return err
		}

		data, err = esdt.EncodeNFTTransfer(args[0], nonce, amount)
		if err != nil {
			return err
		}
	} else {
		data, err = esdt.EncodeTransfer(args[0], amount)
		if err != nil {
			return err
		}
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), data)

	return err
}
