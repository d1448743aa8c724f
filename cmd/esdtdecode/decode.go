package main

import (
	"bufio"
	"io"

	"github.com/spf13/cobra"

	"github.com/0xAtelerix/esdt/library/errors"
	"github.com/0xAtelerix/esdt/library/esdt"
)

const maxLineSize = 1 << 20

const ErrFollowWithArgs = errors.SDKError("--follow does not take call data arguments")

func newDecodeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode [call data...]",
		Short: "Decode token id and amount from call data",
		Long: `Decode token id and amount from ESDTTransfer / ESDTNFTTransfer call data.

Call data is read from the arguments, from --follow <file>, or line by line
from stdin. Data that is not a token transfer prints "-" in text format and
empty fields otherwise.`,
		Example: `  esdtdecode decode ESDTTransfer@5745474c44@0de0b6b3a7640000
  esdtdecode decode --format json --decimals 18 < calldata.txt
  esdtdecode decode --follow /var/log/txdata.log`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDecode(cmd, args)
		},
	}

	cmd.Flags().String("format", formatText, "output format: text, json or cbor")
	cmd.Flags().Int("decimals", -1, "also render amounts in whole token units with this many decimals")
	cmd.Flags().String("follow", "", "decode lines appended to this file until interrupted")

	return cmd
}

func (a *app) runDecode(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}

	decimals, err := cmd.Flags().GetInt("decimals")
	if err != nil {
		return err
	}

	follow, err := cmd.Flags().GetString("follow")
	if err != nil {
		return err
	}

	p, err := newPrinter(cmd.OutOrStdout(), format, decimals)
	if err != nil {
		return err
	}

	decoder := esdt.NewDecoder(&a.logger)
	handle := func(data string) error {
		return p.print(data, decoder.Decode(data))
	}

	switch {
	case follow != "":
		if len(args) > 0 {
			return ErrFollowWithArgs
		}

		a.logger.Info().Str("file", follow).Msg("Following call data file")

		return followLines(cmd.Context(), follow, handle)
	case len(args) > 0:
		for _, data := range args {
			if err := handle(data); err != nil {
				return err
			}
		}

		return nil
	default:
		return decodeLines(cmd.InOrStdin(), handle)
	}
}

func decodeLines(r io.Reader, handle func(string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		if err := handle(scanner.Text()); err != nil {
			return err
		}
	}

	return scanner.Err()
}
