package main

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/goccy/go-json"

	"github.com/0xAtelerix/esdt/library/errors"
	"github.com/0xAtelerix/esdt/library/esdt"
)

const ErrUnknownFormat = errors.SDKError("unknown output format")

const (
	formatText = "text"
	formatJSON = "json"
	formatCBOR = "cbor"
)

// result is one decoded line of output.
type result struct {
	Data        string `json:"data"                  cbor:"data"`
	TokenID     string `json:"tokenId"               cbor:"tokenId"`
	Amount      string `json:"amount"                cbor:"amount"`
	Denominated string `json:"denominated,omitempty" cbor:"denominated,omitempty"`
}

type printer struct {
	w        io.Writer
	format   string
	decimals int // negative when not requested

	jsonEnc *json.Encoder
	cborEnc *cbor.Encoder
}

func newPrinter(w io.Writer, format string, decimals int) (*printer, error) {
	p := &printer{w: w, format: format, decimals: decimals}

	switch format {
	case formatText:
	case formatJSON:
		p.jsonEnc = json.NewEncoder(w)
	case formatCBOR:
		p.cborEnc = cbor.NewEncoder(w)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if decimals > esdt.MaxDecimals {
		return nil, fmt.Errorf("%w: %d", esdt.ErrTooManyDecimals, decimals)
	}

	return p, nil
}

func (p *printer) print(data string, out esdt.TokenAmount) error {
	res := result{Data: data, TokenID: out.TokenID, Amount: out.Amount}

	if p.decimals >= 0 && !out.IsEmpty() {
		denominated, err := esdt.FormatAmount(out.Amount, uint8(p.decimals))
		if err != nil {
			return err
		}

		res.Denominated = denominated
	}

	switch p.format {
	case formatJSON:
		return p.jsonEnc.Encode(res)
	case formatCBOR:
		return p.cborEnc.Encode(res)
	default:
		return p.printText(res)
	}
}

func (p *printer) printText(res result) error {
	var err error

	switch {
	case res.TokenID == "":
		_, err = fmt.Fprintln(p.w, "-")
	case res.Denominated != "":
		_, err = fmt.Fprintf(p.w, "%s\t%s\t%s\n", res.TokenID, res.Amount, res.Denominated)
	default:
		_, err = fmt.Fprintf(p.w, "%s\t%s\n", res.TokenID, res.Amount)
	}

	return err
}
