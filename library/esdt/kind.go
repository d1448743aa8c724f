package esdt

import "strings"

type TransferKind uint8

const (
	None TransferKind = iota
	Fungible
	NonFungible
)

// Call signature markers.
const (
	MarkerTransfer    = "ESDTTransfer"
	MarkerNFTTransfer = "ESDTNFTTransfer"
)

const (
	fieldSeparator = "@"

	tokenIDField           = 1
	fungibleAmountField    = 2
	nonFungibleAmountField = 3 // index 2 holds the nonce
)

func (k TransferKind) String() string {
	switch k {
	case Fungible:
		return MarkerTransfer
	case NonFungible:
		return MarkerNFTTransfer
	default:
		return "none"
	}
}

// Classify reports which transfer the call data carries. The markers are
// matched anywhere in data, not only in the leading call signature field,
// and a fungible marker takes precedence when both are present.
func Classify(data string) TransferKind {
	if data == "" {
		return None
	}

	switch {
	case strings.Contains(data, MarkerTransfer):
		return Fungible
	case strings.Contains(data, MarkerNFTTransfer):
		return NonFungible
	default:
		return None
	}
}

// amountField returns the index of the amount argument for k.
func amountField(k TransferKind) (int, bool) {
	switch k {
	case Fungible:
		return fungibleAmountField, true
	case NonFungible:
		return nonFungibleAmountField, true
	default:
		return 0, false
	}
}
