package lightning

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cashubtc/mintpayd/lightning/node"
)

func TestIdentifyPayment_Bolt11(t *testing.T) {
	var hash [32]byte
	hash[0] = 0xab
	hash[31] = 0x01

	id, display, err := IdentifyPayment(node.Bolt11Kind{Hash: hash})
	require.NoError(t, err)
	require.Equal(t, IdentifierPaymentHash, id.Kind())
	require.Equal(t, hash, id.Hash())
	require.Equal(t, hex.EncodeToString(hash[:]), display)
}

func TestIdentifyPayment_Bolt12(t *testing.T) {
	var hash [32]byte
	hash[5] = 0x42

	id, display, err := IdentifyPayment(node.Bolt12OfferKind{
		Hash:    &hash,
		OfferID: "offer-abc",
	})
	require.NoError(t, err)
	require.Equal(t, IdentifierOfferID, id.Kind())
	require.Equal(t, "offer-abc", id.ID())
	require.Equal(t, hex.EncodeToString(hash[:]), display)
}

func TestIdentifyPayment_Bolt12MissingHash(t *testing.T) {
	_, _, err := IdentifyPayment(node.Bolt12OfferKind{OfferID: "offer-abc"})
	require.ErrorIs(t, err, ErrMissingPaymentHash)
}

func TestIdentifyPayment_UnexpectedKind(t *testing.T) {
	_, _, err := IdentifyPayment(node.OnchainKind{Txid: "deadbeef"})
	require.ErrorIs(t, err, ErrUnexpectedPaymentKind)
}

func TestPaymentHashIdentifierFromHex(t *testing.T) {
	var hash [32]byte
	for i := range hash {
		hash[i] = byte(i)
	}

	id, err := PaymentHashIdentifierFromHex(hex.EncodeToString(hash[:]))
	require.NoError(t, err)
	require.Equal(t, hash, id.Hash())
	require.Equal(t, hex.EncodeToString(hash[:]), id.String())

	_, err = PaymentHashIdentifierFromHex("abcd")
	require.Error(t, err)

	_, err = PaymentHashIdentifierFromHex("zz")
	require.Error(t, err)
}
