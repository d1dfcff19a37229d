// Package rpc exposes the management API of the daemon over HTTP/JSON and
// provides the typed client used by the CLI.
package rpc

// GetInfoResponse reports node identity and connectivity.
type GetInfoResponse struct {
	NodeID                string   `json:"node_id"`
	Alias                 string   `json:"alias,omitempty"`
	ListeningAddresses    []string `json:"listening_addresses,omitempty"`
	AnnouncementAddresses []string `json:"announcement_addresses,omitempty"`
	NumPeers              uint64   `json:"num_peers"`
	NumChannels           uint64   `json:"num_channels"`
}

// BalanceResponse reports node funds, all denominated in satoshis.
type BalanceResponse struct {
	TotalOnchainSat     uint64 `json:"total_onchain_sat"`
	SpendableOnchainSat uint64 `json:"spendable_onchain_sat"`
	TotalLightningSat   uint64 `json:"total_lightning_sat"`
}

// Channel is one channel in a ListChannelsResponse.
type Channel struct {
	ChannelID            string `json:"channel_id"`
	CounterpartyNodeID   string `json:"counterparty_node_id"`
	BalanceMsat          uint64 `json:"balance_msat"`
	OutboundCapacityMsat uint64 `json:"outbound_capacity_msat"`
	InboundCapacityMsat  uint64 `json:"inbound_capacity_msat"`
	IsUsable             bool   `json:"is_usable"`
	IsPublic             bool   `json:"is_public"`
	ShortChannelID       string `json:"short_channel_id,omitempty"`
}

type ListChannelsResponse struct {
	Channels []Channel `json:"channels"`
}

// Peer is one peer in a ListPeersResponse.
type Peer struct {
	NodeID      string `json:"node_id"`
	Address     string `json:"address,omitempty"`
	IsConnected bool   `json:"is_connected"`
}

type ListPeersResponse struct {
	Peers []Peer `json:"peers"`
}

type OpenChannelRequest struct {
	NodeID                string `json:"node_id"`
	Address               string `json:"address"`
	Port                  uint32 `json:"port"`
	AmountSat             uint64 `json:"amount_sat"`
	PushToCounterpartySat uint64 `json:"push_to_counterparty_sat,omitempty"`
}

type OpenChannelResponse struct {
	ChannelID string `json:"channel_id"`
}

type CloseChannelRequest struct {
	ChannelID          string `json:"channel_id"`
	CounterpartyNodeID string `json:"counterparty_node_id,omitempty"`
}

type NewAddressResponse struct {
	Address string `json:"address"`
}

type SendOnchainRequest struct {
	Address   string `json:"address"`
	AmountSat uint64 `json:"amount_sat"`
}

type SendOnchainResponse struct {
	Txid string `json:"txid"`
}

// CreateInvoiceRequest asks for a BOLT11 invoice. UnixExpiry is optional;
// the default invoice expiry applies when absent. Unit denominates Amount
// and defaults to msat.
type CreateInvoiceRequest struct {
	Amount      uint64  `json:"amount"`
	Unit        string  `json:"unit,omitempty"`
	Description string  `json:"description,omitempty"`
	UnixExpiry  *uint64 `json:"unix_expiry,omitempty"`
}

type CreateInvoiceResponse struct {
	Invoice         string  `json:"invoice"`
	RequestLookupID string  `json:"request_lookup_id"`
	Expiry          *uint64 `json:"expiry,omitempty"`
}

// CreateOfferRequest asks for a BOLT12 offer. A nil AmountMsat creates a
// variable-amount offer.
type CreateOfferRequest struct {
	AmountMsat  *uint64 `json:"amount_msat,omitempty"`
	Description string  `json:"description,omitempty"`
	UnixExpiry  *uint64 `json:"unix_expiry,omitempty"`
}

type CreateOfferResponse struct {
	Offer           string  `json:"offer"`
	RequestLookupID string  `json:"request_lookup_id"`
	Expiry          *uint64 `json:"expiry,omitempty"`
}

// PayBolt11Request pays an invoice. AmountMsat must be set for an
// amountless invoice and must be absent otherwise.
type PayBolt11Request struct {
	Invoice    string  `json:"invoice"`
	MaxFeeMsat *uint64 `json:"max_fee_msat,omitempty"`
	AmountMsat *uint64 `json:"amount_msat,omitempty"`
}

// PayBolt12Request pays an offer. OfferID keys the resulting payment and
// AmountMsat supplies the amount for a variable-amount offer.
type PayBolt12Request struct {
	Offer      string  `json:"offer"`
	OfferID    string  `json:"offer_id"`
	AmountMsat *uint64 `json:"amount_msat,omitempty"`
}

// PayResponse reports the outcome of a payment attempt. TotalSpentMsat
// includes routing fees.
type PayResponse struct {
	PaymentLookupID string `json:"payment_lookup_id"`
	Status          string `json:"status"`
	PaymentProof    string `json:"payment_proof,omitempty"`
	TotalSpentMsat  uint64 `json:"total_spent_msat"`
}

type errorResponse struct {
	Error string `json:"error"`
}
