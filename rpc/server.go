package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/cashubtc/mintpayd/lightning"
	"github.com/cashubtc/mintpayd/lightning/node"
	"github.com/cashubtc/mintpayd/money"
)

// Handler serves the management API. Payment operations go through the
// payment processor so they follow the exact same paths the mint uses;
// node management operations talk to the node directly.
type Handler struct {
	processor lightning.Processor
	node      node.Node
	mux       *http.ServeMux
}

func NewHandler(processor lightning.Processor, n node.Node) *Handler {
	h := &Handler{
		processor: processor,
		node:      n,
		mux:       http.NewServeMux(),
	}
	h.registerRoutes()

	return h
}

func (h *Handler) registerRoutes() {
	h.mux.HandleFunc("GET /api/v1/info", h.handleGetInfo)
	h.mux.HandleFunc("GET /api/v1/balance", h.handleBalance)
	h.mux.HandleFunc("GET /api/v1/channels", h.handleListChannels)
	h.mux.HandleFunc("GET /api/v1/peers", h.handleListPeers)
	h.mux.HandleFunc("POST /api/v1/channels/open", h.handleOpenChannel)
	h.mux.HandleFunc("POST /api/v1/channels/close", h.handleCloseChannel)
	h.mux.HandleFunc("POST /api/v1/address", h.handleNewAddress)
	h.mux.HandleFunc("POST /api/v1/send-onchain", h.handleSendOnchain)
	h.mux.HandleFunc("POST /api/v1/invoices/bolt11", h.handleCreateInvoice)
	h.mux.HandleFunc("POST /api/v1/invoices/bolt12", h.handleCreateOffer)
	h.mux.HandleFunc("POST /api/v1/payments/bolt11", h.handlePayBolt11)
	h.mux.HandleFunc("POST /api/v1/payments/bolt12", h.handlePayBolt12)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) handleGetInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.node.Info(r.Context())
	if err != nil {
		writeError(w, err)

		return
	}

	writeJSON(w, GetInfoResponse{
		NodeID:                info.NodeID,
		Alias:                 info.Alias,
		ListeningAddresses:    info.ListeningAddresses,
		AnnouncementAddresses: info.AnnouncementAddresses,
		NumPeers:              info.NumPeers,
		NumChannels:           info.NumChannels,
	})
}

func (h *Handler) handleBalance(w http.ResponseWriter, r *http.Request) {
	balances, err := h.node.Balances(r.Context())
	if err != nil {
		writeError(w, err)

		return
	}

	writeJSON(w, BalanceResponse{
		TotalOnchainSat:     balances.TotalOnchainSat,
		SpendableOnchainSat: balances.SpendableOnchainSat,
		TotalLightningSat:   balances.TotalLightningSat,
	})
}

func (h *Handler) handleListChannels(w http.ResponseWriter, r *http.Request) {
	channels, err := h.node.ListChannels(r.Context())
	if err != nil {
		writeError(w, err)

		return
	}

	resp := ListChannelsResponse{Channels: make([]Channel, 0, len(channels))}
	for _, ch := range channels {
		resp.Channels = append(resp.Channels, Channel{
			ChannelID:            ch.ChannelID,
			CounterpartyNodeID:   ch.CounterpartyNodeID,
			BalanceMsat:          ch.BalanceMsat,
			OutboundCapacityMsat: ch.OutboundCapacityMsat,
			InboundCapacityMsat:  ch.InboundCapacityMsat,
			IsUsable:             ch.IsUsable,
			IsPublic:             ch.IsPublic,
			ShortChannelID:       ch.ShortChannelID,
		})
	}

	writeJSON(w, resp)
}

func (h *Handler) handleListPeers(w http.ResponseWriter, r *http.Request) {
	peers, err := h.node.ListPeers(r.Context())
	if err != nil {
		writeError(w, err)

		return
	}

	resp := ListPeersResponse{Peers: make([]Peer, 0, len(peers))}
	for _, p := range peers {
		resp.Peers = append(resp.Peers, Peer{
			NodeID:      p.NodeID,
			Address:     p.Address,
			IsConnected: p.IsConnected,
		})
	}

	writeJSON(w, resp)
}

func (h *Handler) handleOpenChannel(w http.ResponseWriter, r *http.Request) {
	var req OpenChannelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")

		return
	}
	if req.NodeID == "" || req.AmountSat == 0 {
		writeBadRequest(w, "node_id and amount_sat are required")

		return
	}

	channelID, err := h.node.OpenChannel(r.Context(), node.OpenChannelRequest{
		NodeID:                req.NodeID,
		Address:               req.Address,
		Port:                  req.Port,
		AmountSat:             req.AmountSat,
		PushToCounterpartySat: req.PushToCounterpartySat,
	})
	if err != nil {
		writeError(w, err)

		return
	}

	writeJSON(w, OpenChannelResponse{ChannelID: channelID})
}

func (h *Handler) handleCloseChannel(w http.ResponseWriter, r *http.Request) {
	var req CloseChannelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")

		return
	}
	if req.ChannelID == "" {
		writeBadRequest(w, "channel_id is required")

		return
	}

	if err := h.node.CloseChannel(r.Context(), req.ChannelID, req.CounterpartyNodeID); err != nil {
		writeError(w, err)

		return
	}

	writeJSON(w, struct{}{})
}

func (h *Handler) handleNewAddress(w http.ResponseWriter, r *http.Request) {
	address, err := h.node.Onchain().NewAddress(r.Context())
	if err != nil {
		writeError(w, err)

		return
	}

	writeJSON(w, NewAddressResponse{Address: address})
}

func (h *Handler) handleSendOnchain(w http.ResponseWriter, r *http.Request) {
	var req SendOnchainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")

		return
	}
	if req.Address == "" || req.AmountSat == 0 {
		writeBadRequest(w, "address and amount_sat are required")

		return
	}

	txid, err := h.node.Onchain().SendToAddress(r.Context(), req.Address, req.AmountSat)
	if err != nil {
		writeError(w, err)

		return
	}

	writeJSON(w, SendOnchainResponse{Txid: txid})
}

func (h *Handler) handleCreateInvoice(w http.ResponseWriter, r *http.Request) {
	var req CreateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")

		return
	}
	if req.Amount == 0 {
		writeBadRequest(w, "amount is required")

		return
	}

	unit := money.Msat
	if req.Unit != "" {
		var err error
		unit, err = money.ParseUnit(req.Unit)
		if err != nil {
			writeBadRequest(w, err.Error())

			return
		}
	}

	resp, err := h.processor.CreateIncomingPaymentRequest(r.Context(), unit, lightning.IncomingPaymentOptions{
		Bolt11: &lightning.Bolt11IncomingOptions{
			Amount:      money.Amount(req.Amount),
			Description: req.Description,
			UnixExpiry:  req.UnixExpiry,
		},
	})
	if err != nil {
		writeError(w, err)

		return
	}

	writeJSON(w, CreateInvoiceResponse{
		Invoice:         resp.Request,
		RequestLookupID: resp.RequestLookupID.String(),
		Expiry:          resp.Expiry,
	})
}

func (h *Handler) handleCreateOffer(w http.ResponseWriter, r *http.Request) {
	var req CreateOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")

		return
	}

	var amount *money.Amount
	if req.AmountMsat != nil {
		a := money.Amount(*req.AmountMsat)
		amount = &a
	}

	resp, err := h.processor.CreateIncomingPaymentRequest(r.Context(), money.Msat, lightning.IncomingPaymentOptions{
		Bolt12: &lightning.Bolt12IncomingOptions{
			Amount:      amount,
			Description: req.Description,
			UnixExpiry:  req.UnixExpiry,
		},
	})
	if err != nil {
		writeError(w, err)

		return
	}

	writeJSON(w, CreateOfferResponse{
		Offer:           resp.Request,
		RequestLookupID: resp.RequestLookupID.String(),
		Expiry:          resp.Expiry,
	})
}

func (h *Handler) handlePayBolt11(w http.ResponseWriter, r *http.Request) {
	var req PayBolt11Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")

		return
	}
	if req.Invoice == "" {
		writeBadRequest(w, "invoice is required")

		return
	}

	opts := &lightning.Bolt11OutgoingOptions{Invoice: req.Invoice}
	if req.MaxFeeMsat != nil {
		maxFee := money.Amount(*req.MaxFeeMsat)
		opts.MaxFeeAmount = &maxFee
	}
	if req.AmountMsat != nil {
		opts.Melt = &lightning.MeltOptions{
			Amountless: &lightning.AmountlessOption{AmountMsat: money.Amount(*req.AmountMsat)},
		}
	}

	resp, err := h.processor.MakePayment(r.Context(), money.Msat, lightning.OutgoingPaymentOptions{Bolt11: opts})
	if err != nil {
		writeError(w, err)

		return
	}

	writeJSON(w, payResponse(resp))
}

func (h *Handler) handlePayBolt12(w http.ResponseWriter, r *http.Request) {
	var req PayBolt12Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")

		return
	}
	if req.Offer == "" || req.OfferID == "" {
		writeBadRequest(w, "offer and offer_id are required")

		return
	}

	opts := &lightning.Bolt12OutgoingOptions{Offer: req.Offer, OfferID: req.OfferID}
	if req.AmountMsat != nil {
		amount := money.Amount(*req.AmountMsat)
		opts.AmountMsat = &amount
		opts.Melt = &lightning.MeltOptions{
			Amountless: &lightning.AmountlessOption{AmountMsat: amount},
		}
	}

	resp, err := h.processor.MakePayment(r.Context(), money.Msat, lightning.OutgoingPaymentOptions{Bolt12: opts})
	if err != nil {
		writeError(w, err)

		return
	}

	writeJSON(w, payResponse(resp))
}

func payResponse(resp *lightning.MakePaymentResponse) PayResponse {
	return PayResponse{
		PaymentLookupID: resp.PaymentLookupID.String(),
		Status:          string(resp.Status),
		PaymentProof:    resp.PaymentProof,
		TotalSpentMsat:  uint64(resp.TotalSpent),
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("failed to encode response")
	}
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	if err := json.NewEncoder(w).Encode(errorResponse{Error: msg}); err != nil {
		log.WithError(err).Error("failed to encode error response")
	}
}

// writeError maps domain errors to HTTP status codes. Caller mistakes are
// 4xx, everything else is a 500.
func writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, lightning.ErrPaymentNotFound):
		code = http.StatusNotFound
	case errors.Is(err, lightning.ErrInvalidPaymentDirection),
		errors.Is(err, lightning.ErrUnsupportedPaymentOption),
		errors.Is(err, lightning.ErrUnsupportedPaymentIdentifier),
		errors.Is(err, lightning.ErrInvalidDescription),
		errors.Is(err, lightning.ErrInvalidAddress),
		errors.Is(err, lightning.ErrAmountConversion):
		code = http.StatusBadRequest
	}

	if code == http.StatusInternalServerError {
		log.WithError(err).Error("management request failed")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(errorResponse{Error: err.Error()}); err != nil {
		log.WithError(err).Error("failed to encode error response")
	}
}

// Serve runs the management API on addr until ctx is cancelled, then shuts
// down gracefully.
func Serve(ctx context.Context, addr string, handler *Handler) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("Management API listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("management server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down management server: %w", err)
	}
	log.Info("Management API stopped")

	return nil
}
