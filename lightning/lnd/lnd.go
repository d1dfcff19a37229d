// Package lnd implements the node capability set against a remote lnd
// instance over gRPC. lnd keys payments by payment hash, so the node
// payment id and the payment hash coincide here.
package lnd

import (
	"context"
	"crypto/x509"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/lightningnetwork/lnd/lnrpc"
	"github.com/lightningnetwork/lnd/lnrpc/invoicesrpc"
	"github.com/lightningnetwork/lnd/lnrpc/routerrpc"
	"github.com/lightningnetwork/lnd/macaroons"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/status"
	"gopkg.in/macaroon.v2"

	"github.com/cashubtc/mintpayd/lightning"
	"github.com/cashubtc/mintpayd/lightning/node"
)

const (
	eventBufferSize    = 64
	paymentTimeoutSecs = 300
	resubscribeDelay   = 5 * time.Second
)

type Option func(*Options)

func WithEndpoint(endpoint string) Option {
	return func(o *Options) {
		o.endpoint = endpoint
	}
}

func WithMacaroonFilePath(path string) Option {
	return func(o *Options) {
		o.macaroonFilePath = path
	}
}

func WithTLSCertFilePath(path string) Option {
	return func(o *Options) {
		o.tlsCertFilePath = path
	}
}

func WithNetwork(network lightning.Network) Option {
	return func(o *Options) {
		o.network = network
	}
}

func WithFilesystem(fs afero.Fs) Option {
	return func(o *Options) {
		o.fs = fs
	}
}

type Options struct {
	endpoint         string
	macaroonFilePath string
	tlsCertFilePath  string
	network          lightning.Network
	fs               afero.Fs
}

// Node is a node.Node backed by lnd. lnd has no BOLT12 support, so the
// Bolt12 capability rejects every call.
type Node struct {
	lndClient       lnrpc.LightningClient
	routerClient    routerrpc.RouterClient
	invoicesClient  invoicesrpc.InvoicesClient
	closeConnection func()
	chainParams     *chaincfg.Params

	events chan node.Event

	// The settle index cursor: pendingSettleIndex is the index of the event
	// handed out by NextEvent, ackedSettleIndex the last acknowledged one.
	// Re-subscription resumes from the acked index so unacknowledged
	// settlements are replayed.
	mu                 sync.Mutex
	pendingSettleIndex uint64
	ackedSettleIndex   uint64

	subCtx    context.Context
	cancelSub context.CancelFunc
}

var _ node.Node = (*Node)(nil)

// New dials lnd using the macaroon and TLS cert at the configured paths.
// The connection is lazy; Start verifies it.
func New(opts ...Option) (*Node, error) {
	options := Options{
		network: lightning.Mainnet,
		fs:      afero.NewOsFs(),
	}
	for _, opt := range opts {
		opt(&options)
	}

	if options.endpoint == "" {
		options.endpoint = "localhost:10009"
	}
	if options.macaroonFilePath == "" {
		options.macaroonFilePath = "/root/.lnd/data/chain/bitcoin/{Network}/admin.macaroon"
	}
	if options.tlsCertFilePath == "" {
		options.tlsCertFilePath = "/root/.lnd/tls.cert"
	}
	options.macaroonFilePath = strings.Replace(options.macaroonFilePath, "{Network}", string(options.network), -1)

	macaroonFileBytes, err := afero.ReadFile(options.fs, options.macaroonFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed reading macaroon file: %w", err)
	}

	certBytes, err := afero.ReadFile(options.fs, options.tlsCertFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed reading TLS cert file: %w", err)
	}
	creds := credentials.NewClientTLSFromCert(loadCertPool(certBytes), "")

	mac := &macaroon.Macaroon{}
	if err := mac.UnmarshalBinary(macaroonFileBytes); err != nil {
		return nil, fmt.Errorf("failed unmarshalling macaroon: %w", err)
	}

	macCred, err := macaroons.NewMacaroonCredential(mac)
	if err != nil {
		return nil, fmt.Errorf("failed creating macaroon credentials: %w", err)
	}

	conn, err := grpc.NewClient(options.endpoint, grpc.WithTransportCredentials(creds), grpc.WithPerRPCCredentials(macCred))
	if err != nil {
		return nil, fmt.Errorf("failed connecting to LND node: %w", err)
	}

	subCtx, cancelSub := context.WithCancel(context.Background())

	return &Node{
		lndClient:      lnrpc.NewLightningClient(conn),
		routerClient:   routerrpc.NewRouterClient(conn),
		invoicesClient: invoicesrpc.NewInvoicesClient(conn),
		closeConnection: func() {
			if err := conn.Close(); err != nil {
				log.WithError(err).Error("error closing connection")
			}
		},
		chainParams: lightning.ToChainCfgNetwork(options.network),
		events:      make(chan node.Event, eventBufferSize),
		subCtx:      subCtx,
		cancelSub:   cancelSub,
	}, nil
}

func loadCertPool(certBytes []byte) *x509.CertPool {
	cp := x509.NewCertPool()
	cp.AppendCertsFromPEM(certBytes)

	return cp
}

// Start verifies connectivity and starts the invoice settlement
// subscription feeding NextEvent.
func (n *Node) Start(ctx context.Context) error {
	info, err := n.lndClient.GetInfo(ctx, &lnrpc.GetInfoRequest{})
	if err != nil {
		return fmt.Errorf("connecting to lnd: %w", err)
	}
	log.WithField("node_id", info.IdentityPubkey).Info("Connected to lnd")

	go n.subscribeInvoices(n.subCtx)

	return nil
}

// Stop cancels the settlement subscription and closes the connection.
func (n *Node) Stop() error {
	n.cancelSub()
	n.closeConnection()

	return nil
}

// subscribeInvoices streams settled invoices into the event channel,
// resuming from the acked settle index after stream failures.
func (n *Node) subscribeInvoices(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		n.mu.Lock()
		settleIndex := n.ackedSettleIndex
		n.mu.Unlock()

		stream, err := n.lndClient.SubscribeInvoices(ctx, &lnrpc.InvoiceSubscription{
			SettleIndex: settleIndex,
		})
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.WithError(err).Error("failed to subscribe to invoices, retrying")
			time.Sleep(resubscribeDelay)

			continue
		}

		for {
			invoice, err := stream.Recv()
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				log.WithError(err).Error("invoice subscription failed, resubscribing")
				time.Sleep(resubscribeDelay)

				break
			}

			if invoice.State != lnrpc.Invoice_SETTLED {
				continue
			}

			var hash [32]byte
			copy(hash[:], invoice.RHash)
			paymentID := node.PaymentID(hash)

			event := invoiceSettledEvent{
				PaymentReceivedEvent: node.PaymentReceivedEvent{
					PaymentID:   &paymentID,
					PaymentHash: hash,
					AmountMsat:  uint64(invoice.AmtPaidMsat), // nolint:gosec
				},
				settleIndex: invoice.SettleIndex,
			}

			select {
			case n.events <- event:
			case <-ctx.Done():
				return
			}
		}
	}
}

// invoiceSettledEvent carries the settle index alongside the event so the
// ack cursor can advance.
type invoiceSettledEvent struct {
	node.PaymentReceivedEvent
	settleIndex uint64
}

func (n *Node) NextEvent(ctx context.Context) (node.Event, error) {
	select {
	case event := <-n.events:
		if settled, ok := event.(invoiceSettledEvent); ok {
			n.mu.Lock()
			n.pendingSettleIndex = settled.settleIndex
			n.mu.Unlock()

			return settled.PaymentReceivedEvent, nil
		}

		return event, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (n *Node) EventHandled() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.pendingSettleIndex > n.ackedSettleIndex {
		n.ackedSettleIndex = n.pendingSettleIndex
	}

	return nil
}

// Payment looks up a payment by id. The id is the payment hash, so an
// invoice lookup is tried first, then the outgoing payment table.
func (n *Node) Payment(ctx context.Context, id node.PaymentID) (*node.PaymentRecord, error) {
	return n.FindPaymentByHash(ctx, [32]byte(id))
}

func (n *Node) FindPaymentByHash(ctx context.Context, hash [32]byte) (*node.PaymentRecord, error) {
	invoice, err := n.invoicesClient.LookupInvoiceV2(ctx, &invoicesrpc.LookupInvoiceMsg{
		InvoiceRef: &invoicesrpc.LookupInvoiceMsg_PaymentHash{
			PaymentHash: hash[:],
		},
	})
	switch {
	case err == nil:
		return invoiceRecord(invoice, hash), nil
	case status.Code(err) != codes.NotFound:
		return nil, fmt.Errorf("looking up invoice: %w", err)
	}

	payment, err := n.lookupOutgoingPayment(ctx, hash)
	if err != nil {
		return nil, err
	}

	return paymentRecord(payment, hash), nil
}

func (n *Node) lookupOutgoingPayment(ctx context.Context, hash [32]byte) (*lnrpc.Payment, error) {
	stream, err := n.routerClient.TrackPaymentV2(ctx, &routerrpc.TrackPaymentRequest{
		PaymentHash: hash[:],
	})
	if err != nil {
		return nil, fmt.Errorf("tracking payment: %w", err)
	}
	defer func() {
		if err := stream.CloseSend(); err != nil {
			log.WithError(err).Error("error closing stream for TrackPaymentV2")
		}
	}()

	payment, err := stream.Recv()
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, node.ErrPaymentNotFound
		}

		return nil, fmt.Errorf("tracking payment: %w", err)
	}

	return payment, nil
}

func invoiceRecord(invoice *lnrpc.Invoice, hash [32]byte) *node.PaymentRecord {
	kind := node.Bolt11Kind{Hash: hash}
	if len(invoice.RPreimage) == 32 {
		var preimage [32]byte
		copy(preimage[:], invoice.RPreimage)
		kind.Preimage = &preimage
	}

	var paymentStatus node.PaymentStatus
	amountMsat := uint64(invoice.ValueMsat) // nolint:gosec
	switch invoice.State {
	case lnrpc.Invoice_SETTLED:
		paymentStatus = node.StatusSucceeded
		amountMsat = uint64(invoice.AmtPaidMsat) // nolint:gosec
	case lnrpc.Invoice_CANCELED:
		paymentStatus = node.StatusFailed
	default:
		paymentStatus = node.StatusPending
	}

	return &node.PaymentRecord{
		ID:         node.PaymentID(hash),
		Kind:       kind,
		Status:     paymentStatus,
		Direction:  node.DirectionInbound,
		AmountMsat: &amountMsat,
	}
}

func paymentRecord(payment *lnrpc.Payment, hash [32]byte) *node.PaymentRecord {
	kind := node.Bolt11Kind{Hash: hash}
	if payment.PaymentPreimage != "" {
		preimageBytes, err := hex.DecodeString(payment.PaymentPreimage)
		if err == nil && len(preimageBytes) == 32 {
			var preimage [32]byte
			copy(preimage[:], preimageBytes)
			// lnd reports an all-zero preimage before settlement.
			if preimage != [32]byte{} {
				kind.Preimage = &preimage
			}
		}
	}

	var paymentStatus node.PaymentStatus
	switch payment.Status {
	case lnrpc.Payment_SUCCEEDED:
		paymentStatus = node.StatusSucceeded
	case lnrpc.Payment_FAILED:
		paymentStatus = node.StatusFailed
	default:
		paymentStatus = node.StatusPending
	}

	amountMsat := uint64(payment.ValueMsat) // nolint:gosec
	feeMsat := uint64(payment.FeeMsat)      // nolint:gosec

	return &node.PaymentRecord{
		ID:         node.PaymentID(hash),
		Kind:       kind,
		Status:     paymentStatus,
		Direction:  node.DirectionOutbound,
		AmountMsat: &amountMsat,
		FeeMsat:    &feeMsat,
	}
}

func (n *Node) Bolt11() node.Bolt11Payment {
	return &bolt11Payment{node: n}
}

func (n *Node) Bolt12() node.Bolt12Payment {
	return bolt12Unsupported{}
}

func (n *Node) Onchain() node.OnchainPayment {
	return &onchainPayment{node: n}
}

type bolt11Payment struct {
	node *Node
}

func (b *bolt11Payment) Receive(ctx context.Context, amountMsat uint64, description string, expirySecs uint32) (*node.Invoice, error) {
	res, err := b.node.lndClient.AddInvoice(ctx, &lnrpc.Invoice{
		ValueMsat: int64(amountMsat), // nolint:gosec
		Memo:      description,
		Expiry:    int64(expirySecs),
	})
	if err != nil {
		return nil, fmt.Errorf("adding invoice: %w", err)
	}

	var hash [32]byte
	copy(hash[:], res.RHash)

	return &node.Invoice{
		Bolt11:      res.PaymentRequest,
		PaymentHash: hash,
	}, nil
}

func (b *bolt11Payment) Send(ctx context.Context, bolt11 string, params *node.SendParameters) (node.PaymentID, error) {
	req := &routerrpc.SendPaymentRequest{
		PaymentRequest: bolt11,
		TimeoutSeconds: paymentTimeoutSecs,
	}
	if params != nil && params.MaxTotalRoutingFeeMsat != nil {
		req.FeeLimitMsat = int64(*params.MaxTotalRoutingFeeMsat) // nolint:gosec
	}

	return b.node.sendPayment(ctx, req)
}

func (b *bolt11Payment) SendUsingAmount(ctx context.Context, bolt11 string, amountMsat uint64, params *node.SendParameters) (node.PaymentID, error) {
	req := &routerrpc.SendPaymentRequest{
		PaymentRequest: bolt11,
		AmtMsat:        int64(amountMsat), // nolint:gosec
		TimeoutSeconds: paymentTimeoutSecs,
	}
	if params != nil && params.MaxTotalRoutingFeeMsat != nil {
		req.FeeLimitMsat = int64(*params.MaxTotalRoutingFeeMsat) // nolint:gosec
	}

	return b.node.sendPayment(ctx, req)
}

// sendPayment initiates the payment and returns once lnd has accepted it.
// The first stream update must be consumed or the payment is never
// initiated, see lnd issue 5035.
func (n *Node) sendPayment(ctx context.Context, req *routerrpc.SendPaymentRequest) (node.PaymentID, error) {
	stream, err := n.routerClient.SendPaymentV2(ctx, req)
	if err != nil {
		return node.PaymentID{}, fmt.Errorf("sending payment: %w", err)
	}

	update, err := stream.Recv()
	if err != nil {
		return node.PaymentID{}, fmt.Errorf("sending payment: %w", err)
	}

	if err := stream.CloseSend(); err != nil {
		log.WithError(err).Error("error closing stream for SendPaymentV2")
	}

	return node.PaymentIDFromHex(update.PaymentHash)
}

type bolt12Unsupported struct{}

func (bolt12Unsupported) Receive(context.Context, uint64, string, uint32) (*node.Offer, error) {
	return nil, fmt.Errorf("%w: bolt12 not supported by lnd", lightning.ErrUnsupportedPaymentOption)
}

func (bolt12Unsupported) ReceiveVariableAmount(context.Context, string, uint32) (*node.Offer, error) {
	return nil, fmt.Errorf("%w: bolt12 not supported by lnd", lightning.ErrUnsupportedPaymentOption)
}

func (bolt12Unsupported) Send(context.Context, string, string) (node.PaymentID, error) {
	return node.PaymentID{}, fmt.Errorf("%w: bolt12 not supported by lnd", lightning.ErrUnsupportedPaymentOption)
}

func (bolt12Unsupported) SendUsingAmount(context.Context, string, uint64) (node.PaymentID, error) {
	return node.PaymentID{}, fmt.Errorf("%w: bolt12 not supported by lnd", lightning.ErrUnsupportedPaymentOption)
}

type onchainPayment struct {
	node *Node
}

func (o *onchainPayment) NewAddress(ctx context.Context) (string, error) {
	res, err := o.node.lndClient.NewAddress(ctx, &lnrpc.NewAddressRequest{
		Type: lnrpc.AddressType_WITNESS_PUBKEY_HASH,
	})
	if err != nil {
		return "", fmt.Errorf("generating address: %w", err)
	}

	return res.Address, nil
}

func (o *onchainPayment) SendToAddress(ctx context.Context, address string, amountSat uint64) (string, error) {
	if _, err := btcutil.DecodeAddress(address, o.node.chainParams); err != nil {
		return "", fmt.Errorf("%w: %s", lightning.ErrInvalidAddress, address)
	}

	res, err := o.node.lndClient.SendCoins(ctx, &lnrpc.SendCoinsRequest{
		Addr:   address,
		Amount: int64(amountSat), // nolint:gosec
	})
	if err != nil {
		return "", fmt.Errorf("sending coins: %w", err)
	}

	return res.Txid, nil
}

func (n *Node) Info(ctx context.Context) (*node.Info, error) {
	res, err := n.lndClient.GetInfo(ctx, &lnrpc.GetInfoRequest{})
	if err != nil {
		return nil, fmt.Errorf("getting node info: %w", err)
	}

	return &node.Info{
		NodeID:                res.IdentityPubkey,
		Alias:                 res.Alias,
		ListeningAddresses:    res.Uris,
		AnnouncementAddresses: res.Uris,
		NumPeers:              uint64(res.NumPeers),
		NumChannels:           uint64(res.NumActiveChannels),
	}, nil
}

func (n *Node) Balances(ctx context.Context) (*node.Balances, error) {
	wallet, err := n.lndClient.WalletBalance(ctx, &lnrpc.WalletBalanceRequest{})
	if err != nil {
		return nil, fmt.Errorf("getting wallet balance: %w", err)
	}

	channels, err := n.lndClient.ChannelBalance(ctx, &lnrpc.ChannelBalanceRequest{})
	if err != nil {
		return nil, fmt.Errorf("getting channel balance: %w", err)
	}

	var lightningSat uint64
	if channels.LocalBalance != nil {
		lightningSat = channels.LocalBalance.Sat
	}

	return &node.Balances{
		TotalOnchainSat:     uint64(wallet.TotalBalance),     // nolint:gosec
		SpendableOnchainSat: uint64(wallet.ConfirmedBalance), // nolint:gosec
		TotalLightningSat:   lightningSat,
	}, nil
}

func (n *Node) ListChannels(ctx context.Context) ([]node.Channel, error) {
	res, err := n.lndClient.ListChannels(ctx, &lnrpc.ListChannelsRequest{})
	if err != nil {
		return nil, fmt.Errorf("listing channels: %w", err)
	}

	channels := make([]node.Channel, 0, len(res.Channels))
	for _, ch := range res.Channels {
		channels = append(channels, node.Channel{
			ChannelID:            ch.ChannelPoint,
			CounterpartyNodeID:   ch.RemotePubkey,
			BalanceMsat:          uint64(ch.LocalBalance) * 1000,  // nolint:gosec
			OutboundCapacityMsat: uint64(ch.LocalBalance) * 1000,  // nolint:gosec
			InboundCapacityMsat:  uint64(ch.RemoteBalance) * 1000, // nolint:gosec
			IsUsable:             ch.Active,
			IsPublic:             !ch.Private,
			ShortChannelID:       strconv.FormatUint(ch.ChanId, 10),
		})
	}

	return channels, nil
}

func (n *Node) ListPeers(ctx context.Context) ([]node.Peer, error) {
	res, err := n.lndClient.ListPeers(ctx, &lnrpc.ListPeersRequest{})
	if err != nil {
		return nil, fmt.Errorf("listing peers: %w", err)
	}

	peers := make([]node.Peer, 0, len(res.Peers))
	for _, p := range res.Peers {
		peers = append(peers, node.Peer{
			NodeID:      p.PubKey,
			Address:     p.Address,
			IsConnected: true,
		})
	}

	return peers, nil
}

func (n *Node) OpenChannel(ctx context.Context, req node.OpenChannelRequest) (string, error) {
	pubKey, err := lightning.ParsePubKey(req.NodeID)
	if err != nil {
		return "", fmt.Errorf("invalid node id: %w", err)
	}

	if req.Address != "" {
		_, err = n.lndClient.ConnectPeer(ctx, &lnrpc.ConnectPeerRequest{
			Addr: &lnrpc.LightningAddress{
				Pubkey: req.NodeID,
				Host:   fmt.Sprintf("%s:%d", req.Address, req.Port),
			},
		})
		if err != nil && status.Code(err) != codes.AlreadyExists {
			log.WithError(err).Warn("could not connect to peer, trying to open anyway")
		}
	}

	res, err := n.lndClient.OpenChannelSync(ctx, &lnrpc.OpenChannelRequest{
		NodePubkey:         pubKey.SerializeCompressed(),
		LocalFundingAmount: int64(req.AmountSat),             // nolint:gosec
		PushSat:            int64(req.PushToCounterpartySat), // nolint:gosec
	})
	if err != nil {
		return "", fmt.Errorf("opening channel: %w", err)
	}

	return channelPointString(res)
}

func (n *Node) CloseChannel(ctx context.Context, channelID, _ string) error {
	txid, outputIndex, err := parseChannelPoint(channelID)
	if err != nil {
		return err
	}

	stream, err := n.lndClient.CloseChannel(ctx, &lnrpc.CloseChannelRequest{
		ChannelPoint: &lnrpc.ChannelPoint{
			FundingTxid: &lnrpc.ChannelPoint_FundingTxidStr{FundingTxidStr: txid},
			OutputIndex: outputIndex,
		},
	})
	if err != nil {
		return fmt.Errorf("closing channel: %w", err)
	}

	// Wait for the close to be initiated before reporting success.
	if _, err := stream.Recv(); err != nil {
		return fmt.Errorf("closing channel: %w", err)
	}

	return nil
}

func channelPointString(cp *lnrpc.ChannelPoint) (string, error) {
	switch txid := cp.FundingTxid.(type) {
	case *lnrpc.ChannelPoint_FundingTxidStr:
		return fmt.Sprintf("%s:%d", txid.FundingTxidStr, cp.OutputIndex), nil
	case *lnrpc.ChannelPoint_FundingTxidBytes:
		// lnd reports the txid in little-endian byte order.
		hash, err := chainhash.NewHash(txid.FundingTxidBytes)
		if err != nil {
			return "", fmt.Errorf("invalid funding txid: %w", err)
		}

		return fmt.Sprintf("%s:%d", hash.String(), cp.OutputIndex), nil
	default:
		return "", fmt.Errorf("unknown channel point format")
	}
}

func parseChannelPoint(channelID string) (string, uint32, error) {
	parts := strings.SplitN(channelID, ":", 2)
	if len(parts) != 2 {
		return "", 0, fmt.Errorf("invalid channel id %q, want txid:index", channelID)
	}

	outputIndex, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return "", 0, fmt.Errorf("invalid channel output index: %w", err)
	}

	return parts[0], uint32(outputIndex), nil
}
