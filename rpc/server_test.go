package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/cashubtc/mintpayd/lightning"
	"github.com/cashubtc/mintpayd/lightning/node"
	"github.com/cashubtc/mintpayd/money"
)

// fakeProcessor scripts payment operations for handler tests.
type fakeProcessor struct {
	createResp *lightning.CreateIncomingPaymentResponse
	createErr  error
	createOpts lightning.IncomingPaymentOptions
	createUnit money.Unit

	payResp *lightning.MakePaymentResponse
	payErr  error
	payOpts lightning.OutgoingPaymentOptions
}

func (f *fakeProcessor) Settings() lightning.Settings {
	return lightning.Settings{Unit: money.Sat, InvoiceDescription: true}
}

func (f *fakeProcessor) CreateIncomingPaymentRequest(_ context.Context, unit money.Unit, opts lightning.IncomingPaymentOptions) (*lightning.CreateIncomingPaymentResponse, error) {
	f.createOpts = opts
	f.createUnit = unit

	return f.createResp, f.createErr
}

func (f *fakeProcessor) GetPaymentQuote(context.Context, money.Unit, lightning.OutgoingPaymentOptions) (*lightning.PaymentQuoteResponse, error) {
	return nil, nil
}

func (f *fakeProcessor) MakePayment(_ context.Context, _ money.Unit, opts lightning.OutgoingPaymentOptions) (*lightning.MakePaymentResponse, error) {
	f.payOpts = opts

	return f.payResp, f.payErr
}

func (f *fakeProcessor) WaitAnyIncomingPayment(context.Context) (<-chan lightning.WaitPaymentResponse, error) {
	return nil, nil
}

func (f *fakeProcessor) IsWaitInvoiceActive() bool { return false }
func (f *fakeProcessor) CancelWaitInvoice()        {}

func (f *fakeProcessor) CheckIncomingPaymentStatus(context.Context, lightning.PaymentIdentifier) ([]lightning.WaitPaymentResponse, error) {
	return nil, nil
}

func (f *fakeProcessor) CheckOutgoingPayment(context.Context, lightning.PaymentIdentifier) (*lightning.MakePaymentResponse, error) {
	return nil, nil
}

func postJSON(t *testing.T, handler http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return rec
}

func TestHandler_GetInfo(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockNode := node.NewMockNode(ctrl)
	handler := NewHandler(&fakeProcessor{}, mockNode)

	mockNode.EXPECT().Info(gomock.Any()).Return(&node.Info{
		NodeID:      "02abcdef",
		Alias:       "mintpay",
		NumPeers:    3,
		NumChannels: 2,
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/info", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp GetInfoResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, "02abcdef", resp.NodeID)
	require.Equal(t, uint64(3), resp.NumPeers)
}

func TestHandler_Balance(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockNode := node.NewMockNode(ctrl)
	handler := NewHandler(&fakeProcessor{}, mockNode)

	mockNode.EXPECT().Balances(gomock.Any()).Return(&node.Balances{
		TotalOnchainSat:     100_000,
		SpendableOnchainSat: 90_000,
		TotalLightningSat:   50_000,
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/balance", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp BalanceResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, uint64(50_000), resp.TotalLightningSat)
}

func TestHandler_ListChannels(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockNode := node.NewMockNode(ctrl)
	handler := NewHandler(&fakeProcessor{}, mockNode)

	mockNode.EXPECT().ListChannels(gomock.Any()).Return([]node.Channel{
		{ChannelID: "abc:0", CounterpartyNodeID: "02peer", BalanceMsat: 1_000_000, IsUsable: true},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/channels", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ListChannelsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Channels, 1)
	require.Equal(t, "abc:0", resp.Channels[0].ChannelID)
}

func TestHandler_ListPeers(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockNode := node.NewMockNode(ctrl)
	handler := NewHandler(&fakeProcessor{}, mockNode)

	mockNode.EXPECT().ListPeers(gomock.Any()).Return([]node.Peer{
		{NodeID: "02peer", Address: "1.2.3.4:9735", IsConnected: true},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/peers", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ListPeersResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Peers, 1)
	require.Equal(t, "02peer", resp.Peers[0].NodeID)
	require.True(t, resp.Peers[0].IsConnected)
}

func TestHandler_OpenChannelValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	handler := NewHandler(&fakeProcessor{}, node.NewMockNode(ctrl))

	rec := postJSON(t, handler, "/api/v1/channels/open", OpenChannelRequest{Address: "host"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_CreateInvoice(t *testing.T) {
	ctrl := gomock.NewController(t)
	var hash [32]byte
	hash[0] = 0x77

	expiry := uint64(1_700_000_000)
	processor := &fakeProcessor{
		createResp: &lightning.CreateIncomingPaymentResponse{
			RequestLookupID: lightning.NewPaymentHashIdentifier(hash),
			Request:         "lnbc1...",
			Expiry:          &expiry,
		},
	}
	handler := NewHandler(processor, node.NewMockNode(ctrl))

	rec := postJSON(t, handler, "/api/v1/invoices/bolt11", CreateInvoiceRequest{
		Amount:      21_000,
		Description: "mint quote",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp CreateInvoiceResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, "lnbc1...", resp.Invoice)
	require.Equal(t, expiry, *resp.Expiry)

	require.NotNil(t, processor.createOpts.Bolt11)
	require.Equal(t, money.Amount(21_000), processor.createOpts.Bolt11.Amount)
	require.Equal(t, money.Msat, processor.createUnit)
}

func TestHandler_CreateInvoiceSatUnit(t *testing.T) {
	ctrl := gomock.NewController(t)
	processor := &fakeProcessor{
		createResp: &lightning.CreateIncomingPaymentResponse{Request: "lnbc1..."},
	}
	handler := NewHandler(processor, node.NewMockNode(ctrl))

	rec := postJSON(t, handler, "/api/v1/invoices/bolt11", CreateInvoiceRequest{
		Amount: 21,
		Unit:   "sat",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, money.Sat, processor.createUnit)
	require.Equal(t, money.Amount(21), processor.createOpts.Bolt11.Amount)
}

func TestHandler_CreateInvoiceUnknownUnit(t *testing.T) {
	ctrl := gomock.NewController(t)
	handler := NewHandler(&fakeProcessor{}, node.NewMockNode(ctrl))

	rec := postJSON(t, handler, "/api/v1/invoices/bolt11", CreateInvoiceRequest{
		Amount: 21,
		Unit:   "wumbo",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_CreateInvoiceRequiresAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	handler := NewHandler(&fakeProcessor{}, node.NewMockNode(ctrl))

	rec := postJSON(t, handler, "/api/v1/invoices/bolt11", CreateInvoiceRequest{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_CreateOfferVariableAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	processor := &fakeProcessor{
		createResp: &lightning.CreateIncomingPaymentResponse{
			RequestLookupID: lightning.NewOfferIdentifier("offer-1"),
			Request:         "lno1...",
		},
	}
	handler := NewHandler(processor, node.NewMockNode(ctrl))

	rec := postJSON(t, handler, "/api/v1/invoices/bolt12", CreateOfferRequest{Description: "any"})
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, processor.createOpts.Bolt12)
	require.Nil(t, processor.createOpts.Bolt12.Amount)
}

func TestHandler_PayBolt11(t *testing.T) {
	ctrl := gomock.NewController(t)
	var hash [32]byte
	hash[0] = 0x88

	processor := &fakeProcessor{
		payResp: &lightning.MakePaymentResponse{
			PaymentLookupID: lightning.NewPaymentHashIdentifier(hash),
			PaymentProof:    "preimage",
			Status:          lightning.StatePaid,
			TotalSpent:      5_010,
			Unit:            money.Msat,
		},
	}
	handler := NewHandler(processor, node.NewMockNode(ctrl))

	maxFee := uint64(100)
	rec := postJSON(t, handler, "/api/v1/payments/bolt11", PayBolt11Request{
		Invoice:    "lnbc1...",
		MaxFeeMsat: &maxFee,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp PayResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, "PAID", resp.Status)
	require.Equal(t, uint64(5_010), resp.TotalSpentMsat)

	require.NotNil(t, processor.payOpts.Bolt11)
	require.Equal(t, money.Amount(100), *processor.payOpts.Bolt11.MaxFeeAmount)
	require.Nil(t, processor.payOpts.Bolt11.Melt)
}

func TestHandler_PayBolt11ErrorMapping(t *testing.T) {
	ctrl := gomock.NewController(t)

	tests := []struct {
		name string
		err  error
		code int
	}{
		{name: "unsupported option", err: lightning.ErrUnsupportedPaymentOption, code: http.StatusBadRequest},
		{name: "not found", err: lightning.ErrPaymentNotFound, code: http.StatusNotFound},
		{name: "internal", err: context.DeadlineExceeded, code: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHandler(&fakeProcessor{payErr: tt.err}, node.NewMockNode(ctrl))

			rec := postJSON(t, handler, "/api/v1/payments/bolt11", PayBolt11Request{Invoice: "lnbc1..."})
			require.Equal(t, tt.code, rec.Code)

			var resp errorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			require.NotEmpty(t, resp.Error)
		})
	}
}

func TestHandler_PayBolt12(t *testing.T) {
	ctrl := gomock.NewController(t)
	processor := &fakeProcessor{
		payResp: &lightning.MakePaymentResponse{
			PaymentLookupID: lightning.NewOfferIdentifier("offer-2"),
			Status:          lightning.StatePending,
			TotalSpent:      1_000,
			Unit:            money.Msat,
		},
	}
	handler := NewHandler(processor, node.NewMockNode(ctrl))

	amount := uint64(1_000)
	rec := postJSON(t, handler, "/api/v1/payments/bolt12", PayBolt12Request{
		Offer:      "lno1...",
		OfferID:    "offer-2",
		AmountMsat: &amount,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, processor.payOpts.Bolt12)
	require.Equal(t, "offer-2", processor.payOpts.Bolt12.OfferID)
	require.NotNil(t, processor.payOpts.Bolt12.Melt)
}

func TestClient_RoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockNode := node.NewMockNode(ctrl)
	mockOnchain := node.NewMockOnchainPayment(ctrl)
	handler := NewHandler(&fakeProcessor{}, mockNode)

	server := httptest.NewServer(handler)
	defer server.Close()

	client := NewClient(server.URL)

	mockNode.EXPECT().Info(gomock.Any()).Return(&node.Info{NodeID: "02abc"}, nil)
	info, err := client.GetInfo(context.Background())
	require.NoError(t, err)
	require.Equal(t, "02abc", info.NodeID)

	mockNode.EXPECT().Onchain().Return(mockOnchain)
	mockOnchain.EXPECT().NewAddress(gomock.Any()).Return("bcrt1qaddress", nil)
	address, err := client.NewAddress(context.Background())
	require.NoError(t, err)
	require.Equal(t, "bcrt1qaddress", address.Address)

	mockNode.EXPECT().Balances(gomock.Any()).Return(nil, context.DeadlineExceeded)
	_, err = client.Balance(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "500")
}
