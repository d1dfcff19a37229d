package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is the typed HTTP client for the management API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			// Payment calls block until the payment resolves or the poll
			// deadline passes, so this is generous on purpose.
			Timeout: 60 * time.Second,
		},
	}
}

func (c *Client) GetInfo(ctx context.Context) (*GetInfoResponse, error) {
	var resp GetInfoResponse
	if err := c.get(ctx, "/api/v1/info", &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (c *Client) Balance(ctx context.Context) (*BalanceResponse, error) {
	var resp BalanceResponse
	if err := c.get(ctx, "/api/v1/balance", &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (c *Client) ListChannels(ctx context.Context) (*ListChannelsResponse, error) {
	var resp ListChannelsResponse
	if err := c.get(ctx, "/api/v1/channels", &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (c *Client) ListPeers(ctx context.Context) (*ListPeersResponse, error) {
	var resp ListPeersResponse
	if err := c.get(ctx, "/api/v1/peers", &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (c *Client) OpenChannel(ctx context.Context, req OpenChannelRequest) (*OpenChannelResponse, error) {
	var resp OpenChannelResponse
	if err := c.post(ctx, "/api/v1/channels/open", req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (c *Client) CloseChannel(ctx context.Context, req CloseChannelRequest) error {
	return c.post(ctx, "/api/v1/channels/close", req, &struct{}{})
}

func (c *Client) NewAddress(ctx context.Context) (*NewAddressResponse, error) {
	var resp NewAddressResponse
	if err := c.post(ctx, "/api/v1/address", struct{}{}, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (c *Client) SendOnchain(ctx context.Context, req SendOnchainRequest) (*SendOnchainResponse, error) {
	var resp SendOnchainResponse
	if err := c.post(ctx, "/api/v1/send-onchain", req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (c *Client) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*CreateInvoiceResponse, error) {
	var resp CreateInvoiceResponse
	if err := c.post(ctx, "/api/v1/invoices/bolt11", req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (c *Client) CreateOffer(ctx context.Context, req CreateOfferRequest) (*CreateOfferResponse, error) {
	var resp CreateOfferResponse
	if err := c.post(ctx, "/api/v1/invoices/bolt12", req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (c *Client) PayBolt11(ctx context.Context, req PayBolt11Request) (*PayResponse, error) {
	var resp PayResponse
	if err := c.post(ctx, "/api/v1/payments/bolt11", req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (c *Client) PayBolt12(ctx context.Context, req PayBolt12Request) (*PayResponse, error) {
	var resp PayResponse
	if err := c.post(ctx, "/api/v1/payments/bolt12", req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close() //nolint:errcheck

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		var apiErr errorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s: %s", res.Status, apiErr.Error)
		}

		return fmt.Errorf("%s: %s", res.Status, string(body))
	}

	return json.NewDecoder(res.Body).Decode(out)
}
