package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/cashubtc/mintpayd/money"
	"github.com/cashubtc/mintpayd/rpc"

	_ "github.com/cashubtc/mintpayd/logging"
)

func main() {
	app := &cli.Command{
		Name:  "mintpayctl",
		Usage: "Control the mintpayd daemon",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "address",
				Aliases: []string{"a"},
				Usage:   "Base URL of the mintpayd management API",
				Value:   "http://127.0.0.1:8089",
			},
		},
		Commands: []*cli.Command{
			getInfoCommand(),
			getNewAddressCommand(),
			openChannelCommand(),
			closeChannelCommand(),
			listBalanceCommand(),
			listChannelsCommand(),
			listPeersCommand(),
			sendOnchainCommand(),
			payBolt11Command(),
			payBolt12Command(),
			createBolt11InvoiceCommand(),
			createBolt12OfferCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func client(cmd *cli.Command) *rpc.Client {
	return rpc.NewClient(cmd.String("address"))
}

func getInfoCommand() *cli.Command {
	return &cli.Command{
		Name:  "get-info",
		Usage: "Get node info",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			info, err := client(cmd).GetInfo(ctx)
			if err != nil {
				return err
			}

			fmt.Println("Node Information:")
			fmt.Println("----------------")
			fmt.Printf("Node ID: %s\n", info.NodeID)
			fmt.Printf("Alias: %s\n", info.Alias)
			fmt.Printf("Listening Addresses: %s\n", strings.Join(info.ListeningAddresses, ", "))
			fmt.Printf("Announcement Addresses: %s\n", strings.Join(info.AnnouncementAddresses, ", "))
			fmt.Printf("Peer count: %d\n", info.NumPeers)
			fmt.Printf("Channel count: %d\n", info.NumChannels)

			return nil
		},
	}
}

func getNewAddressCommand() *cli.Command {
	return &cli.Command{
		Name:  "get-new-address",
		Usage: "Get a new bitcoin address",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			resp, err := client(cmd).NewAddress(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("New address: %s\n", resp.Address)

			return nil
		},
	}
}

func openChannelCommand() *cli.Command {
	return &cli.Command{
		Name:  "open-channel",
		Usage: "Open a new channel",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "node-id", Usage: "Counterparty node public key", Required: true},
			&cli.StringFlag{Name: "host", Usage: "Counterparty host", Required: true},
			&cli.UintFlag{Name: "port", Usage: "Counterparty port", Value: 9735},
			&cli.UintFlag{Name: "amount-sat", Usage: "Channel capacity in satoshis", Required: true},
			&cli.UintFlag{Name: "push-sat", Usage: "Amount to push to the counterparty in satoshis"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			resp, err := client(cmd).OpenChannel(ctx, rpc.OpenChannelRequest{
				NodeID:                cmd.String("node-id"),
				Address:               cmd.String("host"),
				Port:                  uint32(cmd.Uint("port")), //nolint:gosec
				AmountSat:             cmd.Uint("amount-sat"),
				PushToCounterpartySat: cmd.Uint("push-sat"),
			})
			if err != nil {
				return err
			}

			fmt.Printf("Opened channel with ID: %s\n", resp.ChannelID)

			return nil
		},
	}
}

func closeChannelCommand() *cli.Command {
	return &cli.Command{
		Name:  "close-channel",
		Usage: "Close a channel",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "channel-id", Usage: "Channel id as printed by list-channels", Required: true},
			&cli.StringFlag{Name: "node-id", Usage: "Counterparty node public key"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			err := client(cmd).CloseChannel(ctx, rpc.CloseChannelRequest{
				ChannelID:          cmd.String("channel-id"),
				CounterpartyNodeID: cmd.String("node-id"),
			})
			if err != nil {
				return err
			}

			fmt.Println("Channel closed successfully")

			return nil
		},
	}
}

func listBalanceCommand() *cli.Command {
	return &cli.Command{
		Name:  "list-balance",
		Usage: "List balances",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			balance, err := client(cmd).Balance(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("Total onchain balance (sats): %d (%s BTC)\n",
				balance.TotalOnchainSat, money.Amount(balance.TotalOnchainSat).ToBtc())
			fmt.Printf("Spendable onchain balance (sats): %d (%s BTC)\n",
				balance.SpendableOnchainSat, money.Amount(balance.SpendableOnchainSat).ToBtc())
			fmt.Printf("Total lightning balance (sats): %d (%s BTC)\n",
				balance.TotalLightningSat, money.Amount(balance.TotalLightningSat).ToBtc())

			return nil
		},
	}
}

func listChannelsCommand() *cli.Command {
	return &cli.Command{
		Name:  "list-channels",
		Usage: "List channels",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			resp, err := client(cmd).ListChannels(ctx)
			if err != nil {
				return err
			}

			fmt.Println("Lightning Channels:")
			fmt.Println("-----------------")

			if len(resp.Channels) == 0 {
				fmt.Println("No channels found.")

				return nil
			}

			for i, channel := range resp.Channels {
				fmt.Printf("Channel #%d:\n", i+1)
				fmt.Printf("  ID: %s\n", channel.ChannelID)
				fmt.Printf("  Counterparty: %s\n", channel.CounterpartyNodeID)
				fmt.Printf("  Balance (msats): %d\n", channel.BalanceMsat)
				fmt.Printf("  Outbound capacity (msats): %d\n", channel.OutboundCapacityMsat)
				fmt.Printf("  Inbound capacity (msats): %d\n", channel.InboundCapacityMsat)
				fmt.Printf("  Usable: %t\n", channel.IsUsable)
				fmt.Printf("  Public: %t\n", channel.IsPublic)
				if channel.ShortChannelID != "" {
					fmt.Printf("  Short channel ID: %s\n", channel.ShortChannelID)
				}
			}

			return nil
		},
	}
}

func listPeersCommand() *cli.Command {
	return &cli.Command{
		Name:  "list-peers",
		Usage: "List peers",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			resp, err := client(cmd).ListPeers(ctx)
			if err != nil {
				return err
			}

			if len(resp.Peers) == 0 {
				fmt.Println("No peers found.")

				return nil
			}

			for _, peer := range resp.Peers {
				fmt.Printf("%s", peer.NodeID)
				if peer.Address != "" {
					fmt.Printf(" @ %s", peer.Address)
				}
				if peer.IsConnected {
					fmt.Print(" (connected)")
				}
				fmt.Println()
			}

			return nil
		},
	}
}

func sendOnchainCommand() *cli.Command {
	return &cli.Command{
		Name:  "send-onchain",
		Usage: "Send bitcoin on-chain",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "address", Usage: "Destination address", Required: true},
			&cli.UintFlag{Name: "amount-sat", Usage: "Amount in satoshis"},
			&cli.StringFlag{Name: "amount-btc", Usage: "Amount in BTC, alternative to amount-sat"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			amountSat := cmd.Uint("amount-sat")
			if btc := cmd.String("amount-btc"); btc != "" {
				if amountSat != 0 {
					return fmt.Errorf("amount-sat and amount-btc are mutually exclusive")
				}

				d, err := decimal.NewFromString(btc)
				if err != nil {
					return fmt.Errorf("invalid amount-btc: %w", err)
				}
				amount, err := money.NewFromBtc(d)
				if err != nil {
					return fmt.Errorf("invalid amount-btc: %w", err)
				}
				amountSat = uint64(amount)
			}
			if amountSat == 0 {
				return fmt.Errorf("one of amount-sat or amount-btc is required")
			}

			resp, err := client(cmd).SendOnchain(ctx, rpc.SendOnchainRequest{
				Address:   cmd.String("address"),
				AmountSat: amountSat,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Transaction sent with txid: %s\n", resp.Txid)

			return nil
		},
	}
}

func payBolt11Command() *cli.Command {
	return &cli.Command{
		Name:  "pay-bolt11",
		Usage: "Pay a bolt11 invoice",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "invoice", Usage: "BOLT11 invoice to pay", Required: true},
			&cli.UintFlag{Name: "amount-msat", Usage: "Amount in millisatoshis, required for amountless invoices"},
			&cli.UintFlag{Name: "max-fee-msat", Usage: "Maximum routing fee in millisatoshis"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			req := rpc.PayBolt11Request{Invoice: cmd.String("invoice")}
			if amount := cmd.Uint("amount-msat"); amount > 0 {
				req.AmountMsat = &amount
			}
			if maxFee := cmd.Uint("max-fee-msat"); maxFee > 0 {
				req.MaxFeeMsat = &maxFee
			}

			resp, err := client(cmd).PayBolt11(ctx, req)
			if err != nil {
				return err
			}

			printPayResponse(resp)

			return nil
		},
	}
}

func payBolt12Command() *cli.Command {
	return &cli.Command{
		Name:  "pay-bolt12",
		Usage: "Pay a bolt12 offer",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "offer", Usage: "BOLT12 offer to pay", Required: true},
			&cli.StringFlag{Name: "offer-id", Usage: "Offer id used to look up the payment afterwards", Required: true},
			&cli.UintFlag{Name: "amount-msat", Usage: "Amount in millisatoshis, required for variable-amount offers"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			req := rpc.PayBolt12Request{
				Offer:   cmd.String("offer"),
				OfferID: cmd.String("offer-id"),
			}
			if amount := cmd.Uint("amount-msat"); amount > 0 {
				req.AmountMsat = &amount
			}

			resp, err := client(cmd).PayBolt12(ctx, req)
			if err != nil {
				return err
			}

			printPayResponse(resp)

			return nil
		},
	}
}

func createBolt11InvoiceCommand() *cli.Command {
	return &cli.Command{
		Name:  "create-bolt11-invoice",
		Usage: "Create a BOLT11 invoice",
		Flags: []cli.Flag{
			&cli.UintFlag{Name: "amount-msat", Usage: "Amount in millisatoshis", Required: true},
			&cli.StringFlag{Name: "description", Usage: "Invoice description"},
			&cli.UintFlag{Name: "expiry-seconds", Usage: "Invoice expiry in seconds from now"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			req := rpc.CreateInvoiceRequest{
				Amount:      cmd.Uint("amount-msat"),
				Unit:        string(money.Msat),
				Description: cmd.String("description"),
			}
			if secs := cmd.Uint("expiry-seconds"); secs > 0 {
				expiry := uint64(time.Now().Unix()) + secs //nolint:gosec
				req.UnixExpiry = &expiry
			}

			resp, err := client(cmd).CreateInvoice(ctx, req)
			if err != nil {
				return err
			}

			fmt.Println("Invoice created successfully!")
			fmt.Printf("Payment hash: %s\n", resp.RequestLookupID)
			fmt.Printf("Invoice: %s\n", resp.Invoice)
			if resp.Expiry != nil {
				fmt.Printf("Expires: %s\n", time.Unix(int64(*resp.Expiry), 0)) //nolint:gosec
			}

			return nil
		},
	}
}

func createBolt12OfferCommand() *cli.Command {
	return &cli.Command{
		Name:  "create-bolt12-offer",
		Usage: "Create a BOLT12 offer",
		Flags: []cli.Flag{
			&cli.UintFlag{Name: "amount-msat", Usage: "Amount in millisatoshis, omit for a variable-amount offer"},
			&cli.StringFlag{Name: "description", Usage: "Offer description"},
			&cli.UintFlag{Name: "expiry-seconds", Usage: "Offer expiry in seconds from now"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			var req rpc.CreateOfferRequest
			req.Description = cmd.String("description")
			if amount := cmd.Uint("amount-msat"); amount > 0 {
				req.AmountMsat = &amount
			}
			if secs := cmd.Uint("expiry-seconds"); secs > 0 {
				expiry := uint64(time.Now().Unix()) + secs //nolint:gosec
				req.UnixExpiry = &expiry
			}

			resp, err := client(cmd).CreateOffer(ctx, req)
			if err != nil {
				return err
			}

			fmt.Println("Offer created successfully!")
			fmt.Printf("Offer ID: %s\n", resp.RequestLookupID)
			fmt.Printf("Offer: %s\n", resp.Offer)
			if resp.Expiry != nil {
				fmt.Printf("Expires: %s\n", time.Unix(int64(*resp.Expiry), 0)) //nolint:gosec
			}

			return nil
		},
	}
}

func printPayResponse(resp *rpc.PayResponse) {
	if resp.Status == "PAID" {
		fmt.Println("Payment succeeded!")
		fmt.Printf("Payment lookup ID: %s\n", resp.PaymentLookupID)
		if resp.PaymentProof != "" {
			fmt.Printf("Payment preimage: %s\n", resp.PaymentProof)
		}
		fmt.Printf("Total spent (msats): %d\n", resp.TotalSpentMsat)

		return
	}

	fmt.Printf("Payment status: %s\n", resp.Status)
	fmt.Printf("Payment lookup ID: %s\n", resp.PaymentLookupID)
}
