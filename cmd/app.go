package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/Mohsinsiddi/cashdapp/internal/cashdapp"
	"github.com/Mohsinsiddi/cashdapp/internal/chain"
	"github.com/Mohsinsiddi/cashdapp/internal/config"
	"github.com/Mohsinsiddi/cashdapp/internal/contract"
	"github.com/Mohsinsiddi/cashdapp/internal/notify"
	"github.com/Mohsinsiddi/cashdapp/internal/panel"
	"github.com/Mohsinsiddi/cashdapp/internal/rpc"
	"github.com/Mohsinsiddi/cashdapp/internal/ui"
	"github.com/Mohsinsiddi/cashdapp/internal/wallet"
	"github.com/spf13/cobra"
)

// openKeystore returns the keystore signing wallets read from. Tests swap it
// for an in-memory one.
var openKeystore = func() wallet.KeystoreBackend { return wallet.DefaultKeystore() }

// reportedError marks an error the user has already seen as a notification.
type reportedError struct{ err error }

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}

// needs says what a command requires from the environment.
type needs int

const (
	needNothing needs = iota // contract reads only
	needWallet               // a session address
	needSigner               // a wallet that can sign
)

// app bundles everything a command needs to talk to the XMRT contract.
type app struct {
	chain    *chain.Chain
	mode     string
	client   *chain.EVMClient
	wallet   *wallet.Wallet
	desc     *contract.Descriptor
	adapter  *cashdapp.Adapter
	notifier notify.Notifier
	out      io.Writer
}

// newWalletManager creates a Manager backed by the config-dir JSON store.
func newWalletManager() *wallet.Manager {
	return wallet.NewManager(
		wallet.WithStore(wallet.NewJSONStore(cfg.WalletsPath())),
		wallet.WithKeystore(openKeystore()),
	)
}

// resolveChain returns the configured chain.
func resolveChain() (*chain.Chain, error) {
	c, err := chain.NewRegistry().GetByName(cfg.DefaultNetwork)
	if err != nil {
		return nil, fmt.Errorf("unknown chain %q (supported: ethereum, arbitrum): %w", cfg.DefaultNetwork, err)
	}
	return c, nil
}

// pickRPC returns --rpc when given, otherwise the best of the custom and
// built-in endpoints for c.
func pickRPC(ctx context.Context, c *chain.Chain, mode string) (string, error) {
	if rpcFlag != "" {
		return rpcFlag, nil
	}
	urls := append(append([]string{}, cfg.GetRPCs(c.Name)...), c.RPCs(mode)...)
	if len(urls) == 0 {
		return "", fmt.Errorf("no RPCs configured for %s (%s); add one with `cashdapp config set-rpc %s <url>`", c.Name, mode, c.Name)
	}
	algo, err := rpc.ParseAlgorithm(cfg.RPCAlgorithm)
	if err != nil {
		return "", err
	}
	url, err := rpc.BestEVM(ctx, urls, algo, config.RPCSelectTimeout)
	if err != nil {
		return "", err
	}
	logger.Debug("rpc selected", "url", url, "algorithm", algo)
	return url, nil
}

// openApp connects to the configured chain and builds the adapter.
func openApp(cmd *cobra.Command, n needs) (*app, error) {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	c, err := resolveChain()
	if err != nil {
		return nil, err
	}
	desc, err := contract.NewXMRT(cfg.ContractAddress)
	if err != nil {
		return nil, err
	}

	var w *wallet.Wallet
	mgr := newWalletManager()
	if n >= needWallet {
		w, err = mgr.Resolve(cfg.DefaultWallet)
		if err != nil {
			return nil, fmt.Errorf("%w; add one with `cashdapp wallet add <name> --key <private-key>` and select it with `cashdapp wallet use <name>`", err)
		}
	}

	spin := ui.NewSpinner("Connecting to " + c.Label(cfg.NetworkMode) + "...")
	spin.Start()
	url, err := pickRPC(ctx, c, cfg.NetworkMode)
	if err != nil {
		spin.Stop()
		return nil, err
	}
	client := chain.NewEVMClient(url)
	gotID, err := client.ChainID(ctx)
	spin.Stop()
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", url, err)
	}
	if want := c.ID(cfg.NetworkMode); gotID.Int64() != want {
		return nil, fmt.Errorf("RPC %s serves chain %s, expected %s (%d)", url, gotID, c.Label(cfg.NetworkMode), want)
	}

	notifier := notify.NewTerminal(out)
	opts := []cashdapp.Option{
		cashdapp.WithNotifier(notifier),
		cashdapp.WithLogger(logger.WithPrefix("adapter")),
		cashdapp.WithBlockSource(client),
		cashdapp.WithLogs(client),
	}
	if n == needSigner {
		signer, err := mgr.Signer(cfg.DefaultWallet)
		if err != nil {
			return nil, err
		}
		sender := contract.NewSender(client, desc, signer, big.NewInt(c.ID(cfg.NetworkMode)))
		opts = append(opts, cashdapp.WithSender(sender))
		if waitFlag {
			opts = append(opts, cashdapp.WithReceiptWait(client, config.ReceiptPollInterval, config.TxConfirmTimeout))
		}
	}

	session := cashdapp.Session{ChainID: gotID.Int64()}
	if w != nil {
		session.Address = w.CommonAddress()
	}

	return &app{
		chain:    c,
		mode:     cfg.NetworkMode,
		client:   client,
		wallet:   w,
		desc:     desc,
		adapter:  cashdapp.New(session, desc, contract.NewCaller(client, desc), opts...),
		notifier: notifier,
		out:      out,
	}, nil
}

// balancer is implemented by every panel with an over-balance check.
type balancer interface{ SetBalance(*big.Int) }

// loadBalance reads the session balance into p and returns it.
func (a *app) loadBalance(ctx context.Context, p balancer) (*big.Int, error) {
	wei, err := a.adapter.BalanceWei(ctx)
	if err != nil {
		return nil, reported(err)
	}
	p.SetBalance(wei)
	return wei, nil
}

// submit runs a panel submission. fn receives the actions the panel should
// drive: the adapter behind a gate that shows the preview and asks for
// confirmation once local validation has passed. Failures have already been
// notified by the time submit returns them.
func (a *app) submit(cmd *cobra.Command, title string, preview [][2]string, fn func(context.Context, panel.Actions) (string, error)) error {
	g := &gate{
		actions: a.adapter,
		ask: func() bool {
			fmt.Fprintln(a.out, ui.KeyValueBlock(title, preview))
			return assumeYes || ui.ConfirmFrom(cmd.InOrStdin(), a.out, "Submit this transaction?")
		},
	}
	hash, err := fn(cmd.Context(), g)
	if errors.Is(err, errCancelled) {
		fmt.Fprintln(a.out, ui.Meta("Cancelled."))
		return nil
	}
	if hash != "" {
		fmt.Fprintln(a.out, ui.Addr("Hash: "+hash))
		if url := ui.TxURL(a.chain.Explorer(a.mode), hash); url != "" {
			fmt.Fprintln(a.out, ui.Meta(url))
		}
	}
	return reported(err)
}

// preview builds the common first rows of a transaction preview.
func (a *app) preview(rows ...[2]string) [][2]string {
	from := "(none)"
	if a.wallet != nil {
		from = a.wallet.Name + "  " + a.wallet.Address
	}
	base := [][2]string{
		{"Network", a.chain.Label(a.mode)},
		{"From", from},
		{"Contract", a.desc.Address.Hex()},
	}
	return append(base, rows...)
}

// setAmount fills an amount field, reporting rejected keystrokes the way the
// field would: the value stays empty and submit blocks with Invalid Amount.
func setAmount(f *panel.AmountField, v string) {
	if !f.Set(v) {
		logger.Debug("amount rejected by input filter", "value", v)
	}
}

var waitFlag bool

// addWaitFlag registers --wait on a write command.
func addWaitFlag(c *cobra.Command) {
	c.Flags().BoolVar(&waitFlag, "wait", false, "wait until the transaction is mined")
}

// withTimeout bounds commands that only read.
func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, 30*time.Second)
}
