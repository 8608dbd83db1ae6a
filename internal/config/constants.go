package config

import "time"

// Gas limits used as EstimateGas fallbacks when the node cannot simulate the tx.
// These are conservative upper bounds; actual gas used will be lower.
const (
	GasLimitERC20Transfer = uint64(60_000)  // transfer / approve / transferFrom
	GasLimitContractCall  = uint64(200_000) // generic XMRT state-change call
)

// Timeout constants used across cmd.
const (
	RPCSelectTimeout    = 10 * time.Second // BestEVM benchmark / RPC selection
	TxConfirmTimeout    = 3 * time.Minute  // standard transaction confirmation wait
	ReceiptPollInterval = 2 * time.Second
)

// HistoryBlockRange is how many blocks back `history` scans by default.
// Public RPCs commonly cap eth_getLogs ranges near this size.
const HistoryBlockRange = uint64(10_000)
