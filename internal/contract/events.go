package contract

import (
	"context"
	"fmt"
	"math/big"
	"sort"

	"github.com/Mohsinsiddi/cashdapp/internal/chain"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// LogBackend fetches event logs. *chain.EVMClient satisfies it.
type LogBackend interface {
	GetLogs(ctx context.Context, f chain.LogFilter) ([]chain.LogEntry, error)
}

// TransferEvent is one decoded Transfer log.
type TransferEvent struct {
	From     common.Address
	To       common.Address
	Value    *big.Int
	Block    uint64
	TxHash   string
	LogIndex uint64
}

// Direction is "sent" or "received" relative to owner. A self-transfer is "sent".
func (e TransferEvent) Direction(owner common.Address) string {
	if e.From == owner {
		return "sent"
	}
	return "received"
}

// TransferTopic returns the topic0 hash of the Transfer event.
func (d *Descriptor) TransferTopic() (common.Hash, error) {
	ev, ok := d.ABI.Events[EventTransfer]
	if !ok {
		return common.Hash{}, fmt.Errorf("%w: event %q", ErrUnknownMethod, EventTransfer)
	}
	return ev.ID, nil
}

// DecodeTransfer decodes a raw Transfer log.
func (d *Descriptor) DecodeTransfer(l chain.LogEntry) (TransferEvent, error) {
	topic, err := d.TransferTopic()
	if err != nil {
		return TransferEvent{}, err
	}
	if len(l.Topics) != 3 || common.HexToHash(l.Topics[0]) != topic {
		return TransferEvent{}, fmt.Errorf("log %s is not a Transfer event", l.TxHash)
	}

	data, err := hexutil.Decode(l.Data)
	if err != nil {
		return TransferEvent{}, fmt.Errorf("decoding log data: %w", err)
	}
	out, err := d.ABI.Unpack(EventTransfer, data)
	if err != nil {
		return TransferEvent{}, fmt.Errorf("decoding Transfer: %w", err)
	}
	value, err := asBig(out, 0)
	if err != nil {
		return TransferEvent{}, err
	}

	ev := TransferEvent{
		From:   common.BytesToAddress(common.HexToHash(l.Topics[1]).Bytes()),
		To:     common.BytesToAddress(common.HexToHash(l.Topics[2]).Bytes()),
		Value:  value,
		TxHash: l.TxHash,
	}
	ev.Block, _ = hexutil.DecodeUint64(l.BlockNumber)
	ev.LogIndex, _ = hexutil.DecodeUint64(l.LogIndex)
	return ev, nil
}

// TransferHistory returns every Transfer touching owner between fromBlock and
// toBlock (inclusive), newest first.
func TransferHistory(ctx context.Context, backend LogBackend, d *Descriptor, owner common.Address, fromBlock, toBlock uint64) ([]TransferEvent, error) {
	topic, err := d.TransferTopic()
	if err != nil {
		return nil, err
	}
	ownerTopic := common.BytesToHash(owner.Bytes())

	filters := []chain.LogFilter{
		{Address: d.Address, Topics: [][]common.Hash{{topic}, {ownerTopic}}, FromBlock: fromBlock, ToBlock: toBlock},
		{Address: d.Address, Topics: [][]common.Hash{{topic}, nil, {ownerTopic}}, FromBlock: fromBlock, ToBlock: toBlock},
	}

	seen := make(map[string]bool)
	var events []TransferEvent
	for _, f := range filters {
		logs, err := backend.GetLogs(ctx, f)
		if err != nil {
			return nil, fmt.Errorf("fetching transfer logs: %w", err)
		}
		for _, l := range logs {
			ev, err := d.DecodeTransfer(l)
			if err != nil {
				continue
			}
			key := fmt.Sprintf("%s/%d", ev.TxHash, ev.LogIndex)
			if seen[key] {
				continue
			}
			seen[key] = true
			events = append(events, ev)
		}
	}

	sort.Slice(events, func(i, j int) bool {
		if events[i].Block != events[j].Block {
			return events[i].Block > events[j].Block
		}
		return events[i].LogIndex > events[j].LogIndex
	})
	return events, nil
}
