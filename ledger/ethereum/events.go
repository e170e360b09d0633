package ethereum

import (
	"context"
	"fmt"
	"math/big"

	geth "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"

	"github.com/PhilippSchindler/ethdkg-go/curve"
	"github.com/PhilippSchindler/ethdkg-go/ledger"
)

// filterLogs fetches the logs for eventName from the last
// maxPastBlocksToWatch+1 blocks ending at upToBlock, the look-back cap
// web3/contracts.go's watchers use, so a single query never asks an RPC
// node for an unbounded log range. Logs emitted before that window are
// not returned.
func (a *Adapter) filterLogs(ctx context.Context, eventName string, upToBlock uint64) ([]gethtypes.Log, error) {
	event, ok := dkgABI.Events[eventName]
	if !ok {
		return nil, fmt.Errorf("unknown event %s", eventName)
	}

	var all []gethtypes.Log
	start := uint64(0)
	if upToBlock > maxPastBlocksToWatch {
		start = upToBlock - maxPastBlocksToWatch
	}
	for from := start; from <= upToBlock; from += maxPastBlocksToWatch + 1 {
		to := min(from+maxPastBlocksToWatch, upToBlock)
		logs, err := retry(ctx, func(ctx context.Context) ([]gethtypes.Log, error) {
			return a.client.eth.FilterLogs(ctx, geth.FilterQuery{
				FromBlock: new(big.Int).SetUint64(from),
				ToBlock:   new(big.Int).SetUint64(to),
				Addresses: []common.Address{a.contract},
				Topics:    [][]common.Hash{{event.ID}},
			})
		})
		if err != nil {
			return nil, fmt.Errorf("filtering %s logs [%d,%d]: %w", eventName, from, to, err)
		}
		all = append(all, logs...)
	}
	return all, nil
}

func (a *Adapter) RegistrationEvents(ctx context.Context, upToBlock uint64) ([]ledger.RegistrationEvent, error) {
	logs, err := a.filterLogs(ctx, "ParticipantRegistered", upToBlock)
	if err != nil {
		return nil, err
	}
	out := make([]ledger.RegistrationEvent, 0, len(logs))
	for _, l := range logs {
		vals, err := dkgABI.Unpack("ParticipantRegistered", l.Data)
		if err != nil {
			return nil, fmt.Errorf("unpacking ParticipantRegistered: %w", err)
		}
		pk, err := g1FromXY(vals[0].(*big.Int), vals[1].(*big.Int))
		if err != nil {
			return nil, err
		}
		out = append(out, ledger.RegistrationEvent{
			Address: commonToAddress(common.BytesToAddress(l.Topics[1].Bytes())),
			PK:      pk,
			Proof:   schnorrFromArgs(vals[2].(*big.Int), vals[3].(*big.Int)),
		})
	}
	return out, nil
}

func (a *Adapter) ShareDistributionEvents(ctx context.Context, upToBlock uint64) ([]ledger.ShareDistributionEvent, error) {
	logs, err := a.filterLogs(ctx, "SharesDistributed", upToBlock)
	if err != nil {
		return nil, err
	}
	out := make([]ledger.ShareDistributionEvent, 0, len(logs))
	for _, l := range logs {
		vals, err := dkgABI.Unpack("SharesDistributed", l.Data)
		if err != nil {
			return nil, fmt.Errorf("unpacking SharesDistributed: %w", err)
		}
		xs := vals[1].([]*big.Int)
		ys := vals[2].([]*big.Int)
		commitments := make([]*curve.G1, len(xs))
		for i := range xs {
			commitments[i], err = g1FromXY(xs[i], ys[i])
			if err != nil {
				return nil, err
			}
		}
		out = append(out, ledger.ShareDistributionEvent{
			Issuer:          commonToAddress(common.BytesToAddress(l.Topics[1].Bytes())),
			EncryptedShares: vals[0].([][32]byte),
			Commitments:     commitments,
		})
	}
	return out, nil
}

func (a *Adapter) DisputeEvents(ctx context.Context, upToBlock uint64) ([]ledger.DisputeEvent, error) {
	logs, err := a.filterLogs(ctx, "DisputeSubmitted", upToBlock)
	if err != nil {
		return nil, err
	}
	out := make([]ledger.DisputeEvent, 0, len(logs))
	for _, l := range logs {
		vals, err := dkgABI.Unpack("DisputeSubmitted", l.Data)
		if err != nil {
			return nil, fmt.Errorf("unpacking DisputeSubmitted: %w", err)
		}
		sharedKey, err := g1FromXY(vals[0].(*big.Int), vals[1].(*big.Int))
		if err != nil {
			return nil, err
		}
		out = append(out, ledger.DisputeEvent{
			Issuer:    commonToAddress(common.BytesToAddress(l.Topics[1].Bytes())),
			Disputer:  commonToAddress(common.BytesToAddress(l.Topics[2].Bytes())),
			SharedKey: sharedKey,
			Proof:     dleqFromArgs(vals[2].(*big.Int), vals[3].(*big.Int)),
		})
	}
	return out, nil
}

func (a *Adapter) KeyShareSubmissionEvents(ctx context.Context, upToBlock uint64) ([]ledger.KeyShareSubmissionEvent, error) {
	logs, err := a.filterLogs(ctx, "KeyShareSubmitted", upToBlock)
	if err != nil {
		return nil, err
	}
	out := make([]ledger.KeyShareSubmissionEvent, 0, len(logs))
	for _, l := range logs {
		vals, err := dkgABI.Unpack("KeyShareSubmitted", l.Data)
		if err != nil {
			return nil, fmt.Errorf("unpacking KeyShareSubmitted: %w", err)
		}
		h1, err := g1FromXY(vals[0].(*big.Int), vals[1].(*big.Int))
		if err != nil {
			return nil, err
		}
		h2, err := g2FromFq2(vals[4].(*big.Int), vals[5].(*big.Int), vals[6].(*big.Int), vals[7].(*big.Int))
		if err != nil {
			return nil, err
		}
		out = append(out, ledger.KeyShareSubmissionEvent{
			Issuer: commonToAddress(common.BytesToAddress(l.Topics[1].Bytes())),
			H1:     h1,
			Proof:  dleqFromArgs(vals[2].(*big.Int), vals[3].(*big.Int)),
			H2:     h2,
		})
	}
	return out, nil
}

func (a *Adapter) KeyShareRecoveryEvents(ctx context.Context, upToBlock uint64) ([]ledger.KeyShareRecoveryEvent, error) {
	logs, err := a.filterLogs(ctx, "KeyShareRecovered", upToBlock)
	if err != nil {
		return nil, err
	}
	out := make([]ledger.KeyShareRecoveryEvent, 0, len(logs))
	for _, l := range logs {
		vals, err := dkgABI.Unpack("KeyShareRecovered", l.Data)
		if err != nil {
			return nil, fmt.Errorf("unpacking KeyShareRecovered: %w", err)
		}
		rawAddrs := vals[0].([]common.Address)
		xs := vals[1].([]*big.Int)
		ys := vals[2].([]*big.Int)
		cs := vals[3].([]*big.Int)
		rs := vals[4].([]*big.Int)

		recovered := make([]ledger.Address, len(rawAddrs))
		sharedKeys := make([]*curve.G1, len(rawAddrs))
		proofs := make([]*curve.DLEQProof, len(rawAddrs))
		for i := range rawAddrs {
			recovered[i] = commonToAddress(rawAddrs[i])
			sharedKeys[i], err = g1FromXY(xs[i], ys[i])
			if err != nil {
				return nil, err
			}
			proofs[i] = dleqFromArgs(cs[i], rs[i])
		}
		out = append(out, ledger.KeyShareRecoveryEvent{
			Recoverer:     commonToAddress(common.BytesToAddress(l.Topics[1].Bytes())),
			RecoveredAddr: recovered,
			SharedKeys:    sharedKeys,
			Proofs:        proofs,
		})
	}
	return out, nil
}
