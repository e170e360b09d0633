package ethereum

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"

	geth "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// sendCall builds, signs and sends an EIP-1559 transaction carrying data
// against the contract address, the way
// web3/txmanager/txsend.go's BuildDynamicFeeTx does (suggested tip, base
// fee, gas estimate, nonce-at-sender), minus the pending-transaction
// tracking/speed-up machinery txmanager adds for long-lived nodes: this
// adapter is a single request/response call per ledger.Ledger method, not
// a background-monitored submission queue.
func (a *Adapter) sendCall(ctx context.Context, data []byte) (common.Hash, error) {
	eth := a.client.eth

	nonce, err := retry(ctx, func(ctx context.Context) (uint64, error) {
		return eth.PendingNonceAt(ctx, a.from)
	})
	if err != nil {
		return common.Hash{}, fmt.Errorf("fetching nonce: %w", err)
	}

	tipCap, err := retry(ctx, func(ctx context.Context) (*big.Int, error) {
		return eth.SuggestGasTipCap(ctx)
	})
	if err != nil {
		return common.Hash{}, fmt.Errorf("fetching gas tip cap: %w", err)
	}

	head, err := retry(ctx, func(ctx context.Context) (*gethtypes.Header, error) {
		return eth.HeaderByNumber(ctx, nil)
	})
	if err != nil {
		return common.Hash{}, fmt.Errorf("fetching head header: %w", err)
	}
	feeCap := new(big.Int).Add(new(big.Int).Mul(head.BaseFee, big.NewInt(2)), tipCap)

	gasLimit, err := retry(ctx, func(ctx context.Context) (uint64, error) {
		return eth.EstimateGas(ctx, geth.CallMsg{From: a.from, To: &a.contract, Data: data})
	})
	if err != nil {
		return common.Hash{}, fmt.Errorf("estimating gas: %w", err)
	}

	tx := gethtypes.NewTx(&gethtypes.DynamicFeeTx{
		ChainID:   a.chainID,
		Nonce:     nonce,
		GasTipCap: tipCap,
		GasFeeCap: feeCap,
		Gas:       gasLimit + gasLimit/5,
		To:        &a.contract,
		Data:      data,
	})

	signed, err := gethtypes.SignNewTx(a.signer, gethtypes.LatestSignerForChainID(a.chainID), tx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("signing transaction: %w", err)
	}

	if _, err := retry(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, eth.SendTransaction(ctx, signed)
	}); err != nil {
		return common.Hash{}, fmt.Errorf("sending transaction: %w", err)
	}
	return signed.Hash(), nil
}

func addressFromKey(key *ecdsa.PrivateKey) common.Address {
	return ethcrypto.PubkeyToAddress(key.PublicKey)
}
