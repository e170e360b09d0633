package ethereum

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"time"

	geth "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"

	"github.com/PhilippSchindler/ethdkg-go/curve"
	"github.com/PhilippSchindler/ethdkg-go/internal/log"
	"github.com/PhilippSchindler/ethdkg-go/ledger"
)

// maxPastBlocksToWatch bounds a single eth_getLogs filter window, the way
// web3/contracts.go's maxPastBlocksToWatch does for the davinci-node
// event poller.
const maxPastBlocksToWatch = 9990

// Adapter implements ledger.Ledger against a deployed DKG contract over a
// single JSON-RPC endpoint. One Adapter is bound to one signing account,
// mirroring web3/contracts.go's Contracts struct binding one *ethSigner.Signer.
type Adapter struct {
	client   *client
	contract common.Address
	chainID  *big.Int

	signer *ecdsa.PrivateKey
	from   common.Address
}

// Dial connects to rpcURL and binds the returned Adapter to signerKey for
// every write call (Register, DistributeShares, ...).
func Dial(ctx context.Context, rpcURL string, contract common.Address, chainID uint64, signerKey *ecdsa.PrivateKey) (*Adapter, error) {
	cli, err := dial(ctx, rpcURL)
	if err != nil {
		return nil, err
	}
	return &Adapter{
		client:   cli,
		contract: contract,
		chainID:  new(big.Int).SetUint64(chainID),
		signer:   signerKey,
		from:     addressFromKey(signerKey),
	}, nil
}

func (a *Adapter) Deadlines(ctx context.Context) (ledger.Deadlines, error) {
	out, err := a.call(ctx, "deadlines")
	if err != nil {
		return ledger.Deadlines{}, err
	}
	return ledger.Deadlines{
		RegistrationEnd:       out[0].(*big.Int).Uint64(),
		ShareDistributionEnd:  out[1].(*big.Int).Uint64(),
		DisputeEnd:            out[2].(*big.Int).Uint64(),
		KeyShareSubmissionEnd: out[3].(*big.Int).Uint64(),
		DeltaConfirm:          out[4].(*big.Int).Uint64(),
		DeltaInclude:          out[5].(*big.Int).Uint64(),
	}, nil
}

func (a *Adapter) CurrentBlock(ctx context.Context) (uint64, error) {
	return retry(ctx, func(ctx context.Context) (uint64, error) {
		return a.client.eth.BlockNumber(ctx)
	})
}

func (a *Adapter) WaitForBlock(ctx context.Context, block uint64) error {
	for {
		current, err := a.CurrentBlock(ctx)
		if err != nil {
			return err
		}
		if current >= block {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
		}
	}
}

func (a *Adapter) NumNodes(ctx context.Context) (uint64, error) {
	out, err := a.call(ctx, "numNodes")
	if err != nil {
		return 0, err
	}
	return out[0].(*big.Int).Uint64(), nil
}

func (a *Adapter) Addresses(ctx context.Context) ([]ledger.Address, error) {
	out, err := a.call(ctx, "participants")
	if err != nil {
		return nil, err
	}
	raw := out[0].([]common.Address)
	addrs := make([]ledger.Address, len(raw))
	for i, r := range raw {
		addrs[i] = commonToAddress(r)
	}
	return addrs, nil
}

func (a *Adapter) PublicKey(ctx context.Context, addr ledger.Address) (*curve.G1, error) {
	out, err := a.call(ctx, "publicKeyOf", addressToCommon(addr))
	if err != nil {
		return nil, err
	}
	return g1FromXY(out[0].(*big.Int), out[1].(*big.Int))
}

func (a *Adapter) Register(ctx context.Context, pk *curve.G1, proof *curve.SchnorrProof) error {
	x, y := g1ToXY(pk)
	c, r := schnorrToArgs(proof)
	return a.send(ctx, "register", x, y, c, r)
}

func (a *Adapter) DistributeShares(ctx context.Context, encryptedShares [][32]byte, commitments []*curve.G1) error {
	xs := make([]*big.Int, len(commitments))
	ys := make([]*big.Int, len(commitments))
	for i, c := range commitments {
		xs[i], ys[i] = g1ToXY(c)
	}
	return a.send(ctx, "distributeShares", encryptedShares, xs, ys)
}

func (a *Adapter) SubmitDispute(ctx context.Context, issuer ledger.Address, sharedKey *curve.G1, proof *curve.DLEQProof) error {
	x, y := g1ToXY(sharedKey)
	c, r := dleqToArgs(proof)
	return a.send(ctx, "submitDispute", addressToCommon(issuer), x, y, c, r)
}

func (a *Adapter) SubmitKeyShare(ctx context.Context, issuer ledger.Address, h1 *curve.G1, proof *curve.DLEQProof, h2 *curve.G2) error {
	h1x, h1y := g1ToXY(h1)
	c, r := dleqToArgs(proof)
	h2xi, h2x, h2yi, h2y := g2ToFq2(h2)
	return a.send(ctx, "submitKeyShare", addressToCommon(issuer), h1x, h1y, c, r, h2xi, h2x, h2yi, h2y)
}

func (a *Adapter) RecoverKeyShares(ctx context.Context, recovered []ledger.Address, sharedKeys []*curve.G1, proofs []*curve.DLEQProof) error {
	addrs := make([]common.Address, len(recovered))
	for i, r := range recovered {
		addrs[i] = addressToCommon(r)
	}
	xs := make([]*big.Int, len(sharedKeys))
	ys := make([]*big.Int, len(sharedKeys))
	for i, k := range sharedKeys {
		xs[i], ys[i] = g1ToXY(k)
	}
	cs := make([]*big.Int, len(proofs))
	rs := make([]*big.Int, len(proofs))
	for i, p := range proofs {
		cs[i], rs[i] = dleqToArgs(p)
	}
	return a.send(ctx, "recoverKeyShares", addrs, xs, ys, cs, rs)
}

func (a *Adapter) SubmitMasterPublicKey(ctx context.Context, mpk *curve.G2) error {
	xi, x, yi, y := g2ToFq2(mpk)
	return a.send(ctx, "submitMasterPublicKey", xi, x, yi, y)
}

func (a *Adapter) call(ctx context.Context, method string, args ...any) ([]any, error) {
	data, err := dkgABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("packing %s call: %w", method, err)
	}
	result, err := retry(ctx, func(ctx context.Context) ([]byte, error) {
		return a.client.eth.CallContract(ctx, geth.CallMsg{From: a.from, To: &a.contract, Data: data}, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("calling %s: %w", method, err)
	}
	out, err := dkgABI.Unpack(method, result)
	if err != nil {
		return nil, fmt.Errorf("unpacking %s result: %w", method, err)
	}
	return out, nil
}

// send packs and submits one write call. It returns once the node has
// accepted the signed transaction; it does not wait for the transaction
// to be mined, and a transaction that later reverts is not reported as an
// error.
func (a *Adapter) send(ctx context.Context, method string, args ...any) error {
	data, err := dkgABI.Pack(method, args...)
	if err != nil {
		return fmt.Errorf("packing %s call: %w", method, err)
	}
	hash, err := a.sendCall(ctx, data)
	if err != nil {
		return fmt.Errorf("sending %s: %w", method, err)
	}
	log.Infow("transaction sent", "method", method, "hash", hash.Hex())
	return nil
}
