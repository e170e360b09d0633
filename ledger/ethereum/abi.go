// Package ethereum implements the ledger.Ledger interface against a real
// EVM chain, the way web3/contracts.go binds the davinci-node contracts:
// parse the ABI once in init(), keep a *abi.ABI and a contract address
// around, and pack/unpack every call by hand since no generated Go
// bindings exist for this contract (spec.md §6, Non-goals: "the smart
// contract implementation itself").
package ethereum

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// contractABI is the minimal Solidity ABI surface the DKG core drives:
// one function per ledger.Ledger write/read method and one event per
// ledger.Ledger *Events reader. The contract itself is out of scope
// (spec.md Non-goals); this is only the interface this adapter speaks.
const contractABI = `[
	{"type":"function","name":"deadlines","stateMutability":"view","inputs":[],
	 "outputs":[
		{"name":"registrationEnd","type":"uint256"},
		{"name":"shareDistributionEnd","type":"uint256"},
		{"name":"disputeEnd","type":"uint256"},
		{"name":"keyShareSubmissionEnd","type":"uint256"},
		{"name":"deltaConfirm","type":"uint256"},
		{"name":"deltaInclude","type":"uint256"}]},
	{"type":"function","name":"numNodes","stateMutability":"view","inputs":[],
	 "outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"participants","stateMutability":"view","inputs":[],
	 "outputs":[{"name":"","type":"address[]"}]},
	{"type":"function","name":"publicKeyOf","stateMutability":"view",
	 "inputs":[{"name":"who","type":"address"}],
	 "outputs":[{"name":"x","type":"uint256"},{"name":"y","type":"uint256"}]},
	{"type":"function","name":"register","stateMutability":"nonpayable",
	 "inputs":[
		{"name":"pkX","type":"uint256"},{"name":"pkY","type":"uint256"},
		{"name":"proofC","type":"uint256"},{"name":"proofR","type":"uint256"}],
	 "outputs":[]},
	{"type":"function","name":"distributeShares","stateMutability":"nonpayable",
	 "inputs":[
		{"name":"encryptedShares","type":"bytes32[]"},
		{"name":"commitmentsX","type":"uint256[]"},
		{"name":"commitmentsY","type":"uint256[]"}],
	 "outputs":[]},
	{"type":"function","name":"submitDispute","stateMutability":"nonpayable",
	 "inputs":[
		{"name":"issuer","type":"address"},
		{"name":"sharedKeyX","type":"uint256"},{"name":"sharedKeyY","type":"uint256"},
		{"name":"proofC","type":"uint256"},{"name":"proofR","type":"uint256"}],
	 "outputs":[]},
	{"type":"function","name":"submitKeyShare","stateMutability":"nonpayable",
	 "inputs":[
		{"name":"issuer","type":"address"},
		{"name":"h1X","type":"uint256"},{"name":"h1Y","type":"uint256"},
		{"name":"proofC","type":"uint256"},{"name":"proofR","type":"uint256"},
		{"name":"h2Xi","type":"uint256"},{"name":"h2X","type":"uint256"},
		{"name":"h2Yi","type":"uint256"},{"name":"h2Y","type":"uint256"}],
	 "outputs":[]},
	{"type":"function","name":"recoverKeyShares","stateMutability":"nonpayable",
	 "inputs":[
		{"name":"recovered","type":"address[]"},
		{"name":"sharedKeysX","type":"uint256[]"},{"name":"sharedKeysY","type":"uint256[]"},
		{"name":"proofsC","type":"uint256[]"},{"name":"proofsR","type":"uint256[]"}],
	 "outputs":[]},
	{"type":"function","name":"submitMasterPublicKey","stateMutability":"nonpayable",
	 "inputs":[
		{"name":"xi","type":"uint256"},{"name":"x","type":"uint256"},
		{"name":"yi","type":"uint256"},{"name":"y","type":"uint256"}],
	 "outputs":[]},
	{"type":"event","name":"ParticipantRegistered","anonymous":false,
	 "inputs":[
		{"name":"who","type":"address","indexed":true},
		{"name":"pkX","type":"uint256","indexed":false},
		{"name":"pkY","type":"uint256","indexed":false},
		{"name":"proofC","type":"uint256","indexed":false},
		{"name":"proofR","type":"uint256","indexed":false}]},
	{"type":"event","name":"SharesDistributed","anonymous":false,
	 "inputs":[
		{"name":"issuer","type":"address","indexed":true},
		{"name":"encryptedShares","type":"bytes32[]","indexed":false},
		{"name":"commitmentsX","type":"uint256[]","indexed":false},
		{"name":"commitmentsY","type":"uint256[]","indexed":false}]},
	{"type":"event","name":"DisputeSubmitted","anonymous":false,
	 "inputs":[
		{"name":"issuer","type":"address","indexed":true},
		{"name":"disputer","type":"address","indexed":true},
		{"name":"sharedKeyX","type":"uint256","indexed":false},
		{"name":"sharedKeyY","type":"uint256","indexed":false},
		{"name":"proofC","type":"uint256","indexed":false},
		{"name":"proofR","type":"uint256","indexed":false}]},
	{"type":"event","name":"KeyShareSubmitted","anonymous":false,
	 "inputs":[
		{"name":"issuer","type":"address","indexed":true},
		{"name":"h1X","type":"uint256","indexed":false},
		{"name":"h1Y","type":"uint256","indexed":false},
		{"name":"proofC","type":"uint256","indexed":false},
		{"name":"proofR","type":"uint256","indexed":false},
		{"name":"h2Xi","type":"uint256","indexed":false},
		{"name":"h2X","type":"uint256","indexed":false},
		{"name":"h2Yi","type":"uint256","indexed":false},
		{"name":"h2Y","type":"uint256","indexed":false}]},
	{"type":"event","name":"KeyShareRecovered","anonymous":false,
	 "inputs":[
		{"name":"recoverer","type":"address","indexed":true},
		{"name":"recovered","type":"address[]","indexed":false},
		{"name":"sharedKeysX","type":"uint256[]","indexed":false},
		{"name":"sharedKeysY","type":"uint256[]","indexed":false},
		{"name":"proofsC","type":"uint256[]","indexed":false},
		{"name":"proofsR","type":"uint256[]","indexed":false}]}
]`

var dkgABI abi.ABI

func init() {
	parsed, err := abi.JSON(strings.NewReader(contractABI))
	if err != nil {
		panic(fmt.Errorf("failed to parse ethdkg ABI: %w", err))
	}
	dkgABI = parsed
}
