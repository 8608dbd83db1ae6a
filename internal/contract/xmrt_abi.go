package contract

import (
	"github.com/ethereum/go-ethereum/common"
)

// DefaultXMRTAddress is the deployment address used when none is configured.
// The token has no canonical deployment yet, so this is the zero address.
const DefaultXMRTAddress = "0x0000000000000000000000000000000000000000"

// XMRT method names.
//
//	name()                                    view
//	symbol()                                  view
//	totalSupply()                             view
//	balanceOf(address)                        view
//	allowance(address,address)                view
//	cashDapps(address)                        view
//	transfer(address,uint256)                 nonpayable
//	transferFrom(address,address,uint256)     nonpayable
//	approve(address,uint256)                  nonpayable
//	wrapMonero(uint256)                       payable
//	unwrapMonero(uint256)                     nonpayable
//	onRampFiat(uint256)                       payable
//	offRampFiat(uint256)                      nonpayable
//	stake(uint256,uint256)                    nonpayable
//	unstake(uint256)                          nonpayable
//	getReward()                               nonpayable
//	createProposal(string,uint256)            nonpayable
//	castVote(uint256,bool)                    nonpayable
//	transferToColdStorage(uint256,address)    nonpayable
//	retrieveFromColdStorage(uint256,bytes)    nonpayable
const (
	MethodName                    = "name"
	MethodSymbol                  = "symbol"
	MethodTotalSupply             = "totalSupply"
	MethodBalanceOf               = "balanceOf"
	MethodAllowance               = "allowance"
	MethodCashDapps               = "cashDapps"
	MethodTransfer                = "transfer"
	MethodTransferFrom            = "transferFrom"
	MethodApprove                 = "approve"
	MethodWrapMonero              = "wrapMonero"
	MethodUnwrapMonero            = "unwrapMonero"
	MethodOnRampFiat              = "onRampFiat"
	MethodOffRampFiat             = "offRampFiat"
	MethodStake                   = "stake"
	MethodUnstake                 = "unstake"
	MethodGetReward               = "getReward"
	MethodCreateProposal          = "createProposal"
	MethodCastVote                = "castVote"
	MethodTransferToColdStorage   = "transferToColdStorage"
	MethodRetrieveFromColdStorage = "retrieveFromColdStorage"

	EventTransfer = "Transfer"
	EventApproval = "Approval"
)

// NewXMRT returns the XMRT descriptor bound to addr. An empty addr selects
// DefaultXMRTAddress.
func NewXMRT(addr string) (*Descriptor, error) {
	if addr == "" {
		addr = DefaultXMRTAddress
	}
	return NewDescriptor(common.HexToAddress(addr), xmrtABI)
}

// The two ERC-20 events are not declared by the dapp's own ABI but every
// XMRT transfer emits them; history scanning decodes Transfer.
const xmrtABI = `[
  {"inputs":[],"name":"name","outputs":[{"internalType":"string","name":"","type":"string"}],"stateMutability":"view","type":"function"},
  {"inputs":[],"name":"symbol","outputs":[{"internalType":"string","name":"","type":"string"}],"stateMutability":"view","type":"function"},
  {"inputs":[],"name":"totalSupply","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
  {"inputs":[{"internalType":"address","name":"account","type":"address"}],"name":"balanceOf","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},

  {"inputs":[{"internalType":"address","name":"to","type":"address"},{"internalType":"uint256","name":"amount","type":"uint256"}],"name":"transfer","outputs":[{"internalType":"bool","name":"","type":"bool"}],"stateMutability":"nonpayable","type":"function"},
  {"inputs":[{"internalType":"address","name":"from","type":"address"},{"internalType":"address","name":"to","type":"address"},{"internalType":"uint256","name":"amount","type":"uint256"}],"name":"transferFrom","outputs":[{"internalType":"bool","name":"","type":"bool"}],"stateMutability":"nonpayable","type":"function"},
  {"inputs":[{"internalType":"address","name":"spender","type":"address"},{"internalType":"uint256","name":"amount","type":"uint256"}],"name":"approve","outputs":[{"internalType":"bool","name":"","type":"bool"}],"stateMutability":"nonpayable","type":"function"},
  {"inputs":[{"internalType":"address","name":"owner","type":"address"},{"internalType":"address","name":"spender","type":"address"}],"name":"allowance","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"},

  {"inputs":[{"internalType":"uint256","name":"amount","type":"uint256"}],"name":"wrapMonero","outputs":[],"stateMutability":"payable","type":"function"},
  {"inputs":[{"internalType":"uint256","name":"amount","type":"uint256"}],"name":"unwrapMonero","outputs":[],"stateMutability":"nonpayable","type":"function"},

  {"inputs":[{"internalType":"uint256","name":"amount","type":"uint256"}],"name":"onRampFiat","outputs":[],"stateMutability":"payable","type":"function"},
  {"inputs":[{"internalType":"uint256","name":"amount","type":"uint256"}],"name":"offRampFiat","outputs":[],"stateMutability":"nonpayable","type":"function"},

  {"inputs":[{"internalType":"uint256","name":"amount","type":"uint256"},{"internalType":"uint256","name":"tierLevel","type":"uint256"}],"name":"stake","outputs":[],"stateMutability":"nonpayable","type":"function"},
  {"inputs":[{"internalType":"uint256","name":"amount","type":"uint256"}],"name":"unstake","outputs":[],"stateMutability":"nonpayable","type":"function"},
  {"inputs":[],"name":"getReward","outputs":[],"stateMutability":"nonpayable","type":"function"},

  {"inputs":[{"internalType":"string","name":"description","type":"string"},{"internalType":"uint256","name":"endBlock","type":"uint256"}],"name":"createProposal","outputs":[],"stateMutability":"nonpayable","type":"function"},
  {"inputs":[{"internalType":"uint256","name":"proposalId","type":"uint256"},{"internalType":"bool","name":"support","type":"bool"}],"name":"castVote","outputs":[],"stateMutability":"nonpayable","type":"function"},

  {"inputs":[{"internalType":"address","name":"","type":"address"}],"name":"cashDapps","outputs":[
    {"internalType":"address","name":"operator","type":"address"},
    {"internalType":"uint256","name":"totalFiatOnRamped","type":"uint256"},
    {"internalType":"uint256","name":"totalFiatOffRamped","type":"uint256"},
    {"internalType":"uint256","name":"totalFeesCollected","type":"uint256"}
  ],"stateMutability":"view","type":"function"},

  {"inputs":[{"internalType":"uint256","name":"amount","type":"uint256"},{"internalType":"address","name":"coldStorageAddress","type":"address"}],"name":"transferToColdStorage","outputs":[],"stateMutability":"nonpayable","type":"function"},
  {"inputs":[{"internalType":"uint256","name":"amount","type":"uint256"},{"internalType":"bytes","name":"signature","type":"bytes"}],"name":"retrieveFromColdStorage","outputs":[],"stateMutability":"nonpayable","type":"function"},

  {"anonymous":false,"inputs":[{"indexed":true,"internalType":"address","name":"from","type":"address"},{"indexed":true,"internalType":"address","name":"to","type":"address"},{"indexed":false,"internalType":"uint256","name":"value","type":"uint256"}],"name":"Transfer","type":"event"},
  {"anonymous":false,"inputs":[{"indexed":true,"internalType":"address","name":"owner","type":"address"},{"indexed":true,"internalType":"address","name":"spender","type":"address"},{"indexed":false,"internalType":"uint256","name":"value","type":"uint256"}],"name":"Approval","type":"event"}
]`
