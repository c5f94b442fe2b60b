package blockchain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

var dialEVMClient = ethclient.Dial

// TokenConfig describes a payable token. An empty contract address means the
// chain's native currency.
type TokenConfig struct {
	Address  string
	Decimals int
}

// TreasuryClient submits payroll transfers from the operator wallet. It is
// the production implementation of the engine's payment submission port.
type TreasuryClient struct {
	client   *ethclient.Client
	chainID  *big.Int
	key      *ecdsa.PrivateKey
	from     common.Address
	tokens   map[string]TokenConfig
	gasLimit uint64
}

// NewTreasuryClient dials the RPC endpoint and derives the operator address
func NewTreasuryClient(rpcURL, operatorKeyHex string, tokens map[string]TokenConfig) (*TreasuryClient, error) {
	client, err := dialEVMClient(rpcURL)
	if err != nil {
		return nil, err
	}

	chainID, err := client.ChainID(context.Background())
	if err != nil {
		return nil, err
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(operatorKeyHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid operator key: %w", err)
	}

	return &TreasuryClient{
		client:   client,
		chainID:  chainID,
		key:      key,
		from:     crypto.PubkeyToAddress(key.PublicKey),
		tokens:   tokens,
		gasLimit: 100000,
	}, nil
}

// OperatorAddress returns the address payouts are sent from
func (c *TreasuryClient) OperatorAddress() string {
	return c.from.Hex()
}

// Submit signs and broadcasts one transfer. It blocks until the transaction
// is accepted by the node and returns the transaction hash. Per-item
// timeouts are the caller's responsibility via ctx.
func (c *TreasuryClient) Submit(ctx context.Context, recipientAddress, amount, token, memo string) (string, error) {
	cfg, ok := c.tokens[strings.ToUpper(token)]
	if !ok {
		return "", fmt.Errorf("unsupported payout token %q", token)
	}

	units, err := parseUnits(amount, cfg.Decimals)
	if err != nil {
		return "", fmt.Errorf("invalid amount %q: %w", amount, err)
	}

	nonce, err := c.client.PendingNonceAt(ctx, c.from)
	if err != nil {
		return "", err
	}
	gasPrice, err := c.client.SuggestGasPrice(ctx)
	if err != nil {
		return "", err
	}

	recipient := common.HexToAddress(recipientAddress)

	var tx *types.Transaction
	if cfg.Address == "" {
		// Native currency transfer; the memo rides in the data field.
		tx = types.NewTransaction(nonce, recipient, units, c.gasLimit, gasPrice, []byte(memo))
	} else {
		// transfer(address,uint256) selector: 0xa9059cbb
		data := append(common.Hex2Bytes("a9059cbb"), common.LeftPadBytes(recipient.Bytes(), 32)...)
		data = append(data, common.LeftPadBytes(units.Bytes(), 32)...)
		contract := common.HexToAddress(cfg.Address)
		tx = types.NewTransaction(nonce, contract, big.NewInt(0), c.gasLimit, gasPrice, data)
	}

	signed, err := types.SignTx(tx, types.NewEIP155Signer(c.chainID), c.key)
	if err != nil {
		return "", err
	}

	if err := c.client.SendTransaction(ctx, signed); err != nil {
		return "", err
	}
	return signed.Hash().Hex(), nil
}

// Close closes the RPC connection
func (c *TreasuryClient) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

// parseUnits converts a decimal string into the token's smallest unit
func parseUnits(amount string, decimals int) (*big.Int, error) {
	whole, frac, _ := strings.Cut(amount, ".")
	if whole == "" {
		whole = "0"
	}
	if len(frac) > decimals {
		return nil, fmt.Errorf("more than %d decimal places", decimals)
	}
	frac += strings.Repeat("0", decimals-len(frac))

	units, ok := new(big.Int).SetString(whole+frac, 10)
	if !ok {
		return nil, fmt.Errorf("not a decimal number")
	}
	if units.Sign() < 0 {
		return nil, fmt.Errorf("negative amount")
	}
	return units, nil
}
