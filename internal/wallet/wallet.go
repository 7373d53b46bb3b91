// Package wallet is the payment-signer boundary. The core records the
// signature a signer returns but never validates the payment network.
package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrInsufficientFunds is returned when the treasury transfer is rejected
// for lack of balance. The donation record is settled as Failed; there is
// no simulated-success path.
var ErrInsufficientFunds = errors.New("wallet: insufficient funds")

// Signer transfers an amount to the DAO treasury and returns the
// transaction signature.
type Signer interface {
	Transfer(ctx context.Context, amount int64, memo string) (signature string, err error)
}

// RPCSigner talks JSON-RPC to a wallet signing service.
type RPCSigner struct {
	URL      string
	Treasury string
	Client   *http.Client
}

func NewRPCSigner(url, treasury string) *RPCSigner {
	return &RPCSigner{
		URL:      url,
		Treasury: treasury,
		Client:   &http.Client{Timeout: 30 * time.Second},
	}
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
}

type transferParams struct {
	Destination string `json:"destination"`
	Amount      int64  `json:"amount"`
	Memo        string `json:"memo"`
}

type rpcResponse struct {
	Result struct {
		Signature string `json:"signature"`
	} `json:"result"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *RPCSigner) Transfer(ctx context.Context, amount int64, memo string) (string, error) {
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "sendTransfer",
		Params:  transferParams{Destination: s.Treasury, Amount: amount, Memo: memo},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("wallet rpc: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("wallet rpc: reading response: %w", err)
	}

	var out rpcResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("wallet rpc: bad response: %w", err)
	}
	if out.Error != nil {
		if strings.Contains(out.Error.Message, "insufficient") {
			return "", ErrInsufficientFunds
		}
		return "", fmt.Errorf("wallet rpc: %s", out.Error.Message)
	}
	if out.Result.Signature == "" {
		return "", errors.New("wallet rpc: empty signature")
	}
	return out.Result.Signature, nil
}
