package rpcresolver

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"nftproxy/config"
)

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result string    `json:"result"`
	Error  *rpcError `json:"error"`
}

// callResult is the outcome of a single eth_call attempt against one
// endpoint: either a decoded string result, or a classified failure that
// tells the caller whether to keep retrying on this endpoint (fall through
// to the ERC-1155 fallback) or move on to the next one.
type callResult struct {
	value        string
	networkClass bool // transport failure, timeout, non-2xx, or similar
	revertClass  bool // contract-level revert / unsupported selector
	errMessage   string
}

// ethCall issues a single eth_call JSON-RPC request against endpoint and
// classifies the outcome per spec.md §4.3.
func ethCall(endpoint, contract, data string) callResult {
	reqBody := rpcRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "eth_call",
		Params: []any{
			map[string]string{"to": contract, "data": data},
			"latest",
		},
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return callResult{networkClass: true, errMessage: fmt.Sprintf("encoding request: %v", err)}
	}

	agent := fiber.Post(endpoint)
	agent.Timeout(config.RPCCallTimeout)
	agent.Set("Content-Type", "application/json")
	agent.Body(bodyBytes)

	status, respBody, errs := agent.Bytes()
	if len(errs) > 0 {
		msg := errs[0].Error()
		return callResult{networkClass: true, errMessage: msg}
	}
	if status < 200 || status >= 300 {
		msg := fmt.Sprintf("rpc http status %d", status)
		return callResult{networkClass: true, errMessage: msg}
	}

	var resp rpcResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		msg := fmt.Sprintf("rpc http decode: %v", err)
		return callResult{networkClass: true, errMessage: msg}
	}

	if resp.Error != nil {
		msg := resp.Error.Message
		switch {
		case isRevertMessage(msg):
			return callResult{revertClass: true, errMessage: msg}
		case isNetworkMessage(msg):
			return callResult{networkClass: true, errMessage: msg}
		default:
			return callResult{errMessage: msg}
		}
	}

	if resp.Result == "" {
		return callResult{errMessage: "empty rpc result"}
	}

	value, err := decodeStringResult(resp.Result)
	if err != nil {
		return callResult{errMessage: fmt.Sprintf("decoding result: %v", err)}
	}
	return callResult{value: strings.ReplaceAll(value, "\x00", "")}
}

var networkMarkers = []string{"timeout", "aborted", "fetch", "network", "rpc http"}
var revertMarkers = []string{"revert", "execution reverted", "call exception", "unsupported selector", "unsupported method"}

func isNetworkMessage(msg string) bool {
	lower := strings.ToLower(msg)
	for _, m := range networkMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

func isRevertMessage(msg string) bool {
	lower := strings.ToLower(msg)
	for _, m := range revertMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}
