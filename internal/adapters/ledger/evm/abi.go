package evm

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/bnema/sensor-access-cli/internal/domain"
	"github.com/tidwall/gjson"
	"golang.org/x/crypto/sha3"
)

const (
	priceFunction    = "accessPrice"
	purchaseFunction = "purchaseAccess"
)

// functionSignature renders the canonical "name(type,...)" form of the named
// function from the contract ABI.
func functionSignature(abi []byte, name string) (string, error) {
	var (
		signature string
		found     bool
	)
	gjson.ParseBytes(abi).ForEach(func(_, entry gjson.Result) bool {
		if entry.Get("type").String() != "function" || entry.Get("name").String() != name {
			return true
		}

		var inputs []string
		entry.Get("inputs").ForEach(func(_, input gjson.Result) bool {
			inputs = append(inputs, input.Get("type").String())
			return true
		})
		signature = name + "(" + strings.Join(inputs, ",") + ")"
		found = true
		return false
	})
	if !found {
		return "", fmt.Errorf("abi has no function %q", name)
	}

	return signature, nil
}

func selector(signature string) []byte {
	hash := sha3.NewLegacyKeccak256()
	_, _ = hash.Write([]byte(signature))
	return hash.Sum(nil)[:4]
}

// callData encodes a call to a no-argument function.
func callData(descriptor domain.ContractDescriptor, name string) ([]byte, error) {
	signature, err := functionSignature(descriptor.ABI, name)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(signature, "()") {
		return nil, fmt.Errorf("function %s takes arguments", signature)
	}

	return selector(signature), nil
}

func encodeHex(data []byte) string {
	return "0x" + hex.EncodeToString(data)
}

func encodeQuantity(value *big.Int) string {
	if value == nil || value.Sign() == 0 {
		return "0x0"
	}
	return "0x" + value.Text(16)
}

func decodeQuantity(value string) (*big.Int, error) {
	digits := strings.TrimPrefix(strings.TrimPrefix(value, "0x"), "0X")
	if digits == "" {
		return nil, fmt.Errorf("empty quantity %q", value)
	}

	n, ok := new(big.Int).SetString(digits, 16)
	if !ok {
		return nil, fmt.Errorf("invalid quantity %q", value)
	}
	return n, nil
}

// decodeUint256 reads the first 32-byte word of an ABI-encoded return value.
func decodeUint256(value string) (*big.Int, error) {
	digits := strings.TrimPrefix(value, "0x")
	if len(digits) < 64 {
		return nil, fmt.Errorf("return data too short: %d hex digits", len(digits))
	}

	word, err := hex.DecodeString(digits[:64])
	if err != nil {
		return nil, fmt.Errorf("decode return data: %w", err)
	}
	return new(big.Int).SetBytes(word), nil
}
