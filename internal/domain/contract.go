package domain

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/tidwall/gjson"
)

type Address string

// ContractDescriptor identifies the access contract and its interface schema.
// It is immutable once loaded.
type ContractDescriptor struct {
	Address Address
	ABI     json.RawMessage
}

func (d ContractDescriptor) Validate() error {
	if strings.TrimSpace(string(d.Address)) == "" {
		return errors.New("contract address is required")
	}
	if len(d.ABI) == 0 || !gjson.ValidBytes(d.ABI) {
		return errors.New("contract abi is not valid json")
	}
	abi := gjson.ParseBytes(d.ABI)
	if !abi.IsArray() || len(abi.Array()) == 0 {
		return errors.New("contract abi is empty")
	}

	return nil
}

// HasFunction reports whether the ABI declares a function with the given name.
func (d ContractDescriptor) HasFunction(name string) bool {
	found := false
	gjson.ParseBytes(d.ABI).ForEach(func(_, entry gjson.Result) bool {
		if entry.Get("type").String() == "function" && entry.Get("name").String() == name {
			found = true
			return false
		}
		return true
	})
	return found
}
