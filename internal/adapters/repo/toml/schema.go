package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version   int              `toml:"version"`
	Purchases []purchaseSchema `toml:"purchases"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported purchase log schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

// purchaseSchema stores amounts as decimal strings; wei values overflow
// TOML integers.
type purchaseSchema struct {
	TxHash      string `toml:"tx_hash"`
	Account     string `toml:"account"`
	Contract    string `toml:"contract"`
	PriceWei    string `toml:"price_wei,omitempty"`
	Status      string `toml:"status"`
	Reason      string `toml:"reason,omitempty"`
	PurchasedAt string `toml:"purchased_at,omitempty"`
	VerifiedAt  string `toml:"verified_at,omitempty"`
}
