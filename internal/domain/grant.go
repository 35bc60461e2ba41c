package domain

type AccessGrant struct {
	TxHash  TxHash
	Granted bool
	Reason  string
}
