package toml

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/bnema/sensor-access-cli/internal/domain"
	"github.com/bnema/sensor-access-cli/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	historyFileMode = 0o600
	historyDirMode  = 0o700
	tempFilePattern = ".purchases-*.toml.tmp"
)

// PurchaseLog persists purchase records in a TOML file, one entry per
// transaction hash.
type PurchaseLog struct {
	path string
	mu   *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.PurchaseLog = (*PurchaseLog)(nil)

func NewPurchaseLog(path string) (*PurchaseLog, error) {
	if path == "" {
		return nil, errors.New("purchase log path is empty")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve purchase log path: %w", err)
	}
	absPath = filepath.Clean(absPath)

	return &PurchaseLog{path: absPath, mu: lockForPath(absPath)}, nil
}

func (l *PurchaseLog) Path() string {
	return l.path
}

func (l *PurchaseLog) Save(ctx context.Context, record domain.PurchaseRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if record.TxHash == "" {
		return errors.New("purchase record has no transaction hash")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	file, err := l.readSchema()
	if err != nil {
		return err
	}

	encoded := toSchema(record)
	updated := false
	for i := range file.Purchases {
		if file.Purchases[i].TxHash == encoded.TxHash {
			file.Purchases[i] = mergeSchema(file.Purchases[i], encoded)
			updated = true
			break
		}
	}
	if !updated {
		file.Purchases = append(file.Purchases, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return l.writeSchema(file)
}

func (l *PurchaseLog) Get(ctx context.Context, hash domain.TxHash) (domain.PurchaseRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.PurchaseRecord{}, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	file, err := l.readSchema()
	if err != nil {
		return domain.PurchaseRecord{}, err
	}

	for _, entry := range file.Purchases {
		if entry.TxHash == string(hash) {
			return fromSchema(entry), nil
		}
	}

	return domain.PurchaseRecord{}, domain.ErrPurchaseNotFound
}

// List returns all records, most recent purchase first.
func (l *PurchaseLog) List(ctx context.Context) ([]domain.PurchaseRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	file, err := l.readSchema()
	if err != nil {
		return nil, err
	}

	records := make([]domain.PurchaseRecord, 0, len(file.Purchases))
	for _, entry := range file.Purchases {
		records = append(records, fromSchema(entry))
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].PurchasedAt.After(records[j].PurchasedAt)
	})

	return records, nil
}

func (l *PurchaseLog) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{Version: currentSchemaVersion}, nil
		}
		return fileSchema{}, fmt.Errorf("read purchase log: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode purchase log: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (l *PurchaseLog) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(l.path), historyDirMode); err != nil {
		return fmt.Errorf("create purchase log directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode purchase log: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(l.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp purchase log: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp purchase log: %w", err)
	}
	if err := tempFile.Chmod(historyFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp purchase log: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp purchase log: %w", err)
	}

	if err := os.Rename(tempName, l.path); err != nil {
		return fmt.Errorf("replace purchase log: %w", err)
	}
	cleanup = false

	return nil
}

// mergeSchema applies an update without erasing purchase details that a
// verification-only update does not carry.
func mergeSchema(existing, update purchaseSchema) purchaseSchema {
	merged := update
	if merged.Account == "" {
		merged.Account = existing.Account
	}
	if merged.Contract == "" {
		merged.Contract = existing.Contract
	}
	if merged.PriceWei == "" {
		merged.PriceWei = existing.PriceWei
	}
	if merged.PurchasedAt == "" {
		merged.PurchasedAt = existing.PurchasedAt
	}
	return merged
}

func toSchema(record domain.PurchaseRecord) purchaseSchema {
	entry := purchaseSchema{
		TxHash:      string(record.TxHash),
		Account:     string(record.Account),
		Contract:    string(record.Contract),
		Status:      string(record.Status),
		Reason:      record.Reason,
		PurchasedAt: formatTime(record.PurchasedAt),
		VerifiedAt:  formatTime(record.VerifiedAt),
	}
	if record.Price != nil {
		entry.PriceWei = record.Price.String()
	}
	if entry.Status == "" {
		entry.Status = string(domain.PurchaseStatusUnverified)
	}
	return entry
}

func fromSchema(entry purchaseSchema) domain.PurchaseRecord {
	record := domain.PurchaseRecord{
		TxHash:      domain.TxHash(entry.TxHash),
		Account:     domain.Address(entry.Account),
		Contract:    domain.Address(entry.Contract),
		Status:      domain.PurchaseStatus(entry.Status),
		Reason:      entry.Reason,
		PurchasedAt: parseTime(entry.PurchasedAt),
		VerifiedAt:  parseTime(entry.VerifiedAt),
	}
	if entry.PriceWei != "" {
		if price, ok := new(big.Int).SetString(entry.PriceWei, 10); ok {
			record.Price = price
		}
	}
	return record
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339Nano)
}
