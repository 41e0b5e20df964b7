// Package storage persists the address book as a JSON file under the
// user's home directory.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/oakencore/gringotts/internal/domain/entity"
)

// DefaultPath returns ~/.gringotts/addresses.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".gringotts", "addresses.json"), nil
}

// WalletAddress is a stored chain wallet entry.
type WalletAddress struct {
	Company string `json:"company"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Chain   string `json:"chain"`
}

// BankingAccount is a stored bank account entry.
type BankingAccount struct {
	Company   string `json:"company"`
	Name      string `json:"name"`
	AccountID string `json:"account_id"`
	Service   string `json:"service"`
}

// AddressBook is the on-disk document: wallets and banking accounts kept in
// separate lists, names unique across both.
type AddressBook struct {
	Addresses       []WalletAddress  `json:"addresses"`
	BankingAccounts []BankingAccount `json:"banking_accounts"`
}

// FileStore reads and writes the address book at a fixed path and adapts
// its entries to tracked accounts.
type FileStore struct {
	path string
}

// NewFileStore uses the given path, or the default under the home
// directory when empty.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return &FileStore{path: path}, nil
}

// Load reads the book from disk. A missing file is an empty book.
func (s *FileStore) Load() (*AddressBook, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &AddressBook{}, nil
		}
		return nil, fmt.Errorf("failed to read address book %s: %w", s.path, err)
	}

	var book AddressBook
	if err := json.Unmarshal(data, &book); err != nil {
		return nil, entity.NewConfigurationError("corrupt address book %s: %v", s.path, err)
	}
	for i := range book.Addresses {
		book.Addresses[i].Company = strings.TrimSpace(book.Addresses[i].Company)
		book.Addresses[i].Name = strings.TrimSpace(book.Addresses[i].Name)
		book.Addresses[i].Address = strings.TrimSpace(book.Addresses[i].Address)
	}
	return &book, nil
}

// Save writes the book atomically: temp file in the same directory, then
// rename.
func (s *FileStore) Save(book *AddressBook) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create storage directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(book, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize address book: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "addresses-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write address book: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace address book: %w", err)
	}
	return nil
}

// LoadAll returns every stored entry as a tracked account, wallets first,
// then banking accounts, each list in stored order.
func (s *FileStore) LoadAll() ([]entity.TrackedAccount, error) {
	book, err := s.Load()
	if err != nil {
		return nil, err
	}

	accounts := make([]entity.TrackedAccount, 0, len(book.Addresses)+len(book.BankingAccounts))
	for _, addr := range book.Addresses {
		kind, err := entity.ParseProviderKind(addr.Chain)
		if err != nil {
			return nil, entity.NewConfigurationError("address %q: %v", addr.Name, err)
		}
		accounts = append(accounts, entity.TrackedAccount{
			Name:       addr.Name,
			Identifier: addr.Address,
			Kind:       kind,
			Company:    addr.Company,
		})
	}
	for _, bank := range book.BankingAccounts {
		kind, err := entity.ParseProviderKind(bank.Service)
		if err != nil {
			return nil, entity.NewConfigurationError("banking account %q: %v", bank.Name, err)
		}
		accounts = append(accounts, entity.TrackedAccount{
			Name:       bank.Name,
			Identifier: bank.AccountID,
			Kind:       kind,
			Company:    bank.Company,
		})
	}
	return accounts, nil
}

// AddAddress stores a wallet entry, auto-detecting the chain when none is
// given: a 0x-prefixed 40-hex-digit address is treated as Ethereum,
// anything else as Solana.
func (s *FileStore) AddAddress(company, name, address, chain string) error {
	company = strings.TrimSpace(company)
	name = strings.TrimSpace(name)
	address = strings.TrimSpace(address)
	if name == "" {
		return fmt.Errorf("name must not be empty")
	}
	if address == "" {
		return fmt.Errorf("address must not be empty")
	}

	book, err := s.Load()
	if err != nil {
		return err
	}
	if nameTaken(book, name) {
		return fmt.Errorf("an entry named %q already exists", name)
	}

	kind, err := detectChain(address, chain)
	if err != nil {
		return err
	}
	book.Addresses = append(book.Addresses, WalletAddress{
		Company: company,
		Name:    name,
		Address: address,
		Chain:   string(kind),
	})
	return s.Save(book)
}

// AddBankingAccount stores a bank account entry.
func (s *FileStore) AddBankingAccount(company, name, accountID, service string) error {
	company = strings.TrimSpace(company)
	name = strings.TrimSpace(name)
	accountID = strings.TrimSpace(accountID)
	if name == "" {
		return fmt.Errorf("name must not be empty")
	}

	kind, err := entity.ParseProviderKind(service)
	if err != nil {
		return err
	}
	if !kind.IsBank() {
		return fmt.Errorf("%q is not a banking service", service)
	}

	book, err := s.Load()
	if err != nil {
		return err
	}
	if nameTaken(book, name) {
		return fmt.Errorf("an entry named %q already exists", name)
	}

	book.BankingAccounts = append(book.BankingAccounts, BankingAccount{
		Company:   company,
		Name:      name,
		AccountID: accountID,
		Service:   string(kind),
	})
	return s.Save(book)
}

// RemoveByIdentifier deletes entries whose name or identifier matches, from
// both lists.
func (s *FileStore) RemoveByIdentifier(identifier string) error {
	book, err := s.Load()
	if err != nil {
		return err
	}

	removed := false
	addresses := book.Addresses[:0]
	for _, addr := range book.Addresses {
		if addr.Name == identifier || addr.Address == identifier {
			removed = true
			continue
		}
		addresses = append(addresses, addr)
	}
	book.Addresses = addresses

	banks := book.BankingAccounts[:0]
	for _, bank := range book.BankingAccounts {
		if bank.Name == identifier || bank.AccountID == identifier {
			removed = true
			continue
		}
		banks = append(banks, bank)
	}
	book.BankingAccounts = banks

	if !removed {
		return fmt.Errorf("no entry named or identified by %q", identifier)
	}
	return s.Save(book)
}

func nameTaken(book *AddressBook, name string) bool {
	for _, addr := range book.Addresses {
		if addr.Name == name {
			return true
		}
	}
	for _, bank := range book.BankingAccounts {
		if bank.Name == name {
			return true
		}
	}
	return false
}

func detectChain(address, chain string) (entity.ProviderKind, error) {
	if chain != "" {
		return entity.ParseProviderKind(chain)
	}
	if len(address) == 42 && strings.HasPrefix(address, "0x") && isHex(address[2:]) {
		return entity.KindEthereum, nil
	}
	return entity.KindSolana, nil
}

func isHex(s string) bool {
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
