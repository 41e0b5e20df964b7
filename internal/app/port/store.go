package port

import "github.com/oakencore/gringotts/internal/domain/entity"

// AddressBookStore is the persisted mapping of account names to tracked
// accounts. The query core only reads it; mutation belongs to the CLI.
type AddressBookStore interface {
	LoadAll() ([]entity.TrackedAccount, error)
}
