package store

import "github.com/alfagnish/supplychain-api/internal/models"

// Store owns the three record collections for the lifetime of the process.
type Store struct {
	Accounts *Collection[models.Account]
	Profiles *Collection[models.Profile]
	Products *Collection[models.Product]
}

// New creates a store holding the seed records.
func New() *Store {
	return build(models.SeedAccounts(), models.SeedProfiles(), models.SeedProducts())
}

// NewEmpty creates a store with no records.
func NewEmpty() *Store {
	return build(nil, nil, nil)
}

func build(accounts []models.Account, profiles []models.Profile, products []models.Product) *Store {
	return &Store{
		Accounts: NewCollection(
			func(a models.Account) int { return a.ID },
			func(a *models.Account, id int) { a.ID = id },
			accounts,
		),
		Profiles: NewCollection(
			func(p models.Profile) int { return p.ID },
			func(p *models.Profile, id int) { p.ID = id },
			profiles,
		),
		Products: NewCollection(
			func(p models.Product) int { return p.ID },
			func(p *models.Product, id int) { p.ID = id },
			products,
		),
	}
}

// Authenticate returns the first account whose username and password both
// match exactly.
func (s *Store) Authenticate(username, password string) (models.Account, bool) {
	return s.Accounts.FindOne(func(a models.Account) bool {
		return a.Username == username && a.Password == password
	})
}

// ProfileByUsername returns the first profile with the given username.
func (s *Store) ProfileByUsername(username string) (models.Profile, bool) {
	return s.Profiles.FindOne(func(p models.Profile) bool {
		return p.Username == username
	})
}

// ProductBySerial returns the first product with the given serial number.
func (s *Store) ProductBySerial(serial string) (models.Product, bool) {
	return s.Products.FindOne(func(p models.Product) bool {
		return p.SerialNumber == serial
	})
}
