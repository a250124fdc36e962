package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alfagnish/supplychain-api/internal/models"
)

func TestNextID(t *testing.T) {
	tests := []struct {
		name string
		ids  []int
		want int
	}{
		{"empty", nil, 1},
		{"sequential", []int{1, 2, 3, 4}, 5},
		{"gap", []int{1, 7, 3}, 8},
		{"unordered", []int{9, 2}, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextID(tt.ids))
		})
	}
}

func TestNew_Seeded(t *testing.T) {
	s := New()

	accounts := s.Accounts.All()
	require.Len(t, accounts, 4)
	assert.Equal(t, []string{"admin", "supp", "manu", "retailer"}, []string{
		accounts[0].Username, accounts[1].Username, accounts[2].Username, accounts[3].Username,
	})
	assert.Equal(t, 4, s.Profiles.Len())
	assert.Equal(t, 4, s.Products.Len())
}

func TestInsert_AssignsIDs(t *testing.T) {
	s := NewEmpty()

	first := s.Products.Insert(models.Product{SerialNumber: "A"})
	second := s.Products.Insert(models.Product{SerialNumber: "B", ID: 99})

	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID, "caller-supplied id is overwritten")

	seeded := New()
	added := seeded.Products.Insert(models.Product{SerialNumber: "CH005"})
	assert.Equal(t, 5, added.ID)
}

func TestInsert_Concurrent(t *testing.T) {
	s := NewEmpty()

	const n = 200
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Accounts.Insert(models.Account{Username: "u"})
		}()
	}
	wg.Wait()

	seen := make(map[int]bool, n)
	for _, a := range s.Accounts.All() {
		assert.False(t, seen[a.ID], "duplicate id %d", a.ID)
		seen[a.ID] = true
	}
	assert.Len(t, seen, n)
}

func TestAll_ReturnsCopy(t *testing.T) {
	s := New()
	all := s.Accounts.All()
	all[0].Username = "mutated"

	a, ok := s.Authenticate("admin", "admin")
	require.True(t, ok)
	assert.Equal(t, "admin", a.Username)

	assert.NotNil(t, NewEmpty().Profiles.All())
}

func TestAuthenticate(t *testing.T) {
	s := New()

	a, ok := s.Authenticate("admin", "admin")
	require.True(t, ok)
	assert.Equal(t, models.Account{ID: 1, Username: "admin", Password: "admin", Role: "admin"}, a)

	_, ok = s.Authenticate("admin", "wrong")
	assert.False(t, ok)

	_, ok = s.Authenticate("Admin", "admin")
	assert.False(t, ok, "match is case-sensitive")
}

func TestFinders_FirstMatchWins(t *testing.T) {
	s := New()
	s.Products.Insert(models.Product{SerialNumber: "CH001", Name: "Duplicate"})

	p, ok := s.ProductBySerial("CH001")
	require.True(t, ok)
	assert.Equal(t, 1, p.ID)

	_, ok = s.ProductBySerial("missing")
	assert.False(t, ok)

	prof, ok := s.ProfileByUsername("manu")
	require.True(t, ok)
	assert.Equal(t, "Manufacturer User", prof.Name)
}
