package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinecove/cabin-console/internal/domain"
	guestDomain "github.com/pinecove/cabin-console/internal/domain/guest"
)

func TestGuestFindByEmail(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := NewGormGuestRepository(db)

	guest := seedGuest(t, db, "ada@example.com")

	got, err := repo.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, guest.ID(), got.ID())
	assert.Equal(t, "Ada Lovelace", got.Name())

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.Equal(t, domain.CodeNotFound, domain.CodeOf(err))
}

func TestGuestEmailUnique(t *testing.T) {
	db := setupDB(t)

	seedGuest(t, db, "ada@example.com")

	dup, err := guestDomain.NewGuest("Someone Else", "ada@example.com", "", "")
	require.NoError(t, err)
	assert.Error(t, NewGormGuestRepository(db).Save(context.Background(), dup))
}

func TestGuestDelete(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := NewGormGuestRepository(db)

	guest := seedGuest(t, db, "ada@example.com")
	require.NoError(t, repo.Delete(ctx, guest.ID()))

	_, err := repo.FindByID(ctx, guest.ID())
	assert.Equal(t, domain.CodeNotFound, domain.CodeOf(err))
}
