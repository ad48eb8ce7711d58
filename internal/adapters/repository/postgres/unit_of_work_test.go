package postgres_test

import (
	"context"
	"testing"

	"assetvault/internal/adapters/repository/postgres"
	"assetvault/internal/core/domain"
	"assetvault/internal/core/port"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSqlUnitOfWork_Execute(t *testing.T) {

	//Arrange
	dbConnection, cleanup, truncate := postgres.NewTestDB(t)
	defer cleanup()

	ctx := context.Background()
	uow := postgres.NewUnitOfWork(dbConnection)
	sessionRepo := postgres.NewSQLUploadSessionRepository(dbConnection)

	t.Run("Should commit when no error", func(t *testing.T) {
		defer truncate()
		session := newSession(domain.SessionStatusInitiating)

		//act
		err := uow.Execute(ctx, func(u port.UnitOfWork) error {
			return u.SessionRepo().Create(ctx, session)
		})

		//assert
		require.NoError(t, err)
		saved, err := sessionRepo.FindByID(ctx, session.ID)
		require.NoError(t, err)
		require.Equal(t, session.ID, saved.ID)
	})

	t.Run("Should rollback when error occurs", func(t *testing.T) {
		session := newSession(domain.SessionStatusInitiating)

		//act
		err := uow.Execute(ctx, func(u port.UnitOfWork) error {
			_ = u.SessionRepo().Create(ctx, session)
			return assert.AnError
		})

		//assert
		require.ErrorIs(t, err, assert.AnError)
		_, err = sessionRepo.FindByID(ctx, session.ID)
		require.ErrorIs(t, err, domain.ErrSessionNotFound)
	})
}
