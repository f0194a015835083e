package userrepo

import (
	"context"
	"database/sql"
	"log"
	"os"
	"testing"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/lumenbank/lumen-bank/internal/domain"
	"github.com/lumenbank/lumen-bank/pkg/configpkg"
	"github.com/lumenbank/lumen-bank/pkg/passpkg"
	"github.com/lumenbank/lumen-bank/pkg/randompkg"
)

var testRepo *RepoPGS

func TestMain(m *testing.M) {
	config, err := configpkg.Load("../../configs")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	testDB, err := sql.Open(config.DBDriver, config.DBSource)
	if err != nil {
		log.Fatal("cannot connect to db:", err)
	}

	testRepo = NewRepoPGS(testDB)

	os.Exit(m.Run())
}

func createRandomUser(t *testing.T) domain.User {
	t.Helper()

	hashedPassword, err := passpkg.Hash(randompkg.String(10))
	require.NoError(t, err)

	arg := domain.CreateUserParams{
		Username:       randompkg.Owner(),
		HashedPassword: hashedPassword,
	}

	user, err := testRepo.Create(context.Background(), arg)
	require.NoError(t, err)
	require.NotEmpty(t, user)

	require.Equal(t, arg.Username, user.Username)
	require.Equal(t, arg.HashedPassword, user.HashedPassword)
	require.NotZero(t, user.CreatedAt)

	return user
}

func TestCreate(t *testing.T) {
	createRandomUser(t)
}

func TestCreateDuplicateUsername(t *testing.T) {
	user := createRandomUser(t)

	arg := domain.CreateUserParams{
		Username:       user.Username,
		HashedPassword: user.HashedPassword,
	}

	duplicate, err := testRepo.Create(context.Background(), arg)
	require.EqualError(t, err, domain.ErrUsernameAlreadyExists.Error())
	require.Empty(t, duplicate)
}

func TestGet(t *testing.T) {
	user := createRandomUser(t)

	user2, err := testRepo.Get(context.Background(), user.Username)
	require.NoError(t, err)
	require.NotEmpty(t, user2)

	require.Equal(t, user.Username, user2.Username)
	require.Equal(t, user.HashedPassword, user2.HashedPassword)
	require.Equal(t, user.CreatedAt, user2.CreatedAt)
}

func TestGetNotFound(t *testing.T) {
	user, err := testRepo.Get(context.Background(), "missing")
	require.EqualError(t, err, domain.ErrUserNotFound.Error())
	require.Empty(t, user)
}
