package accountrepo

import (
	"context"
	"database/sql"
	"log"
	"os"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/lumenbank/lumen-bank/internal/domain"
	"github.com/lumenbank/lumen-bank/internal/userrepo"
	"github.com/lumenbank/lumen-bank/pkg/configpkg"
	"github.com/lumenbank/lumen-bank/pkg/passpkg"
	"github.com/lumenbank/lumen-bank/pkg/randompkg"
)

var (
	testRepo     *RepoPGS
	testUserRepo *userrepo.RepoPGS
)

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
	testUserRepo = userrepo.NewRepoPGS(testDB)

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

	user, err := testUserRepo.Create(context.Background(), arg)
	require.NoError(t, err)
	require.NotEmpty(t, user)

	return user
}

func createRandomAccount(t *testing.T, user domain.User) domain.Account {
	t.Helper()

	name := randompkg.AccountName()

	account, err := testRepo.Create(context.Background(), user.Username, name)
	require.NoError(t, err)
	require.NotEmpty(t, account)

	require.Equal(t, user.Username, account.Owner)
	require.Equal(t, name, account.Name)
	require.NotZero(t, account.ID)
	require.NotZero(t, account.CreatedAt)

	return account
}

func TestCreate(t *testing.T) {
	user := createRandomUser(t)
	createRandomAccount(t, user)
}

func TestCreateOwnerNotFound(t *testing.T) {
	account, err := testRepo.Create(context.Background(), "missing", randompkg.AccountName())
	require.EqualError(t, err, domain.ErrOwnerNotFound.Error())
	require.Empty(t, account)
}

func TestGet(t *testing.T) {
	user := createRandomUser(t)
	account := createRandomAccount(t, user)

	account2, err := testRepo.Get(context.Background(), account.ID)
	require.NoError(t, err)
	require.NotEmpty(t, account2)

	require.Equal(t, account.ID, account2.ID)
	require.Equal(t, account.Owner, account2.Owner)
	require.Equal(t, account.Name, account2.Name)
	require.WithinDuration(t, account.CreatedAt, account2.CreatedAt, time.Second)
}

func TestGetNotFound(t *testing.T) {
	account, err := testRepo.Get(context.Background(), -1)
	require.EqualError(t, err, domain.ErrAccountNotFound.Error())
	require.Empty(t, account)
}

func TestListByOwner(t *testing.T) {
	user := createRandomUser(t)

	n := 10
	for i := 0; i < n; i++ {
		createRandomAccount(t, user)
	}

	accounts, err := testRepo.ListByOwner(context.Background(), user.Username, 5, 0)
	require.NoError(t, err)
	require.Len(t, accounts, 5)

	for i, account := range accounts {
		require.NotEmpty(t, account)
		require.Equal(t, user.Username, account.Owner)

		if i > 0 {
			require.Greater(t, account.ID, accounts[i-1].ID)
		}
	}

	rest, err := testRepo.ListByOwner(context.Background(), user.Username, 5, 5)
	require.NoError(t, err)
	require.Len(t, rest, 5)
	require.Greater(t, rest[0].ID, accounts[4].ID)
}
