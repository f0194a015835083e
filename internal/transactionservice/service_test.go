package transactionservice

import (
	"context"
	"sync"
	"testing"
	"time"

	gomock "github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"

	"github.com/lumenbank/lumen-bank/internal/domain"
	"github.com/lumenbank/lumen-bank/internal/test"
	"github.com/lumenbank/lumen-bank/pkg/errorspkg"
	"github.com/lumenbank/lumen-bank/pkg/randompkg"
)

func TestAppend(t *testing.T) {
	t.Parallel()

	owner := randompkg.Owner()
	account := test.RandomAccount(owner)
	history := test.DepositHistory(account.ID, "50.25", 2) // balance 100.50

	created := domain.Transaction{
		ID:        int64(len(history) + 1),
		AccountID: account.ID,
		Kind:      domain.KindWithdrawal,
		Amount:    "100.5",
		CreatedAt: time.Now(),
	}

	testCases := []struct {
		name       string
		kind       domain.TransactionKind
		amount     string
		buildStubs func(repo *MockRepo, accounts *MockAccountService)
		wantError  error
	}{
		{
			name:   "DepositOK",
			kind:   domain.KindDeposit,
			amount: "150.75",
			buildStubs: func(repo *MockRepo, accounts *MockAccountService) {
				accounts.EXPECT().
					GetOwned(gomock.Any(), gomock.Eq(owner), gomock.Eq(account.ID)).
					Times(1).
					Return(account, nil)
				repo.EXPECT().
					ListByAccount(gomock.Any(), gomock.Eq(account.ID)).
					Times(1).
					Return(history, nil)
				repo.EXPECT().
					Create(gomock.Any(), gomock.Eq(account.ID), gomock.Eq(domain.KindDeposit), gomock.Eq("150.75")).
					Times(1).
					Return(created, nil)
			},
		},
		{
			// Withdrawing the exact balance must leave exactly zero.
			name:   "WithdrawalOfExactBalance",
			kind:   domain.KindWithdrawal,
			amount: "100.50",
			buildStubs: func(repo *MockRepo, accounts *MockAccountService) {
				accounts.EXPECT().
					GetOwned(gomock.Any(), gomock.Eq(owner), gomock.Eq(account.ID)).
					Times(1).
					Return(account, nil)
				repo.EXPECT().
					ListByAccount(gomock.Any(), gomock.Eq(account.ID)).
					Times(1).
					Return(history, nil)
				repo.EXPECT().
					Create(gomock.Any(), gomock.Eq(account.ID), gomock.Eq(domain.KindWithdrawal), gomock.Eq("100.5")).
					Times(1).
					Return(created, nil)
			},
		},
		{
			name:   "InsufficientBalance",
			kind:   domain.KindWithdrawal,
			amount: "1000",
			buildStubs: func(repo *MockRepo, accounts *MockAccountService) {
				accounts.EXPECT().
					GetOwned(gomock.Any(), gomock.Eq(owner), gomock.Eq(account.ID)).
					Times(1).
					Return(account, nil)
				repo.EXPECT().
					ListByAccount(gomock.Any(), gomock.Eq(account.ID)).
					Times(1).
					Return(history, nil)
				repo.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantError: domain.ErrInsufficientBalance,
		},
		{
			name:   "NegativeDeposit",
			kind:   domain.KindDeposit,
			amount: "-10",
			buildStubs: func(repo *MockRepo, accounts *MockAccountService) {
				accounts.EXPECT().
					GetOwned(gomock.Any(), gomock.Eq(owner), gomock.Eq(account.ID)).
					Times(1).
					Return(account, nil)
				repo.EXPECT().
					ListByAccount(gomock.Any(), gomock.Eq(account.ID)).
					Times(1).
					Return(history, nil)
				repo.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantError: domain.ErrInvalidAmount,
		},
		{
			name:   "UnparsableAmount",
			kind:   domain.KindDeposit,
			amount: "ten",
			buildStubs: func(repo *MockRepo, accounts *MockAccountService) {
				accounts.EXPECT().
					GetOwned(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
				repo.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantError: domain.ErrInvalidAmount,
		},
		{
			name:   "AccountNotFoundOrForeign",
			kind:   domain.KindDeposit,
			amount: "10",
			buildStubs: func(repo *MockRepo, accounts *MockAccountService) {
				accounts.EXPECT().
					GetOwned(gomock.Any(), gomock.Eq(owner), gomock.Eq(account.ID)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
				repo.EXPECT().
					ListByAccount(gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantError: domain.ErrAccountNotFound,
		},
		{
			name:   "ListRepoError",
			kind:   domain.KindDeposit,
			amount: "10",
			buildStubs: func(repo *MockRepo, accounts *MockAccountService) {
				accounts.EXPECT().
					GetOwned(gomock.Any(), gomock.Eq(owner), gomock.Eq(account.ID)).
					Times(1).
					Return(account, nil)
				repo.EXPECT().
					ListByAccount(gomock.Any(), gomock.Eq(account.ID)).
					Times(1).
					Return(nil, errorspkg.ErrInternal)
			},
			wantError: errorspkg.ErrInternal,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			accounts := NewMockAccountService(ctrl)
			service := New(repo, accounts)

			tc.buildStubs(repo, accounts)

			got, err := service.Append(context.Background(), owner, account.ID, tc.kind, tc.amount)
			if err != tc.wantError {
				t.Fatalf("service.Append(ctx, %v, %v, %v, %v) got error %v, want %v",
					owner, account.ID, tc.kind, tc.amount, err, tc.wantError)
			}

			if tc.wantError != nil {
				return
			}

			if !cmp.Equal(got, created) {
				t.Errorf("domain.Transaction = %+v, want %+v", got, created)
			}
		})
	}
}

func TestList(t *testing.T) {
	t.Parallel()

	owner := randompkg.Owner()
	account := test.RandomAccount(owner)
	history := test.DepositHistory(account.ID, "10", 3)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	accounts := NewMockAccountService(ctrl)
	service := New(repo, accounts)

	accounts.EXPECT().
		GetOwned(gomock.Any(), gomock.Eq(owner), gomock.Eq(account.ID)).
		Times(1).
		Return(account, nil)
	repo.EXPECT().
		ListByAccount(gomock.Any(), gomock.Eq(account.ID)).
		Times(1).
		Return(history, nil)

	got, err := service.List(context.Background(), owner, account.ID)
	if err != nil {
		t.Fatalf("service.List(ctx, %v, %v) returned error: %v", owner, account.ID, err)
	}

	for i := 1; i < len(got); i++ {
		prev, curr := got[i-1], got[i]
		if curr.CreatedAt.Before(prev.CreatedAt) {
			t.Fatalf("history out of order at %d: %+v before %+v", i, curr, prev)
		}
	}
}

// fakeRepo is an in-memory Repo with an artificially widened window between
// reading the history and appending to it.
type fakeRepo struct {
	mu      sync.Mutex
	nextID  int64
	history []domain.Transaction
}

func (r *fakeRepo) ListByAccount(ctx context.Context, accountID int32) ([]domain.Transaction, error) {
	r.mu.Lock()
	snapshot := make([]domain.Transaction, len(r.history))
	copy(snapshot, r.history)
	r.mu.Unlock()

	time.Sleep(10 * time.Millisecond)

	return snapshot, nil
}

func (r *fakeRepo) Create(ctx context.Context, accountID int32, kind domain.TransactionKind, amount string) (domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	tx := domain.Transaction{
		ID:        r.nextID,
		AccountID: accountID,
		Kind:      kind,
		Amount:    amount,
		CreatedAt: time.Now(),
	}
	r.history = append(r.history, tx)

	return tx, nil
}

type fakeAccountService struct {
	account domain.Account
}

func (s *fakeAccountService) GetOwned(ctx context.Context, owner string, id int32) (domain.Account, error) {
	if s.account.Owner != owner || s.account.ID != id {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	return s.account, nil
}

func TestAppendSerializesConcurrentWithdrawals(t *testing.T) {
	t.Parallel()

	owner := randompkg.Owner()
	account := test.RandomAccount(owner)

	repo := &fakeRepo{
		nextID: 1,
		history: []domain.Transaction{{
			ID:        1,
			AccountID: account.ID,
			Kind:      domain.KindDeposit,
			Amount:    "100",
			CreatedAt: time.Now(),
		}},
	}

	service := New(repo, &fakeAccountService{account: account})

	const workers = 2

	errs := make(chan error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := service.Append(context.Background(), owner, account.ID, domain.KindWithdrawal, "80")
			errs <- err
		}()
	}

	wg.Wait()
	close(errs)

	var succeeded, rejected int

	for err := range errs {
		switch err {
		case nil:
			succeeded++
		case domain.ErrInsufficientBalance:
			rejected++
		default:
			t.Fatalf("service.Append returned unexpected error: %v", err)
		}
	}

	if succeeded != 1 || rejected != 1 {
		t.Fatalf("concurrent withdrawals: %d succeeded, %d rejected, want exactly 1 and 1", succeeded, rejected)
	}
}
