// Package storagetest holds the contract every storage.Store implementation must pass.
package storagetest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"inquirydesk/internal/domain"
	"inquirydesk/internal/storage"
	apperrors "inquirydesk/pkg/errors"
)

// Epoch is the instant the suite clock starts at. Whole seconds keep every
// backend's timestamp precision exact.
var Epoch = time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)

// Harness tells the suite how to build stores for one backend.
type Harness struct {
	// New returns an empty store that stamps records with now.
	New func(t *testing.T, now func() time.Time) storage.Store
	// Reopen closes s and returns a fresh instance over the same data, simulating
	// a process restart. Leave nil for backends without durable data.
	Reopen func(t *testing.T, s storage.Store, now func() time.Time) storage.Store
	// SeedAccount writes an account row with the given id directly to the
	// backend, bypassing s. Leave nil for backends nobody else can write to.
	SeedAccount func(t *testing.T, s storage.Store, id int64, username string)
}

// Run executes the contract suite against h.
func Run(t *testing.T, h Harness) {
	suite.Run(t, &Suite{harness: h})
}

// Suite is the shared store contract.
type Suite struct {
	suite.Suite
	harness Harness
	clock   *Clock
	store   storage.Store
}

func (s *Suite) SetupTest() {
	s.clock = NewClock(Epoch)
	s.store = s.harness.New(s.T(), s.clock.Now)
}

func (s *Suite) TearDownTest() {
	if s.store != nil {
		_ = s.store.Close(context.Background())
	}
}

func (s *Suite) ctx() context.Context {
	return context.Background()
}

// General returns a complete contact form submission.
func General(name string) domain.GeneralInquiry {
	subject := "Partnership"
	return domain.GeneralInquiry{Inquiry: domain.Inquiry{
		Name:    name,
		Email:   "ada@example.com",
		Phone:   "+44123",
		Subject: &subject,
		Message: "Interested in partnership",
	}}
}

// Investor returns a complete investor form submission.
func Investor(name string) domain.InvestorInquiry {
	company := "Example Capital"
	amount := 250000.0
	return domain.InvestorInquiry{
		Inquiry: domain.Inquiry{
			Name:    name,
			Email:   "grace@example.com",
			Phone:   "+1 555 0100",
			Message: "We would like to discuss the seed round",
		},
		Company:          &company,
		InvestmentAmount: &amount,
	}
}

func (s *Suite) TestSaveGeneralInquiryStampsAndLists() {
	in := General("Ada Lovelace")
	in.ID = "caller-chosen"
	in.CreatedAt = time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)
	in.UpdatedAt = in.CreatedAt

	saved, err := s.store.SaveGeneralInquiry(s.ctx(), in)
	s.Require().NoError(err)
	s.NotEmpty(saved.ID)
	s.NotEqual("caller-chosen", saved.ID)
	s.True(saved.CreatedAt.Equal(Epoch), "created_at %v must come from the store clock", saved.CreatedAt)
	s.True(saved.UpdatedAt.Equal(saved.CreatedAt))

	list, err := s.store.ListGeneralInquiries(s.ctx())
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	got := list[0]
	s.Equal(saved.ID, got.ID)
	s.Equal("Ada Lovelace", got.Name)
	s.Equal("ada@example.com", got.Email)
	s.Equal("+44123", got.Phone)
	s.Require().NotNil(got.Subject)
	s.Equal("Partnership", *got.Subject)
	s.Equal("Interested in partnership", got.Message)
	s.True(got.CreatedAt.Equal(Epoch))
}

func (s *Suite) TestSaveInvestorInquiryStampsAndLists() {
	in := Investor("Grace Hopper")
	in.CreatedAt = time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)

	saved, err := s.store.SaveInvestorInquiry(s.ctx(), in)
	s.Require().NoError(err)
	s.NotEmpty(saved.ID)
	s.True(saved.CreatedAt.Equal(Epoch))

	list, err := s.store.ListInvestorInquiries(s.ctx())
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	got := list[0]
	s.Equal(saved.ID, got.ID)
	s.Nil(got.Subject)
	s.Require().NotNil(got.Company)
	s.Equal("Example Capital", *got.Company)
	s.Require().NotNil(got.InvestmentAmount)
	s.InDelta(250000.0, *got.InvestmentAmount, 0.001)
}

func (s *Suite) TestOptionalInvestorFieldsStayAbsent() {
	in := Investor("No Company")
	in.Company = nil
	in.InvestmentAmount = nil

	_, err := s.store.SaveInvestorInquiry(s.ctx(), in)
	s.Require().NoError(err)

	list, err := s.store.ListInvestorInquiries(s.ctx())
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Nil(list[0].Company)
	s.Nil(list[0].InvestmentAmount)
}

func (s *Suite) TestListsAreEmptyInitially() {
	g, err := s.store.ListGeneralInquiries(s.ctx())
	s.Require().NoError(err)
	s.Empty(g)

	i, err := s.store.ListInvestorInquiries(s.ctx())
	s.Require().NoError(err)
	s.Empty(i)
}

func (s *Suite) TestListsAreNewestFirstForAnyInsertionOrder() {
	offsets := []time.Duration{2 * time.Hour, 0, 3 * time.Hour, time.Hour}
	for i, off := range offsets {
		s.clock.Set(Epoch.Add(off))
		_, err := s.store.SaveGeneralInquiry(s.ctx(), General(fmt.Sprintf("general-%d", i)))
		s.Require().NoError(err)
		_, err = s.store.SaveInvestorInquiry(s.ctx(), Investor(fmt.Sprintf("investor-%d", i)))
		s.Require().NoError(err)
	}

	g, err := s.store.ListGeneralInquiries(s.ctx())
	s.Require().NoError(err)
	s.Require().Len(g, 4)
	s.Equal([]string{"general-2", "general-0", "general-3", "general-1"},
		[]string{g[0].Name, g[1].Name, g[2].Name, g[3].Name})

	inv, err := s.store.ListInvestorInquiries(s.ctx())
	s.Require().NoError(err)
	s.Require().Len(inv, 4)
	for i := 1; i < len(inv); i++ {
		s.False(inv[i].CreatedAt.After(inv[i-1].CreatedAt), "investor list out of order at %d", i)
	}
	s.Equal("investor-2", inv[0].Name)
}

func (s *Suite) TestListOrderIsStableForTies() {
	for i := 0; i < 3; i++ {
		_, err := s.store.SaveGeneralInquiry(s.ctx(), General(fmt.Sprintf("tie-%d", i)))
		s.Require().NoError(err)
	}

	first, err := s.store.ListGeneralInquiries(s.ctx())
	s.Require().NoError(err)
	second, err := s.store.ListGeneralInquiries(s.ctx())
	s.Require().NoError(err)
	s.Equal(first, second)
}

func (s *Suite) TestListReturnsCopies() {
	_, err := s.store.SaveGeneralInquiry(s.ctx(), General("Original"))
	s.Require().NoError(err)

	list, err := s.store.ListGeneralInquiries(s.ctx())
	s.Require().NoError(err)
	list[0].Name = "Tampered"

	again, err := s.store.ListGeneralInquiries(s.ctx())
	s.Require().NoError(err)
	s.Equal("Original", again[0].Name)
}

func (s *Suite) TestStoredInquiriesDoNotShareMemoryWithCallers() {
	in := Investor("Grace Hopper")
	subject := "Seed round"
	in.Subject = &subject

	saved, err := s.store.SaveInvestorInquiry(s.ctx(), in)
	s.Require().NoError(err)

	*in.Subject = "changed by caller"
	*in.Company = "changed by caller"
	*in.InvestmentAmount = 1

	list, err := s.store.ListInvestorInquiries(s.ctx())
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	*list[0].Subject = "changed through list"
	*list[0].Company = "changed through list"
	*list[0].InvestmentAmount = -1

	again, err := s.store.ListInvestorInquiries(s.ctx())
	s.Require().NoError(err)
	s.Require().Len(again, 1)
	got := again[0]
	s.Equal(saved.ID, got.ID)
	s.Require().NotNil(got.Subject)
	s.Equal("Seed round", *got.Subject)
	s.Require().NotNil(got.Company)
	s.Equal("Example Capital", *got.Company)
	s.Require().NotNil(got.InvestmentAmount)
	s.InDelta(250000.0, *got.InvestmentAmount, 0.001)
}

func (s *Suite) TestStoredAccountsDoNotShareMemoryWithCallers() {
	draft := Draft("ada")
	created, err := s.store.CreateAccount(s.ctx(), draft)
	s.Require().NoError(err)
	*draft.DisplayName = "changed by caller"

	got, err := s.store.GetAccountByID(s.ctx(), created.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got.DisplayName)
	*got.DisplayName = "changed through lookup"

	again, err := s.store.GetAccountByUsername(s.ctx(), "ada")
	s.Require().NoError(err)
	s.Require().NotNil(again.DisplayName)
	s.Equal("User ada", *again.DisplayName)
}

func (s *Suite) TestConcurrentSavesAreAllRecorded() {
	const n = 16
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.store.SaveGeneralInquiry(s.ctx(), General(fmt.Sprintf("concurrent-%d", i)))
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		s.Require().NoError(err)
	}

	list, err := s.store.ListGeneralInquiries(s.ctx())
	s.Require().NoError(err)
	s.Len(list, n)
	ids := make(map[string]struct{}, n)
	for _, inq := range list {
		ids[inq.ID] = struct{}{}
	}
	s.Len(ids, n)
}

// Draft returns an account draft whose email derives from username.
func Draft(username string) domain.AccountDraft {
	display := "User " + username
	return domain.AccountDraft{
		Username:    username,
		Email:       username + "@example.com",
		SecretHash:  "$2a$10$hash-of-" + username,
		DisplayName: &display,
	}
}

func (s *Suite) TestAccountIDsStartAtOneAndIncrease() {
	var last int64
	for i := 0; i < 5; i++ {
		acc, err := s.store.CreateAccount(s.ctx(), Draft(fmt.Sprintf("user%d", i)))
		s.Require().NoError(err)
		if i == 0 {
			s.Equal(int64(1), acc.ID)
		}
		s.Greater(acc.ID, last)
		last = acc.ID
	}
}

func (s *Suite) TestConcurrentAccountCreationNeverRepeatsIDs() {
	const n = 10
	var wg sync.WaitGroup
	ids := make(chan int64, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			acc, err := s.store.CreateAccount(s.ctx(), Draft(fmt.Sprintf("parallel%d", i)))
			if err == nil {
				ids <- acc.ID
			}
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]struct{}, n)
	for id := range ids {
		_, dup := seen[id]
		s.False(dup, "id %d assigned twice", id)
		seen[id] = struct{}{}
	}
	s.Len(seen, n)
}

func (s *Suite) TestAccountLookups() {
	created, err := s.store.CreateAccount(s.ctx(), Draft("ada"))
	s.Require().NoError(err)

	byID, err := s.store.GetAccountByID(s.ctx(), created.ID)
	s.Require().NoError(err)
	s.Equal("ada", byID.Username)
	s.Equal("ada@example.com", byID.Email)
	s.Equal("$2a$10$hash-of-ada", byID.SecretHash)
	s.Require().NotNil(byID.DisplayName)
	s.Equal("User ada", *byID.DisplayName)

	byName, err := s.store.GetAccountByUsername(s.ctx(), "ada")
	s.Require().NoError(err)
	s.Equal(created.ID, byName.ID)

	_, err = s.store.GetAccountByID(s.ctx(), created.ID+100)
	s.True(apperrors.IsNotFound(err), "want NOT_FOUND, got %v", err)

	_, err = s.store.GetAccountByUsername(s.ctx(), "nobody")
	s.True(apperrors.IsNotFound(err), "want NOT_FOUND, got %v", err)
}

func (s *Suite) TestDuplicateAccountsAreRejectedWithoutBurningIDs() {
	first, err := s.store.CreateAccount(s.ctx(), Draft("ada"))
	s.Require().NoError(err)

	dupName := Draft("ada")
	dupName.Email = "other@example.com"
	_, err = s.store.CreateAccount(s.ctx(), dupName)
	s.True(apperrors.IsConflict(err), "want CONFLICT, got %v", err)

	dupEmail := Draft("someone")
	dupEmail.Email = "ada@example.com"
	_, err = s.store.CreateAccount(s.ctx(), dupEmail)
	s.True(apperrors.IsConflict(err), "want CONFLICT, got %v", err)

	next, err := s.store.CreateAccount(s.ctx(), Draft("grace"))
	s.Require().NoError(err)
	s.Equal(first.ID+1, next.ID)
}

func (s *Suite) TestCreateAccountSkipsIDsWrittenElsewhere() {
	if s.harness.SeedAccount == nil {
		s.T().Skip("backend has no writers besides the store")
	}

	first, err := s.store.CreateAccount(s.ctx(), Draft("ada"))
	s.Require().NoError(err)
	s.harness.SeedAccount(s.T(), s.store, first.ID+1, "elsewhere")

	next, err := s.store.CreateAccount(s.ctx(), Draft("grace"))
	s.Require().NoError(err, "a taken id must not surface as a username conflict")
	s.Greater(next.ID, first.ID+1)

	later, err := s.store.CreateAccount(s.ctx(), Draft("linus"))
	s.Require().NoError(err)
	s.Greater(later.ID, next.ID)

	seeded, err := s.store.GetAccountByID(s.ctx(), first.ID+1)
	s.Require().NoError(err)
	s.Equal("elsewhere", seeded.Username)
}

func (s *Suite) TestIdentityRecoveryAfterRestart() {
	if s.harness.Reopen == nil {
		s.T().Skip("backend keeps no data across restarts")
	}

	var last int64
	for i := 0; i < 3; i++ {
		acc, err := s.store.CreateAccount(s.ctx(), Draft(fmt.Sprintf("before%d", i)))
		s.Require().NoError(err)
		last = acc.ID
	}
	_, err := s.store.SaveGeneralInquiry(s.ctx(), General("Survivor"))
	s.Require().NoError(err)

	s.store = s.harness.Reopen(s.T(), s.store, s.clock.Now)

	acc, err := s.store.CreateAccount(s.ctx(), Draft("after"))
	s.Require().NoError(err)
	s.Equal(last+1, acc.ID)

	old, err := s.store.GetAccountByUsername(s.ctx(), "before0")
	s.Require().NoError(err)
	s.Equal(int64(1), old.ID)

	list, err := s.store.ListGeneralInquiries(s.ctx())
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal("Survivor", list[0].Name)
}

func (s *Suite) TestPing() {
	s.NoError(s.store.Ping(s.ctx()))
	s.NotEmpty(s.store.Backend())
}
