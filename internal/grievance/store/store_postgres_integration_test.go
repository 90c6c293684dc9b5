//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"resident/internal/grievance/models"
	"resident/internal/grievance/store"
	"resident/pkg/platform/sentinel"
	"resident/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "resident_grievance_ticket"))
}

func (s *PostgresStoreSuite) TestSaveFindList() {
	ctx := context.Background()
	at := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	req := models.GrievanceRequest{
		EventID: "01J0000000000000000000000",
		Name:    "Asha",
		EmailID: "asha@example.org",
		PhoneNo: "9876543210",
		Message: "OTP never arrived",
	}
	s.Require().NoError(s.store.Save(ctx, models.NewTicket("t-1", "4518367290", req, at)))
	s.Require().NoError(s.store.Save(ctx, models.NewTicket("t-2", "4518367290", req, at.Add(time.Hour))))

	got, err := s.store.FindByTicketID(ctx, "t-1")
	s.Require().NoError(err)
	s.Equal("Asha", got.Name)
	s.Equal(models.StatusNew, got.Status)
	s.True(at.Equal(got.CreatedAt))

	list, err := s.store.ListByIndividualID(ctx, "4518367290")
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal("t-2", list[0].TicketID)
}

func (s *PostgresStoreSuite) TestDuplicateAndMissing() {
	ctx := context.Background()
	ticket := models.NewTicket("t-1", "4518367290", models.GrievanceRequest{EventID: "e", Message: "m"}, time.Now())
	s.Require().NoError(s.store.Save(ctx, ticket))
	s.ErrorIs(s.store.Save(ctx, ticket), sentinel.ErrConflict)

	_, err := s.store.FindByTicketID(ctx, "nope")
	s.ErrorIs(err, sentinel.ErrNotFound)
}
