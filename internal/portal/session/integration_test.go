package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cruisyconcierge/cruisy-ambassador/internal/cmstest"
	"github.com/cruisyconcierge/cruisy-ambassador/internal/portal/cms"
	"github.com/cruisyconcierge/cruisy-ambassador/internal/portal/models"
)

func startCMS(t *testing.T) *cmstest.Server {
	t.Helper()
	srv := cmstest.New(
		[]cmstest.Account{{ID: 7, Email: "alex@cruisytravel.com", Password: "hunter2", Name: "Alex Smith", Slug: "alex-travels"}},
		[]cmstest.Itinerary{
			{ID: 42, Title: "Paris Walking Tour", Location: "Paris", Price: 129},
			{ID: 43, Title: "Tokyo Food Crawl", Location: "Tokyo", Price: 89.5},
		},
	)
	t.Cleanup(srv.Close)
	return srv
}

func gatewayFor(t *testing.T, srv *cmstest.Server) cms.Gateway {
	t.Helper()
	return cms.NewHTTPGateway(srv.URL(), 5*time.Second, 20, testLogger())
}

func TestIntegration_LoginAndSave(t *testing.T) {
	srv := startCMS(t)
	c := NewController(gatewayFor(t, srv), &fakeStore{}, testLogger(), nil)
	ctx := context.Background()

	require.NoError(t, c.Login(ctx, "alex@cruisytravel.com", "hunter2"))
	require.Equal(t, StateAuthenticated, c.State())
	require.Equal(t, "alex-travels", c.Profile().Slug)

	tier := models.TierElite
	update := models.ProfileUpdate{
		Bio:                strPtr("Sailing the world"),
		Tier:               &tier,
		FeaturedActivities: &[]models.CatalogEntry{{ID: 42}, {ID: 43}},
	}
	require.NoError(t, c.Apply(ctx, update))
	c.Wait()

	bio, storedTier, featured, _ := srv.Profile(7)
	require.Equal(t, "Sailing the world", bio)
	require.Equal(t, "elite", storedTier)
	require.Equal(t, []int{42, 43}, featured)

	require.Equal(t, "Sailing the world", c.Profile().Bio)
	require.Equal(t, models.TierElite, c.Profile().Tier)
}

func TestIntegration_RestoreFromSeededToken(t *testing.T) {
	srv := startCMS(t)
	store := &fakeStore{token: srv.IssueToken(7)}
	c := NewController(gatewayFor(t, srv), store, testLogger(), nil)

	c.Restore(context.Background())

	require.Equal(t, StateAuthenticated, c.State())
	require.Equal(t, 7, c.Profile().ID)
}

func TestIntegration_RestoreWithExpiredToken(t *testing.T) {
	srv := startCMS(t)
	store := &fakeStore{token: srv.ExpiredToken(7)}
	c := NewController(gatewayFor(t, srv), store, testLogger(), nil)

	c.Restore(context.Background())

	require.Equal(t, StateUnauthenticated, c.State())
	require.Empty(t, store.token, "rejected token must be cleared")
}

func TestIntegration_InvalidLogin(t *testing.T) {
	srv := startCMS(t)
	c := NewController(gatewayFor(t, srv), &fakeStore{}, testLogger(), nil)

	err := c.Login(context.Background(), "alex@cruisytravel.com", "wrong")
	require.ErrorIs(t, err, cms.ErrUnauthorized)
	require.Equal(t, StateUnauthenticated, c.State())
}
