package services

import (
	"context"
	"sync"
	"testing"

	"github.com/asaskevich/EventBus"
	"github.com/impactlink/matchengine/internal/domain/models"
	"github.com/impactlink/matchengine/internal/events"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (env *testEnv) newRevealService(t *testing.T, bus EventBus.Bus) *RevealService {
	service, err := NewRevealService(env.matches, env.candidates, env.assignments, bus, 5)
	require.NoError(t, err)
	return service
}

func (env *testEnv) scoredMatch(t *testing.T) *models.Match {
	env.saveCandidate(t, seededCandidate("cand-1"))
	env.saveAssignment(t, seededAssignment("asg-1"))

	match, reason, err := env.newMatcher(t).ScoreCandidate(context.Background(), "cand-1", "asg-1")
	require.NoError(t, err)
	require.Nil(t, reason)
	return match
}

func Test_RecordInterest_ValidatesInput(t *testing.T) {
	env := newTestEnv(t)
	match := env.scoredMatch(t)
	service := env.newRevealService(t, EventBus.New())
	ctx := context.Background()

	_, err := service.RecordInterest(ctx, match.ID, models.SideCandidate, models.InterestNone)
	assert.True(t, errors.Is(err, ErrInvalidDecision))

	_, err = service.RecordInterest(ctx, match.ID, "recruiter", models.InterestInterested)
	assert.True(t, errors.Is(err, ErrInvalidSide))
}

func Test_RecordInterest_OneSidedInterestIsPending(t *testing.T) {
	env := newTestEnv(t)
	match := env.scoredMatch(t)
	service := env.newRevealService(t, EventBus.New())

	view, err := service.RecordInterest(context.Background(), match.ID,
		models.SideCandidate, models.InterestInterested)
	require.NoError(t, err)

	assert.Equal(t, models.RevealPendingInterest, view.RevealState)
	assert.Equal(t, models.InterestInterested, view.CandidateInterest)
	assert.Equal(t, models.InterestNone, view.OrgInterest)
	assert.Nil(t, view.Candidate)
	assert.Nil(t, view.Organization)
}

func Test_RecordInterest_MutualInterestRevealsAutomatically(t *testing.T) {
	env := newTestEnv(t)
	match := env.scoredMatch(t)

	bus := EventBus.New()
	var revealedEvents []events.MatchRevealed
	require.NoError(t, bus.Subscribe(events.MatchRevealedTopic, func(event events.MatchRevealed) {
		revealedEvents = append(revealedEvents, event)
	}))

	service := env.newRevealService(t, bus)
	ctx := context.Background()

	_, err := service.RecordInterest(ctx, match.ID, models.SideCandidate, models.InterestInterested)
	require.NoError(t, err)

	view, err := service.RecordInterest(ctx, match.ID, models.SideOrganization, models.InterestInterested)
	require.NoError(t, err)

	assert.Equal(t, models.RevealRevealed, view.RevealState)

	bus.WaitAsync()
	require.Len(t, revealedEvents, 1)
	assert.Equal(t, match.ID, revealedEvents[0].MatchID)
}

func Test_RecordInterest_RacingSidesConvergeOnRevealed(t *testing.T) {
	env := newTestEnv(t)
	match := env.scoredMatch(t)
	service := env.newRevealService(t, EventBus.New())
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = service.RecordInterest(ctx, match.ID, models.SideCandidate, models.InterestInterested)
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = service.RecordInterest(ctx, match.ID, models.SideOrganization, models.InterestInterested)
	}()
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	stored, err := env.matches.GetByID(ctx, match.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RevealRevealed, stored.RevealState)
	assert.Equal(t, models.InterestInterested, stored.CandidateInterest)
	assert.Equal(t, models.InterestInterested, stored.OrgInterest)
}

func Test_RecordInterest_DeclineEndsTheMatch(t *testing.T) {
	env := newTestEnv(t)
	match := env.scoredMatch(t)
	service := env.newRevealService(t, EventBus.New())
	ctx := context.Background()

	_, err := service.RecordInterest(ctx, match.ID, models.SideCandidate, models.InterestInterested)
	require.NoError(t, err)

	view, err := service.RecordInterest(ctx, match.ID, models.SideOrganization, models.InterestDeclined)
	require.NoError(t, err)
	assert.Equal(t, models.RevealDeclined, view.RevealState)
	assert.Nil(t, view.Candidate)
	assert.Nil(t, view.Organization)
}

func Test_RecordInterest_DeclinedMatchStaysDeclined(t *testing.T) {
	env := newTestEnv(t)
	match := env.scoredMatch(t)
	service := env.newRevealService(t, EventBus.New())
	ctx := context.Background()

	_, err := service.RecordInterest(ctx, match.ID, models.SideOrganization, models.InterestDeclined)
	require.NoError(t, err)

	_, err = service.RecordInterest(ctx, match.ID, models.SideCandidate, models.InterestInterested)
	assert.True(t, errors.Is(err, ErrMatchInactive))

	stored, err := env.matches.GetByID(ctx, match.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RevealDeclined, stored.RevealState)
	assert.Equal(t, models.InterestNone, stored.CandidateInterest)
	assert.Equal(t, models.InterestDeclined, stored.OrgInterest)
}

func Test_RecordInterest_ExpiredMatchRejectsDecisions(t *testing.T) {
	env := newTestEnv(t)
	match := env.scoredMatch(t)
	service := env.newRevealService(t, EventBus.New())
	ctx := context.Background()

	require.NoError(t, env.matches.Expire(ctx, match.ID))

	_, err := service.RecordInterest(ctx, match.ID, models.SideCandidate, models.InterestInterested)
	assert.True(t, errors.Is(err, ErrMatchInactive))
}

func Test_GetMatch_RedactsIdentityBeforeReveal(t *testing.T) {
	env := newTestEnv(t)
	match := env.scoredMatch(t)
	service := env.newRevealService(t, EventBus.New())
	ctx := context.Background()

	for _, side := range []models.Side{models.SideCandidate, models.SideOrganization} {
		view, err := service.GetMatch(ctx, match.ID, side)
		require.NoError(t, err)
		assert.Nil(t, view.Candidate)
		assert.Nil(t, view.Organization)
		assert.NotZero(t, view.OverallScore)
		assert.NotEmpty(t, view.Explanation)
	}

	_, err := service.RecordInterest(ctx, match.ID, models.SideCandidate, models.InterestInterested)
	require.NoError(t, err)

	// Still pending: one-sided interest reveals nothing.
	view, err := service.GetMatch(ctx, match.ID, models.SideCandidate)
	require.NoError(t, err)
	assert.Nil(t, view.Organization)
}

func Test_GetMatch_EachSideSeesTheOtherIdentityAfterReveal(t *testing.T) {
	env := newTestEnv(t)
	match := env.scoredMatch(t)
	service := env.newRevealService(t, EventBus.New())
	ctx := context.Background()

	_, err := service.RecordInterest(ctx, match.ID, models.SideCandidate, models.InterestInterested)
	require.NoError(t, err)
	_, err = service.RecordInterest(ctx, match.ID, models.SideOrganization, models.InterestInterested)
	require.NoError(t, err)

	candidateView, err := service.GetMatch(ctx, match.ID, models.SideCandidate)
	require.NoError(t, err)
	require.NotNil(t, candidateView.Organization)
	assert.Nil(t, candidateView.Candidate)
	assert.Equal(t, "Impact Works", candidateView.Organization.OrgName)
	assert.Equal(t, "jobs@impactworks.org", candidateView.Organization.ContactEmail)

	orgView, err := service.GetMatch(ctx, match.ID, models.SideOrganization)
	require.NoError(t, err)
	require.NotNil(t, orgView.Candidate)
	assert.Nil(t, orgView.Organization)
	assert.Equal(t, "Alex Feld", orgView.Candidate.Name)
	assert.Equal(t, "alex@example.org", orgView.Candidate.Email)
}
