package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/songguessr/songguessr-go/internal/model"
)

// IntegrationSuite drives the full service stack through the factory,
// end to end, the way the HTTP layer would.
type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

func (s *IntegrationSuite) seedCatalog(songCount int) model.PlaylistID {
	songIDs := make([]model.SongID, 0, songCount)
	for i := 0; i < songCount; i++ {
		song, err := s.app.CatalogService.CreateSong(s.ctx, &model.Song{
			Title:    "Song " + string(rune('A'+i)),
			Artist:   "Artist",
			AudioURL: "https://example.com/audio.mp3",
		})
		s.Require().NoError(err)
		songIDs = append(songIDs, song.ID)
	}

	playlist, err := s.app.CatalogService.CreatePlaylist(s.ctx, "Integration Mix", "", songIDs, "")
	s.Require().NoError(err)
	return playlist.ID
}

func (s *IntegrationSuite) TestFullGameFlow() {
	user, _, err := s.app.AuthService.Signup(s.ctx, "alice", "alice@example.com", "secret123")
	s.Require().NoError(err)

	playlistID := s.seedCatalog(5)

	sess, firstSong, err := s.app.SessionManager.StartSession(s.ctx, playlistID, model.GameModeClassic, 3, user.ID)
	s.Require().NoError(err)
	s.Require().NotNil(firstSong)
	s.Equal(15, sess.MaxPossibleScore())

	for _, score := range []int{5, 4, 3} {
		sess, _, err = s.app.SessionManager.AdvanceRound(s.ctx, sess.ID, score)
		s.Require().NoError(err)
	}
	s.Equal(model.SessionStatusCompleted, sess.Status)
	s.Equal(12, sess.TotalScore)

	// Aggregates folded on completion
	refreshed, err := s.app.AuthService.GetUser(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal(1, refreshed.GamesPlayed)
	s.Equal(1, refreshed.GamesWon) // 12 >= ceil(0.6 * 15)
	s.Equal(12, refreshed.TotalScore)
	s.Equal(12, refreshed.BestScore)

	history, err := s.app.StatsAggregator.History(s.ctx, user.ID, 0)
	s.Require().NoError(err)
	s.Require().Len(history, 1)
	s.Equal(sess.ID, history[0].SessionID)
	s.True(history[0].Won)

	// Recalculating from history reproduces the aggregates
	s.Require().NoError(s.app.StatsAggregator.Recalculate(s.ctx, user.ID))
	rebuilt, err := s.app.AuthService.GetUser(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal(refreshed.GamesPlayed, rebuilt.GamesPlayed)
	s.Equal(refreshed.GamesWon, rebuilt.GamesWon)
	s.Equal(refreshed.TotalScore, rebuilt.TotalScore)
}

func (s *IntegrationSuite) TestGuestFlowLeavesNoHistory() {
	playlistID := s.seedCatalog(3)

	sess, _, err := s.app.SessionManager.StartSession(s.ctx, playlistID, model.GameModeClassic, 2, "")
	s.Require().NoError(err)
	s.True(sess.IsGuest)

	for _, score := range []int{5, 5} {
		sess, _, err = s.app.SessionManager.AdvanceRound(s.ctx, sess.ID, score)
		s.Require().NoError(err)
	}
	s.Equal(model.SessionStatusCompleted, sess.Status)
}

func (s *IntegrationSuite) TestTokenRoundTripThroughFactory() {
	user, token, err := s.app.AuthService.Signup(s.ctx, "alice", "alice@example.com", "secret123")
	s.Require().NoError(err)

	identity, err := s.app.AuthService.Resolve(s.ctx, token)
	s.Require().NoError(err)
	s.Require().NotNil(identity)
	s.Equal(user.ID, identity.User.ID)
}
