package service

import (
	"testing"
	"time"

	"github.com/abidalfrz/expense-tracker-webapp/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type SessionServiceTestSuite struct {
	suite.Suite
	db       *gorm.DB
	sessions *SessionService
	user     *models.User
}

func (suite *SessionServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())
	suite.sessions = NewSessionService(suite.db, "test-secret", "test", 1)

	users := NewUserService(suite.db, testBcryptCost)
	user, err := users.Register("alice", "secret123")
	require.NoError(suite.T(), err)
	suite.user = user
}

func (suite *SessionServiceTestSuite) TestCreateAndResolve() {
	token, err := suite.sessions.Create(suite.user.ID)
	require.NoError(suite.T(), err)
	require.NotEmpty(suite.T(), token)

	user, err := suite.sessions.Resolve(token)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "alice", user.Username)
}

func (suite *SessionServiceTestSuite) TestResolveGarbageToken() {
	_, err := suite.sessions.Resolve("not-a-token")
	assert.ErrorIs(suite.T(), err, ErrSessionInvalid)
}

func (suite *SessionServiceTestSuite) TestResolveWrongSecret() {
	other := NewSessionService(suite.db, "other-secret", "test", 1)
	token, err := other.Create(suite.user.ID)
	require.NoError(suite.T(), err)

	_, err = suite.sessions.Resolve(token)
	assert.ErrorIs(suite.T(), err, ErrSessionInvalid)
}

func (suite *SessionServiceTestSuite) TestRevoke() {
	token, err := suite.sessions.Create(suite.user.ID)
	require.NoError(suite.T(), err)

	require.NoError(suite.T(), suite.sessions.Revoke(token))

	_, err = suite.sessions.Resolve(token)
	assert.ErrorIs(suite.T(), err, ErrSessionInvalid)

	// revoking again is a no-op
	assert.NoError(suite.T(), suite.sessions.Revoke(token))
}

func (suite *SessionServiceTestSuite) TestResolveExpiredSession() {
	token, err := suite.sessions.Create(suite.user.ID)
	require.NoError(suite.T(), err)

	// expire the row behind the token
	require.NoError(suite.T(), suite.db.Model(&models.Session{}).
		Where("user_id = ?", suite.user.ID).
		Update("expires_at", time.Now().Add(-time.Minute)).Error)

	_, err = suite.sessions.Resolve(token)
	assert.ErrorIs(suite.T(), err, ErrSessionInvalid)
}

func TestSessionServiceSuite(t *testing.T) {
	suite.Run(t, new(SessionServiceTestSuite))
}
