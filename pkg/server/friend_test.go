package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"github.com/christianolin/cellar-critiques-sub000/pkg/model"
	"github.com/christianolin/cellar-critiques-sub000/pkg/repository"
	"github.com/christianolin/cellar-critiques-sub000/pkg/server"
)

type friendRepoMock struct {
	mock.Mock
}

func (m *friendRepoMock) AddFriendship(ctx context.Context, userID uint, friendID uint) (*model.Friendship, error) {
	args := m.Called(ctx, userID, friendID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*model.Friendship), args.Error(1)
}

func (m *friendRepoMock) AcceptFriendship(ctx context.Context, userID uint, friendshipID uint) error {
	args := m.Called(ctx, userID, friendshipID)

	return args.Error(0)
}

func (m *friendRepoMock) GetFriendships(ctx context.Context, userID uint) ([]*model.Friendship, error) {
	args := m.Called(ctx, userID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*model.Friendship), args.Error(1)
}

func (m *friendRepoMock) AreFriends(ctx context.Context, userID uint, otherID uint) (bool, error) {
	args := m.Called(ctx, userID, otherID)

	return args.Bool(0), args.Error(1)
}

func (m *friendRepoMock) DeleteFriendship(ctx context.Context, userID uint, friendshipID uint) error {
	args := m.Called(ctx, userID, friendshipID)

	return args.Error(0)
}

type friendUserRepoMock struct {
	mock.Mock
}

func (m *friendUserRepoMock) GetUserByName(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*model.User), args.Error(1)
}

type FriendServerSuite struct {
	suite.Suite
	friends *friendRepoMock
	users   *friendUserRepoMock
	cellar  *cellarRepoMock
	ratings *ratingRepoMock
	router  *gin.Engine
}

func TestFriendServerSuite(t *testing.T) {
	suite.Run(t, new(FriendServerSuite))
}

func (suite *FriendServerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	suite.friends = &friendRepoMock{}
	suite.users = &friendUserRepoMock{}
	suite.cellar = &cellarRepoMock{}
	suite.ratings = &ratingRepoMock{}

	suite.router = gin.New()
	group := suite.router.Group("/")
	group.Use(testUser(1))

	server.NewFriendServer(suite.friends, suite.users, suite.cellar, suite.ratings, zaptest.NewLogger(suite.T())).Register(group)
}

func (suite *FriendServerSuite) do(method string, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer

	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	request := httptest.NewRequest(method, path, &buf)
	request.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	suite.router.ServeHTTP(recorder, request)

	return recorder
}

func (suite *FriendServerSuite) TestRequestFriendship_CreatesPending() {
	friend := &model.User{Model: gorm.Model{ID: 2}, Username: "other"}
	pending := &model.Friendship{Model: gorm.Model{ID: 50}, UserID: 1, FriendID: 2, Status: model.FriendshipPending}

	suite.users.On("GetUserByName", mock.Anything, "other").Return(friend, nil)
	suite.friends.On("AddFriendship", mock.Anything, uint(1), uint(2)).Return(pending, nil)

	recorder := suite.do(http.MethodPost, "/friends", gin.H{"username": "other"})
	suite.Equal(http.StatusCreated, recorder.Code)
}

func (suite *FriendServerSuite) TestRequestFriendship_RejectsSelf() {
	self := &model.User{Model: gorm.Model{ID: 1}, Username: "taster"}
	suite.users.On("GetUserByName", mock.Anything, "taster").Return(self, nil)

	recorder := suite.do(http.MethodPost, "/friends", gin.H{"username": "taster"})
	suite.Equal(http.StatusBadRequest, recorder.Code)

	suite.friends.AssertNotCalled(suite.T(), "AddFriendship", mock.Anything, mock.Anything, mock.Anything)
}

// A friend's cellar is only visible once the friendship is accepted.
func (suite *FriendServerSuite) TestFriendCellar_ForbiddenForNonFriends() {
	suite.friends.On("AreFriends", mock.Anything, uint(1), uint(2)).Return(false, nil)

	recorder := suite.do(http.MethodGet, "/friends/2/cellar", nil)
	suite.Equal(http.StatusForbidden, recorder.Code)

	suite.cellar.AssertNotCalled(suite.T(), "GetCellarItems", mock.Anything, mock.Anything)
}

func (suite *FriendServerSuite) TestFriendCellar_VisibleForFriends() {
	items := []*model.CellarItem{{Model: gorm.Model{ID: 20}, UserID: 2, WineID: 9, Quantity: 3}}

	suite.friends.On("AreFriends", mock.Anything, uint(1), uint(2)).Return(true, nil)
	suite.cellar.On("GetCellarItems", mock.Anything, uint(2)).Return(items, nil)

	recorder := suite.do(http.MethodGet, "/friends/2/cellar", nil)
	suite.Equal(http.StatusOK, recorder.Code)
}

func (suite *FriendServerSuite) TestFriendRatings_ForbiddenForNonFriends() {
	suite.friends.On("AreFriends", mock.Anything, uint(1), uint(3)).Return(false, nil)

	recorder := suite.do(http.MethodGet, "/friends/3/ratings", nil)
	suite.Equal(http.StatusForbidden, recorder.Code)

	suite.ratings.AssertNotCalled(suite.T(), "GetRatingsForUser", mock.Anything, mock.Anything)
}

func (suite *FriendServerSuite) TestFriendRatings_ProjectedLikeOwn() {
	suite.friends.On("AreFriends", mock.Anything, uint(1), uint(2)).Return(true, nil)
	suite.ratings.On("GetRatingsForUser", mock.Anything, uint(2)).Return(storedRatings(), nil)

	recorder := suite.do(http.MethodGet, "/friends/2/ratings?q=chablis", nil)
	suite.Equal(http.StatusOK, recorder.Code)

	var rows []map[string]any
	suite.Require().NoError(json.Unmarshal(recorder.Body.Bytes(), &rows))
	suite.Len(rows, 1)
}

func (suite *FriendServerSuite) TestAcceptFriendship_NotFoundWhenNotAddressee() {
	suite.friends.On("AcceptFriendship", mock.Anything, uint(1), uint(50)).
		Return(repository.ErrFriendshipNotFound)

	recorder := suite.do(http.MethodPost, "/friends/50/accept", nil)
	suite.Equal(http.StatusNotFound, recorder.Code)
}

func (suite *FriendServerSuite) TestAcceptFriendship_Accepts() {
	suite.friends.On("AcceptFriendship", mock.Anything, uint(1), uint(50)).Return(nil)

	recorder := suite.do(http.MethodPost, "/friends/50/accept", nil)
	suite.Equal(http.StatusNoContent, recorder.Code)
}
