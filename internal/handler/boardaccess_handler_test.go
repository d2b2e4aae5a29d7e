package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"shashoo/internal/access"
	"shashoo/internal/handler"
	"shashoo/internal/model"
)

func setupBoardAccessRouter(users *MockUserRepository, boards *MockBoardRepository, grants *MockBoardAccessRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewBoardAccessHandler(users, boards, grants)

	admin := &access.Identity{ID: uuid.New(), Role: model.RoleAdmin, Status: model.StatusApproved}
	r.GET("/admin/board-access", withIdentity(admin), h.Get)
	r.PUT("/admin/board-access", withIdentity(admin), h.Update)
	return r
}

func putAccess(router *gin.Engine, body handler.UpdateBoardAccessRequest) *httptest.ResponseRecorder {
	jsonBody, _ := json.Marshal(body)
	req, _ := http.NewRequest("PUT", "/admin/board-access", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestBoardAccessUpdate_DropsUnknownBoardIDs(t *testing.T) {
	users := new(MockUserRepository)
	boards := new(MockBoardRepository)
	grants := new(MockBoardAccessRepository)
	router := setupBoardAccessRouter(users, boards, grants)

	userID := uuid.New()
	knownBoard := uuid.New()
	unknownBoard := uuid.New()

	users.On("GetByID", mock.Anything, userID).Return(&model.User{ID: userID, Status: model.StatusApproved}, nil)
	boards.On("ExistingIDs", mock.Anything, []uuid.UUID{knownBoard, unknownBoard}).Return([]uuid.UUID{knownBoard}, nil)
	grants.On("ReplaceForUser", mock.Anything, userID, []uuid.UUID{knownBoard}).Return(nil)

	resp := putAccess(router, handler.UpdateBoardAccessRequest{
		UserID:   userID.String(),
		BoardIDs: []string{knownBoard.String(), unknownBoard.String()},
	})

	assert.Equal(t, http.StatusOK, resp.Code)

	var response handler.BoardAccessResponse
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
	// Only the board that exists is stored and echoed back.
	assert.Equal(t, []string{knownBoard.String()}, response.BoardIDs)

	grants.AssertExpectations(t)
}

func TestBoardAccessUpdate_UnknownUserIs404(t *testing.T) {
	users := new(MockUserRepository)
	boards := new(MockBoardRepository)
	grants := new(MockBoardAccessRepository)
	router := setupBoardAccessRouter(users, boards, grants)

	userID := uuid.New()
	users.On("GetByID", mock.Anything, userID).Return(nil, nil)

	resp := putAccess(router, handler.UpdateBoardAccessRequest{
		UserID:   userID.String(),
		BoardIDs: []string{uuid.New().String()},
	})

	assert.Equal(t, http.StatusNotFound, resp.Code)
	grants.AssertNotCalled(t, "ReplaceForUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestBoardAccessUpdate_EmptyListClearsGrants(t *testing.T) {
	users := new(MockUserRepository)
	boards := new(MockBoardRepository)
	grants := new(MockBoardAccessRepository)
	router := setupBoardAccessRouter(users, boards, grants)

	userID := uuid.New()
	users.On("GetByID", mock.Anything, userID).Return(&model.User{ID: userID, Status: model.StatusApproved}, nil)
	boards.On("ExistingIDs", mock.Anything, []uuid.UUID{}).Return(nil, nil)
	grants.On("ReplaceForUser", mock.Anything, userID, []uuid.UUID(nil)).Return(nil)

	resp := putAccess(router, handler.UpdateBoardAccessRequest{
		UserID:   userID.String(),
		BoardIDs: []string{},
	})

	assert.Equal(t, http.StatusOK, resp.Code)
	grants.AssertExpectations(t)
}

func TestBoardAccessUpdate_MalformedBoardIDIs400(t *testing.T) {
	users := new(MockUserRepository)
	boards := new(MockBoardRepository)
	grants := new(MockBoardAccessRepository)
	router := setupBoardAccessRouter(users, boards, grants)

	resp := putAccess(router, handler.UpdateBoardAccessRequest{
		UserID:   uuid.New().String(),
		BoardIDs: []string{"not-a-uuid"},
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestBoardAccessGet_ReturnsGrantedIDs(t *testing.T) {
	users := new(MockUserRepository)
	boards := new(MockBoardRepository)
	grants := new(MockBoardAccessRepository)
	router := setupBoardAccessRouter(users, boards, grants)

	userID := uuid.New()
	boardID := uuid.New()
	users.On("GetByID", mock.Anything, userID).Return(&model.User{ID: userID, Status: model.StatusApproved}, nil)
	grants.On("GrantedBoardIDs", mock.Anything, userID).Return([]uuid.UUID{boardID}, nil)

	req, _ := http.NewRequest("GET", "/admin/board-access?userId="+userID.String(), nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var response handler.BoardAccessResponse
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &response))
	assert.Equal(t, []string{boardID.String()}, response.BoardIDs)
}
