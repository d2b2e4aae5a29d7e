package handler_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"shashoo/internal/model"
)

// Repository mocks shared by the handler tests.

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	user := args.Get(0)
	if user == nil {
		return nil, args.Error(1)
	}
	return user.(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type MockBoardRepository struct {
	mock.Mock
}

func (m *MockBoardRepository) Create(ctx context.Context, board *model.Board) error {
	args := m.Called(ctx, board)
	return args.Error(0)
}

func (m *MockBoardRepository) GetAll(ctx context.Context) ([]model.Board, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Board), args.Error(1)
}

func (m *MockBoardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	args := m.Called(ctx, id)
	board := args.Get(0)
	if board == nil {
		return nil, args.Error(1)
	}
	return board.(*model.Board), args.Error(1)
}

func (m *MockBoardRepository) Update(ctx context.Context, board *model.Board) error {
	args := m.Called(ctx, board)
	return args.Error(0)
}

func (m *MockBoardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBoardRepository) ListVisible(ctx context.Context, levels []string, grantedIDs []uuid.UUID) ([]model.Board, error) {
	args := m.Called(ctx, levels, grantedIDs)
	return args.Get(0).([]model.Board), args.Error(1)
}

func (m *MockBoardRepository) ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, ids)
	existing := args.Get(0)
	if existing == nil {
		return nil, args.Error(1)
	}
	return existing.([]uuid.UUID), args.Error(1)
}

type MockBoardAccessRepository struct {
	mock.Mock
}

func (m *MockBoardAccessRepository) GrantedBoardIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, userID)
	granted := args.Get(0)
	if granted == nil {
		return nil, args.Error(1)
	}
	return granted.([]uuid.UUID), args.Error(1)
}

func (m *MockBoardAccessRepository) HasGrant(ctx context.Context, boardID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, boardID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBoardAccessRepository) ReplaceForUser(ctx context.Context, userID uuid.UUID, boardIDs []uuid.UUID) error {
	args := m.Called(ctx, userID, boardIDs)
	return args.Error(0)
}

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *model.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	args := m.Called(ctx, id)
	post := args.Get(0)
	if post == nil {
		return nil, args.Error(1)
	}
	return post.(*model.Post), args.Error(1)
}

func (m *MockPostRepository) ListByBoard(ctx context.Context, boardID uuid.UUID, viewType string) ([]model.Post, error) {
	args := m.Called(ctx, boardID, viewType)
	return args.Get(0).([]model.Post), args.Error(1)
}

func (m *MockPostRepository) Update(ctx context.Context, post *model.Post, newAttachments []model.Attachment, embeds []model.YoutubeEmbed, replaceEmbeds bool) error {
	args := m.Called(ctx, post, newAttachments, embeds, replaceEmbeds)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostRepository) GetAttachment(ctx context.Context, id uuid.UUID) (*model.Attachment, error) {
	args := m.Called(ctx, id)
	attachment := args.Get(0)
	if attachment == nil {
		return nil, args.Error(1)
	}
	return attachment.(*model.Attachment), args.Error(1)
}

type MockRegistrationRepository struct {
	mock.Mock
}

func (m *MockRegistrationRepository) Create(ctx context.Context, registration *model.Registration) error {
	args := m.Called(ctx, registration)
	return args.Error(0)
}

func (m *MockRegistrationRepository) List(ctx context.Context) ([]model.Registration, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Registration), args.Error(1)
}

func (m *MockRegistrationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Registration, error) {
	args := m.Called(ctx, id)
	registration := args.Get(0)
	if registration == nil {
		return nil, args.Error(1)
	}
	return registration.(*model.Registration), args.Error(1)
}

func (m *MockRegistrationRepository) Decide(ctx context.Context, id uuid.UUID, status, memo string, reviewerID uuid.UUID) (*model.Registration, error) {
	args := m.Called(ctx, id, status, memo, reviewerID)
	registration := args.Get(0)
	if registration == nil {
		return nil, args.Error(1)
	}
	return registration.(*model.Registration), args.Error(1)
}
