package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/accountd/accountd-go/internal/model"
	"github.com/accountd/accountd-go/internal/repository"
)

type mockStore struct {
	createFunc        func(ctx context.Context, user *model.User) error
	getByIDFunc       func(ctx context.Context, id string) (*model.User, error)
	getByUsernameFunc func(ctx context.Context, username string) (*model.User, error)
	getByEmailFunc    func(ctx context.Context, email string) (*model.User, error)
	updateByIDFunc    func(ctx context.Context, id string, fields map[string]any) (*model.User, error)
	deleteByIDFunc    func(ctx context.Context, id string) (*model.User, error)
}

func (m *mockStore) Create(ctx context.Context, user *model.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	user.ID = primitive.NewObjectID()
	return nil
}

func (m *mockStore) GetByID(ctx context.Context, id string) (*model.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockStore) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.getByUsernameFunc != nil {
		return m.getByUsernameFunc(ctx, username)
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getByEmailFunc != nil {
		return m.getByEmailFunc(ctx, email)
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockStore) UpdateByID(ctx context.Context, id string, fields map[string]any) (*model.User, error) {
	if m.updateByIDFunc != nil {
		return m.updateByIDFunc(ctx, id, fields)
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockStore) DeleteByID(ctx context.Context, id string) (*model.User, error) {
	if m.deleteByIDFunc != nil {
		return m.deleteByIDFunc(ctx, id)
	}
	return nil, repository.ErrUserNotFound
}
