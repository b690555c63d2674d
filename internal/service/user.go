package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/yourname/sleepdiary/internal"
	"github.com/yourname/sleepdiary/internal/storage"
)

var validate = validator.New()

type CreateUserRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
}

type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func ValidateCreateUserRequest(req *CreateUserRequest) error {
	return validate.Struct(req)
}

// CreateUser registers a new user. Username is checked before email, so
// a request colliding on both reports the username conflict. The storage
// unique index backs the check up against concurrent inserts.
func CreateUser(ctx context.Context, userRepo storage.UserRepository, req *CreateUserRequest) (*UserResponse, error) {
	existing, err := userRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, internal.NewConflict(fmt.Sprintf("Username '%s' is already taken", req.Username))
	}

	existing, err = userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, internal.NewConflict(fmt.Sprintf("Email '%s' is already registered", req.Email))
	}

	user := &internal.User{
		ID:        uuid.NewString(),
		Username:  req.Username,
		Email:     req.Email,
		CreatedAt: time.Now(),
	}
	if err := userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrDuplicateUser) {
			return nil, internal.NewConflict("username or email already registered")
		}
		return nil, err
	}

	return toUserResponse(user), nil
}

// GetUserByID returns (nil, nil) when no such user exists.
func GetUserByID(ctx context.Context, userRepo storage.UserRepository, id string) (*UserResponse, error) {
	user, err := userRepo.GetUserByID(ctx, id)
	if err != nil || user == nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func GetAllUsers(ctx context.Context, userRepo storage.UserRepository) ([]UserResponse, error) {
	users, err := userRepo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = *toUserResponse(&users[i])
	}
	return responses, nil
}

func toUserResponse(u *internal.User) *UserResponse {
	return &UserResponse{ID: u.ID, Username: u.Username, Email: u.Email}
}
