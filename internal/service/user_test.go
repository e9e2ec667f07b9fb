package service

import (
	"fmt"
	"testing"

	"finbot/internal/domain"
	"finbot/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func TestUserService_UpsertProfile(t *testing.T) {
	userRepo := new(testutil.MockUserRepository)
	userRepo.On("Upsert", domain.User{
		UserID:    123,
		Username:  "ivan",
		FirstName: "Иван",
		LastName:  "Петров",
	}).Return(nil)

	service := NewUserService(userRepo)

	err := service.UpsertProfile(123, "ivan", "Иван", "Петров")

	assert.NoError(t, err)
	userRepo.AssertExpectations(t)
}

func TestUserService_DisplayName(t *testing.T) {
	tests := []struct {
		name      string
		mockUser  *domain.User
		mockError error
		expected  string
		expectErr bool
	}{
		{
			name:     "username preferred",
			mockUser: testutil.NewTestUser(123, "ivan", "Иван", "Петров"),
			expected: "@ivan",
		},
		{
			name:     "name fallback",
			mockUser: testutil.NewTestUser(123, "", "Иван", ""),
			expected: "Иван",
		},
		{
			name:     "unknown user falls back to id",
			mockUser: nil,
			expected: "ID 123",
		},
		{
			name:      "repo error propagated",
			mockError: fmt.Errorf("db error"),
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(testutil.MockUserRepository)
			userRepo.On("Get", int64(123)).Return(tt.mockUser, tt.mockError)

			service := NewUserService(userRepo)

			name, err := service.DisplayName(123)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, name)
			}

			userRepo.AssertExpectations(t)
		})
	}
}
