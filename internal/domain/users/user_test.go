//go:build unit
// +build unit

package users

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// UserValidationTests struct encapsulates the test data and methods for User validation
type UserValidationTests struct {
	// TestData for holding valid and invalid User data
	validUser    User
	invalidUser  User
	invalidUser2 User
}

// NewUserValidationTests is a constructor to create a new instance of UserValidationTests
func NewUserValidationTests() *UserValidationTests {
	// Create valid and invalid test data for User
	validUser := User{
		ID:        "f81d4fae-7dec-41d4-a765-00a0c91e6bf6",
		Email:     "ada@example.com",
		GoogleID:  "108201234567890123456",
		Name:      "Ada Obi",
		CreatedAt: time.Now(),
	}

	invalidUser := validUser
	invalidUser.Email = "not-an-email" // Invalid email format

	invalidUser2 := validUser
	invalidUser2.GoogleID = "" // Invalid empty GoogleID

	return &UserValidationTests{
		validUser:    validUser,
		invalidUser:  invalidUser,
		invalidUser2: invalidUser2,
	}
}

// TestUserValidation tests the Validator method for User
func (ut *UserValidationTests) TestUserValidation(t *testing.T) {
	// Validate the valid User
	err := ut.validUser.Validate()
	assert.Nil(t, err, "Expected no validation errors for valid User")

	// Validate the invalid User (malformed email)
	err = ut.invalidUser.Validate()
	assert.NotNil(t, err, "Expected validation errors for invalid User")
	assert.Contains(t, err.Error(), "Field: Email, Tag: email")

	// Validate the invalid User (empty GoogleID)
	err = ut.invalidUser2.Validate()
	assert.NotNil(t, err, "Expected validation errors for invalid User")
	assert.Contains(t, err.Error(), "Field: GoogleID, Tag: required")
}

// TestUserValidation is the entry point to run the User validation tests
func TestUserValidation(t *testing.T) {
	// Create a new UserValidationTests instance
	ut := NewUserValidationTests()

	// Run each test method
	t.Run("TestUserValidation", ut.TestUserValidation)
}

// TestRefreshTokenIsValid covers the revoked and expired states
func TestRefreshTokenIsValid(t *testing.T) {
	live := RefreshToken{ExpiresAt: time.Now().UTC().Add(time.Hour)}
	assert.True(t, live.IsValid())

	revoked := RefreshToken{ExpiresAt: time.Now().UTC().Add(time.Hour), Revoked: true}
	assert.False(t, revoked.IsValid())

	expired := RefreshToken{ExpiresAt: time.Now().UTC().Add(-time.Hour)}
	assert.False(t, expired.IsValid())
}
