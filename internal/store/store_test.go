package store

import (
	"errors"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslateDuplicate(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    error
	}{
		{
			name:    "username index",
			message: "Duplicate entry 'alice' for key 'users.idx_users_username'",
			want:    ErrDuplicateUsername,
		},
		{
			name:    "email index",
			message: "Duplicate entry 'alice@example.com' for key 'users.idx_users_email'",
			want:    ErrDuplicateEmail,
		},
		{
			// The duplicated value may itself contain "email"; only the
			// index name decides the conflicting field
			name:    "username value containing email",
			message: "Duplicate entry 'emailfan' for key 'users.idx_users_username'",
			want:    ErrDuplicateUsername,
		},
		{
			name:    "email index under constraint naming",
			message: "Duplicate entry 'alice@example.com' for key 'users.uni_users_email'",
			want:    ErrDuplicateEmail,
		},
		{
			name:    "username index under constraint naming",
			message: "Duplicate entry 'emailfan' for key 'users.uni_users_username'",
			want:    ErrDuplicateUsername,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := translateDuplicate(&mysql.MySQLError{Number: 1062, Message: tt.message})
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("other mysql errors pass through", func(t *testing.T) {
		orig := &mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"}
		assert.Equal(t, error(orig), translateDuplicate(orig))
	})

	t.Run("non-mysql errors pass through", func(t *testing.T) {
		orig := errors.New("connection refused")
		assert.Equal(t, orig, translateDuplicate(orig))
	})
}

func TestTranslateNotFound(t *testing.T) {
	assert.ErrorIs(t, translateNotFound(gorm.ErrRecordNotFound), ErrNotFound)

	orig := errors.New("connection refused")
	assert.Equal(t, orig, translateNotFound(orig))
}
