package postgres

import (
	"testing"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/campushq/backend/core"
	"github.com/campushq/backend/core/feedback"
	"github.com/campushq/backend/core/roster"
	"github.com/campushq/backend/core/user"
)

func Test_trapConflictErr(t *testing.T) {
	tests := []struct {
		name        string
		constraint  string
		constraints map[string]error
		wantErr     error
	}{
		{name: "feedback triple", constraint: "uq_feedback_triple", constraints: feedbackConstraints, wantErr: feedback.ErrExists},
		{name: "class code", constraint: "uq_classes_code", constraints: classConstraints, wantErr: roster.ErrClassCodeExists},
		{name: "username", constraint: "uq_users_username", constraints: userConstraints, wantErr: user.ErrUsernameExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pqErr := &pq.Error{Code: uniqueViolation, Constraint: tt.constraint}
			assert.ErrorIs(t, trapConflictErr(pqErr, tt.constraints, "inserting"), tt.wantErr)
		})
	}

	// anything else is wrapped, not mapped
	err := trapConflictErr(errors.New("connection reset"), feedbackConstraints, "inserting feedback")
	var cfErr *core.ConflictError
	assert.False(t, errors.As(err, &cfErr))
	assert.Contains(t, err.Error(), "inserting feedback")
}
