package db

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/campushub-BE/internal/notification"
)

func TestErrorDescription(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           ForeignKeyViolationCode,
		ConstraintName: NotificationsRecipientFKConstraint,
	}

	errCode, constraintName := ErrorDescription(pgErr)
	assert.Equal(t, ForeignKeyViolationCode, errCode)
	assert.Equal(t, NotificationsRecipientFKConstraint, constraintName)

	errCode, constraintName = ErrorDescription(errors.New("not a pg error"))
	assert.Empty(t, errCode)
	assert.Empty(t, constraintName)
}

func TestMapCreateNotificationError(t *testing.T) {
	testCases := []struct {
		name            string
		err             error
		wantUnknownUser bool
	}{
		{
			name: "recipient foreign key violation",
			err: &pgconn.PgError{
				Code:           ForeignKeyViolationCode,
				ConstraintName: NotificationsRecipientFKConstraint,
			},
			wantUnknownUser: true,
		},
		{
			name: "unrelated foreign key violation",
			err: &pgconn.PgError{
				Code:           ForeignKeyViolationCode,
				ConstraintName: "some_other_fkey",
			},
			wantUnknownUser: false,
		},
		{
			name:            "plain storage failure",
			err:             errors.New("connection refused"),
			wantUnknownUser: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mapped := mapCreateNotificationError("ghost", tc.err)
			require.Error(t, mapped)

			if tc.wantUnknownUser {
				assert.ErrorIs(t, mapped, notification.ErrRecipientNotFound)
			} else {
				assert.NotErrorIs(t, mapped, notification.ErrRecipientNotFound)
			}
		})
	}
}
