package repository

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/church-cms/pkg/util"
)

func TestAsTextPreservesNumericValues(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want string
	}{
		{"string passthrough", "hello", "hello"},
		{"large float stays plain", float64(1000000), "1000000"},
		{"fractional float", 19.99, "19.99"},
		{"negative float", -42.0, "-42"},
		{"bool", true, "true"},
		{"stringer", uuid.MustParse("8a6e0804-2bd0-4672-b79d-d97027f9071a"), "8a6e0804-2bd0-4672-b79d-d97027f9071a"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, asText(tc.in))
		})
	}
}

func TestMapConstraintError(t *testing.T) {
	var domainErr *apperrors.DomainError

	err := mapConstraintError("Page", &pgconn.PgError{Code: "23505"})
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, 409, domainErr.HTTPStatus)
	assert.Equal(t, "Page already exists", domainErr.Message)

	err = mapConstraintError("Service", &pgconn.PgError{Code: "23503"})
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, 400, domainErr.HTTPStatus)

	plain := errors.New("connection reset")
	assert.Equal(t, plain, mapConstraintError("Page", plain))
}
