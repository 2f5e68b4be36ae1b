package postgres

import (
	"context"
	"testing"
	"time"

	"wallet-funding-service/internal/core/domain"
	"wallet-funding-service/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCustomer() *domain.Customer {
	code := "18/52ab3c123"
	return &domain.Customer{
		ID:            uuid.New(),
		FirstName:     "Ada",
		LastName:      "Obi",
		Email:         "ada@example.com",
		PhoneNumber:   "08011112222",
		PasswordHash:  "$argon2id$hash",
		ReferralCode:  code,
		ReferralCount: 0,
		CreatedAt:     time.Now().UTC().Truncate(time.Microsecond),
		UpdatedAt:     time.Now().UTC().Truncate(time.Microsecond),
	}
}

func customerColumns() []string {
	return []string{
		"id", "first_name", "last_name", "email", "phone_number",
		"password_hash", "referral_code", "referred_by", "referral_count",
		"created_at", "updated_at",
	}
}

func customerRow(c *domain.Customer) *pgxmock.Rows {
	return pgxmock.NewRows(customerColumns()).AddRow(
		c.ID, c.FirstName, c.LastName, c.Email, c.PhoneNumber,
		c.PasswordHash, c.ReferralCode, c.ReferredBy, c.ReferralCount,
		c.CreatedAt, c.UpdatedAt,
	)
}

func TestCustomerRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCustomerRepo(mock)
	c := newTestCustomer()

	mock.ExpectExec("INSERT INTO customers").
		WithArgs(c.ID, c.FirstName, c.LastName, c.Email, c.PhoneNumber,
			c.PasswordHash, c.ReferralCode, c.ReferredBy, c.ReferralCount,
			c.CreatedAt, c.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), c)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepo_Create_UniqueViolations(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		wantCode   string
	}{
		{"duplicate email", "customers_email_key", "CON_002"},
		{"duplicate referral code", "customers_referral_code_key", "CON_003"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			repo := NewCustomerRepo(mock)
			c := newTestCustomer()

			mock.ExpectExec("INSERT INTO customers").
				WithArgs(c.ID, c.FirstName, c.LastName, c.Email, c.PhoneNumber,
					c.PasswordHash, c.ReferralCode, c.ReferredBy, c.ReferralCount,
					c.CreatedAt, c.UpdatedAt).
				WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: tt.constraint})

			err = repo.Create(context.Background(), c)
			require.Error(t, err)

			var appErr *apperror.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.wantCode, appErr.Code)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCustomerRepo_GetByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCustomerRepo(mock)
	c := newTestCustomer()

	mock.ExpectQuery(`(?s)SELECT .+ FROM customers.+WHERE email`).
		WithArgs(c.Email).
		WillReturnRows(customerRow(c))

	result, err := repo.GetByEmail(context.Background(), c.Email)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, c.ID, result.ID)
	assert.Equal(t, c.ReferralCode, result.ReferralCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepo_GetByEmail_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCustomerRepo(mock)

	mock.ExpectQuery(`(?s)SELECT .+ FROM customers.+WHERE email`).
		WithArgs("ghost@example.com").
		WillReturnRows(pgxmock.NewRows(customerColumns()))

	result, err := repo.GetByEmail(context.Background(), "ghost@example.com")
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepo_GetByReferralCode(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCustomerRepo(mock)
	c := newTestCustomer()

	mock.ExpectQuery(`(?s)SELECT .+ FROM customers.+WHERE referral_code`).
		WithArgs(c.ReferralCode).
		WillReturnRows(customerRow(c))

	result, err := repo.GetByReferralCode(context.Background(), c.ReferralCode)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, c.Email, result.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepo_ReferralCodeExists(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCustomerRepo(mock)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("18/52ab3c123").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ReferralCodeExists(context.Background(), "18/52ab3c123")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepo_IncrementReferralCount(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCustomerRepo(mock)

	mock.ExpectExec("UPDATE customers SET referral_count").
		WithArgs("18/52ab3c123").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = repo.IncrementReferralCount(context.Background(), "18/52ab3c123")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepo_IncrementReferralCount_UnknownCode(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCustomerRepo(mock)

	mock.ExpectExec("UPDATE customers SET referral_count").
		WithArgs("18/52zzzz999").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = repo.IncrementReferralCount(context.Background(), "18/52zzzz999")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
