package service_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/idbadge/internal/hrmock/domain"
	"github.com/aussiebroadwan/idbadge/internal/hrmock/service"
	"github.com/aussiebroadwan/idbadge/internal/hrmock/store"
	"github.com/aussiebroadwan/idbadge/internal/hrmock/store/drivers/sqlite"
	"github.com/aussiebroadwan/idbadge/pkg/cryptox"
	"github.com/aussiebroadwan/idbadge/pkg/idx"

	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	cryptox.SetPepperPath(filepath.Join(t.TempDir(), "pepper"))

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func createEmployee(t *testing.T, st store.Store, userID, password string) domain.Employee {
	t.Helper()

	hash, err := cryptox.HashPassword(password)
	require.NoError(t, err)

	emp := domain.Employee{
		ID:           idx.New().String(),
		UserID:       userID,
		FullName:     "Nguyen Van A",
		Department:   "QA",
		Email:        "a@co.vn",
		PhoneNumber:  "0901234567",
		PasswordHash: hash,
	}
	require.NoError(t, st.Employees().Create(context.Background(), emp))
	return emp
}

func newAuthService(st store.Store) *service.AuthService {
	return &service.AuthService{
		Store:  st,
		Secret: []byte("0123456789abcdef0123456789abcdef"),
		Issuer: "hrmock-test",
	}
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	createEmployee(t, st, "E1001", "pw")
	svc := newAuthService(st)
	ctx := context.Background()

	t.Run("valid credentials mint a verifiable token", func(t *testing.T) {
		token, emp, err := svc.Login(ctx, "E1001", "pw")
		require.NoError(t, err)
		require.NotEmpty(t, token)
		require.Equal(t, "Nguyen Van A", emp.FullName)

		subject, err := svc.VerifyToken(token)
		require.NoError(t, err)
		require.Equal(t, "E1001", subject)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "E1001", "nope")
		require.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("unknown employee is indistinguishable from wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "E9999", "pw")
		require.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}

func TestAuthService_VerifyToken(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	createEmployee(t, st, "E1001", "pw")
	svc := newAuthService(st)
	ctx := context.Background()

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.VerifyToken("not-a-jwt")
		require.ErrorIs(t, err, service.ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := &service.AuthService{
			Store:    st,
			Secret:   svc.Secret,
			Issuer:   svc.Issuer,
			TokenTTL: -time.Minute,
		}
		token, _, err := expired.Login(ctx, "E1001", "pw")
		require.NoError(t, err)

		_, err = svc.VerifyToken(token)
		require.ErrorIs(t, err, service.ErrInvalidToken)
	})

	t.Run("token signed with a different key", func(t *testing.T) {
		other := &service.AuthService{
			Store:  st,
			Secret: []byte("ffffffffffffffffffffffffffffffff"),
			Issuer: svc.Issuer,
		}
		token, _, err := other.Login(ctx, "E1001", "pw")
		require.NoError(t, err)

		_, err = svc.VerifyToken(token)
		require.ErrorIs(t, err, service.ErrInvalidToken)
	})
}

func TestAuthService_QrProfile(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	created := createEmployee(t, st, "E1001", "pw")
	svc := newAuthService(st)
	ctx := context.Background()

	t.Run("returns the record with its id", func(t *testing.T) {
		emp, err := svc.QrProfile(ctx, "E1001")
		require.NoError(t, err)
		require.Equal(t, created.ID, emp.ID)
	})

	t.Run("unknown employee", func(t *testing.T) {
		_, err := svc.QrProfile(ctx, "E9999")
		require.ErrorIs(t, err, service.ErrEmployeeNotFound)
	})
}

func TestSeed(t *testing.T) {
	t.Parallel()

	st := newTestStore(t)
	ctx := context.Background()

	seed := "E1001|pw|Nguyen Van A|QA|a@co.vn|0901234567;E1002|pw2|Tran Thi B|HR|b@co.vn|0907654321"
	require.NoError(t, service.Seed(ctx, st, testLogger(), seed))

	emp, err := st.Employees().GetByUserID(ctx, "E1002")
	require.NoError(t, err)
	require.Equal(t, "Tran Thi B", emp.FullName)
	require.NoError(t, cryptox.VerifyPassword("pw2", emp.PasswordHash))

	t.Run("reseeding skips existing records", func(t *testing.T) {
		require.NoError(t, service.Seed(ctx, st, testLogger(), seed))
	})

	t.Run("malformed record is rejected", func(t *testing.T) {
		err := service.Seed(ctx, st, testLogger(), "E2001|pw")
		require.Error(t, err)
	})

	t.Run("empty seed on a populated directory is quiet", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, nil))

		require.NoError(t, service.Seed(ctx, st, logger, "  "))
		require.Empty(t, buf.String())
	})

	t.Run("empty seed on an empty directory warns", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, nil))

		require.NoError(t, service.Seed(ctx, newTestStore(t), logger, ""))
		require.Contains(t, buf.String(), "employee directory is empty")
	})
}
