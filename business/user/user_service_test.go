package user

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Motasaith/Abdul-Shop-sub001/domain"
	"github.com/Motasaith/Abdul-Shop-sub001/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/pobyzaarif/goshortcute"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testVerificationKey = "0123456789abcdef"

type fakeUserRepo struct {
	users  map[uint]domain.User
	nextID uint

	verifiedID *uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]domain.User), nextID: 1}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uint) (domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return domain.User{}, errors.New("user not found")
	}
	return u, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, errors.New("user not found")
}

func (f *fakeUserRepo) FindAll(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uint) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) UpdateEmailVerification(ctx context.Context, id uint, isVerified bool) error {
	f.verifiedID = &id
	u := f.users[id]
	u.IsVerified = isVerified
	f.users[id] = u
	return nil
}

type fakeNotifier struct {
	sent []string
}

func (f *fakeNotifier) SendEmail(toName, toEmail, subject, message string) error {
	f.sent = append(f.sent, subject)
	return nil
}

type fakeTokenRepo struct {
	tokens map[string]string // token -> userID
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]string)}
}

func (f *fakeTokenRepo) StoreToken(ctx context.Context, userID, token, ipAddress, userAgent string, ttl time.Duration) error {
	f.tokens[token] = userID
	return nil
}

func (f *fakeTokenRepo) ValidateToken(ctx context.Context, token string) (string, error) {
	userID, ok := f.tokens[token]
	if !ok {
		return "", errors.New("token not found")
	}
	return userID, nil
}

func (f *fakeTokenRepo) DeleteToken(ctx context.Context, userID, token string) error {
	delete(f.tokens, token)
	return nil
}

func newTestUserService(repo *fakeUserRepo, notifier *fakeNotifier, tokens *fakeTokenRepo) *userService {
	utils.InitJWT("test-secret")
	return NewUserService(repo, validator.New(), notifier, tokens, testVerificationKey, "http://localhost:8080")
}

func TestRegister(t *testing.T) {
	repo := newFakeUserRepo()
	notifier := &fakeNotifier{}
	svc := newTestUserService(repo, notifier, newFakeTokenRepo())

	created, err := svc.Register(context.Background(), &domain.User{
		FullName: "Asha",
		Email:    "asha@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.Equal(t, domain.RoleCustomer, created.Role)
	assert.Equal(t, domain.VendorStatusNone, created.VendorDetails.Status)
	assert.False(t, created.IsVerified)
	assert.Empty(t, created.Password)
	assert.Len(t, notifier.sent, 1)

	// Stored password is hashed, never the plaintext.
	stored := repo.users[created.ID]
	assert.NotEqual(t, "secret123", stored.Password)
	assert.NotEmpty(t, stored.Password)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo, &fakeNotifier{}, newFakeTokenRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, &domain.User{FullName: "A", Email: "dup@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &domain.User{FullName: "B", Email: "dup@example.com", Password: "secret123"})
	assert.ErrorContains(t, err, "already exists")
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestUserService(newFakeUserRepo(), &fakeNotifier{}, newFakeTokenRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, &domain.User{FullName: "A", Email: "not-an-email", Password: "secret123"})
	assert.ErrorContains(t, err, "invalid email")

	_, err = svc.Register(ctx, &domain.User{FullName: "A", Email: "a@example.com", Password: "short"})
	assert.ErrorContains(t, err, "6 characters")
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	tokens := newFakeTokenRepo()
	svc := newTestUserService(repo, &fakeNotifier{}, tokens)
	ctx := context.Background()

	created, err := svc.Register(ctx, &domain.User{FullName: "Asha", Email: "asha@example.com", Password: "secret123"})
	require.NoError(t, err)

	// Unverified accounts cannot log in.
	_, _, err = svc.Login(ctx, "asha@example.com", "secret123", "127.0.0.1", "go-test")
	assert.ErrorContains(t, err, "not been verified")

	require.NoError(t, repo.UpdateEmailVerification(ctx, created.ID, true))

	_, _, err = svc.Login(ctx, "asha@example.com", "wrongpass", "127.0.0.1", "go-test")
	assert.ErrorContains(t, err, "incorrect password")

	token, user, err := svc.Login(ctx, "asha@example.com", "secret123", "127.0.0.1", "go-test")
	require.NoError(t, err)

	assert.NotEmpty(t, token)
	assert.Empty(t, user.Password)
	assert.Contains(t, tokens.tokens, token)
}

func TestLogoutDeletesToken(t *testing.T) {
	repo := newFakeUserRepo()
	tokens := newFakeTokenRepo()
	svc := newTestUserService(repo, &fakeNotifier{}, tokens)
	ctx := context.Background()

	created, err := svc.Register(ctx, &domain.User{FullName: "Asha", Email: "asha@example.com", Password: "secret123"})
	require.NoError(t, err)
	require.NoError(t, repo.UpdateEmailVerification(ctx, created.ID, true))

	token, _, err := svc.Login(ctx, "asha@example.com", "secret123", "127.0.0.1", "go-test")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, created.ID, token))

	_, err = svc.ValidateTokenFromRedis(ctx, token)
	assert.Error(t, err)
}

func encodeVerificationCode(t *testing.T, email string, expAt int64) string {
	t.Helper()

	code := fmt.Sprintf("%v|%v", email, expAt)
	encrypted, err := goshortcute.AESCBCEncrypt([]byte(code), []byte(testVerificationKey))
	require.NoError(t, err)

	return goshortcute.StringtoBase64Encode(encrypted)
}

func TestVerifyEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo, &fakeNotifier{}, newFakeTokenRepo())
	ctx := context.Background()

	created, err := svc.Register(ctx, &domain.User{FullName: "Asha", Email: "asha@example.com", Password: "secret123"})
	require.NoError(t, err)

	code := encodeVerificationCode(t, "asha@example.com", time.Now().Add(5*time.Minute).Unix())

	require.NoError(t, svc.VerifyEmail(ctx, code))

	assert.True(t, repo.users[created.ID].IsVerified)
}

func TestVerifyEmailExpiredCode(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo, &fakeNotifier{}, newFakeTokenRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, &domain.User{FullName: "Asha", Email: "asha@example.com", Password: "secret123"})
	require.NoError(t, err)

	code := encodeVerificationCode(t, "asha@example.com", time.Now().Add(-time.Minute).Unix())

	err = svc.VerifyEmail(ctx, code)
	assert.ErrorContains(t, err, "invalid or expired")
}

func TestVerifyEmailGarbageCode(t *testing.T) {
	svc := newTestUserService(newFakeUserRepo(), &fakeNotifier{}, newFakeTokenRepo())

	err := svc.VerifyEmail(context.Background(), "not-a-real-code")
	assert.Error(t, err)
}

func TestVerifyEmailAlreadyVerified(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo, &fakeNotifier{}, newFakeTokenRepo())
	ctx := context.Background()

	created, err := svc.Register(ctx, &domain.User{FullName: "Asha", Email: "asha@example.com", Password: "secret123"})
	require.NoError(t, err)
	require.NoError(t, repo.UpdateEmailVerification(ctx, created.ID, true))

	code := encodeVerificationCode(t, "asha@example.com", time.Now().Add(5*time.Minute).Unix())

	err = svc.VerifyEmail(ctx, code)
	assert.ErrorContains(t, err, "invalid or expired")
}

func TestUpdateUserRejectsUnknownRole(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo, &fakeNotifier{}, newFakeTokenRepo())
	ctx := context.Background()

	created, err := svc.Register(ctx, &domain.User{FullName: "Asha", Email: "asha@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.UpdateUser(ctx, created.ID, &domain.User{Role: "superuser"})
	assert.ErrorContains(t, err, "invalid role")

	updated, err := svc.UpdateUser(ctx, created.ID, &domain.User{FullName: "Asha K"})
	require.NoError(t, err)
	assert.Equal(t, "Asha K", updated.FullName)
}
