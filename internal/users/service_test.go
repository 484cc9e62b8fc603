package users

import (
	"context"
	"errors"
	"testing"

	"github.com/newsbook/newsbook-api/internal/apperr"
	"github.com/newsbook/newsbook-api/internal/models"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeIssuer struct {
	last models.Identity
	err  error
}

func (f *fakeIssuer) Issue(id models.Identity) (string, error) {
	f.last = id
	return "token-for-" + id.ID, f.err
}

// errRepo fails every call
type errRepo struct{ err error }

func (e errRepo) Create(context.Context, *models.User) error { return e.err }
func (e errRepo) GetByEmail(context.Context, string) (*models.User, error) {
	return nil, e.err
}

func newTestService(repo UserRepository) (*Service, *fakeIssuer) {
	iss := &fakeIssuer{}
	svc := NewService(repo, iss)
	svc.cost = bcrypt.MinCost
	return svc, iss
}

func TestSignup_CreatesIdentityWithoutHash(t *testing.T) {
	repo := NewMemoryUserRepository()
	svc, _ := newTestService(repo)
	ctx := context.Background()

	id, err := svc.Signup(ctx, SignupInput{Name: "Ana", Email: "ana@x.com", Password: "secret1"})
	require.NoError(t, err)
	require.NotEmpty(t, id.ID)
	require.Equal(t, "Ana", id.Name)
	require.Equal(t, "ana@x.com", id.Email)

	stored, err := repo.GetByEmail(ctx, "ana@x.com")
	require.NoError(t, err)
	require.NotEqual(t, "secret1", stored.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")))
}

func TestSignup_DuplicateEmailConflict(t *testing.T) {
	svc, _ := newTestService(NewMemoryUserRepository())
	ctx := context.Background()
	in := SignupInput{Name: "Ana", Email: "ana@x.com", Password: "secret1"}

	_, err := svc.Signup(ctx, in)
	require.NoError(t, err)
	_, err = svc.Signup(ctx, in)
	require.True(t, apperr.Is(err, apperr.KindConflict), "got %v", err)

	// email comparison is case-sensitive as stored
	_, err = svc.Signup(ctx, SignupInput{Name: "Ana", Email: "Ana@x.com", Password: "secret1"})
	require.NoError(t, err)
}

// repository-level duplicate (unique index race) still maps to Conflict
type racingRepo struct{}

func (r racingRepo) GetByEmail(context.Context, string) (*models.User, error) { return nil, nil }
func (r racingRepo) Create(context.Context, *models.User) error            { return ErrEmailTaken }

func TestSignup_UniqueIndexRaceIsConflict(t *testing.T) {
	svc, _ := newTestService(racingRepo{})
	_, err := svc.Signup(context.Background(), SignupInput{Name: "Ana", Email: "ana@x.com", Password: "secret1"})
	require.True(t, apperr.Is(err, apperr.KindConflict), "got %v", err)
}

func TestSignup_ValidationEnumeratesFields(t *testing.T) {
	svc, _ := newTestService(NewMemoryUserRepository())
	_, err := svc.Signup(context.Background(), SignupInput{Name: "A", Email: "bad", Password: "123"})
	ae := apperr.From(err)
	require.Equal(t, apperr.KindValidationFailed, ae.Kind)
	require.Len(t, ae.Fields, 3)
}

func TestSignin_SuccessIssuesToken(t *testing.T) {
	svc, iss := newTestService(NewMemoryUserRepository())
	ctx := context.Background()
	created, err := svc.Signup(ctx, SignupInput{Name: "Ana", Email: "ana@x.com", Password: "secret1"})
	require.NoError(t, err)

	sess, err := svc.Signin(ctx, SigninInput{Email: "ana@x.com", Password: "secret1"})
	require.NoError(t, err)
	require.Equal(t, "token-for-"+created.ID, sess.Token)
	require.Equal(t, created, sess.User)
	require.Equal(t, created, iss.last)
}

func TestSignin_FailuresIndistinguishable(t *testing.T) {
	svc, _ := newTestService(NewMemoryUserRepository())
	ctx := context.Background()
	_, err := svc.Signup(ctx, SignupInput{Name: "Ana", Email: "ana@x.com", Password: "secret1"})
	require.NoError(t, err)

	_, errUnknown := svc.Signin(ctx, SigninInput{Email: "nobody@x.com", Password: "secret1"})
	_, errWrong := svc.Signin(ctx, SigninInput{Email: "ana@x.com", Password: "wrong-pass"})

	for _, e := range []error{errUnknown, errWrong} {
		ae := apperr.From(e)
		require.Equal(t, apperr.KindUnauthorized, ae.Kind)
		require.Equal(t, "Invalid credentials", ae.Message)
	}
	require.Equal(t, errUnknown.Error(), errWrong.Error())
}

func TestSignin_RepoErrorIsInternal(t *testing.T) {
	svc, _ := newTestService(errRepo{err: errors.New("db down")})
	_, err := svc.Signin(context.Background(), SigninInput{Email: "ana@x.com", Password: "secret1"})
	require.True(t, apperr.Is(err, apperr.KindInternal))
}

func TestSignin_IssuerErrorIsInternal(t *testing.T) {
	svc, iss := newTestService(NewMemoryUserRepository())
	ctx := context.Background()
	_, err := svc.Signup(ctx, SignupInput{Name: "Ana", Email: "ana@x.com", Password: "secret1"})
	require.NoError(t, err)

	iss.err = errors.New("signing failed")
	_, err = svc.Signin(ctx, SigninInput{Email: "ana@x.com", Password: "secret1"})
	require.True(t, apperr.Is(err, apperr.KindInternal))
}
