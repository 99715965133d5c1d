package accountservice

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/haguru/folio/internal/auth"
	"github.com/haguru/folio/internal/interfaces"
	"github.com/haguru/folio/internal/metrics"
	"github.com/haguru/folio/internal/models"
	"github.com/haguru/folio/internal/queries"
	"github.com/haguru/folio/internal/repository"
	"github.com/haguru/folio/pkg/helper"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned for an unknown email or a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidInput is returned when register arguments are unusable.
	ErrInvalidInput = errors.New("invalid input")
)

type AccountService struct {
	AccountRepo interfaces.AccountRepository
	UserRepo    interfaces.UserRepository
	TokenRepo   interfaces.TokenRepository
	Limiter     interfaces.RateLimiter
	PrivateKey  *ecdsa.PrivateKey
	TokenTTL    time.Duration
	Logger      interfaces.Logger
	Metrics     interfaces.Metrics

	now  func() time.Time
	icon func() string
}

// NewAccountService creates a new AccountService instance.
func NewAccountService(accountRepo interfaces.AccountRepository, userRepo interfaces.UserRepository,
	tokenRepo interfaces.TokenRepository, limiter interfaces.RateLimiter, privateKey *ecdsa.PrivateKey,
	tokenTTL time.Duration, logger interfaces.Logger, m interfaces.Metrics,
) *AccountService {
	return &AccountService{
		AccountRepo: accountRepo,
		UserRepo:    userRepo,
		TokenRepo:   tokenRepo,
		Limiter:     limiter,
		PrivateKey:  privateKey,
		TokenTTL:    tokenTTL,
		Logger:      logger,
		Metrics:     m,
		now:         func() time.Time { return time.Now().UTC() },
		icon:        func() string { return Icons[rand.IntN(len(Icons))] },
	}
}

// Register creates an account without a user and logs it in.
func (s *AccountService) Register(ctx context.Context, email, password string) (*models.Session, error) {
	funcName := helper.GetFuncName()
	email = queries.NormalizeEmail(email)
	s.Logger.Debug("Entering function", "func", funcName, "email", email)
	defer s.Logger.Debug("Exiting function", "func", funcName, "email", email)

	account, err := s.createAccount(ctx, email, password, primitive.NilObjectID)
	if err != nil {
		return nil, err
	}

	return s.issueSession(ctx, account, nil)
}

// RegisterWithUser creates a user with a random icon, an account linked to
// it, and logs the account in.
func (s *AccountService) RegisterWithUser(ctx context.Context, email, password, name, alias string) (*models.Session, error) {
	funcName := helper.GetFuncName()
	email = queries.NormalizeEmail(email)
	s.Logger.Debug("Entering function", "func", funcName, "email", email)
	defer s.Logger.Debug("Exiting function", "func", funcName, "email", email)

	if name == "" {
		return nil, fmt.Errorf("%s: name cannot be empty: %w", ErrFailedToRegisterUser, ErrInvalidInput)
	}
	if err := s.checkCredentials(email, password); err != nil {
		return nil, err
	}

	// fail early on a taken email so no orphan user is left behind
	_, err := s.AccountRepo.GetAccountByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%s: email already registered: %w", ErrFailedToRegisterAccount, repository.ErrDuplicate)
	case !errors.Is(err, repository.ErrNotFound):
		s.Logger.Error(ErrRetrievingAccount, "func", funcName, "email", email, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrRetrievingAccount, err)
	}

	user, err := s.UserRepo.AddUser(ctx, *models.NewUser(name, alias, s.icon(), s.now()))
	if err != nil {
		s.Logger.Error(ErrFailedToRegisterUser, "func", funcName, "name", name, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrFailedToRegisterUser, err)
	}

	account, err := s.createAccount(ctx, email, password, user.ID)
	if err != nil {
		return nil, err
	}

	return s.issueSession(ctx, account, user)
}

// Login checks the credentials and issues a session secret. Failed attempts
// count against the login limit of the email until a login succeeds.
func (s *AccountService) Login(ctx context.Context, email, password string) (*models.Session, error) {
	funcName := helper.GetFuncName()
	email = queries.NormalizeEmail(email)
	s.Logger.Debug("Entering function", "func", funcName, "email", email)
	defer s.Logger.Debug("Exiting function", "func", funcName, "email", email)

	if err := s.Limiter.Allow(ctx, LoginAction, email); err != nil {
		s.loginFailed()
		return nil, fmt.Errorf("%s: %w", ErrLoginRateLimit, err)
	}

	account, err := s.AccountRepo.GetAccountByEmail(ctx, email)
	if err != nil {
		s.loginFailed()
		if errors.Is(err, repository.ErrNotFound) {
			s.Logger.Info("Login for unknown email", "func", funcName, "email", email)
			return nil, ErrInvalidCredentials
		}
		s.Logger.Error(ErrRetrievingAccount, "func", funcName, "email", email, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrRetrievingAccount, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.HashedPassword), []byte(password)); err != nil {
		s.loginFailed()
		s.Logger.Info("Login with wrong password", "func", funcName, "email", email)
		return nil, ErrInvalidCredentials
	}

	if err := s.Limiter.Reset(ctx, LoginAction, email); err != nil {
		// the login itself succeeded
		s.Logger.Warn("Failed to reset login rate limit", "func", funcName, "email", email, "error", err)
	}

	var user *models.User
	if !account.UserID.IsZero() {
		user, err = s.UserRepo.GetUserByID(ctx, account.UserID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			s.Logger.Error(ErrRetrievingUser, "func", funcName, "email", email, "error", err)
			return nil, fmt.Errorf("%s: %w", ErrRetrievingUser, err)
		}
	}

	session, err := s.issueSession(ctx, account, user)
	if err != nil {
		return nil, err
	}
	if s.Metrics != nil {
		s.Metrics.IncCounter(metrics.LoginSuccessTotal)
	}
	s.Logger.Info("Account logged in", "func", funcName, "email", email)
	return session, nil
}

// Logout revokes the session secret of identity, or every secret of its
// account when all is set. It returns how many secrets were revoked.
func (s *AccountService) Logout(ctx context.Context, identity models.Identity, all bool) (int64, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "account", identity.AccountID.Hex(), "all", all)
	defer s.Logger.Debug("Exiting function", "func", funcName)

	if !identity.LoggedIn() {
		return 0, nil
	}

	var (
		revoked int64
		err     error
	)
	if all {
		revoked, err = s.TokenRepo.DeleteAccountTokens(ctx, identity.AccountID)
	} else {
		revoked, err = s.TokenRepo.DeleteToken(ctx, identity.TokenID)
	}
	if err != nil {
		s.Logger.Error(ErrFailedToRevokeSession, "func", funcName, "account", identity.AccountID.Hex(), "error", err)
		return 0, fmt.Errorf("%s: %w", ErrFailedToRevokeSession, err)
	}

	if s.Metrics != nil {
		s.Metrics.AddCounter(metrics.SessionsRevokedTotal, float64(revoked))
	}
	s.Logger.Info("Account logged out", "func", funcName, "account", identity.AccountID.Hex(), "revoked", revoked)
	return revoked, nil
}

func (s *AccountService) checkCredentials(email, password string) error {
	if email == "" {
		return fmt.Errorf("%s: email cannot be empty: %w", ErrFailedToRegisterAccount, ErrInvalidInput)
	}
	if len(password) < MinPasswordLength || len(password) > MaxPasswordLength {
		return fmt.Errorf("%s: password must be between %d and %d characters: %w",
			ErrFailedToRegisterAccount, MinPasswordLength, MaxPasswordLength, ErrInvalidInput)
	}
	return nil
}

func (s *AccountService) createAccount(ctx context.Context, email, password string, userID primitive.ObjectID) (*models.Account, error) {
	funcName := helper.GetFuncName()
	if err := s.checkCredentials(email, password); err != nil {
		return nil, err
	}

	s.Logger.Info("Registering account", "func", funcName, "email", email)
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.Logger.Error(ErrFailedToHashPassword, "func", funcName, "email", email, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrFailedToHashPassword, err)
	}

	account := models.NewAccount(email, string(hashedPassword), s.now())
	account.UserID = userID

	created, err := s.AccountRepo.AddAccount(ctx, *account)
	if err != nil {
		s.Logger.Error(ErrFailedToRegisterAccount, "func", funcName, "email", email, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrFailedToRegisterAccount, err)
	}

	if s.Metrics != nil {
		s.Metrics.IncCounter(metrics.RegistrationsTotal)
	}
	s.Logger.Info("Account registered successfully", "func", funcName, "email", email, "ID", created.ID.Hex())
	return created, nil
}

// issueSession signs a session secret for account and stores its id so the
// secret can be revoked.
func (s *AccountService) issueSession(ctx context.Context, account *models.Account, user *models.User) (*models.Session, error) {
	funcName := helper.GetFuncName()

	req := auth.TokenRequest{
		AccountID: account.ID.Hex(),
		Role:      models.RoleLoggedIn,
		TTL:       s.TokenTTL,
	}
	if user != nil {
		req.UserID = user.ID.Hex()
	}

	secret, claims, err := auth.CreateToken(req, s.PrivateKey)
	if err != nil {
		s.Logger.Error(ErrFailedToIssueSession, "func", funcName, "account", account.ID.Hex(), "error", err)
		return nil, fmt.Errorf("%s: %w", ErrFailedToIssueSession, err)
	}

	token := models.Token{
		ID:        claims.ID,
		AccountID: account.ID,
		Role:      claims.Role,
		Created:   claims.IssuedAt.Time.UTC(),
		Expires:   claims.ExpiresAt.Time.UTC(),
	}
	if err := s.TokenRepo.AddToken(ctx, token); err != nil {
		s.Logger.Error(ErrFailedToIssueSession, "func", funcName, "account", account.ID.Hex(), "error", err)
		return nil, fmt.Errorf("%s: %w", ErrFailedToIssueSession, err)
	}

	return &models.Session{Secret: secret, Account: account, User: user}, nil
}

func (s *AccountService) loginFailed() {
	if s.Metrics != nil {
		s.Metrics.IncCounter(metrics.LoginFailedTotal)
	}
}
