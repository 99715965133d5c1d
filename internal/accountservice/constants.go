package accountservice

const (
	// Error messages for account service operations
	ErrFailedToHashPassword    = "failed to hash password" // #nosec G101
	ErrFailedToRegisterAccount = "failed to register account"
	ErrFailedToRegisterUser    = "failed to register user"
	ErrRetrievingAccount       = "error retrieving account"
	ErrRetrievingUser          = "error retrieving user"
	ErrFailedToIssueSession    = "failed to issue session"
	ErrFailedToRevokeSession   = "failed to revoke session"
	ErrLoginRateLimit          = "failed to apply login rate limit"

	// actions rate limited by the service itself
	LoginAction = "login"

	MinPasswordLength = 8
	MaxPasswordLength = 64
)

// Icons are the avatars a new user is randomly given.
var Icons = []string{
	"person1", "person2", "person3", "person4", "person5", "person6",
	"person7", "person8", "person9", "person10", "person11", "person12",
}
