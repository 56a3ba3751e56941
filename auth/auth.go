package auth

import (
	"errors"
	"net/http"
	"time"

	guuid "github.com/google/uuid"
	uuid "github.com/satori/go.uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/noisersup/files-manager-api/cache"
	"github.com/noisersup/files-manager-api/database"
	"github.com/noisersup/files-manager-api/models"
)

// Session tokens live under this prefix in the cache, expiring
// server-side after sessionExpiry.
const tokenPrefix = "auth_"
const sessionExpiry = 24 * time.Hour

// TokenHeader is the request header carrying the session token.
const TokenHeader = "X-Token"

var Unauthorized error = errors.New("Unauthorized")

type Auth struct {
	cache models.Cache
	db    models.Database
}

func InitAuth(cache models.Cache, db models.Database) *Auth {
	return &Auth{cache: cache, db: db}
}

/*
	Resolves the session token of the request to its user.

	Every ownership-scoped handler calls this before touching the
	store. A missing header, an unknown token and a token whose user
	row is gone all come back as the same Unauthorized error; a
	dangling cache entry is never trusted.
*/
func (a *Auth) Authenticate(r *http.Request) (*models.User, error) {
	token := r.Header.Get(TokenHeader)
	if token == "" {
		return nil, Unauthorized
	}

	userId, err := a.cache.Get(tokenPrefix + token)
	if err != nil {
		if err == cache.KeyNotFound {
			return nil, Unauthorized
		}
		return nil, err
	}

	id, err := parseId(userId)
	if err != nil {
		return nil, Unauthorized
	}

	user, err := a.db.GetUser(id)
	if err != nil {
		if err == database.UserNotFound {
			return nil, Unauthorized
		}
		return nil, err
	}

	return user, nil
}

/*
	Takes email and password as input and returns a fresh session
	token if the credentials are valid
*/
func (a *Auth) Connect(email, password string) (string, error) {
	user, err := a.db.GetUserByEmail(email)
	if err != nil {
		if err == database.UserNotFound {
			return "", Unauthorized
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", Unauthorized
	}

	token := uuid.NewV4().String()
	if err = a.cache.Set(tokenPrefix+token, user.Id.String(), sessionExpiry); err != nil {
		return "", err
	}

	return token, nil
}

// Destroys the session behind the token. Unknown tokens are
// Unauthorized, matching Authenticate.
func (a *Auth) Disconnect(token string) error {
	if token == "" {
		return Unauthorized
	}

	if _, err := a.cache.Get(tokenPrefix + token); err != nil {
		if err == cache.KeyNotFound {
			return Unauthorized
		}
		return err
	}

	return a.cache.Del(tokenPrefix + token)
}

/*
	Registers new user with a bcrypt-hashed password
*/
func (a *Auth) Register(email, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return a.db.NewUser(email, string(hash))
}

func parseId(s string) (guuid.UUID, error) {
	return guuid.Parse(s)
}
