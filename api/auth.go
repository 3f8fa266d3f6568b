package api

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

// Authentication applies credentials to an outgoing request.
type Authentication interface {
	Apply(ctx context.Context, req *Request) error
}

type noAuth struct{}

// NoAuth sends requests anonymously.
func NoAuth() Authentication { return noAuth{} }

func (noAuth) Apply(context.Context, *Request) error { return nil }

type accessToken struct {
	src oauth2.TokenSource
}

// AccessToken authenticates with tokens from src. The Authorization
// scheme comes from the token's Type, which is "Bearer" unless the source
// says otherwise.
func AccessToken(src oauth2.TokenSource) Authentication {
	return accessToken{src: src}
}

// StaticToken authenticates with a fixed personal access token.
func StaticToken(token string) Authentication {
	return AccessToken(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
}

func (a accessToken) Apply(_ context.Context, req *Request) error {
	tok, err := a.src.Token()
	if err != nil {
		return &Error{Kind: KindCredential, Op: req.Operation, Err: err}
	}
	if !tok.Valid() {
		return &Error{Kind: KindCredential, Op: req.Operation, Message: "access token is empty or expired"}
	}
	return req.SetHeader("Authorization", tok.Type()+" "+tok.AccessToken)
}

type basicAuth struct {
	username string
	password string
}

// Basic authenticates with a username and password.
func Basic(username, password string) Authentication {
	return basicAuth{username: username, password: password}
}

func (a basicAuth) Apply(_ context.Context, req *Request) error {
	cred := base64.StdEncoding.EncodeToString([]byte(a.username + ":" + a.password))
	return req.SetHeader("Authorization", "Basic "+cred)
}

// GitHub rejects app tokens issued in the future or valid for more than
// ten minutes; iat is backdated to absorb clock drift.
const (
	appJWTBackdate = 60 * time.Second
	appJWTLifetime = 10 * time.Minute
	appJWTRefresh  = time.Minute
)

type jwtAuth struct {
	static string

	appID string
	key   *rsa.PrivateKey
	now   func() time.Time

	mu      sync.Mutex
	signed  string
	expires time.Time
}

// JWT authenticates with an already signed JSON Web Token.
func JWT(token string) Authentication {
	return &jwtAuth{static: token}
}

// AppJWT authenticates as a GitHub App, signing a short-lived RS256 token
// with the app's private key. Tokens are reused until a minute before
// they expire.
func AppJWT(appID string, key *rsa.PrivateKey) Authentication {
	return &jwtAuth{appID: appID, key: key, now: time.Now}
}

// ParseAppKey parses a PEM encoded RSA private key as downloaded from the
// GitHub App settings page.
func ParseAppKey(pemData []byte) (*rsa.PrivateKey, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM(pemData)
	if err != nil {
		return nil, &Error{Kind: KindCredential, Err: err}
	}
	return key, nil
}

func (a *jwtAuth) Apply(_ context.Context, req *Request) error {
	token, err := a.token()
	if err != nil {
		return &Error{Kind: KindCredential, Op: req.Operation, Err: err}
	}
	return req.SetHeader("Authorization", "Bearer "+token)
}

func (a *jwtAuth) token() (string, error) {
	if a.key == nil {
		if a.static == "" {
			return "", errors.New("jwt is empty")
		}
		return a.static, nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.now()
	if a.signed != "" && now.Add(appJWTRefresh).Before(a.expires) {
		return a.signed, nil
	}

	expires := now.Add(appJWTLifetime)
	claims := jwt.RegisteredClaims{
		Issuer:    a.appID,
		IssuedAt:  jwt.NewNumericDate(now.Add(-appJWTBackdate)),
		ExpiresAt: jwt.NewNumericDate(expires),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(a.key)
	if err != nil {
		return "", err
	}
	a.signed = signed
	a.expires = expires
	return signed, nil
}
