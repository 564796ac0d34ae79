package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	apierrors "acadreports/internal/errors"
)

// AnonymousID attributes uploads when authentication is disabled
const AnonymousID = "anonymous"

// Creator identifies who uploaded a report
type Creator struct {
	ID    string
	Email string
}

type creatorKey struct{}

// WithCreator stores c in ctx
func WithCreator(ctx context.Context, c Creator) context.Context {
	return context.WithValue(ctx, creatorKey{}, c)
}

// CreatorFromContext returns the authenticated creator, or the anonymous one
func CreatorFromContext(ctx context.Context) Creator {
	if c, ok := ctx.Value(creatorKey{}).(Creator); ok {
		return c
	}
	return Creator{ID: AnonymousID}
}

// Claims are the token claims read by Authenticator
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

var errMissingToken = errors.New("missing bearer token")

// Authenticator verifies HS256 bearer tokens
type Authenticator struct {
	secret  []byte
	issuer  string
	enabled bool
	logger  *slog.Logger
	parser  *jwt.Parser
}

// NewAuthenticator returns an authenticator. When enabled is false every
// request passes as anonymous.
func NewAuthenticator(secret, issuer string, enabled bool, logger *slog.Logger) *Authenticator {
	if logger == nil {
		logger = slog.Default()
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	return &Authenticator{
		secret:  []byte(secret),
		issuer:  issuer,
		enabled: enabled,
		logger:  logger.With(slog.String("component", "auth")),
		parser:  jwt.NewParser(opts...),
	}
}

// Enabled reports whether tokens are required
func (a *Authenticator) Enabled() bool {
	return a.enabled
}

// Verify parses a raw token and returns its creator
func (a *Authenticator) Verify(raw string) (Creator, error) {
	if raw == "" {
		return Creator{}, errMissingToken
	}
	claims := &Claims{}
	_, err := a.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	})
	if err != nil {
		return Creator{}, err
	}
	if claims.Subject == "" {
		return Creator{}, errors.New("token has no subject")
	}
	return Creator{ID: claims.Subject, Email: claims.Email}, nil
}

// Issue signs a token for c. It is used by tooling and tests.
func (a *Authenticator) Issue(c Creator, claims jwt.RegisteredClaims) (string, error) {
	claims.Subject = c.ID
	if claims.Issuer == "" {
		claims.Issuer = a.issuer
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{Email: c.Email, RegisteredClaims: claims})
	return token.SignedString(a.secret)
}

// Handler rejects requests without a valid token when enabled
func (a *Authenticator) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.enabled {
			next.ServeHTTP(w, r.WithContext(WithCreator(r.Context(), Creator{ID: AnonymousID})))
			return
		}

		creator, err := a.Verify(bearerToken(r))
		if err != nil {
			a.logger.WarnContext(r.Context(), "authentication failed",
				slog.String("path", r.URL.Path),
				slog.String("error", err.Error()),
			)
			w.Header().Set("WWW-Authenticate", "Bearer")
			apierrors.WriteProblem(w, apierrors.NewProblemDetails(
				http.StatusUnauthorized,
				apierrors.TypeUnauthorized,
				"Unauthorized",
				"Неверные учетные данные",
				r.URL.Path,
			).WithExtension("trace_id", GetRequestID(r.Context())))
			return
		}

		next.ServeHTTP(w, r.WithContext(WithCreator(r.Context(), creator)))
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
