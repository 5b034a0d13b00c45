package service

import (
	"context"
	"time"

	"github.com/Laisky/errors/v2"
	"github.com/Laisky/zap"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/vividblog/vividblog-api/internal/web/apierr"
	"github.com/vividblog/vividblog-api/internal/web/blog/model"
	"github.com/vividblog/vividblog-api/library/db/mongo"
	"github.com/vividblog/vividblog-api/library/facebook"
	"github.com/vividblog/vividblog-api/library/jwt"
)

// AuthResult pairs the authenticated user with a freshly issued token.
type AuthResult struct {
	User  *model.User
	Token string
}

// Register creates a local account. The email must not be used by any
// non-deleted account.
func (s *Blog) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	if name == "" || email == "" || password == "" {
		return nil, apierr.New(apierr.KindValidation, "name, email and password are required")
	}

	if _, err := s.dao.GetActiveUserByEmail(ctx, email); err == nil {
		return nil, apierr.New(apierr.KindConflict, "email already in use").
			WithStatus(400)
	} else if !mongo.NotFound(err) {
		return nil, errors.Wrap(err, "check email")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}

	now := time.Now()
	user := &model.User{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Email:     email,
		Password:  string(hashed),
		Provider:  model.ProviderLocal,
		Role:      model.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.dao.GetUsersCol().InsertOne(ctx, user); err != nil {
		return nil, errors.Wrap(err, "insert user")
	}

	token, err := s.tokener.Sign(user.ID.Hex(), user.Role, jwt.ExpiresLogin)
	if err != nil {
		return nil, errors.Wrap(err, "sign token")
	}

	s.logger.Info("user registered",
		zap.String("user", user.ID.Hex()),
		zap.String("email", email))
	return &AuthResult{User: user, Token: token}, nil
}

// Login validates a local account's password and issues a week-long token.
func (s *Blog) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, apierr.New(apierr.KindValidation, "email and password are required")
	}

	user, err := s.dao.GetActiveUserByEmail(ctx, email)
	if err != nil {
		if mongo.NotFound(err) {
			return nil, apierr.New(apierr.KindNotFound, "user not found")
		}
		return nil, errors.Wrap(err, "find user")
	}

	if user.IsBlocked {
		return nil, apierr.New(apierr.KindForbidden, "account has been blocked by admin")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apierr.New(apierr.KindValidation, "wrong password")
	}

	token, err := s.tokener.Sign(user.ID.Hex(), user.Role, jwt.ExpiresLogin)
	if err != nil {
		return nil, errors.Wrap(err, "sign token")
	}

	s.logger.Debug("user login", zap.String("user", user.ID.Hex()))
	return &AuthResult{User: user, Token: token}, nil
}

// FacebookTokenLogin exchanges a client-supplied Graph API access token for
// a session, creating the account on first login.
func (s *Blog) FacebookTokenLogin(ctx context.Context, accessToken string) (*AuthResult, error) {
	if accessToken == "" {
		return nil, apierr.New(apierr.KindValidation, "missing access token")
	}

	profile, err := s.facebook.FetchProfile(ctx, accessToken)
	if err != nil {
		s.logger.Warn("facebook token rejected", zap.Error(err))
		return nil, apierr.New(apierr.KindInvalidCredential, "invalid facebook token")
	}

	return s.FacebookProfileLogin(ctx, profile, jwt.ExpiresLogin)
}

// FacebookOAuthLogin finishes the browser redirect flow: the access token
// obtained from the code exchange is resolved to a profile and upserted,
// with the shorter day-long session.
func (s *Blog) FacebookOAuthLogin(ctx context.Context, accessToken string) (*AuthResult, error) {
	profile, err := s.facebook.FetchProfile(ctx, accessToken)
	if err != nil {
		s.logger.Warn("facebook oauth token rejected", zap.Error(err))
		return nil, apierr.New(apierr.KindInvalidCredential, "invalid facebook token")
	}

	return s.FacebookProfileLogin(ctx, profile, jwt.ExpiresOAuth)
}

// FacebookProfileLogin upserts the account bound to a facebook profile and
// issues a token with the given lifetime. The OAuth redirect flow passes the
// shorter lifetime here.
func (s *Blog) FacebookProfileLogin(ctx context.Context, profile *facebook.Profile,
	expiresIn time.Duration) (*AuthResult, error) {
	user, err := s.dao.GetUserByFacebookID(ctx, profile.ID)
	if err != nil {
		if !mongo.NotFound(err) {
			return nil, errors.Wrap(err, "find facebook user")
		}

		now := time.Now()
		user = &model.User{
			ID:         primitive.NewObjectID(),
			FacebookID: profile.ID,
			Name:       profile.Name,
			Email:      profile.Email,
			Provider:   model.ProviderFacebook,
			Role:       model.RoleUser,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if _, err := s.dao.GetUsersCol().InsertOne(ctx, user); err != nil {
			return nil, errors.Wrap(err, "insert facebook user")
		}
		s.logger.Info("facebook user created", zap.String("user", user.ID.Hex()))
	}

	token, err := s.tokener.Sign(user.ID.Hex(), user.Role, expiresIn)
	if err != nil {
		return nil, errors.Wrap(err, "sign token")
	}

	return &AuthResult{User: user, Token: token}, nil
}

// VerifyToken parses a bearer token into its claims.
func (s *Blog) VerifyToken(raw string) (*jwt.UserClaims, error) {
	return s.tokener.Verify(raw)
}

// AuthenticatedUser resolves token claims into a live account. A vanished
// or soft-deleted account fails as unavailable, a blocked one as forbidden.
func (s *Blog) AuthenticatedUser(ctx context.Context, userID primitive.ObjectID) (*model.User, error) {
	user, err := s.dao.GetUserByID(ctx, userID)
	if err != nil {
		if mongo.NotFound(err) {
			return nil, apierr.New(apierr.KindAccountUnavailable, "user missing or deleted")
		}
		return nil, errors.Wrap(err, "find user")
	}
	if user.IsDeleted {
		return nil, apierr.New(apierr.KindAccountUnavailable, "user missing or deleted")
	}
	if user.IsBlocked {
		return nil, apierr.New(apierr.KindForbidden, "account has been blocked by admin")
	}

	return user, nil
}

// Profile loads the current user for /auth/me.
func (s *Blog) Profile(ctx context.Context, userID primitive.ObjectID) (*model.User, error) {
	user, err := s.dao.GetUserByID(ctx, userID)
	if err != nil {
		if mongo.NotFound(err) {
			return nil, apierr.New(apierr.KindNotFound, "user not found")
		}
		return nil, errors.Wrap(err, "find user")
	}

	return user, nil
}

// UpdateProfile updates the current user's name, email and optionally the
// avatar path.
func (s *Blog) UpdateProfile(ctx context.Context, userID primitive.ObjectID,
	name, email, avatar string) (*model.User, error) {
	if name == "" || email == "" {
		return nil, apierr.New(apierr.KindValidation, "name and email are required")
	}

	set := bson.M{
		"name":      name,
		"email":     email,
		"updatedAt": time.Now(),
	}
	if avatar != "" {
		set["avatar"] = avatar
	}

	res, err := s.dao.GetUsersCol().UpdateByID(ctx, userID, bson.M{"$set": set})
	if err != nil {
		return nil, errors.Wrap(err, "update profile")
	}
	if res.MatchedCount == 0 {
		return nil, apierr.New(apierr.KindNotFound, "user not found")
	}

	return s.dao.GetUserByID(ctx, userID)
}
