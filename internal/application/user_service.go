package application

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/sharejourney-api/internal/domain/apperror"
	"github.com/oksasatya/sharejourney-api/internal/domain/entity"
	repo "github.com/oksasatya/sharejourney-api/internal/domain/repository"
	"github.com/oksasatya/sharejourney-api/pkg/helpers"
)

// UserService implements registration, login sessions, profiles and account
// lifecycle. Sessions are stored in Redis keyed by user; the JWT carries the
// session ID so logout invalidates every outstanding token pair.
type UserService struct {
	Users        repo.UserRepository
	Follows      repo.FollowRepository
	Journeys     repo.JourneyRepository
	JWT          *helpers.JWTManager
	Redis        *redis.Client
	GCS          *storage.Client
	Bucket       string
	ES           *elasticsearch.Client
	ESUsersIndex string
	Logger       *logrus.Logger
}

type RegisterInput struct {
	Username  string `json:"username" binding:"required,min=3"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
	Password  string `json:"password" binding:"required,min=8"`
}

type UpdateProfileInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" binding:"omitempty,email"`
	Phone     string `json:"phone"`
}

// TokenPair is one issued access/refresh pair with the access expiry.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	taken, err := s.Users.EmailTaken(ctx, in.Email, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("email already registered: %w", apperror.ErrConflict)
	}
	if in.Phone != "" {
		taken, err = s.Users.PhoneTaken(ctx, in.Phone, "")
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("phone already registered: %w", apperror.ErrConflict)
		}
	}
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Username:  in.Username,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     strings.ToLower(in.Email),
		Phone:     in.Phone,
		Password:  hash,
		IsActive:  true,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	s.indexUser(ctx, u)
	return u, nil
}

// Login verifies credentials, rotates the Redis session, and issues a token
// pair. Deactivated accounts cannot log in.
func (s *UserService) Login(ctx context.Context, email, password string) (*entity.User, *TokenPair, error) {
	u, err := s.Users.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, nil, fmt.Errorf("invalid credentials: %w", apperror.ErrUnauthorized)
	}
	if !u.IsActive {
		return nil, nil, fmt.Errorf("account deactivated: %w", apperror.ErrUnauthorized)
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, nil, fmt.Errorf("invalid credentials: %w", apperror.ErrUnauthorized)
	}

	sessionID := uuid.NewString()
	if err := s.storeSession(ctx, u.ID, sessionID); err != nil {
		return nil, nil, err
	}
	pair, err := s.issuePair(u.ID, sessionID)
	if err != nil {
		return nil, nil, err
	}
	return u, pair, nil
}

// Refresh validates the refresh token against the stored session and issues a
// fresh pair under the same session.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", apperror.ErrUnauthorized)
	}
	stored, err := s.Redis.Get(ctx, helpers.SessionKey(claims.UserID)).Result()
	if err != nil || stored != claims.SessionID {
		return nil, fmt.Errorf("session expired: %w", apperror.ErrUnauthorized)
	}
	return s.issuePair(claims.UserID, claims.SessionID)
}

// Logout drops the Redis session, invalidating all tokens issued under it.
func (s *UserService) Logout(ctx context.Context, userID string) error {
	return s.Redis.Del(ctx, helpers.SessionKey(userID)).Err()
}

// Profile returns the user with live follower/following/journey counts.
func (s *UserService) Profile(ctx context.Context, userID string) (*entity.User, entity.ProfileCounts, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, entity.ProfileCounts{}, err
	}
	followers, following, err := s.Follows.Counts(ctx, userID)
	if err != nil {
		return nil, entity.ProfileCounts{}, err
	}
	journeys, err := s.Journeys.CountByCreator(ctx, userID)
	if err != nil {
		return nil, entity.ProfileCounts{}, err
	}
	return u, entity.ProfileCounts{
		FollowerCount:  followers,
		FollowingCount: following,
		JourneyCount:   journeys,
	}, nil
}

// UpdateProfile edits the user's own fields; email/phone uniqueness is
// enforced excluding the user themselves.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.Email != "" && !strings.EqualFold(in.Email, u.Email) {
		taken, err := s.Users.EmailTaken(ctx, in.Email, userID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("email already registered: %w", apperror.ErrConflict)
		}
		u.Email = strings.ToLower(in.Email)
	}
	if in.Phone != "" && in.Phone != u.Phone {
		taken, err := s.Users.PhoneTaken(ctx, in.Phone, userID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("phone already registered: %w", apperror.ErrConflict)
		}
		u.Phone = in.Phone
	}
	if in.FirstName != "" {
		u.FirstName = in.FirstName
	}
	if in.LastName != "" {
		u.LastName = in.LastName
	}
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	s.indexUser(ctx, u)
	return u, nil
}

// UploadAvatar stores the image in object storage and saves its public URL.
func (s *UserService) UploadAvatar(ctx context.Context, userID, filename, contentType string, body io.Reader) (string, error) {
	if s.GCS == nil || s.Bucket == "" {
		return "", apperror.Validationf("avatar uploads are not configured")
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	object := fmt.Sprintf("avatars/%s/%d%s", userID, time.Now().UnixNano(), path.Ext(filename))
	url, err := helpers.UploadObject(ctx, s.GCS, s.Bucket, object, contentType, body)
	if err != nil {
		return "", err
	}
	u.AvatarURL = url
	if err := s.Users.Update(ctx, u); err != nil {
		return "", err
	}
	return url, nil
}

// Deactivate soft-deletes the account and drops the login session.
func (s *UserService) Deactivate(ctx context.Context, userID string) error {
	if err := s.Users.Deactivate(ctx, userID); err != nil {
		return err
	}
	return s.Redis.Del(ctx, helpers.SessionKey(userID)).Err()
}

// Search finds users by name/username via the search index.
func (s *UserService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     q,
				"fields":    []string{"username^2", "first_name", "last_name"},
				"fuzziness": "AUTO",
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESUsersIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

func (s *UserService) issuePair(userID, sessionID string) (*TokenPair, error) {
	access, exp, err := s.JWT.GenerateAccessToken(userID, sessionID)
	if err != nil {
		return nil, err
	}
	refresh, _, err := s.JWT.GenerateRefreshToken(userID, sessionID)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh, ExpiresAt: exp}, nil
}

func (s *UserService) storeSession(ctx context.Context, userID, sessionID string) error {
	return s.Redis.Set(ctx, helpers.SessionKey(userID), sessionID, s.JWT.RefreshTTL).Err()
}

func (s *UserService) indexUser(ctx context.Context, u *entity.User) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return
	}
	doc := map[string]any{
		"id":         u.ID,
		"username":   u.Username,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"avatar_url": u.AvatarURL,
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESUsersIndex, DocumentID: u.ID, Body: strings.NewReader(string(b))}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
		}
		return
	}
	_ = res.Body.Close()
}
