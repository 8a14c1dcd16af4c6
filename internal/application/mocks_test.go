package application

import (
	"context"
	"time"

	"github.com/oksasatya/sharejourney-api/internal/domain/apperror"
	"github.com/oksasatya/sharejourney-api/internal/domain/entity"
	repo "github.com/oksasatya/sharejourney-api/internal/domain/repository"
)

// Func-field fakes: each test sets only the methods it expects to be called.
// Unset methods fail loudly via nil dereference.

type fakeUserRepo struct {
	CreateFn     func(ctx context.Context, u *entity.User) error
	GetByIDFn    func(ctx context.Context, id string) (*entity.User, error)
	GetByEmailFn func(ctx context.Context, email string) (*entity.User, error)
	UpdateFn     func(ctx context.Context, u *entity.User) error
	DeactivateFn func(ctx context.Context, id string) error
	EmailTakenFn func(ctx context.Context, email, excludeID string) (bool, error)
	PhoneTakenFn func(ctx context.Context, phone, excludeID string) (bool, error)
}

func (f *fakeUserRepo) Create(ctx context.Context, u *entity.User) error { return f.CreateFn(ctx, u) }
func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return f.GetByEmailFn(ctx, email)
}
func (f *fakeUserRepo) Update(ctx context.Context, u *entity.User) error { return f.UpdateFn(ctx, u) }
func (f *fakeUserRepo) Deactivate(ctx context.Context, id string) error {
	return f.DeactivateFn(ctx, id)
}
func (f *fakeUserRepo) EmailTaken(ctx context.Context, email, excludeID string) (bool, error) {
	return f.EmailTakenFn(ctx, email, excludeID)
}
func (f *fakeUserRepo) PhoneTaken(ctx context.Context, phone, excludeID string) (bool, error) {
	return f.PhoneTakenFn(ctx, phone, excludeID)
}

type fakeJourneyRepo struct {
	CreateFn            func(ctx context.Context, j *entity.Journey) error
	GetByIDFn           func(ctx context.Context, id string) (*entity.Journey, error)
	UpdateFn            func(ctx context.Context, j *entity.Journey) error
	LockCommentsFn      func(ctx context.Context, id string) error
	CompleteFn          func(ctx context.Context, id string) error
	ListActiveFn        func(ctx context.Context) ([]entity.Journey, error)
	ListByCreatorFn     func(ctx context.Context, userID string) ([]entity.Journey, error)
	ListForUserFn       func(ctx context.Context, userID string) ([]entity.Journey, error)
	CountByCreatorFn    func(ctx context.Context, userID string) (int, error)
	MembersFn           func(ctx context.Context, journeyID string) ([]entity.Member, error)
	StatsFn             func(ctx context.Context, journeyID, viewerID string) (entity.JourneyStats, error)
	StatisticsFn        func(ctx context.Context) (repo.JourneyStatistics, error)
	MonthlyStatisticsFn func(ctx context.Context, from, to time.Time) (repo.JourneyStatistics, error)
}

func (f *fakeJourneyRepo) Create(ctx context.Context, j *entity.Journey) error {
	return f.CreateFn(ctx, j)
}
func (f *fakeJourneyRepo) GetByID(ctx context.Context, id string) (*entity.Journey, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeJourneyRepo) Update(ctx context.Context, j *entity.Journey) error {
	return f.UpdateFn(ctx, j)
}
func (f *fakeJourneyRepo) LockComments(ctx context.Context, id string) error {
	return f.LockCommentsFn(ctx, id)
}
func (f *fakeJourneyRepo) Complete(ctx context.Context, id string) error {
	return f.CompleteFn(ctx, id)
}
func (f *fakeJourneyRepo) ListActive(ctx context.Context) ([]entity.Journey, error) {
	return f.ListActiveFn(ctx)
}
func (f *fakeJourneyRepo) ListByCreator(ctx context.Context, userID string) ([]entity.Journey, error) {
	return f.ListByCreatorFn(ctx, userID)
}
func (f *fakeJourneyRepo) ListForUser(ctx context.Context, userID string) ([]entity.Journey, error) {
	return f.ListForUserFn(ctx, userID)
}
func (f *fakeJourneyRepo) CountByCreator(ctx context.Context, userID string) (int, error) {
	return f.CountByCreatorFn(ctx, userID)
}
func (f *fakeJourneyRepo) Members(ctx context.Context, journeyID string) ([]entity.Member, error) {
	return f.MembersFn(ctx, journeyID)
}
func (f *fakeJourneyRepo) Stats(ctx context.Context, journeyID, viewerID string) (entity.JourneyStats, error) {
	return f.StatsFn(ctx, journeyID, viewerID)
}
func (f *fakeJourneyRepo) Statistics(ctx context.Context) (repo.JourneyStatistics, error) {
	return f.StatisticsFn(ctx)
}
func (f *fakeJourneyRepo) MonthlyStatistics(ctx context.Context, from, to time.Time) (repo.JourneyStatistics, error) {
	return f.MonthlyStatisticsFn(ctx, from, to)
}

type fakeParticipationRepo struct {
	GetByJourneyAndUserFn   func(ctx context.Context, journeyID, userID string) (*entity.Participation, error)
	ApproveFn               func(ctx context.Context, journeyID, userID string) (bool, error)
	RevokeFn                func(ctx context.Context, journeyID, userID string) error
	SetRatingAndRecomputeFn func(ctx context.Context, journeyID, userID string, rating int) (*float64, error)
}

func (f *fakeParticipationRepo) GetByJourneyAndUser(ctx context.Context, journeyID, userID string) (*entity.Participation, error) {
	return f.GetByJourneyAndUserFn(ctx, journeyID, userID)
}
func (f *fakeParticipationRepo) Approve(ctx context.Context, journeyID, userID string) (bool, error) {
	return f.ApproveFn(ctx, journeyID, userID)
}
func (f *fakeParticipationRepo) Revoke(ctx context.Context, journeyID, userID string) error {
	return f.RevokeFn(ctx, journeyID, userID)
}
func (f *fakeParticipationRepo) SetRatingAndRecompute(ctx context.Context, journeyID, userID string, rating int) (*float64, error) {
	return f.SetRatingAndRecomputeFn(ctx, journeyID, userID, rating)
}

type fakePostRepo struct {
	CreateFn               func(ctx context.Context, p *entity.Post) error
	GetByIDFn              func(ctx context.Context, id string) (*entity.Post, error)
	UpdateFn               func(ctx context.Context, p *entity.Post) error
	DeleteFn               func(ctx context.Context, id string) error
	ListByJourneyFn        func(ctx context.Context, journeyID string) ([]entity.Post, error)
	StatsFn                func(ctx context.Context, postID, viewerID string) (entity.PostStats, error)
	LatestLocationByUserFn func(ctx context.Context, userID string) (*entity.PostLocation, error)
}

func (f *fakePostRepo) Create(ctx context.Context, p *entity.Post) error { return f.CreateFn(ctx, p) }
func (f *fakePostRepo) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakePostRepo) Update(ctx context.Context, p *entity.Post) error { return f.UpdateFn(ctx, p) }
func (f *fakePostRepo) Delete(ctx context.Context, id string) error      { return f.DeleteFn(ctx, id) }
func (f *fakePostRepo) ListByJourney(ctx context.Context, journeyID string) ([]entity.Post, error) {
	return f.ListByJourneyFn(ctx, journeyID)
}
func (f *fakePostRepo) Stats(ctx context.Context, postID, viewerID string) (entity.PostStats, error) {
	return f.StatsFn(ctx, postID, viewerID)
}
func (f *fakePostRepo) LatestLocationByUser(ctx context.Context, userID string) (*entity.PostLocation, error) {
	return f.LatestLocationByUserFn(ctx, userID)
}

type fakeCommentRepo struct {
	CreateFn        func(ctx context.Context, c *entity.Comment) error
	GetByIDFn       func(ctx context.Context, kind entity.TargetKind, id string) (*entity.Comment, error)
	UpdateContentFn func(ctx context.Context, kind entity.TargetKind, id, content string) error
	DeleteFn        func(ctx context.Context, kind entity.TargetKind, id string) error
	ListByTargetFn  func(ctx context.Context, target entity.TargetRef) ([]*entity.Comment, error)
	CountFn         func(ctx context.Context, target entity.TargetRef) (int, error)
}

func (f *fakeCommentRepo) Create(ctx context.Context, c *entity.Comment) error {
	return f.CreateFn(ctx, c)
}
func (f *fakeCommentRepo) GetByID(ctx context.Context, kind entity.TargetKind, id string) (*entity.Comment, error) {
	return f.GetByIDFn(ctx, kind, id)
}
func (f *fakeCommentRepo) UpdateContent(ctx context.Context, kind entity.TargetKind, id, content string) error {
	return f.UpdateContentFn(ctx, kind, id, content)
}
func (f *fakeCommentRepo) Delete(ctx context.Context, kind entity.TargetKind, id string) error {
	return f.DeleteFn(ctx, kind, id)
}
func (f *fakeCommentRepo) ListByTarget(ctx context.Context, target entity.TargetRef) ([]*entity.Comment, error) {
	return f.ListByTargetFn(ctx, target)
}
func (f *fakeCommentRepo) Count(ctx context.Context, target entity.TargetRef) (int, error) {
	return f.CountFn(ctx, target)
}

type fakeLikeRepo struct {
	ToggleFn      func(ctx context.Context, userID string, target entity.TargetRef) (entity.Like, bool, error)
	CountActiveFn func(ctx context.Context, target entity.TargetRef) (int, error)
	IsActiveFn    func(ctx context.Context, userID string, target entity.TargetRef) (bool, error)
}

func (f *fakeLikeRepo) Toggle(ctx context.Context, userID string, target entity.TargetRef) (entity.Like, bool, error) {
	return f.ToggleFn(ctx, userID, target)
}
func (f *fakeLikeRepo) CountActive(ctx context.Context, target entity.TargetRef) (int, error) {
	return f.CountActiveFn(ctx, target)
}
func (f *fakeLikeRepo) IsActive(ctx context.Context, userID string, target entity.TargetRef) (bool, error) {
	return f.IsActiveFn(ctx, userID, target)
}

type fakeFollowRepo struct {
	ToggleFn      func(ctx context.Context, followerID, followingID string) (entity.Follow, bool, error)
	FollowersFn   func(ctx context.Context, userID string) ([]entity.User, error)
	FollowingFn   func(ctx context.Context, userID string) ([]entity.User, error)
	IsFollowingFn func(ctx context.Context, followerID, followingID string) (bool, error)
	CountsFn      func(ctx context.Context, userID string) (int, int, error)
}

func (f *fakeFollowRepo) Toggle(ctx context.Context, followerID, followingID string) (entity.Follow, bool, error) {
	return f.ToggleFn(ctx, followerID, followingID)
}
func (f *fakeFollowRepo) Followers(ctx context.Context, userID string) ([]entity.User, error) {
	return f.FollowersFn(ctx, userID)
}
func (f *fakeFollowRepo) Following(ctx context.Context, userID string) ([]entity.User, error) {
	return f.FollowingFn(ctx, userID)
}
func (f *fakeFollowRepo) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	return f.IsFollowingFn(ctx, followerID, followingID)
}
func (f *fakeFollowRepo) Counts(ctx context.Context, userID string) (int, int, error) {
	return f.CountsFn(ctx, userID)
}

type fakeReportRepo struct {
	FileFn               func(ctx context.Context, reporterID, reportedID, reason string) (*entity.Report, error)
	ProfileByUserFn      func(ctx context.Context, userID string) (*entity.ReportedUserProfile, error)
	RecountFromReportsFn func(ctx context.Context, userID string) (int, error)
	MarkProcessedFn      func(ctx context.Context, userID string) error
}

func (f *fakeReportRepo) File(ctx context.Context, reporterID, reportedID, reason string) (*entity.Report, error) {
	return f.FileFn(ctx, reporterID, reportedID, reason)
}
func (f *fakeReportRepo) ProfileByUser(ctx context.Context, userID string) (*entity.ReportedUserProfile, error) {
	return f.ProfileByUserFn(ctx, userID)
}
func (f *fakeReportRepo) RecountFromReports(ctx context.Context, userID string) (int, error) {
	return f.RecountFromReportsFn(ctx, userID)
}
func (f *fakeReportRepo) MarkProcessed(ctx context.Context, userID string) error {
	return f.MarkProcessedFn(ctx, userID)
}

// fakeNotificationRepo records created notifications in memory so tests can
// assert exactly which dispatches happened.
type fakeNotificationRepo struct {
	Created  []*entity.Notification
	CreateFn func(ctx context.Context, n *entity.Notification) error
	GetFn    func(ctx context.Context, id string) (*entity.Notification, error)
	ListFn   func(ctx context.Context, userID string) ([]entity.Notification, error)
	MarkFn   func(ctx context.Context, id string) error
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, n)
	}
	f.Created = append(f.Created, n)
	return nil
}
func (f *fakeNotificationRepo) GetByID(ctx context.Context, id string) (*entity.Notification, error) {
	return f.GetFn(ctx, id)
}
func (f *fakeNotificationRepo) ListByUser(ctx context.Context, userID string) ([]entity.Notification, error) {
	return f.ListFn(ctx, userID)
}
func (f *fakeNotificationRepo) MarkRead(ctx context.Context, id string) error {
	return f.MarkFn(ctx, id)
}

type fakePublisher struct {
	Published []any
	Err       error
}

func (f *fakePublisher) PublishJSON(_ context.Context, body any) error {
	if f.Err != nil {
		return f.Err
	}
	f.Published = append(f.Published, body)
	return nil
}

func newTestNotifier(repo *fakeNotificationRepo, pub *fakePublisher) *Notifier {
	return &Notifier{Repo: repo, Pub: pub}
}

func userGetter(users map[string]*entity.User) func(ctx context.Context, id string) (*entity.User, error) {
	return func(_ context.Context, id string) (*entity.User, error) {
		u, ok := users[id]
		if !ok {
			return nil, apperror.NotFoundf("user %s", id)
		}
		return u, nil
	}
}
