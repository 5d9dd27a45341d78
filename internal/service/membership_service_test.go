package service

import (
	"context"
	"testing"

	"github.com/alumnihub/alumni-backend/internal/model"
	"github.com/alumnihub/alumni-backend/internal/repository"
	"github.com/alumnihub/alumni-backend/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type membershipFixture struct {
	db      *gorm.DB
	svc     MembershipService
	storage *fakeStorage
	mail    *fakeMailer

	adminA *model.User
	adminB *model.User
	member *model.User
}

func newMembershipFixture(t *testing.T) *membershipFixture {
	t.Helper()

	db := setupTestDB(t)
	adminRole, userRole := seedTestRoles(t, db)

	fs := &fakeStorage{}
	mail := &fakeMailer{}

	userRepo := repository.NewUserRepository(db)
	appRepo := repository.NewApplicationRepository(db)
	svc := NewMembershipService(appRepo, userRepo, fs, mail, nil, nil)

	f := &membershipFixture{
		db:      db,
		svc:     svc,
		storage: fs,
		mail:    mail,
		adminA:  createTestUser(t, db, "admin-a", adminRole.ID),
		adminB:  createTestUser(t, db, "admin-b", adminRole.ID),
		member:  createTestUser(t, db, "member", userRole.ID),
	}
	createTestApplication(t, db, f.member.ID, "member")
	return f
}

func (f *membershipFixture) application(t *testing.T) *model.MemberApplication {
	t.Helper()

	var app model.MemberApplication
	if err := f.db.Where("user_id = ?", f.member.ID).First(&app).Error; err != nil {
		t.Fatalf("failed to reload application: %v", err)
	}
	return &app
}

func (f *membershipFixture) makeProfileComplete(t *testing.T) {
	t.Helper()

	if err := f.db.Create(completeProfile(f.member.ID)).Error; err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}
}

func (f *membershipFixture) addDocument(t *testing.T, name, url string) {
	t.Helper()

	doc := model.VerificationDocument{
		UserID:   f.member.ID,
		Name:     name,
		URL:      url,
		MimeType: "application/pdf",
	}
	if err := f.db.Create(&doc).Error; err != nil {
		t.Fatalf("failed to create document: %v", err)
	}
}

func TestApprove_TwoAdminFlow(t *testing.T) {
	f := newMembershipFixture(t)
	f.makeProfileComplete(t)
	f.addDocument(t, "certificate.pdf", "https://storage.test/docs/certificate.pdf")
	ctx := context.Background()

	// First admin vote: one short of the threshold.
	result, err := f.svc.Approve(ctx, f.adminA.ID, f.member.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.ApprovalCount)
	assert.False(t, result.Approved)
	assert.True(t, result.ProfileComplete)

	app := f.application(t)
	assert.Equal(t, model.ApplicationPending, app.Status)
	assert.Nil(t, app.ApprovedAt)
	assert.Empty(t, f.mail.sent, "no email before finalization")
	assert.Empty(t, f.storage.deletes, "documents kept until finalization")

	// Second, distinct admin vote finalizes the membership.
	result, err = f.svc.Approve(ctx, f.adminB.ID, f.member.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, result.ApprovalCount)
	assert.True(t, result.Approved)

	app = f.application(t)
	assert.Equal(t, model.ApplicationApproved, app.Status)
	require.NotNil(t, app.ApprovedAt)

	// The user row mirror is written in the same transaction.
	var member model.User
	require.NoError(t, f.db.First(&member, "id = ?", f.member.ID).Error)
	assert.Equal(t, model.ApplicationApproved, member.MembershipStatus)

	// Finalization purges documents and emails the member.
	assert.Equal(t, []string{"https://storage.test/docs/certificate.pdf"}, f.storage.deletes)
	var docCount int64
	require.NoError(t, f.db.Model(&model.VerificationDocument{}).
		Where("user_id = ?", f.member.ID).Count(&docCount).Error)
	assert.Zero(t, docCount)
	assert.Equal(t, []string{f.member.Email}, f.mail.sent)
}

func TestApprove_DuplicateVoteIsConflict(t *testing.T) {
	f := newMembershipFixture(t)
	f.makeProfileComplete(t)
	ctx := context.Background()

	_, err := f.svc.Approve(ctx, f.adminA.ID, f.member.ID)
	require.NoError(t, err)

	// The same admin voting again must not move the count.
	_, err = f.svc.Approve(ctx, f.adminA.ID, f.member.ID)
	assert.ErrorIs(t, err, apperror.ErrAlreadyApproved)

	app := f.application(t)
	assert.Equal(t, 1, app.ApprovalCount)
	assert.Equal(t, model.ApplicationPending, app.Status)

	var votes int64
	require.NoError(t, f.db.Model(&model.ApprovalVote{}).
		Where("application_id = ?", app.ID).Count(&votes).Error)
	assert.EqualValues(t, 1, votes)
}

func TestApprove_IncompleteProfileBlocksFinalization(t *testing.T) {
	f := newMembershipFixture(t)
	f.addDocument(t, "id-card.jpg", "https://storage.test/docs/id-card.jpg")
	ctx := context.Background()

	// Five of six mandatory fields filled: still incomplete.
	profile := completeProfile(f.member.ID)
	profile.BloodGroup = ""
	require.NoError(t, f.db.Create(profile).Error)

	_, err := f.svc.Approve(ctx, f.adminA.ID, f.member.ID)
	require.NoError(t, err)
	result, err := f.svc.Approve(ctx, f.adminB.ID, f.member.ID)
	require.NoError(t, err)

	// Threshold reached, but no finalization without a complete profile.
	assert.Equal(t, 2, result.ApprovalCount)
	assert.False(t, result.Approved)
	assert.False(t, result.ProfileComplete)

	app := f.application(t)
	assert.Equal(t, model.ApplicationPending, app.Status)
	assert.Empty(t, f.storage.deletes)
	assert.Empty(t, f.mail.sent)
}

func TestApprove_FinalizesWhenProfileCompletedLater(t *testing.T) {
	f := newMembershipFixture(t)
	ctx := context.Background()

	// Five of six fields, then both admins vote.
	profile := completeProfile(f.member.ID)
	profile.Hall = ""
	require.NoError(t, f.db.Create(profile).Error)

	_, err := f.svc.Approve(ctx, f.adminA.ID, f.member.ID)
	require.NoError(t, err)
	_, err = f.svc.Approve(ctx, f.adminB.ID, f.member.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationPending, f.application(t).Status)

	// The member fills in the missing field; a third admin's vote finalizes.
	require.NoError(t, f.db.Model(&model.Profile{}).
		Where("user_id = ?", f.member.ID).
		Update("hall", "North Hall").Error)

	adminC := createTestUser(t, f.db, "admin-c", *f.adminA.RoleID)
	result, err := f.svc.Approve(ctx, adminC.ID, f.member.ID)
	require.NoError(t, err)
	assert.True(t, result.Approved)
	assert.Equal(t, 3, result.ApprovalCount)
	assert.Equal(t, model.ApplicationApproved, f.application(t).Status)
}

func TestApprove_UnknownMember(t *testing.T) {
	f := newMembershipFixture(t)

	_, err := f.svc.Approve(context.Background(), f.adminA.ID, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestApprove_AfterRejectionIsTerminal(t *testing.T) {
	f := newMembershipFixture(t)
	f.makeProfileComplete(t)
	ctx := context.Background()

	reason := "could not verify graduation records"
	require.NoError(t, f.svc.Reject(ctx, f.adminA.ID, f.member.ID, &reason))

	_, err := f.svc.Approve(ctx, f.adminB.ID, f.member.ID)
	assert.ErrorIs(t, err, apperror.ErrTerminalState)
	assert.Equal(t, model.ApplicationRejected, f.application(t).Status)
}

func TestReject_StoresReasonAndPurgesDocuments(t *testing.T) {
	f := newMembershipFixture(t)
	f.addDocument(t, "certificate.pdf", "https://storage.test/docs/certificate.pdf")
	ctx := context.Background()

	reason := "duplicate account"
	require.NoError(t, f.svc.Reject(ctx, f.adminA.ID, f.member.ID, &reason))

	app := f.application(t)
	assert.Equal(t, model.ApplicationRejected, app.Status)
	require.NotNil(t, app.RejectionReason)
	assert.Equal(t, reason, *app.RejectionReason)
	require.NotNil(t, app.RejectedBy)
	assert.Equal(t, f.adminA.ID, *app.RejectedBy)
	assert.NotNil(t, app.RejectedAt)

	var member model.User
	require.NoError(t, f.db.First(&member, "id = ?", f.member.ID).Error)
	assert.Equal(t, model.ApplicationRejected, member.MembershipStatus)

	assert.Equal(t, []string{"https://storage.test/docs/certificate.pdf"}, f.storage.deletes)
	assert.Empty(t, f.mail.sent, "rejection sends no email")
}

func TestReject_IsIdempotent(t *testing.T) {
	f := newMembershipFixture(t)
	ctx := context.Background()

	reason := "incomplete paperwork"
	require.NoError(t, f.svc.Reject(ctx, f.adminA.ID, f.member.ID, &reason))
	require.NoError(t, f.svc.Reject(ctx, f.adminB.ID, f.member.ID, nil))

	app := f.application(t)
	assert.Equal(t, model.ApplicationRejected, app.Status)
	require.NotNil(t, app.RejectedBy)
	assert.Equal(t, f.adminB.ID, *app.RejectedBy)
}

func TestReject_ApprovedMemberIsTerminal(t *testing.T) {
	f := newMembershipFixture(t)
	f.makeProfileComplete(t)
	ctx := context.Background()

	_, err := f.svc.Approve(ctx, f.adminA.ID, f.member.ID)
	require.NoError(t, err)
	_, err = f.svc.Approve(ctx, f.adminB.ID, f.member.ID)
	require.NoError(t, err)

	err = f.svc.Reject(ctx, f.adminA.ID, f.member.ID, nil)
	assert.ErrorIs(t, err, apperror.ErrTerminalState)
	assert.Equal(t, model.ApplicationApproved, f.application(t).Status)
}

func TestReject_ApprovedMemberKeepsDocuments(t *testing.T) {
	f := newMembershipFixture(t)
	f.makeProfileComplete(t)
	ctx := context.Background()

	_, err := f.svc.Approve(ctx, f.adminA.ID, f.member.ID)
	require.NoError(t, err)
	_, err = f.svc.Approve(ctx, f.adminB.ID, f.member.ID)
	require.NoError(t, err)

	// A document uploaded after approval must survive a refused rejection.
	f.addDocument(t, "new-cert.pdf", "https://storage.test/docs/new-cert.pdf")

	err = f.svc.Reject(ctx, f.adminA.ID, f.member.ID, nil)
	require.ErrorIs(t, err, apperror.ErrTerminalState)

	assert.NotContains(t, f.storage.deletes, "https://storage.test/docs/new-cert.pdf")

	var docCount int64
	require.NoError(t, f.db.Model(&model.VerificationDocument{}).
		Where("user_id = ?", f.member.ID).Count(&docCount).Error)
	assert.EqualValues(t, 1, docCount)
}

func TestApprove_StorageFailureDoesNotRollBack(t *testing.T) {
	f := newMembershipFixture(t)
	f.makeProfileComplete(t)
	f.addDocument(t, "certificate.pdf", "https://storage.test/docs/certificate.pdf")
	f.storage.failDel = true
	ctx := context.Background()

	_, err := f.svc.Approve(ctx, f.adminA.ID, f.member.ID)
	require.NoError(t, err)
	result, err := f.svc.Approve(ctx, f.adminB.ID, f.member.ID)
	require.NoError(t, err)

	// The approval stands even when the storage purge fails.
	assert.True(t, result.Approved)
	assert.Equal(t, model.ApplicationApproved, f.application(t).Status)
}

func TestListPending(t *testing.T) {
	f := newMembershipFixture(t)
	f.makeProfileComplete(t)
	ctx := context.Background()

	// A second applicant without a profile.
	other := createTestUser(t, f.db, "other-member", *f.member.RoleID)
	createTestApplication(t, f.db, other.ID, "other-member")

	pending, err := f.svc.ListPending(ctx, 20, 0)
	require.NoError(t, err)
	require.Len(t, pending, 2)

	byUser := map[uuid.UUID]bool{}
	for _, p := range pending {
		byUser[p.Application.UserID] = p.ProfileComplete
	}
	assert.True(t, byUser[f.member.ID])
	assert.False(t, byUser[other.ID])

	// Approved members drop off the pending list.
	_, err = f.svc.Approve(ctx, f.adminA.ID, f.member.ID)
	require.NoError(t, err)
	_, err = f.svc.Approve(ctx, f.adminB.ID, f.member.ID)
	require.NoError(t, err)

	pending, err = f.svc.ListPending(ctx, 20, 0)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, other.ID, pending[0].Application.UserID)
}
