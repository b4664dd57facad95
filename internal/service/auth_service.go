package service

import (
	"context"
	"errors"
	"time"

	"jalanmon/internal/auth"
	"jalanmon/internal/config"
	"jalanmon/internal/entity"
	"jalanmon/internal/mailer"
	"jalanmon/internal/model"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const defaultRoleAfterApproval = entity.RoleEksekutif

// Service orchestrates the account lifecycle: registration, admin
// verification, credential issuance, password changes and user management.
type Service struct {
	repo   model.Repository
	hasher *auth.Hasher
	tokens *auth.Manager
	mail   mailer.Mailer
	cfg    config.Config
}

// NewService wires the workflow engine.
func NewService(repo model.Repository, hasher *auth.Hasher, tokens *auth.Manager, mail mailer.Mailer, cfg config.Config) *Service {
	return &Service{repo: repo, hasher: hasher, tokens: tokens, mail: mail, cfg: cfg}
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func (s *Service) ensureUniqueNIP(ctx context.Context, nip string, selfID uint) error {
	existing, err := s.repo.GetUserByNIP(ctx, nip)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return wrapError(KindInternal, "gagal memeriksa NIP", err)
	}
	if existing.ID != selfID {
		return newError(KindConflict, "NIP sudah terdaftar")
	}
	return nil
}

func (s *Service) ensureUniqueUsername(ctx context.Context, username string, selfID uint) error {
	existing, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return wrapError(KindInternal, "gagal memeriksa username", err)
	}
	if existing.ID != selfID {
		return newError(KindConflict, "Username sudah terdaftar")
	}
	return nil
}

func (s *Service) ensureUniqueEmail(ctx context.Context, email string, selfID uint) error {
	existing, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return wrapError(KindInternal, "gagal memeriksa email", err)
	}
	if existing.ID != selfID {
		return newError(KindConflict, "Email sudah terdaftar")
	}
	return nil
}

func (s *Service) validateRegistration(req *entity.RegisterRequest) error {
	if err := auth.ValidateNIP(req.NIP); err != nil {
		return newError(KindValidation, err.Error())
	}
	phone, err := auth.NormalizePhone(req.NoTelepon)
	if err != nil {
		return newError(KindValidation, err.Error())
	}
	req.NoTelepon = phone
	req.Email = auth.NormalizeEmail(req.Email)
	if err := auth.ValidateEmailDomain(req.Email, s.cfg.AllowedEmailDomain); err != nil {
		return newError(KindValidation, err.Error())
	}
	return nil
}

// Register creates a pending account without a password and fires the
// best-effort confirmation and admin-notification mails.
func (s *Service) Register(ctx context.Context, req entity.RegisterRequest) (*entity.DbUser, error) {
	if err := s.validateRegistration(&req); err != nil {
		return nil, err
	}

	if err := s.ensureUniqueNIP(ctx, req.NIP, 0); err != nil {
		return nil, err
	}
	if err := s.ensureUniqueUsername(ctx, req.Username, 0); err != nil {
		return nil, err
	}
	if err := s.ensureUniqueEmail(ctx, req.Email, 0); err != nil {
		return nil, err
	}

	user := &entity.DbUser{
		NIP:              req.NIP,
		Username:         req.Username,
		Email:            req.Email,
		FullName:         req.FullName,
		Jabatan:          req.Jabatan,
		Organization:     req.Organization,
		NoTelepon:        req.NoTelepon,
		IsActive:         false,
		IsVerified:       false,
		IsApproved:       false,
		StatusVerifikasi: entity.VerificationPending,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, newError(KindConflict, "NIP, username, atau email sudah terdaftar")
		}
		return nil, wrapError(KindInternal, "gagal membuat akun", err)
	}
	logrus.WithField("user_id", user.ID).Info("user registered, awaiting verification")

	if err := s.mail.SendRegistrationConfirmation(user.Email, user.FullName); err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Warn("failed to send registration confirmation mail")
	}
	if err := s.mail.SendAdminNewRegistration(user); err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Warn("failed to send admin registration notification")
	}

	return user, nil
}

// Authenticate verifies credentials and account status, stamps last activity
// and issues an access token carrying the current token version. The same
// generic message covers unknown accounts and wrong passwords.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*entity.LoginData, *entity.DbUser, error) {
	email = auth.NormalizeEmail(email)

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return nil, nil, newError(KindUnauthorized, "Pastikan email atau kata sandi yang Anda masukkan sudah sesuai")
		}
		return nil, nil, wrapError(KindInternal, "gagal memuat akun", err)
	}

	if user.HashedPassword == nil {
		return nil, nil, newError(KindUnauthorized, "Akun tidak valid. Silakan hubungi administrator.")
	}
	if !s.hasher.Verify(*user.HashedPassword, password) {
		return nil, nil, newError(KindUnauthorized, "Pastikan email atau kata sandi yang Anda masukkan sudah sesuai")
	}

	if !user.IsActive {
		return nil, nil, newError(KindForbidden, "Pengguna tidak aktif")
	}
	if !user.IsVerified {
		return nil, nil, newError(KindForbidden, "Akun Anda masih menunggu persetujuan administrator")
	}
	if !entity.IsAllowedRole(user.Role()) {
		return nil, nil, newError(KindForbidden, "Akses ditolak. Hanya Super Admin atau Eksekutif yang dapat login.")
	}

	if err := s.repo.TouchLastActivity(ctx, user.ID); err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Warn("failed to update last activity")
	}

	token, _, err := s.tokens.GenerateAccessToken(user.Username, user.TokenVersion)
	if err != nil {
		return nil, nil, wrapError(KindInternal, "gagal membuat token akses", err)
	}

	logrus.WithField("username", user.Username).Info("login successful")
	return &entity.LoginData{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   s.cfg.AccessTokenExpireMinutes,
	}, user, nil
}

// Logout bumps the token version, revoking every outstanding token for the
// account.
func (s *Service) Logout(ctx context.Context, userID uint) error {
	if err := s.repo.IncrementTokenVersion(ctx, userID); err != nil {
		return wrapError(KindInternal, "gagal logout", err)
	}
	logrus.WithField("user_id", userID).Info("user logged out, tokens revoked")
	return nil
}

// UpdateProfile changes the caller's own profile fields after re-checking
// uniqueness of username and email.
func (s *Service) UpdateProfile(ctx context.Context, user *entity.DbUser, req entity.ProfileUpdateRequest) (*entity.DbUser, error) {
	req.Email = auth.NormalizeEmail(req.Email)

	if req.Username != user.Username {
		if err := s.ensureUniqueUsername(ctx, req.Username, user.ID); err != nil {
			var domainErr *Error
			if errors.As(err, &domainErr) && domainErr.Kind == KindConflict {
				return nil, newError(KindConflict, "Username sudah digunakan oleh akun lain")
			}
			return nil, err
		}
	}
	if req.Email != user.Email {
		if err := s.ensureUniqueEmail(ctx, req.Email, user.ID); err != nil {
			var domainErr *Error
			if errors.As(err, &domainErr) && domainErr.Kind == KindConflict {
				return nil, newError(KindConflict, "Email sudah digunakan oleh akun lain")
			}
			return nil, err
		}
	}

	updates := map[string]interface{}{
		"username": req.Username,
		"email":    req.Email,
	}
	if req.FullName != "" {
		updates["full_name"] = req.FullName
	}
	if req.Organization != "" {
		updates["organization"] = req.Organization
	}

	if err := s.repo.UpdateUser(ctx, user.ID, updates); err != nil {
		return nil, wrapError(KindInternal, "gagal memperbarui profil", err)
	}
	updated, err := s.repo.GetUserByID(ctx, user.ID)
	if err != nil {
		return nil, wrapError(KindInternal, "gagal memuat profil", err)
	}
	return updated, nil
}

// ChangePassword verifies the current password, stores the new hash, revokes
// outstanding tokens and sends a best-effort notification.
func (s *Service) ChangePassword(ctx context.Context, user *entity.DbUser, req entity.ChangePasswordRequest) error {
	if user.HashedPassword == nil || !s.hasher.Verify(*user.HashedPassword, req.CurrentPassword) {
		return newError(KindBadRequest, "Password saat ini tidak sesuai")
	}
	if err := auth.ValidatePassword(req.NewPassword); err != nil {
		return newError(KindValidation, err.Error())
	}

	digest, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return wrapError(KindInternal, "gagal memproses password", err)
	}
	if err := s.repo.UpdateUser(ctx, user.ID, map[string]interface{}{"hashed_password": digest}); err != nil {
		return wrapError(KindInternal, "gagal menyimpan password", err)
	}
	if err := s.repo.IncrementTokenVersion(ctx, user.ID); err != nil {
		return wrapError(KindInternal, "gagal mencabut sesi lama", err)
	}

	if err := s.mail.SendPasswordChanged(user.Email, user.FullName); err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Warn("failed to send password changed notification")
	}
	return nil
}

func (s *Service) issueOneTimeToken(ctx context.Context, userID uint, purpose string, ttl time.Duration) (string, error) {
	if err := s.repo.SupersedeResetTokens(ctx, userID, purpose); err != nil {
		return "", wrapError(KindInternal, "gagal membatalkan token lama", err)
	}

	raw, err := auth.NewRawToken()
	if err != nil {
		return "", wrapError(KindInternal, "gagal membuat token", err)
	}
	record := &entity.DbPasswordResetToken{
		UserID:    userID,
		TokenHash: auth.HashRawToken(raw),
		Purpose:   purpose,
		ExpiresAt: time.Now().UTC().Add(ttl),
	}
	if err := s.repo.CreateResetToken(ctx, record); err != nil {
		return "", wrapError(KindInternal, "gagal menyimpan token", err)
	}
	return raw, nil
}

// consumeOneTimeToken validates and atomically consumes a raw token, returning
// the owning user id. Validation and marking-used are inseparable: the final
// update only succeeds while used_at is still NULL.
func (s *Service) consumeOneTimeToken(ctx context.Context, raw, purpose string) (uint, error) {
	record, err := s.repo.GetResetToken(ctx, auth.HashRawToken(raw))
	if err != nil {
		if isNotFound(err) {
			return 0, newError(KindBadRequest, "Token tidak valid")
		}
		return 0, wrapError(KindInternal, "gagal memuat token", err)
	}
	if record.Purpose != purpose {
		return 0, newError(KindBadRequest, "Token tidak valid")
	}
	if record.Used() {
		return 0, newError(KindBadRequest, "Token sudah pernah digunakan")
	}
	if record.Expired(time.Now().UTC()) {
		return 0, newError(KindBadRequest, "Token sudah kadaluarsa")
	}

	consumed, err := s.repo.ConsumeResetToken(ctx, record.ID)
	if err != nil {
		return 0, wrapError(KindInternal, "gagal menandai token", err)
	}
	if !consumed {
		// lost the race to a concurrent request
		return 0, newError(KindBadRequest, "Token sudah pernah digunakan")
	}
	return record.UserID, nil
}

// RequestPasswordReset issues a reset token and mail for a known verified
// account. Unknown or unverified emails silently no-op so account existence
// is never revealed; the returned flag is true only for Super Admin accounts.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) (bool, error) {
	email = auth.NormalizeEmail(email)

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			logrus.WithField("email", email).Warn("password reset requested for unknown email")
			return false, nil
		}
		return false, wrapError(KindInternal, "gagal memuat akun", err)
	}
	if !user.IsVerified {
		logrus.WithField("user_id", user.ID).Warn("password reset requested for unverified account")
		return false, nil
	}

	isAdmin := user.IsSuperAdmin()

	ttl := time.Duration(s.cfg.ResetTokenExpireHours) * time.Hour
	raw, err := s.issueOneTimeToken(ctx, user.ID, entity.TokenPurposeResetPassword, ttl)
	if err != nil {
		return false, err
	}

	// the token exists now; the user must receive it, so a send failure is fatal
	if err := s.mail.SendResetPassword(user.Email, raw); err != nil {
		return false, wrapError(KindInternal, "Gagal mengirim email reset password", err)
	}

	return isAdmin, nil
}

// ResetPassword consumes a reset token, stores the new hash and revokes all
// outstanding sessions. Links issued before the opaque store-backed tokens
// carried an email-bound JWT instead; those still resolve through the legacy
// path.
func (s *Service) ResetPassword(ctx context.Context, req entity.ResetPasswordRequest) error {
	if err := auth.ValidatePassword(req.NewPassword); err != nil {
		return newError(KindValidation, err.Error())
	}

	userID, err := s.consumeOneTimeToken(ctx, req.Token, entity.TokenPurposeResetPassword)
	if err != nil {
		if KindOf(err) == KindInternal {
			return err
		}
		legacyID, legacyErr := s.resolveLegacyResetToken(ctx, req.Token)
		if legacyErr != nil {
			return err
		}
		userID = legacyID
	}

	digest, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return wrapError(KindInternal, "gagal memproses password", err)
	}
	if err := s.repo.UpdateUser(ctx, userID, map[string]interface{}{"hashed_password": digest}); err != nil {
		return wrapError(KindInternal, "gagal menyimpan password", err)
	}
	if err := s.repo.IncrementTokenVersion(ctx, userID); err != nil {
		return wrapError(KindInternal, "gagal mencabut sesi lama", err)
	}

	logrus.WithField("user_id", userID).Info("password reset completed")
	return nil
}

// resolveLegacyResetToken honors an email-bound JWT reset token under the same
// rules as the opaque flow: the account must be verified and the token is
// single use. A consumed marker row is written under the token's hash, so a
// replay is caught by the opaque lookup (or by the unique index when two
// requests race here).
func (s *Service) resolveLegacyResetToken(ctx context.Context, raw string) (uint, error) {
	email, err := s.tokens.ParseResetToken(raw)
	if err != nil {
		return 0, err
	}
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return 0, err
	}
	if !user.IsVerified {
		return 0, errors.New("account is not verified")
	}

	now := time.Now().UTC()
	marker := &entity.DbPasswordResetToken{
		UserID:    user.ID,
		TokenHash: auth.HashRawToken(raw),
		Purpose:   entity.TokenPurposeResetPassword,
		ExpiresAt: now,
		UsedAt:    &now,
	}
	if err := s.repo.CreateResetToken(ctx, marker); err != nil {
		return 0, err
	}

	logrus.WithField("user_id", user.ID).Info("legacy reset token accepted")
	return user.ID, nil
}

// SetPasswordFromToken establishes the first password of an approved account.
func (s *Service) SetPasswordFromToken(ctx context.Context, req entity.SetPasswordRequest) error {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return newError(KindValidation, err.Error())
	}

	userID, err := s.consumeOneTimeToken(ctx, req.Token, entity.TokenPurposeSetPassword)
	if err != nil {
		return err
	}

	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		return wrapError(KindInternal, "gagal memproses password", err)
	}
	if err := s.repo.UpdateUser(ctx, userID, map[string]interface{}{"hashed_password": digest}); err != nil {
		return wrapError(KindInternal, "gagal menyimpan password", err)
	}

	logrus.WithField("user_id", userID).Info("initial password set")
	return nil
}

// VerifyUser resolves a pending registration. Approval persists first and the
// set-password mail failure then surfaces as an error: the account stays
// approved and delivery can be retried out of band, which we prefer over
// rolling back an admin decision.
func (s *Service) VerifyUser(ctx context.Context, admin *entity.DbUser, targetID uint, req entity.VerificationRequest) (*entity.DbUser, error) {
	if !admin.IsSuperAdmin() {
		return nil, newError(KindForbidden, "Hanya Super Admin yang dapat memverifikasi user")
	}

	target, err := s.repo.GetUserByID(ctx, targetID)
	if err != nil {
		if isNotFound(err) {
			return nil, newError(KindNotFound, "User tidak ditemukan")
		}
		return nil, wrapError(KindInternal, "gagal memuat user", err)
	}
	if target.StatusVerifikasi != entity.VerificationPending {
		return nil, newError(KindConflict, "User sudah "+target.StatusVerifikasi)
	}

	switch req.Status {
	case "approve":
		return s.approveUser(ctx, target, admin.ID, req.Notes)
	case "reject":
		return s.rejectUser(ctx, target, admin.ID, req.Notes)
	default:
		return nil, newError(KindValidation, "Status harus 'approve' atau 'reject'")
	}
}

func (s *Service) approveUser(ctx context.Context, target *entity.DbUser, adminID uint, notes string) (*entity.DbUser, error) {
	now := time.Now().UTC()
	updates := map[string]interface{}{
		"is_verified":        true,
		"is_active":          true,
		"is_approved":        true,
		"status_verifikasi":  entity.VerificationApproved,
		"verified_by":        adminID,
		"verified_at":        now,
		"verification_notes": notes,
		"role_name":          defaultRoleAfterApproval,
	}
	if err := s.repo.UpdateUser(ctx, target.ID, updates); err != nil {
		return nil, wrapError(KindInternal, "gagal menyetujui user", err)
	}

	ttl := time.Duration(s.cfg.SetPasswordExpireHours) * time.Hour
	raw, err := s.issueOneTimeToken(ctx, target.ID, entity.TokenPurposeSetPassword, ttl)
	if err != nil {
		return nil, err
	}

	if err := s.mail.SendSetPassword(target.Email, target.FullName, raw); err != nil {
		logrus.WithError(err).WithField("user_id", target.ID).Error("approval persisted but set-password mail failed")
		return nil, wrapError(KindInternal, "Gagal mengirim email set password", err)
	}

	logrus.WithFields(logrus.Fields{"user_id": target.ID, "admin_id": adminID}).Info("user approved")
	updated, err := s.repo.GetUserByID(ctx, target.ID)
	if err != nil {
		return nil, wrapError(KindInternal, "gagal memuat user", err)
	}
	return updated, nil
}

func (s *Service) rejectUser(ctx context.Context, target *entity.DbUser, adminID uint, notes string) (*entity.DbUser, error) {
	now := time.Now().UTC()
	updates := map[string]interface{}{
		"is_approved":        false,
		"status_verifikasi":  entity.VerificationRejected,
		"verified_by":        adminID,
		"verified_at":        now,
		"verification_notes": notes,
	}
	if err := s.repo.UpdateUser(ctx, target.ID, updates); err != nil {
		return nil, wrapError(KindInternal, "gagal menolak user", err)
	}

	if err := s.mail.SendRegistrationRejected(target.Email, target.FullName, notes); err != nil {
		logrus.WithError(err).WithField("user_id", target.ID).Warn("failed to send rejection notification")
	}

	logrus.WithFields(logrus.Fields{"user_id": target.ID, "admin_id": adminID}).Info("user rejected")
	updated, err := s.repo.GetUserByID(ctx, target.ID)
	if err != nil {
		return nil, wrapError(KindInternal, "gagal memuat user", err)
	}
	return updated, nil
}

// PendingUsers lists accounts awaiting verification.
func (s *Service) PendingUsers(ctx context.Context, limit, offset int) ([]entity.DbUser, int64, error) {
	users, total, err := s.repo.ListPendingUsers(ctx, limit, offset)
	if err != nil {
		return nil, 0, wrapError(KindInternal, "gagal memuat daftar user pending", err)
	}
	return users, total, nil
}

// ListUsers pages through accounts with search and role filter.
func (s *Service) ListUsers(ctx context.Context, query *entity.UserQuery) ([]entity.DbUser, int64, error) {
	users, total, err := s.repo.ListUsers(ctx, query)
	if err != nil {
		return nil, 0, wrapError(KindInternal, "gagal memuat daftar user", err)
	}
	return users, total, nil
}

// GetUser loads one account.
func (s *Service) GetUser(ctx context.Context, id uint) (*entity.DbUser, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, newError(KindNotFound, "User tidak ditemukan")
		}
		return nil, wrapError(KindInternal, "gagal memuat user", err)
	}
	return user, nil
}

// ListRoles returns the role reference data.
func (s *Service) ListRoles(ctx context.Context) ([]entity.DbRole, error) {
	roles, err := s.repo.ListRoles(ctx)
	if err != nil {
		return nil, wrapError(KindInternal, "gagal memuat daftar role", err)
	}
	return roles, nil
}

// CreateUserByAdmin provisions a fully active, verified account with a
// temporary password, which is mailed best-effort.
func (s *Service) CreateUserByAdmin(ctx context.Context, admin *entity.DbUser, req entity.AdminUserCreateRequest) (*entity.DbUser, error) {
	if !admin.IsSuperAdmin() {
		return nil, newError(KindForbidden, "Hanya Super Admin yang dapat membuat user")
	}

	if err := auth.ValidateNIP(req.NIP); err != nil {
		return nil, newError(KindValidation, err.Error())
	}
	phone, err := auth.NormalizePhone(req.NoTelepon)
	if err != nil {
		return nil, newError(KindValidation, err.Error())
	}
	req.NoTelepon = phone
	req.Email = auth.NormalizeEmail(req.Email)
	if err := auth.ValidateEmailDomain(req.Email, s.cfg.AllowedEmailDomain); err != nil {
		return nil, newError(KindValidation, err.Error())
	}
	if !entity.IsAllowedRole(req.RoleName) {
		return nil, newError(KindValidation, "Role harus salah satu dari: Super Admin, Eksekutif")
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, newError(KindValidation, err.Error())
	}

	if err := s.ensureUniqueNIP(ctx, req.NIP, 0); err != nil {
		return nil, err
	}
	if err := s.ensureUniqueUsername(ctx, req.Username, 0); err != nil {
		return nil, err
	}
	if err := s.ensureUniqueEmail(ctx, req.Email, 0); err != nil {
		return nil, err
	}

	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, wrapError(KindInternal, "gagal memproses password", err)
	}

	role := req.RoleName
	user := &entity.DbUser{
		NIP:              req.NIP,
		Username:         req.Username,
		Email:            req.Email,
		FullName:         req.FullName,
		Jabatan:          req.Jabatan,
		Organization:     req.Organization,
		NoTelepon:        req.NoTelepon,
		HashedPassword:   &digest,
		RoleName:         &role,
		IsActive:         true,
		IsVerified:       true,
		IsApproved:       true,
		StatusVerifikasi: entity.VerificationApproved,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, newError(KindConflict, "NIP, username, atau email sudah terdaftar")
		}
		return nil, wrapError(KindInternal, "gagal membuat user", err)
	}
	logrus.WithFields(logrus.Fields{"user_id": user.ID, "admin_id": admin.ID}).Info("user created by admin")

	if err := s.mail.SendAccountCreated(user.Email, user.FullName, user.Username, req.Password); err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Warn("failed to send account created mail")
	}

	return user, nil
}

// UpdateUserByAdmin patches the provided fields with uniqueness re-checks on
// changed identifiers.
func (s *Service) UpdateUserByAdmin(ctx context.Context, admin *entity.DbUser, targetID uint, req entity.AdminUserUpdateRequest) (*entity.DbUser, error) {
	if !admin.IsSuperAdmin() {
		return nil, newError(KindForbidden, "Hanya Super Admin yang dapat mengubah data user")
	}

	target, err := s.repo.GetUserByID(ctx, targetID)
	if err != nil {
		if isNotFound(err) {
			return nil, newError(KindNotFound, "User tidak ditemukan")
		}
		return nil, wrapError(KindInternal, "gagal memuat user", err)
	}

	updates := map[string]interface{}{}

	if req.NIP != nil && *req.NIP != target.NIP {
		if err := auth.ValidateNIP(*req.NIP); err != nil {
			return nil, newError(KindValidation, err.Error())
		}
		if err := s.ensureUniqueNIP(ctx, *req.NIP, targetID); err != nil {
			return nil, err
		}
		updates["nip"] = *req.NIP
	}
	if req.Username != nil && *req.Username != target.Username {
		if err := s.ensureUniqueUsername(ctx, *req.Username, targetID); err != nil {
			return nil, err
		}
		updates["username"] = *req.Username
	}
	if req.Email != nil {
		email := auth.NormalizeEmail(*req.Email)
		if email != target.Email {
			if err := auth.ValidateEmailDomain(email, s.cfg.AllowedEmailDomain); err != nil {
				return nil, newError(KindValidation, err.Error())
			}
			if err := s.ensureUniqueEmail(ctx, email, targetID); err != nil {
				return nil, err
			}
			updates["email"] = email
		}
	}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Jabatan != nil {
		updates["jabatan"] = *req.Jabatan
	}
	if req.Organization != nil {
		updates["organization"] = *req.Organization
	}
	if req.NoTelepon != nil {
		phone, err := auth.NormalizePhone(*req.NoTelepon)
		if err != nil {
			return nil, newError(KindValidation, err.Error())
		}
		updates["no_telepon"] = phone
	}
	if req.RoleName != nil {
		if !entity.IsAllowedRole(*req.RoleName) {
			return nil, newError(KindValidation, "Role harus salah satu dari: Super Admin, Eksekutif")
		}
		updates["role_name"] = *req.RoleName
	}

	if len(updates) == 0 {
		return target, nil
	}

	if err := s.repo.UpdateUser(ctx, targetID, updates); err != nil {
		return nil, wrapError(KindInternal, "gagal memperbarui user", err)
	}
	logrus.WithFields(logrus.Fields{"user_id": targetID, "admin_id": admin.ID}).Info("user updated by admin")

	updated, err := s.repo.GetUserByID(ctx, targetID)
	if err != nil {
		return nil, wrapError(KindInternal, "gagal memuat user", err)
	}
	return updated, nil
}

// ToggleUserActive enables or disables an account. Self-targeting is rejected
// and deactivation revokes outstanding tokens.
func (s *Service) ToggleUserActive(ctx context.Context, admin *entity.DbUser, targetID uint, isActive bool) (*entity.DbUser, error) {
	if !admin.IsSuperAdmin() {
		return nil, newError(KindForbidden, "Hanya Super Admin yang dapat mengubah status user")
	}

	target, err := s.repo.GetUserByID(ctx, targetID)
	if err != nil {
		if isNotFound(err) {
			return nil, newError(KindNotFound, "User tidak ditemukan")
		}
		return nil, wrapError(KindInternal, "gagal memuat user", err)
	}
	if target.ID == admin.ID {
		return nil, newError(KindBadRequest, "Tidak dapat mengubah status akun Anda sendiri")
	}

	if err := s.repo.UpdateUser(ctx, targetID, map[string]interface{}{"is_active": isActive}); err != nil {
		return nil, wrapError(KindInternal, "gagal mengubah status user", err)
	}

	if !isActive {
		if err := s.repo.IncrementTokenVersion(ctx, targetID); err != nil {
			return nil, wrapError(KindInternal, "gagal mencabut sesi user", err)
		}
		logrus.WithField("user_id", targetID).Info("user deactivated, tokens revoked")
	}

	updated, err := s.repo.GetUserByID(ctx, targetID)
	if err != nil {
		return nil, wrapError(KindInternal, "gagal memuat user", err)
	}
	return updated, nil
}

// ChangeUserRole assigns one of the two allowed roles.
func (s *Service) ChangeUserRole(ctx context.Context, admin *entity.DbUser, targetID uint, roleName string) (*entity.DbUser, error) {
	if !admin.IsSuperAdmin() {
		return nil, newError(KindForbidden, "Hanya Super Admin yang dapat mengubah role user")
	}
	if !entity.IsAllowedRole(roleName) {
		return nil, newError(KindValidation, "Role harus salah satu dari: Super Admin, Eksekutif")
	}

	if _, err := s.repo.GetUserByID(ctx, targetID); err != nil {
		if isNotFound(err) {
			return nil, newError(KindNotFound, "User tidak ditemukan")
		}
		return nil, wrapError(KindInternal, "gagal memuat user", err)
	}

	if err := s.repo.UpdateUser(ctx, targetID, map[string]interface{}{"role_name": roleName}); err != nil {
		return nil, wrapError(KindInternal, "gagal mengubah role user", err)
	}
	logrus.WithFields(logrus.Fields{"user_id": targetID, "role": roleName, "admin_id": admin.ID}).Info("user role changed")

	updated, err := s.repo.GetUserByID(ctx, targetID)
	if err != nil {
		return nil, wrapError(KindInternal, "gagal memuat user", err)
	}
	return updated, nil
}
