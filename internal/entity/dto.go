package entity

// RegisterRequest is the self-registration payload. The account starts pending
// and without a password.
type RegisterRequest struct {
	NIP          string `json:"nip" binding:"required,min=5,max=50"`
	Username     string `json:"username" binding:"required,min=3,max=100"`
	Email        string `json:"email" binding:"required,email"`
	FullName     string `json:"full_name" binding:"required,min=3,max=255"`
	Jabatan      string `json:"jabatan" binding:"required,min=2,max=255"`
	Organization string `json:"organization" binding:"required,min=2,max=255"`
	NoTelepon    string `json:"no_telepon" binding:"required,min=10,max=20"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginData is the payload of a successful login response.
type LoginData struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresIn   int         `json:"expires_in"`
	User        UserSummary `json:"user"`
}

type SetPasswordRequest struct {
	Token           string `json:"token" binding:"required,min=10"`
	Password        string `json:"password" binding:"required,min=8,max=20"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=Password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ForgotPasswordData struct {
	IsAdmin bool `json:"is_admin"`
}

type ResetPasswordRequest struct {
	Token              string `json:"token" binding:"required,min=10"`
	NewPassword        string `json:"new_password" binding:"required,min=8,max=20"`
	ConfirmNewPassword string `json:"confirm_new_password" binding:"required,eqfield=NewPassword"`
}

type ChangePasswordRequest struct {
	CurrentPassword    string `json:"current_password" binding:"required,min=8"`
	NewPassword        string `json:"new_password" binding:"required,min=8,max=20"`
	ConfirmNewPassword string `json:"confirm_new_password" binding:"required,eqfield=NewPassword"`
}

type ProfileUpdateRequest struct {
	Username     string `json:"username" binding:"required,min=3,max=100"`
	Email        string `json:"email" binding:"required,email"`
	FullName     string `json:"full_name"`
	Organization string `json:"organization"`
}

// AdminUserCreateRequest creates a fully active account in one step.
type AdminUserCreateRequest struct {
	NIP          string `json:"nip" binding:"required,min=5,max=50"`
	Username     string `json:"username" binding:"required,min=3,max=100"`
	Email        string `json:"email" binding:"required,email"`
	FullName     string `json:"full_name" binding:"required,min=3,max=255"`
	Jabatan      string `json:"jabatan" binding:"required,min=2,max=255"`
	Organization string `json:"organization" binding:"required,min=2,max=255"`
	NoTelepon    string `json:"no_telepon" binding:"required,min=10,max=20"`
	RoleName     string `json:"role_name" binding:"required"`
	Password     string `json:"password" binding:"required,min=8,max=20"`
}

// AdminUserUpdateRequest patches only the provided fields.
type AdminUserUpdateRequest struct {
	NIP          *string `json:"nip,omitempty" binding:"omitempty,min=5,max=50"`
	Username     *string `json:"username,omitempty" binding:"omitempty,min=3,max=100"`
	Email        *string `json:"email,omitempty" binding:"omitempty,email"`
	FullName     *string `json:"full_name,omitempty" binding:"omitempty,min=3,max=255"`
	Jabatan      *string `json:"jabatan,omitempty" binding:"omitempty,min=2,max=255"`
	Organization *string `json:"organization,omitempty" binding:"omitempty,min=2,max=255"`
	NoTelepon    *string `json:"no_telepon,omitempty" binding:"omitempty,min=10,max=20"`
	RoleName     *string `json:"role_name,omitempty"`
}

type ToggleUserActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

type RoleChangeRequest struct {
	RoleName string `json:"role_name" binding:"required"`
}

type VerificationRequest struct {
	Status string `json:"status" binding:"required,oneof=approve reject"`
	Notes  string `json:"notes"`
}

type RoleSummary struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
