package domain

import "time"

// Role enumerates the portal roles.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleStaff   Role = "staff"
	RoleAdmin   Role = "admin"
)

// Roles returns all valid portal roles in a stable order.
func Roles() []Role {
	return []Role{RolePatient, RoleDoctor, RoleStaff, RoleAdmin}
}

// Valid reports whether r is one of the four portal roles.
func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

// UserRecord is a directory entry describing one portal account. The id is
// immutable after creation; profile fields change only through explicit
// profile updates.
type UserRecord struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Credential string `json:"-"`
	Role       Role   `json:"role"`

	// Role-dependent profile attributes.
	Department     string `json:"department,omitempty"`
	Specialization string `json:"specialization,omitempty"`
	BloodGroup     string `json:"blood_group,omitempty"`
	Allergies      string `json:"allergies,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasContactHandle reports whether at least one of email or phone is set.
// Every directory entry must satisfy this.
func (u *UserRecord) HasContactHandle() bool {
	return u.Email != "" || u.Phone != ""
}

// Session is the record of the currently authenticated user for one client
// scope. User is a copy of the directory entry, not a live reference:
// directory changes do not retroactively alter an active session.
type Session struct {
	ID         string     `json:"id"`
	User       UserRecord `json:"user"`
	Token      string     `json:"-"`
	RememberMe bool       `json:"remember_me"`
	CreatedAt  time.Time  `json:"created_at"`
}

// OTPChallenge binds a phone number to a one-time code for a single client
// scope. At most one challenge is live per scope; a new send supersedes the
// previous one.
type OTPChallenge struct {
	Phone      string    `json:"phone"`
	Code       string    `json:"code"`
	UserExists bool      `json:"user_exists"`
	SentAt     time.Time `json:"sent_at"`
}

// RegistrationProfile carries the fields required for self-registration.
type RegistrationProfile struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// Complete reports whether all required registration fields are present.
func (p RegistrationProfile) Complete() bool {
	return p.Name != "" && p.Email != "" && p.Phone != "" && p.Password != ""
}

// ProfileUpdate is a partial update of the active session's user record.
// Zero-valued fields are left unchanged.
type ProfileUpdate struct {
	Name           string `json:"name,omitempty"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Department     string `json:"department,omitempty"`
	Specialization string `json:"specialization,omitempty"`
	BloodGroup     string `json:"blood_group,omitempty"`
	Allergies      string `json:"allergies,omitempty"`
}

// ApplyTo merges the non-empty fields of the update into u.
func (p ProfileUpdate) ApplyTo(u *UserRecord) {
	if p.Name != "" {
		u.Name = p.Name
	}
	if p.Email != "" {
		u.Email = p.Email
	}
	if p.Phone != "" {
		u.Phone = p.Phone
	}
	if p.Department != "" {
		u.Department = p.Department
	}
	if p.Specialization != "" {
		u.Specialization = p.Specialization
	}
	if p.BloodGroup != "" {
		u.BloodGroup = p.BloodGroup
	}
	if p.Allergies != "" {
		u.Allergies = p.Allergies
	}
	u.UpdatedAt = time.Now()
}

// TrialState describes where the client stands against the trial deadline.
type TrialState string

const (
	TrialActive  TrialState = "active"
	TrialWarning TrialState = "warning"
	TrialEnded   TrialState = "ended"
)

// TrialStatus is the per-scope trial snapshot served to the shell.
type TrialStatus struct {
	State        TrialState    `json:"state"`
	Deadline     time.Time     `json:"deadline"`
	TimeLeft     time.Duration `json:"time_left"`
	NoticeSeen   bool          `json:"notice_seen"`
	WarningShown bool          `json:"warning_shown"`
}
