package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/you/hmsauth/domain"
)

// UserDirectoryImpl implements domain.UserDirectory using GORM. Credential
// comparison is delegated to the injected verifier so the demo plaintext
// check and the bcrypt check share one lookup path.
type UserDirectoryImpl struct {
	db       *gorm.DB
	verifier domain.CredentialVerifier
}

// DBUser is the database model for a directory entry.
type DBUser struct {
	ID             string `gorm:"primaryKey;size:64"`
	Name           string `gorm:"size:255"`
	Email          string `gorm:"uniqueIndex;size:255"`
	Phone          string `gorm:"index;size:32"`
	Credential     string `gorm:"column:password"`
	Role           string `gorm:"index;size:16"`
	Department     string `gorm:"size:128"`
	Specialization string `gorm:"size:128"`
	BloodGroup     string `gorm:"size:8"`
	Allergies      string `gorm:"size:255"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName returns the table name for GORM.
func (DBUser) TableName() string {
	return "users"
}

// NewUserDirectory creates a new GORM-backed user directory.
func NewUserDirectory(db *gorm.DB, verifier domain.CredentialVerifier) domain.UserDirectory {
	return &UserDirectoryImpl{db: db, verifier: verifier}
}

// FindByCredential implements domain.UserDirectory. The identifier matches
// either the stored email or the stored phone; absence and credential
// mismatch both read as (nil, nil).
func (r *UserDirectoryImpl) FindByCredential(ctx context.Context, identifier, password string) (*domain.UserRecord, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).
		Where("email = ? OR phone = ?", identifier, identifier).
		First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !r.verifier.Verify(dbUser.Credential, password) {
		return nil, nil
	}
	return r.dbToDomain(&dbUser), nil
}

// FindByPhone implements domain.UserDirectory.
func (r *UserDirectoryImpl) FindByPhone(ctx context.Context, phone string) (*domain.UserRecord, error) {
	return r.findOne(ctx, "phone = ?", phone)
}

// FindByEmail implements domain.UserDirectory.
func (r *UserDirectoryImpl) FindByEmail(ctx context.Context, email string) (*domain.UserRecord, error) {
	return r.findOne(ctx, "email = ?", email)
}

// FindByID implements domain.UserDirectory.
func (r *UserDirectoryImpl) FindByID(ctx context.Context, id string) (*domain.UserRecord, error) {
	return r.findOne(ctx, "id = ?", id)
}

// Create implements domain.UserDirectory.
func (r *UserDirectoryImpl) Create(ctx context.Context, user *domain.UserRecord) error {
	dbUser := r.domainToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		return err
	}
	user.CreatedAt = dbUser.CreatedAt
	user.UpdatedAt = dbUser.UpdatedAt
	return nil
}

// Update implements domain.UserDirectory.
func (r *UserDirectoryImpl) Update(ctx context.Context, user *domain.UserRecord) error {
	return r.db.WithContext(ctx).Save(r.domainToDB(user)).Error
}

func (r *UserDirectoryImpl) findOne(ctx context.Context, query string, arg string) (*domain.UserRecord, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where(query, arg).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

func (r *UserDirectoryImpl) domainToDB(user *domain.UserRecord) *DBUser {
	return &DBUser{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		Phone:          user.Phone,
		Credential:     user.Credential,
		Role:           string(user.Role),
		Department:     user.Department,
		Specialization: user.Specialization,
		BloodGroup:     user.BloodGroup,
		Allergies:      user.Allergies,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
}

func (r *UserDirectoryImpl) dbToDomain(dbUser *DBUser) *domain.UserRecord {
	return &domain.UserRecord{
		ID:             dbUser.ID,
		Name:           dbUser.Name,
		Email:          dbUser.Email,
		Phone:          dbUser.Phone,
		Credential:     dbUser.Credential,
		Role:           domain.Role(dbUser.Role),
		Department:     dbUser.Department,
		Specialization: dbUser.Specialization,
		BloodGroup:     dbUser.BloodGroup,
		Allergies:      dbUser.Allergies,
		CreatedAt:      dbUser.CreatedAt,
		UpdatedAt:      dbUser.UpdatedAt,
	}
}
