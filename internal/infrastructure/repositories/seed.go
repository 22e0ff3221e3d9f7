package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/you/hmsauth/domain"
)

// DemoPassword is the shared password of the seeded demo accounts.
const DemoPassword = "demo"

// demoAccounts are the four test users of the portal, one per role.
var demoAccounts = []domain.UserRecord{
	{
		ID:         "usr-1001",
		Name:       "Pavan Ponnella",
		Email:      "pavan@medicare.demo",
		Phone:      "+911234567890",
		Role:       domain.RolePatient,
		BloodGroup: "B+",
	},
	{
		ID:             "usr-1002",
		Name:           "Dr. Suman Dixit",
		Email:          "suman@medicare.demo",
		Phone:          "+911234567891",
		Role:           domain.RoleDoctor,
		Department:     "Cardiology",
		Specialization: "Interventional Cardiology",
	},
	{
		ID:    "usr-1003",
		Name:  "Admin User",
		Email: "admin@medicare.demo",
		Phone: "+911234567892",
		Role:  domain.RoleAdmin,
	},
	{
		ID:         "usr-1004",
		Name:       "Reception Staff",
		Email:      "reception@medicare.demo",
		Phone:      "+911234567893",
		Role:       domain.RoleStaff,
		Department: "Front Desk",
	},
}

// SeedDemoAccounts inserts the demo users if they are not present.
// Credentials are stored through the verifier so the same seed works for
// both the plaintext and the bcrypt configuration.
func SeedDemoAccounts(ctx context.Context, db *gorm.DB, verifier domain.CredentialVerifier) error {
	for _, account := range demoAccounts {
		stored, err := verifier.Hash(DemoPassword)
		if err != nil {
			return fmt.Errorf("failed to hash seed credential: %w", err)
		}
		account.Credential = stored

		dbUser := (&UserDirectoryImpl{}).domainToDB(&account)
		err = db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(dbUser).Error
		if err != nil {
			return fmt.Errorf("failed to seed account %s: %w", account.ID, err)
		}
	}
	return nil
}

// DemoAccounts returns a copy of the seeded demo users, without
// credentials. The demo login screen lists them.
func DemoAccounts() []domain.UserRecord {
	out := make([]domain.UserRecord, len(demoAccounts))
	copy(out, demoAccounts)
	return out
}
