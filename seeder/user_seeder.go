package seeder

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"hrms-portal/models"
	util "hrms-portal/pkg/utils"
	"hrms-portal/repository"
)

// demoTokenTTL keeps printed development tokens usable for a working day.
const demoTokenTTL = 12 * time.Hour

// TokenIssuer mints bearer tokens for seeded users.
type TokenIssuer interface {
	IssueToken(claims models.Claims, ttl time.Duration) (string, error)
}

// DemoUsers are the accounts created by SeedUsers.
var DemoUsers = []models.User{
	{ID: "000000000000000000000001", Name: "Admin Utama", Email: "admin.utama@example.com", Role: models.RoleAdmin},
	{ID: "000000000000000000000002", Name: "Karyawan Demo", Email: "karyawan.demo@example.com", Role: "karyawan"},
}

// SeedUsers creates the demo accounts when missing and returns a bearer
// token per account, keyed by email. It is meant for local development.
func SeedUsers(ctx context.Context, users repository.UserRepository, issuer TokenIssuer) (map[string]string, error) {
	util.Logger.Info("Seeding demo users")

	tokens := make(map[string]string, len(DemoUsers))
	for _, u := range DemoUsers {
		user := u
		created, err := users.EnsureUser(ctx, &user)
		if err != nil {
			return nil, fmt.Errorf("failed to seed user %s: %w", user.Email, err)
		}

		token, err := issuer.IssueToken(models.Claims{UserID: user.ID, Email: user.Email, Role: user.Role}, demoTokenTTL)
		if err != nil {
			return nil, fmt.Errorf("failed to issue token for %s: %w", user.Email, err)
		}
		tokens[user.Email] = token

		util.Logger.WithFields(logrus.Fields{
			"email":   user.Email,
			"role":    user.Role,
			"created": created,
		}).Infof("Demo user ready, bearer token: %s", token)
	}
	return tokens, nil
}
