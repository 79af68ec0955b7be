// Package seed loads bootstrap accounts from a YAML file.
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/sunitahospital/hospital-system/internal/core/domain"
	"github.com/sunitahospital/hospital-system/internal/core/ports"
)

type usersFile struct {
	Users []seedUser `yaml:"users"`
}

type seedUser struct {
	UserName      string   `yaml:"userName"`
	Password      string   `yaml:"password"`
	Email         string   `yaml:"email"`
	ContactNumber int64    `yaml:"contactNumber"`
	Address       string   `yaml:"address"`
	Roles         []string `yaml:"roles"`
	Disabled      bool     `yaml:"disabled"`
}

// Users creates every account listed in the YAML file at path that does not
// exist yet. Entries without a username or password are skipped. Accounts
// without roles get the default role.
func Users(ctx context.Context, path string, repo ports.UserRepository, hasher ports.PasswordHasher, log zerolog.Logger) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("seed users: %w", err)
	}
	return usersFromYAML(ctx, data, repo, hasher, log)
}

func usersFromYAML(ctx context.Context, data []byte, repo ports.UserRepository, hasher ports.PasswordHasher, log zerolog.Logger) (int, error) {
	var uf usersFile
	if err := yaml.Unmarshal(data, &uf); err != nil {
		return 0, fmt.Errorf("seed users: parse: %w", err)
	}

	created := 0
	for _, su := range uf.Users {
		if su.UserName == "" || su.Password == "" {
			continue
		}

		existing, err := repo.GetByKey(ctx, su.UserName)
		if err != nil {
			return created, fmt.Errorf("seed users: lookup %q: %w", su.UserName, err)
		}
		if existing != nil {
			continue
		}

		hash, err := hasher.Hash(su.Password)
		if err != nil {
			return created, fmt.Errorf("seed users: hash %q: %w", su.UserName, err)
		}

		user := &domain.User{
			UserName:      su.UserName,
			Password:      hash,
			Email:         su.Email,
			ContactNumber: su.ContactNumber,
			Address:       su.Address,
			Enabled:       !su.Disabled,
			Roles:         seedRoles(su.Roles),
			CreatedAt:     time.Now().UTC(),
		}
		if err := repo.Create(ctx, user); err != nil {
			if errors.Is(err, domain.ErrUserExists) {
				continue
			}
			return created, fmt.Errorf("seed users: create %q: %w", su.UserName, err)
		}

		created++
		log.Info().Str("user", su.UserName).Msg("seeded user")
	}
	return created, nil
}

func seedRoles(names []string) []domain.Role {
	if len(names) == 0 {
		return []domain.Role{{RoleName: domain.DefaultRoleName, Description: domain.DefaultRoleDescription}}
	}
	roles := make([]domain.Role, 0, len(names))
	for _, n := range names {
		roles = append(roles, domain.Role{RoleName: n})
	}
	return roles
}
