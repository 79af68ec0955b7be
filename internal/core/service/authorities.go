package service

import "github.com/sunitahospital/hospital-system/internal/core/domain"

// MapAuthorities turns a role set into authority tags: "ROLE_" + RoleName,
// case preserved. Duplicate role names collapse; no roles means no authorities.
func MapAuthorities(roles []domain.Role) domain.AuthoritySet {
	set := make(domain.AuthoritySet, len(roles))
	for _, r := range roles {
		set[domain.AuthorityPrefix+r.RoleName] = struct{}{}
	}
	return set
}
