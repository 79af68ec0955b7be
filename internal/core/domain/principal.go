package domain

import "sort"

// AuthorityPrefix is prepended to every role name to form an authority tag.
const AuthorityPrefix = "ROLE_"

// AuthoritySet is an unordered set of authority tags such as "ROLE_Admin".
type AuthoritySet map[string]struct{}

// NewAuthoritySet builds a set from the given tags.
func NewAuthoritySet(tags ...string) AuthoritySet {
	set := make(AuthoritySet, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}
	return set
}

// Has reports whether tag is a member of the set.
func (s AuthoritySet) Has(tag string) bool {
	_, ok := s[tag]
	return ok
}

// HasAny reports whether at least one of tags is a member of the set.
func (s AuthoritySet) HasAny(tags ...string) bool {
	for _, t := range tags {
		if s.Has(t) {
			return true
		}
	}
	return false
}

// Sorted returns the tags in lexical order.
func (s AuthoritySet) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// AuthenticatedPrincipal is the identity plus authorities derived for one
// authentication or one request. It is never persisted.
type AuthenticatedPrincipal struct {
	UserName    string
	Authorities AuthoritySet
}

// HasAuthority reports whether the principal carries tag.
func (p *AuthenticatedPrincipal) HasAuthority(tag string) bool {
	return p != nil && p.Authorities.Has(tag)
}
