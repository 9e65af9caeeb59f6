package domain

// OwnerKind tells personal accounts apart from organizations.
// Values match the GitHub API's owner "type" field.
type OwnerKind string

const (
	OwnerUser         OwnerKind = "User"
	OwnerOrganization OwnerKind = "Organization"
)

// RepositoryRecord is a repository as listed for the authenticated account.
type RepositoryRecord struct {
	Name       string
	OwnerLogin string
	OwnerKind  OwnerKind
	Fork       bool
	Private    bool
	// Language is the repository's primary language; empty when GitHub has none.
	Language string
}

// FullName returns "owner/name".
func (r RepositoryRecord) FullName() string {
	return r.OwnerLogin + "/" + r.Name
}

// IsEligible reports whether repo counts toward the language totals of login.
// Forks, organization-owned repositories and repositories owned by anyone
// other than login are excluded; listings of shared repositories can contain
// all three.
func IsEligible(repo RepositoryRecord, login string) bool {
	if repo.Fork {
		return false
	}
	if repo.OwnerKind != OwnerUser {
		return false
	}
	return repo.OwnerLogin == login
}
