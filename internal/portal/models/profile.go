// Package models defines the portal-side data models: the ambassador
// profile, catalog entries, gallery photos, and blog posts. Everything past
// the cms normalization boundary works with these fully-populated records.
package models

// MembershipTier classifies an ambassador's commission tier.
type MembershipTier string

const (
	TierStandard MembershipTier = "standard"
	TierElite    MembershipTier = "elite"
)

// ParseTier maps a backend tier string to a MembershipTier. Unknown or empty
// values default to TierStandard. The legacy value "pro" is still stored on
// accounts created before the tier rename and maps to TierElite.
func ParseTier(s string) MembershipTier {
	switch s {
	case string(TierElite), "pro":
		return TierElite
	default:
		return TierStandard
	}
}

// Profile is the authenticated ambassador's canonical record.
//
// ID and Slug are immutable after load; all other fields change only through
// the session's mutation flow.
type Profile struct {
	ID    int
	Name  string
	Email string
	Slug  string
	Bio   string
	Tier  MembershipTier

	// FeaturedActivities holds full denormalized catalog records for display;
	// only their identifiers travel to the backend. No duplicate IDs.
	FeaturedActivities []CatalogEntry

	Gallery []GalleryPhoto
}

// Clone returns a deep copy. The session hands out clones so callers never
// alias the single shared in-memory profile.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	c := *p
	c.FeaturedActivities = append([]CatalogEntry(nil), p.FeaturedActivities...)
	c.Gallery = append([]GalleryPhoto(nil), p.Gallery...)
	return &c
}

// ProfileUpdate is a sparse profile change: only non-nil fields are applied
// and transmitted. An explicit pointer to an empty value clears the field;
// a nil pointer leaves it unchanged.
type ProfileUpdate struct {
	Name               *string
	Bio                *string
	Tier               *MembershipTier
	FeaturedActivities *[]CatalogEntry
	Gallery            *[]GalleryPhoto
}

// IsZero reports whether the update carries no changes.
func (u ProfileUpdate) IsZero() bool {
	return u.Name == nil && u.Bio == nil && u.Tier == nil &&
		u.FeaturedActivities == nil && u.Gallery == nil
}

// ApplyTo merges the update into p in place.
func (u ProfileUpdate) ApplyTo(p *Profile) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Bio != nil {
		p.Bio = *u.Bio
	}
	if u.Tier != nil {
		p.Tier = *u.Tier
	}
	if u.FeaturedActivities != nil {
		p.FeaturedActivities = append([]CatalogEntry(nil), (*u.FeaturedActivities)...)
	}
	if u.Gallery != nil {
		p.Gallery = append([]GalleryPhoto(nil), (*u.Gallery)...)
	}
}
