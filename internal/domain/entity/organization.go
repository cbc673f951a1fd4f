package entity

// Organization is a UCSB student organization. It is keyed by its
// organization code rather than a generated id.
type Organization struct {
	OrgCode             string `json:"orgCode"`
	OrgTranslationShort string `json:"orgTranslationShort"`
	OrgTranslation      string `json:"orgTranslation"`
	Inactive            bool   `json:"inactive"`
}

// OrganizationName is the entity name used in not-found and delete messages.
const OrganizationName = "UCSBOrganization"

// Replace copies every mutable field of src onto o. The org code is the key
// and is never overwritten.
func (o *Organization) Replace(src *Organization) {
	o.OrgTranslationShort = src.OrgTranslationShort
	o.OrgTranslation = src.OrgTranslation
	o.Inactive = src.Inactive
}
