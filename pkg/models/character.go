package models

// Character is a single person record from the upstream people endpoint.
// The API delivers every property as a string; fields the upstream omits
// decode to "" and are skipped when the record is rendered.
type Character struct {
	Name      string `json:"name"`
	Height    string `json:"height"`
	Mass      string `json:"mass"`
	BirthYear string `json:"birth_year"`
	Homeworld string `json:"homeworld"` // resource URL, not embedded data
	CachedAt  string `json:"cached_at,omitempty"`
}
