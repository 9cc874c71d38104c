package restaurant

// User identifies a review author. Ownership checks compare IDs only,
// never whole values; the display fields are carried for rendering.
type User struct {
	ID         string
	Username   string
	GivenName  string
	FamilyName string
}
