package domain

// Credential is the directory service's view of a user, reduced to
// what authentication needs. The directory owns the record; this
// service only reads it and, during recovery, requests a hash update.
type Credential struct {
	ID           int    `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"password"`
}
