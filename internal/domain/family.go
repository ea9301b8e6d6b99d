package domain

import "time"

type Family struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	HeadOfFamily string     `json:"head_of_family"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}

// FamilyMember es la fila de unión familia-usuario; una fila por membresía.
type FamilyMember struct {
	ID        string    `json:"id"`
	FamilyID  string    `json:"family_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
