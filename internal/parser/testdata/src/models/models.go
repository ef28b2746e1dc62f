// Package models holds the wire types for the fixture service.
package models

import "example.com/models/bson"

// Role is an access role granted to a user.
// +schema
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// UserJson is one stored user account.
// +schema
// +schema:renameAll=camelCase
type UserJson struct {
	// Storage identifier.
	Id bson.ObjectID `json:"id"`
	// Login name, unique per tenant.
	UserName string `json:"user_name"`
	// Age in years, absent when never provided.
	Age *int `json:"age"`
	// Free-form labels.
	Tags []string `json:"tags"`
	// Granted role descriptions.
	RoleNotes map[Role]string `json:"role_notes"`
	// Short profile text.
	Bio *string `json:"bio" schema:"minLength=1"`
	// Discriminator for mixed collections.
	Kind string `json:"kind" schema:"literal=user"`

	Secret string `json:"secret" schema:"skip"`

	internal int //nolint:unused
}

// Ignored is present to prove unmarked types stay invisible.
type Ignored struct {
	Value string
}
