package model

import "github.com/jackc/pgx/v5/pgtype"

type User struct {
	ID            string             `json:"user_id"`
	Email         string             `json:"user_email"`
	Username      string             `json:"user_name"`
	FullName      *string            `json:"full_name,omitempty"`
	Bio           *string            `json:"bio,omitempty"`
	Gender        *string            `json:"gender,omitempty"`
	PhoneNumber   *string            `json:"phone_number,omitempty"`
	ProfileImgURL *string            `json:"profile_img_url,omitempty"`
	Password      string             `json:"-"`
	Verified      bool               `json:"verified"`
	OTP           *string            `json:"-"`
	OTPExpiry     pgtype.Timestamptz `json:"-"`
	ReferID       *string            `json:"refer_id,omitempty"`
	LastSignIn    pgtype.Timestamptz `json:"last_sign_in,omitempty"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
	ModifiedAt    pgtype.Timestamptz `json:"modified_at"`
}

type UpdateUserDTO struct {
	Username      *string `json:"user_name,omitempty"`
	FullName      *string `json:"full_name,omitempty"`
	Bio           *string `json:"bio,omitempty"`
	Gender        *string `json:"gender,omitempty"`
	PhoneNumber   *string `json:"phone_number,omitempty"`
	ProfileImgURL *string `json:"profile_img_url,omitempty"`
}

// UserProfile is the public projection of a user attached to posts,
// comments and follow lists.
type UserProfile struct {
	ID            string  `json:"user_id"`
	Username      string  `json:"user_name"`
	FullName      *string `json:"full_name,omitempty"`
	ProfileImgURL *string `json:"profile_img_url,omitempty"`
}
