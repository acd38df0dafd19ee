package entity

import (
	"encoding/base64"
	"time"
)

type Role struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email    string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"`
	Bio      string `gorm:"type:text" json:"bio"`

	AvatarName string `gorm:"size:255" json:"-"`
	AvatarType string `gorm:"size:100" json:"-"`
	AvatarBlob []byte `gorm:"type:bytea" json:"-"`
	BannerName string `gorm:"size:255" json:"-"`
	BannerType string `gorm:"size:100" json:"-"`
	BannerBlob []byte `gorm:"type:bytea" json:"-"`

	Roles      []Role      `gorm:"many2many:user_roles" json:"roles,omitempty"`
	Categories []*Category `gorm:"many2many:user_categories" json:"categories,omitempty"`
	Tags       []*Tag      `gorm:"many2many:user_tags" json:"tags,omitempty"`

	Blogs         []Blog         `gorm:"constraint:OnDelete:CASCADE" json:"blogs,omitempty"`
	Comments      []Comment      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Votes         []Vote         `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Verifications []Verification `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	// Forward direction of the follow edge; followers come from the reverse
	// side of the same join table.
	Following []*User `gorm:"many2many:user_following;joinForeignKey:UserID;joinReferences:FollowingUserID" json:"following,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// AvatarDataURI renders the stored avatar blob as a base64 data URI, or nil
// when no avatar has been uploaded.
func (u *User) AvatarDataURI() *string {
	return dataURI(u.AvatarType, u.AvatarBlob)
}

func (u *User) BannerDataURI() *string {
	return dataURI(u.BannerType, u.BannerBlob)
}

func dataURI(contentType string, blob []byte) *string {
	if len(blob) == 0 {
		return nil
	}
	uri := "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(blob)
	return &uri
}
