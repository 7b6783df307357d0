// Package model defines the database rows of the catalog.
package model

import "time"

// Course is a catalog entry. Courses are not attributed to an author.
type Course struct {
	Id          int        `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string     `json:"name" gorm:"size:80;not null"`
	Description string     `json:"description" gorm:"type:text;not null"`
	Cover       string     `json:"cover" gorm:"type:text"`
	IsNew       bool       `json:"isNew" gorm:"default:false"`
	DateStart   *time.Time `json:"dateStart"`
	DateEnd     *time.Time `json:"dateEnd"`
	Lessons     []Lesson   `json:"lessons" gorm:"foreignKey:CourseId;references:Id;constraint:OnDelete:CASCADE"`
}

type Lesson struct {
	Id       int     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name     string  `json:"name" gorm:"size:80;not null"`
	Content  string  `json:"content" gorm:"type:text;not null"`
	CourseId int     `json:"courseId" gorm:"not null;index"`
	Course   *Course `json:"-" gorm:"foreignKey:CourseId;references:Id;constraint:OnDelete:CASCADE"`
}

// User is created out of band with the CLI. Password holds a bcrypt hash only.
type User struct {
	Id       int     `json:"id" gorm:"primaryKey;autoIncrement"`
	Email    string  `json:"email" gorm:"size:80;uniqueIndex;not null"`
	Password string  `json:"-" gorm:"size:60"`
	Nickname *string `json:"nickname" gorm:"size:32;uniqueIndex"`
}

// DisplayName returns the nickname, or the email when no nickname is set.
func (u *User) DisplayName() string {
	if u.Nickname != nil && *u.Nickname != "" {
		return *u.Nickname
	}
	return u.Email
}

type Setting struct {
	Id    int    `json:"id" form:"id" gorm:"primaryKey;autoIncrement"`
	Key   string `json:"key" form:"key" gorm:"uniqueIndex"`
	Value string `json:"value" form:"value"`
}
