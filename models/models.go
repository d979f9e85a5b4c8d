package models

import "github.com/jinzhu/gorm"

type User struct {
	gorm.Model
	Name     string
	Email    string `gorm:"unique"`
	Password string
	Status   string
	Posts    []Post `gorm:"foreignkey:CreatorID"`
}

type Post struct {
	gorm.Model
	Title     string
	Content   string
	ImageURL  string
	CreatorID uint
	Creator   User `gorm:"foreignkey:CreatorID"`
}
