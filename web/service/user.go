package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kinocourses/kinocourses/database"
	"github.com/kinocourses/kinocourses/database/model"
	"github.com/kinocourses/kinocourses/logger"
	"github.com/kinocourses/kinocourses/util/crypto"
)

// UserService is the credential store.
type UserService struct{}

// CheckUser returns the user whose email matches exactly and whose password
// hash matches password, or nil.
func (s *UserService) CheckUser(email string, password string) *model.User {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("email = ?", email).
		First(user).
		Error
	if database.IsNotFound(err) {
		return nil
	} else if err != nil {
		logger.Warning("check user err:", err)
		return nil
	}

	if !crypto.CheckPasswordHash(user.Password, password) {
		return nil
	}
	return user
}

func (s *UserService) GetUserById(id int) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("id = ?", id).
		First(user).
		Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

// AddUser stores a new user with a bcrypt hash of password. An empty
// nickname is stored as NULL.
func (s *UserService) AddUser(email string, password string, nickname string) (*model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, errors.New("email can not be empty")
	} else if password == "" {
		return nil, errors.New("password can not be empty")
	}

	hashedPassword, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:    email,
		Password: hashedPassword,
	}
	if nickname = strings.TrimSpace(nickname); nickname != "" {
		user.Nickname = &nickname
	}

	if err := database.GetDB().Create(user).Error; err != nil {
		return nil, fmt.Errorf("add user %s: %w", email, err)
	}
	return user, nil
}

func (s *UserService) GetUsers() ([]model.User, error) {
	var users []model.User
	err := database.GetDB().Model(model.User{}).Order("id").Find(&users).Error
	return users, err
}
