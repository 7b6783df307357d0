package service

import (
	"github.com/kinocourses/kinocourses/database"
	"github.com/kinocourses/kinocourses/database/model"
	"github.com/kinocourses/kinocourses/logger"
	"github.com/kinocourses/kinocourses/util/random"
)

const secretKey = "secret"

// SettingService persists key/value settings.
type SettingService struct{}

func (s *SettingService) getSetting(key string) (*model.Setting, error) {
	db := database.GetDB()
	setting := &model.Setting{}
	err := db.Model(model.Setting{}).Where("key = ?", key).First(setting).Error
	if err != nil {
		return nil, err
	}
	return setting, nil
}

func (s *SettingService) saveSetting(key string, value string) error {
	setting, err := s.getSetting(key)
	db := database.GetDB()
	if database.IsNotFound(err) {
		return db.Create(&model.Setting{
			Key:   key,
			Value: value,
		}).Error
	} else if err != nil {
		return err
	}
	setting.Value = value
	return db.Save(setting).Error
}

// GetSecret returns the session signing key, generating and storing one on
// first use.
func (s *SettingService) GetSecret() ([]byte, error) {
	setting, err := s.getSetting(secretKey)
	if err == nil {
		return []byte(setting.Value), nil
	}
	if !database.IsNotFound(err) {
		return nil, err
	}

	secret := random.Seq(32)
	if err := s.saveSetting(secretKey, secret); err != nil {
		return nil, err
	}
	logger.Info("generated a new session secret")
	return []byte(secret), nil
}
