package database

import (
	"errors"

	"casa-certa-portal/internal/models"

	"gorm.io/gorm"
)

// ErrUserNotFound is returned when no admin user matches the lookup.
var ErrUserNotFound = errors.New("admin user not found")

// FindAdminByEmail retrieves an admin user by email.
func (gdb *GormDB) FindAdminByEmail(email string) (*models.AdminUser, error) {
	var u models.AdminUser
	err := gdb.db.Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// EnsureAdminUser creates the admin account if no account with that
// email exists yet. Used at startup to seed the first login.
func (gdb *GormDB) EnsureAdminUser(email, passwordHash string) error {
	var count int64
	if err := gdb.db.Model(&models.AdminUser{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return gdb.db.Create(&models.AdminUser{Email: email, PasswordHash: passwordHash}).Error
}
