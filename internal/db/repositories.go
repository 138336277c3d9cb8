package db

import "gorm.io/gorm"

type Repositories struct {
	LocalUsers *LocalUserRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		LocalUsers: NewLocalUserRepository(database),
	}
}
