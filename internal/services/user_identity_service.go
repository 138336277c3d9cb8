package services

import (
	log "github.com/sirupsen/logrus"
	"github.com/terraincognita07/titanlift/internal/models"
)

type LocalUserReader interface {
	Load() (models.LocalUser, bool, error)
}

// UserIdentityService resolves which backend user the pages query for.
type UserIdentityService struct {
	users       LocalUserReader
	defaultID   string
	preferLocal bool
}

type Identity struct {
	UserID    string
	Onboarded bool
	User      models.LocalUser
}

func NewUserIdentityService(users LocalUserReader, defaultID string, preferLocal bool) *UserIdentityService {
	return &UserIdentityService{users: users, defaultID: defaultID, preferLocal: preferLocal}
}

// Current reports the local record, if any, and the id to query the backend with.
// The configured default id is used unless preferLocal is set and a record exists.
func (service *UserIdentityService) Current() Identity {
	identity := Identity{UserID: service.defaultID}

	user, found, err := service.users.Load()
	if err != nil {
		log.Errorf("load local user: %v", err)
		return identity
	}
	if !found {
		return identity
	}

	identity.Onboarded = true
	identity.User = user
	if service.preferLocal && user.ID != "" {
		identity.UserID = user.ID
	}
	return identity
}
