package stores

import (
	"errors"

	payerrors "github.com/flaboy/aira-pay/pkg/errors"

	"github.com/flaboy/aira-pay/pkg/database"
	"github.com/flaboy/aira-pay/pkg/models"
	"gorm.io/gorm"
)

// CredentialStore 租户处理器凭证查询边界，auth库只读
type CredentialStore interface {
	GetSecret(tenantID, kind string) (string, error)
}

type credentialStore struct{}

func NewCredentialStore() CredentialStore {
	return &credentialStore{}
}

// GetSecret 每次调用都重读凭证表，不做缓存。
// 同租户同类型只允许一条有效凭证，查不到是错误而不是空结果。
func (s *credentialStore) GetSecret(tenantID, kind string) (string, error) {
	var cred models.Credential
	err := database.Auth().Where("name = ? AND type = ?", tenantID, kind).First(&cred).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", payerrors.ErrCredentialNotFound
	}
	if err != nil {
		return "", err
	}
	return cred.Password, nil
}
