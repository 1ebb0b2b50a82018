package models

// Credential 平台auth库中的租户凭证表，本服务只读，不参与建表
type Credential struct {
	ID       uint   `gorm:"primaryKey"`
	Name     string `gorm:"size:100"` // 租户标识
	Type     string `gorm:"size:50"`  // 凭证类型，如 stripe
	Password string `gorm:"size:255"` // 凭证密钥
}

func (c *Credential) TableName() string {
	return "credentials"
}
