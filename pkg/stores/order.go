package stores

import (
	"github.com/flaboy/aira-pay/pkg/database"
	"github.com/flaboy/aira-pay/pkg/models"
)

// OrderStore ordering库读取边界
type OrderStore interface {
	// ListProductIDs 返回batch引用到的去重商品ID
	ListProductIDs(batchID uint) ([]uint, error)
	ListProducts(ids []uint) ([]models.Product, error)
}

type orderStore struct{}

func NewOrderStore() OrderStore {
	return &orderStore{}
}

func (s *orderStore) ListProductIDs(batchID uint) ([]uint, error) {
	var ids []uint
	err := database.Ordering().Model(&models.Order{}).
		Distinct("product_id").
		Where("batch_id = ?", batchID).
		Pluck("product_id", &ids).Error
	return ids, err
}

func (s *orderStore) ListProducts(ids []uint) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var products []models.Product
	err := database.Ordering().Where("id IN ?", ids).Find(&products).Error
	return products, err
}
