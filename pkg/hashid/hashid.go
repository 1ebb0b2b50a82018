package hashid

import (
	"fmt"
	"strings"

	hashids "github.com/speps/go-hashids/v2"
)

// Type 带前缀的hashid编码器，每类对外ID一个实例
type Type struct {
	prefix string
	h      *hashids.HashID
}

func NewType(prefix, salt string, minLength int) *Type {
	hd := hashids.NewData()
	hd.Salt = salt
	hd.MinLength = minLength
	h, err := hashids.NewWithData(hd)
	if err != nil {
		panic(err)
	}
	return &Type{prefix: prefix, h: h}
}

// Encode 编码失败只可能是id超出编码器的数值范围，与NewType一致直接panic
func Encode(t *Type, id uint) string {
	s, err := t.h.Encode([]int{int(id)})
	if err != nil {
		panic(err)
	}
	return t.prefix + s
}

func Decode(t *Type, hash string) (uint, error) {
	if !strings.HasPrefix(hash, t.prefix) {
		return 0, fmt.Errorf("invalid hash id: %s", hash)
	}
	ids, err := t.h.DecodeWithError(strings.TrimPrefix(hash, t.prefix))
	if err != nil {
		return 0, err
	}
	if len(ids) != 1 {
		return 0, fmt.Errorf("invalid hash id: %s", hash)
	}
	return uint(ids[0]), nil
}
