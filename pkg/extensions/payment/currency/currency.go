package currency

import (
	payerrors "github.com/flaboy/aira-pay/pkg/errors"
	"github.com/shopspring/decimal"
)

// UnknownSymbolPolicy 未知货币符号的处理策略
type UnknownSymbolPolicy int

const (
	// PolicyDefault 回退到配置的默认货币码
	PolicyDefault UnknownSymbolPolicy = iota
	// PolicyFail 返回错误
	PolicyFail
)

// Codec 显示货币符号到处理器货币码的映射，以及主单位到最小单位的换算
type Codec struct {
	Symbols     map[string]string
	DefaultCode string
	Policy      UnknownSymbolPolicy
}

func DefaultSymbols() map[string]string {
	return map[string]string{
		"£": "gbp",
		"$": "usd",
		"€": "eur",
	}
}

func NewCodec(defaultCode string, strict bool) *Codec {
	policy := PolicyDefault
	if strict {
		policy = PolicyFail
	}
	return &Codec{
		Symbols:     DefaultSymbols(),
		DefaultCode: defaultCode,
		Policy:      policy,
	}
}

func (c *Codec) SymbolToCode(symbol string) (string, error) {
	if code, ok := c.Symbols[symbol]; ok {
		return code, nil
	}
	if c.Policy == PolicyFail {
		return "", payerrors.ErrUnknownCurrency
	}
	return c.DefaultCode, nil
}

var dec100 = decimal.NewFromInt(100)

// ToMinorUnits 主单位金额转最小单位，乘100后四舍五入。
// 只适用于百进制小单位货币。
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(dec100).Round(0).IntPart()
}
