package utils

import "github.com/flaboy/aira-pay/pkg/hashid"

var HashIDTypeInvoice = hashid.NewType("inv-", "invoice", 6)

// DecodeInvoiceRef 解码对外发票引用获取数据库ID
func DecodeInvoiceRef(ref string) (uint, error) {
	return hashid.Decode(HashIDTypeInvoice, ref)
}

// EncodeInvoiceRef 编码数据库ID为对外发票引用
func EncodeInvoiceRef(id uint) string {
	return hashid.Encode(HashIDTypeInvoice, id)
}
