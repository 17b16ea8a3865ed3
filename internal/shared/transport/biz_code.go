package transport

// BizCode 表示业务码的强类型封装，用于在日志上下文中减少误传风险。
type BizCode int

// 客户端可见的响应码。业务拒绝细分原因放 reason 字段，不再扩码。
const (
	OK           = 0
	BizRejected  = 1
	InvalidParam = 400
	Unauthorized = 401
	SystemError  = 500
)
