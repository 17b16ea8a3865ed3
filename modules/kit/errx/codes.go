package errx

// 跨模块统一的系统类错误码。
//
// 约束：
// - 只收系统/技术类错误（便于告警与排障归一化）
// - 业务域错误码（例如 CITY_QUEUE_FULL）由各游戏模块自行定义，不进 kit

const (
	// CodeInternal 表示服务内部不可预期错误（兜底）。
	CodeInternal Code = "INTERNAL_ERROR"
	// CodeUnavailable 表示依赖不可用（文档库/网络异常等）。
	CodeUnavailable Code = "SERVICE_UNAVAILABLE"
	// CodeConflict 表示事务提交时与其他玩家的写入冲突。
	CodeConflict Code = "TX_CONFLICT"
	// CodeTimeout 表示请求/依赖调用超时。
	CodeTimeout Code = "TIMEOUT"
	// CodeReqParamError 表示请求参数错误。
	CodeReqParamError Code = "CODE_REQ_PARAM_ERROR"
)

// 统一系统类哨兵错误（通过 WithData/WithCause 派生，不直接修改）。
var (
	ErrInternal    = NewSys(CodeInternal, "服务器内部错误")
	ErrUnavailable = NewSys(CodeUnavailable, "服务不可用")
	ErrConflict    = NewSys(CodeConflict, "并发写入冲突")
	ErrTimeout     = NewSys(CodeTimeout, "请求超时")
	ErrReqParamERR = NewSys(CodeReqParamError, "请求参数错误")
)
