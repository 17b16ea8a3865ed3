package utils

import "time"

// Clock 是所有带时间语义的服务的注入点。
// 生产环境用 SystemClock；时间相关的不变量（endTime 链、宽限期、
// 到达时间）在测试里全部用固定时钟验证。
//
// departureTime/arrivalTime 这类需要跨客户端一致的字段，最终以
// 服务端（文档库）写入的时间戳为准，Clock 只服务于进程内计算。
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
