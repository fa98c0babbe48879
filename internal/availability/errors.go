package availability

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrPastDate      = errors.New("不能为过去的日期添加例外")
	ErrDuplicateDate = errors.New("该日期已存在例外")
	ErrInvalidDate   = errors.New("日期格式错误")
	ErrInvalidTime   = errors.New("时间格式错误")
	ErrWindowOrder   = errors.New("结束时间必须晚于开始时间")
	ErrWindowOverlap = errors.New("时间段之间存在重叠")
	ErrUnknownDay    = errors.New("星期必须在 1 到 7 之间")
	ErrUnknownWindow = errors.New("时间段不存在")
	ErrEmptyCustom   = errors.New("自定义例外至少需要一个时间段")
)

// RemoteWriteError 表示保存时有部分（或全部）远端写入失败
type RemoteWriteError struct {
	ProviderID string
	Parts      []string
	Err        error
}

func (e *RemoteWriteError) Error() string {
	return fmt.Sprintf("provider %s: remote write failed for %s: %v", e.ProviderID, strings.Join(e.Parts, ", "), e.Err)
}

func (e *RemoteWriteError) Unwrap() error {
	return e.Err
}

// MalformedRecordError 描述反序列化时被跳过的记录，只会被记录到日志中
type MalformedRecordError struct {
	Index  int
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed availability record %d: %s", e.Index, e.Reason)
}
