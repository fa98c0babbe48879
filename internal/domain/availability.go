package domain

import "time"

// 时间与日期均以字符串形式保存，格式见 TimeFormat 与 DateFormat
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

type TimeWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type DaySchedule struct {
	DayOfWeek   int32        `json:"dayOfWeek"`
	Enabled     bool         `json:"enabled"`
	TimeWindows []TimeWindow `json:"timeWindows"`
}

// WeeklySchedule 下标 d-1 对应 ISO 星期 d（1 为周一，7 为周日）
type WeeklySchedule [7]DaySchedule

type ExceptionType string

const (
	ExceptionOff    ExceptionType = "off"
	ExceptionCustom ExceptionType = "custom"
)

type Exception struct {
	ID          string        `json:"id"`
	Date        string        `json:"date"`
	Type        ExceptionType `json:"type"`
	TimeWindows []TimeWindow  `json:"timeWindows"`
}

type ExceptionSet []Exception

// ExceptionDraft 是尚未加入 ExceptionSet 的例外日期
type ExceptionDraft struct {
	Date        string        `json:"date"`
	Type        ExceptionType `json:"type"`
	TimeWindows []TimeWindow  `json:"timeWindows"`
}

type Provider struct {
	ID       string `json:"id"`
	TenantID string `json:"tenantID"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Timezone string `json:"timezone"`
}

type SaveStatus string

const (
	SaveSucceeded SaveStatus = "succeeded"
	SavePartial   SaveStatus = "partial"
	SaveFailed    SaveStatus = "failed"
	SaveRejected  SaveStatus = "rejected"
)

// AvailabilitySave 是一次保存操作的审计记录
type AvailabilitySave struct {
	ID          int64      `json:"id"`
	ProviderID  string     `json:"providerID"`
	Actor       string     `json:"actor"`
	Status      SaveStatus `json:"status"`
	FailedParts []string   `json:"failedParts"`
	Payload     []byte     `json:"-"`
	CreatedAt   time.Time  `json:"createdAt"`
}
