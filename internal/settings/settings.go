// Package settings 定义租户设置的结构化表示，并负责把历史格式迁移到当前版本。
package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

const CurrentVersion = 2

const (
	DefaultSlotDurationMinutes     = 30
	DefaultMaxConcurrentBookings   = 1
	DefaultAdvanceBookingDays      = 0 // 0 表示不限制
	DefaultMinBookingNoticeMinutes = 60
	DefaultTimezone                = "UTC"
	DefaultLocale                  = "en"
	DefaultPlan                    = "free"
)

var ErrUnsupportedShape = errors.New("无法识别的租户设置格式")

type Business struct {
	Name     string `json:"name"`
	Timezone string `json:"timezone" validate:"required,timezone"`
	Locale   string `json:"locale" validate:"required,bcp47_language_tag"`
	Phone    string `json:"phone,omitempty"`
}

type Booking struct {
	SlotDurationMinutes     int `json:"slotDurationMinutes" validate:"gte=5,lte=480"`
	MaxConcurrentBookings   int `json:"maxConcurrentBookings" validate:"gte=1,lte=100"`
	AdvanceBookingDays      int `json:"advanceBookingDays" validate:"gte=0,lte=365"`
	MinBookingNoticeMinutes int `json:"minBookingNoticeMinutes" validate:"gte=0,lte=10080"`
}

type Chat struct {
	Enabled  bool   `json:"enabled"`
	Greeting string `json:"greeting" validate:"max=500"`
	Language string `json:"language,omitempty"`
}

type Billing struct {
	Plan  string `json:"plan" validate:"required,oneof=free starter pro enterprise"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
}

type TenantSettings struct {
	Version  int      `json:"version"`
	Business Business `json:"business"`
	Booking  Booking  `json:"booking"`
	Chat     Chat     `json:"chat"`
	Billing  Billing  `json:"billing"`
}

func Default() *TenantSettings {
	return &TenantSettings{
		Version: CurrentVersion,
		Business: Business{
			Timezone: DefaultTimezone,
			Locale:   DefaultLocale,
		},
		Booking: Booking{
			SlotDurationMinutes:     DefaultSlotDurationMinutes,
			MaxConcurrentBookings:   DefaultMaxConcurrentBookings,
			AdvanceBookingDays:      DefaultAdvanceBookingDays,
			MinBookingNoticeMinutes: DefaultMinBookingNoticeMinutes,
		},
		Billing: Billing{
			Plan: DefaultPlan,
		},
	}
}

// legacySettings 是版本 1 之前的扁平格式
type legacySettings struct {
	BusinessName     *string `json:"businessName"`
	Timezone         *string `json:"timezone"`
	Locale           *string `json:"locale"`
	Language         *string `json:"language"`
	Phone            *string `json:"phone"`
	SlotDuration     *int    `json:"slotDuration"`
	MaxConcurrent    *int    `json:"maxConcurrentBookings"`
	AdvanceDays      *int    `json:"advanceBookingDays"`
	MinNotice        *int    `json:"minNoticeMinutes"`
	ChatEnabled      *bool   `json:"chatEnabled"`
	Greeting         *string `json:"greeting"`
	WelcomeMessage   *string `json:"welcomeMessage"`
	Plan             *string `json:"plan"`
	BillingEmail     *string `json:"billingEmail"`
	SubscriptionPlan *string `json:"subscriptionPlan"`
}

// Migrate 接受远端保存的任意历史格式并返回当前版本的设置：
//   - 空值或 null：默认设置
//   - 字符串：内容本身是 JSON（二次编码），解开后再按对象处理
//   - 没有 version 字段的对象：版本 1 扁平格式
//   - version 为 2 的对象：当前格式
func Migrate(raw json.RawMessage) (*TenantSettings, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return Default(), nil
	}

	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedShape, err)
		}
		if inner == "" {
			return Default(), nil
		}
		return Migrate(json.RawMessage(inner))
	}

	if raw[0] != '{' {
		return nil, ErrUnsupportedShape
	}

	var probe struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedShape, err)
	}

	switch probe.Version {
	case 0, 1:
		return migrateLegacy(raw)
	case CurrentVersion:
		s := Default()
		if err := json.Unmarshal(raw, s); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedShape, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: version %d", ErrUnsupportedShape, probe.Version)
	}
}

func migrateLegacy(raw json.RawMessage) (*TenantSettings, error) {
	var l legacySettings
	if err := json.Unmarshal(raw, &l); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedShape, err)
	}

	s := Default()
	setString(&s.Business.Name, l.BusinessName)
	setString(&s.Business.Timezone, l.Timezone)
	setString(&s.Business.Locale, l.Language)
	setString(&s.Business.Locale, l.Locale)
	setString(&s.Business.Phone, l.Phone)
	setInt(&s.Booking.SlotDurationMinutes, l.SlotDuration)
	setInt(&s.Booking.MaxConcurrentBookings, l.MaxConcurrent)
	setInt(&s.Booking.AdvanceBookingDays, l.AdvanceDays)
	setInt(&s.Booking.MinBookingNoticeMinutes, l.MinNotice)
	if l.ChatEnabled != nil {
		s.Chat.Enabled = *l.ChatEnabled
	}
	setString(&s.Chat.Greeting, l.WelcomeMessage)
	setString(&s.Chat.Greeting, l.Greeting)
	setString(&s.Billing.Plan, l.SubscriptionPlan)
	setString(&s.Billing.Plan, l.Plan)
	setString(&s.Billing.Email, l.BillingEmail)

	return s, nil
}

func setString(dst *string, v *string) {
	if v != nil && *v != "" {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

// Encode 返回写回远端用的 JSON 字符串，总是当前版本
func (s *TenantSettings) Encode() (string, error) {
	s.Version = CurrentVersion
	data, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (s *TenantSettings) Validate(v *validator.Validate) error {
	return v.Struct(s)
}
