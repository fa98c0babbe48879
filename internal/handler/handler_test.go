package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/chatbooking/admin/backend/internal/availability"
	"github.com/chatbooking/admin/backend/internal/config"
	"github.com/chatbooking/admin/backend/internal/domain"
	"github.com/chatbooking/admin/backend/internal/drafts"
	"github.com/chatbooking/admin/backend/internal/remote"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

var testNow = time.Date(2030, time.March, 10, 12, 0, 0, 0, time.UTC)

type fakeAPI struct {
	mu         sync.Mutex
	records    []json.RawMessage
	providers  []domain.Provider
	settings   json.RawMessage
	saved      string
	failDays   map[domain.DayCode]bool
	days       map[domain.DayCode]domain.DayInput
	exceptions []domain.ExceptionInput
	tokens     []string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		failDays: map[domain.DayCode]bool{},
		days:     map[domain.DayCode]domain.DayInput{},
	}
}

func (f *fakeAPI) GetProviderAvailability(ctx context.Context, providerID string) ([]json.RawMessage, error) {
	return f.records, nil
}

func (f *fakeAPI) UpdateDayAvailability(ctx context.Context, providerID string, day domain.DayCode, input domain.DayInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDays[day] {
		return remote.ErrTransport
	}
	f.days[day] = input
	return nil
}

func (f *fakeAPI) UpdateExceptions(ctx context.Context, providerID string, exceptions []domain.ExceptionInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.exceptions = exceptions
	return nil
}

func (f *fakeAPI) ListProviders(ctx context.Context, tenantID string) ([]domain.Provider, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = append(f.tokens, tokenOf(ctx))
	if tenantID == "" {
		return nil, remote.ErrUnauthorized
	}
	return f.providers, nil
}

func (f *fakeAPI) GetTenantSettings(ctx context.Context, tenantID string) (json.RawMessage, error) {
	if f.settings == nil {
		return nil, remote.ErrNotFound
	}
	return f.settings, nil
}

func (f *fakeAPI) UpdateTenantSettings(ctx context.Context, tenantID string, settings string) error {
	f.saved = settings
	return nil
}

// tokenOf 通过一次真实的 remote 请求头取出 context 中携带的令牌
func tokenOf(ctx context.Context) string {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"data":{"listProviders":{"items":[]}}}`))
	}))
	defer srv.Close()

	_, _ = remote.NewClient(srv.URL, time.Second, nil).ListProviders(ctx, "t")
	return got
}

// fakeDrafts 与 redis 一样按 JSON 存储，读出来的总是新副本
type fakeDrafts struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (f *fakeDrafts) Load(ctx context.Context, subject, providerID string) (*availability.Editor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.data[subject+"/"+providerID]
	if !ok {
		return nil, drafts.ErrDraftNotFound
	}
	e := &availability.Editor{}
	if err := json.Unmarshal(b, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (f *fakeDrafts) Save(ctx context.Context, subject string, editor *availability.Editor) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, err := json.Marshal(editor)
	if err != nil {
		return err
	}
	f.data[subject+"/"+editor.ProviderID] = b
	return nil
}

func (f *fakeDrafts) Delete(ctx context.Context, subject, providerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, subject+"/"+providerID)
	return nil
}

type fakeAudit struct {
	saves []*domain.AvailabilitySave
}

func (f *fakeAudit) InsertAvailabilitySave(save *domain.AvailabilitySave) error {
	save.ID = int64(len(f.saves) + 1)
	f.saves = append(f.saves, save)
	return nil
}

func (f *fakeAudit) GetAvailabilitySaves(providerID string, limit uint64) ([]*domain.AvailabilitySave, error) {
	out := []*domain.AvailabilitySave{}
	for _, s := range f.saves {
		if s.ProviderID == providerID && uint64(len(out)) < limit {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeMail struct {
	messages []domain.MailMessage
	err      error
}

func (f *fakeMail) Publish(ctx context.Context, msg domain.MailMessage) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, msg)
	return nil
}

type testEnv struct {
	h      *Handler
	api    *fakeAPI
	drafts *fakeDrafts
	audit  *fakeAudit
	mail   *fakeMail
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{}
	cfg.JWT.Secret = testSecret
	cfg.JWT.CookieName = "__test_token"

	env := &testEnv{
		api:    newFakeAPI(),
		drafts: &fakeDrafts{data: map[string][]byte{}},
		audit:  &fakeAudit{},
		mail:   &fakeMail{},
	}

	h, err := NewHandler(cfg, env.api, env.drafts, env.audit, env.mail, nil)
	require.NoError(t, err)
	h.now = func() time.Time { return testNow }
	h.RegisterRoutes()
	env.h = h

	return env
}

func signToken(t *testing.T, role domain.Role) string {
	t.Helper()

	claims := AuthClaims{
		Role:     string(role),
		Email:    "admin@example.com",
		TenantID: "t1",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

type testResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (env *testEnv) do(t *testing.T, token, method, path string, body any) testResponse {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.h.Mux.ServeHTTP(rec, req)

	var resp testResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

func decodeEditor(t *testing.T, resp testResponse) *availability.Editor {
	t.Helper()

	e := &availability.Editor{}
	require.NoError(t, json.Unmarshal(resp.Data, e))
	return e
}

const draftPath = "/providers/p1/availability/draft"

func TestAuth(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, "", http.MethodGet, "/me", nil)
	assert.False(t, resp.Success)
	assert.Equal(t, "用户未登录", resp.Message)

	resp = env.do(t, "garbage", http.MethodGet, "/me", nil)
	assert.False(t, resp.Success)
	assert.Equal(t, "无效的令牌", resp.Message)

	resp = env.do(t, signToken(t, domain.RoleAdmin), http.MethodGet, "/me", nil)
	require.True(t, resp.Success)
	var admin domain.Admin
	require.NoError(t, json.Unmarshal(resp.Data, &admin))
	assert.Equal(t, "admin-1", admin.Subject)
	assert.Equal(t, "t1", admin.TenantID)
}

func TestAuthCookie(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "__test_token", Value: signToken(t, domain.RoleOwner)})
	rec := httptest.NewRecorder()
	env.h.Mux.ServeHTTP(rec, req)

	var resp testResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestStaffCannotEdit(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, signToken(t, domain.RoleStaff), http.MethodGet, "/providers", nil)
	assert.False(t, resp.Success)
	assert.Equal(t, "权限不足", resp.Message)
}

func TestGetProvidersForwardsToken(t *testing.T) {
	env := newTestEnv(t)
	env.api.providers = []domain.Provider{{ID: "p1", TenantID: "t1", Name: "Alice"}}
	token := signToken(t, domain.RoleAdmin)

	resp := env.do(t, token, http.MethodGet, "/providers", nil)
	require.True(t, resp.Success)

	var providers []domain.Provider
	require.NoError(t, json.Unmarshal(resp.Data, &providers))
	assert.Equal(t, "Alice", providers[0].Name)
	assert.Equal(t, []string{"Bearer " + token}, env.api.tokens)
}

func TestLoadAvailability(t *testing.T) {
	env := newTestEnv(t)
	env.api.records = []json.RawMessage{
		json.RawMessage(`{"dayOfWeek":"MON","timeRanges":[{"startTime":"09:00","endTime":"17:00"}],"breaks":[],"exceptions":["2030-04-01"]}`),
		json.RawMessage(`{"dayOfWeek":"TUE","timeRanges":[],"breaks":[],"exceptions":["2030-04-01"]}`),
	}
	token := signToken(t, domain.RoleAdmin)

	resp := env.do(t, token, http.MethodGet, "/providers/p1/availability", nil)
	require.True(t, resp.Success, resp.Message)

	e := decodeEditor(t, resp)
	assert.True(t, e.IsSaved)
	assert.True(t, e.Schedule[0].Enabled)
	assert.False(t, e.Schedule[1].Enabled)
	require.Len(t, e.Exceptions, 1)
	assert.Equal(t, domain.ExceptionOff, e.Exceptions[0].Type)

	resp = env.do(t, token, http.MethodGet, draftPath, nil)
	require.True(t, resp.Success)
	assert.Equal(t, "p1", decodeEditor(t, resp).ProviderID)
}

func TestLoadAvailabilityKeepsDirtyDraft(t *testing.T) {
	env := newTestEnv(t)
	token := signToken(t, domain.RoleAdmin)

	require.True(t, env.do(t, token, http.MethodGet, "/providers/p1/availability", nil).Success)
	require.True(t, env.do(t, token, http.MethodPost, draftPath+"/days/3/toggle", nil).Success)

	resp := env.do(t, token, http.MethodGet, "/providers/p1/availability", nil)
	assert.False(t, resp.Success)
	assert.Equal(t, "存在尚未保存的修改", resp.Message)
	assert.True(t, decodeEditor(t, resp).Schedule[2].Enabled)

	resp = env.do(t, token, http.MethodGet, "/providers/p1/availability?discard=true", nil)
	require.True(t, resp.Success)
	assert.False(t, decodeEditor(t, resp).Schedule[2].Enabled)
}

func TestDraftMissing(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, signToken(t, domain.RoleAdmin), http.MethodPost, draftPath+"/days/1/toggle", nil)
	assert.False(t, resp.Success)
	assert.Equal(t, "编辑已过期，请重新加载该服务者的可预约时间", resp.Message)
}

func TestEditWindows(t *testing.T) {
	env := newTestEnv(t)
	token := signToken(t, domain.RoleAdmin)
	require.True(t, env.do(t, token, http.MethodGet, "/providers/p1/availability", nil).Success)

	resp := env.do(t, token, http.MethodPost, draftPath+"/days/1/toggle", nil)
	require.True(t, resp.Success)
	e := decodeEditor(t, resp)
	assert.False(t, e.IsSaved)
	assert.Equal(t, []domain.TimeWindow{{Start: "09:00", End: "17:00"}}, e.Schedule[0].TimeWindows)

	resp = env.do(t, token, http.MethodPost, draftPath+"/days/1/windows", nil)
	require.True(t, resp.Success)
	assert.Len(t, decodeEditor(t, resp).Schedule[0].TimeWindows, 2)

	resp = env.do(t, token, http.MethodPatch, draftPath+"/days/1/windows/1", map[string]string{"start": "12:00", "end": "13:00"})
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, availability.ErrWindowOverlap.Error())

	resp = env.do(t, token, http.MethodPatch, draftPath+"/days/1/windows/1", map[string]string{"start": "25:00", "end": "26:00"})
	assert.False(t, resp.Success)

	resp = env.do(t, token, http.MethodPatch, draftPath+"/days/1/windows/1", map[string]string{"start": "17:00", "end": "19:30"})
	require.True(t, resp.Success, resp.Message)
	assert.Equal(t, domain.TimeWindow{Start: "17:00", End: "19:30"}, decodeEditor(t, resp).Schedule[0].TimeWindows[1])

	resp = env.do(t, token, http.MethodDelete, draftPath+"/days/1/windows/0", nil)
	require.True(t, resp.Success)
	assert.Equal(t, []domain.TimeWindow{{Start: "17:00", End: "19:30"}}, decodeEditor(t, resp).Schedule[0].TimeWindows)

	resp = env.do(t, token, http.MethodDelete, draftPath+"/days/1/windows/5", nil)
	assert.False(t, resp.Success)

	resp = env.do(t, token, http.MethodPost, draftPath+"/days/9/toggle", nil)
	assert.False(t, resp.Success)
	assert.Equal(t, availability.ErrUnknownDay.Error(), resp.Message)
}

func TestExceptions(t *testing.T) {
	env := newTestEnv(t)
	token := signToken(t, domain.RoleAdmin)
	require.True(t, env.do(t, token, http.MethodGet, "/providers/p1/availability", nil).Success)

	resp := env.do(t, token, http.MethodPost, draftPath+"/exceptions", map[string]any{"date": "2030-03-01", "type": "off"})
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, availability.ErrPastDate.Error())

	resp = env.do(t, token, http.MethodPost, draftPath+"/exceptions", map[string]any{"date": "2030-03-10", "type": "off"})
	require.True(t, resp.Success, resp.Message)

	resp = env.do(t, token, http.MethodPost, draftPath+"/exceptions", map[string]any{
		"date":        "2030-03-10",
		"type":        "custom",
		"timeWindows": []map[string]string{{"start": "10:00", "end": "11:00"}},
	})
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, availability.ErrDuplicateDate.Error())

	resp = env.do(t, token, http.MethodPost, draftPath+"/exceptions", map[string]any{"date": "2030-03-11", "type": "custom"})
	assert.False(t, resp.Success)

	resp = env.do(t, token, http.MethodPost, draftPath+"/exceptions", map[string]any{"date": "2030-03-11", "type": "holiday"})
	assert.False(t, resp.Success)

	resp = env.do(t, token, http.MethodGet, draftPath, nil)
	e := decodeEditor(t, resp)
	require.Len(t, e.Exceptions, 1)

	resp = env.do(t, token, http.MethodDelete, draftPath+"/exceptions/"+e.Exceptions[0].ID, nil)
	require.True(t, resp.Success)
	assert.Empty(t, decodeEditor(t, resp).Exceptions)
}

func TestExceptionDraftFlow(t *testing.T) {
	env := newTestEnv(t)
	token := signToken(t, domain.RoleAdmin)
	require.True(t, env.do(t, token, http.MethodGet, "/providers/p1/availability", nil).Success)

	resp := env.do(t, token, http.MethodPost, draftPath+"/exception-draft/commit", nil)
	assert.False(t, resp.Success)
	assert.Equal(t, "请先选择日期", resp.Message)

	resp = env.do(t, token, http.MethodPost, draftPath+"/exception-draft/toggle", nil)
	require.True(t, resp.Success)
	e := decodeEditor(t, resp)
	assert.Equal(t, domain.ExceptionCustom, e.ExceptionDraft.Type)
	assert.Equal(t, []domain.TimeWindow{{Start: "09:00", End: "13:00"}}, e.ExceptionDraft.TimeWindows)

	resp = env.do(t, token, http.MethodPut, draftPath+"/exception-draft", map[string]any{
		"date":        "2030-03-20",
		"timeWindows": []map[string]string{{"start": "14:00", "end": "15:00"}},
	})
	require.True(t, resp.Success, resp.Message)

	resp = env.do(t, token, http.MethodPost, draftPath+"/exception-draft/commit", nil)
	require.True(t, resp.Success, resp.Message)
	e = decodeEditor(t, resp)
	require.Len(t, e.Exceptions, 1)
	assert.Equal(t, "2030-03-20", e.Exceptions[0].Date)
	assert.Equal(t, []domain.TimeWindow{{Start: "14:00", End: "15:00"}}, e.Exceptions[0].TimeWindows)
	assert.Equal(t, domain.ExceptionOff, e.ExceptionDraft.Type)
	assert.Empty(t, e.ExceptionDraft.Date)
}

func TestCheckBookable(t *testing.T) {
	env := newTestEnv(t)
	token := signToken(t, domain.RoleAdmin)
	require.True(t, env.do(t, token, http.MethodGet, "/providers/p1/availability", nil).Success)
	require.True(t, env.do(t, token, http.MethodPost, draftPath+"/days/1/toggle", nil).Success)

	// 2030-04-01 是周一
	resp := env.do(t, token, http.MethodGet, draftPath+"/bookable?date=2030-04-01&time=10:00", nil)
	require.True(t, resp.Success, resp.Message)

	var data struct {
		Bookable bool                `json:"bookable"`
		Windows  []domain.TimeWindow `json:"windows"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.True(t, data.Bookable)
	assert.Len(t, data.Windows, 1)

	resp = env.do(t, token, http.MethodGet, draftPath+"/bookable?date=2030-04-01", nil)
	assert.False(t, resp.Success)
}

func TestSaveAvailability(t *testing.T) {
	env := newTestEnv(t)
	token := signToken(t, domain.RoleAdmin)
	require.True(t, env.do(t, token, http.MethodGet, "/providers/p1/availability", nil).Success)
	require.True(t, env.do(t, token, http.MethodPost, draftPath+"/days/1/toggle", nil).Success)
	require.True(t, env.do(t, token, http.MethodPost, draftPath+"/exceptions", map[string]any{"date": "2030-03-12", "type": "off"}).Success)

	resp := env.do(t, token, http.MethodPost, draftPath+"/save", nil)
	require.True(t, resp.Success, resp.Message)
	assert.True(t, decodeEditor(t, resp).IsSaved)

	assert.Len(t, env.api.days, 7)
	assert.Equal(t, []domain.TimeRange{{StartTime: "09:00", EndTime: "17:00"}}, env.api.days[domain.DayMon].TimeRanges)
	assert.Equal(t, []domain.ExceptionInput{{Date: "2030-03-12", TimeRanges: []domain.TimeRange{}}}, env.api.exceptions)

	require.Len(t, env.audit.saves, 1)
	assert.Equal(t, domain.SaveSucceeded, env.audit.saves[0].Status)
	assert.Equal(t, "admin-1", env.audit.saves[0].Actor)
	assert.NotEmpty(t, env.audit.saves[0].Payload)

	require.Len(t, env.mail.messages, 1)
	assert.Equal(t, domain.MailAvailabilitySaved, env.mail.messages[0].Type)
	assert.Equal(t, "admin@example.com", env.mail.messages[0].To)
	data, ok := env.mail.messages[0].Data.(domain.AvailabilitySavedMailData)
	require.True(t, ok)
	assert.Equal(t, []string{"MON"}, data.EnabledDays)
	assert.Equal(t, 1, data.Exceptions)

	resp = env.do(t, token, http.MethodGet, "/providers/p1/availability/saves", nil)
	require.True(t, resp.Success)
	var saves []domain.AvailabilitySave
	require.NoError(t, json.Unmarshal(resp.Data, &saves))
	assert.Len(t, saves, 1)
}

func TestSaveAvailabilityPartialFailure(t *testing.T) {
	env := newTestEnv(t)
	env.api.failDays[domain.DayFri] = true
	env.mail.err = errors.New("queue down")
	token := signToken(t, domain.RoleAdmin)
	require.True(t, env.do(t, token, http.MethodGet, "/providers/p1/availability", nil).Success)
	require.True(t, env.do(t, token, http.MethodPost, draftPath+"/days/5/toggle", nil).Success)

	resp := env.do(t, token, http.MethodPost, draftPath+"/save", nil)
	assert.False(t, resp.Success)
	assert.Equal(t, "保存失败，请重试", resp.Message)

	var result availability.SaveResult
	require.NoError(t, json.Unmarshal(resp.Data, &result))
	assert.Equal(t, domain.SavePartial, result.Status)
	assert.Equal(t, []string{"FRI"}, result.Failed)

	require.Len(t, env.audit.saves, 1)
	assert.Equal(t, domain.SavePartial, env.audit.saves[0].Status)
	assert.Equal(t, []string{"FRI"}, env.audit.saves[0].FailedParts)

	// 草稿仍然是未保存状态
	resp = env.do(t, token, http.MethodGet, draftPath, nil)
	e := decodeEditor(t, resp)
	assert.False(t, e.IsSaved)
	assert.True(t, e.Schedule[4].Enabled)
}

func TestSaveAvailabilityRejected(t *testing.T) {
	env := newTestEnv(t)
	token := signToken(t, domain.RoleAdmin)
	require.True(t, env.do(t, token, http.MethodGet, "/providers/p1/availability", nil).Success)
	require.True(t, env.do(t, token, http.MethodPost, draftPath+"/days/2/toggle", nil).Success)
	require.True(t, env.do(t, token, http.MethodPost, draftPath+"/days/2/windows", nil).Success)
	require.True(t, env.do(t, token, http.MethodPost, draftPath+"/days/2/windows", nil).Success)

	resp := env.do(t, token, http.MethodPost, draftPath+"/save", nil)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, availability.ErrWindowOverlap.Error())

	assert.Empty(t, env.api.days)
	require.Len(t, env.audit.saves, 1)
	assert.Equal(t, domain.SaveRejected, env.audit.saves[0].Status)
	assert.Empty(t, env.mail.messages)
}

func TestDiscardDraft(t *testing.T) {
	env := newTestEnv(t)
	token := signToken(t, domain.RoleAdmin)
	require.True(t, env.do(t, token, http.MethodGet, "/providers/p1/availability", nil).Success)

	require.True(t, env.do(t, token, http.MethodDelete, draftPath, nil).Success)

	resp := env.do(t, token, http.MethodGet, draftPath, nil)
	assert.False(t, resp.Success)
}

func TestTenantSettings(t *testing.T) {
	env := newTestEnv(t)
	env.api.settings = json.RawMessage(`"{\"businessName\":\"Acme\",\"slotDuration\":45}"`)

	resp := env.do(t, signToken(t, domain.RoleAdmin), http.MethodGet, "/tenant/settings", nil)
	require.True(t, resp.Success, resp.Message)
	assert.JSONEq(t, `{
		"version": 2,
		"business": {"name": "Acme", "timezone": "UTC", "locale": "en"},
		"booking": {"slotDurationMinutes": 45, "maxConcurrentBookings": 1, "advanceBookingDays": 0, "minBookingNoticeMinutes": 60},
		"chat": {"enabled": false, "greeting": ""},
		"billing": {"plan": "free"}
	}`, string(resp.Data))

	update := map[string]any{
		"business": map[string]any{"name": "Acme", "timezone": "UTC", "locale": "zh-CN"},
		"booking":  map[string]any{"slotDurationMinutes": 60, "maxConcurrentBookings": 2, "advanceBookingDays": 14, "minBookingNoticeMinutes": 30},
		"billing":  map[string]any{"plan": "pro"},
	}

	resp = env.do(t, signToken(t, domain.RoleAdmin), http.MethodPut, "/tenant/settings", update)
	assert.False(t, resp.Success)
	assert.Equal(t, "权限不足", resp.Message)

	resp = env.do(t, signToken(t, domain.RoleOwner), http.MethodPut, "/tenant/settings", update)
	require.True(t, resp.Success, resp.Message)
	assert.Contains(t, env.api.saved, `"version":2`)
	assert.Contains(t, env.api.saved, `"plan":"pro"`)

	update["booking"] = map[string]any{"slotDurationMinutes": 1}
	resp = env.do(t, signToken(t, domain.RoleOwner), http.MethodPut, "/tenant/settings", update)
	assert.False(t, resp.Success)
}

func TestTenantSettingsNotFound(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, signToken(t, domain.RoleOwner), http.MethodGet, "/tenant/settings", nil)
	assert.False(t, resp.Success)
	assert.Equal(t, "资源不存在", resp.Message)
}
