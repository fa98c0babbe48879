package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/chatbooking/admin/backend/internal/availability"
	"github.com/chatbooking/admin/backend/internal/domain"
)

// 用 Fisher-Yates 洗牌算法来生成随机的开放日期
func GenerateRandomOpenDays() []int32 {
	days := []int32{1, 2, 3, 4, 5, 6, 7}

	for i := len(days) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		days[i], days[j] = days[j], days[i]
	}

	n := rand.Intn(len(days)) + 1

	return days[:n]
}

// 在 [fromHour, 24) 内生成 n 个互不重叠、按时间排序的时间段
func GenerateRandomWindows(n int, fromHour int) []domain.TimeWindow {
	if n <= 0 || fromHour >= 23 {
		return []domain.TimeWindow{}
	}

	windows := make([]domain.TimeWindow, 0, n)
	hourPerWindow := (24 - fromHour) / n
	if hourPerWindow == 0 {
		hourPerWindow = 1
		n = 24 - fromHour
	}

	for i := 0; i < n; i++ {
		startHour := fromHour + i*hourPerWindow
		endHour := startHour + rand.Intn(hourPerWindow)

		// 开始分钟只取 0 或 15，结束分钟只取 30 或 45，同一小时内也不会颠倒
		startMinute := rand.Intn(2) * 15
		endMinute := rand.Intn(2)*15 + 30

		windows = append(windows, domain.TimeWindow{
			Start: fmt.Sprintf("%02d:%02d", startHour, startMinute),
			End:   fmt.Sprintf("%02d:%02d", endHour, endMinute),
		})
	}

	return windows
}

// 随机生成一周的可预约时间，开放的每一天有 1~3 个时间段
func GenerateRandomSchedule() domain.WeeklySchedule {
	s := availability.DefaultSchedule()

	for _, day := range GenerateRandomOpenDays() {
		s[day-1].Enabled = true
		s[day-1].TimeWindows = GenerateRandomWindows(rand.Intn(3)+1, 8)
	}

	return s
}

// 随机生成 n 个未来日期上的特殊日期，日期互不相同
func GenerateRandomExceptions(n int, now time.Time) domain.ExceptionSet {
	set := domain.ExceptionSet{}

	for i := 0; i < n; i++ {
		date := now.AddDate(0, 0, rand.Intn(60)+1).Format(domain.DateFormat)

		typ := domain.ExceptionOff
		var windows []domain.TimeWindow
		if rand.Intn(2) == 0 {
			typ = domain.ExceptionCustom
			windows = GenerateRandomWindows(rand.Intn(2)+1, 9)
		}

		next, err := availability.AddException(set, date, typ, windows, now)
		if err != nil {
			// 日期重复时直接跳过
			continue
		}
		set = next
	}

	return set
}
