package models

// LinkSummary сводка по ссылкам пользователя.
type LinkSummary struct {
	Count       int   `json:"count"`
	TotalClicks int64 `json:"totalClicks"`
}

// DailyClicks количество переходов за день. Date в формате 2006-01-02 (UTC).
type DailyClicks struct {
	Date   string `json:"date"`
	Clicks int64  `json:"clicks"`
}

// AdminOverview агрегаты по всему сервису.
type AdminOverview struct {
	URLCount    int           `json:"urlCount"`
	UserCount   int           `json:"userCount"`
	TotalClicks int64         `json:"totalClicks"`
	URLs        []OwnedLink   `json:"urls"`
	Users       []UserSummary `json:"users"`
}
