package dto

import "github.com/GregMSThompson/luongnho/internal/models"

type TabInfo struct {
	ID    models.Tab `json:"id"`
	Label string     `json:"label"`
}

type ShellResponse struct {
	ActiveTab models.Tab `json:"activeTab"`
	Title     string     `json:"title"`
	Subtitle  string     `json:"subtitle"`
	Tabs      []TabInfo  `json:"tabs"`
}

type ThemeRequest struct {
	Theme models.Theme `json:"theme"`
}

type ThemeResponse struct {
	Theme models.Theme `json:"theme"`
}
