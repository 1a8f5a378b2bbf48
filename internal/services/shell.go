package services

import (
	"strings"

	"github.com/GregMSThompson/luongnho/internal/dto"
	"github.com/GregMSThompson/luongnho/internal/errs"
	"github.com/GregMSThompson/luongnho/internal/models"
)

type screen struct {
	label    string
	title    string
	subtitle string
}

var screens = map[models.Tab]screen{
	models.TabVietQR: {
		label:    "VietQR",
		title:    "Cổng tạo mã QR",
		subtitle: "Giải pháp tạo mã QR thanh toán nhanh theo tiêu chuẩn NAPAS 24/7.",
	},
	models.TabCashCounter: {
		label:    "Đếm tiền",
		title:    "Công cụ đếm tiền",
		subtitle: "Tính toán nhanh số lượng tiền mặt mệnh giá VNĐ một cách chính xác.",
	},
}

var tabOrder = []models.Tab{models.TabVietQR, models.TabCashCounter}

type shellService struct{}

func NewShellService() *shellService {
	return &shellService{}
}

// Shell describes the screen for tab; an empty tab selects VietQR.
func (s *shellService) Shell(tab string) (dto.ShellResponse, error) {
	active := models.Tab(strings.TrimSpace(tab))
	if active == "" {
		active = models.TabVietQR
	}
	if !active.Valid() {
		return dto.ShellResponse{}, errs.NewValidationError("unknown tab: " + tab)
	}

	tabs := make([]dto.TabInfo, 0, len(tabOrder))
	for _, t := range tabOrder {
		tabs = append(tabs, dto.TabInfo{ID: t, Label: screens[t].label})
	}

	return dto.ShellResponse{
		ActiveTab: active,
		Title:     screens[active].title,
		Subtitle:  screens[active].subtitle,
		Tabs:      tabs,
	}, nil
}
