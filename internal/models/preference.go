package models

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

type Tab string

const (
	TabVietQR      Tab = "vietqr"
	TabCashCounter Tab = "cash_counter"
)

func (t Tab) Valid() bool {
	return t == TabVietQR || t == TabCashCounter
}
