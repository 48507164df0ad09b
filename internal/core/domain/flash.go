package domain

// FlashLevel tags a one-shot message shown on the next rendered page.
type FlashLevel string

const (
	FlashSuccess FlashLevel = "success"
	FlashError   FlashLevel = "error"
)

type FlashMessage struct {
	Level FlashLevel `json:"level"`
	Text  string     `json:"text"`
}
