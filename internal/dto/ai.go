package dto

type SuggestRequest struct {
	Context string `json:"context"`
}

type SuggestResponse struct {
	Description string `json:"description"`
}

type AmountWordsRequest struct {
	Amount int64 `json:"amount"`
}

type AmountWordsResponse struct {
	Words string `json:"words"`
}
