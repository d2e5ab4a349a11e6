package models

type MessageRequest struct {
	Text string `json:"text" validate:"required,max=4000"`
}

type Progress struct {
	Label   string `json:"label"`
	Current int    `json:"current"`
	Total   int    `json:"total"`
}

type QAPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type SlotAnswer struct {
	Slot     Slot   `json:"slot"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type SessionSummary struct {
	BasicInfo []SlotAnswer `json:"basic_info"`
	Technical []QAPair     `json:"technical"`
}

type SessionResponse struct {
	ID              string          `json:"id"`
	Phase           string          `json:"phase"`
	Aborted         bool            `json:"aborted"`
	CurrentQuestion string          `json:"current_question,omitempty"`
	Progress        *Progress       `json:"progress,omitempty"`
	Messages        []Message       `json:"messages"`
	Summary         *SessionSummary `json:"summary,omitempty"`
}

type OutcomeResponse struct {
	Kind    string           `json:"kind"`
	Reason  string           `json:"reason,omitempty"`
	Replies []string         `json:"replies"`
	Session *SessionResponse `json:"session"`
}

type SaveResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

type CountResponse struct {
	Count int `json:"count"`
}
