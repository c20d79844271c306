package chat

// request payload for one chat turn
type Request struct {
	Message string    `json:"message"`
	History []Message `json:"history"`
}

// prior conversation turn
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// product recommended alongside the reply
type Product struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Price string `json:"price,omitempty"`
}

// response payload for one chat turn
type Response struct {
	Message  string    `json:"message"`
	Products []Product `json:"products"`
}
