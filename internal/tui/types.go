package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
)

// prior conversation turn sent back to the server
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Product struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Price string `json:"price,omitempty"`
}

// successful reply from POST /chat
type ChatReply struct {
	Message  string    `json:"message"`
	Products []Product `json:"products"`
}

// one rendered block of the transcript
type entry struct {
	role     string
	content  string
	products []Product
	isError  bool
}

// chat screen model
type Model struct {
	input      textinput.Model
	viewport   viewport.Model
	spinner    spinner.Model
	renderer   *glamour.TermRenderer
	client     *Client
	history    []Turn
	transcript []entry
	width      int
	height     int
	ready      bool
	isFetching bool
}

// sent when the server answers a chat turn
type ChatResponseMsg struct {
	query string
	reply ChatReply
}

// sent when a chat turn fails
type ChatErrorMsg struct {
	query string
	err   error
}
