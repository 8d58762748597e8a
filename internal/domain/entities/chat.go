package entities

// Chat roles as understood by the generation API.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// ChatMessage is one turn of a chatbot conversation.
type ChatMessage struct {
	Role string
	Text string
}
