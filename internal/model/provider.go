package model

// Provider исполнитель услуги (мастер, специалист).
type Provider struct {
	ID   string        `json:"id"`
	Name LocalizedText `json:"name"`
}
