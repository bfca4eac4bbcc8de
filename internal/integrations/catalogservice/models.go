package catalogservice

// Subject модель предмета из каталога
type Subject struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	TopicIDs []int64 `json:"topic_ids"`
}

// HasTopic возвращает true, если тема принадлежит предмету
func (s *Subject) HasTopic(topicID int64) bool {
	for _, id := range s.TopicIDs {
		if id == topicID {
			return true
		}
	}
	return false
}

// ErrorResponse модель ошибки от каталога
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
