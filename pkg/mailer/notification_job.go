package mailer

// NotificationJob is the JSON payload the API relays to RabbitMQ for each
// notification row. The worker resolves the recipient's email and delivers.
type NotificationJob struct {
	NotificationID string  `json:"notification_id"`
	RecipientID    string  `json:"recipient_id"`
	RecipientEmail string  `json:"recipient_email,omitempty"`
	Message        string  `json:"message"`
	PostID         *string `json:"post_id,omitempty"`
	JourneyID      *string `json:"journey_id,omitempty"`
	ActorID        *string `json:"actor_id,omitempty"`
}
