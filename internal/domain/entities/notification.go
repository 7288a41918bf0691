package entities

// NotificationPayload is the JSON body posted to the webhook.
type NotificationPayload struct {
	Text string `json:"text"`
}
