package entity

// Notification templates known to the dispatcher.
const (
	TemplateInternalNotification = "internal-notification"
	TemplateLeadAcknowledgment   = "lead-acknowledgment"
)
