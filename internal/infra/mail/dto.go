package mail

// Message is a rendered email ready for a Transport.
type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
}

// Settings are the deployment-specific parts of every email.
type Settings struct {
	From       string
	Brand      string
	SenderName string
	BookingURL string
}

type internalNotificationData struct {
	Name        string
	Company     string
	Email       string
	PainPoint   string
	QuizResult  string
	Message     string
	Source      string
	CapturedAt  string
	Score       int
	Temperature string
}

type leadAcknowledgmentData struct {
	Name       string
	PainPoint  string
	QuizResult string
	BookingURL string
	SenderName string
	Brand      string
}
