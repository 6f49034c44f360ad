package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	EntityHandler       *EntityHandler
	ApplicationHandler  *ApplicationHandler
	NotificationHandler *NotificationHandler
	SummaryHandler      *SummaryHandler
}
