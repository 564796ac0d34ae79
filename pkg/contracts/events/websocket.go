// Package events defines the messages pushed to websocket clients when the
// report archive changes.
package events

// MessageType identifies a websocket message
type MessageType = string

const (
	// Connection is sent once to a client right after it registers
	Connection MessageType = "connection"

	// ReportCreated carries a domain.HistoryItem for the new report
	ReportCreated MessageType = "report.created"

	// ReportDeleted carries a ReportDeletedData
	ReportDeleted MessageType = "report.deleted"
)

// ConnectionData is the payload of a Connection message
type ConnectionData struct {
	Status   string `json:"status"`
	ClientID string `json:"client_id"`
}

// ReportDeletedData is the payload of a ReportDeleted message
type ReportDeletedData struct {
	ID string `json:"id"`
}
