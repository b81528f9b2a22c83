package contacts

import (
	"github.com/google/uuid"

	"github.com/OmerAlfiel/Shahen-website/pkg/db/models"
	"github.com/OmerAlfiel/Shahen-website/pkg/enums"
	"github.com/OmerAlfiel/Shahen-website/pkg/pagination"
)

// Messages returned to visitors of the public form.
const (
	MessageReceived    = "Your message has been received successfully. We will get back to you soon!"
	MessageStoreFailed = "There was an error processing your request. Please try again later."
)

// SubmitForm is the public contact form payload.
type SubmitForm struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Message string `json:"message"`
}

// Submission is a form plus the request metadata captured alongside it.
type Submission struct {
	Form      SubmitForm
	IPAddress string
	UserAgent string
}

// SubmitResult is returned to the visitor after a successful submission.
type SubmitResult struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	ID      uuid.UUID `json:"id"`
}

// Sort columns accepted by List, keyed by their wire name.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"name":      "name",
	"status":    "status",
}

// SortFields lists the accepted sortBy values.
func SortFields() []string {
	return []string{"createdAt", "updatedAt", "name", "status"}
}

const (
	SortAsc  = "ASC"
	SortDesc = "DESC"
)

// ListParams filters and pages the admin listing. An empty Status lists all.
type ListParams struct {
	Status    enums.ContactStatus
	SortBy    string
	SortOrder string
	Page      pagination.Params
}

// SearchParams pages a case-insensitive search over name and message.
type SearchParams struct {
	Term string
	Page pagination.Params
}

// StatusUpdate moves a submission through the admin workflow. AdminNotes
// only replaces the stored notes when non-empty.
type StatusUpdate struct {
	Status     enums.ContactStatus `json:"status"`
	AdminNotes string              `json:"adminNotes"`
}

// Page is one slice of submissions plus the unpaged total.
type Page struct {
	Contacts []models.Contact `json:"contacts"`
	Total    int64            `json:"total"`
}

// Stats summarises the submission backlog.
type Stats struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	Processed  int64 `json:"processed"`
	Replied    int64 `json:"replied"`
	TodayCount int64 `json:"todayCount"`
}
