// internal/errors/errors.go
package appErrors

import "fmt"

// ErrCampaignNotFound is a sentinel error
type ErrCampaignNotFound struct {
    CampaignID int
}

func (e *ErrCampaignNotFound) Error() string {
    return fmt.Sprintf("campaign with ID %d not found", e.CampaignID)
}

// Helper constructor
func NewCampaignNotFound(id int) error {
    return &ErrCampaignNotFound{CampaignID: id}
}

// ErrCampaignInactive means the campaign exists but no longer accepts responses.
type ErrCampaignInactive struct {
    CampaignID int
}

func (e *ErrCampaignInactive) Error() string {
    return fmt.Sprintf("campaign with ID %d is not active", e.CampaignID)
}

func NewCampaignInactive(id int) error {
    return &ErrCampaignInactive{CampaignID: id}
}

// ErrValidation covers respondent input rejected before any storage I/O:
// missing or out-of-range NPS score, unanswered required questions.
type ErrValidation struct {
    Field  string
    Reason string
}

func (e *ErrValidation) Error() string {
    return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func NewValidation(field, reason string) error {
    return &ErrValidation{Field: field, Reason: reason}
}

// ErrStorage wraps a failed delivery-create or response-write. The flow does
// not retry; the caller may re-attempt the whole submission.
type ErrStorage struct {
    Op  string
    Err error
}

func (e *ErrStorage) Error() string {
    return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *ErrStorage) Unwrap() error {
    return e.Err
}

func NewStorage(op string, err error) error {
    return &ErrStorage{Op: op, Err: err}
}

// ErrSessionNotFound means the respondent session token is unknown or expired.
type ErrSessionNotFound struct {
    Token string
}

func (e *ErrSessionNotFound) Error() string {
    return fmt.Sprintf("survey session %s not found", e.Token)
}

func NewSessionNotFound(token string) error {
    return &ErrSessionNotFound{Token: token}
}
