package models

// Engagement is a single hire relationship between one client and one tradesman.
type Engagement struct {
	EngagementID        string `dynamodbav:"engagementId" json:"engagementId"`
	ClientID            string `dynamodbav:"clientId" json:"clientId"`
	TradesmanID         string `dynamodbav:"tradesmanId" json:"tradesmanId"`
	PairKey             string `dynamodbav:"pairKey" json:"-"`
	Status              string `dynamodbav:"status" json:"status"`
	CompletionRequested bool   `dynamodbav:"completionRequested" json:"completionRequested"`
	JobDescription      string `dynamodbav:"jobDescription,omitempty" json:"jobDescription,omitempty"`
	CreatedAt           string `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt           string `dynamodbav:"updatedAt" json:"updatedAt"`
}

// EngagementLock exists while the pair has an active engagement. Created
// transactionally with the engagement, deleted on every terminal transition.
type EngagementLock struct {
	PairKey      string `dynamodbav:"pairKey"`
	EngagementID string `dynamodbav:"engagementId"`
	CreatedAt    string `dynamodbav:"createdAt"`
}

const (
	EngagementsTable     = "Engagements"
	EngagementLocksTable = "EngagementLocks"

	// GSIs on Engagements, each with createdAt as the sort key.
	PairKeyIndex     = "pairKey-createdAt-index"
	ClientIDIndex    = "clientId-createdAt-index"
	TradesmanIDIndex = "tradesmanId-createdAt-index"
)

// PairKey identifies the directional (client, tradesman) pair that the
// active-engagement uniqueness guard is keyed on.
func PairKey(clientID, tradesmanID string) string {
	return clientID + "#" + tradesmanID
}

// IsTerminal reports whether the engagement can never change again.
func (e *Engagement) IsTerminal() bool {
	switch e.Status {
	case StatusRejected, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsActive reports whether the engagement holds the pair lock.
func (e *Engagement) IsActive() bool {
	return e.Status == StatusPending || e.Status == StatusAccepted
}

// StatusesForFilter translates a list filter into the status group it covers.
// An empty slice means no status restriction.
func StatusesForFilter(filter string) ([]string, bool) {
	switch filter {
	case FilterAll, "":
		return nil, true
	case FilterActive:
		return []string{StatusPending, StatusAccepted}, true
	case FilterCompleted:
		return []string{StatusCompleted}, true
	}
	return nil, false
}
