package entity

// HelpRequest is a request for staff help raised by a team during a session.
type HelpRequest struct {
	ID                  int64         `json:"id"`
	RequesterEmail      string        `json:"requesterEmail"`
	TeamID              string        `json:"teamId"`
	TableOrBreakoutRoom string        `json:"tableOrBreakoutRoom"`
	RequestTime         LocalDateTime `json:"requestTime"`
	Explanation         string        `json:"explanation"`
	Solved              bool          `json:"solved"`
}

// HelpRequestName is the entity name used in not-found and delete messages.
const HelpRequestName = "HelpRequest"

// Replace copies every mutable field of src onto h.
func (h *HelpRequest) Replace(src *HelpRequest) {
	h.RequesterEmail = src.RequesterEmail
	h.TeamID = src.TeamID
	h.TableOrBreakoutRoom = src.TableOrBreakoutRoom
	h.RequestTime = src.RequestTime
	h.Explanation = src.Explanation
	h.Solved = src.Solved
}
