package entity

// RecommendationRequest is a student's request for a letter of
// recommendation from a professor.
type RecommendationRequest struct {
	ID             int64         `json:"id"`
	RequesterEmail string        `json:"requesterEmail"`
	ProfessorEmail string        `json:"professorEmail"`
	Explanation    string        `json:"explanation"`
	DateRequested  LocalDateTime `json:"dateRequested"`
	DateNeeded     LocalDateTime `json:"dateNeeded"`
	Done           bool          `json:"done"`
}

// RecommendationRequestName is the entity name used in not-found and delete messages.
const RecommendationRequestName = "RecommendationRequest"

// Replace copies every mutable field of src onto r.
func (r *RecommendationRequest) Replace(src *RecommendationRequest) {
	r.RequesterEmail = src.RequesterEmail
	r.ProfessorEmail = src.ProfessorEmail
	r.Explanation = src.Explanation
	r.DateRequested = src.DateRequested
	r.DateNeeded = src.DateNeeded
	r.Done = src.Done
}
