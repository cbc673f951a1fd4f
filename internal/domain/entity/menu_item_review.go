package entity

// MenuItemReview is a star rating with comments left for a menu item.
type MenuItemReview struct {
	ID            int64         `json:"id"`
	ItemID        int64         `json:"itemId"`
	ReviewerEmail string        `json:"reviewerEmail"`
	Stars         int           `json:"stars"`
	DateReviewed  LocalDateTime `json:"dateReviewed"`
	Comments      string        `json:"comments"`
}

// MenuItemReviewName is the entity name used in not-found and delete messages.
const MenuItemReviewName = "MenuItemReview"

// Replace copies every mutable field of src onto r.
func (r *MenuItemReview) Replace(src *MenuItemReview) {
	r.ItemID = src.ItemID
	r.ReviewerEmail = src.ReviewerEmail
	r.Stars = src.Stars
	r.DateReviewed = src.DateReviewed
	r.Comments = src.Comments
}
