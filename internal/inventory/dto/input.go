package dto

// AddItemInput carries the raw form values. Name is trimmed and Price
// parsed inside the usecase so validation lives in one place.
type AddItemInput struct {
	Name  string
	Price string
}
