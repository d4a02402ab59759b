package model

// Account is a customer profile record, the only entity the service manages.
//
// ID is assigned by the store on creation and never changes afterwards.
type Account struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
	DateJoined  Date   `json:"date_joined"`
}

// AccountFields are the mutable fields of an Account, as written by create and update.
type AccountFields struct {
	Name        string
	Email       string
	Address     string
	PhoneNumber string
	DateJoined  Date
}

// Apply copies every mutable field onto a, leaving the ID untouched.
func (f AccountFields) Apply(a *Account) {
	a.Name = f.Name
	a.Email = f.Email
	a.Address = f.Address
	a.PhoneNumber = f.PhoneNumber
	a.DateJoined = f.DateJoined
}
