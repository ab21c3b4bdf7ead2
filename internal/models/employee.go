package models

// Employee is a record owned by the remote service. The client only ever
// holds a read-through copy of it
type Employee struct {
	ID       int    `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Email    string `json:"email" yaml:"email"`
	IsActive bool   `json:"isActive" yaml:"is_active"`
}

// StatusLabel returns the human label shown in the status column
func (e Employee) StatusLabel() string {
	if e.IsActive {
		return "Active"
	}
	return "Inactive"
}
