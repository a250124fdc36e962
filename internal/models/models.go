package models

// Account is a login record. Passwords are stored and compared as plaintext.
type Account struct {
	ID       int    `json:"id"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role,omitempty"`
}

// Profile describes a participant in the supply chain. It is linked to an
// Account by username only.
type Profile struct {
	ID          int    `json:"id"`
	Username    string `json:"username,omitempty"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Website     string `json:"website,omitempty"`
	Location    string `json:"location,omitempty"`
	Image       string `json:"image,omitempty"`
	Role        string `json:"role,omitempty"`
}

// Product is a tracked item, looked up by its serial number.
type Product struct {
	ID           int    `json:"id"`
	SerialNumber string `json:"serialNumber,omitempty"`
	Name         string `json:"name,omitempty"`
	Brand        string `json:"brand,omitempty"`
	Image        string `json:"image,omitempty"`
}
