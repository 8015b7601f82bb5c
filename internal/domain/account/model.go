package account

// Role constants
const (
	RoleAdmin = "admin"
	RoleCoach = "coach"
)

// User is the authenticated principal returned by /auth/me.
type User struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	FullName string `json:"full_name,omitempty"`
}

// IsCoach reports whether the user acts as a single coach.
// Coaches only see and edit their own coach profile; every other role picks
// coaches from the full list.
func (u User) IsCoach() bool {
	return u.Role == RoleCoach
}

// IsAdmin reports whether the user is an administrator.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Registration is the payload for self-service coach sign-up.
type Registration struct {
	FullName          string   `json:"full_name"`
	Email             string   `json:"email"`
	Password          string   `json:"password"`
	Phone             *string  `json:"phone"`
	AddressLine1      *string  `json:"address_line1"`
	AddressLine2      *string  `json:"address_line2"`
	City              *string  `json:"city"`
	Postcode          *string  `json:"postcode"`
	Country           *string  `json:"country"`
	BankName          *string  `json:"bank_name"`
	AccountHolderName *string  `json:"account_holder_name"`
	SortCode          *string  `json:"sort_code"`
	AccountNumber     *string  `json:"account_number"`
	IBAN              *string  `json:"iban"`
	SwiftBIC          *string  `json:"swift_bic"`
	HourlyRate        *float64 `json:"hourly_rate"`
}

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PasswordReset is the payload for completing a password reset.
type PasswordReset struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}
