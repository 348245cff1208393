package response

import "github.com/mkopp/mysite-backend/domain"

type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// NewUserFromDomain: Domain -> Response
func NewUserFromDomain(u *domain.UserInfo) *User {
	if u == nil {
		return nil
	}
	return &User{
		ID:        u.ID.String(),
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
