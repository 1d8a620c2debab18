package dto

type SignInRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required"`
}

type VerifyRequest struct {
	Token  string `query:"token"`
	UserID string `query:"userId"`
}

type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SignInResult describes a sign-in attempt. Warning and EmailError are set
// when the link was issued but could not be mailed.
type SignInResult struct {
	UserFound        bool
	VerificationLink string
	Warning          string
	EmailError       string
}

type VerifyResult struct {
	User         UserResponse
	SessionToken string
}
