package dto

type SendResetOtpInput struct {
	Email string `json:"email"`
}

type ResetPasswordInput struct {
	Email       string `json:"email"`
	Otp         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}
