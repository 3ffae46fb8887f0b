// Package entity holds the bound request forms and their validation error
// mapping.
package entity

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// ContactForm carries a contact page submission.
type ContactForm struct {
	Name    string `form:"name" binding:"required,max=100"`
	Email   string `form:"email" binding:"required,email"`
	Message string `form:"message" binding:"required,max=2000"`
}

// RegisterForm carries a registration submission.
type RegisterForm struct {
	Username        string `form:"username" binding:"required,max=150"`
	Email           string `form:"email" binding:"required,email"`
	Password        string `form:"password" binding:"required,min=8"`
	ConfirmPassword string `form:"confirm_password" binding:"required,eqfield=Password"`
}

// LoginForm carries a login submission.
type LoginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// ForgotPasswordForm carries a reset request.
type ForgotPasswordForm struct {
	Email string `form:"email" binding:"required,email"`
}

// ResetPasswordForm carries the new password for a reset.
type ResetPasswordForm struct {
	NewPassword     string `form:"new_password" binding:"required,min=8"`
	ConfirmPassword string `form:"confirm_password" binding:"required,eqfield=NewPassword"`
}

// PostForm carries a post create/edit submission. The attachment travels
// separately as multipart file data.
type PostForm struct {
	Title      string `form:"title" binding:"required,max=200"`
	Slug       string `form:"slug" binding:"omitempty,max=200"`
	Content    string `form:"content" binding:"required"`
	CategoryId int    `form:"category_id" binding:"required,gt=0"`
}

// FieldErrors turns a gin binding error into per-field messages keyed by
// the struct field name, for the template to render next to each input.
func FieldErrors(err error) map[string]string {
	fieldErrors := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		fieldErrors["__all__"] = "Invalid form data"
		return fieldErrors
	}
	for _, fe := range validationErrors {
		fieldErrors[fe.Field()] = fieldMessage(fe)
	}
	return fieldErrors
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return "Ensure this value has at least " + fe.Param() + " characters."
	case "max":
		return "Ensure this value has at most " + fe.Param() + " characters."
	case "eqfield":
		return "The two password fields didn't match."
	case "gt":
		return "Select a valid choice."
	default:
		return "Enter a valid value."
	}
}
