package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/gomail.v2"
)

func TestSendPasswordResetMessage(t *testing.T) {
	var captured *gomail.Message
	service := MailService{dial: func(m *gomail.Message) error {
		captured = m
		return nil
	}}

	err := service.SendPasswordReset("reader@example.com", "blog.example.com", "NDI", "abc-def")
	assert.NoError(t, err)
	assert.NotNil(t, captured)

	assert.Equal(t, []string{MailSender}, captured.GetHeader("From"))
	assert.Equal(t, []string{"reader@example.com"}, captured.GetHeader("To"))
	assert.Equal(t, []string{"Reset Password Requested"}, captured.GetHeader("Subject"))

	var body bytes.Buffer
	_, err = captured.WriteTo(&body)
	assert.NoError(t, err)
	assert.Contains(t, body.String(), "blog.example.com/reset-password/NDI/abc-def")
}
