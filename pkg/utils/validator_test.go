package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidPhone(t *testing.T) {
	valid := []string{
		"+15551234567",
		"555-123-4567",
		"(555) 123-4567",
		"555.123.4567",
		"5551234567",
		"555123456789",
	}
	for _, phone := range valid {
		assert.Truef(t, IsValidPhone(phone), "expected %q to be valid", phone)
	}

	invalid := []string{
		"",
		"12345",
		"phone",
		"+1 555 123 4567 ext 9",
		"555-123-456",
	}
	for _, phone := range invalid {
		assert.Falsef(t, IsValidPhone(phone), "expected %q to be invalid", phone)
	}
}

func TestIsValidOTPCode(t *testing.T) {
	assert.True(t, IsValidOTPCode("000123"))
	assert.False(t, IsValidOTPCode("12345"))
	assert.False(t, IsValidOTPCode("1234567"))
	assert.False(t, IsValidOTPCode("12a456"))
}

func TestValidateStructReportsCustomTags(t *testing.T) {
	payload := struct {
		PhoneNumber string `validate:"required,phone"`
		OTP         string `validate:"required,otpcode"`
	}{PhoneNumber: "nope", OTP: "12"}

	errs := ValidateStruct(payload)
	require.Len(t, errs, 2)
	assert.Equal(t, "phone", errs[0].Tag)
	assert.Equal(t, "Invalid phone number format.", errs[0].Msg)
	assert.Equal(t, "otpcode", errs[1].Tag)
}

func TestValidateStructPasses(t *testing.T) {
	payload := struct {
		PhoneNumber string `validate:"required,phone"`
	}{PhoneNumber: "+15551234567"}

	assert.Nil(t, ValidateStruct(payload))
}

func TestRandomDigits(t *testing.T) {
	code, err := RandomDigits(6)
	require.NoError(t, err)
	assert.True(t, IsValidOTPCode(code))

	_, err = RandomDigits(0)
	assert.Error(t, err)
}

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "4567", MaskPhone("+15551234567"))
	assert.Equal(t, "123", MaskPhone("123"))
}
