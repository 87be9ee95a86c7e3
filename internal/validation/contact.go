package validation

import (
	"fmt"
	"net/mail"
	"regexp"
)

// PhonePattern допускает международный формат: необязательный +, 9-15 цифр
var PhonePattern = regexp.MustCompile(`^\+?[0-9]{9,15}$`)

// ValidateEmail проверяет адрес электронной почты
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("email %q is not a valid address", email)
	}
	return nil
}

// ValidatePhone проверяет номер телефона
func ValidatePhone(phone string) error {
	if phone == "" {
		return fmt.Errorf("phone cannot be empty")
	}
	if !PhonePattern.MatchString(phone) {
		return fmt.Errorf("phone must contain 9 to 15 digits with an optional leading +")
	}
	return nil
}
