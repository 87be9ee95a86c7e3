package cli

import (
	"context"
	"fmt"

	"github.com/dabi61/opensky/internal/validation"
	pkgapi "github.com/dabi61/opensky/pkg/api"
)

func (c *Cli) runRegister(ctx context.Context) error {
	c.io.Println("=== Registration ===")
	c.io.Println()

	// Запрашиваем username
	username, err := c.io.ReadInput("Username: ")
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}

	password, err := c.getPassword(fmt.Sprintf("Password (min %d chars, letters and digits): ", validation.MinPasswordLen))
	if err != nil {
		return err
	}

	// Подтверждение только для интерактивного ввода
	if !c.passwordFromFlags() {
		confirm, err := c.io.ReadPassword("Confirm password: ")
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if password != confirm {
			return fmt.Errorf("passwords do not match")
		}
	}

	fullName, err := c.io.ReadInput("Full name (optional): ")
	if err != nil {
		return fmt.Errorf("failed to read full name: %w", err)
	}
	email, err := c.io.ReadInput("Email (optional): ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}
	phone, err := c.io.ReadInput("Phone (optional): ")
	if err != nil {
		return fmt.Errorf("failed to read phone: %w", err)
	}

	c.io.Println()
	c.io.Println("Registering user...")

	result, err := c.authService.Register(ctx, pkgapi.RegisterRequest{
		Username: username,
		Password: password,
		FullName: fullName,
		Email:    email,
		Phone:    phone,
	})
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Registration successful!")
	c.io.Printf("User ID: %s\n", result.UserID)
	c.io.Printf("Username: %s\n", username)
	c.io.Println()
	c.io.Println("Please run 'opensky login' to start booking.")

	return nil
}
