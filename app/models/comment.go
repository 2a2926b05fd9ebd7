package models

import (
	"errors"
	"time"
)

// Validate checks if the comment meets all validation requirements
func (c *Comment) Validate() error {
	if err := ValidateStruct(c); err != nil {
		return err
	}

	if c.User.ID == "" {
		return errors.New("user is required")
	}

	if c.CreatedAt.IsZero() {
		return errors.New("createdAt cannot be zero")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (c *Comment) BeforeCreate(now time.Time) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
}
