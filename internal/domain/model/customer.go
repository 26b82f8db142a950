package model

import (
	"time"

	"gorm.io/gorm"
)

type AccountType string

const (
	AccountCustomer AccountType = "customer"
	AccountAdmin    AccountType = "admin"
)

type Customer struct {
	ID           int64          `gorm:"column:customer_id;primaryKey;autoIncrement" json:"customer_id"`
	FullName     string         `gorm:"type:varchar(100);not null" json:"full_name"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"column:password_hash;not null" json:"-"`
	Phone        *string        `gorm:"type:varchar(20)" json:"phone"`
	AccountType  AccountType    `gorm:"type:varchar(20);not null;default:'customer'" json:"account_type"`
	TokenVersion int            `gorm:"not null;default:0" json:"-"`
	CreatedAt    time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Customer) IsAdmin() bool {
	return c.AccountType == AccountAdmin
}
