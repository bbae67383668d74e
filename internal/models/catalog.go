package models

import "github.com/google/uuid"

// Brand - справочная запись марки велосипеда.
// Справочник заполняется миграциями и в рамках сервиса только читается.
type Brand struct {
	ID   uuid.UUID `db:"id" json:"id"`
	Name string    `db:"name" json:"name"`
}

// Service - справочная запись услуги мастерской.
type Service struct {
	ID   uuid.UUID `db:"id" json:"id"`
	Name string    `db:"name" json:"name"`
}
