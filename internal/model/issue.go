package model

import "time"

type Issue struct {
	ID          string    `recmap:"id,id" json:"id"`
	Date        time.Time `recmap:"date" json:"date"`
	Description string    `recmap:"description" json:"description"`
	Line        int32     `recmap:"line" json:"line"`
	Filename    string    `recmap:"filename" json:"filename,omitempty"`
}

type User struct {
	Login string `recmap:"login,id" json:"login"`
	Name  string `recmap:"name" json:"name,omitempty"`
}
