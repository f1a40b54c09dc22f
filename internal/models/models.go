package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type User struct {
	UserID       string    `json:"userId" db:"user_id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Avatar       string    `json:"avatar" db:"avatar"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

type Profile struct {
	ProfileID      string         `json:"profileId" db:"profile_id"`
	UserID         string         `json:"userId" db:"user_id"`
	Company        string         `json:"company" db:"company"`
	Website        string         `json:"website" db:"website"`
	Location       string         `json:"location" db:"location"`
	Status         string         `json:"status" db:"status"`
	Bio            string         `json:"bio" db:"bio"`
	GithubUsername string         `json:"githubUsername" db:"github_username"`
	Skills         StringList     `json:"skills" db:"skills"`
	Social         SocialLinks    `json:"social" db:"social"`
	Experience     ExperienceList `json:"experience" db:"experience"`
	UpdatedAt      time.Time      `json:"updatedAt" db:"updated_at"`

	// денормализованные поля автора для публичных чтений
	UserName   string `json:"name" db:"user_name"`
	UserAvatar string `json:"avatar" db:"user_avatar"`
}

type Experience struct {
	ExperienceID string `json:"experienceId"`
	Title        string `json:"title"`
	Company      string `json:"company"`
	Location     string `json:"location,omitempty"`
	From         string `json:"from"`
	To           string `json:"to,omitempty"`
	Current      bool   `json:"current"`
	Description  string `json:"description,omitempty"`
}

type SocialLinks struct {
	Youtube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

type Post struct {
	PostID    string    `json:"postId" db:"post_id"`
	UserID    string    `json:"userId" db:"user_id"`
	Text      string    `json:"text" db:"text"`
	Name      string    `json:"name" db:"name"`
	Avatar    string    `json:"avatar" db:"avatar"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// StringList хранится в БД как JSONB-массив
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(src interface{}) error {
	return scanJSONB(src, l, "StringList")
}

func (s SocialLinks) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *SocialLinks) Scan(src interface{}) error {
	return scanJSONB(src, s, "SocialLinks")
}

// ExperienceList хранится в БД как JSONB-массив, новые записи в начале
type ExperienceList []Experience

func (l ExperienceList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

func (l *ExperienceList) Scan(src interface{}) error {
	return scanJSONB(src, l, "ExperienceList")
}

func scanJSONB(src interface{}, dst interface{}, typeName string) error {
	if src == nil {
		return nil
	}

	switch data := src.(type) {
	case []byte:
		return json.Unmarshal(data, dst)
	case string:
		return json.Unmarshal([]byte(data), dst)
	default:
		return fmt.Errorf("неподдерживаемый тип для %s: %T", typeName, src)
	}
}
