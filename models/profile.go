package models

import "strings"

// ProfileFieldCount is the number of fields that count towards completion
const ProfileFieldCount = 9

// Profile holds the student profile fields that earn completion points
type Profile struct {
	Name          string `json:"name"`
	StudentNumber string `json:"studentNumber"`
	Course        string `json:"course"`
	Year          string `json:"year"`
	LinkedIn      string `json:"linkedin"`
	GitHub        string `json:"github"`
	AIInterest    string `json:"aiInterest"`
	Phone         string `json:"phone"`
	Motivation    string `json:"motivation"`
}

// Fields returns the completion fields in their fixed order
func (p Profile) Fields() [ProfileFieldCount]string {
	return [ProfileFieldCount]string{
		p.Name,
		p.StudentNumber,
		p.Course,
		p.Year,
		p.LinkedIn,
		p.GitHub,
		p.AIInterest,
		p.Phone,
		p.Motivation,
	}
}

// CompletedFields counts the fields that are not blank
func (p Profile) CompletedFields() int {
	completed := 0
	for _, field := range p.Fields() {
		if strings.TrimSpace(field) != "" {
			completed++
		}
	}
	return completed
}
