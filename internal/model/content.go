package model

import "time"

type LabManual struct {
	Document
	ProductRef
	LabInstructions []string `json:"labInstructions" gorm:"type:longtext;serializer:json"`
	Tasks           []Task   `json:"tasks" gorm:"type:longtext;serializer:json"`
}

type Task struct {
	Task     []string `json:"task"`
	Solution string   `json:"solution"`
	ImageURL string   `json:"imageurl"`
}

type Faqs struct {
	Document
	ProductRef
	Faqs []Faq `json:"faqs" gorm:"type:longtext;serializer:json"`
}

type Faq struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type CourseVideo struct {
	Document
	ProductRef
	Groups []VideoGroup `json:"groups" gorm:"type:longtext;serializer:json"`
}

type VideoGroup struct {
	GroupName   string   `json:"groupName"`
	Description string   `json:"description"`
	Iframes     []Iframe `json:"iframes"`
}

type Iframe struct {
	Iframe string `json:"iframe"`
}

type CourseMaterial struct {
	Document
	ProductRef
	DriveLinks [][]DriveLink `json:"driveLinks" gorm:"type:longtext;serializer:json"`
}

type DriveLink struct {
	Link string `json:"link"`
}

// MachineForm is a capture-the-flag style question attached to a lab machine.
type MachineForm struct {
	Document
	ProductRef
	Machine string          `json:"machine" gorm:"size:255;index;not null"`
	Flag    string          `json:"flag" gorm:"not null"`
	Value   string          `json:"value" gorm:"not null"`
	Answers []MachineAnswer `json:"answers" gorm:"type:longtext;serializer:json"`
	Version int             `json:"-" gorm:"not null;default:1"`
}

type MachineAnswer struct {
	UserID      string    `json:"userId"`
	Answer      string    `json:"answer"`
	SubmittedAt time.Time `json:"submittedAt"`
}
