package entity

import "gorm.io/gorm"

// SiteInfo: the latest row wins.
type SiteInfo struct {
	gorm.Model
	Title       string `json:"title"`
	Slogan      string `json:"slogan"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
	Favicon     string `json:"favicon"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Phone2      string `json:"phone2"`
	Address     string `json:"address"`
	MapURL      string `json:"mapUrl"`
	Facebook    string `json:"facebook"`
	Instagram   string `json:"instagram"`
	Twitter     string `json:"twitter"`
	Whatsapp    string `json:"whatsapp"`
	Youtube     string `json:"youtube"`
	Status      bool   `json:"status"`
}

type Banner struct {
	gorm.Model
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Image    string `json:"image"`
	Link     string `json:"link"`
	Status   bool   `json:"status"`
}

type Testimonial struct {
	gorm.Model
	Name    string `json:"name"`
	Role    string `json:"role"`
	Message string `json:"message"`
	Photo   string `json:"photo"`
	Status  bool   `json:"status"`
}

type About struct {
	gorm.Model
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Status      bool   `json:"status"`
}

type WhyChooseUs struct {
	gorm.Model
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Status      bool   `json:"status"`
}

type Gallery struct {
	gorm.Model
	Title  string `json:"title"`
	Image  string `json:"image"`
	Status bool   `json:"status"`
}

type OpeningHour struct {
	gorm.Model
	Day    string `json:"day"`
	Hours  string `json:"hours"`
	Status bool   `json:"status"`
}

type Partner struct {
	gorm.Model
	Name   string `json:"name"`
	Logo   string `json:"logo"`
	Link   string `json:"link"`
	Status bool   `json:"status"`
}
