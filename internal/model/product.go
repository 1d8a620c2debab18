package model

type Category string

const (
	CategoryBeginner     Category = "beginner"
	CategoryIntermediate Category = "intermediate"
	CategoryAdvanced     Category = "advanced"
)

const (
	PricesAll          = "all_prices"
	PricesDiscountOnly = "discount_only"

	BootcampAll          = "all_bootcamps"
	BootcampAvailability = "bootcamp_availability"
)

type Product struct {
	Document
	Title                string          `json:"title" gorm:"size:255;index;not null" validate:"required"`
	Category             Category        `json:"category" gorm:"size:32;index;default:beginner" validate:"omitempty,oneof=beginner intermediate advanced"`
	Prices               string          `json:"prices" gorm:"size:32;index;default:all_prices" validate:"omitempty,oneof=all_prices discount_only"`
	BootcampAvailability string          `json:"bootcampAvailability" gorm:"size:32;index;default:all_bootcamps" validate:"omitempty,oneof=all_bootcamps bootcamp_availability"`
	CourseDetails        CourseDetails   `json:"courseDetails" gorm:"type:longtext;serializer:json"`
	TermsAndConditions   []string        `json:"termsAndConditions" gorm:"type:longtext;serializer:json"`
	HowLearn             []HowLearn      `json:"howLearn" gorm:"type:longtext;serializer:json" validate:"dive"`
	Certification        []Certification `json:"certification" gorm:"type:longtext;serializer:json" validate:"dive"`
	Author               Author          `json:"author" gorm:"type:longtext;serializer:json"`
}

type CourseDetails struct {
	Overview     string         `json:"overview" validate:"required"`
	AccessPeriod []AccessPeriod `json:"accessPeriod" validate:"dive"`
	GcbLab       GcbLab         `json:"gcbLab"`
	OnDemandLab  []OnDemandLab  `json:"onDemandLab" validate:"dive"`
}

type AccessPeriod struct {
	Days  int     `json:"days" validate:"gte=0"`
	Price float64 `json:"price" validate:"gte=0"`
}

type GcbLab struct {
	Image string `json:"image"`
	Labs  []Lab  `json:"labs"`
}

type Lab struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

type OnDemandLab struct {
	Title string  `json:"title"`
	Price float64 `json:"price" validate:"gte=0"`
}

type HowLearn struct {
	Title  string `json:"title"`
	Points string `json:"points"`
}

type Certification struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type Author struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// ApplyDefaults fills enum fields left empty by the client.
func (p *Product) ApplyDefaults() {
	if p.Category == "" {
		p.Category = CategoryBeginner
	}
	if p.Prices == "" {
		p.Prices = PricesAll
	}
	if p.BootcampAvailability == "" {
		p.BootcampAvailability = BootcampAll
	}
	if p.TermsAndConditions == nil {
		p.TermsAndConditions = []string{}
	}
}
