package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document holds the identity and timestamps shared by every stored record.
type Document struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

func (d *Document) Meta() *Document {
	return d
}

// ProductRef ties a content record to a catalog product. ProductTitle is
// resolved at read time and never stored.
type ProductRef struct {
	Product      string `json:"product" gorm:"size:64;index;not null"`
	ProductTitle string `json:"productTitle,omitempty" gorm:"-"`
}

func (p *ProductRef) ProductID() string {
	return p.Product
}

func (p *ProductRef) SetProduct(product string) {
	p.Product = product
}

func (p *ProductRef) SetProductTitle(title string) {
	p.ProductTitle = title
}

// ProductDocument is satisfied by pointers to records keyed by product.
type ProductDocument[T any] interface {
	*T
	Meta() *Document
	ProductID() string
	SetProduct(product string)
	SetProductTitle(title string)
}

// All returns every table managed by the application, for AutoMigrate.
func All() []any {
	return []any{
		&Product{},
		&LabManual{},
		&Faqs{},
		&CourseVideo{},
		&CourseMaterial{},
		&MachineForm{},
		&CheckoutUser{},
		&Order{},
		&Exam{},
	}
}
